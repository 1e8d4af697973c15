package main

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/tss-calculator/deployer/pkg/deployer/infrastructure/config"
)

const defaultRateLimitWait = 30 * time.Second

// envVars lists the GitHub Actions input variable first, then the plain
// environment variable.
func envVars(name string) []string {
	return []string{
		"INPUT_" + strings.ToUpper(name),
		"DEPLOYER_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_")),
	}
}

var inputFlags = []cli.Flag{
	altsrc.NewStringFlag(&cli.StringFlag{Name: "org-id", Usage: "organization id", EnvVars: envVars("org-id")}),
	altsrc.NewStringFlag(&cli.StringFlag{Name: "api-key", Usage: "deployments API key", EnvVars: envVars("api-key")}),
	altsrc.NewStringFlag(&cli.StringFlag{Name: "api-hostname", Usage: "deployments API host name, without scheme", EnvVars: envVars("api-hostname")}),
	altsrc.NewStringFlag(&cli.StringFlag{Name: "bundle-prefix", Usage: "prefix of the derived bundle name", EnvVars: envVars("bundle-prefix")}),
	altsrc.NewStringFlag(&cli.StringFlag{Name: "bundle-name", Usage: "explicit bundle name, overwritten on re-upload", EnvVars: envVars("bundle-name")}),
	altsrc.NewStringFlag(&cli.StringFlag{Name: "pagebuilder-version", Usage: "pagebuilder version or semver constraint", Value: "latest", EnvVars: envVars("pagebuilder-version")}),
	altsrc.NewPathFlag(&cli.PathFlag{Name: "artifact", Usage: "bundle zip to upload", Value: "dist/fusion-bundle.zip", EnvVars: envVars("artifact")}),
	altsrc.NewIntFlag(&cli.IntFlag{Name: "retry-count", Usage: "polls after the first while waiting for the new version", Value: 10, EnvVars: envVars("retry-count")}),
	altsrc.NewIntFlag(&cli.IntFlag{Name: "retry-delay", Usage: "seconds between polls", Value: 5, EnvVars: envVars("retry-delay")}),
	altsrc.NewIntFlag(&cli.IntFlag{Name: "minimum-running-versions", Usage: "terminate the oldest version only above this many", Value: 7, EnvVars: envVars("minimum-running-versions")}),
	altsrc.NewBoolFlag(&cli.BoolFlag{Name: "deploy", Usage: "deploy the uploaded bundle", Value: true, EnvVars: envVars("deploy")}),
	altsrc.NewBoolFlag(&cli.BoolFlag{Name: "promote", Usage: "promote the new version to live", Value: true, EnvVars: envVars("promote")}),
	altsrc.NewFloat64Flag(&cli.Float64Flag{Name: "api-rate-limit", Usage: "maximum API requests per second, 0 for unlimited", Value: 5, EnvVars: envVars("api-rate-limit")}),
	altsrc.NewBoolFlag(&cli.BoolFlag{Name: "progress", Usage: "show upload progress", EnvVars: envVars("progress")}),
	altsrc.NewStringFlag(&cli.StringFlag{Name: "event-name", Usage: "triggering event name", EnvVars: []string{"GITHUB_EVENT_NAME"}}),
	altsrc.NewPathFlag(&cli.PathFlag{Name: "event-path", Usage: "triggering event payload", EnvVars: []string{"GITHUB_EVENT_PATH"}}),
}

func inputsFromCLI(c *cli.Context) config.Inputs {
	return config.Inputs{
		OrgID:                  c.String("org-id"),
		APIKey:                 c.String("api-key"),
		APIHostname:            c.String("api-hostname"),
		BundlePrefix:           c.String("bundle-prefix"),
		BundleName:             c.String("bundle-name"),
		PagebuilderVersion:     c.String("pagebuilder-version"),
		Artifact:               c.Path("artifact"),
		RetryCount:             c.Int("retry-count"),
		RetryDelaySeconds:      c.Int("retry-delay"),
		MinimumRunningVersions: c.Int("minimum-running-versions"),
		Deploy:                 c.Bool("deploy"),
		Promote:                c.Bool("promote"),
	}
}

func progressWriter(enabled bool) io.Writer {
	if !enabled {
		return nil
	}
	return os.Stderr
}
