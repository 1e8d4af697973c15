package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
	"github.com/tss-calculator/deployer/pkg/deployer/infrastructure/dependency"
	"github.com/tss-calculator/deployer/pkg/deployer/infrastructure/fusion"
	"github.com/tss-calculator/deployer/pkg/deployer/infrastructure/logger"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
)

func main() {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()
	mainLogger := logger.NewMainLogger(false)
	ctx = listenOSKillSignalsContext(ctx, mainLogger)

	app := &cli.App{
		Name:  "deployer",
		Usage: "upload, deploy and promote fusion bundles",
		Flags: append(inputFlags,
			&cli.PathFlag{
				Name:    "config",
				Usage:   "YAML file with input values, keyed by flag name",
				EnvVars: []string{"DEPLOYER_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				EnvVars: []string{"RUNNER_DEBUG", "DEPLOYER_DEBUG"},
			},
		),
		Before: func(c *cli.Context) error {
			err := altsrc.InitInputSourceWithContext(inputFlags, altsrc.NewYamlSourceFromFlagFunc("config"))(c)
			if err != nil {
				return err
			}
			container := dependency.NewDependencyContainer(c.Context, logger.NewMainLogger(c.Bool("debug")), dependency.Settings{
				APIHostname: c.String("api-hostname"),
				OrgID:       c.String("org-id"),
				APIKey:      c.String("api-key"),
				RateLimit: fusion.RateLimiterConfig{
					RPS:   c.Float64("api-rate-limit"),
					Burst: 1,
					Wait:  defaultRateLimitWait,
				},
				Progress: progressWriter(c.Bool("progress")),
				RepoDir:  ".",
			})
			c.Context = dependency.ContainerToContext(c.Context, container)
			return nil
		},
		Action: func(c *cli.Context) error {
			return deploy(c.Context, inputsFromCLI(c), c.String("event-name"), c.String("event-path"))
		},
		Commands: cli.Commands{
			&cli.Command{
				Name:  "deploy",
				Usage: "run the full upload, deploy, promote pipeline (default)",
				Action: func(c *cli.Context) error {
					return deploy(c.Context, inputsFromCLI(c), c.String("event-name"), c.String("event-path"))
				},
			},
			&cli.Command{
				Name:  "cleanup",
				Usage: "terminate the deployment of the bundle unless it is live",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "delete-bundle",
						Usage: "also delete the bundle",
					},
				},
				Action: func(c *cli.Context) error {
					return cleanup(c.Context, inputsFromCLI(c), c.Bool("delete-bundle"))
				},
			},
			&cli.Command{
				Name:  "versions",
				Usage: "list deployed versions, oldest first",
				Action: func(c *cli.Context) error {
					return versions(c.Context, c.App.Writer)
				},
			},
			&cli.Command{
				Name:  "services",
				Usage: "list running deployments with their bundles and aliases",
				Action: func(c *cli.Context) error {
					return services(c.Context, c.App.Writer)
				},
			},
		},
	}
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		reportFailure(mainLogger, err)
	}
}

func reportFailure(mainLogger applogger.MainLogger, err error) {
	msg := "failed execute command " + strings.Join(os.Args, " ")
	if help := model.HelpOf(err); help != "" {
		msg = strings.TrimSpace(help)
	}
	mainLogger.FatalError(err, msg)
}

// listenOSKillSignalsContext cancels ctx on SIGTERM or SIGINT, which also
// interrupts a pending convergence poll.
func listenOSKillSignalsContext(ctx context.Context, mainLogger applogger.Logger) context.Context {
	ctx, cancelFunc := context.WithCancel(ctx)
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			mainLogger.Info(fmt.Sprintf("received %v, cancelling run", sig))
			cancelFunc()
		case <-ctx.Done():
		}
	}()
	return ctx
}
