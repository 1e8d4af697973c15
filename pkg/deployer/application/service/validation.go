package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
)

const LatestPagebuilder = "latest"

var (
	errBundleIdentity  = errors.New("neither bundle prefix nor bundle name provided")
	bundleIdentityHelp = "You must provide either a bundle prefix or a bundle name.\n"
	cleanupBundleHelp  = "Cleanup needs the explicit bundle name of the deployment to remove.\n"

	hostnamePattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?)+$`)
)

// ValidateRunContext checks the whole run configuration and reports every
// violation at once. It performs no I/O.
func ValidateRunContext(runContext model.RunContext) error {
	var violations []error
	if runContext.BundleName == "" {
		violations = append(violations, errBundleIdentity)
	}
	if runContext.ShouldPromote && !runContext.ShouldDeploy {
		violations = append(violations, errors.New("if `promote` is true, `deploy` must also be true"))
	}
	if runContext.OrgID == "" {
		violations = append(violations, errors.New("org id is required"))
	}
	if runContext.APIKey == "" {
		violations = append(violations, errors.New("api key is required"))
	}
	if runContext.Artifact == "" {
		violations = append(violations, errors.New("artifact is required"))
	}
	violations = appendIfErr(violations, verifyAPIHostname(runContext.APIHostname))
	violations = appendIfErr(violations, verifyPagebuilderVersion(runContext.PagebuilderVersion))
	if runContext.RetryCount < 0 {
		violations = append(violations, fmt.Errorf("retry count must not be negative, got %d", runContext.RetryCount))
	}
	if runContext.RetryDelay < 0 {
		violations = append(violations, fmt.Errorf("retry delay must not be negative, got %v", runContext.RetryDelay))
	}
	if runContext.MinimumRunningVersions < 0 {
		violations = append(violations, fmt.Errorf("minimum running versions must not be negative, got %d", runContext.MinimumRunningVersions))
	}

	if len(violations) == 0 {
		return nil
	}
	help := "Invalid deployer configuration:\n"
	for _, violation := range violations {
		help += "  - " + violation.Error() + "\n"
	}
	if runContext.BundleName == "" {
		help += bundleIdentityHelp
	}
	return model.NewError(model.KindValidation, errors.Join(violations...), help)
}

// verifyAPIHostname accepts a bare host name; scheme and path are added by
// the client.
func verifyAPIHostname(hostname string) error {
	if hostname == "" {
		return errors.New("api hostname is required")
	}
	if strings.Contains(hostname, "://") || strings.Contains(hostname, "/") {
		return fmt.Errorf("api hostname %q must be a host name without scheme or path", hostname)
	}
	if !hostnamePattern.MatchString(hostname) {
		return fmt.Errorf("api hostname %q is not a valid host name", hostname)
	}
	return nil
}

func verifyPagebuilderVersion(version string) error {
	if version == "" {
		return errors.New("pagebuilder version is required")
	}
	if version == LatestPagebuilder {
		return nil
	}
	if _, err := semver.NewConstraint(version); err != nil {
		return fmt.Errorf("pagebuilder version %q is neither %q nor a semver constraint: %v", version, LatestPagebuilder, err)
	}
	return nil
}

func appendIfErr(errs []error, err error) []error {
	if err == nil {
		return errs
	}
	return append(errs, err)
}
