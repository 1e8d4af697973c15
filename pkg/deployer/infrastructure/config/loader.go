package config

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
)

// Inputs are the raw run inputs, as given by flags, environment or the
// config file.
type Inputs struct {
	OrgID                  string
	APIKey                 string
	APIHostname            string
	BundlePrefix           string
	BundleName             string
	PagebuilderVersion     string
	Artifact               string
	RetryCount             int
	RetryDelaySeconds      int
	MinimumRunningVersions int
	Deploy                 bool
	Promote                bool
}

var unsafeBundleChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// NeedsRevision reports whether the bundle name has to be derived, which
// requires the current ref name and commit.
func NeedsRevision(inputs Inputs) bool {
	return strings.TrimSpace(inputs.BundleName) == "" && strings.TrimSpace(inputs.BundlePrefix) != ""
}

func MapToRunContext(inputs Inputs, revision model.Revision, now time.Time) model.RunContext {
	bundleName := strings.TrimSpace(inputs.BundleName)
	forceOverwrite := bundleName != ""
	if NeedsRevision(inputs) {
		bundleName = DeriveBundleName(strings.TrimSpace(inputs.BundlePrefix), revision, now)
	}
	return model.RunContext{
		OrgID:                  strings.TrimSpace(inputs.OrgID),
		APIKey:                 strings.TrimSpace(inputs.APIKey),
		APIHostname:            strings.TrimSpace(inputs.APIHostname),
		BundlePrefix:           strings.TrimSpace(inputs.BundlePrefix),
		BundleName:             bundleName,
		ForceOverwrite:         forceOverwrite,
		PagebuilderVersion:     strings.TrimSpace(inputs.PagebuilderVersion),
		Artifact:               inputs.Artifact,
		RetryCount:             inputs.RetryCount,
		RetryDelay:             time.Duration(inputs.RetryDelaySeconds) * time.Second,
		MinimumRunningVersions: inputs.MinimumRunningVersions,
		ShouldDeploy:           inputs.Deploy,
		ShouldPromote:          inputs.Promote,
	}
}

// DeriveBundleName builds {prefix}-{unix millis}-{ref}-{sha}. Characters
// that are unsafe in a URL path segment, such as the slash of
// "12/merge", are replaced with dashes.
func DeriveBundleName(prefix string, revision model.Revision, now time.Time) string {
	parts := []string{prefix, strconv.FormatInt(now.UnixMilli(), 10)}
	for _, part := range []string{revision.RefName, revision.SHA} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return unsafeBundleChars.ReplaceAllString(strings.Join(parts, "-"), "-")
}
