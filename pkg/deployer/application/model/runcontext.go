package model

import "time"

type BundleName = string

// RunContext is the configuration of a single deployer invocation. It is
// built once before the run starts and passed by value afterwards.
type RunContext struct {
	OrgID       string
	APIKey      string
	APIHostname string

	BundlePrefix string
	BundleName   BundleName
	// ForceOverwrite is set when the bundle name was given explicitly, so a
	// re-upload under the same name replaces the remote bundle.
	ForceOverwrite bool

	PagebuilderVersion string
	Artifact           string

	RetryCount             int
	RetryDelay             time.Duration
	MinimumRunningVersions int

	ShouldDeploy  bool
	ShouldPromote bool
}

type Revision struct {
	RefName string
	SHA     string
}
