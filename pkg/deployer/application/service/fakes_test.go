package service

import (
	"context"
	"time"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
)

type discardLogger struct{}

func (l discardLogger) WithField(string, interface{}) applogger.Logger { return l }
func (l discardLogger) WithFields(applogger.Fields) applogger.Logger { return l }
func (discardLogger) Info(...interface{}) {}
func (discardLogger) Error(error, ...interface{}) {}
func (discardLogger) Warning(error, ...interface{}) {}
func (discardLogger) Debug(...interface{}) {}

// fakeFleet answers ListVersions with the configured responses in order,
// repeating the last one once they run out.
type fakeFleet struct {
	versions    []model.VersionSet
	deployments []model.Deployment

	listVersionsErr    error
	listDeploymentsErr error
	uploadErr          error
	deployErr          error
	terminateErr       error
	promoteErr         error
	deleteErr          error

	listVersionsCalls int
	calls             []string
}

func (f *fakeFleet) ListVersions(context.Context) (model.VersionSet, error) {
	f.calls = append(f.calls, "list-versions")
	f.listVersionsCalls++
	if f.listVersionsErr != nil {
		return nil, f.listVersionsErr
	}
	if len(f.versions) == 0 {
		return model.VersionSet{}, nil
	}
	i := f.listVersionsCalls - 1
	if i >= len(f.versions) {
		i = len(f.versions) - 1
	}
	return f.versions[i], nil
}

func (f *fakeFleet) ListDeployments(context.Context) ([]model.Deployment, error) {
	f.calls = append(f.calls, "list-deployments")
	return f.deployments, f.listDeploymentsErr
}

func (f *fakeFleet) Upload(_ context.Context, bundle model.BundleName, _ string, _ bool) error {
	f.calls = append(f.calls, "upload:"+bundle)
	return f.uploadErr
}

func (f *fakeFleet) Deploy(_ context.Context, bundle model.BundleName, _ string) error {
	f.calls = append(f.calls, "deploy:"+bundle)
	return f.deployErr
}

func (f *fakeFleet) Terminate(_ context.Context, version model.VersionID) error {
	f.calls = append(f.calls, "terminate:"+version)
	return f.terminateErr
}

func (f *fakeFleet) Promote(_ context.Context, version model.VersionID) error {
	f.calls = append(f.calls, "promote:"+version)
	return f.promoteErr
}

func (f *fakeFleet) DeleteBundle(_ context.Context, bundle model.BundleName) error {
	f.calls = append(f.calls, "delete:"+bundle)
	return f.deleteErr
}

func (f *fakeFleet) count(call string) int {
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

type recordingSleep struct {
	delays []time.Duration
}

func (s *recordingSleep) sleep(_ context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return nil
}

func newTestDeployer(fleet *fakeFleet, sleep *recordingSleep) Deployer {
	logger := discardLogger{}
	return NewDeployerService(
		logger,
		fleet,
		NewConvergencePoller(logger, fleet, sleep.sleep),
		NewCleanupHandler(logger, fleet),
	)
}

func validRunContext() model.RunContext {
	return model.RunContext{
		OrgID:                  "org",
		APIKey:                 "key",
		APIHostname:            "api.sandbox.example.com",
		BundleName:             "bundle-1",
		PagebuilderVersion:     "latest",
		Artifact:               "dist/fusion-bundle.zip",
		RetryCount:             5,
		RetryDelay:             5 * time.Second,
		MinimumRunningVersions: 1,
		ShouldDeploy:           true,
		ShouldPromote:          true,
	}
}
