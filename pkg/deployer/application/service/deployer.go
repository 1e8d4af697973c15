package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
)

// VersionDirectory lists the versions of the fusion deployment, oldest
// first.
type VersionDirectory interface {
	ListVersions(ctx context.Context) (model.VersionSet, error)
}

type FleetAPI interface {
	VersionDirectory
	ListDeployments(ctx context.Context) ([]model.Deployment, error)
	Upload(ctx context.Context, bundle model.BundleName, artifact string, overwrite bool) error
	Deploy(ctx context.Context, bundle model.BundleName, pagebuilderVersion string) error
	Terminate(ctx context.Context, version model.VersionID) error
	Promote(ctx context.Context, version model.VersionID) error
	DeleteBundle(ctx context.Context, bundle model.BundleName) error
}

type ConvergencePoller interface {
	Await(ctx context.Context, runContext model.RunContext, previous model.Version) (model.Convergence, error)
}

type CleanupHandler interface {
	Cleanup(ctx context.Context, runContext model.RunContext, deleteBundle bool, report *model.RunReport) error
}

type Deployer interface {
	Deploy(ctx context.Context, runContext model.RunContext, event model.TriggerEvent) (*model.RunReport, error)
	Cleanup(ctx context.Context, runContext model.RunContext, deleteBundle bool) (*model.RunReport, error)
	Versions(ctx context.Context) (model.VersionSet, error)
	Deployments(ctx context.Context) ([]model.Deployment, error)
}

func NewDeployerService(
	logger applogger.Logger,
	fleet FleetAPI,
	poller ConvergencePoller,
	cleanupHandler CleanupHandler,
) Deployer {
	return &deployer{
		logger:         logger,
		fleet:          fleet,
		poller:         poller,
		cleanupHandler: cleanupHandler,
	}
}

type deployer struct {
	logger         applogger.Logger
	fleet          FleetAPI
	poller         ConvergencePoller
	cleanupHandler CleanupHandler
}

func (service deployer) Deploy(
	ctx context.Context,
	runContext model.RunContext,
	event model.TriggerEvent,
) (*model.RunReport, error) {
	report := model.NewRunReport()
	fail := func(err error) (*model.RunReport, error) {
		report.Transition(model.StateFailed)
		return report, err
	}

	err := ValidateRunContext(runContext)
	if err != nil {
		return fail(err)
	}
	report.Transition(model.StateValidated)

	versions, err := service.fleet.ListVersions(ctx)
	if err != nil {
		return fail(err)
	}
	service.logger.Debug(fmt.Sprintf("current versions: [%v]", strings.Join(versions.IDs(), ", ")))
	report.Versions = versions
	oldest, hasOldest := versions.Oldest()
	latest, hasLatest := versions.Latest()
	if hasOldest {
		report.Oldest = &oldest
		report.Latest = &latest
	}
	report.Transition(model.StateVersionsFetched)

	// A failed cleanup does not change the path taken, it only fails the run
	// once that path is finished.
	var cleanupErr error
	if event.IsChangeRequestClose() {
		report.Transition(model.StateCleanupBranch)
		if event.Merged {
			service.logger.Info("pull request merged, will try to delete bundle")
		} else {
			service.logger.Info("pull request closed without merge, will not try to delete bundle")
		}
		cleanupErr = service.cleanupHandler.Cleanup(ctx, runContext, event.Merged, report)
		if cleanupErr != nil {
			service.logger.Error(cleanupErr, "cleanup failed")
		}
		if event.Merged {
			if cleanupErr != nil {
				return fail(cleanupErr)
			}
			service.logger.Info("pull request merged, bundle cleanup completed, skipping upload, deploy and promote")
			report.Transition(model.StateDone)
			return report, nil
		}
	}
	report.Transition(model.StateMainBranch)

	err = service.upload(ctx, runContext)
	if err != nil {
		return fail(err)
	}
	report.Transition(model.StateUploaded)

	if !runContext.ShouldDeploy {
		return service.finish(report, cleanupErr)
	}

	service.logger.Info(fmt.Sprintf("deploying bundle \"%v\" on pagebuilder \"%v\"", runContext.BundleName, runContext.PagebuilderVersion))
	err = service.fleet.Deploy(ctx, runContext.BundleName, runContext.PagebuilderVersion)
	if err != nil {
		return fail(err)
	}
	report.Transition(model.StateDeployed)

	if hasOldest && len(versions) > runContext.MinimumRunningVersions {
		report.Transition(model.StateTerminating)
		if oldest.IsLive() {
			service.logger.Info(fmt.Sprintf("oldest version %v is live, skipping terminate", oldest.ID))
		} else {
			terminate(ctx, service.fleet, service.logger, oldest.ID, report)
		}
	}

	if !hasLatest {
		return service.finish(report, cleanupErr)
	}

	report.Transition(model.StateConverging)
	convergence, err := service.poller.Await(ctx, runContext, latest)
	if err != nil {
		return fail(err)
	}
	if !convergence.Converged {
		return fail(model.NewConvergenceTimeoutError(&model.ConvergenceTimeout{
			Attempts:   convergence.Attempts,
			RetryCount: runContext.RetryCount,
			RetryDelay: runContext.RetryDelay,
		}))
	}
	newest := convergence.Version
	report.NewestVersion = &newest
	service.logger.Info(fmt.Sprintf("new version %v detected after %d attempts", newest.ID, convergence.Attempts))

	if runContext.ShouldPromote {
		report.Transition(model.StatePromoting)
		service.logger.Info(fmt.Sprintf("promoting version %v to live", newest.ID))
		err = service.fleet.Promote(ctx, newest.ID)
		if err != nil {
			return fail(err)
		}
	}
	return service.finish(report, cleanupErr)
}

func (service deployer) Cleanup(ctx context.Context, runContext model.RunContext, deleteBundle bool) (*model.RunReport, error) {
	report := model.NewRunReport()
	if runContext.BundleName == "" {
		report.Transition(model.StateFailed)
		return report, model.NewError(model.KindValidation, errBundleIdentity, cleanupBundleHelp)
	}
	report.Transition(model.StateCleanupBranch)
	err := service.cleanupHandler.Cleanup(ctx, runContext, deleteBundle, report)
	if err != nil {
		report.Transition(model.StateFailed)
		return report, err
	}
	report.Transition(model.StateDone)
	return report, nil
}

func (service deployer) Versions(ctx context.Context) (model.VersionSet, error) {
	return service.fleet.ListVersions(ctx)
}

func (service deployer) Deployments(ctx context.Context) ([]model.Deployment, error) {
	return service.fleet.ListDeployments(ctx)
}

func (service deployer) upload(ctx context.Context, runContext model.RunContext) error {
	service.logger.Info(fmt.Sprintf("uploading \"%v\" as bundle \"%v\" (overwrite = %v)...", runContext.Artifact, runContext.BundleName, runContext.ForceOverwrite))
	start := time.Now()
	err := service.fleet.Upload(ctx, runContext.BundleName, runContext.Artifact, runContext.ForceOverwrite)
	if err != nil {
		return err
	}
	service.logger.Info(fmt.Sprintf("done in %v", time.Since(start).String()))
	return nil
}

func (service deployer) finish(report *model.RunReport, cleanupErr error) (*model.RunReport, error) {
	if cleanupErr != nil {
		report.Transition(model.StateFailed)
		return report, cleanupErr
	}
	report.Transition(model.StateDone)
	return report, nil
}
