package service

import (
	"context"
	"fmt"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
)

func NewCleanupHandler(logger applogger.Logger, fleet FleetAPI) CleanupHandler {
	return &cleanupHandler{
		logger: logger,
		fleet:  fleet,
	}
}

type cleanupHandler struct {
	logger applogger.Logger
	fleet  FleetAPI
}

// Cleanup terminates the deployment running the current bundle unless it is
// live, and deletes the bundle when asked to. Only a failure to list the
// deployments is returned, everything after that is best-effort.
func (handler cleanupHandler) Cleanup(
	ctx context.Context,
	runContext model.RunContext,
	deleteBundle bool,
	report *model.RunReport,
) error {
	deployments, err := handler.fleet.ListDeployments(ctx)
	if err != nil {
		return model.NewError(model.KindCleanupFailed, err, fmt.Sprintf(
			"Cleanup failed while listing deployments for bundle %q.\n", runContext.BundleName,
		))
	}

	deployment, found := findDeployment(deployments, runContext.BundleName)
	switch {
	case !found:
		handler.logger.Info(fmt.Sprintf("no running deployment found for bundle \"%v\", skipping terminate", runContext.BundleName))
	case deployment.IsLive():
		handler.logger.Info(fmt.Sprintf("bundle \"%v\" is the live deployment (version %v), skipping terminate", runContext.BundleName, deployment.Version))
	default:
		terminate(ctx, handler.fleet, handler.logger, deployment.Version, report)
	}

	if !deleteBundle {
		return nil
	}
	handler.logger.Info(fmt.Sprintf("deleting bundle \"%v\"", runContext.BundleName))
	err = handler.fleet.DeleteBundle(ctx, runContext.BundleName)
	if err != nil {
		err = recoverable(model.KindDeleteFailed, err)
		handler.logger.Warning(err, fmt.Sprintf("failed to delete bundle \"%v\"", runContext.BundleName))
		report.Recover(err)
	}
	return nil
}

func findDeployment(deployments []model.Deployment, bundle model.BundleName) (model.Deployment, bool) {
	for _, deployment := range deployments {
		if deployment.BundleName == bundle {
			return deployment, true
		}
	}
	return model.Deployment{}, false
}
