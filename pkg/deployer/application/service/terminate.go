package service

import (
	"context"
	"fmt"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
)

// terminate stops a version on a best-effort basis. A surviving old version
// only costs resources, so the failure is recorded on the report and logged
// as a warning.
func terminate(
	ctx context.Context,
	fleet FleetAPI,
	logger applogger.Logger,
	version model.VersionID,
	report *model.RunReport,
) {
	logger.Info(fmt.Sprintf("terminating version %v", version))
	err := fleet.Terminate(ctx, version)
	if err == nil {
		return
	}
	err = recoverable(model.KindTerminateFailed, err)
	logger.Warning(err, fmt.Sprintf("failed to terminate version %v", version))
	report.Recover(err)
}

func recoverable(kind model.ErrorKind, err error) error {
	if k, ok := model.KindOf(err); ok && k == kind {
		return err
	}
	return model.NewError(kind, err, "")
}
