package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func NewConvergencePoller(
	logger applogger.Logger,
	directory VersionDirectory,
	sleep SleepFunc,
) ConvergencePoller {
	if sleep == nil {
		sleep = Sleep
	}
	return &poller{
		logger:    logger,
		directory: directory,
		sleep:     sleep,
	}
}

type poller struct {
	logger    applogger.Logger
	directory VersionDirectory
	sleep     SleepFunc
}

// Await polls the version directory at most RetryCount+1 times until its
// latest version differs from previous. The remote deployer has no
// completion callback, so the retry budget is the only bound on the wait.
func (p poller) Await(
	ctx context.Context,
	runContext model.RunContext,
	previous model.Version,
) (model.Convergence, error) {
	attempts := 0
	for remaining := runContext.RetryCount; remaining >= 0; remaining-- {
		attempts++
		versions, err := p.directory.ListVersions(ctx)
		if err != nil {
			return model.TimedOut(attempts), err
		}
		p.logger.Debug(fmt.Sprintf("attempt %d, versions: [%v]", attempts, strings.Join(versions.IDs(), ", ")))
		if latest, ok := versions.Latest(); ok && latest.ID != previous.ID {
			return model.Converged(latest, attempts), nil
		}
		if remaining == 0 {
			break
		}
		p.logger.Debug(fmt.Sprintf("version %v is still the latest, retrying in %v", previous.ID, runContext.RetryDelay))
		err = p.sleep(ctx, runContext.RetryDelay)
		if err != nil {
			return model.TimedOut(attempts), err
		}
	}
	return model.TimedOut(attempts), nil
}
