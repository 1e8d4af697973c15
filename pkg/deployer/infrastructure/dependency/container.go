package dependency

import (
	"context"
	"errors"
	"io"

	"github.com/tss-calculator/deployer/pkg/deployer/application/service"
	"github.com/tss-calculator/deployer/pkg/deployer/infrastructure/command"
	"github.com/tss-calculator/deployer/pkg/deployer/infrastructure/fusion"
	"github.com/tss-calculator/deployer/pkg/deployer/infrastructure/provider"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
)

type containerKey struct{}

type Settings struct {
	APIHostname string
	OrgID       string
	APIKey      string
	RateLimit   fusion.RateLimiterConfig
	Progress    io.Writer
	RepoDir     string
}

type Container interface {
	Logger() applogger.Logger
	Deployer() service.Deployer
	RevisionProvider() provider.RevisionProvider
}

func NewDependencyContainer(
	ctx context.Context,
	logger applogger.Logger,
	settings Settings,
) Container {
	runner := command.NewCommandRunner(logger)
	revisionProvider := provider.NewRevisionProvider(settings.RepoDir, runner)
	fleet := fusion.NewClient(
		fusion.NewHTTPClient(ctx, settings.APIKey, settings.RateLimit),
		fusion.Config{
			Endpoint: "https://" + settings.APIHostname,
			OrgID:    settings.OrgID,
			Progress: settings.Progress,
		},
	)
	poller := service.NewConvergencePoller(logger, fleet, service.Sleep)
	cleanupHandler := service.NewCleanupHandler(logger, fleet)
	deployerService := service.NewDeployerService(logger, fleet, poller, cleanupHandler)

	return &container{
		logger:           logger,
		deployer:         deployerService,
		revisionProvider: revisionProvider,
	}
}

type container struct {
	logger           applogger.Logger
	deployer         service.Deployer
	revisionProvider provider.RevisionProvider
}

func (c *container) Logger() applogger.Logger {
	return c.logger
}

func (c *container) Deployer() service.Deployer {
	return c.deployer
}

func (c *container) RevisionProvider() provider.RevisionProvider {
	return c.revisionProvider
}

func ContainerFromContext(ctx context.Context) (Container, error) {
	v := ctx.Value(containerKey{})
	if c, ok := v.(Container); ok {
		return c, nil
	}
	return nil, errors.New("dependency container not found")
}

func ContainerToContext(ctx context.Context, c Container) context.Context {
	return context.WithValue(ctx, containerKey{}, c)
}
