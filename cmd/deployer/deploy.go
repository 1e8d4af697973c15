package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
	"github.com/tss-calculator/deployer/pkg/deployer/infrastructure/config"
	"github.com/tss-calculator/deployer/pkg/deployer/infrastructure/dependency"
	"github.com/tss-calculator/deployer/pkg/deployer/infrastructure/event"
)

func deploy(ctx context.Context, inputs config.Inputs, eventName, eventPath string) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	runContext, err := loadRunContext(ctx, dependencyContainer, inputs)
	if err != nil {
		return err
	}
	trigger, err := event.Load(eventName, eventPath)
	if err != nil {
		return err
	}
	report, err := dependencyContainer.Deployer().Deploy(ctx, runContext, trigger)
	for _, recovered := range report.Recovered {
		dependencyContainer.Logger().Debug(fmt.Sprintf("recovered (%v): %v", model.SeverityOf(recovered), recovered))
	}
	dependencyContainer.Logger().Debug(fmt.Sprintf("finished in state %v", report.State))
	if err != nil {
		return err
	}
	return writeOutputs(os.Getenv("GITHUB_OUTPUT"), runContext, report)
}

func loadRunContext(ctx context.Context, dependencyContainer dependency.Container, inputs config.Inputs) (model.RunContext, error) {
	revision := model.Revision{
		RefName: os.Getenv("GITHUB_REF_NAME"),
		SHA:     os.Getenv("GITHUB_SHA"),
	}
	if config.NeedsRevision(inputs) && (revision.RefName == "" || revision.SHA == "") {
		var err error
		revision, err = dependencyContainer.RevisionProvider().Revision(ctx, revision)
		if err != nil {
			return model.RunContext{}, err
		}
	}
	runContext := config.MapToRunContext(inputs, revision, time.Now())
	dependencyContainer.Logger().Info(fmt.Sprintf("using bundle \"%v\"", runContext.BundleName))
	return runContext, nil
}
