package main

import (
	"context"

	"github.com/tss-calculator/deployer/pkg/deployer/infrastructure/config"
	"github.com/tss-calculator/deployer/pkg/deployer/infrastructure/dependency"
)

func cleanup(ctx context.Context, inputs config.Inputs, deleteBundle bool) error {
	// Derived names change on every run and never match a deployed bundle.
	inputs.BundlePrefix = ""
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	runContext, err := loadRunContext(ctx, dependencyContainer, inputs)
	if err != nil {
		return err
	}
	_, err = dependencyContainer.Deployer().Cleanup(ctx, runContext, deleteBundle)
	return err
}
