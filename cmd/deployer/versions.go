package main

import (
	"context"
	"io"

	"github.com/tss-calculator/deployer/pkg/deployer/infrastructure/dependency"
	"github.com/tss-calculator/deployer/pkg/deployer/infrastructure/render"
)

func versions(ctx context.Context, out io.Writer) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	versionSet, err := dependencyContainer.Deployer().Versions(ctx)
	if err != nil {
		return err
	}
	render.Versions(out, versionSet)
	return nil
}

func services(ctx context.Context, out io.Writer) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	deployments, err := dependencyContainer.Deployer().Deployments(ctx)
	if err != nil {
		return err
	}
	render.Deployments(out, deployments)
	return nil
}
