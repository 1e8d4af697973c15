package provider

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
	"github.com/tss-calculator/deployer/pkg/deployer/infrastructure/command"
)

type RevisionProvider interface {
	// Revision fills whatever fields of known are empty.
	Revision(ctx context.Context, known model.Revision) (model.Revision, error)
}

// NewRevisionProvider resolves the checked out ref and commit of repoDir
// with git.
func NewRevisionProvider(repoDir string, runner command.Runner) RevisionProvider {
	return &revisionProvider{
		repoDir: repoDir,
		runner:  runner,
	}
}

type revisionProvider struct {
	repoDir string
	runner  command.Runner
}

func (provider revisionProvider) Revision(ctx context.Context, known model.Revision) (model.Revision, error) {
	revision := known
	if revision.RefName == "" {
		refName, err := provider.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
		if err != nil {
			return model.Revision{}, errors.Wrap(err, "failed to resolve ref name")
		}
		revision.RefName = refName
	}
	if revision.SHA == "" {
		sha, err := provider.git(ctx, "rev-parse", "HEAD")
		if err != nil {
			return model.Revision{}, errors.Wrap(err, "failed to resolve commit sha")
		}
		revision.SHA = sha
	}
	return revision, nil
}

func (provider revisionProvider) git(ctx context.Context, args ...string) (string, error) {
	return provider.runner.Execute(ctx, command.Command{
		WorkDir:    provider.repoDir,
		Executable: "git",
		Args:       args,
	})
}
