package provider

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
	"github.com/tss-calculator/deployer/pkg/deployer/infrastructure/command"
)

type fakeRunner struct {
	outputs  map[string]string
	err      error
	commands []string
}

func (r *fakeRunner) Execute(_ context.Context, c command.Command) (string, error) {
	line := c.Executable + " " + strings.Join(c.Args, " ")
	r.commands = append(r.commands, line)
	return r.outputs[line], r.err
}

func TestRevision_ResolvesMissingFields(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"git rev-parse --abbrev-ref HEAD": "feature",
		"git rev-parse HEAD":              "abc123",
	}}

	revision, err := NewRevisionProvider(".", runner).Revision(context.Background(), model.Revision{})

	require.NoError(t, err)
	assert.Equal(t, model.Revision{RefName: "feature", SHA: "abc123"}, revision)
}

func TestRevision_KeepsKnownFields(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{"git rev-parse HEAD": "abc123"}}

	revision, err := NewRevisionProvider(".", runner).Revision(context.Background(), model.Revision{RefName: "main"})

	require.NoError(t, err)
	assert.Equal(t, model.Revision{RefName: "main", SHA: "abc123"}, revision)
	assert.Equal(t, []string{"git rev-parse HEAD"}, runner.commands)
}

func TestRevision_GitFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("not a git repository")}

	_, err := NewRevisionProvider(".", runner).Revision(context.Background(), model.Revision{})

	assert.ErrorContains(t, err, "failed to resolve ref name")
}
