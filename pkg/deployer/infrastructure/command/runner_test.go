package command

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tss-calculator/deployer/pkg/deployer/infrastructure/logger"
)

func newTestRunner() Runner {
	return NewCommandRunner(logger.NewActionsLogger(io.Discard, false))
}

func TestExecute_TrimsOutput(t *testing.T) {
	output, err := newTestRunner().Execute(context.Background(), Command{
		WorkDir:    t.TempDir(),
		Executable: "sh",
		Args:       []string{"-c", "echo '  abc123  '"},
	})

	require.NoError(t, err)
	assert.Equal(t, "abc123", output)
}

func TestExecute_FailureCarriesStderr(t *testing.T) {
	_, err := newTestRunner().Execute(context.Background(), Command{
		WorkDir:    t.TempDir(),
		Executable: "sh",
		Args:       []string{"-c", "echo 'fatal: not a git repository' >&2; exit 128"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fatal: not a git repository")
	assert.Contains(t, err.Error(), "exit status 128")
}

func TestExecute_EmptyExecutable(t *testing.T) {
	_, err := newTestRunner().Execute(context.Background(), Command{})

	assert.EqualError(t, err, "command executable can not be empty")
}
