package event

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
)

func TestParse_MergedPullRequest(t *testing.T) {
	event, err := Parse("pull_request", []byte(`{"action": "closed", "number": 12, "pull_request": {"merged": true}}`))

	require.NoError(t, err)
	assert.Equal(t, model.TriggerEvent{Name: "pull_request", Action: "closed", Merged: true}, event)
	assert.True(t, event.IsChangeRequestClose())
}

func TestParse_ClosedWithoutMerge(t *testing.T) {
	event, err := Parse("pull_request", []byte(`{"action": "closed", "pull_request": {"merged": false}}`))

	require.NoError(t, err)
	assert.False(t, event.Merged)
	assert.True(t, event.IsChangeRequestClose())
}

func TestParse_InvalidPayload(t *testing.T) {
	_, err := Parse("pull_request", []byte(`{`))

	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"action": "opened", "pull_request": {}}`), 0o600))

	event, err := Load("pull_request", path)

	require.NoError(t, err)
	assert.Equal(t, "opened", event.Action)
	assert.False(t, event.IsChangeRequestClose())
}

func TestLoad_NonPullRequestIgnoresPayload(t *testing.T) {
	event, err := Load("push", filepath.Join(t.TempDir(), "missing.json"))

	require.NoError(t, err)
	assert.Equal(t, model.TriggerEvent{Name: "push"}, event)
}
