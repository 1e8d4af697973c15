package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
)

func TestWriteOutputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	require.NoError(t, os.WriteFile(path, []byte("previous=1\n"), 0o600))
	report := model.NewRunReport()
	report.NewestVersion = &model.Version{ID: "15"}

	err := writeOutputs(path, model.RunContext{BundleName: "bundle-1"}, report)

	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous=1\nbundle-name=bundle-1\nnewest-version=15\n", string(content))
}

func TestWriteOutputs_OutsideActions(t *testing.T) {
	assert.NoError(t, writeOutputs("", model.RunContext{}, model.NewRunReport()))
}

func TestEnvVars(t *testing.T) {
	assert.Equal(t, []string{"INPUT_ORG-ID", "DEPLOYER_ORG_ID"}, envVars("org-id"))
}
