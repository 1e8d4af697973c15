package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
)

// writeOutputs appends step outputs to the GitHub Actions output file. It
// does nothing outside Actions.
func writeOutputs(path string, runContext model.RunContext, report *model.RunReport) error {
	if path == "" {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "bundle-name=%s\n", runContext.BundleName)
	if report.NewestVersion != nil {
		fmt.Fprintf(&b, "newest-version=%s\n", report.NewestVersion.ID)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "failed to open outputs file %v", path)
	}
	defer file.Close()
	_, err = file.WriteString(b.String())
	return errors.Wrapf(err, "failed to write outputs file %v", path)
}
