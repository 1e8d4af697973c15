package render

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
)

func Versions(out io.Writer, versions model.VersionSet) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"#", "VERSION", ""})
	for _, version := range versions {
		var marker string
		switch {
		case len(versions) == 1:
			marker = "oldest, latest"
		case version.Position == 0:
			marker = "oldest"
		case version.Position == len(versions)-1:
			marker = "latest"
		}
		t.AppendRow(table.Row{version.Position, version.ID, marker})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func Deployments(out io.Writer, deployments []model.Deployment) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"VERSION", "BUNDLE", "ALIASES"})
	for _, deployment := range deployments {
		t.AppendRow(table.Row{deployment.Version, deployment.BundleName, strings.Join(deployment.Aliases, ",")})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
