package fusion

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
)

const (
	servicesPath = "/deployments/fusion/services"

	// unpublishedVersion is the mutable head that is never a deployed version.
	unpublishedVersion = "$LATEST"
)

type servicesResponse struct {
	Lambdas []lambda `json:"lambdas"`
}

type lambda struct {
	Version     versionField `json:"Version"`
	Environment struct {
		Variables map[string]string `json:"Variables"`
	} `json:"Environment"`
	Aliases []struct {
		Name string `json:"Name"`
	} `json:"Aliases"`
}

func (l lambda) published() bool {
	return l.Version != "" && l.Version != unpublishedVersion
}

func (l lambda) aliasNames() []string {
	if len(l.Aliases) == 0 {
		return nil
	}
	names := make([]string, 0, len(l.Aliases))
	for _, alias := range l.Aliases {
		names = append(names, alias.Name)
	}
	return names
}

// versionField accepts both "12" and 12.
type versionField string

func (v *versionField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = versionField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = versionField(n.String())
	return nil
}

func (c *Client) listLambdas(ctx context.Context) ([]lambda, error) {
	var res servicesResponse
	err := c.get(ctx, &res, servicesPath)
	if err != nil {
		return nil, classify(err, model.KindRemoteUnavailable, "list services")
	}
	return res.Lambdas, nil
}

// ListVersions returns the published versions in the order the API reports
// them, oldest first.
func (c *Client) ListVersions(ctx context.Context) (model.VersionSet, error) {
	lambdas, err := c.listLambdas(ctx)
	if err != nil {
		return nil, err
	}
	versions := make(model.VersionSet, 0, len(lambdas))
	for _, l := range lambdas {
		if !l.published() {
			continue
		}
		versions = append(versions, model.Version{
			ID:       string(l.Version),
			Position: len(versions),
			Aliases:  l.aliasNames(),
		})
	}
	return versions, nil
}

func (c *Client) ListDeployments(ctx context.Context) ([]model.Deployment, error) {
	lambdas, err := c.listLambdas(ctx)
	if err != nil {
		return nil, err
	}
	deployments := make([]model.Deployment, 0, len(lambdas))
	for _, l := range lambdas {
		if !l.published() {
			continue
		}
		deployments = append(deployments, model.Deployment{
			Version:    string(l.Version),
			BundleName: l.Environment.Variables["BUNDLE_NAME"],
			Aliases:    l.aliasNames(),
		})
	}
	return deployments, nil
}

func (c *Client) Deploy(ctx context.Context, bundle model.BundleName, pagebuilderVersion string) error {
	query := url.Values{}
	query.Set("bundle", bundle)
	query.Set("version", pagebuilderVersion)
	err := c.post(ctx, servicesPath, query)
	return classify(err, model.KindDeployRejected, "deploy bundle "+bundle)
}

func (c *Client) Terminate(ctx context.Context, version model.VersionID) error {
	err := c.post(ctx, servicesPath+"/"+url.PathEscape(version)+"/terminate", nil)
	return classify(err, model.KindTerminateFailed, "terminate version "+version)
}

func (c *Client) Promote(ctx context.Context, version model.VersionID) error {
	err := c.post(ctx, servicesPath+"/"+url.PathEscape(version)+"/promote", nil)
	if err == nil {
		return nil
	}
	err = classify(err, model.KindPromoteFailed, "promote version "+version)
	// An unavailable API is still a failed promotion.
	if kind, _ := model.KindOf(err); kind != model.KindPromoteFailed {
		return model.NewError(model.KindPromoteFailed, err, model.HelpOf(err))
	}
	return err
}
