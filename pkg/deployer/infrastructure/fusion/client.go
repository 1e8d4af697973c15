package fusion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/tss-calculator/deployer/pkg/deployer/application/model"
)

const (
	organizationHeader = "Arc-Organization"
	userAgent          = "deployer (github.com/tss-calculator/deployer)"

	// maxErrorBody bounds how much of an error response ends up in messages.
	maxErrorBody = 4 << 10
)

type Config struct {
	// Endpoint is the API base URL, e.g. https://api.sandbox.example.com
	Endpoint string
	OrgID    string
	// Progress receives an upload progress bar when not nil.
	Progress io.Writer
}

// Client talks to the fusion deployments API. Authentication is the
// responsibility of the supplied http.Client.
type Client struct {
	client   *http.Client
	endpoint string
	orgID    string
	progress io.Writer
}

func NewClient(c *http.Client, config Config) *Client {
	return &Client{
		client:   c,
		endpoint: strings.TrimRight(config.Endpoint, "/"),
		orgID:    config.OrgID,
		progress: config.Progress,
	}
}

// StatusError is an unexpected HTTP status returned by the API.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return e.Status
	}
	return e.Status + " " + e.Body
}

func (e *StatusError) clientSide() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// get executes a get request and unmarshals the response into dest.
func (c *Client) get(ctx context.Context, dest interface{}, path string) error {
	return c.methodWithResp(ctx, http.MethodGet, path, nil, nil, "", dest)
}

// post is a simple query-param only post request.
func (c *Client) post(ctx context.Context, path string, query url.Values) error {
	return c.methodWithResp(ctx, http.MethodPost, path, query, nil, "", nil)
}

// methodWithResp handles query encoding and decodes the response into dest
// when dest is not nil.
func (c *Client) methodWithResp(
	ctx context.Context,
	method, path string,
	query url.Values,
	body io.Reader,
	contentType string,
	dest interface{},
) error {
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return errors.Wrapf(err, "constructing request %s", u)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.orgID != "" {
		req.Header.Set(organizationHeader, c.orgID)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.executeRequest(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return remoteUnavailable(errors.Wrapf(err, "reading response from %s %s", method, path))
	}
	if err := json.Unmarshal(respBytes, dest); err != nil {
		return model.NewError(
			model.KindDecode,
			errors.Wrapf(err, "decoding response from %s %s", method, path),
			"The deployments API returned a response that could not be understood.\n",
		)
	}
	return nil
}

func (c *Client) executeRequest(req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, remoteUnavailable(errors.Wrapf(err, "executing HTTP request %s %s", req.Method, req.URL.Path))
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return nil, &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}

func remoteUnavailable(err error) error {
	return model.NewError(
		model.KindRemoteUnavailable,
		err,
		"The deployments API could not be reached or failed to answer. This is\nusually transient, so retrying the run may help.\n",
	)
}

// classify turns a raw request failure into a categorised error. Client side
// statuses mean the API refused the operation, everything else is treated as
// the API being unavailable.
func classify(err error, rejected model.ErrorKind, operation string) error {
	if err == nil {
		return nil
	}
	if _, ok := model.KindOf(err); ok {
		return err
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return remoteUnavailable(errors.Wrap(err, operation))
	}
	err = errors.Wrap(err, operation)
	switch {
	case statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden:
		return model.NewError(rejected, err, fmt.Sprintf(
			"The deployments API refused to %s (%s). Check that the api key is valid\nand belongs to the configured organization.\n",
			operation, statusErr.Status,
		))
	case statusErr.clientSide():
		return model.NewError(rejected, err, fmt.Sprintf("The deployments API rejected the request to %s.\n", operation))
	default:
		return remoteUnavailable(err)
	}
}
