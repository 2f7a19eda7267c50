package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/matzehuels/pagemarks/pkg/httputil"
	"github.com/matzehuels/pagemarks/pkg/pipeline"
	"github.com/matzehuels/pagemarks/pkg/scene"
)

// Client calls a remote layout server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Policy  httputil.Policy
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    http.DefaultClient,
		Policy:  httputil.DefaultPolicy,
	}
}

// Layout lays out s remotely and reports whether the server had it cached.
func (c *Client) Layout(ctx context.Context, s *scene.Scene, opts pipeline.Options) (*pipeline.Result, bool, error) {
	passes := opts.RelaxationPasses
	req := LayoutRequest{Scene: *s, RelaxationPasses: &passes, Refresh: opts.Refresh}

	var resp LayoutResponse
	if err := httputil.PostJSON(ctx, c.HTTP, c.Policy, c.BaseURL+"/v1/layout", req, &resp); err != nil {
		return nil, false, err
	}
	return resp.Result, resp.CacheHit, nil
}
