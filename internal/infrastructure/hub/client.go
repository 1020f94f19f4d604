package hub

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/bubcass/oireachtas-archive/internal/config"
	"github.com/bubcass/oireachtas-archive/internal/ports"
)

const hubUserAgent = "oireachtas-archive/1.0"

// Client talks to the dataset-hosting platform's HTTP API for one dataset
// repository on one branch.
type Client struct {
	api      *resty.Client
	transfer *resty.Client
	endpoint string
	dataset  string
	branch   string
	workers  int
}

var _ ports.DatasetHub = (*Client)(nil)

// NewClient builds a client from configuration. The token is optional for
// listing public datasets but required for uploads.
func NewClient(cfg config.HubConfig) *Client {
	api := resty.New()
	api.SetBaseURL(cfg.Endpoint)
	api.SetHeader("user-agent", hubUserAgent)
	if cfg.Token != "" {
		api.SetAuthToken(cfg.Token)
	}

	// LFS storage PUTs go to presigned hrefs on a different host; the
	// bearer token must not leak there.
	transfer := resty.New()
	transfer.SetHeader("user-agent", hubUserAgent)

	workers := cfg.NumWorkers
	if workers <= 0 {
		workers = 1
	}

	return &Client{
		api:      api,
		transfer: transfer,
		endpoint: cfg.Endpoint,
		dataset:  cfg.Dataset,
		branch:   cfg.Branch,
		workers:  workers,
	}
}

type repoInfo struct {
	Siblings []repoSibling `json:"siblings"`
}

type repoSibling struct {
	Rfilename string `json:"rfilename"`
}

// ListRepoFiles returns the path of every file on the configured branch.
func (c *Client) ListRepoFiles(ctx context.Context) ([]string, error) {
	var info repoInfo

	res, err := c.api.R().
		SetContext(ctx).
		SetResult(&info).
		Get(fmt.Sprintf("/api/datasets/%s/revision/%s", c.dataset, c.branch))
	if err != nil {
		return nil, fmt.Errorf("list repo files: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("hub returned %s for %s", res.Status(), c.dataset)
	}

	names := make([]string, 0, len(info.Siblings))
	for _, sibling := range info.Siblings {
		names = append(names, sibling.Rfilename)
	}
	return names, nil
}
