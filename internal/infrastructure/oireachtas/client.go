package oireachtas

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bubcass/oireachtas-archive/internal/config"
	"github.com/bubcass/oireachtas-archive/internal/domain"
	"github.com/bubcass/oireachtas-archive/internal/ports"
)

const acceptHeader = "application/xml,text/xml;q=0.9,*/*;q=0.8"

// Client fetches per-day debate records from the open-data endpoint.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

var _ ports.DebateSource = (*Client)(nil)

// NewClient wires an HTTP client; a nil client gets the configured timeout.
func NewClient(cfg config.FetchConfig, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}
	return &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		client:    client,
	}
}

// FetchDay requests the merged debate document for one sitting day.
// A 404, any other non-200 status, and a body that fails the XML sniff all
// mean "no record for this day" and return (nil, nil); only transport-level
// failures surface as errors.
func (c *Client) FetchDay(ctx context.Context, day time.Time) (*domain.DebateRecord, error) {
	url := fmt.Sprintf("%s/%s/debate/mul@/main.xml", c.baseURL, day.Format(domain.DateLayout))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read record body: %w", err)
	}

	if !LooksLikeXML(body) {
		return nil, nil
	}

	return &domain.DebateRecord{Date: day, Body: body}, nil
}
