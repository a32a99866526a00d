package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/train-tracker/config"
)

// Client is an HTTP client for the live-location API.
type Client struct {
	baseURL    string
	fleetPath  string
	searchPath string
	httpClient *http.Client
}

// NewClient creates a new live-location API client from configuration.
func NewClient(cfg config.UpstreamConfig) *Client {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if cfg.TimeoutMS == 0 {
		timeout = time.Duration(config.DefaultTimeoutMS) * time.Millisecond
	}
	fleetPath := cfg.FleetPath
	if fleetPath == "" {
		fleetPath = config.DefaultFleetPath
	}
	searchPath := cfg.SearchPath
	if searchPath == "" {
		searchPath = config.DefaultSearchPath
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		fleetPath:  fleetPath,
		searchPath: searchPath,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchFleet fetches the full current fleet snapshot. A response without a
// trains field (or with a malformed one) is an empty fleet, not an error.
func (c *Client) FetchFleet(ctx context.Context) ([]Train, error) {
	u := c.baseURL + c.fleetPath
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, &FetchError{URL: u, Err: err}
	}
	var resp fleetResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return []Train{}, nil
	}
	if resp.Trains == nil {
		return []Train{}, nil
	}
	return resp.Trains, nil
}

// SearchFleet searches the fleet by free-text query. The query is trimmed;
// a blank query is rejected locally with ErrEmptyQuery and no network call.
// Empty results is a successful response with zero matches.
func (c *Client) SearchFleet(ctx context.Context, query string) ([]Train, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	u := c.baseURL + c.searchPath + "?query=" + url.QueryEscape(query)
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, &SearchError{Query: query, Err: err}
	}
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &SearchError{Query: query, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if resp.Results == nil {
		return []Train{}, nil
	}
	return resp.Results, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, u)
	}

	return io.ReadAll(resp.Body)
}
