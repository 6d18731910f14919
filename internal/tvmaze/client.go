package tvmaze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"owlwatch/internal/episode"
)

const userAgent = "owlwatch/0.1"

// ErrShowNotFound reports a show ID unknown to TVMaze.
var ErrShowNotFound = errors.New("show not found")

// ShowResult is the show metadata owlwatch cares about.
type ShowResult struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Premiered string `json:"premiered"`
	Status    string `json:"status"`
}

// Year returns the premiere year, or 0 when unknown.
func (s ShowResult) Year() int {
	if len(s.Premiered) < 4 {
		return 0
	}
	year, err := strconv.Atoi(s.Premiered[:4])
	if err != nil {
		return 0
	}
	return year
}

// SearchResult is one entry of the TVMaze search response.
type SearchResult struct {
	Score float64    `json:"score"`
	Show  ShowResult `json:"show"`
}

type episodePayload struct {
	Season  *int   `json:"season"`
	Number  *int   `json:"number"`
	Name    string `json:"name"`
	AirDate string `json:"airdate"`
	Type    string `json:"type"`
}

// Client provides access to the TVMaze API.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	retryAttempts int
	retryBackoff  time.Duration
	requestDelay  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetryAttempts sets how many times an episode fetch is retried after
// the initial attempt.
func WithRetryAttempts(attempts int) Option {
	return func(c *Client) {
		if attempts >= 0 {
			c.retryAttempts = attempts
		}
	}
}

// WithRetryBackoff sets the base delay for exponential retry backoff.
func WithRetryBackoff(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.retryBackoff = d
		}
	}
}

// WithRequestDelay sets the pause after each successful episode fetch.
func WithRequestDelay(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.requestDelay = d
		}
	}
}

// New creates a TVMaze client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tvmaze base url required")
	}
	client := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		retryAttempts: 1,
		retryBackoff:  2 * time.Second,
		requestDelay:  500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchShows queries TVMaze's show search endpoint.
func (c *Client) SearchShows(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/search/shows")
	if err != nil {
		return nil, fmt.Errorf("parse tvmaze url: %w", err)
	}
	params := url.Values{}
	params.Set("q", query)
	endpoint.RawQuery = params.Encode()

	var results []SearchResult
	if err := c.getJSON(ctx, endpoint.String(), &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ShowByID fetches show metadata. An unknown ID fails with ErrShowNotFound.
func (c *Client) ShowByID(ctx context.Context, id int64) (*ShowResult, error) {
	endpoint := fmt.Sprintf("%s/shows/%d", c.baseURL, id)
	var show ShowResult
	if err := c.getJSON(ctx, endpoint, &show); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrShowNotFound, id)
		}
		return nil, err
	}
	return &show, nil
}

// Episodes fetches a show's full episode catalog as neutral records.
// TVMaze answers 404 for shows with no episodes yet; that is an empty
// catalog, not an error. Transient failures are retried with exponential
// backoff up to the configured attempt count.
func (c *Client) Episodes(ctx context.Context, showID int64) ([]episode.Record, error) {
	endpoint := fmt.Sprintf("%s/shows/%d/episodes", c.baseURL, showID)

	var lastErr error
	for attempt := 0; attempt <= c.retryAttempts; attempt++ {
		if attempt > 0 {
			backoff := c.retryBackoff << (attempt - 1)
			if err := sleepCtx(ctx, backoff); err != nil {
				return nil, err
			}
		}

		var payloads []episodePayload
		err := c.getJSON(ctx, endpoint, &payloads)
		if err == nil {
			if delayErr := sleepCtx(ctx, c.requestDelay); delayErr != nil {
				return nil, delayErr
			}
			records := make([]episode.Record, 0, len(payloads))
			for _, p := range payloads {
				records = append(records, episode.Record{
					Season:  p.Season,
					Number:  p.Number,
					Name:    p.Name,
					AirDate: p.AirDate,
					Type:    p.Type,
				})
			}
			return records, nil
		}
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("fetch episodes for show %d: %w", showID, lastErr)
}

// errNotFound is internal; exported callers see ErrShowNotFound or an
// empty episode list depending on the endpoint.
var errNotFound = errors.New("tvmaze resource not found")

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tvmaze returned %d (latency=%v)", resp.StatusCode, latency)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tvmaze response: %w", err)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
