package ncaa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gregjones/httpcache"

	"ncaa-contests-service/internal/domain/contests"
	"ncaa-contests-service/internal/providers"
)

const requestTimeout = 10 * time.Second

// Config controls how the client reaches the upstream scoreboard API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	// CacheResponses puts an in-memory caching transport in front of the
	// upstream so repeated fetches within a cycle don't re-hit the API.
	CacheResponses bool
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches contests from the NCAA scoreboard API and maps them to
// domain records. Each call is a single attempt with a fixed timeout.
type Client struct {
	baseURL    string
	httpClient httpDoer
	logger     *slog.Logger
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg),
		logger:     logger,
	}
}

// FetchContests issues one GET against the persisted-query endpoint and
// normalizes the response.
func (c *Client) FetchContests(ctx context.Context, q providers.Query) ([]contests.Contest, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	req, err := c.buildRequest(ctx, q)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ncaa: fetch contests: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ncaa: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ncaa: read response: %w", err)
	}

	return ParsePayload(body, c.logger), nil
}

func (c *Client) buildRequest(ctx context.Context, q providers.Query) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}

	variables, err := encodeVariables(q)
	if err != nil {
		return nil, err
	}

	params := req.URL.Query()
	params.Set("meta", operationName)
	params.Set("extensions", encodeExtensions())
	params.Set("variables", variables)
	req.URL.RawQuery = params.Encode()

	req.Header.Set("User-Agent", userAgent)
	return req, nil
}

func encodeExtensions() string {
	return fmt.Sprintf(`{"persistedQuery":{"version":1,"sha256Hash":"%s"}}`, queryHash)
}

func encodeVariables(q providers.Query) (string, error) {
	var week *int
	if q.Week > 0 {
		week = &q.Week
	}
	payload := struct {
		SportCode   string `json:"sportCode"`
		Division    int    `json:"division"`
		SeasonYear  int    `json:"seasonYear"`
		ContestDate string `json:"contestDate"`
		Week        *int   `json:"week"`
	}{
		SportCode:   q.SportCode,
		Division:    q.Division,
		SeasonYear:  q.SeasonYear,
		ContestDate: q.Date,
		Week:        week,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func normalizeBaseURL(base string) string {
	if base == "" {
		return defaultBaseURL
	}
	return base
}

func resolveHTTPClient(cfg Config) httpDoer {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	if cfg.CacheResponses {
		cached := *client
		cached.Transport = cachingTransport(client.Transport)
		return &cached
	}
	return client
}

func cachingTransport(next http.RoundTripper) http.RoundTripper {
	t := httpcache.NewMemoryCacheTransport()
	t.Transport = next
	return t
}
