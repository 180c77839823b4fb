package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Searcher runs title searches. *Client implements it; tests substitute fakes.
type Searcher interface {
	Search(ctx context.Context, title string) (SearchResponse, error)
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

// ErrMalformedResponse marks a 2xx response whose body could not be used.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError reports a non-2xx HTTP status.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}

// Client talks to the Open Library HTTP API.
type Client struct {
	baseURL   *url.URL
	coverBase string
	http      *http.Client
	userAgent string
	limiter   *rate.Limiter
}

// Options configure a Client. Zero values select the public endpoints, no
// request timeout and no rate limit.
type Options struct {
	BaseURL           string
	CoverBaseURL      string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

const (
	defaultUserAgent = "booksearch/0.1 (+https://github.com/five82/booksearch)"
	searchPath       = "/search.json"
)

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	coverBase := strings.TrimSpace(opts.CoverBaseURL)
	if coverBase == "" {
		coverBase = DefaultCoverBaseURL
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:   base,
		coverBase: coverBase,
		http:      httpClient,
		userAgent: userAgent,
		limiter:   limiter,
	}, nil
}

// Search runs a title search. The title is sent as-is apart from URL
// escaping; callers trim it.
func (c *Client) Search(ctx context.Context, title string) (SearchResponse, error) {
	if c == nil {
		return SearchResponse{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("title", title)
	rel := &url.URL{Path: searchPath, RawQuery: values.Encode()}

	body, err := c.get(ctx, c.baseURL.ResolveReference(rel).String(), "application/json")
	if err != nil {
		return SearchResponse{}, err
	}
	defer func() { _ = body.Close() }()

	var payload SearchResponse
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return SearchResponse{}, fmt.Errorf("decode response: %w: %w", ErrMalformedResponse, err)
	}
	if payload.Docs == nil {
		return SearchResponse{}, fmt.Errorf("decode response: %w: docs missing", ErrMalformedResponse)
	}
	return payload, nil
}

// FetchCover downloads the cover image bytes for coverID at the given size.
func (c *Client) FetchCover(ctx context.Context, coverID int64, size CoverSize) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	coverURL, ok := buildCoverURL(c.coverBase, &coverID, size)
	if !ok {
		return nil, fmt.Errorf("cover id %d is not valid", coverID)
	}
	body, err := c.get(ctx, coverURL, "image/jpeg")
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(io.LimitReader(body, maxCoverBytes))
	if err != nil {
		return nil, fmt.Errorf("read cover: %w", err)
	}
	return data, nil
}

const maxCoverBytes = 8 << 20

func (c *Client) get(ctx context.Context, rawURL, accept string) (io.ReadCloser, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, &StatusError{Path: req.URL.Path, Code: resp.StatusCode}
	}
	return resp.Body, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// Outcome classifies a search error into a short label used by logs and
// metrics: "ok", "status", "decode", "canceled" or "transport".
func Outcome(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &statusErr):
		return "status"
	case errors.Is(err, ErrMalformedResponse):
		return "decode"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "transport"
	}
}
