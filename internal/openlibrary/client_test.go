package openlibrary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("mirror.example.com/some/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_SearchEncodesTitleAndDecodesDocs(t *testing.T) {
	t.Parallel()

	var gotPath, gotTitle, gotRawQuery, gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTitle = r.URL.Query().Get("title")
		gotRawQuery = r.URL.RawQuery
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"numFound": 2,
			"start": 0,
			"docs": [
				{"key": "/works/OL1W", "title": "Dune", "author_name": ["Frank Herbert"], "first_publish_year": 1965, "cover_i": 42},
				{"key": "/works/OL2W", "author_name": []}
			]
		}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	resp, err := c.Search(ctx, "dune & sand")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if gotPath != "/search.json" {
		t.Fatalf("path = %q, want /search.json", gotPath)
	}
	if gotTitle != "dune & sand" {
		t.Fatalf("title param = %q, want %q", gotTitle, "dune & sand")
	}
	if strings.Contains(gotRawQuery, " ") || !strings.Contains(gotRawQuery, "%26") {
		t.Fatalf("raw query = %q, want escaped title", gotRawQuery)
	}
	if !strings.HasPrefix(gotUserAgent, "booksearch/") {
		t.Fatalf("User-Agent = %q, want booksearch/*", gotUserAgent)
	}

	if resp.NumFound != 2 || len(resp.Docs) != 2 {
		t.Fatalf("response = %#v, want 2 docs", resp)
	}
	first := resp.Docs[0]
	if first.TitleOr("") != "Dune" || first.CoverID == nil || *first.CoverID != 42 {
		t.Fatalf("first doc = %#v, want Dune with cover 42", first)
	}
	if year, ok := first.Year(); !ok || year != 1965 {
		t.Fatalf("Year = %d,%v, want 1965,true", year, ok)
	}

	second := resp.Docs[1]
	if second.Title != nil || second.FirstPublishYear != nil || second.CoverID != nil {
		t.Fatalf("second doc scalars = %#v, want all nil", second)
	}
	if second.Authors == nil || len(second.Authors) != 0 {
		t.Fatalf("Authors = %#v, want present but empty", second.Authors)
	}
	if second.Subjects != nil {
		t.Fatalf("Subjects = %#v, want nil (absent)", second.Subjects)
	}
}

func TestClient_SearchErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("title") {
		case "broken":
			_, _ = w.Write([]byte("{not-json"))
		case "nodocs":
			_, _ = w.Write([]byte(`{"numFound": 0}`))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Search(context.Background(), "broken")
	if err == nil || !errors.Is(err, ErrMalformedResponse) || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("Search(broken) error = %v, want decode response error", err)
	}
	if got := Outcome(err); got != "decode" {
		t.Fatalf("Outcome = %q, want decode", got)
	}

	_, err = c.Search(context.Background(), "nodocs")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("Search(nodocs) error = %v, want malformed response", err)
	}

	_, err = c.Search(context.Background(), "anything")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("Search error = %v, want status 500", err)
	}
	if !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("error text = %q, want it to mention status 500", err.Error())
	}
	if got := Outcome(err); got != "status" {
		t.Fatalf("Outcome = %q, want status", got)
	}
}

func TestClient_SearchTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := NewClient(Options{BaseURL: url})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.Search(context.Background(), "dune")
	if err == nil || !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("Search error = %v, want execute request error", err)
	}
	if got := Outcome(err); got != "transport" {
		t.Fatalf("Outcome = %q, want transport", got)
	}
}

func TestClient_RateLimitHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"docs": []}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL, RequestsPerSecond: 0.01})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Search(context.Background(), "first"); err != nil {
		t.Fatalf("first Search returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Search(ctx, "second")
	if err == nil || !strings.Contains(err.Error(), "rate limit wait") {
		t.Fatalf("second Search error = %v, want rate limit wait error", err)
	}
}

func TestClient_FetchCover(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{CoverBaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	data, err := c.FetchCover(context.Background(), 42, CoverSmall)
	if err != nil {
		t.Fatalf("FetchCover returned error: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("FetchCover data = %q, want jpeg-bytes", data)
	}
	if gotPath != "/b/id/42-S.jpg" {
		t.Fatalf("cover path = %q, want /b/id/42-S.jpg", gotPath)
	}

	if _, err := c.FetchCover(context.Background(), 0, CoverSmall); err == nil {
		t.Fatalf("FetchCover(0) returned nil error, want error")
	}
}
