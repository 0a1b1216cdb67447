// Package catalog looks up books in the Open Library catalog.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
	"github.com/jobnest/jobnest/pkg/logx"
	"golang.org/x/exp/slog"
)

// DefaultOpenLibraryURL is the address of the public Open Library instance.
const DefaultOpenLibraryURL = "https://openlibrary.org"

// OpenLibraryParams defines parameters for the OpenLibrary client.
type OpenLibraryParams struct {
	BaseURL   string
	CacheSize int
	CacheTTL  time.Duration
}

// OpenLibrary searches books in the Open Library.
type OpenLibrary struct {
	log     *slog.Logger
	rq      *requester.Requester
	baseURL string
	cache   cache.Cache[string, lookupResult]
}

type lookupResult struct {
	link  string
	found bool
}

// NewOpenLibrary makes new OpenLibrary client.
func NewOpenLibrary(lg *slog.Logger, cl http.Client, params OpenLibraryParams) *OpenLibrary {
	if params.BaseURL == "" {
		params.BaseURL = DefaultOpenLibraryURL
	}
	if params.CacheSize <= 0 {
		params.CacheSize = 1000
	}

	c := cache.NewCache[string, lookupResult]().WithLRU().WithMaxKeys(params.CacheSize)
	if params.CacheTTL > 0 {
		c = c.WithTTL(params.CacheTTL)
	}

	return &OpenLibrary{
		log: lg,
		rq: requester.New(cl,
			middleware.Header("Accept", "application/json"),
			logx.LoggingRoundTripper(lg, logx.RoundTripperOpts{Level: slog.LevelDebug}),
		),
		baseURL: strings.TrimSuffix(params.BaseURL, "/"),
		cache:   c,
	}
}

type searchResponse struct {
	NumFound int `json:"numFound"`
	Docs     []struct {
		Key   string `json:"key"`
		Title string `json:"title"`
	} `json:"docs"`
}

// Lookup searches the book by title and returns the link to the first match.
// found is false if the catalog has no such book.
func (o *OpenLibrary) Lookup(ctx context.Context, title string) (link string, found bool, err error) {
	if res, ok := o.cache.Get(title); ok {
		return res.link, res.found, nil
	}

	u := o.baseURL + "/search.json?" + url.Values{"title": {title}, "limit": {"1"}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return "", false, fmt.Errorf("build request: %w", err)
	}

	resp, err := o.rq.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			o.log.WarnContext(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", false, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, body)
	}

	var sr searchResponse
	if err = json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", false, fmt.Errorf("decode response: %w", err)
	}

	res := lookupResult{}
	if len(sr.Docs) > 0 && sr.Docs[0].Key != "" {
		res = lookupResult{link: o.baseURL + sr.Docs[0].Key, found: true}
	}

	o.cache.Set(title, res, 0)
	return res.link, res.found, nil
}
