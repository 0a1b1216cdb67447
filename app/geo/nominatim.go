// Package geo provides geocoding lookups and location autocompletion.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
	"github.com/jobnest/jobnest/app/store"
	"github.com/jobnest/jobnest/pkg/logx"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"
)

// DefaultNominatimURL is the address of the public Nominatim instance.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// NominatimParams defines parameters for the Nominatim client.
type NominatimParams struct {
	BaseURL   string
	UserAgent string
	Limit     int
	// Interval between requests, the public instance allows
	// one request per second.
	Interval time.Duration
}

// Nominatim searches places with the Nominatim API.
type Nominatim struct {
	log     *slog.Logger
	rq      *requester.Requester
	limiter *rate.Limiter
	baseURL string
	limit   int
}

// NewNominatim makes new Nominatim client.
func NewNominatim(lg *slog.Logger, cl http.Client, params NominatimParams) *Nominatim {
	if params.BaseURL == "" {
		params.BaseURL = DefaultNominatimURL
	}
	if params.UserAgent == "" {
		params.UserAgent = "jobnest"
	}
	if params.Interval <= 0 {
		params.Interval = time.Second
	}

	return &Nominatim{
		log: lg,
		rq: requester.New(cl,
			middleware.Header("User-Agent", params.UserAgent),
			middleware.Header("Accept", "application/json"),
			logx.LoggingRoundTripper(lg, logx.RoundTripperOpts{Level: slog.LevelDebug}),
		),
		limiter: rate.NewLimiter(rate.Every(params.Interval), 1),
		baseURL: strings.TrimSuffix(params.BaseURL, "/"),
		limit:   params.Limit,
	}
}

type nominatimPlace struct {
	PlaceID     json.Number `json:"place_id"`
	DisplayName string      `json:"display_name"`
}

// Search returns the places matching the free-form query, best first.
func (n *Nominatim) Search(ctx context.Context, query string) ([]store.Place, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	q := url.Values{"format": {"json"}, "q": {query}}
	if n.limit > 0 {
		q.Set("limit", strconv.Itoa(n.limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := n.rq.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			n.log.WarnContext(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, body)
	}

	var places []nominatimPlace
	if err = json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	res := make([]store.Place, 0, len(places))
	for _, p := range places {
		res = append(res, store.Place{ID: p.PlaceID.String(), DisplayName: p.DisplayName})
	}

	return res, nil
}
