// Package news provides sources of news articles.
package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
	"github.com/jobnest/jobnest/app/store"
	"github.com/jobnest/jobnest/pkg/logx"
	"golang.org/x/exp/slog"
)

// DefaultGNewsURL is the address of the GNews API.
const DefaultGNewsURL = "https://gnews.io"

// GNewsParams defines parameters for the GNews client.
type GNewsParams struct {
	BaseURL string
	Token   string
	Lang    string
	Max     int
}

// GNews searches articles with GNews API.
type GNews struct {
	log *slog.Logger
	rq  *requester.Requester
	GNewsParams
}

// NewGNews makes new GNews client.
func NewGNews(lg *slog.Logger, cl http.Client, params GNewsParams) *GNews {
	if params.BaseURL == "" {
		params.BaseURL = DefaultGNewsURL
	}
	params.BaseURL = strings.TrimSuffix(params.BaseURL, "/")

	return &GNews{
		log: lg,
		rq: requester.New(cl,
			middleware.Header("Accept", "application/json"),
			logx.LoggingRoundTripper(lg, logx.RoundTripperOpts{
				Level:       slog.LevelDebug,
				SecretQuery: []string{"token", "apikey"},
			}),
		),
		GNewsParams: params,
	}
}

type gnewsResponse struct {
	TotalArticles int `json:"totalArticles"`
	Articles      []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
	} `json:"articles"`
	Errors []string `json:"errors"`
}

// Search returns articles about the topic.
func (g *GNews) Search(ctx context.Context, topic string) ([]store.Article, error) {
	if g.Token == "" {
		return nil, errors.New("gnews token is not set")
	}

	q := url.Values{"q": {topic}, "token": {g.Token}}
	if g.Lang != "" {
		q.Set("lang", g.Lang)
	}
	if g.Max > 0 {
		q.Set("max", strconv.Itoa(g.Max))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"/api/v4/search?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := g.rq.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", g.maskToken(err))
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			g.log.WarnContext(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	var gr gnewsResponse
	if err = json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("decode response with status %d: %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, strings.Join(gr.Errors, "; "))
	}

	res := make([]store.Article, 0, len(gr.Articles))
	for _, a := range gr.Articles {
		res = append(res, store.Article{Title: a.Title, URL: a.URL, Description: a.Description})
	}

	return res, nil
}

// maskToken removes the token from the url kept in the error.
func (g *GNews) maskToken(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		uerr.URL = strings.ReplaceAll(uerr.URL, url.QueryEscape(g.Token), "***")
	}
	return err
}
