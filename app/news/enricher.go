package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
	"github.com/jobnest/jobnest/app/store"
	"github.com/jobnest/jobnest/pkg/logx"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// Source searches articles by topic.
type Source interface {
	Search(ctx context.Context, topic string) ([]store.Article, error)
}

// Enricher fills empty descriptions and titles of the found articles
// from their pages.
type Enricher struct {
	Source
	log       *slog.Logger
	rq        *requester.Requester
	extractor Extractor
	limit     int
}

// NewEnricher wraps the source with Enricher, limit sets the number of
// pages fetched concurrently.
func NewEnricher(lg *slog.Logger, src Source, cl http.Client, limit int) *Enricher {
	if limit <= 0 {
		limit = 1
	}

	return &Enricher{
		Source: src,
		log:    lg,
		rq: requester.New(cl,
			middleware.Header("Accept", "text/html"),
			logx.LoggingRoundTripper(lg, logx.RoundTripperOpts{Level: slog.LevelDebug}),
		),
		limit: limit,
	}
}

// Search searches articles in the underlying source and enriches them.
// Pages that could not be fetched leave the article as is.
func (e *Enricher) Search(ctx context.Context, topic string) ([]store.Article, error) {
	articles, err := e.Source.Search(ctx, topic)
	if err != nil {
		return nil, err
	}

	ewg := &errgroup.Group{}
	ewg.SetLimit(e.limit)

	for i := range articles {
		if (articles[i].Description != "" && articles[i].Title != "") || articles[i].URL == "" {
			continue
		}

		i := i
		ewg.Go(func() error {
			page, err := e.page(ctx, articles[i].URL)
			if err != nil {
				e.log.WarnContext(ctx, "failed to enrich article",
					slog.String("url", articles[i].URL),
					slog.Any("err", err))
				return nil
			}

			if articles[i].Description == "" {
				articles[i].Description = page.Excerpt
			}
			if articles[i].Title == "" {
				articles[i].Title = page.Title
			}
			return nil
		})
	}

	_ = ewg.Wait()

	return articles, nil
}

func (e *Enricher) page(ctx context.Context, u string) (Page, error) {
	pageURL, err := url.Parse(u)
	if err != nil {
		return Page{}, fmt.Errorf("parse url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return Page{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := e.rq.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			e.log.WarnContext(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	ok := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
	if !ok {
		return Page{}, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	page, err := e.extractor.Extract(resp.Body, pageURL)
	if err != nil {
		return Page{}, fmt.Errorf("extract page: %w", err)
	}

	return page, nil
}
