package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jobnest/jobnest/app/store"
	"github.com/mmcdole/gofeed"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// RSS searches articles in the configured RSS and Atom feeds.
type RSS struct {
	log    *slog.Logger
	parser *gofeed.Parser
	feeds  []string
}

// NewRSS makes new RSS source over the feeds.
func NewRSS(lg *slog.Logger, cl *http.Client, feeds []string) *RSS {
	parser := gofeed.NewParser()
	parser.Client = cl
	parser.UserAgent = "jobnest"
	return &RSS{log: lg, parser: parser, feeds: feeds}
}

// Search returns the feed items which title or description mention the topic.
// Unavailable feeds are skipped, the error is returned only if all of them failed.
func (r *RSS) Search(ctx context.Context, topic string) ([]store.Article, error) {
	if len(r.feeds) == 0 {
		return nil, errors.New("no feeds configured")
	}

	items := make([][]store.Article, len(r.feeds))
	errs := make([]error, len(r.feeds))

	ewg := &errgroup.Group{}
	for i, feedURL := range r.feeds {
		i, feedURL := i, feedURL
		ewg.Go(func() error {
			feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
			if err != nil {
				r.log.WarnContext(ctx, "failed to fetch feed", slog.String("feed", feedURL), slog.Any("err", err))
				errs[i] = fmt.Errorf("parse feed %s: %w", feedURL, err)
				return nil
			}
			items[i] = match(feed.Items, topic)
			return nil
		})
	}

	_ = ewg.Wait()

	if countErrs(errs) == len(errs) {
		return nil, errors.Join(errs...)
	}

	res := []store.Article{}
	for _, it := range items {
		res = append(res, it...)
	}

	return res, nil
}

func match(items []*gofeed.Item, topic string) []store.Article {
	topic = strings.ToLower(strings.TrimSpace(topic))

	var res []store.Article
	for _, it := range items {
		if it == nil {
			continue
		}

		if topic != "" &&
			!strings.Contains(strings.ToLower(it.Title), topic) &&
			!strings.Contains(strings.ToLower(it.Description), topic) &&
			!containsFold(it.Categories, topic) {
			continue
		}

		res = append(res, store.Article{
			Title:       strings.TrimSpace(it.Title),
			URL:         it.Link,
			Description: strings.TrimSpace(it.Description),
		})
	}

	return res
}

func containsFold(ss []string, s string) bool {
	for _, v := range ss {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func countErrs(errs []error) (n int) {
	for _, err := range errs {
		if err != nil {
			n++
		}
	}
	return n
}
