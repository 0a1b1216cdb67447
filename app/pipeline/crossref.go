package pipeline

import (
	"context"

	"github.com/jobnest/jobnest/app/store"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// DefaultLookupLimit is the default number of concurrent catalog lookups.
const DefaultLookupLimit = 5

// CrossReference looks up every title in the catalog concurrently and
// attaches the link of the first match. Result order matches titles.
// Failed lookups are logged and leave the book without a link, they
// never affect other lookups.
func CrossReference(ctx context.Context, lg *slog.Logger, c Catalog, titles []string, limit int) []store.Book {
	books := make([]store.Book, len(titles))

	ewg := &errgroup.Group{}
	if limit > 0 {
		ewg.SetLimit(limit)
	}

	for i, title := range titles {
		i, title := i, title
		books[i].Title = title

		ewg.Go(func() error {
			link, found, err := c.Lookup(ctx, title)
			switch {
			case err != nil:
				lg.WarnContext(ctx, "catalog lookup failed",
					slog.String("title", title),
					slog.Any("err", err))
			case found:
				books[i].Link = link
			}
			return nil
		})
	}

	_ = ewg.Wait()

	return books
}
