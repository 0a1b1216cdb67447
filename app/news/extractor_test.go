package news

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jobnest/jobnest/app/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

//go:embed testdata/article.html
var articleHTML []byte

func TestExtractor_Extract(t *testing.T) {
	page, err := Extractor{}.Extract(bytes.NewReader(articleHTML), nil)
	require.NoError(t, err)

	assert.Equal(t, "Go 1.23 is released", page.Title)
	assert.Equal(t, "The Go team is happy to announce the release of Go 1.23.", page.Excerpt)
}

type sourceFunc func(ctx context.Context, topic string) ([]store.Article, error)

func (f sourceFunc) Search(ctx context.Context, topic string) ([]store.Article, error) {
	return f(ctx, topic)
}

func TestEnricher_Search(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/go1.23", "/untitled":
			_, err := w.Write(articleHTML)
			require.NoError(t, err)
		case "/described":
			t.Error("article with description must not be fetched")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	src := sourceFunc(func(context.Context, string) ([]store.Article, error) {
		return []store.Article{
			{Title: "Go 1.23 is released", URL: ts.URL + "/go1.23"},
			{Title: "Described", URL: ts.URL + "/described", Description: "already here"},
			{Title: "Gone", URL: ts.URL + "/gone"},
			{URL: ts.URL + "/untitled", Description: "no title"},
		}, nil
	})

	articles, err := NewEnricher(slog.Default(), src, http.Client{}, 2).Search(context.Background(), "technology")
	require.NoError(t, err)
	assert.Equal(t, []store.Article{
		{
			Title:       "Go 1.23 is released",
			URL:         ts.URL + "/go1.23",
			Description: "The Go team is happy to announce the release of Go 1.23.",
		},
		{Title: "Described", URL: ts.URL + "/described", Description: "already here"},
		{Title: "Gone", URL: ts.URL + "/gone"},
		{Title: "Go 1.23 is released", URL: ts.URL + "/untitled", Description: "no title"},
	}, articles)

	failing := sourceFunc(func(context.Context, string) ([]store.Article, error) {
		return nil, errors.New("source failed")
	})
	_, err = NewEnricher(slog.Default(), failing, http.Client{}, 2).Search(context.Background(), "technology")
	assert.Error(t, err)
}
