package news

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jobnest/jobnest/app/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestGNews_Search(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/search", r.URL.Path)
		assert.Equal(t, "technology", r.URL.Query().Get("q"))
		assert.Equal(t, "en", r.URL.Query().Get("lang"))
		assert.Equal(t, "10", r.URL.Query().Get("max"))

		if r.URL.Query().Get("token") != "secret-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors": ["You did not provide an API key."]}`))
			return
		}

		_, err := w.Write([]byte(`{"totalArticles": 2, "articles": [
			{"title": "Go 1.23 is released", "description": "Iterators are here.", "url": "https://go.dev/blog/go1.23",
			 "source": {"name": "Go Blog", "url": "https://go.dev"}},
			{"title": "Tech layoffs slow down", "description": "", "url": "https://example.com/jobs"}
		]}`))
		require.NoError(t, err)
	}))
	defer ts.Close()

	logs := &bytes.Buffer{}
	lg := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	g := NewGNews(lg, http.Client{}, GNewsParams{BaseURL: ts.URL, Token: "secret-token", Lang: "en", Max: 10})

	articles, err := g.Search(context.Background(), "technology")
	require.NoError(t, err)
	assert.Equal(t, []store.Article{
		{Title: "Go 1.23 is released", Description: "Iterators are here.", URL: "https://go.dev/blog/go1.23"},
		{Title: "Tech layoffs slow down", URL: "https://example.com/jobs"},
	}, articles)
	assert.NotContains(t, logs.String(), "secret-token")

	g.Token = "wrong"
	_, err = g.Search(context.Background(), "technology")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "You did not provide an API key.")

	g.Token = ""
	_, err = g.Search(context.Background(), "technology")
	assert.Error(t, err)
}
