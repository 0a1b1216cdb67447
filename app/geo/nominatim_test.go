package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jobnest/jobnest/app/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestNominatim_Search(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "jobnest-test", r.Header.Get("User-Agent"))

		if r.URL.Query().Get("q") != "Berlin" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		_, err := w.Write([]byte(`[
			{"place_id": 240109189, "display_name": "Berlin, Germany", "lat": "52.5", "lon": "13.4"},
			{"place_id": 1234, "display_name": "Berlin, New Hampshire, United States"}
		]`))
		require.NoError(t, err)
	}))
	defer ts.Close()

	n := NewNominatim(slog.Default(), http.Client{}, NominatimParams{
		BaseURL:   ts.URL,
		UserAgent: "jobnest-test",
		Limit:     5,
		Interval:  time.Millisecond,
	})

	places, err := n.Search(context.Background(), "Berlin")
	require.NoError(t, err)
	assert.Equal(t, []store.Place{
		{ID: "240109189", DisplayName: "Berlin, Germany"},
		{ID: "1234", DisplayName: "Berlin, New Hampshire, United States"},
	}, places)

	_, err = n.Search(context.Background(), "???")
	assert.Error(t, err)
}

func TestNominatim_RateLimited(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	n := NewNominatim(slog.Default(), http.Client{}, NominatimParams{BaseURL: ts.URL, Interval: time.Hour})

	_, err := n.Search(context.Background(), "Paris")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = n.Search(ctx, "Paris")
	assert.Error(t, err, "second request must wait for the next slot")
}
