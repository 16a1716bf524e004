package stock

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelsmith/internal/config"
)

const searchBody = `{
	"videos": [
		{"id": 1, "duration": 3, "video_files": [{"link": "https://cdn/1.mp4"}]},
		{"id": 2, "duration": 12, "video_files": [{"link": "https://cdn/2.mp4"}]},
		{"id": 3, "duration": 20, "video_files": [{"link": "https://cdn/3.mp4"}]}
	]
}`

func newTestClient(url string) *Client {
	return NewClient(config.FetchConfig{
		StockAPIURL: url,
		StockAPIKey: "test-key",
		Timeout:     5,
	})
}

func TestFind_PicksFirstLongEnoughCandidate(t *testing.T) {
	var gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	candidate, err := c.Find(context.Background(), []string{"city", "night"}, 10*time.Second, "portrait", nil)
	require.NoError(t, err)

	assert.Equal(t, "city night", gotQuery)
	assert.Equal(t, "test-key", gotAuth)
	assert.Equal(t, "2", candidate.ID)
	assert.Equal(t, "https://cdn/2.mp4", candidate.URL)
}

func TestFind_SkipsExcludedAssets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	candidate, err := c.Find(context.Background(), []string{"city"}, 10*time.Second, "portrait",
		map[string]bool{"2": true})
	require.NoError(t, err)
	assert.Equal(t, "3", candidate.ID)
}

func TestFind_FallsBackToLongestWhenNoneCover(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	candidate, err := c.Find(context.Background(), []string{"city"}, time.Minute, "portrait", nil)
	require.NoError(t, err)
	assert.Equal(t, "3", candidate.ID)
}

func TestFind_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"videos": []}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Find(context.Background(), []string{"nothing"}, time.Second, "portrait", nil)
	require.Error(t, err)
}
