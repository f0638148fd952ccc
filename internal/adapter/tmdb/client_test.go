package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/filmdata-service/internal/adapter/httpfetch"
)

func testOptions() httpfetch.Options {
	return httpfetch.Options{MaxAttempts: 2, Backoff: time.Millisecond, Timeout: 5 * time.Second}
}

func TestMovie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/603", r.URL.Path)
		assert.Equal(t, "k3y", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"imdb_id":"tt0133093","title":"The Matrix","runtime":136,
			"genres":[{"id":28,"name":"Action"}],"spoken_languages":[{"english_name":"English","name":"English"}],
			"budget":63000000,"revenue":463517383}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/3/", "k3y", testOptions())
	require.NoError(t, err)

	resp, err := c.Movie(context.Background(), "603")
	require.NoError(t, err)
	require.True(t, resp.OK())
	assert.Equal(t, "tt0133093", resp.Payload.IMDbID)
	require.NotNil(t, resp.Payload.Runtime)
	assert.Equal(t, int64(136), *resp.Payload.Runtime)
	assert.Equal(t, "English", resp.Payload.SpokenLanguages[0].EnglishName)
	assert.Nil(t, resp.Payload.ProductionCountries)
}

func TestMovieNotFoundIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"status_code":34,"status_message":"The resource you requested could not be found."}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, "k3y", testOptions())
	require.NoError(t, err)

	resp, err := c.Movie(context.Background(), "123")
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Nil(t, resp.Payload)
}

func TestMovieBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, "k3y", testOptions())
	require.NoError(t, err)

	_, err = c.Movie(context.Background(), "603")
	assert.Error(t, err)
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New("", "", testOptions())
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
