package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Bukkimarh/cinetrends/pkg/provider"
	"github.com/stretchr/testify/assert"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &Client{
		apiKey:      "test-key",
		baseURL:     srv.URL,
		httpClient:  srv.Client(),
		maxAttempts: 3,
		retryDelay:  time.Millisecond,
	}
}

func TestResolvePersonFirstResultWins(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/person", r.URL.Path)
		assert.Equal(t, "Will Smith", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Write([]byte(`{"page":1,"results":[{"id":2888,"name":"Will Smith"},{"id":9999,"name":"Willard Smith"}],"total_results":2,"total_pages":1}`))
	}))

	id, err := c.ResolvePerson(context.Background(), "Will Smith")

	assert.NoError(t, err)
	assert.Equal(t, "2888", id)
}

func TestResolvePersonNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"results":[],"total_results":0,"total_pages":0}`))
	}))

	_, err := c.ResolvePerson(context.Background(), "Nobody At All")

	assert.ErrorIs(t, err, provider.ErrNotFound)
}

func TestResolvePersonServerErrorIsTerminal(t *testing.T) {
	var requests int
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "server error", http.StatusInternalServerError)
	}))

	_, err := c.ResolvePerson(context.Background(), "Will Smith")

	var httpErr *provider.HTTPError
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, 1, requests, "non-429 statuses must not be retried")
}

func TestResolveGenreMatchesCaseInsensitively(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/genre/movie/list", r.URL.Path)
		w.Write([]byte(`{"genres":[{"id":28,"name":"Action"},{"id":35,"name":"Comedy"}]}`))
	}))

	id, err := c.ResolveGenre(context.Background(), "comedy")

	assert.NoError(t, err)
	assert.Equal(t, "35", id)

	_, err = c.ResolveGenre(context.Background(), "Mockumentary")
	assert.ErrorIs(t, err, provider.ErrNotFound)
}

func TestDiscoverByPersonQueryShape(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, "2888", q.Get("with_cast"))
		assert.Equal(t, "2020-01-01", q.Get("primary_release_date.gte"))
		assert.Equal(t, "2024-12-31", q.Get("primary_release_date.lte"))
		assert.Equal(t, SortReleaseDateAsc, q.Get("sort_by"))
		assert.Equal(t, "2", q.Get("page"))
		w.Write([]byte(`{"page":2,"results":[
			{"id":1,"title":"Bad Boys","release_date":"2020-01-17","vote_average":7.1,"vote_count":8000},
			{"id":2,"title":"Unrated Short","release_date":"2021-03-02","vote_average":0,"vote_count":0}
		],"total_results":2,"total_pages":2}`))
	}))

	filter := provider.Filter{Range: provider.YearRange{Start: 2020, End: 2024}}
	records, err := c.DiscoverByPerson(context.Background(), "2888", filter, 2)

	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "Bad Boys", records[0].Title)
	assert.NotNil(t, records[0].Rating)
	assert.Equal(t, 7.1, *records[0].Rating)
	assert.Nil(t, records[1].Rating, "zero-vote records carry no rating")
}

func TestDiscoverByGenreSortOverride(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "35", q.Get("with_genres"))
		assert.Equal(t, SortReleaseDateAsc, q.Get("sort_by"))
		w.Write([]byte(`{"page":1,"results":[],"total_results":0,"total_pages":0}`))
	}))

	filter := provider.Filter{
		Range: provider.YearRange{Start: 2000, End: 2009},
		Sort:  SortReleaseDateAsc,
	}
	_, err := c.DiscoverByGenre(context.Background(), "35", filter, 1)

	assert.NoError(t, err)
}

func TestDiscoverRetriesRateLimit(t *testing.T) {
	var requests int
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"page":1,"results":[{"id":1,"title":"Hitch","release_date":"2005-02-11","vote_average":6.7,"vote_count":5000}],"total_results":1,"total_pages":1}`))
	}))

	filter := provider.Filter{Range: provider.YearRange{Start: 2005, End: 2005}}
	records, err := c.DiscoverByPerson(context.Background(), "2888", filter, 1)

	assert.NoError(t, err)
	assert.Equal(t, 3, requests, "two 429s then success on the third attempt")
	assert.Len(t, records, 1)
	assert.Equal(t, "Hitch", records[0].Title)
}

func TestDiscoverRateLimitExhausted(t *testing.T) {
	var requests int
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	filter := provider.Filter{Range: provider.YearRange{Start: 2005, End: 2005}}
	_, err := c.DiscoverByPerson(context.Background(), "2888", filter, 1)

	var rlErr *provider.RateLimitError
	assert.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 3, rlErr.Attempts)
	assert.Equal(t, 3, requests)
}

func TestDiscoverMalformedResponse(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page": "not a number"`))
	}))

	filter := provider.Filter{Range: provider.YearRange{Start: 2020, End: 2024}}
	_, err := c.DiscoverByPerson(context.Background(), "2888", filter, 1)

	assert.Error(t, err)
	assert.False(t, errors.Is(err, provider.ErrNotFound))
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)

	c, err := NewClient("some-key")
	assert.NoError(t, err)
	assert.NotNil(t, c.httpClient)
}
