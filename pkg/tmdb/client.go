package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Bukkimarh/cinetrends/pkg/provider"
)

// Sort expressions accepted by the discover endpoint. Which one a call site
// uses is the caller's choice; DiscoverByPerson defaults to release-date
// ascending, DiscoverByGenre to popularity descending.
const (
	SortReleaseDateAsc = "release_date.asc"
	SortPopularityDesc = "popularity.desc"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	maxAttempts    = 3
	retryDelay     = 10 * time.Second
)

// Client represents a TMDB API client
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	// 429 retry knobs, shortened in tests
	maxAttempts int
	retryDelay  time.Duration
}

// NewClient creates a new TMDB API client. The key comes from the caller;
// the client never reads the environment itself.
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("tmdb: api key is required")
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
	}, nil
}

// ResolvePerson returns the TMDB person ID for a name. Policy is first
// result wins, no ranking or disambiguation.
func (c *Client) ResolvePerson(ctx context.Context, name string) (string, error) {
	endpoint := fmt.Sprintf("%s/search/person?api_key=%s&query=%s", c.baseURL, c.apiKey, url.QueryEscape(name))

	var result searchPersonResponse
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return "", fmt.Errorf("failed to search person: %w", err)
	}

	if len(result.Results) == 0 {
		return "", fmt.Errorf("person %q: %w", name, provider.ErrNotFound)
	}
	return strconv.Itoa(result.Results[0].ID), nil
}

// ResolveGenre returns the TMDB genre ID for a genre name, matched
// case-insensitively against the movie genre list.
func (c *Client) ResolveGenre(ctx context.Context, name string) (string, error) {
	endpoint := fmt.Sprintf("%s/genre/movie/list?api_key=%s", c.baseURL, c.apiKey)

	var result genreListResponse
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return "", fmt.Errorf("failed to list genres: %w", err)
	}

	for _, g := range result.Genres {
		if strings.EqualFold(g.Name, name) {
			return strconv.Itoa(g.ID), nil
		}
	}
	return "", fmt.Errorf("genre %q: %w", name, provider.ErrNotFound)
}

// DiscoverByPerson returns one page of movies featuring the person within
// the filter's date range.
func (c *Client) DiscoverByPerson(ctx context.Context, personID string, filter provider.Filter, page int) ([]provider.Record, error) {
	return c.discover(ctx, "with_cast", personID, filter, SortReleaseDateAsc, page)
}

// DiscoverByGenre returns one page of movies in the genre within the
// filter's date range.
func (c *Client) DiscoverByGenre(ctx context.Context, genreID string, filter provider.Filter, page int) ([]provider.Record, error) {
	return c.discover(ctx, "with_genres", genreID, filter, SortPopularityDesc, page)
}

func (c *Client) discover(ctx context.Context, filterKey, id string, filter provider.Filter, defaultSort string, page int) ([]provider.Record, error) {
	sort := filter.Sort
	if sort == "" {
		sort = defaultSort
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set(filterKey, id)
	params.Set("primary_release_date.gte", filter.Range.Begin())
	params.Set("primary_release_date.lte", filter.Range.Until())
	params.Set("sort_by", sort)
	params.Set("page", strconv.Itoa(page))

	endpoint := fmt.Sprintf("%s/discover/movie?%s", c.baseURL, params.Encode())

	var result discoverResponse
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("failed to discover movies: %w", err)
	}

	records := make([]provider.Record, 0, len(result.Results))
	for _, m := range result.Results {
		rec := provider.Record{
			Title:       m.Title,
			ReleaseDate: m.ReleaseDate,
		}
		if m.VoteCount > 0 {
			rating := m.VoteAverage
			rec.Rating = &rating
		}
		records = append(records, rec)
	}
	return records, nil
}

// getJSON performs a GET with a bounded retry loop on 429 and decodes the
// body into out. Any other non-200 status is terminal for the request.
func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	for attempt := 1; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			if attempt >= c.maxAttempts {
				return &provider.RateLimitError{Attempts: attempt}
			}
			select {
			case <-time.After(c.retryDelay):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return &provider.HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}
}
