package nyt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Bukkimarh/cinetrends/pkg/provider"
)

// MovieReviewFilter restricts an article search to movie reviews.
const MovieReviewFilter = `section_name:"Movies" AND type_of_material:"Review"`

const (
	defaultBaseURL = "https://api.nytimes.com/svc/search/v2/articlesearch.json"
	maxAttempts    = 3
	retryDelay     = 10 * time.Second
)

// Client represents a NYT article-search API client
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	// 429 retry knobs, shortened in tests
	maxAttempts int
	retryDelay  time.Duration
}

// NewClient creates a new NYT article-search client.
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("nyt: api key is required")
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

// ReviewCount returns the number of NYT movie reviews on the first result
// page for a title. One page of docs is the sample; the search is never
// paginated to exhaustion.
func (c *Client) ReviewCount(ctx context.Context, title string) (int, error) {
	params := url.Values{}
	params.Set("q", title)
	params.Set("fq", MovieReviewFilter)
	params.Set("api-key", c.apiKey)

	var result searchResponse
	if err := c.getJSON(ctx, params, &result); err != nil {
		return 0, fmt.Errorf("failed to fetch reviews for %q: %w", title, err)
	}
	return len(result.Response.Docs), nil
}

// MentionCount returns the total number of articles mentioning the query
// within the year range, taken from the response's meta.hits total.
func (c *Client) MentionCount(ctx context.Context, query string, r provider.YearRange) (int, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("api-key", c.apiKey)
	if r.Start != 0 {
		params.Set("begin_date", fmt.Sprintf("%d0101", r.Start))
		params.Set("end_date", fmt.Sprintf("%d1231", r.End))
	}

	var result searchResponse
	if err := c.getJSON(ctx, params, &result); err != nil {
		return 0, fmt.Errorf("failed to count mentions of %q: %w", query, err)
	}
	return result.Response.Meta.Hits, nil
}

// Fetch returns one page of article records for a query string. The id is
// the query itself; NYT has no resolution step.
func (c *Client) Fetch(ctx context.Context, query string, filter provider.Filter, page int) ([]provider.Record, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("api-key", c.apiKey)
	params.Set("page", strconv.Itoa(page))
	if filter.Range.Start != 0 {
		params.Set("begin_date", fmt.Sprintf("%d0101", filter.Range.Start))
		params.Set("end_date", fmt.Sprintf("%d1231", filter.Range.End))
	}
	if filter.Sort != "" {
		params.Set("sort", filter.Sort)
	}

	var result searchResponse
	if err := c.getJSON(ctx, params, &result); err != nil {
		return nil, fmt.Errorf("failed to search articles for %q: %w", query, err)
	}

	records := make([]provider.Record, 0, len(result.Response.Docs))
	for _, d := range result.Response.Docs {
		records = append(records, provider.Record{
			Title:       d.Headline.Main,
			ReleaseDate: d.PubDate,
			ReviewCount: 1,
		})
	}
	return records, nil
}

// getJSON performs a GET with a bounded retry loop on 429. The original
// behavior of retrying 429 forever is deliberately not reproduced; the loop
// gives up after maxAttempts and reports a rate-limit error.
func (c *Client) getJSON(ctx context.Context, params url.Values, out interface{}) error {
	endpoint := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

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
