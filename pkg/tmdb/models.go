package tmdb

// searchPersonResponse represents the response from the TMDB search/person endpoint
type searchPersonResponse struct {
	Page         int            `json:"page"`
	Results      []personResult `json:"results"`
	TotalResults int            `json:"total_results"`
	TotalPages   int            `json:"total_pages"`
}

// personResult represents a person result from the TMDB search
type personResult struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Popularity float64 `json:"popularity"`
}

// genreListResponse represents the response from the TMDB genre/movie/list endpoint
type genreListResponse struct {
	Genres []genre `json:"genres"`
}

type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// discoverResponse represents the response from the TMDB discover/movie endpoint
type discoverResponse struct {
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalResults int           `json:"total_results"`
	TotalPages   int           `json:"total_pages"`
}

// movieResult represents a movie returned by the discover endpoint
type movieResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
}
