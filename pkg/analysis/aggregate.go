package analysis

import (
	"github.com/Bukkimarh/cinetrends/pkg/provider"
)

// Summary is one row of the output table: everything known about one
// (entity, year range) cell.
type Summary struct {
	Entity       string            `json:"entity"`
	YearRange    string            `json:"year_range"`
	MovieCount   int               `json:"movie_count"`
	AvgRating    *float64          `json:"avg_rating"` // nil when no record carries a rating
	TotalReviews int               `json:"total_reviews"`
	Movies       []provider.Record `json:"movies,omitempty"`
}

// Summarize reduces fetched records into a Summary. The average is the
// arithmetic mean over records that carry a rating; with none it stays nil
// rather than being coerced to 0.0, so an empty cell is distinguishable
// from a genuine zero average downstream.
func Summarize(entity string, r provider.YearRange, records []provider.Record) Summary {
	s := Summary{
		Entity:     entity,
		YearRange:  r.String(),
		MovieCount: len(records),
		Movies:     records,
	}

	var sum float64
	var rated int
	for _, rec := range records {
		if rec.Rating != nil {
			sum += *rec.Rating
			rated++
		}
		s.TotalReviews += rec.ReviewCount
	}
	if rated > 0 {
		avg := sum / float64(rated)
		s.AvgRating = &avg
	}
	return s
}
