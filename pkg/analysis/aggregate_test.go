package analysis

import (
	"testing"

	"github.com/Bukkimarh/cinetrends/pkg/provider"
	"github.com/stretchr/testify/assert"
)

func rating(v float64) *float64 {
	return &v
}

func TestSummarizeAverageAndCount(t *testing.T) {
	records := []provider.Record{
		{Title: "A", Rating: rating(8.0)},
		{Title: "B", Rating: rating(6.0)},
	}
	r := provider.YearRange{Start: 2020, End: 2024}

	s := Summarize("Will Smith", r, records)

	assert.Equal(t, 2, s.MovieCount)
	assert.NotNil(t, s.AvgRating)
	assert.Equal(t, 7.0, *s.AvgRating)
	assert.Equal(t, "2020-2024", s.YearRange)

	// order independence
	reversed := []provider.Record{records[1], records[0]}
	s2 := Summarize("Will Smith", r, reversed)
	assert.Equal(t, *s.AvgRating, *s2.AvgRating)
	assert.Equal(t, s.MovieCount, s2.MovieCount)
}

func TestSummarizeEmptyAverageIsUndefined(t *testing.T) {
	s := Summarize("Nobody", provider.YearRange{Start: 2020, End: 2024}, nil)

	assert.Equal(t, 0, s.MovieCount)
	assert.Nil(t, s.AvgRating, "an empty cell must not be coerced to 0.0")
}

func TestSummarizeZeroAverageIsDefined(t *testing.T) {
	records := []provider.Record{{Title: "A", Rating: rating(0.0)}}

	s := Summarize("Someone", provider.YearRange{Start: 2020, End: 2024}, records)

	assert.NotNil(t, s.AvgRating, "a genuine 0.0 average is distinguishable from undefined")
	assert.Equal(t, 0.0, *s.AvgRating)
}

func TestSummarizeSkipsUnratedRecords(t *testing.T) {
	records := []provider.Record{
		{Title: "A", Rating: rating(9.0)},
		{Title: "B"}, // no rating reported
	}

	s := Summarize("Someone", provider.YearRange{Start: 2020, End: 2024}, records)

	assert.Equal(t, 2, s.MovieCount)
	assert.Equal(t, 9.0, *s.AvgRating, "mean is taken over rated records only")
}

func TestSummarizeSumsReviewCounts(t *testing.T) {
	records := []provider.Record{
		{Title: "A", Rating: rating(7.0), ReviewCount: 3},
		{Title: "B", Rating: rating(5.0), ReviewCount: 1},
		{Title: "C"},
	}

	s := Summarize("Someone", provider.YearRange{Start: 2000, End: 2009}, records)

	assert.Equal(t, 4, s.TotalReviews)
}
