package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Summary is one persisted result row of an analysis run.
type Summary struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	RunID        string             `bson:"run_id" json:"run_id"`
	Entity       string             `bson:"entity" json:"entity"`
	YearRange    string             `bson:"year_range" json:"year_range"`
	MovieCount   int                `bson:"movie_count" json:"movie_count"`
	AvgRating    *float64           `bson:"avg_rating,omitempty" json:"avg_rating"`
	TotalReviews int                `bson:"total_reviews" json:"total_reviews"`
	Movies       []MovieDetail      `bson:"movies,omitempty" json:"movies,omitempty"`
	CreatedAt    primitive.DateTime `bson:"created_at" json:"created_at"`
}

// MovieDetail is the per-movie breakdown behind a summary row.
type MovieDetail struct {
	Title       string   `bson:"title" json:"title"`
	Rating      *float64 `bson:"rating,omitempty" json:"rating"`
	ReviewCount int      `bson:"review_count" json:"review_count"`
	ReleaseDate string   `bson:"release_date,omitempty" json:"release_date,omitempty"`
}
