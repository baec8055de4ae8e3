package provider

import (
	"context"
	"fmt"
)

// Record is a single movie or article returned by a provider. Immutable once
// fetched.
type Record struct {
	Title       string
	Rating      *float64 // nil when the provider reports no rating
	ReviewCount int
	ReleaseDate string // YYYY-MM-DD, may be empty
}

// YearRange bounds a discovery query to [Start-01-01, End-12-31].
type YearRange struct {
	Start int
	End   int
}

func (r YearRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Begin returns the inclusive lower date bound.
func (r YearRange) Begin() string {
	return fmt.Sprintf("%d-01-01", r.Start)
}

// Until returns the inclusive upper date bound.
func (r YearRange) Until() string {
	return fmt.Sprintf("%d-12-31", r.End)
}

// Filter narrows a Fetch call. Sort is a provider-specific sort expression;
// call sites pick one of the exported constants of the concrete client.
type Filter struct {
	Range YearRange
	Sort  string
}

// Resolver maps a human-readable name (actor, genre) to a provider ID.
// An empty result set yields ErrNotFound; the caller skips the entity.
type Resolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// Fetcher returns one page of records for a resolved ID. Callers decide how
// many pages to sample; a Fetcher never paginates to exhaustion on its own.
type Fetcher interface {
	Fetch(ctx context.Context, id string, filter Filter, page int) ([]Record, error)
}
