package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Bukkimarh/cinetrends/pkg/provider"
)

// Source is the capability surface the orchestrator needs from a movie
// provider: name resolution plus paged discovery.
type Source interface {
	provider.Resolver
	provider.Fetcher
}

// ReviewCounter enriches movie titles with a newspaper review count.
type ReviewCounter interface {
	ReviewCount(ctx context.Context, title string) (int, error)
}

// Analyzer drives the {entities} x {year ranges} product through
// resolve -> fetch -> aggregate and collects the result rows.
type Analyzer struct {
	source  Source
	reviews ReviewCounter // nil disables review enrichment
	pages   int
	sort    string
	logger  *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithReviews enables per-title review-count enrichment.
func WithReviews(rc ReviewCounter) Option {
	return func(a *Analyzer) { a.reviews = rc }
}

// WithSamplePages sets how many discovery pages are fetched per resolved
// ID. The bound is a sampling decision: the analyzer never paginates to
// exhaustion.
func WithSamplePages(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.pages = n
		}
	}
}

// WithSort overrides the provider's default sort order.
func WithSort(sort string) Option {
	return func(a *Analyzer) { a.sort = sort }
}

// WithLogger sets the logger for skip/drop warnings.
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

func NewAnalyzer(source Source, opts ...Option) *Analyzer {
	a := &Analyzer{
		source: source,
		pages:  1,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run analyzes every (entity, year range) pair and returns the summary
// rows in input order. A failure local to one entity or one page is logged
// and skipped; it never aborts the batch. Each (entity, range) pair yields
// at most one row per run even when the inputs repeat it.
func (a *Analyzer) Run(ctx context.Context, entities []string, ranges []provider.YearRange) []Summary {
	summaries := make([]Summary, 0, len(entities)*len(ranges))
	seen := make(map[string]struct{})
	ids := make(map[string]string) // one resolution per entity per run

	for _, entity := range entities {
		id, resolved := ids[entity]
		if !resolved {
			var err error
			id, err = a.source.Resolve(ctx, entity)
			if err != nil {
				if errors.Is(err, provider.ErrNotFound) {
					a.logger.Warn("entity not found, skipping", "entity", entity)
				} else {
					a.logger.Error("resolve failed, skipping entity", "entity", entity, "error", err)
				}
				continue
			}
			ids[entity] = id
		}

		for _, r := range ranges {
			key := fmt.Sprintf("%s|%s", entity, r)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			records := a.fetchPages(ctx, entity, id, r)
			if a.reviews != nil {
				a.enrichReviews(ctx, records)
			}
			summaries = append(summaries, Summarize(entity, r, records))
		}
	}
	return summaries
}

type pageResult struct {
	page    int
	records []provider.Record
	err     error
}

// fetchPages launches one fetch per sample page and joins all outcomes.
// A page that errors is dropped with a warning; its siblings are kept.
func (a *Analyzer) fetchPages(ctx context.Context, entity, id string, r provider.YearRange) []provider.Record {
	filter := provider.Filter{Range: r, Sort: a.sort}
	results := make([]pageResult, a.pages)

	var wg sync.WaitGroup
	for i := 0; i < a.pages; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			page := i + 1
			records, err := a.source.Fetch(ctx, id, filter, page)
			results[i] = pageResult{page: page, records: records, err: err}
		}(i)
	}
	wg.Wait()

	var records []provider.Record
	for _, res := range results {
		if res.err != nil {
			msg := "page fetch failed, dropping page"
			if provider.IsRetryable(res.err) {
				msg = "page fetch rate limited, dropping page"
			}
			a.logger.Warn(msg,
				"entity", entity, "page", res.page, "range", r.String(), "error", res.err)
			continue
		}
		records = append(records, res.records...)
	}
	return records
}

// enrichReviews fills in the newspaper review count per title. A failed
// lookup leaves the count at zero and is logged, not propagated.
func (a *Analyzer) enrichReviews(ctx context.Context, records []provider.Record) {
	for i := range records {
		count, err := a.reviews.ReviewCount(ctx, records[i].Title)
		if err != nil {
			a.logger.Warn("review lookup failed", "title", records[i].Title, "error", err)
			continue
		}
		records[i].ReviewCount = count
	}
}
