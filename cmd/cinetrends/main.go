package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Bukkimarh/cinetrends/db"
	"github.com/Bukkimarh/cinetrends/db/models"
	"github.com/Bukkimarh/cinetrends/db/repository"
	"github.com/Bukkimarh/cinetrends/pkg/analysis"
	"github.com/Bukkimarh/cinetrends/pkg/nyt"
	"github.com/Bukkimarh/cinetrends/pkg/provider"
	"github.com/Bukkimarh/cinetrends/pkg/tmdb"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func main() {
	actorsPtr := flag.String("actors", "", "Comma-separated actor names to analyze")
	genresPtr := flag.String("genres", "", "Comma-separated genre names to analyze")
	fromPtr := flag.Int("from", 2020, "Start year of the analysis range")
	toPtr := flag.Int("to", 2024, "End year of the analysis range")
	rangesPtr := flag.String("ranges", "", "Comma-separated year ranges (e.g. \"2000-2009,2010-2019\"), overrides -from/-to")
	pagesPtr := flag.Int("pages", 1, "Number of discovery pages to sample per entity")
	sortPtr := flag.String("sort", "", "Discovery sort order (release_date.asc or popularity.desc)")
	reviewsPtr := flag.Bool("reviews", true, "Look up NYT review counts per movie")
	mentionsPtr := flag.Bool("mentions", false, "Also print total NYT mentions per entity")
	exportPtr := flag.Bool("export", false, "Export summaries to MongoDB")
	detailsPtr := flag.Bool("details", false, "Print per-movie detail rows")

	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	if *actorsPtr == "" && *genresPtr == "" {
		fmt.Println("cinetrends - movie metadata trend analysis over TMDB and the NYT archive")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		fmt.Println("\nExamples:")
		fmt.Println("  Analyze actors:   cinetrends -actors \"Will Smith,Adam Sandler\" -from 2020 -to 2024")
		fmt.Println("  Analyze a genre:  cinetrends -genres \"Comedy\" -ranges \"2000-2009,2010-2019\" -pages 3")
		fmt.Println("  Export results:   cinetrends -actors \"Tom Hanks\" -export")
		return
	}

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using existing environment variables")
	}

	// Credentials are the only fatal startup condition; fail before any
	// network call.
	tmdbKey := os.Getenv("TMDB_API_KEY")
	if tmdbKey == "" {
		log.Fatal("TMDB_API_KEY environment variable is not set. Please set it in your .env file.")
	}

	nytKey := os.Getenv("NYT_API_KEY")
	if (*reviewsPtr || *mentionsPtr) && nytKey == "" {
		log.Fatal("NYT_API_KEY environment variable is not set. Set it or run with -reviews=false -mentions=false.")
	}

	ranges, err := parseRanges(*rangesPtr, *fromPtr, *toPtr)
	if err != nil {
		log.Fatalf("Invalid year ranges: %v", err)
	}

	tmdbClient, err := tmdb.NewClient(tmdbKey)
	if err != nil {
		log.Fatalf("Failed to initialize TMDB client: %v", err)
	}

	var nytClient *nyt.Client
	if *reviewsPtr || *mentionsPtr {
		nytClient, err = nyt.NewClient(nytKey)
		if err != nil {
			log.Fatalf("Failed to initialize NYT client: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Hour)
	defer cancel()

	startTime := time.Now()
	var summaries []analysis.Summary

	if *actorsPtr != "" {
		actors := splitList(*actorsPtr)
		log.Printf("Analyzing %d actor(s) over %d range(s)...", len(actors), len(ranges))
		summaries = append(summaries, runAnalysis(ctx, tmdbClient.People(), nytClient, actors, ranges, *pagesPtr, *sortPtr, *reviewsPtr)...)
	}

	if *genresPtr != "" {
		genres := splitList(*genresPtr)
		log.Printf("Analyzing %d genre(s) over %d range(s)...", len(genres), len(ranges))
		summaries = append(summaries, runAnalysis(ctx, tmdbClient.Genres(), nytClient, genres, ranges, *pagesPtr, *sortPtr, *reviewsPtr)...)
	}

	printTable(summaries, *detailsPtr)

	if *mentionsPtr && nytClient != nil {
		printMentions(ctx, nytClient, splitList(*actorsPtr+","+*genresPtr), ranges)
	}

	if *exportPtr {
		if err := exportSummaries(ctx, summaries); err != nil {
			log.Printf("Error exporting summaries: %v", err)
		} else {
			log.Printf("Exported %d summaries to MongoDB", len(summaries))
		}
	}

	log.Printf("Analysis completed in %s", time.Since(startTime))
}

func runAnalysis(ctx context.Context, source analysis.Source, nytClient *nyt.Client, entities []string, ranges []provider.YearRange, pages int, sort string, reviews bool) []analysis.Summary {
	opts := []analysis.Option{
		analysis.WithSamplePages(pages),
	}
	if sort != "" {
		opts = append(opts, analysis.WithSort(sort))
	}
	if reviews && nytClient != nil {
		opts = append(opts, analysis.WithReviews(nytClient))
	}

	analyzer := analysis.NewAnalyzer(source, opts...)
	return analyzer.Run(ctx, entities, ranges)
}

func printTable(summaries []analysis.Summary, details bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENTITY\tRANGE\tMOVIES\tAVG RATING\tNYT REVIEWS")
	for _, s := range summaries {
		avg := "n/a"
		if s.AvgRating != nil {
			avg = fmt.Sprintf("%.2f", *s.AvgRating)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\n", s.Entity, s.YearRange, s.MovieCount, avg, s.TotalReviews)
	}
	w.Flush()

	if !details {
		return
	}
	for _, s := range summaries {
		if len(s.Movies) == 0 {
			continue
		}
		fmt.Printf("\n%s (%s):\n", s.Entity, s.YearRange)
		for _, m := range s.Movies {
			rating := "n/a"
			if m.Rating != nil {
				rating = fmt.Sprintf("%.1f", *m.Rating)
			}
			fmt.Printf("  %s - Rating: %s - NYT Reviews: %d\n", m.Title, rating, m.ReviewCount)
		}
	}
}

func printMentions(ctx context.Context, nytClient *nyt.Client, entities []string, ranges []provider.YearRange) {
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENTITY\tRANGE\tNYT MENTIONS")
	for _, entity := range entities {
		for _, r := range ranges {
			hits, err := nytClient.MentionCount(ctx, entity, r)
			if err != nil {
				slog.Warn("mention count failed", "entity", entity, "range", r.String(), "error", err)
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%d\n", entity, r, hits)
		}
	}
	w.Flush()
}

func exportSummaries(ctx context.Context, summaries []analysis.Summary) error {
	con, err := db.NewMongoConn()
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer con.Disconnect(ctx)

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "cinetrends"
	}
	repo := repository.NewMongoRepo(con.Database(dbName).Collection("summaries"))

	runID := strconv.FormatInt(time.Now().UnixNano(), 36)
	now := primitive.NewDateTimeFromTime(time.Now())

	docs := make([]models.Summary, 0, len(summaries))
	for _, s := range summaries {
		doc := models.Summary{
			RunID:        runID,
			Entity:       s.Entity,
			YearRange:    s.YearRange,
			MovieCount:   s.MovieCount,
			AvgRating:    s.AvgRating,
			TotalReviews: s.TotalReviews,
			CreatedAt:    now,
		}
		for _, m := range s.Movies {
			doc.Movies = append(doc.Movies, models.MovieDetail{
				Title:       m.Title,
				Rating:      m.Rating,
				ReviewCount: m.ReviewCount,
				ReleaseDate: m.ReleaseDate,
			})
		}
		docs = append(docs, doc)
	}

	return repo.SaveSummaries(ctx, docs)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseRanges turns "2000-2009,2010-2019" into year ranges; with no -ranges
// flag the single -from/-to pair is used.
func parseRanges(expr string, from, to int) ([]provider.YearRange, error) {
	if expr == "" {
		if from > to {
			return nil, fmt.Errorf("start year %d is after end year %d", from, to)
		}
		return []provider.YearRange{{Start: from, End: to}}, nil
	}

	var ranges []provider.YearRange
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bounds := strings.SplitN(part, "-", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("range %q is not of the form START-END", part)
		}
		start, err := strconv.Atoi(bounds[0])
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", part, err)
		}
		end, err := strconv.Atoi(bounds[1])
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", part, err)
		}
		if start > end {
			return nil, fmt.Errorf("range %q: start year is after end year", part)
		}
		ranges = append(ranges, provider.YearRange{Start: start, End: end})
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("no valid ranges in %q", expr)
	}
	return ranges, nil
}
