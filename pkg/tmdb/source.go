package tmdb

import (
	"context"

	"github.com/Bukkimarh/cinetrends/pkg/provider"
)

// PersonMovies exposes person resolution plus cast-filtered discovery as a
// provider.Resolver / provider.Fetcher pair.
type PersonMovies struct {
	c *Client
}

// People returns the person-centric view of the client.
func (c *Client) People() *PersonMovies {
	return &PersonMovies{c: c}
}

func (p *PersonMovies) Resolve(ctx context.Context, name string) (string, error) {
	return p.c.ResolvePerson(ctx, name)
}

func (p *PersonMovies) Fetch(ctx context.Context, id string, filter provider.Filter, page int) ([]provider.Record, error) {
	return p.c.DiscoverByPerson(ctx, id, filter, page)
}

// GenreMovies exposes genre resolution plus genre-filtered discovery as a
// provider.Resolver / provider.Fetcher pair.
type GenreMovies struct {
	c *Client
}

// Genres returns the genre-centric view of the client.
func (c *Client) Genres() *GenreMovies {
	return &GenreMovies{c: c}
}

func (g *GenreMovies) Resolve(ctx context.Context, name string) (string, error) {
	return g.c.ResolveGenre(ctx, name)
}

func (g *GenreMovies) Fetch(ctx context.Context, id string, filter provider.Filter, page int) ([]provider.Record, error) {
	return g.c.DiscoverByGenre(ctx, id, filter, page)
}
