package movie

import "context"

// CatalogMovie is a movie as the external catalog returns it, before
// projection into a Summary or a cached Movie.
type CatalogMovie struct {
	ID          int
	Title       string
	ReleaseDate string
	Overview    string
	PosterPath  string
	VoteAverage float64
	Popularity  float64
	GenreIDs    []int
}

// Person is a catalog person search result.
type Person struct {
	ID   int
	Name string
}

// Catalog is the external movie catalog. Every call performs network I/O;
// any failure aborts the whole search, no partial results are returned.
type Catalog interface {
	// Genres returns the full genre mapping, keyed by lowercased name.
	Genres(ctx context.Context) (map[string]int, error)

	// DiscoverByGenre returns all movies tagged with the genre id.
	DiscoverByGenre(ctx context.Context, genreID int) ([]CatalogMovie, error)

	// SearchPeople looks up people by name.
	SearchPeople(ctx context.Context, query string) ([]Person, error)

	// PersonCredits returns a person's full movie credit list.
	PersonCredits(ctx context.Context, personID int) ([]CatalogMovie, error)

	// SearchByTitle performs a full-text movie title search.
	SearchByTitle(ctx context.Context, query string) ([]CatalogMovie, error)
}
