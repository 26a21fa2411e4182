package movie

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"moviegenie/pkg/sentry"
)

// historyLimit caps how many results of a search are persisted to the movie
// cache and the search history. Fixed policy, not user-configurable.
const historyLimit = 2

// genreCacheTTL bounds how long the genre mapping is reused before it is
// fetched from the catalog again.
const genreCacheTTL = 5 * time.Minute

type Service interface {
	Search(ctx context.Context, userID, query string) ([]Summary, error)
}

type Repository interface {
	// GetByID returns ErrMovieNotFound for an uncached movie id.
	GetByID(ctx context.Context, id int) (Movie, error)

	// CreateIfAbsent inserts the record unless the id is already cached.
	// An existing record is never updated.
	CreateIfAbsent(ctx context.Context, m Movie) error
}

type HistoryRepository interface {
	Append(ctx context.Context, entries []HistoryEntry) error
}

// Usecase resolves a free-text query against the catalog by cascading
// through genre, person and title search, then records the interaction.
type Usecase struct {
	catalog Catalog
	movies  Repository
	history HistoryRepository
	logger  *slog.Logger

	genreTTL time.Duration
	now      func() time.Time

	mu          sync.Mutex
	genreMap    map[string]int
	genreExpiry time.Time
}

func NewUsecase(catalog Catalog, movies Repository, history HistoryRepository, logger *slog.Logger) *Usecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &Usecase{
		catalog:  catalog,
		movies:   movies,
		history:  history,
		logger:   logger,
		genreTTL: genreCacheTTL,
		now:      time.Now,
	}
}

// Search resolves query for userID. The cascade is strict and first-match
// wins: a genre name match runs genre discovery only; otherwise the first
// person match's credits are used; otherwise title search. Branches are
// never merged.
func (uc *Usecase) Search(ctx context.Context, userID, query string) ([]Summary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}
	if strings.TrimSpace(userID) == "" {
		return nil, ErrMissingUser
	}

	genres, err := uc.genres(ctx)
	if err != nil {
		return nil, err
	}

	var results []CatalogMovie
	if genreID, ok := genres[strings.ToLower(query)]; ok {
		results, err = uc.catalog.DiscoverByGenre(ctx, genreID)
	} else {
		results, err = uc.searchByPersonOrTitle(ctx, query)
	}
	if err != nil {
		return nil, err
	}

	// Best effort: a failed cache or history write must not fail a search
	// that already has results.
	uc.recordSearch(ctx, userID, query, results, genres)

	summaries := make([]Summary, len(results))
	for i, r := range results {
		summaries[i] = Summary{
			ID:          r.ID,
			Title:       r.Title,
			ReleaseDate: r.ReleaseDate,
			Overview:    r.Overview,
			PosterPath:  r.PosterPath,
			VoteAverage: r.VoteAverage,
			Popularity:  r.Popularity,
		}
	}
	return summaries, nil
}

func (uc *Usecase) searchByPersonOrTitle(ctx context.Context, query string) ([]CatalogMovie, error) {
	people, err := uc.catalog.SearchPeople(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(people) > 0 {
		return uc.catalog.PersonCredits(ctx, people[0].ID)
	}
	return uc.catalog.SearchByTitle(ctx, query)
}

// genres returns the cached genre mapping, refreshing it from the catalog
// once the TTL has passed.
func (uc *Usecase) genres(ctx context.Context) (map[string]int, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.genreMap != nil && uc.now().Before(uc.genreExpiry) {
		return uc.genreMap, nil
	}

	genres, err := uc.catalog.Genres(ctx)
	if err != nil {
		return nil, err
	}

	uc.genreMap = genres
	uc.genreExpiry = uc.now().Add(uc.genreTTL)
	return genres, nil
}

// recordSearch caches the first historyLimit results and appends one history
// row per cached result, in result order.
func (uc *Usecase) recordSearch(ctx context.Context, userID, query string, results []CatalogMovie, genres map[string]int) {
	top := results
	if len(top) > historyLimit {
		top = top[:historyLimit]
	}
	if len(top) == 0 {
		return
	}

	names := genreNames(genres)
	entries := make([]HistoryEntry, 0, len(top))
	for _, r := range top {
		if err := uc.movies.CreateIfAbsent(ctx, toMovie(r, names)); err != nil {
			uc.logger.Error("movie cache write failed", "movie_id", r.ID, "error", err)
			sentry.WithExtras(map[string]interface{}{"movie_id": r.ID}).Error(err)
		}
		entries = append(entries, HistoryEntry{
			UserID:     userID,
			MovieID:    r.ID,
			SearchTerm: query,
		})
	}

	if err := uc.history.Append(ctx, entries); err != nil {
		uc.logger.Error("search history write failed", "user_id", userID, "error", err)
		sentry.WithExtras(map[string]interface{}{"user_id": userID}).Error(err)
	}
}

func toMovie(r CatalogMovie, genreNames map[int]string) Movie {
	genres := make([]string, 0, len(r.GenreIDs))
	for _, id := range r.GenreIDs {
		if name, ok := genreNames[id]; ok {
			genres = append(genres, name)
		} else {
			genres = append(genres, strconv.Itoa(id))
		}
	}

	return Movie{
		ID:          r.ID,
		Title:       r.Title,
		Genres:      genres,
		ReleaseYear: releaseYear(r.ReleaseDate),
		Rating:      r.VoteAverage,
		Popularity:  r.Popularity,
		Keywords:    []string{},
	}
}

func genreNames(genres map[string]int) map[int]string {
	names := make(map[int]string, len(genres))
	for name, id := range genres {
		names[id] = name
	}
	return names
}

// releaseYear extracts the year from a catalog yyyy-mm-dd release date.
// Unknown dates yield zero.
func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
