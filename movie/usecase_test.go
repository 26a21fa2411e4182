package movie_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"moviegenie/movie"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Genres(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockCatalog) DiscoverByGenre(ctx context.Context, genreID int) ([]movie.CatalogMovie, error) {
	args := m.Called(ctx, genreID)
	return args.Get(0).([]movie.CatalogMovie), args.Error(1)
}

func (m *MockCatalog) SearchPeople(ctx context.Context, query string) ([]movie.Person, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]movie.Person), args.Error(1)
}

func (m *MockCatalog) PersonCredits(ctx context.Context, personID int) ([]movie.CatalogMovie, error) {
	args := m.Called(ctx, personID)
	return args.Get(0).([]movie.CatalogMovie), args.Error(1)
}

func (m *MockCatalog) SearchByTitle(ctx context.Context, query string) ([]movie.CatalogMovie, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]movie.CatalogMovie), args.Error(1)
}

type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) GetByID(ctx context.Context, id int) (movie.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieRepository) CreateIfAbsent(ctx context.Context, mv movie.Movie) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Append(ctx context.Context, entries []movie.HistoryEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

var comedyGenres = map[string]int{"comedy": 35, "drama": 18}

func catalogMovies(ids ...int) []movie.CatalogMovie {
	out := make([]movie.CatalogMovie, len(ids))
	for i, id := range ids {
		out[i] = movie.CatalogMovie{
			ID:          id,
			Title:       "Movie",
			ReleaseDate: "2009-12-18",
			VoteAverage: 7.5,
			Popularity:  80.1,
			GenreIDs:    []int{35},
		}
	}
	return out
}

func newPipeline(t *testing.T) (*movie.Usecase, *MockCatalog, *MockMovieRepository, *MockHistoryRepository) {
	t.Helper()
	catalog := new(MockCatalog)
	movies := new(MockMovieRepository)
	history := new(MockHistoryRepository)
	return movie.NewUsecase(catalog, movies, history, nil), catalog, movies, history
}

func TestSearch_GenreBranch(t *testing.T) {
	t.Run("genre name match runs genre discovery only", func(t *testing.T) {
		uc, catalog, movies, history := newPipeline(t)

		catalog.On("Genres", mock.Anything).Return(comedyGenres, nil).Once()
		catalog.On("DiscoverByGenre", mock.Anything, 35).Return(catalogMovies(1, 2, 3), nil).Once()
		movies.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(nil).Times(2)
		history.On("Append", mock.Anything, mock.Anything).Return(nil).Once()

		results, err := uc.Search(context.Background(), "u-1", "Comedy")

		require.NoError(t, err)
		assert.Len(t, results, 3, "response carries the full result set")
		catalog.AssertNotCalled(t, "SearchPeople", mock.Anything, mock.Anything)
		catalog.AssertNotCalled(t, "SearchByTitle", mock.Anything, mock.Anything)
		catalog.AssertExpectations(t)
	})

	t.Run("match is case-insensitive and exact", func(t *testing.T) {
		uc, catalog, movies, history := newPipeline(t)

		catalog.On("Genres", mock.Anything).Return(comedyGenres, nil).Once()
		catalog.On("DiscoverByGenre", mock.Anything, 18).Return(catalogMovies(9), nil).Once()
		movies.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(nil).Once()
		history.On("Append", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := uc.Search(context.Background(), "u-1", "DRAMA")

		require.NoError(t, err)
		catalog.AssertExpectations(t)
	})
}

func TestSearch_PersonBranch(t *testing.T) {
	t.Run("first person match wins, title search never invoked", func(t *testing.T) {
		uc, catalog, movies, history := newPipeline(t)

		catalog.On("Genres", mock.Anything).Return(comedyGenres, nil).Once()
		catalog.On("SearchPeople", mock.Anything, "Tom Hanks").Return([]movie.Person{
			{ID: 31, Name: "Tom Hanks"},
			{ID: 32, Name: "Tom Hanks Jr."},
		}, nil).Once()
		catalog.On("PersonCredits", mock.Anything, 31).Return(catalogMovies(10, 11), nil).Once()
		movies.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(nil).Times(2)
		history.On("Append", mock.Anything, mock.Anything).Return(nil).Once()

		results, err := uc.Search(context.Background(), "u-1", "Tom Hanks")

		require.NoError(t, err)
		assert.Len(t, results, 2)
		catalog.AssertNotCalled(t, "SearchByTitle", mock.Anything, mock.Anything)
		catalog.AssertExpectations(t)
	})

	t.Run("zero person matches fall through to title search", func(t *testing.T) {
		uc, catalog, movies, history := newPipeline(t)

		catalog.On("Genres", mock.Anything).Return(comedyGenres, nil).Once()
		catalog.On("SearchPeople", mock.Anything, "Inception").Return([]movie.Person{}, nil).Once()
		catalog.On("SearchByTitle", mock.Anything, "Inception").Return(catalogMovies(27205), nil).Once()
		movies.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(nil).Once()
		history.On("Append", mock.Anything, mock.Anything).Return(nil).Once()

		results, err := uc.Search(context.Background(), "u-1", "Inception")

		require.NoError(t, err)
		assert.Len(t, results, 1)
		catalog.AssertNotCalled(t, "PersonCredits", mock.Anything, mock.Anything)
		catalog.AssertExpectations(t)
	})
}

func TestSearch_Persistence(t *testing.T) {
	t.Run("at most two cache and history rows regardless of result size", func(t *testing.T) {
		uc, catalog, movies, history := newPipeline(t)

		catalog.On("Genres", mock.Anything).Return(comedyGenres, nil).Once()
		catalog.On("DiscoverByGenre", mock.Anything, 35).Return(catalogMovies(1, 2, 3, 4, 5), nil).Once()
		movies.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(m movie.Movie) bool {
			return m.ID == 1 || m.ID == 2
		})).Return(nil).Times(2)
		history.On("Append", mock.Anything, []movie.HistoryEntry{
			{UserID: "u-1", MovieID: 1, SearchTerm: "comedy"},
			{UserID: "u-1", MovieID: 2, SearchTerm: "comedy"},
		}).Return(nil).Once()

		results, err := uc.Search(context.Background(), "u-1", "comedy")

		require.NoError(t, err)
		assert.Len(t, results, 5, "truncation applies to persistence, not the response")
		movies.AssertExpectations(t)
		history.AssertExpectations(t)
	})

	t.Run("empty result set writes nothing", func(t *testing.T) {
		uc, catalog, movies, history := newPipeline(t)

		catalog.On("Genres", mock.Anything).Return(comedyGenres, nil).Once()
		catalog.On("SearchPeople", mock.Anything, "nobody").Return([]movie.Person{}, nil).Once()
		catalog.On("SearchByTitle", mock.Anything, "nobody").Return([]movie.CatalogMovie{}, nil).Once()

		results, err := uc.Search(context.Background(), "u-1", "nobody")

		require.NoError(t, err)
		assert.Empty(t, results)
		movies.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
		history.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("cached movie carries projected fields", func(t *testing.T) {
		uc, catalog, movies, history := newPipeline(t)

		catalog.On("Genres", mock.Anything).Return(comedyGenres, nil).Once()
		catalog.On("DiscoverByGenre", mock.Anything, 35).Return([]movie.CatalogMovie{{
			ID:          550,
			Title:       "Fight Club",
			ReleaseDate: "1999-10-15",
			VoteAverage: 8.4,
			Popularity:  61.0,
			GenreIDs:    []int{18},
		}}, nil).Once()
		movies.On("CreateIfAbsent", mock.Anything, movie.Movie{
			ID:          550,
			Title:       "Fight Club",
			Genres:      []string{"drama"},
			ReleaseYear: 1999,
			Rating:      8.4,
			Popularity:  61.0,
			Keywords:    []string{},
		}).Return(nil).Once()
		history.On("Append", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := uc.Search(context.Background(), "u-1", "comedy")

		require.NoError(t, err)
		movies.AssertExpectations(t)
	})

	t.Run("write failures do not fail the search", func(t *testing.T) {
		uc, catalog, movies, history := newPipeline(t)

		catalog.On("Genres", mock.Anything).Return(comedyGenres, nil).Once()
		catalog.On("DiscoverByGenre", mock.Anything, 35).Return(catalogMovies(1, 2), nil).Once()
		movies.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(errors.New("db down")).Times(2)
		history.On("Append", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

		results, err := uc.Search(context.Background(), "u-1", "comedy")

		require.NoError(t, err, "history and cache writes are best effort")
		assert.Len(t, results, 2)
	})
}

func TestSearch_InputValidation(t *testing.T) {
	uc, catalog, _, _ := newPipeline(t)

	t.Run("empty query rejected before any catalog call", func(t *testing.T) {
		_, err := uc.Search(context.Background(), "u-1", "   ")

		assert.Equal(t, movie.ErrInvalidQuery, err)
		catalog.AssertNotCalled(t, "Genres", mock.Anything)
	})

	t.Run("missing user rejected before any catalog call", func(t *testing.T) {
		_, err := uc.Search(context.Background(), "", "comedy")

		assert.Equal(t, movie.ErrMissingUser, err)
		catalog.AssertNotCalled(t, "Genres", mock.Anything)
	})
}

func TestSearch_CatalogFailure(t *testing.T) {
	t.Run("genre listing failure aborts the search", func(t *testing.T) {
		uc, catalog, movies, history := newPipeline(t)

		catalog.On("Genres", mock.Anything).Return(map[string]int(nil), errors.New("tmdb unreachable")).Once()

		_, err := uc.Search(context.Background(), "u-1", "comedy")

		assert.Error(t, err)
		movies.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
		history.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("branch failure yields no partial results", func(t *testing.T) {
		uc, catalog, _, history := newPipeline(t)

		catalog.On("Genres", mock.Anything).Return(comedyGenres, nil).Once()
		catalog.On("SearchPeople", mock.Anything, "Tom Hanks").Return([]movie.Person{{ID: 31}}, nil).Once()
		catalog.On("PersonCredits", mock.Anything, 31).Return([]movie.CatalogMovie(nil), errors.New("rate limited")).Once()

		results, err := uc.Search(context.Background(), "u-1", "Tom Hanks")

		assert.Error(t, err)
		assert.Nil(t, results)
		history.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}

func TestSearch_GenreMapCaching(t *testing.T) {
	t.Run("genre mapping reused within the TTL", func(t *testing.T) {
		uc, catalog, movies, history := newPipeline(t)

		catalog.On("Genres", mock.Anything).Return(comedyGenres, nil).Once()
		catalog.On("DiscoverByGenre", mock.Anything, 35).Return(catalogMovies(1), nil).Times(2)
		movies.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(nil)
		history.On("Append", mock.Anything, mock.Anything).Return(nil)

		_, err := uc.Search(context.Background(), "u-1", "comedy")
		require.NoError(t, err)
		_, err = uc.Search(context.Background(), "u-1", "comedy")
		require.NoError(t, err)

		catalog.AssertExpectations(t)
	})

	t.Run("genre mapping refetched after the TTL", func(t *testing.T) {
		uc, catalog, movies, history := newPipeline(t)

		current := time.Now()
		uc.SetClock(func() time.Time { return current })
		uc.SetGenreTTL(time.Minute)

		catalog.On("Genres", mock.Anything).Return(comedyGenres, nil).Times(2)
		catalog.On("DiscoverByGenre", mock.Anything, 35).Return(catalogMovies(1), nil).Times(2)
		movies.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(nil)
		history.On("Append", mock.Anything, mock.Anything).Return(nil)

		_, err := uc.Search(context.Background(), "u-1", "comedy")
		require.NoError(t, err)

		current = current.Add(2 * time.Minute)
		_, err = uc.Search(context.Background(), "u-1", "comedy")
		require.NoError(t, err)

		catalog.AssertExpectations(t)
	})
}
