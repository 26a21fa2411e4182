package favorite

import (
	"context"

	"moviegenie/movie"
)

type Service interface {
	Save(ctx context.Context, userID string, movieID int) error
	Remove(ctx context.Context, userID string, movieID int) error
	List(ctx context.Context, userID string) ([]int, error)
}

type Repository interface {
	// Create inserts the favorite in a single statement and returns
	// ErrAlreadySaved when the unique constraint rejects a duplicate.
	// There is no separate existence pre-check to race against.
	Create(ctx context.Context, f Favorite) error

	// Delete returns ErrNotSaved when no row matched.
	Delete(ctx context.Context, userID string, movieID int) error

	MovieIDs(ctx context.Context, userID string) ([]int, error)
}

// MovieCache is the slice of the movie repository favorites care about:
// a favorite may only reference a movie the search pipeline has cached.
type MovieCache interface {
	GetByID(ctx context.Context, id int) (movie.Movie, error)
}

type Usecase struct {
	r      Repository
	movies MovieCache
}

func NewUsecase(r Repository, movies MovieCache) *Usecase {
	return &Usecase{r: r, movies: movies}
}

func (uc *Usecase) Save(ctx context.Context, userID string, movieID int) error {
	if movieID == 0 {
		return ErrInvalidMovieID
	}
	if _, err := uc.movies.GetByID(ctx, movieID); err != nil {
		return err
	}
	return uc.r.Create(ctx, Favorite{UserID: userID, MovieID: movieID})
}

func (uc *Usecase) Remove(ctx context.Context, userID string, movieID int) error {
	if movieID == 0 {
		return ErrInvalidMovieID
	}
	return uc.r.Delete(ctx, userID, movieID)
}

func (uc *Usecase) List(ctx context.Context, userID string) ([]int, error) {
	return uc.r.MovieIDs(ctx, userID)
}
