package favorite

import (
	"time"

	"moviegenie/errs"
)

var (
	ErrInvalidMovieID = errs.Errorf(errs.EINVALID, "movie id is required")
	ErrAlreadySaved   = errs.Errorf(errs.ECONFLICT, "movie is already saved as a favorite")
	ErrNotSaved       = errs.Errorf(errs.ENOTFOUND, "movie is not found in favorites")
)

// Favorite marks a movie as saved by a user. At most one row exists per
// (user, movie) pair; the storage unique constraint is the backstop.
type Favorite struct {
	UserID    string
	MovieID   int
	CreatedAt time.Time
}
