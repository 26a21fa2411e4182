package movie

import "moviegenie/errs"

var (
	ErrInvalidQuery  = errs.Errorf(errs.EINVALID, "search query is required")
	ErrMissingUser   = errs.Errorf(errs.EINVALID, "user id is required")
	ErrMovieNotFound = errs.Errorf(errs.ENOTFOUND, "movie not found")
)

// Movie is a cached catalog record. ID is the catalog's own identifier.
// A record is written once, on first appearance in a search's top results,
// and never refreshed afterwards.
type Movie struct {
	ID          int
	Title       string
	Genres      []string
	ReleaseYear int
	Rating      float64
	Popularity  float64
	Keywords    []string
}

// Summary is the projection of a catalog result returned to callers.
type Summary struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"releaseDate"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"posterPath"`
	VoteAverage float64 `json:"vote_average"`
	Popularity  float64 `json:"popularity"`
}

// HistoryEntry is one append-only search log row.
type HistoryEntry struct {
	UserID     string
	MovieID    int
	SearchTerm string
}
