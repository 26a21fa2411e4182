package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moviegenie/movie"
)

// MovieModel represents the database model for cached catalog movies.
// The catalog's own id is the primary key.
type MovieModel struct {
	MovieID     int            `gorm:"column:movie_id;primaryKey"`
	Title       string         `gorm:"not null"`
	Genres      pq.StringArray `gorm:"type:text[];not null"`
	ReleaseYear int
	Rating      float64
	Popularity  float64
	Keywords    pq.StringArray `gorm:"type:text[];not null"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository over the cache table.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// GetByID fetches a cached movie by its catalog id.
func (r *MovieRepository) GetByID(ctx context.Context, id int) (movie.Movie, error) {
	var model MovieModel

	err := r.db.WithContext(ctx).Where("movie_id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, err
	}

	return toDomainMovie(model), nil
}

// CreateIfAbsent inserts the record in a single statement. An already
// cached id is left untouched; stored fields are never refreshed.
func (r *MovieRepository) CreateIfAbsent(ctx context.Context, m movie.Movie) error {
	model := toModelMovie(m)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "movie_id"}},
			DoNothing: true,
		}).
		Create(&model).Error
}

func toDomainMovie(model MovieModel) movie.Movie {
	return movie.Movie{
		ID:          model.MovieID,
		Title:       model.Title,
		Genres:      model.Genres,
		ReleaseYear: model.ReleaseYear,
		Rating:      model.Rating,
		Popularity:  model.Popularity,
		Keywords:    model.Keywords,
	}
}

func toModelMovie(m movie.Movie) MovieModel {
	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}
	keywords := m.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	return MovieModel{
		MovieID:     m.ID,
		Title:       m.Title,
		Genres:      pq.StringArray(genres),
		ReleaseYear: m.ReleaseYear,
		Rating:      m.Rating,
		Popularity:  m.Popularity,
		Keywords:    pq.StringArray(keywords),
	}
}
