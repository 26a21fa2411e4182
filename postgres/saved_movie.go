package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"moviegenie/favorite"
)

// SavedMovieModel represents the database model for favorites. The unique
// index over (user_id, movie_id) is the backstop against duplicate rows
// under concurrent saves.
type SavedMovieModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_saved_movies_user_movie"`
	MovieID   int       `gorm:"not null;uniqueIndex:idx_saved_movies_user_movie"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (SavedMovieModel) TableName() string {
	return "saved_movies"
}

// SavedMovieRepository implements favorite.Repository.
type SavedMovieRepository struct {
	db *gorm.DB
}

// NewSavedMovieRepository creates a new saved movie repository
func NewSavedMovieRepository(db *gorm.DB) *SavedMovieRepository {
	return &SavedMovieRepository{db: db}
}

// Create inserts the favorite in a single statement; a unique constraint
// violation maps to favorite.ErrAlreadySaved. No existence pre-check.
func (r *SavedMovieRepository) Create(ctx context.Context, f favorite.Favorite) error {
	model := SavedMovieModel{
		UserID:  f.UserID,
		MovieID: f.MovieID,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return favorite.ErrAlreadySaved
		}
		return err
	}
	return nil
}

// Delete removes the favorite; zero matched rows maps to
// favorite.ErrNotSaved, so a second delete fails.
func (r *SavedMovieRepository) Delete(ctx context.Context, userID string, movieID int) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&SavedMovieModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return favorite.ErrNotSaved
	}
	return nil
}

// MovieIDs returns the catalog ids of the user's saved movies.
func (r *SavedMovieRepository) MovieIDs(ctx context.Context, userID string) ([]int, error) {
	ids := []int{}
	err := r.db.WithContext(ctx).
		Model(&SavedMovieModel{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("movie_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
