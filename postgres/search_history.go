package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"moviegenie/movie"
)

// SearchHistoryModel represents the database model for the append-only
// search log. Rows are never mutated or deleted.
type SearchHistoryModel struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     string    `gorm:"type:uuid;not null;index"`
	MovieID    int       `gorm:"not null"`
	SearchTerm string    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (SearchHistoryModel) TableName() string {
	return "search_histories"
}

// SearchHistoryRepository implements movie.HistoryRepository.
type SearchHistoryRepository struct {
	db *gorm.DB
}

// NewSearchHistoryRepository creates a new search history repository
func NewSearchHistoryRepository(db *gorm.DB) *SearchHistoryRepository {
	return &SearchHistoryRepository{db: db}
}

// Append writes the entries in order as a single batch.
func (r *SearchHistoryRepository) Append(ctx context.Context, entries []movie.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	models := make([]SearchHistoryModel, len(entries))
	for i, e := range entries {
		models[i] = SearchHistoryModel{
			UserID:     e.UserID,
			MovieID:    e.MovieID,
			SearchTerm: e.SearchTerm,
		}
	}
	return r.db.WithContext(ctx).Create(&models).Error
}
