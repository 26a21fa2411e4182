package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"moviegenie/user"
)

// UserModel represents the database model for users
type UserModel struct {
	ID           string `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"not null;unique"`
	Avatar       string
	PasswordHash string
	CreatedAt    time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// UserRepository implements user.Repository and auth.UserRepository.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts the user and returns the stored record with its
// generated id. A duplicate email maps to user.ErrEmailAlreadyExists.
func (r *UserRepository) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	model := toModelUser(u)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isDuplicateEmailError(err) {
			return user.User{}, user.ErrEmailAlreadyExists
		}
		return user.User{}, err
	}
	return toDomainUser(model), nil
}

// GetByID fetches a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	var model UserModel

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return toDomainUser(model), nil
}

// GetByEmail implements [auth.UserRepository].
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var model UserModel

	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return toDomainUser(model), nil
}

// UpdateAvatar updates the only mutable profile field and returns the
// updated user.
func (r *UserRepository) UpdateAvatar(ctx context.Context, id, avatar string) (user.User, error) {
	result := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"avatar":     avatar,
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return user.User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return user.User{}, user.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

func toDomainUser(model UserModel) user.User {
	return user.User{
		ID:           model.ID,
		Name:         model.Name,
		Email:        model.Email,
		Avatar:       model.Avatar,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func toModelUser(u user.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Avatar:       u.Avatar,
		PasswordHash: u.PasswordHash,
	}
}

func isDuplicateEmailError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && strings.Contains(strings.ToLower(pqErr.Constraint), "email")
	}
	return false
}
