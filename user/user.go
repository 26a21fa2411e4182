package user

import (
	"regexp"
	"strings"
	"time"

	"moviegenie/errs"
)

var (
	ErrUserIDRequired     = errs.Errorf(errs.EINVALID, "user: id is required")
	ErrInvalidName        = errs.Errorf(errs.EINVALID, "user: invalid name")
	ErrInvalidEmail       = errs.Errorf(errs.EINVALID, "user: invalid email format")
	ErrInvalidPassword    = errs.Errorf(errs.EINVALID, "user: password must be at least 8 characters long")
	ErrInvalidAvatar      = errs.Errorf(errs.EINVALID, "user: avatar is required")
	ErrUserNotFound       = errs.Errorf(errs.ENOTFOUND, "user not found")
	ErrEmailAlreadyExists = errs.Errorf(errs.ECONFLICT, "email already registered")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type User struct {
	ID           string
	Name         string
	Email        string
	Avatar       string
	Password     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrInvalidName
	}
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	return ValidatePassword(u.Password)
}

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.ToLower(strings.TrimSpace(email))) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrInvalidPassword
	}
	return nil
}
