package user

import (
	"context"
	"strings"
)

type Service interface {
	GetUserByID(ctx context.Context, id string) (User, error)
	UpdateAvatar(ctx context.Context, id, avatar string) (User, error)
}

type Repository interface {
	CreateUser(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdateAvatar(ctx context.Context, id, avatar string) (User, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) GetUserByID(ctx context.Context, id string) (User, error) {
	if strings.TrimSpace(id) == "" {
		return User{}, ErrUserIDRequired
	}
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) UpdateAvatar(ctx context.Context, id, avatar string) (User, error) {
	id = strings.TrimSpace(id)
	avatar = strings.TrimSpace(avatar)
	if id == "" {
		return User{}, ErrUserIDRequired
	}
	if avatar == "" {
		return User{}, ErrInvalidAvatar
	}
	return uc.r.UpdateAvatar(ctx, id, avatar)
}
