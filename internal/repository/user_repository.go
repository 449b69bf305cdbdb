package repository

import (
	"context"

	"myskin-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByCredentials(ctx context.Context, email, password string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	TouchLastLogin(ctx context.Context, id uint64) error
}
