package repository

import (
	"context"
	"errors"

	"myskin-api/internal/domain"
)

// ErrInsufficientStock aborts the order transaction when a conditional stock
// decrement matches no row.
var ErrInsufficientStock = errors.New("insufficient stock")

type OrderRepository interface {
	// Create persists the order, its items and the stock decrements as one
	// transaction. On any failure nothing is written.
	Create(ctx context.Context, order *domain.Order, items []domain.OrderItem) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	FindByUser(ctx context.Context, userID uint64) ([]domain.Order, error)
	FindAllWithUser(ctx context.Context) ([]domain.OrderWithUser, error)
	UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error
}
