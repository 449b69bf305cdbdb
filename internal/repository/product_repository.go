package repository

import (
	"context"

	"myskin-api/internal/domain"
)

type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, id uint64, name, brand string, price int64) error
	Delete(ctx context.Context, id uint64) error
	// SetStock is the admin override: unconditional overwrite, outside any
	// order transaction.
	SetStock(ctx context.Context, id uint64, stock int64) error
}
