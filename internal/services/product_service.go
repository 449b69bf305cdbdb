package services

import (
	"context"
	"errors"

	"myskin-api/internal/domain"
	"myskin-api/internal/repository"
)

var (
	ErrMissingProductField = errors.New("name, brand and price are required")
	ErrNegativeStock       = errors.New("stock must be non-negative")
)

type ProductService struct {
	repo repository.ProductRepository
}

func NewProductService(r repository.ProductRepository) *ProductService {
	return &ProductService{repo: r}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *ProductService) Create(ctx context.Context, p *domain.Product) error {
	if p.Name == "" || p.Brand == "" || p.Price < 0 {
		return ErrMissingProductField
	}
	if p.StockQuantity < 0 {
		return ErrNegativeStock
	}
	return s.repo.Create(ctx, p)
}

func (s *ProductService) Update(ctx context.Context, id uint64, name, brand string, price int64) error {
	if name == "" || brand == "" || price < 0 {
		return ErrMissingProductField
	}
	return s.repo.Update(ctx, id, name, brand, price)
}

func (s *ProductService) Delete(ctx context.Context, id uint64) error {
	return s.repo.Delete(ctx, id)
}

// SetStock is the admin override path: it overwrites the count without any
// arbitration against in-flight order transactions.
func (s *ProductService) SetStock(ctx context.Context, id uint64, stock int64) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	return s.repo.SetStock(ctx, id, stock)
}
