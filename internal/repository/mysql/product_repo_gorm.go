package mysql

import (
	"context"
	"errors"
	"log"

	"myskin-api/internal/domain"
	"myskin-api/internal/repository"

	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		log.Printf("product FindAll error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *productRepo) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("product FindByID error: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		log.Printf("product create error: %v", err)
		return err
	}
	return nil
}

func (r *productRepo) Update(ctx context.Context, id uint64, name, brand string, price int64) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "brand": brand, "price": price}).Error
	if err != nil {
		log.Printf("product update error: %v", err)
	}
	return err
}

func (r *productRepo) Delete(ctx context.Context, id uint64) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Product{}, id).Error; err != nil {
		log.Printf("product delete error: %v", err)
		return err
	}
	return nil
}

// SetStock overwrites the count unconditionally. The admin path does not
// arbitrate with in-flight order transactions.
func (r *productRepo) SetStock(ctx context.Context, id uint64, stock int64) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock_quantity", stock).Error
	if err != nil {
		log.Printf("product SetStock error: %v", err)
	}
	return err
}
