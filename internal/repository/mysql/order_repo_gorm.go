package mysql

import (
	"context"
	"errors"
	"log"
	"sort"

	"myskin-api/internal/domain"
	"myskin-api/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

// lockOrder sorts items by product id so concurrent carts touching the same
// products always take their row locks in the same order and cannot deadlock.
func lockOrder(items []domain.OrderItem) {
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

// Create writes the order row, its item rows and the per-product stock
// decrements inside one transaction. The decrement is conditional on
// stock_quantity >= quantity; zero affected rows means another order took the
// stock first, and the whole transaction rolls back.
func (r *orderRepo) Create(ctx context.Context, order *domain.Order, items []domain.OrderItem) error {
	lockOrder(items)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		for _, item := range items {
			res := tx.Model(&domain.Product{}).
				Where("id = ? AND stock_quantity >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repository.ErrInsufficientStock
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, repository.ErrInsufficientStock) {
			log.Printf("order create error: %v", err)
		}
		// The insert inside the rolled-back transaction may have assigned an
		// ID; clear it so callers never see a phantom order id.
		order.ID = 0
		return err
	}
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("order FindByID error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByUser(ctx context.Context, userID uint64) ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		log.Printf("order FindByUser error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) FindAllWithUser(ctx context.Context) ([]domain.OrderWithUser, error) {
	var out []domain.OrderWithUser
	err := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Select("orders.id, orders.total_amount, orders.status, orders.created_at, orders.shipping_address, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = orders.user_id").
		Order("orders.created_at DESC").
		Scan(&out).Error
	if err != nil {
		log.Printf("order FindAllWithUser error: %v", err)
		return nil, err
	}
	return out, nil
}

// UpdateStatus does not require the row to change: re-applying the same
// status is allowed (and re-triggers shipment notification upstream).
func (r *orderRepo) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		log.Printf("order UpdateStatus error: %v", err)
	}
	return err
}
