package services

import (
	"time"

	"myskin-api/internal/domain"
)

func CreateMockOrder(id, userID uint64, total int64, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:              id,
		UserID:          userID,
		TotalAmount:     total,
		ShippingAddress: TestAddress,
		Status:          status,
		CreatedAt:       time.Now(),
	}
}

func CreateMockProduct(id uint64, name string, price, stock int64) *domain.Product {
	return &domain.Product{
		ID:            id,
		Name:          name,
		Brand:         "MYSKIN",
		Price:         price,
		StockQuantity: stock,
	}
}

const (
	TestUserID    = uint64(42)
	TestOrderID   = uint64(7)
	TestProductID = uint64(1)
	TestUnitPrice = int64(1000)
	TestTotal     = int64(2500)
	TestAddress   = "1-2-3 Minato, Tokyo"
)
