package domain

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID          uint64      `json:"user_id" gorm:"not null;index"`
	TotalAmount     int64       `json:"total_amount" gorm:"not null"`
	ShippingAddress string      `json:"shipping_address" gorm:"not null"`
	Status          OrderStatus `json:"status" gorm:"type:enum('pending','shipped','delivered','cancelled');default:'pending'"`
	CreatedAt       time.Time   `json:"created_at" gorm:"autoCreateTime"`
}

// OrderItem snapshots the unit price at purchase time. Later product price
// changes never alter a placed order.
type OrderItem struct {
	ID        uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64 `json:"order_id" gorm:"not null;index"`
	ProductID uint64 `json:"product_id" gorm:"not null"`
	Quantity  int64  `json:"quantity" gorm:"not null"`
	Price     int64  `json:"price" gorm:"not null"`
}

// OrderWithUser is the admin listing row, orders joined with the owning user.
type OrderWithUser struct {
	ID              uint64      `json:"id"`
	TotalAmount     int64       `json:"total_amount"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	ShippingAddress string      `json:"shipping_address"`
	UserName        string      `json:"user_name"`
	UserEmail       string      `json:"user_email"`
}
