package domain

import "time"

type OrderCreatedEvent struct {
	OrderID     uint64    `json:"orderId"`
	UserID      uint64    `json:"userId"`
	TotalAmount int64     `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type OrderShippedEvent struct {
	OrderID   uint64    `json:"orderId"`
	UserID    uint64    `json:"userId"`
	ShippedAt time.Time `json:"shippedAt"`
}
