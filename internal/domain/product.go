package domain

type Product struct {
	ID            uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string  `json:"name" gorm:"not null"`
	Brand         string  `json:"brand" gorm:"not null"`
	Price         int64   `json:"price" gorm:"not null"`
	StockQuantity int64   `json:"stock_quantity" gorm:"not null;default:0"`
	Image         *string `json:"image"`
	Description   *string `json:"description"`
}
