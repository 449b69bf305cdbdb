package http

type RegisterRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required"`
	PhoneNumber *string `json:"phone_number"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type OrderItemRequest struct {
	ID       uint64 `json:"id" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required,min=1"`
	Price    int64  `json:"price" binding:"min=0"`
}

type PlaceOrderRequest struct {
	UserID          uint64             `json:"userId" binding:"required"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Total           int64              `json:"total" binding:"required,min=1"`
	ShippingAddress string             `json:"shippingAddress" binding:"required"`
}

type PlaceOrderResponse struct {
	Message string `json:"message"`
	OrderID uint64 `json:"orderId"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateStockRequest struct {
	Stock *int64 `json:"stock" binding:"required"`
}

// ProductCreateRequest is bound from a multipart form; the image arrives as a
// separate file part named "image".
type ProductCreateRequest struct {
	Name          string  `form:"name" binding:"required"`
	Brand         string  `form:"brand" binding:"required"`
	Price         *int64  `form:"price" binding:"required"`
	StockQuantity *int64  `form:"stock_quantity" binding:"required"`
	Description   *string `form:"description"`
}

type ProductUpdateRequest struct {
	Name  string `json:"name" binding:"required"`
	Brand string `json:"brand" binding:"required"`
	Price *int64 `json:"price" binding:"required"`
}
