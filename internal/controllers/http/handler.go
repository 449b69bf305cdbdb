package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"myskin-api/internal/domain"
	"myskin-api/internal/repository"
	"myskin-api/internal/services"
	"myskin-api/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const (
	productsCacheKey = "products:all"
	productsCacheTTL = 10 * time.Second
)

type Handler struct {
	orders     *services.OrderService
	products   *services.ProductService
	users      *services.UserService
	registry   *ws.Registry
	rdb        *redis.Client
	uploadsDir string
}

func NewHandler(orders *services.OrderService, products *services.ProductService, users *services.UserService, registry *ws.Registry, rdb *redis.Client, uploadsDir string) *Handler {
	return &Handler{
		orders:     orders,
		products:   products,
		users:      users,
		registry:   registry,
		rdb:        rdb,
		uploadsDir: uploadsDir,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws", h.ServeWS)
	r.Static("/uploads", h.uploadsDir)

	api := r.Group("/api")
	api.GET("/products", h.ListProducts)
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.POST("/orders", h.PlaceOrder)
	api.GET("/users/:userId/orders", h.OrderHistory)

	admin := api.Group("/admin")
	admin.GET("/users", h.AdminListUsers)
	admin.GET("/orders", h.AdminListOrders)
	admin.GET("/products", h.AdminListProducts)
	admin.POST("/products", h.AdminCreateProduct)
	admin.PUT("/products/:id", h.AdminUpdateProduct)
	admin.DELETE("/products/:id", h.AdminDeleteProduct)
	admin.PUT("/products/:id/stock", h.AdminSetStock)
	admin.PUT("/orders/:id/status", h.AdminUpdateOrderStatus)
}

func (h *Handler) ServeWS(c *gin.Context) {
	ws.Serve(h.registry, c.Writer, c.Request)
}

func (h *Handler) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if h.rdb != nil {
		if b, err := h.rdb.Get(ctx, productsCacheKey).Result(); err == nil {
			var products []domain.Product
			if err := json.Unmarshal([]byte(b), &products); err == nil {
				c.JSON(http.StatusOK, products)
				return
			}
		}
	}

	products, err := h.products.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load products"})
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(products); err == nil {
			h.rdb.Set(ctx, productsCacheKey, data, productsCacheTTL)
		}
	}

	c.JSON(http.StatusOK, products)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, email and password are required"})
		return
	}

	userID, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.PhoneNumber)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingUserFields):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"message": "this email address is already registered"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registration complete", "userId": userID})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
		return
	}

	user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "email or password is incorrect"})
		case errors.Is(err, services.ErrMissingUserFields):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "login successful", "user": user.Public()})
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request, check the required fields"})
		return
	}

	in := services.PlaceOrderInput{
		UserID:          req.UserID,
		Total:           req.Total,
		ShippingAddress: req.ShippingAddress,
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, services.CartLine{
			ProductID: item.ID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOrder), errors.Is(err, services.ErrTotalTooLow):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		case errors.Is(err, repository.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"message": "insufficient stock"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "an error occurred while processing the order"})
		}
		return
	}

	h.invalidateProductsCache()

	c.JSON(http.StatusCreated, PlaceOrderResponse{Message: "order created", OrderID: order.ID})
}

func (h *Handler) OrderHistory(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
		return
	}

	orders, err := h.orders.GetOrdersByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load order history"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *Handler) AdminListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) AdminListOrders(c *gin.Context) {
	orders, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) AdminListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// AdminCreateProduct accepts a multipart form. The product image is optional;
// when present it is written to the uploads directory under a timestamped name
// and the row stores the public /uploads path.
func (h *Handler) AdminCreateProduct(c *gin.Context) {
	var req ProductCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, brand, price and stock_quantity are required"})
		return
	}

	var image *string
	if file, err := c.FormFile("image"); err == nil {
		name := fmt.Sprintf("%d%s", time.Now().UnixMilli(), filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, filepath.Join(h.uploadsDir, name)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to store product image"})
			return
		}
		path := "/uploads/" + name
		image = &path
	}

	p := &domain.Product{
		Name:          req.Name,
		Brand:         req.Brand,
		Price:         *req.Price,
		StockQuantity: *req.StockQuantity,
		Image:         image,
		Description:   req.Description,
	}
	if err := h.products.Create(c.Request.Context(), p); err != nil {
		h.respondProductError(c, err)
		return
	}

	h.invalidateProductsCache()

	c.JSON(http.StatusCreated, gin.H{"message": "product created", "productId": p.ID})
}

func (h *Handler) AdminUpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}

	var req ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, brand and price are required"})
		return
	}

	if err := h.products.Update(c.Request.Context(), id, req.Name, req.Brand, *req.Price); err != nil {
		h.respondProductError(c, err)
		return
	}

	h.invalidateProductsCache()

	c.JSON(http.StatusOK, gin.H{"message": "product updated"})
}

func (h *Handler) AdminDeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete product"})
		return
	}

	h.invalidateProductsCache()

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *Handler) AdminSetStock(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}

	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "stock is required"})
		return
	}

	if err := h.products.SetStock(c.Request.Context(), id, *req.Stock); err != nil {
		h.respondProductError(c, err)
		return
	}

	h.invalidateProductsCache()

	c.JSON(http.StatusOK, gin.H{"message": "stock updated"})
}

// AdminUpdateOrderStatus persists the status; when the order transitions to
// shipped the owner is notified within this same request.
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "status is required"})
		return
	}

	if err := h.orders.UpdateStatus(c.Request.Context(), id, domain.OrderStatus(req.Status)); err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update order status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order status updated"})
}

func (h *Handler) respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingProductField), errors.Is(err, services.ErrNegativeStock):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
	}
}

func (h *Handler) invalidateProductsCache() {
	if h.rdb != nil {
		h.rdb.Del(context.Background(), productsCacheKey)
	}
}
