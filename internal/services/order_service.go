package services

import (
	"context"
	"errors"
	"log"
	"time"

	"myskin-api/internal/domain"
	rabbit "myskin-api/internal/infra/rabbitmq"
	"myskin-api/internal/repository"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidOrder  = errors.New("invalid order request")
	ErrTotalTooLow   = errors.New("total is below the sum of line items")
	ErrInvalidStatus = errors.New("invalid order status")
)

type CartLine struct {
	ProductID uint64
	Quantity  int64
	Price     int64
}

type PlaceOrderInput struct {
	UserID          uint64
	Items           []CartLine
	Total           int64
	ShippingAddress string
}

type OrderService struct {
	repo      repository.OrderRepository
	publisher rabbit.PublisherInterface
	notifier  *ShipmentNotifier
}

func NewOrderService(r repository.OrderRepository, pub rabbit.PublisherInterface, n *ShipmentNotifier) *OrderService {
	return &OrderService{
		repo:      r,
		publisher: pub,
		notifier:  n,
	}
}

// PlaceOrder validates the cart, then hands the order, its items and the
// stock decrements to the repository as one transaction. On success an
// order.created event is published asynchronously; event delivery never
// affects the order outcome.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	if err := validatePlaceOrder(in); err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:          in.UserID,
		TotalAmount:     in.Total,
		ShippingAddress: in.ShippingAddress,
		Status:          domain.StatusPending,
		CreatedAt:       time.Now(),
	}
	items := make([]domain.OrderItem, len(in.Items))
	for i, line := range in.Items {
		items[i] = domain.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		}
	}

	if err := s.repo.Create(ctx, order, items); err != nil {
		return nil, err
	}

	go s.publishOrderCreated(context.Background(), order)

	return order, nil
}

func validatePlaceOrder(in PlaceOrderInput) error {
	if in.UserID == 0 || len(in.Items) == 0 || in.ShippingAddress == "" || in.Total <= 0 {
		return ErrInvalidOrder
	}
	var sum int64
	for _, line := range in.Items {
		if line.ProductID == 0 || line.Quantity <= 0 || line.Price < 0 {
			return ErrInvalidOrder
		}
		sum += line.Quantity * line.Price
	}
	// The client adds a shipping fee on top of the line total, so the
	// submitted total may exceed the sum but must never undercut it.
	if in.Total < sum {
		return ErrTotalTooLow
	}
	return nil
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	evt := domain.OrderCreatedEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, "order.created", evt); err != nil {
		log.Printf("failed to publish order.created: %v", err)
	}
}

// UpdateStatus persists the new status. Marking an order shipped notifies
// its owner in the same call; re-marking notifies again, there is no
// deduplication.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint64, status domain.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}
	if status == domain.StatusShipped && s.notifier != nil {
		s.notifier.NotifyShipped(ctx, orderID)
	}
	return nil
}

func (s *OrderService) GetOrderById(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *OrderService) GetOrdersByUser(ctx context.Context, userID uint64) ([]domain.Order, error) {
	orders, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.OrderWithUser, error) {
	orders, err := s.repo.FindAllWithUser(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.OrderWithUser{}
	}
	return orders, nil
}
