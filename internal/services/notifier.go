package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"myskin-api/internal/domain"
	rabbit "myskin-api/internal/infra/rabbitmq"
	"myskin-api/internal/repository"
	"myskin-api/internal/ws"
)

// ShipmentPusher is what the notifier needs from the connection registry.
type ShipmentPusher interface {
	Send(userID string, payload []byte) bool
}

// ShipmentNotifier pushes a notification to the order's owner when the order
// is marked shipped. Delivery is at-most-once: no retry, no queue, nothing
// persisted for offline users. The order row stays the source of truth for
// shipment status.
type ShipmentNotifier struct {
	orders    repository.OrderRepository
	pusher    ShipmentPusher
	publisher rabbit.PublisherInterface
}

func NewShipmentNotifier(orders repository.OrderRepository, pusher ShipmentPusher, pub rabbit.PublisherInterface) *ShipmentNotifier {
	return &ShipmentNotifier{
		orders:    orders,
		pusher:    pusher,
		publisher: pub,
	}
}

// NotifyShipped never surfaces an error: a missed notification is an
// expected outcome, not a failure.
func (n *ShipmentNotifier) NotifyShipped(ctx context.Context, orderID uint64) {
	order, err := n.orders.FindByID(ctx, orderID)
	if err != nil {
		log.Printf("shipment notify: order %d lookup failed: %v", orderID, err)
		return
	}
	if order == nil {
		log.Printf("shipment notify: order %d not found", orderID)
		return
	}

	if n.publisher != nil {
		evt := domain.OrderShippedEvent{
			OrderID:   order.ID,
			UserID:    order.UserID,
			ShippedAt: time.Now(),
		}
		go func() {
			if err := n.publisher.Publish(context.Background(), "order.shipped", evt); err != nil {
				log.Printf("failed to publish order.shipped: %v", err)
			}
		}()
	}

	if n.pusher == nil {
		return
	}
	notice := ws.ShippedNotice{
		Type:    ws.TypeOrderShipped,
		OrderID: order.ID,
		Message: fmt.Sprintf("Order #%d has been shipped.", order.ID),
	}
	payload, err := json.Marshal(notice)
	if err != nil {
		log.Printf("shipment notify: marshal: %v", err)
		return
	}

	userID := strconv.FormatUint(order.UserID, 10)
	if n.pusher.Send(userID, payload) {
		log.Printf("sent order_shipped for order %d to user %s", order.ID, userID)
	} else {
		log.Printf("user %s not connected, order_shipped for order %d not sent", userID, order.ID)
	}
}
