package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"myskin-api/internal/domain"
	"myskin-api/internal/mocks"
	"myskin-api/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestShipmentNotifier_NotifyShipped(t *testing.T) {
	t.Run("connected owner receives exactly one notice", func(t *testing.T) {
		mockRepo := new(mocks.MockOrderRepository)
		mockPusher := new(mocks.MockPusher)

		mockRepo.On("FindByID", mock.Anything, TestOrderID).
			Return(CreateMockOrder(TestOrderID, TestUserID, TestTotal, domain.StatusShipped), nil)

		var payload []byte
		mockPusher.On("Send", "42", mock.Anything).Return(true).Once().Run(func(args mock.Arguments) {
			payload = args.Get(1).([]byte)
		})

		notifier := NewShipmentNotifier(mockRepo, mockPusher, nil)
		notifier.NotifyShipped(context.Background(), TestOrderID)

		mockPusher.AssertExpectations(t)

		var notice ws.ShippedNotice
		assert.NoError(t, json.Unmarshal(payload, &notice))
		assert.Equal(t, ws.TypeOrderShipped, notice.Type)
		assert.Equal(t, TestOrderID, notice.OrderID)
		assert.Contains(t, notice.Message, "shipped")
	})

	t.Run("disconnected owner is a silent miss", func(t *testing.T) {
		mockRepo := new(mocks.MockOrderRepository)
		mockPusher := new(mocks.MockPusher)

		mockRepo.On("FindByID", mock.Anything, TestOrderID).
			Return(CreateMockOrder(TestOrderID, TestUserID, TestTotal, domain.StatusShipped), nil)
		mockPusher.On("Send", "42", mock.Anything).Return(false).Once()

		notifier := NewShipmentNotifier(mockRepo, mockPusher, nil)
		notifier.NotifyShipped(context.Background(), TestOrderID)

		mockPusher.AssertExpectations(t)
	})

	t.Run("unknown order pushes nothing", func(t *testing.T) {
		mockRepo := new(mocks.MockOrderRepository)
		mockPusher := new(mocks.MockPusher)

		mockRepo.On("FindByID", mock.Anything, uint64(999)).Return(nil, nil)

		notifier := NewShipmentNotifier(mockRepo, mockPusher, nil)
		notifier.NotifyShipped(context.Background(), 999)

		mockPusher.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("order lookup failure pushes nothing", func(t *testing.T) {
		mockRepo := new(mocks.MockOrderRepository)
		mockPusher := new(mocks.MockPusher)

		mockRepo.On("FindByID", mock.Anything, TestOrderID).
			Return(nil, errors.New("database error"))

		notifier := NewShipmentNotifier(mockRepo, mockPusher, nil)
		notifier.NotifyShipped(context.Background(), TestOrderID)

		mockPusher.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("broker event accompanies the push", func(t *testing.T) {
		mockRepo := new(mocks.MockOrderRepository)
		mockPusher := new(mocks.MockPusher)
		mockPublisher := new(mocks.MockPublisher)

		mockRepo.On("FindByID", mock.Anything, TestOrderID).
			Return(CreateMockOrder(TestOrderID, TestUserID, TestTotal, domain.StatusShipped), nil)
		mockPusher.On("Send", "42", mock.Anything).Return(true).Once()
		mockPublisher.On("Publish", mock.Anything, "order.shipped", mock.Anything).Return(nil)

		notifier := NewShipmentNotifier(mockRepo, mockPusher, mockPublisher)
		notifier.NotifyShipped(context.Background(), TestOrderID)

		// the broker publish runs on its own goroutine
		time.Sleep(100 * time.Millisecond)

		mockPusher.AssertExpectations(t)
		mockPublisher.AssertExpectations(t)
	})
}
