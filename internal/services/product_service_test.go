package services

import (
	"context"
	"testing"

	"myskin-api/internal/domain"
	"myskin-api/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductService_List(t *testing.T) {
	t.Run("empty catalog yields an empty slice", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		mockRepo.On("FindAll", mock.Anything).Return(nil, nil)

		service := NewProductService(mockRepo)
		products, err := service.List(context.Background())

		assert.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("catalog is returned as stored", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		expected := []domain.Product{
			*CreateMockProduct(1, "Hydrating Serum", 3200, 12),
			*CreateMockProduct(2, "Night Cream", 4500, 0),
		}
		mockRepo.On("FindAll", mock.Anything).Return(expected, nil)

		service := NewProductService(mockRepo)
		products, err := service.List(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, expected, products)
	})
}

func TestProductService_Create(t *testing.T) {
	t.Run("missing fields rejected before persistence", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)

		service := NewProductService(mockRepo)
		err := service.Create(context.Background(), &domain.Product{Name: "", Brand: "MYSKIN", Price: 1000})

		assert.ErrorIs(t, err, ErrMissingProductField)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("negative initial stock rejected", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)

		service := NewProductService(mockRepo)
		p := CreateMockProduct(0, "Hydrating Serum", 3200, -1)
		err := service.Create(context.Background(), p)

		assert.ErrorIs(t, err, ErrNegativeStock)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("valid product is persisted", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

		service := NewProductService(mockRepo)
		err := service.Create(context.Background(), CreateMockProduct(0, "Hydrating Serum", 3200, 12))

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestProductService_SetStock(t *testing.T) {
	t.Run("negative stock rejected", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)

		service := NewProductService(mockRepo)
		err := service.SetStock(context.Background(), TestProductID, -5)

		assert.ErrorIs(t, err, ErrNegativeStock)
		mockRepo.AssertNotCalled(t, "SetStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero is a valid override", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		mockRepo.On("SetStock", mock.Anything, TestProductID, int64(0)).Return(nil)

		service := NewProductService(mockRepo)
		err := service.SetStock(context.Background(), TestProductID, 0)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
