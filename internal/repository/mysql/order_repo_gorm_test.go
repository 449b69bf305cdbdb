package mysql

import (
	"testing"

	"myskin-api/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestLockOrder_SortsByProductID(t *testing.T) {
	items := []domain.OrderItem{
		{ProductID: 9, Quantity: 1},
		{ProductID: 2, Quantity: 3},
		{ProductID: 5, Quantity: 2},
	}

	lockOrder(items)

	assert.Equal(t, uint64(2), items[0].ProductID)
	assert.Equal(t, uint64(5), items[1].ProductID)
	assert.Equal(t, uint64(9), items[2].ProductID)
}

func TestLockOrder_OppositeCartsConverge(t *testing.T) {
	cartA := []domain.OrderItem{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 1}}
	cartB := []domain.OrderItem{{ProductID: 2, Quantity: 1}, {ProductID: 1, Quantity: 1}}

	lockOrder(cartA)
	lockOrder(cartB)

	for i := range cartA {
		assert.Equal(t, cartA[i].ProductID, cartB[i].ProductID)
	}
}
