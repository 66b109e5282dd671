package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMovement(t *testing.T, productID uuid.UUID, movementType MovementType, quantity, previous int64) StockMovement {
	t.Helper()
	m, err := NewStockMovement(productID, movementType, quantity, previous, previous+quantity)
	require.NoError(t, err)
	return *m
}

func TestSummarizeMovements(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()

	movements := []StockMovement{
		mustMovement(t, productA, MovementTypeReceipt, 100, 0),
		mustMovement(t, productA, MovementTypeSale, -30, 100),
		mustMovement(t, productA, MovementTypeSale, -10, 70),
		mustMovement(t, productA, MovementTypeReturn, 5, 60),
		mustMovement(t, productA, MovementTypeDamage, -2, 65),
		mustMovement(t, productB, MovementTypeAdjustment, -7, 50),
		mustMovement(t, productB, MovementTypeRestoration, 3, 43),
	}

	summaries := SummarizeMovements(movements)

	require.Len(t, summaries, 2)

	byProduct := make(map[uuid.UUID]ProductMovementSummary, len(summaries))
	for _, s := range summaries {
		byProduct[s.ProductID] = s
	}

	a := byProduct[productA]
	assert.Equal(t, int64(40), a.Sold)
	assert.Equal(t, int64(100), a.Received)
	assert.Equal(t, int64(5), a.Returned)
	assert.Equal(t, int64(2), a.Adjusted)
	assert.Equal(t, int64(63), a.NetChange)

	b := byProduct[productB]
	assert.Equal(t, int64(0), b.Sold)
	assert.Equal(t, int64(7), b.Adjusted)
	assert.Equal(t, int64(3), b.Returned)
	assert.Equal(t, int64(-4), b.NetChange)
}

func TestSummarizeMovements_Empty(t *testing.T) {
	summaries := SummarizeMovements(nil)

	assert.Empty(t, summaries)
}

func TestSummarizeMovements_DeterministicOrder(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()

	movements := []StockMovement{
		mustMovement(t, productB, MovementTypeReceipt, 1, 0),
		mustMovement(t, productA, MovementTypeReceipt, 1, 0),
	}

	first := SummarizeMovements(movements)
	second := SummarizeMovements(movements)

	require.Len(t, first, 2)
	assert.Equal(t, first[0].ProductID, second[0].ProductID)
	assert.Equal(t, first[1].ProductID, second[1].ProductID)
	assert.True(t, first[0].ProductID.String() < first[1].ProductID.String())
}
