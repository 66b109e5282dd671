package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovementType_IsValid(t *testing.T) {
	for _, mt := range AllMovementTypes() {
		assert.True(t, mt.IsValid(), "expected %s to be valid", mt)
	}

	assert.False(t, MovementType("refund").IsValid())
	assert.False(t, MovementType("").IsValid())
}

func TestMovementType_Direction(t *testing.T) {
	tests := []struct {
		movementType MovementType
		direction    MovementDirection
	}{
		{MovementTypeSale, DirectionOutbound},
		{MovementTypeDamage, DirectionOutbound},
		{MovementTypeExpired, DirectionOutbound},
		{MovementTypeTheft, DirectionOutbound},
		{MovementTypeReceipt, DirectionInbound},
		{MovementTypeReturn, DirectionInbound},
		{MovementTypeRestoration, DirectionInbound},
		{MovementTypeAdjustment, DirectionSigned},
		{MovementTypeTransfer, DirectionSigned},
	}

	for _, tt := range tests {
		t.Run(tt.movementType.String(), func(t *testing.T) {
			assert.Equal(t, tt.direction, tt.movementType.Direction())
		})
	}
}

func TestMovementType_SignedQuantity(t *testing.T) {
	t.Run("outbound types negate a positive magnitude", func(t *testing.T) {
		signed, err := MovementTypeSale.SignedQuantity(5)

		require.NoError(t, err)
		assert.Equal(t, int64(-5), signed)
	})

	t.Run("inbound types keep a positive magnitude", func(t *testing.T) {
		signed, err := MovementTypeReceipt.SignedQuantity(10)

		require.NoError(t, err)
		assert.Equal(t, int64(10), signed)
	})

	t.Run("signed types pass the delta through", func(t *testing.T) {
		signed, err := MovementTypeAdjustment.SignedQuantity(-3)
		require.NoError(t, err)
		assert.Equal(t, int64(-3), signed)

		signed, err = MovementTypeTransfer.SignedQuantity(7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), signed)
	})

	t.Run("rejects non-positive magnitude for unidirectional types", func(t *testing.T) {
		_, err := MovementTypeSale.SignedQuantity(-5)
		require.Error(t, err)

		_, err = MovementTypeReceipt.SignedQuantity(0)
		require.Error(t, err)
	})

	t.Run("rejects zero delta for signed types", func(t *testing.T) {
		_, err := MovementTypeAdjustment.SignedQuantity(0)

		require.Error(t, err)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := MovementType("refund").SignedQuantity(1)

		require.Error(t, err)
	})
}
