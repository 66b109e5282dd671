package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), USD)

		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
	})

	t.Run("fails with empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")

		require.Error(t, err)
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("adds amounts with same currency", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10.50)
		b := NewMoneyUSDFromFloat(5.25)

		sum, err := a.Add(b)

		require.NoError(t, err)
		assert.Equal(t, "15.75", sum.StringFixed(2))
	})

	t.Run("fails with mismatched currencies", func(t *testing.T) {
		a := NewMoneyUSD(decimal.NewFromInt(10))
		b, _ := NewMoney(decimal.NewFromInt(10), EUR)

		_, err := a.Add(b)

		require.Error(t, err)
	})
}

func TestMoney_Subtract(t *testing.T) {
	a := NewMoneyUSDFromFloat(100)
	b := NewMoneyUSDFromFloat(30)

	diff, err := a.Subtract(b)

	require.NoError(t, err)
	assert.Equal(t, "70.00", diff.StringFixed(2))
}

func TestMoney_Multiply(t *testing.T) {
	m := NewMoneyUSDFromFloat(9.99)

	result := m.MultiplyByInt(3)

	assert.Equal(t, "29.97", result.StringFixed(2))
}

func TestMoney_Comparisons(t *testing.T) {
	small := NewMoneyUSDFromFloat(1)
	big := NewMoneyUSDFromFloat(2)

	lt, err := small.LessThan(big)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := big.GreaterThan(small)
	require.NoError(t, err)
	assert.True(t, gt)

	assert.True(t, small.Equals(NewMoneyUSDFromFloat(1)))
	assert.False(t, small.Equals(big))
}

func TestMoney_SignHelpers(t *testing.T) {
	assert.True(t, ZeroUSD().IsZero())
	assert.True(t, NewMoneyUSDFromFloat(1).IsPositive())
	assert.True(t, NewMoneyUSDFromFloat(-1).IsNegative())
	assert.True(t, NewMoneyUSDFromFloat(-1).Negate().IsPositive())
	assert.True(t, NewMoneyUSDFromFloat(-5).Abs().IsPositive())
}

func TestMoney_JSON(t *testing.T) {
	m := NewMoneyUSDFromFloat(42.50)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var parsed Money
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, m.Equals(parsed))
}

func TestMoney_Scan(t *testing.T) {
	t.Run("scans string amount", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("19.99"))

		assert.Equal(t, "19.99", m.StringFixed(2))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("scans nil as zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))

		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var m Money
		require.Error(t, m.Scan(3.14))
	})
}
