package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", EUR)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", EUR)
		assert.Error(t, err)
	})
}

func TestCurrencyIsSupported(t *testing.T) {
	assert.True(t, USD.IsSupported())
	assert.True(t, INR.IsSupported())
	assert.False(t, Currency("XXX").IsSupported())
	assert.False(t, Currency("").IsSupported())
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("add same currency", func(t *testing.T) {
		a := MustMoney("100.25", USD)
		b := MustMoney("50.75", USD)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "151.00", sum.StringFixed(2))
	})

	t.Run("add different currency fails", func(t *testing.T) {
		a := MustMoney("100", USD)
		b := MustMoney("100", EUR)
		_, err := a.Add(b)
		assert.Error(t, err)
	})

	t.Run("subtract", func(t *testing.T) {
		a := MustMoney("100.00", GBP)
		b := MustMoney("33.33", GBP)
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.Equal(t, "66.67", diff.StringFixed(2))
	})

	t.Run("multiply", func(t *testing.T) {
		m := MustMoney("19.99", USD).Multiply(decimal.NewFromInt(3))
		assert.Equal(t, "59.97", m.StringFixed(2))
	})

	t.Run("negate and abs", func(t *testing.T) {
		m := MustMoney("42.00", USD)
		assert.True(t, m.Negate().IsNegative())
		assert.True(t, m.Negate().Abs().Equals(m))
	})
}

func TestMoneyRound(t *testing.T) {
	// half-up at the cent boundary
	m := MustMoney("10.005", USD).Round(2)
	assert.Equal(t, "10.01", m.StringFixed(2))

	m = MustMoney("10.004", USD).Round(2)
	assert.Equal(t, "10.00", m.StringFixed(2))
}

func TestMoneyComparisons(t *testing.T) {
	a := MustMoney("10", USD)
	b := MustMoney("20", USD)

	lt, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, gt)

	_, err = a.LessThan(MustMoney("10", EUR))
	assert.Error(t, err)
}

func TestMoneyCalculatePercentage(t *testing.T) {
	m := MustMoney("200.00", USD)
	tax := m.CalculatePercentage(decimal.NewFromFloat(8.5))
	assert.Equal(t, "17.00", tax.StringFixed(2))
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := MustMoney("1234.56", CAD)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var got Money
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, got.Equals(m))
}

func TestMoneyScan(t *testing.T) {
	t.Run("scans string amount", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("99.95"))
		assert.Equal(t, "99.95", m.StringFixed(2))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("nil becomes zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("with currency preserves tag", func(t *testing.T) {
		m := Zero(INR)
		require.NoError(t, m.Scan("5.00"))
		assert.Equal(t, INR, m.Currency())
	})
}

func TestMoneyWithCurrency(t *testing.T) {
	m := MustMoney("7.50", USD).WithCurrency(AUD)
	assert.Equal(t, AUD, m.Currency())
	assert.Equal(t, "7.50", m.StringFixed(2))
}
