package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeUnit(t *testing.T) {
	t.Run("converts kilograms to grams", func(t *testing.T) {
		qty, unit := NormalizeUnit(decimal.NewFromInt(2), "kg")

		assert.Equal(t, "g", unit)
		assert.True(t, decimal.NewFromInt(2000).Equal(qty))
	})

	t.Run("converts liters to milliliters", func(t *testing.T) {
		qty, unit := NormalizeUnit(decimal.NewFromFloat(1.5), "L")

		assert.Equal(t, "ml", unit)
		assert.True(t, decimal.NewFromInt(1500).Equal(qty))
	})

	t.Run("is case insensitive", func(t *testing.T) {
		qty, unit := NormalizeUnit(decimal.NewFromInt(1), "KG")

		assert.Equal(t, "g", unit)
		assert.True(t, decimal.NewFromInt(1000).Equal(qty))
	})

	t.Run("passes through unconverted units unchanged", func(t *testing.T) {
		qty, unit := NormalizeUnit(decimal.NewFromInt(12), "un")

		assert.Equal(t, "un", unit)
		assert.True(t, decimal.NewFromInt(12).Equal(qty))
	})

	t.Run("grams are already canonical", func(t *testing.T) {
		qty, unit := NormalizeUnit(decimal.NewFromInt(500), "g")

		assert.Equal(t, "g", unit)
		assert.True(t, decimal.NewFromInt(500).Equal(qty))
	})
}

func TestNormalizeThreshold(t *testing.T) {
	t.Run("converts threshold alongside quantity", func(t *testing.T) {
		threshold := decimal.NewFromFloat(0.5)

		got := NormalizeThreshold(&threshold, "kg")

		assert.NotNil(t, got)
		assert.True(t, decimal.NewFromInt(500).Equal(*got))
	})

	t.Run("nil threshold stays nil", func(t *testing.T) {
		assert.Nil(t, NormalizeThreshold(nil, "kg"))
	})
}

func TestIsCanonical(t *testing.T) {
	assert.True(t, IsCanonical("g"))
	assert.True(t, IsCanonical("ml"))
	assert.True(t, IsCanonical("un"))
	assert.False(t, IsCanonical("kg"))
	assert.False(t, IsCanonical("l"))
}
