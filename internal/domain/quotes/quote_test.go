package quotes

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quoteItem(t *testing.T, qty int, price float64) QuoteItem {
	t.Helper()
	it, err := NewQuoteItem(uuid.New(), qty, decimal.NewFromFloat(price))
	require.NoError(t, err)
	return it
}

func TestNewQuote(t *testing.T) {
	t.Run("applies percentage discount to the total", func(t *testing.T) {
		q, err := NewQuote("Ana", time.Now(), decimal.NewFromInt(10), []QuoteItem{
			quoteItem(t, 100, 2.0),
		})

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(200).Equal(q.Subtotal()))
		assert.True(t, decimal.NewFromInt(180).Equal(q.Total()), "got %s", q.Total())
	})

	t.Run("zero discount keeps the subtotal", func(t *testing.T) {
		q, err := NewQuote("Ana", time.Now(), decimal.Zero, []QuoteItem{quoteItem(t, 3, 5.0)})

		require.NoError(t, err)
		assert.True(t, q.Subtotal().Equal(q.Total()))
	})

	t.Run("rejects discount above 100", func(t *testing.T) {
		_, err := NewQuote("Ana", time.Now(), decimal.NewFromInt(101), []QuoteItem{quoteItem(t, 1, 1)})
		assert.Error(t, err)
	})

	t.Run("rejects negative discount", func(t *testing.T) {
		_, err := NewQuote("Ana", time.Now(), decimal.NewFromInt(-1), []QuoteItem{quoteItem(t, 1, 1)})
		assert.Error(t, err)
	})

	t.Run("rejects quote without items", func(t *testing.T) {
		_, err := NewQuote("Ana", time.Now(), decimal.Zero, nil)
		assert.Error(t, err)
	})
}

func TestQuoteUpdate(t *testing.T) {
	t.Run("replaces the item set", func(t *testing.T) {
		q, err := NewQuote("Ana", time.Now(), decimal.Zero, []QuoteItem{quoteItem(t, 1, 1)})
		require.NoError(t, err)

		err = q.Update("Ana", q.Date, decimal.NewFromInt(5), []QuoteItem{
			quoteItem(t, 10, 3.0),
			quoteItem(t, 5, 2.0),
		})

		require.NoError(t, err)
		require.Len(t, q.Items, 2)
		for _, item := range q.Items {
			assert.Equal(t, q.ID, item.QuoteID)
		}
		// (30 + 10) * 0.95 = 38
		assert.True(t, decimal.NewFromInt(38).Equal(q.Total()), "got %s", q.Total())
	})
}
