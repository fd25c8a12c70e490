package billing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 100.0, LineTotal(2, 50))
	assert.Equal(t, 25.5, LineTotal(1, 25.5))
	assert.Equal(t, 0.0, LineTotal(0, 99.99))
	assert.Equal(t, 0.0, LineTotal(5, 0))
}

func TestLineTotalCoercesInvalidInputs(t *testing.T) {
	assert.Equal(t, 0.0, LineTotal(-1, 10))
	assert.Equal(t, 0.0, LineTotal(3, -2.5))
	assert.Equal(t, 0.0, LineTotal(math.NaN(), 10))
	assert.Equal(t, 0.0, LineTotal(2, math.Inf(1)))
}

func TestInvoiceTotalsScenario(t *testing.T) {
	items := []LineInput{
		{Quantity: 2, UnitPrice: 50.00},
		{Quantity: 1, UnitPrice: 25.50},
	}
	got := InvoiceTotals(items, 6.0)
	assert.InDelta(t, 125.50, got.Subtotal, 1e-9)
	assert.InDelta(t, 7.53, got.TaxAmount, 1e-9)
	assert.InDelta(t, 133.03, got.Total, 1e-9)
}

func TestInvoiceTotalsEmpty(t *testing.T) {
	for _, rate := range []float64{0, 6, 100, -5} {
		got := InvoiceTotals(nil, rate)
		assert.Equal(t, Totals{}, got, "rate %v", rate)
	}
}

func TestInvoiceTotalsSubtotalIsSumOfLines(t *testing.T) {
	items := []LineInput{
		{Quantity: 3, UnitPrice: 19.99},
		{Quantity: 0.5, UnitPrice: 120},
		{Quantity: 7, UnitPrice: 0.01},
	}
	var want float64
	for _, it := range items {
		want += LineTotal(it.Quantity, it.UnitPrice)
	}
	got := InvoiceTotals(items, 8.25)
	assert.Equal(t, want, got.Subtotal)
	assert.Equal(t, got.Subtotal+got.TaxAmount, got.Total)
}

func TestInvoiceTotalsIdempotent(t *testing.T) {
	items := []LineInput{
		{Quantity: 2, UnitPrice: 50},
		{Quantity: 1, UnitPrice: 25.5},
	}
	first := InvoiceTotals(items, 6.0)
	second := InvoiceTotals(items, 6.0)
	assert.Equal(t, first, second)
}

func TestInvoiceTotalsOrderIndependent(t *testing.T) {
	items := []LineInput{
		{Quantity: 2, UnitPrice: 50},
		{Quantity: 1, UnitPrice: 25.5},
		{Quantity: 4, UnitPrice: 12.25},
	}
	reversed := []LineInput{items[2], items[1], items[0]}
	assert.Equal(t, InvoiceTotals(items, 6.0), InvoiceTotals(reversed, 6.0))
}

func TestInvoiceTotalsNegativeRateTreatedAsZero(t *testing.T) {
	items := []LineInput{{Quantity: 1, UnitPrice: 100}}
	got := InvoiceTotals(items, -6)
	assert.Equal(t, 100.0, got.Subtotal)
	assert.Equal(t, 0.0, got.TaxAmount)
	assert.Equal(t, 100.0, got.Total)
}
