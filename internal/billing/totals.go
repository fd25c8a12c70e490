// Package billing derives authoritative monetary totals from line items and
// a tax rate. All functions are pure and never fail: invalid inputs
// (negative, NaN, infinite) are treated as 0.
package billing

import "math"

// LineInput carries the two numbers a line total is derived from.
type LineInput struct {
	Quantity  float64
	UnitPrice float64
}

// Totals is the derived money summary of an invoice.
type Totals struct {
	Subtotal  float64
	TaxAmount float64
	Total     float64
}

// LineTotal returns quantity * unitPrice.
func LineTotal(quantity, unitPrice float64) float64 {
	return sanitize(quantity) * sanitize(unitPrice)
}

// InvoiceTotals sums line totals and applies the tax rate percentage.
// An empty item list yields all zeros. Summation is order-independent and
// recomputation over unchanged items is idempotent. No rounding is applied;
// display rounding belongs to the presentation layer.
func InvoiceTotals(items []LineInput, taxRatePercent float64) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += LineTotal(it.Quantity, it.UnitPrice)
	}
	taxAmount := subtotal * (sanitize(taxRatePercent) / 100)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal + taxAmount,
	}
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
