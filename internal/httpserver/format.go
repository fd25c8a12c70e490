package httpserver

import (
	"math"
	"strconv"
	"strings"

	"invoicewizard/internal/domain"
)

// unknownCustomer is shown when an invoice references a deleted customer.
const unknownCustomer = "Unknown Customer"

// formatMYR renders an amount for display: MYR, 2 decimal places, thousands
// separators. Display rounding never feeds back into stored values.
func formatMYR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	fixed := strconv.FormatFloat(math.Abs(amount), 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return sign + "RM " + b.String() + "." + fracPart
}

// statusColor maps an invoice status onto its badge color.
func statusColor(status domain.InvoiceStatus) string {
	switch status {
	case domain.StatusPaid:
		return "green"
	case domain.StatusSent:
		return "blue"
	case domain.StatusOverdue:
		return "red"
	default:
		return "gray"
	}
}

func displayCustomerName(name string) string {
	if strings.TrimSpace(name) == "" {
		return unknownCustomer
	}
	return name
}
