package dashboard

import (
	"context"

	invoicerepo "invoicewizard/internal/repository/invoice"
)

// Stats is what the dashboard cards show for one user.
type Stats struct {
	CustomerCount int     `json:"customerCount"`
	InvoiceCount  int     `json:"invoiceCount"`
	Revenue       float64 `json:"revenue"`
}

type customerCounter interface {
	CountByUser(ctx context.Context, userID string) (int, error)
}

type invoiceStats interface {
	StatsByUser(ctx context.Context, userID string) (*invoicerepo.Stats, error)
}

// Service aggregates per-user counts and revenue.
type Service struct {
	customers customerCounter
	invoices  invoiceStats
}

func New(customers customerCounter, invoices invoiceStats) *Service {
	return &Service{customers: customers, invoices: invoices}
}

// Summary returns customer count, invoice count, and revenue (sum of paid
// invoice totals) for the user.
func (s *Service) Summary(ctx context.Context, userID string) (*Stats, error) {
	customers, err := s.customers.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	inv, err := s.invoices.StatsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Stats{
		CustomerCount: customers,
		InvoiceCount:  inv.InvoiceCount,
		Revenue:       inv.Revenue,
	}, nil
}
