package invoice

import (
	"context"

	"invoicewizard/internal/domain"
)

// Stats aggregates the numbers shown on the dashboard.
type Stats struct {
	InvoiceCount int
	Revenue      float64
}

// Repository persists invoices together with their line items. Create and
// Update run as a single transaction: the invoice row, its derived totals,
// and the full replacement of its line items commit or roll back together.
type Repository interface {
	Create(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Invoice, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Invoice, error)
	Update(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error)
	Delete(ctx context.Context, userID, id string) error
	StatsByUser(ctx context.Context, userID string) (*Stats, error)
}
