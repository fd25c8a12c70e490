package customer

import (
	"context"

	"invoicewizard/internal/domain"
)

// Repository persists and fetches customers. Every query is scoped by the
// owning user; rows belonging to other users behave as missing.
type Repository interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Customer, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Customer, error)
	Update(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, userID, id string) error
	CountByUser(ctx context.Context, userID string) (int, error)
}
