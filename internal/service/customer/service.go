package customer

import (
	"context"
	"fmt"
	"strings"

	"invoicewizard/internal/domain"
	customerrepo "invoicewizard/internal/repository/customer"
)

// Service validates customer input before it reaches storage.
type Service struct {
	repo customerrepo.Repository
}

func New(repo customerrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Input mirrors incoming customer payloads. Empty optional fields are
// persisted as NULL, not as empty strings.
type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Create validates the payload and stores a new customer. The name must be
// non-empty after trimming; validation failures never reach the repository.
func (s *Service) Create(ctx context.Context, userID string, in Input) (*domain.Customer, error) {
	c, err := buildCustomer(userID, in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, *c)
}

// Update validates the payload and replaces the stored customer fields.
func (s *Service) Update(ctx context.Context, userID, id string, in Input) (*domain.Customer, error) {
	c, err := buildCustomer(userID, in)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return s.repo.Update(ctx, *c)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Customer, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

func buildCustomer(userID string, in Input) (*domain.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name required", domain.ErrInvalid)
	}
	return &domain.Customer{
		UserID:  userID,
		Name:    name,
		Email:   optional(in.Email),
		Phone:   optional(in.Phone),
		Address: optional(in.Address),
	}, nil
}

func optional(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
