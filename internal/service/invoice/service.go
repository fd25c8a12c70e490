package invoice

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"invoicewizard/internal/billing"
	"invoicewizard/internal/domain"
	invoicerepo "invoicewizard/internal/repository/invoice"
)

const defaultTaxRate = 6.0

// Service validates invoice input, derives totals, and hands complete
// invoices to storage. Stored subtotal/tax/total always come out of the
// calculator; they are never accepted from the caller.
type Service struct {
	repo invoicerepo.Repository
	now  func() time.Time
}

func New(repo invoicerepo.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// LineInput is one requested line item. Quantity and unit price below zero
// (or non-numeric) are coerced to 0 rather than rejected.
type LineInput struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Input mirrors incoming invoice payloads. TaxRate is a pointer so an
// omitted rate can default to 6.0 while an explicit 0 stays 0.
type Input struct {
	CustomerID    string      `json:"customerId"`
	InvoiceNumber string      `json:"invoiceNumber"`
	InvoiceDate   string      `json:"invoiceDate"`
	DueDate       string      `json:"dueDate"`
	Status        string      `json:"status"`
	TaxRate       *float64    `json:"taxRate"`
	Notes         string      `json:"notes"`
	Lines         []LineInput `json:"lineItems"`
}

// Create validates the payload, computes totals, and stores the invoice with
// its line items in one transaction. A missing invoice number is generated.
func (s *Service) Create(ctx context.Context, userID string, in Input) (*domain.Invoice, error) {
	inv, err := s.buildInvoice(userID, in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, *inv)
}

// Update revalidates the payload, recomputes totals, and replaces the
// invoice row together with its full line-item set atomically.
func (s *Service) Update(ctx context.Context, userID, id string, in Input) (*domain.Invoice, error) {
	inv, err := s.buildInvoice(userID, in)
	if err != nil {
		return nil, err
	}
	inv.ID = id
	return s.repo.Update(ctx, *inv)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*domain.Invoice, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Invoice, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *Service) buildInvoice(userID string, in Input) (*domain.Invoice, error) {
	if strings.TrimSpace(in.CustomerID) == "" {
		return nil, fmt.Errorf("%w: customer required", domain.ErrInvalid)
	}

	number := strings.TrimSpace(in.InvoiceNumber)
	if number == "" {
		number = fmt.Sprintf("INV-%d", s.now().UnixMilli())
	}

	invoiceDate, err := parseDate(in.InvoiceDate, "invoice date")
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate(in.DueDate, "due date")
	if err != nil {
		return nil, err
	}

	status := domain.InvoiceStatus(strings.TrimSpace(in.Status))
	if status == "" {
		status = domain.StatusDraft
	}
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalid, status)
	}

	taxRate := defaultTaxRate
	if in.TaxRate != nil {
		taxRate = *in.TaxRate
		if math.IsNaN(taxRate) || math.IsInf(taxRate, 0) || taxRate < 0 {
			return nil, fmt.Errorf("%w: tax rate must be a non-negative number", domain.ErrInvalid)
		}
	}

	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: at least one line item required", domain.ErrInvalid)
	}

	lines := make([]domain.LineItem, 0, len(in.Lines))
	calcInputs := make([]billing.LineInput, 0, len(in.Lines))
	for _, li := range in.Lines {
		desc := strings.TrimSpace(li.Description)
		if desc == "" {
			return nil, fmt.Errorf("%w: line item description required", domain.ErrInvalid)
		}
		qty := coerce(li.Quantity)
		price := coerce(li.UnitPrice)
		lines = append(lines, domain.LineItem{
			Description: desc,
			Quantity:    qty,
			UnitPrice:   price,
			Total:       billing.LineTotal(qty, price),
		})
		calcInputs = append(calcInputs, billing.LineInput{Quantity: qty, UnitPrice: price})
	}

	totals := billing.InvoiceTotals(calcInputs, taxRate)

	return &domain.Invoice{
		UserID:        userID,
		CustomerID:    in.CustomerID,
		InvoiceNumber: number,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		Status:        status,
		TaxRate:       taxRate,
		Notes:         optional(in.Notes),
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.TaxAmount,
		Total:         totals.Total,
		Lines:         lines,
	}, nil
}

func parseDate(v, field string) (string, error) {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s required", domain.ErrInvalid, field)
	}
	if _, err := time.Parse("2006-01-02", trimmed); err != nil {
		return "", fmt.Errorf("%w: %s must be YYYY-MM-DD", domain.ErrInvalid, field)
	}
	return trimmed, nil
}

func coerce(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func optional(v string) *string {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
