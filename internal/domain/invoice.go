package domain

import "time"

// InvoiceStatus is set manually by the user. Nothing derives it: an invoice
// past its due date stays "sent" until someone marks it "overdue".
type InvoiceStatus string

const (
	StatusDraft   InvoiceStatus = "draft"
	StatusSent    InvoiceStatus = "sent"
	StatusPaid    InvoiceStatus = "paid"
	StatusOverdue InvoiceStatus = "overdue"
)

// ValidStatus reports whether s is one of the known invoice statuses.
func ValidStatus(s InvoiceStatus) bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// Invoice owns its line items. CustomerID is a lookup-only reference: the
// customer row may be deleted independently, in which case CustomerName
// is empty and display layers substitute a placeholder.
//
// Subtotal, TaxAmount and Total are derived from Lines and TaxRate. They are
// recomputed and persisted together with the line items in one transaction,
// never edited on their own.
type Invoice struct {
	ID            string        `json:"id"`
	UserID        string        `json:"-"`
	CustomerID    string        `json:"customerId"`
	CustomerName  string        `json:"-"`
	InvoiceNumber string        `json:"invoiceNumber"`
	InvoiceDate   string        `json:"invoiceDate"`
	DueDate       string        `json:"dueDate"`
	Status        InvoiceStatus `json:"status"`
	TaxRate       float64       `json:"taxRate"`
	Notes         *string       `json:"notes,omitempty"`
	Subtotal      float64       `json:"subtotal"`
	TaxAmount     float64       `json:"taxAmount"`
	Total         float64       `json:"total"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	Lines         []LineItem    `json:"lineItems,omitempty"`
}

// LineItem is one billable row of an invoice. Total is always
// Quantity * UnitPrice at the moment the parent invoice was saved.
type LineItem struct {
	ID          string    `json:"id"`
	InvoiceID   string    `json:"invoiceId"`
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"createdAt"`
}
