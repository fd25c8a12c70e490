package seed

import (
	"context"
	"fmt"

	"invoicewizard/internal/billing"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type customerSeed struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type lineSeed struct {
	Description string
	Quantity    float64
	UnitPrice   float64
}

// Apply inserts basic seed data for manual testing. It is idempotent: the
// demo user is upserted by email and customers/invoices are only inserted
// when missing.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	userID, err := ensureUser(ctx, pool, "demo@invoicewizard.local", "Demo1234")
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	customers := []customerSeed{
		{
			Name:    "Acme Trading Sdn Bhd",
			Email:   "accounts@acme-trading.example",
			Phone:   "+60 3-2161 0000",
			Address: "12 Jalan Ampang\n50450 Kuala Lumpur",
		},
		{
			Name:  "Borneo Coffee Co",
			Email: "hello@borneocoffee.example",
		},
	}

	customerIDs := make([]string, 0, len(customers))
	for _, c := range customers {
		id, err := ensureCustomer(ctx, pool, userID, c)
		if err != nil {
			return fmt.Errorf("ensure customer %s: %w", c.Name, err)
		}
		customerIDs = append(customerIDs, id)
	}

	lines := []lineSeed{
		{Description: "Consulting services", Quantity: 2, UnitPrice: 50.00},
		{Description: "Travel expenses", Quantity: 1, UnitPrice: 25.50},
	}
	if err := ensureInvoice(ctx, pool, userID, customerIDs[0], "INV-0001", lines); err != nil {
		return fmt.Errorf("ensure invoice: %w", err)
	}

	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, email, password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	const q = `
INSERT INTO users (email, password_hash)
VALUES ($1, $2)
ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, email, string(hashed)).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureCustomer(ctx context.Context, pool *pgxpool.Pool, userID string, c customerSeed) (string, error) {
	var id string
	err := pool.QueryRow(ctx, `
SELECT id::text FROM customers WHERE user_id = $1 AND name = $2 LIMIT 1
`, userID, c.Name).Scan(&id)
	if err == nil {
		return id, nil
	}

	const q = `
INSERT INTO customers (user_id, name, email, phone, address)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
RETURNING id::text
`
	if err := pool.QueryRow(ctx, q, userID, c.Name, c.Email, c.Phone, c.Address).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureInvoice(ctx context.Context, pool *pgxpool.Pool, userID, customerID, number string, lines []lineSeed) error {
	var exists bool
	if err := pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM invoices WHERE user_id = $1 AND invoice_number = $2)
`, userID, number).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	calcInputs := make([]billing.LineInput, 0, len(lines))
	for _, l := range lines {
		calcInputs = append(calcInputs, billing.LineInput{Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	totals := billing.InvoiceTotals(calcInputs, 6.0)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO invoices (
    user_id, customer_id, invoice_number, invoice_date, due_date, status,
    tax_rate, subtotal, tax_amount, total
) VALUES ($1, $2, $3, CURRENT_DATE, CURRENT_DATE + 30, 'draft', 6.0, $4, $5, $6)
RETURNING id::text
`
	var invoiceID string
	if err := tx.QueryRow(ctx, q, userID, customerID, number, totals.Subtotal, totals.TaxAmount, totals.Total).Scan(&invoiceID); err != nil {
		return err
	}

	for _, l := range lines {
		if _, err := tx.Exec(ctx, `
INSERT INTO line_items (invoice_id, description, quantity, unit_price, total)
VALUES ($1, $2, $3, $4, $5)
`, invoiceID, l.Description, l.Quantity, l.UnitPrice, billing.LineTotal(l.Quantity, l.UnitPrice)); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
