package invoice

import (
	"context"
	"errors"
	"io"
	"log"

	"invoicewizard/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const invoiceColumns = `
i.id::text, i.user_id::text, i.customer_id::text, COALESCE(c.name, ''),
i.invoice_number, i.invoice_date::text, i.due_date::text, i.status,
i.tax_rate, i.notes, i.subtotal, i.tax_amount, i.total, i.created_at, i.updated_at
`

func (r *postgresRepo) Create(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO invoices (
    user_id, customer_id, invoice_number, invoice_date, due_date, status,
    tax_rate, notes, subtotal, tax_amount, total
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id::text
`
	var id string
	if err := tx.QueryRow(
		ctx,
		q,
		inv.UserID,
		inv.CustomerID,
		inv.InvoiceNumber,
		inv.InvoiceDate,
		inv.DueDate,
		inv.Status,
		inv.TaxRate,
		inv.Notes,
		inv.Subtotal,
		inv.TaxAmount,
		inv.Total,
	).Scan(&id); err != nil {
		return nil, err
	}

	if err := insertLines(ctx, tx, id, inv.Lines); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, inv.UserID, id)
}

func (r *postgresRepo) GetByID(ctx context.Context, userID, id string) (*domain.Invoice, error) {
	q := `
SELECT ` + invoiceColumns + `
FROM invoices i
LEFT JOIN customers c ON c.id = i.customer_id
WHERE i.user_id = $1 AND i.id = $2
LIMIT 1
`
	inv, err := scanInvoice(r.pool.QueryRow(ctx, q, userID, id))
	if err != nil {
		return nil, err
	}

	const linesQuery = `
SELECT id::text, invoice_id::text, description, quantity, unit_price, total, created_at
FROM line_items
WHERE invoice_id = $1
ORDER BY created_at ASC, id ASC
`
	rows, err := r.pool.Query(ctx, linesQuery, inv.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.LineItem
		if err := rows.Scan(
			&line.ID,
			&line.InvoiceID,
			&line.Description,
			&line.Quantity,
			&line.UnitPrice,
			&line.Total,
			&line.CreatedAt,
		); err != nil {
			return nil, err
		}
		inv.Lines = append(inv.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Invoice, error) {
	q := `
SELECT ` + invoiceColumns + `
FROM invoices i
LEFT JOIN customers c ON c.id = i.customer_id
WHERE i.user_id = $1
ORDER BY i.created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the invoice row and its full line-item set atomically:
// update row, delete old lines, insert the new batch, one commit.
func (r *postgresRepo) Update(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
UPDATE invoices
SET customer_id = $1, invoice_number = $2, invoice_date = $3, due_date = $4,
    status = $5, tax_rate = $6, notes = $7, subtotal = $8, tax_amount = $9,
    total = $10, updated_at = now()
WHERE user_id = $11 AND id = $12
RETURNING id::text
`
	var id string
	if err := tx.QueryRow(
		ctx,
		q,
		inv.CustomerID,
		inv.InvoiceNumber,
		inv.InvoiceDate,
		inv.DueDate,
		inv.Status,
		inv.TaxRate,
		inv.Notes,
		inv.Subtotal,
		inv.TaxAmount,
		inv.Total,
		inv.UserID,
		inv.ID,
	).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM line_items WHERE invoice_id = $1`, id); err != nil {
		return nil, err
	}
	if err := insertLines(ctx, tx, id, inv.Lines); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, inv.UserID, id)
}

func (r *postgresRepo) Delete(ctx context.Context, userID, id string) error {
	// line_items go with the invoice via ON DELETE CASCADE
	cmd, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) StatsByUser(ctx context.Context, userID string) (*Stats, error) {
	const q = `
SELECT COUNT(*), COALESCE(SUM(total) FILTER (WHERE status = 'paid'), 0)
FROM invoices
WHERE user_id = $1
`
	var s Stats
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&s.InvoiceCount, &s.Revenue); err != nil {
		return nil, err
	}
	return &s, nil
}

func insertLines(ctx context.Context, tx pgx.Tx, invoiceID string, lines []domain.LineItem) error {
	const q = `
INSERT INTO line_items (invoice_id, description, quantity, unit_price, total)
VALUES ($1, $2, $3, $4, $5)
`
	for _, line := range lines {
		if _, err := tx.Exec(ctx, q, invoiceID, line.Description, line.Quantity, line.UnitPrice, line.Total); err != nil {
			return err
		}
	}
	return nil
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.ID,
		&inv.UserID,
		&inv.CustomerID,
		&inv.CustomerName,
		&inv.InvoiceNumber,
		&inv.InvoiceDate,
		&inv.DueDate,
		&inv.Status,
		&inv.TaxRate,
		&inv.Notes,
		&inv.Subtotal,
		&inv.TaxAmount,
		&inv.Total,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}
