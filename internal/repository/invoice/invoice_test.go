package invoice

import (
	"context"
	"errors"
	"math"
	"os"
	"testing"

	"invoicewizard/internal/domain"
	"invoicewizard/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func setup(ctx context.Context, t *testing.T) (*pgxpool.Pool, string, string) {
	t.Helper()
	pool := testPool(ctx, t)
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE line_items, invoices, customers, tokens, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	var userID string
	err := pool.QueryRow(ctx, `INSERT INTO users (email, password_hash) VALUES ('owner@example.com', 'x') RETURNING id::text`).Scan(&userID)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	var customerID string
	err = pool.QueryRow(ctx, `INSERT INTO customers (user_id, name) VALUES ($1, 'Acme Sdn Bhd') RETURNING id::text`, userID).Scan(&customerID)
	if err != nil {
		t.Fatalf("insert customer: %v", err)
	}
	return pool, userID, customerID
}

func sampleInvoice(userID, customerID string) domain.Invoice {
	return domain.Invoice{
		UserID:        userID,
		CustomerID:    customerID,
		InvoiceNumber: "INV-0001",
		InvoiceDate:   "2026-08-01",
		DueDate:       "2026-08-31",
		Status:        domain.StatusDraft,
		TaxRate:       6.0,
		Subtotal:      125.50,
		TaxAmount:     7.53,
		Total:         133.03,
		Lines: []domain.LineItem{
			{Description: "Consulting", Quantity: 2, UnitPrice: 50, Total: 100},
			{Description: "Travel", Quantity: 1, UnitPrice: 25.50, Total: 25.50},
		},
	}
}

func TestPostgres_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	pool, userID, customerID := setup(ctx, t)
	defer pool.Close()

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, sampleInvoice(userID, customerID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.InvoiceNumber != "INV-0001" {
		t.Fatalf("unexpected invoice %+v", created)
	}
	if created.CustomerName != "Acme Sdn Bhd" {
		t.Fatalf("customer name = %q", created.CustomerName)
	}
	if created.InvoiceDate != "2026-08-01" || created.DueDate != "2026-08-31" {
		t.Fatalf("dates round-tripped badly: %q %q", created.InvoiceDate, created.DueDate)
	}
	if len(created.Lines) != 2 || created.Lines[0].Description != "Consulting" {
		t.Fatalf("unexpected lines %+v", created.Lines)
	}
	if math.Abs(created.Total-133.03) > 1e-9 {
		t.Fatalf("total = %v", created.Total)
	}

	fetched, err := repo.GetByID(ctx, userID, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched.ID != created.ID || len(fetched.Lines) != 2 {
		t.Fatalf("fetched mismatch %+v", fetched)
	}
}

func TestPostgres_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	pool, userID, customerID := setup(ctx, t)
	defer pool.Close()

	repo := NewPostgres(pool, nil)
	for _, number := range []string{"INV-0001", "INV-0002", "INV-0003"} {
		inv := sampleInvoice(userID, customerID)
		inv.InvoiceNumber = number
		if _, err := repo.Create(ctx, inv); err != nil {
			t.Fatalf("Create %q: %v", number, err)
		}
	}

	got, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 invoices, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Fatalf("list not newest first: %v before %v", got[i-1].CreatedAt, got[i].CreatedAt)
		}
	}
}

func TestPostgres_UpdateReplacesLines(t *testing.T) {
	ctx := context.Background()
	pool, userID, customerID := setup(ctx, t)
	defer pool.Close()

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, sampleInvoice(userID, customerID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	inv := sampleInvoice(userID, customerID)
	inv.ID = created.ID
	inv.Status = domain.StatusPaid
	inv.Lines = []domain.LineItem{
		{Description: "Retainer", Quantity: 1, UnitPrice: 500, Total: 500},
	}
	inv.Subtotal = 500
	inv.TaxAmount = 30
	inv.Total = 530

	updated, err := repo.Update(ctx, inv)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != domain.StatusPaid {
		t.Fatalf("status = %v", updated.Status)
	}
	if len(updated.Lines) != 1 || updated.Lines[0].Description != "Retainer" {
		t.Fatalf("lines not replaced: %+v", updated.Lines)
	}

	var lineCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM line_items WHERE invoice_id = $1`, created.ID).Scan(&lineCount); err != nil {
		t.Fatalf("count lines: %v", err)
	}
	if lineCount != 1 {
		t.Fatalf("expected 1 stored line, got %d", lineCount)
	}
}

func TestPostgres_UpdateMissingInvoice(t *testing.T) {
	ctx := context.Background()
	pool, userID, customerID := setup(ctx, t)
	defer pool.Close()

	repo := NewPostgres(pool, nil)
	inv := sampleInvoice(userID, customerID)
	inv.ID = "00000000-0000-0000-0000-000000000000"
	if _, err := repo.Update(ctx, inv); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPostgres_DeleteCascadesLines(t *testing.T) {
	ctx := context.Background()
	pool, userID, customerID := setup(ctx, t)
	defer pool.Close()

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, sampleInvoice(userID, customerID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, userID, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var lineCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM line_items WHERE invoice_id = $1`, created.ID).Scan(&lineCount); err != nil {
		t.Fatalf("count lines: %v", err)
	}
	if lineCount != 0 {
		t.Fatalf("expected cascaded line delete, %d rows left", lineCount)
	}
	if err := repo.Delete(ctx, userID, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: expected not found, got %v", err)
	}
}

func TestPostgres_DeletedCustomerLeavesInvoice(t *testing.T) {
	ctx := context.Background()
	pool, userID, customerID := setup(ctx, t)
	defer pool.Close()

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, sampleInvoice(userID, customerID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, customerID); err != nil {
		t.Fatalf("delete customer: %v", err)
	}

	fetched, err := repo.GetByID(ctx, userID, created.ID)
	if err != nil {
		t.Fatalf("GetByID after customer delete: %v", err)
	}
	if fetched.CustomerName != "" {
		t.Fatalf("expected empty customer name, got %q", fetched.CustomerName)
	}
}

func TestPostgres_StatsCountPaidRevenueOnly(t *testing.T) {
	ctx := context.Background()
	pool, userID, customerID := setup(ctx, t)
	defer pool.Close()

	repo := NewPostgres(pool, nil)
	statuses := []struct {
		status domain.InvoiceStatus
		total  float64
	}{
		{domain.StatusPaid, 100},
		{domain.StatusPaid, 250},
		{domain.StatusSent, 999},
		{domain.StatusDraft, 10},
	}
	for i, s := range statuses {
		inv := sampleInvoice(userID, customerID)
		inv.InvoiceNumber = inv.InvoiceNumber + string(rune('a'+i))
		inv.Status = s.status
		inv.Total = s.total
		if _, err := repo.Create(ctx, inv); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	stats, err := repo.StatsByUser(ctx, userID)
	if err != nil {
		t.Fatalf("StatsByUser: %v", err)
	}
	if stats.InvoiceCount != 4 {
		t.Fatalf("invoice count = %d, want 4", stats.InvoiceCount)
	}
	if math.Abs(stats.Revenue-350) > 1e-9 {
		t.Fatalf("revenue = %v, want 350 (paid only)", stats.Revenue)
	}
}
