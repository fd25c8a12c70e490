package customer

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

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (user_id, name, email, phone, address)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, user_id::text, name, email, phone, address, created_at, updated_at
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, c.UserID, c.Name, c.Email, c.Phone, c.Address))
}

func (r *postgresRepo) GetByID(ctx context.Context, userID, id string) (*domain.Customer, error) {
	const q = `
SELECT id::text, user_id::text, name, email, phone, address, created_at, updated_at
FROM customers
WHERE user_id = $1 AND id = $2
LIMIT 1
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, userID, id))
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Customer, error) {
	const q = `
SELECT id::text, user_id::text, name, email, phone, address, created_at, updated_at
FROM customers
WHERE user_id = $1
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Name,
			&c.Email,
			&c.Phone,
			&c.Address,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
UPDATE customers
SET name = $1, email = $2, phone = $3, address = $4, updated_at = now()
WHERE user_id = $5 AND id = $6
RETURNING id::text, user_id::text, name, email, phone, address, created_at, updated_at
`
	return r.scanCustomer(r.pool.QueryRow(ctx, q, c.Name, c.Email, c.Phone, c.Address, c.UserID, c.ID))
}

func (r *postgresRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: scan error=%v", err)
		return nil, err
	}
	return &c, nil
}
