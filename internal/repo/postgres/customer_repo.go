package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rivieracrest/villa-bookings/internal/domain"
)

type CustomerRepo interface {
	// List returns every customer row; the admin console filters, sorts
	// and paginates in memory over the full set.
	List(ctx context.Context) ([]domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Create(ctx context.Context, in *domain.CustomerUpsert) (*domain.Customer, error)
	Update(ctx context.Context, id int64, in *domain.CustomerUpsert) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type CustomerRepoImpl struct{ pool *pgxpool.Pool }

func NewCustomerRepo(pool *pgxpool.Pool) *CustomerRepoImpl { return &CustomerRepoImpl{pool: pool} }

const customerCols = `id, name, email, phone, notes, source, status, created_at, updated_at`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Notes, &c.Source, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepoImpl) List(ctx context.Context) ([]domain.Customer, error) {
	const q = `SELECT ` + customerCols + ` FROM customers ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cs := make([]domain.Customer, 0, 64)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		cs = append(cs, *c)
	}
	return cs, rows.Err()
}

func (r *CustomerRepoImpl) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	const q = `SELECT ` + customerCols + ` FROM customers WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	c, err := scanCustomer(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *CustomerRepoImpl) Create(ctx context.Context, in *domain.CustomerUpsert) (*domain.Customer, error) {
	const q = `INSERT INTO customers (name, email, phone, notes, source, status)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING ` + customerCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanCustomer(r.pool.QueryRow(ctx, q,
		in.Name, in.Email, in.Phone, in.Notes, in.Source, in.Status,
	))
}

func (r *CustomerRepoImpl) Update(ctx context.Context, id int64, in *domain.CustomerUpsert) (*domain.Customer, error) {
	const q = `UPDATE customers SET
    name=$2, email=$3, phone=$4, notes=$5, source=$6, status=$7, updated_at=now()
  WHERE id=$1
  RETURNING ` + customerCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	c, err := scanCustomer(r.pool.QueryRow(ctx, q, id,
		in.Name, in.Email, in.Phone, in.Notes, in.Source, in.Status,
	))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *CustomerRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

var _ CustomerRepo = (*CustomerRepoImpl)(nil)
