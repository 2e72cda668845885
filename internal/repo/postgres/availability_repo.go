package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rivieracrest/villa-bookings/internal/domain"
)

type AvailabilityRepo interface {
	// ListByProperty returns the property's periods ordered by start date;
	// this order is the resolution order for overlapping periods.
	ListByProperty(ctx context.Context, propertyID int64) ([]domain.AvailabilityPeriod, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityPeriod, error)
	Create(ctx context.Context, in *domain.AvailabilityPeriod) (*domain.AvailabilityPeriod, error)
	Update(ctx context.Context, id int64, in *domain.AvailabilityPeriod) (*domain.AvailabilityPeriod, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type AvailabilityRepoImpl struct{ pool *pgxpool.Pool }

func NewAvailabilityRepo(pool *pgxpool.Pool) *AvailabilityRepoImpl {
	return &AvailabilityRepoImpl{pool: pool}
}

const periodCols = `id, property_id, start_date, end_date,
price_per_week, price_per_night, min_nights, status, notes`

func scanPeriod(row pgx.Row) (*domain.AvailabilityPeriod, error) {
	var p domain.AvailabilityPeriod
	err := row.Scan(
		&p.ID, &p.PropertyID, &p.StartDate, &p.EndDate,
		&p.PricePerWeek, &p.PricePerNight, &p.MinNights, &p.Status, &p.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *AvailabilityRepoImpl) ListByProperty(ctx context.Context, propertyID int64) ([]domain.AvailabilityPeriod, error) {
	const q = `SELECT ` + periodCols + ` FROM availability_periods
WHERE property_id = $1 ORDER BY start_date, id`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ps := make([]domain.AvailabilityPeriod, 0, 16)
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		ps = append(ps, *p)
	}
	return ps, rows.Err()
}

func (r *AvailabilityRepoImpl) GetByID(ctx context.Context, id int64) (*domain.AvailabilityPeriod, error) {
	const q = `SELECT ` + periodCols + ` FROM availability_periods WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	p, err := scanPeriod(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *AvailabilityRepoImpl) Create(ctx context.Context, in *domain.AvailabilityPeriod) (*domain.AvailabilityPeriod, error) {
	const q = `INSERT INTO availability_periods (
    property_id, start_date, end_date, price_per_week, price_per_night,
    min_nights, status, notes
  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
  RETURNING ` + periodCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanPeriod(r.pool.QueryRow(ctx, q,
		in.PropertyID, in.StartDate, in.EndDate, in.PricePerWeek, in.PricePerNight,
		in.MinNights, in.Status, in.Notes,
	))
}

func (r *AvailabilityRepoImpl) Update(ctx context.Context, id int64, in *domain.AvailabilityPeriod) (*domain.AvailabilityPeriod, error) {
	const q = `UPDATE availability_periods SET
    start_date=$2, end_date=$3, price_per_week=$4, price_per_night=$5,
    min_nights=$6, status=$7, notes=$8
  WHERE id=$1
  RETURNING ` + periodCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	p, err := scanPeriod(r.pool.QueryRow(ctx, q, id,
		in.StartDate, in.EndDate, in.PricePerWeek, in.PricePerNight,
		in.MinNights, in.Status, in.Notes,
	))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *AvailabilityRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, `DELETE FROM availability_periods WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

var _ AvailabilityRepo = (*AvailabilityRepoImpl)(nil)
