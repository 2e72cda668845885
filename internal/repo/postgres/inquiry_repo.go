package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rivieracrest/villa-bookings/internal/domain"
)

type InquiryRepo interface {
	Create(ctx context.Context, in *domain.Inquiry) (*domain.Inquiry, error)
	GetByID(ctx context.Context, id int64) (*domain.Inquiry, error)
	List(ctx context.Context, status *domain.InquiryStatus, limit, offset int) ([]domain.Inquiry, error)
	UpdateStatus(ctx context.Context, id int64, status domain.InquiryStatus) (*domain.Inquiry, error)
}

type InquiryRepoImpl struct{ pool *pgxpool.Pool }

func NewInquiryRepo(pool *pgxpool.Pool) *InquiryRepoImpl { return &InquiryRepoImpl{pool: pool} }

const inquiryCols = `id, property_id, check_in, check_out, guests,
full_name, email, phone, message, source_url, locale, status, created_at`

func scanInquiry(row pgx.Row) (*domain.Inquiry, error) {
	var i domain.Inquiry
	err := row.Scan(
		&i.ID, &i.PropertyID, &i.CheckIn, &i.CheckOut, &i.Guests,
		&i.FullName, &i.Email, &i.Phone, &i.Message, &i.SourceURL, &i.Locale, &i.Status, &i.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InquiryRepoImpl) Create(ctx context.Context, in *domain.Inquiry) (*domain.Inquiry, error) {
	const q = `INSERT INTO inquiries (
    property_id, check_in, check_out, guests,
    full_name, email, phone, message, source_url, locale, status
  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,'new')
  RETURNING ` + inquiryCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanInquiry(r.pool.QueryRow(ctx, q,
		in.PropertyID, in.CheckIn, in.CheckOut, in.Guests,
		in.FullName, in.Email, in.Phone, in.Message, in.SourceURL, in.Locale,
	))
}

func (r *InquiryRepoImpl) GetByID(ctx context.Context, id int64) (*domain.Inquiry, error) {
	const q = `SELECT ` + inquiryCols + ` FROM inquiries WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	i, err := scanInquiry(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return i, err
}

func (r *InquiryRepoImpl) List(ctx context.Context, status *domain.InquiryStatus, limit, offset int) ([]domain.Inquiry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const q = `SELECT ` + inquiryCols + ` FROM inquiries
WHERE ($1::text IS NULL OR status = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}
	rows, err := r.pool.Query(ctx, q, statusArg, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	is := make([]domain.Inquiry, 0, limit)
	for rows.Next() {
		i, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		is = append(is, *i)
	}
	return is, rows.Err()
}

func (r *InquiryRepoImpl) UpdateStatus(ctx context.Context, id int64, status domain.InquiryStatus) (*domain.Inquiry, error) {
	const q = `UPDATE inquiries SET status=$2 WHERE id=$1 RETURNING ` + inquiryCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	i, err := scanInquiry(r.pool.QueryRow(ctx, q, id, status))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return i, err
}

var _ InquiryRepo = (*InquiryRepoImpl)(nil)
