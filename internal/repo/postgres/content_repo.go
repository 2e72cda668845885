package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rivieracrest/villa-bookings/internal/domain"
)

// ContentRepo serves the marketing page content: destinations and service
// pages. Read-only from this service; the rows are edited elsewhere.
type ContentRepo interface {
	ListDestinations(ctx context.Context) ([]domain.Destination, error)
	GetDestination(ctx context.Context, slug string) (*domain.Destination, error)
	ListServicePages(ctx context.Context) ([]domain.ServicePage, error)
	GetServicePage(ctx context.Context, slug string) (*domain.ServicePage, error)
}

type ContentRepoImpl struct{ pool *pgxpool.Pool }

func NewContentRepo(pool *pgxpool.Pool) *ContentRepoImpl { return &ContentRepoImpl{pool: pool} }

func (r *ContentRepoImpl) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	const q = `SELECT id, slug, name_en, name_de, intro_en, intro_de, hero_image, position
FROM destinations ORDER BY position, id`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ds := make([]domain.Destination, 0, 8)
	for rows.Next() {
		var d domain.Destination
		if err := rows.Scan(&d.ID, &d.Slug, &d.NameEN, &d.NameDE, &d.IntroEN, &d.IntroDE, &d.HeroImage, &d.Position); err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return ds, rows.Err()
}

func (r *ContentRepoImpl) GetDestination(ctx context.Context, slug string) (*domain.Destination, error) {
	const q = `SELECT id, slug, name_en, name_de, intro_en, intro_de, hero_image, position
FROM destinations WHERE slug = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var d domain.Destination
	err := r.pool.QueryRow(ctx, q, slug).Scan(&d.ID, &d.Slug, &d.NameEN, &d.NameDE, &d.IntroEN, &d.IntroDE, &d.HeroImage, &d.Position)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *ContentRepoImpl) ListServicePages(ctx context.Context) ([]domain.ServicePage, error) {
	const q = `SELECT id, slug, title_en, title_de, body_en, body_de, position
FROM service_pages ORDER BY position, id`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ps := make([]domain.ServicePage, 0, 8)
	for rows.Next() {
		var p domain.ServicePage
		if err := rows.Scan(&p.ID, &p.Slug, &p.TitleEN, &p.TitleDE, &p.BodyEN, &p.BodyDE, &p.Position); err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, rows.Err()
}

func (r *ContentRepoImpl) GetServicePage(ctx context.Context, slug string) (*domain.ServicePage, error) {
	const q = `SELECT id, slug, title_en, title_de, body_en, body_de, position
FROM service_pages WHERE slug = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p domain.ServicePage
	err := r.pool.QueryRow(ctx, q, slug).Scan(&p.ID, &p.Slug, &p.TitleEN, &p.TitleDE, &p.BodyEN, &p.BodyDE, &p.Position)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var _ ContentRepo = (*ContentRepoImpl)(nil)
