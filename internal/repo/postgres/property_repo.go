package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rivieracrest/villa-bookings/internal/domain"
)

type PropertyRepo interface {
	List(ctx context.Context, kind *domain.PropertyKind, listedOnly bool) ([]domain.Property, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Property, error)
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	Create(ctx context.Context, in *domain.PropertyUpsert) (*domain.Property, error)
	Update(ctx context.Context, id int64, in *domain.PropertyUpsert) (*domain.Property, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type PropertyRepoImpl struct{ pool *pgxpool.Pool }

func NewPropertyRepo(pool *pgxpool.Pool) *PropertyRepoImpl { return &PropertyRepoImpl{pool: pool} }

const propertyCols = `id, slug, kind,
name_en, name_de, summary_en, summary_de, description_en, description_de,
destination_slug, guests, bedrooms, bathrooms, cabins, length_m,
hero_image, listed, created_at, updated_at`

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	err := row.Scan(
		&p.ID, &p.Slug, &p.Kind,
		&p.NameEN, &p.NameDE, &p.SummaryEN, &p.SummaryDE, &p.DescriptionEN, &p.DescriptionDE,
		&p.DestinationSlug, &p.Guests, &p.Bedrooms, &p.Bathrooms, &p.Cabins, &p.LengthM,
		&p.HeroImage, &p.Listed, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PropertyRepoImpl) List(ctx context.Context, kind *domain.PropertyKind, listedOnly bool) ([]domain.Property, error) {
	q := `SELECT ` + propertyCols + ` FROM properties WHERE ($1::text IS NULL OR kind = $1)`
	if listedOnly {
		q += ` AND listed`
	}
	q += ` ORDER BY kind, name_en`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var kindArg *string
	if kind != nil {
		s := string(*kind)
		kindArg = &s
	}
	rows, err := r.pool.Query(ctx, q, kindArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ps := make([]domain.Property, 0, 16)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		ps = append(ps, *p)
	}
	return ps, rows.Err()
}

func (r *PropertyRepoImpl) GetBySlug(ctx context.Context, slug string) (*domain.Property, error) {
	const q = `SELECT ` + propertyCols + ` FROM properties WHERE slug = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	p, err := scanProperty(r.pool.QueryRow(ctx, q, slug))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadImages(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PropertyRepoImpl) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	const q = `SELECT ` + propertyCols + ` FROM properties WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	p, err := scanProperty(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadImages(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PropertyRepoImpl) loadImages(ctx context.Context, p *domain.Property) error {
	const q = `SELECT id, property_id, url, alt_en, alt_de, position
FROM property_images WHERE property_id = $1 ORDER BY position, id`

	rows, err := r.pool.Query(ctx, q, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var img domain.PropertyImage
		if err := rows.Scan(&img.ID, &img.PropertyID, &img.URL, &img.AltEN, &img.AltDE, &img.Position); err != nil {
			return err
		}
		p.Images = append(p.Images, img)
	}
	return rows.Err()
}

func (r *PropertyRepoImpl) Create(ctx context.Context, in *domain.PropertyUpsert) (*domain.Property, error) {
	const q = `INSERT INTO properties (
    slug, kind, name_en, name_de, summary_en, summary_de,
    description_en, description_de, destination_slug,
    guests, bedrooms, bathrooms, cabins, length_m, hero_image, listed
  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
  RETURNING ` + propertyCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanProperty(r.pool.QueryRow(ctx, q,
		in.Slug, in.Kind, in.NameEN, in.NameDE, in.SummaryEN, in.SummaryDE,
		in.DescriptionEN, in.DescriptionDE, in.DestinationSlug,
		in.Guests, in.Bedrooms, in.Bathrooms, in.Cabins, in.LengthM, in.HeroImage, in.Listed,
	))
}

func (r *PropertyRepoImpl) Update(ctx context.Context, id int64, in *domain.PropertyUpsert) (*domain.Property, error) {
	const q = `UPDATE properties SET
    slug=$2, kind=$3, name_en=$4, name_de=$5, summary_en=$6, summary_de=$7,
    description_en=$8, description_de=$9, destination_slug=$10,
    guests=$11, bedrooms=$12, bathrooms=$13, cabins=$14, length_m=$15,
    hero_image=$16, listed=$17, updated_at=now()
  WHERE id=$1
  RETURNING ` + propertyCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	p, err := scanProperty(r.pool.QueryRow(ctx, q, id,
		in.Slug, in.Kind, in.NameEN, in.NameDE, in.SummaryEN, in.SummaryDE,
		in.DescriptionEN, in.DescriptionDE, in.DestinationSlug,
		in.Guests, in.Bedrooms, in.Bathrooms, in.Cabins, in.LengthM, in.HeroImage, in.Listed,
	))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *PropertyRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	ct, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

var _ PropertyRepo = (*PropertyRepoImpl)(nil)
