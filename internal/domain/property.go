package domain

import (
	"strings"
	"time"
)

type PropertyKind string

const (
	KindVilla PropertyKind = "villa"
	KindYacht PropertyKind = "yacht"
)

func ParsePropertyKind(s string) (PropertyKind, bool) {
	switch PropertyKind(s) {
	case KindVilla, KindYacht:
		return PropertyKind(s), true
	default:
		return "", false
	}
}

type Property struct {
	ID              int64           `json:"id"`
	Slug            string          `json:"slug"`
	Kind            PropertyKind    `json:"kind"`
	NameEN          string          `json:"name_en"`
	NameDE          string          `json:"name_de"`
	SummaryEN       string          `json:"summary_en"`
	SummaryDE       string          `json:"summary_de"`
	DescriptionEN   string          `json:"description_en"`
	DescriptionDE   string          `json:"description_de"`
	DestinationSlug string          `json:"destination_slug"`
	Guests          int             `json:"guests"`
	Bedrooms        int             `json:"bedrooms"`
	Bathrooms       int             `json:"bathrooms"`
	Cabins          int             `json:"cabins"`
	LengthM         *float64        `json:"length_m,omitempty"`
	HeroImage       string          `json:"hero_image"`
	Listed          bool            `json:"listed"`
	Images          []PropertyImage `json:"images,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type PropertyImage struct {
	ID         int64  `json:"id"`
	PropertyID int64  `json:"property_id"`
	URL        string `json:"url"`
	AltEN      string `json:"alt_en"`
	AltDE      string `json:"alt_de"`
	Position   int    `json:"position"`
}

func (p *Property) Name(loc Locale) string    { return loc.Pick(p.NameEN, p.NameDE) }
func (p *Property) Summary(loc Locale) string { return loc.Pick(p.SummaryEN, p.SummaryDE) }

// PropertyUpsert carries the admin-editable fields for create and update.
type PropertyUpsert struct {
	Slug            string       `json:"slug"`
	Kind            PropertyKind `json:"kind"`
	NameEN          string       `json:"name_en"`
	NameDE          string       `json:"name_de"`
	SummaryEN       string       `json:"summary_en"`
	SummaryDE       string       `json:"summary_de"`
	DescriptionEN   string       `json:"description_en"`
	DescriptionDE   string       `json:"description_de"`
	DestinationSlug string       `json:"destination_slug"`
	Guests          int          `json:"guests"`
	Bedrooms        int          `json:"bedrooms"`
	Bathrooms       int          `json:"bathrooms"`
	Cabins          int          `json:"cabins"`
	LengthM         *float64     `json:"length_m,omitempty"`
	HeroImage       string       `json:"hero_image"`
	Listed          bool         `json:"listed"`
}

func (r *PropertyUpsert) Normalize() {
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	r.NameEN = strings.TrimSpace(r.NameEN)
	r.NameDE = strings.TrimSpace(r.NameDE)
	r.DestinationSlug = strings.TrimSpace(r.DestinationSlug)
}

func (r *PropertyUpsert) Validate() FieldErrors {
	errs := FieldErrors{}
	if r.Slug == "" {
		errs["slug"] = "slug is required"
	}
	if _, ok := ParsePropertyKind(string(r.Kind)); !ok {
		errs["kind"] = "kind must be villa or yacht"
	}
	if r.NameEN == "" {
		errs["name_en"] = "English name is required"
	}
	if r.Guests < 1 {
		errs["guests"] = "guest capacity must be at least 1"
	}
	if r.Kind == KindYacht && r.Cabins < 1 {
		errs["cabins"] = "a yacht needs at least one cabin"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
