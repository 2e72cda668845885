// Package listview implements the admin console's in-memory list pipeline:
// substring filter, status filter, locale-aware sort and fixed-size paging.
// It runs over full row sets fetched once per page load, which is fine for
// the hundreds of rows this business has.
package listview

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rivieracrest/villa-bookings/internal/domain"
)

// CustomerPageSize is the fixed page size of the customer list. The
// property list is small enough that it is not paginated.
const CustomerPageSize = 25

// Params are the user-controlled list controls. Direction toggling on
// repeated header clicks is UI state; the pipeline only sees the resolved
// Desc flag.
type Params struct {
	Query     string
	Status    string
	SortField string
	Desc      bool
}

// Accessor adapts a record type to the pipeline.
type Accessor[T any] struct {
	// SearchText returns the text fields the substring filter matches.
	SearchText func(T) []string
	// Status returns the record's status value, "" to exempt it from
	// status filtering.
	Status func(T) string
	// SortKey returns the comparable string for a sort field, "" for an
	// unknown field (which leaves the order untouched).
	SortKey func(T, string) string
}

func collatorFor(loc domain.Locale) *collate.Collator {
	tag := language.English
	if loc == domain.LocaleDE {
		tag = language.German
	}
	return collate.New(tag, collate.IgnoreCase)
}

// Apply runs filter then status match then sort, in that order, and
// returns a new slice.
func Apply[T any](items []T, p Params, acc Accessor[T], loc domain.Locale) []T {
	out := make([]T, 0, len(items))
	query := strings.ToLower(strings.TrimSpace(p.Query))

	for _, item := range items {
		if query != "" && !matches(acc.SearchText(item), query) {
			continue
		}
		if p.Status != "" && acc.Status != nil && acc.Status(item) != p.Status {
			continue
		}
		out = append(out, item)
	}

	if p.SortField != "" && acc.SortKey != nil {
		c := collatorFor(loc)
		sort.SliceStable(out, func(i, j int) bool {
			cmp := c.CompareString(acc.SortKey(out[i], p.SortField), acc.SortKey(out[j], p.SortField))
			if p.Desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	return out
}

func matches(fields []string, query string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// Page slices one fixed-size page out of items. Pages are 1-based; an
// out-of-range page yields an empty slice.
func Page[T any](items []T, page, size int) []T {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// CustomerAccessor is the canonical adapter for CRM rows: the filter
// matches name, email and phone; sortable fields are name, email, status
// and created_at.
var CustomerAccessor = Accessor[domain.Customer]{
	SearchText: func(c domain.Customer) []string {
		return []string{c.Name, c.Email, c.Phone}
	},
	Status: func(c domain.Customer) string { return string(c.Status) },
	SortKey: func(c domain.Customer, field string) string {
		switch field {
		case "name":
			return c.Name
		case "email":
			return c.Email
		case "status":
			return string(c.Status)
		case "created_at":
			return c.CreatedAt.Format("2006-01-02T15:04:05")
		default:
			return ""
		}
	},
}

// PropertyAccessor filters over the admin-facing property columns.
var PropertyAccessor = Accessor[domain.Property]{
	SearchText: func(p domain.Property) []string {
		return []string{p.NameEN, p.NameDE, p.Slug, p.DestinationSlug}
	},
	Status: func(p domain.Property) string { return string(p.Kind) },
	SortKey: func(p domain.Property, field string) string {
		switch field {
		case "name":
			return p.NameEN
		case "slug":
			return p.Slug
		case "destination":
			return p.DestinationSlug
		default:
			return ""
		}
	},
}
