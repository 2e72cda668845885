package listview

import (
	"strings"
	"testing"
	"time"

	"github.com/rivieracrest/villa-bookings/internal/domain"
)

func customers() []domain.Customer {
	return []domain.Customer{
		{Name: "Bob", Email: "bob@example.com", Status: domain.CustomerActive,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "Ann", Email: "ann@example.com", Status: domain.CustomerInactive,
			CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func names(cs []domain.Customer) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func TestApply_SortByNameAndToggle(t *testing.T) {
	asc := Apply(customers(), Params{SortField: "name"}, CustomerAccessor, domain.LocaleEN)
	if got := names(asc); got[0] != "Ann" || got[1] != "Bob" {
		t.Fatalf("ascending sort = %v, want [Ann Bob]", got)
	}

	desc := Apply(customers(), Params{SortField: "name", Desc: true}, CustomerAccessor, domain.LocaleEN)
	if got := names(desc); got[0] != "Bob" || got[1] != "Ann" {
		t.Fatalf("toggled sort = %v, want [Bob Ann]", got)
	}
}

func TestApply_SortByCreatedAt(t *testing.T) {
	sorted := Apply(customers(), Params{SortField: "created_at"}, CustomerAccessor, domain.LocaleEN)
	if got := names(sorted); got[0] != "Bob" || got[1] != "Ann" {
		t.Fatalf("created_at sort = %v, want [Bob Ann]", got)
	}
}

func TestApply_FilterIsCaseInsensitiveSubstring(t *testing.T) {
	got := Apply(customers(), Params{Query: "ANN@"}, CustomerAccessor, domain.LocaleEN)
	if len(got) != 1 || got[0].Name != "Ann" {
		t.Fatalf("filter = %v", names(got))
	}

	if got := Apply(customers(), Params{Query: "nobody"}, CustomerAccessor, domain.LocaleEN); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", names(got))
	}
}

func TestApply_StatusFilter(t *testing.T) {
	got := Apply(customers(), Params{Status: "inactive"}, CustomerAccessor, domain.LocaleEN)
	if len(got) != 1 || got[0].Name != "Ann" {
		t.Fatalf("status filter = %v", names(got))
	}
}

func TestApply_UmlautSortsWithGermanCollation(t *testing.T) {
	items := []domain.Customer{
		{Name: "Zimmermann"},
		{Name: "Österreicher"},
	}
	sorted := Apply(items, Params{SortField: "name"}, CustomerAccessor, domain.LocaleDE)
	if sorted[0].Name != "Österreicher" {
		t.Fatalf("German collation should sort Ö before Z, got %v", names(sorted))
	}
}

func TestPage(t *testing.T) {
	items := make([]int, 60)
	for i := range items {
		items[i] = i
	}

	first := Page(items, 1, CustomerPageSize)
	if len(first) != 25 || first[0] != 0 || first[24] != 24 {
		t.Fatalf("page 1 = len %d first %d last %d", len(first), first[0], first[len(first)-1])
	}
	third := Page(items, 3, CustomerPageSize)
	if len(third) != 10 || third[0] != 50 {
		t.Fatalf("page 3 = len %d first %d", len(third), third[0])
	}
	if got := Page(items, 4, CustomerPageSize); len(got) != 0 {
		t.Fatalf("out-of-range page should be empty, got %d items", len(got))
	}
}

func TestCustomersCSV_EveryFieldQuoted(t *testing.T) {
	created := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	out := CustomersCSV([]domain.Customer{{
		Name: "O'Brien", Email: "x@y.com", Status: domain.CustomerActive, CreatedAt: created,
	}})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0] != `"name","email","phone","notes","source","status","created_at"` {
		t.Fatalf("header = %s", lines[0])
	}
	if lines[1] != `"O'Brien","x@y.com","","","","active","2024-03-15"` {
		t.Fatalf("row = %s", lines[1])
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, 7, 10, 9, 30, 0, 0, time.UTC)
	if got := ExportFilename("customers", now); got != "customers-2025-07-10.csv" {
		t.Fatalf("filename = %s", got)
	}
}
