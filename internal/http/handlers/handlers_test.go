package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/rivieracrest/villa-bookings/internal/domain"
	"github.com/rivieracrest/villa-bookings/internal/http/handlers"
)

// ---------- Mocks ----------

type mockPropertyRepo struct {
	bySlug map[string]*domain.Property
}

func newMockPropertyRepo(props ...*domain.Property) *mockPropertyRepo {
	m := &mockPropertyRepo{bySlug: make(map[string]*domain.Property)}
	for _, p := range props {
		m.bySlug[p.Slug] = p
	}
	return m
}

func (m *mockPropertyRepo) List(_ context.Context, kind *domain.PropertyKind, listedOnly bool) ([]domain.Property, error) {
	var out []domain.Property
	for _, p := range m.bySlug {
		if kind != nil && p.Kind != *kind {
			continue
		}
		if listedOnly && !p.Listed {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockPropertyRepo) GetBySlug(_ context.Context, slug string) (*domain.Property, error) {
	return m.bySlug[slug], nil
}

func (m *mockPropertyRepo) GetByID(_ context.Context, id int64) (*domain.Property, error) {
	for _, p := range m.bySlug {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockPropertyRepo) Create(_ context.Context, _ *domain.PropertyUpsert) (*domain.Property, error) {
	return nil, nil
}

func (m *mockPropertyRepo) Update(_ context.Context, _ int64, _ *domain.PropertyUpsert) (*domain.Property, error) {
	return nil, nil
}

func (m *mockPropertyRepo) Delete(_ context.Context, _ int64) (bool, error) { return false, nil }

type mockAvailabilityRepo struct {
	byProperty map[int64][]domain.AvailabilityPeriod
}

func (m *mockAvailabilityRepo) ListByProperty(_ context.Context, propertyID int64) ([]domain.AvailabilityPeriod, error) {
	return m.byProperty[propertyID], nil
}

func (m *mockAvailabilityRepo) GetByID(_ context.Context, _ int64) (*domain.AvailabilityPeriod, error) {
	return nil, nil
}

func (m *mockAvailabilityRepo) Create(_ context.Context, _ *domain.AvailabilityPeriod) (*domain.AvailabilityPeriod, error) {
	return nil, nil
}

func (m *mockAvailabilityRepo) Update(_ context.Context, _ int64, _ *domain.AvailabilityPeriod) (*domain.AvailabilityPeriod, error) {
	return nil, nil
}

func (m *mockAvailabilityRepo) Delete(_ context.Context, _ int64) (bool, error) { return false, nil }

// ---------- Fixtures ----------

func listedVilla() *domain.Property {
	return &domain.Property{
		ID: 1, Slug: "villa-azura", Kind: domain.KindVilla,
		NameEN: "Villa Azura", Guests: 10, Listed: true,
	}
}

func futurePeriods() []domain.AvailabilityPeriod {
	nightly := int64(1100)
	start := domain.Today().AddDays(30)
	return []domain.AvailabilityPeriod{
		{
			ID: 1, PropertyID: 1,
			StartDate: start, EndDate: start.AddDays(59),
			PricePerWeek: 7000, PricePerNight: &nightly,
			MinNights: 3, Status: domain.PeriodAvailable,
		},
	}
}

func newRouter() chi.Router {
	props := newMockPropertyRepo(listedVilla())
	periods := &mockAvailabilityRepo{byProperty: map[int64][]domain.AvailabilityPeriod{1: futurePeriods()}}
	catalog := handlers.NewCatalogHandler(props, nil)
	av := handlers.NewAvailabilityHandler(props, periods)

	r := chi.NewRouter()
	r.Mount("/properties", catalog.PropertyRoutes(av))
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
}

// ---------- Tests ----------

func TestGetProperty_UnknownSlug(t *testing.T) {
	rec := doJSON(t, newRouter(), http.MethodGet, "/properties/no-such-villa", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("404 body must be JSON: %v", err)
	}
	if out["code"] != "NOT_FOUND" {
		t.Errorf("code = %v, want NOT_FOUND", out["code"])
	}
}

func TestGetProperty_OK(t *testing.T) {
	rec := doJSON(t, newRouter(), http.MethodGet, "/properties/villa-azura", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var out domain.Property
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.NameEN != "Villa Azura" {
		t.Errorf("name = %q", out.NameEN)
	}
}

func TestListProperties_KindFilter(t *testing.T) {
	rec := doJSON(t, newRouter(), http.MethodGet, "/properties?kind=yacht", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		Properties []domain.Property `json:"properties"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Properties) != 0 {
		t.Errorf("expected no yachts, got %d", len(out.Properties))
	}

	rec = doJSON(t, newRouter(), http.MethodGet, "/properties?kind=castle", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad kind: status = %d, want 400", rec.Code)
	}
}

func TestCalendar(t *testing.T) {
	rec := doJSON(t, newRouter(), http.MethodGet, "/properties/villa-azura/calendar?months=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Days []struct {
			Date   string `json:"date"`
			Status string `json:"status"`
		} `json:"days"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Days) < 28 || len(out.Days) > 31 {
		t.Errorf("one month should yield 28-31 days, got %d", len(out.Days))
	}
	// Days before today resolve as past regardless of periods.
	if today := domain.Today(); today.Day() > 1 {
		if out.Days[0].Status != "past" {
			t.Errorf("first-of-month status = %q, want past", out.Days[0].Status)
		}
	}
}

func TestCalendar_BadParams(t *testing.T) {
	r := newRouter()
	if rec := doJSON(t, r, http.MethodGet, "/properties/villa-azura/calendar?months=0", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("months=0: status = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, r, http.MethodGet, "/properties/villa-azura/calendar?from=July", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("from=July: status = %d, want 400", rec.Code)
	}
}

func TestQuote_WeekAtListPrice(t *testing.T) {
	start := domain.Today().AddDays(30)
	body := map[string]string{
		"check_in":  start.String(),
		"check_out": start.AddDays(7).String(),
	}
	rec := doJSON(t, newRouter(), http.MethodPost, "/properties/villa-azura/quote", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Nights int   `json:"nights"`
		Total  int64 `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Nights != 7 || out.Total != 7000 {
		t.Errorf("nights = %d total = %d, want 7 and 7000", out.Nights, out.Total)
	}
}

func TestQuote_InvalidRange(t *testing.T) {
	start := domain.Today().AddDays(30)
	body := map[string]string{
		"check_in":  start.String(),
		"check_out": start.String(), // zero nights
	}
	rec := doJSON(t, newRouter(), http.MethodPost, "/properties/villa-azura/quote", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestQuote_NoPriceForDates(t *testing.T) {
	// A date far outside every period has no resolvable weekly price.
	start := domain.Today().AddDays(365)
	body := map[string]string{
		"check_in":  start.String(),
		"check_out": start.AddDays(7).String(),
	}
	rec := doJSON(t, newRouter(), http.MethodPost, "/properties/villa-azura/quote", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestAvailabilityList(t *testing.T) {
	rec := doJSON(t, newRouter(), http.MethodGet, "/properties/villa-azura/availability", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		Periods []domain.AvailabilityPeriod `json:"periods"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Periods) != 1 {
		t.Fatalf("expected 1 period, got %d", len(out.Periods))
	}
	if out.Periods[0].PricePerWeek != 7000 {
		t.Errorf("price_per_week = %d", out.Periods[0].PricePerWeek)
	}
}
