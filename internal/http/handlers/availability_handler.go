package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rivieracrest/villa-bookings/internal/availability"
	"github.com/rivieracrest/villa-bookings/internal/domain"
	"github.com/rivieracrest/villa-bookings/internal/http/response"
	"github.com/rivieracrest/villa-bookings/internal/repo/postgres"
	"github.com/rivieracrest/villa-bookings/pkg/logger"
)

const (
	defaultCalendarMonths = 2
	maxCalendarMonths     = 12
)

// AvailabilityHandler serves the calendar widget's data: the raw period
// list, resolved per-day calendars, and price quotes for a date range.
type AvailabilityHandler struct {
	Properties postgres.PropertyRepo
	Periods    postgres.AvailabilityRepo
}

func NewAvailabilityHandler(properties postgres.PropertyRepo, periods postgres.AvailabilityRepo) *AvailabilityHandler {
	return &AvailabilityHandler{Properties: properties, Periods: periods}
}

// loadPeriods resolves the slug and fetches its periods in resolution order.
func (h *AvailabilityHandler) loadPeriods(w http.ResponseWriter, r *http.Request) ([]domain.AvailabilityPeriod, bool) {
	slug := chi.URLParam(r, "slug")

	prop, err := h.Properties.GetBySlug(r.Context(), slug)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to get property", "error", err, "slug", slug)
		response.InternalError(w, "Failed to load property")
		return nil, false
	}
	if prop == nil || !prop.Listed {
		response.NotFound(w, "Property not found")
		return nil, false
	}

	periods, err := h.Periods.ListByProperty(r.Context(), prop.ID)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list availability periods", "error", err, "slug", slug)
		response.InternalError(w, "Failed to load availability")
		return nil, false
	}
	return periods, true
}

func (h *AvailabilityHandler) listPeriods(w http.ResponseWriter, r *http.Request) {
	periods, ok := h.loadPeriods(w, r)
	if !ok {
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"periods": periods})
}

func (h *AvailabilityHandler) calendar(w http.ResponseWriter, r *http.Request) {
	periods, ok := h.loadPeriods(w, r)
	if !ok {
		return
	}

	today := domain.Today()

	months := defaultCalendarMonths
	if raw := r.URL.Query().Get("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxCalendarMonths {
			response.BadRequest(w, "months must be between 1 and 12")
			return
		}
		months = n
	}

	// The view starts on the first of the requested month, defaulting to
	// the current one.
	first := domain.NewDate(today.Year(), today.Month(), 1)
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse("2006-01", raw)
		if err != nil {
			response.BadRequest(w, "from must look like 2025-07")
			return
		}
		first = domain.NewDate(t.Year(), t.Month(), 1)
	}

	end := domain.NewDate(first.Year(), first.Month()+time.Month(months), 1)
	days := availability.Calendar(first, first.DaysUntil(end), periods, today)

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"from": first,
		"days": days,
	})
}

type quoteIn struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

func (h *AvailabilityHandler) quote(w http.ResponseWriter, r *http.Request) {
	periods, ok := h.loadPeriods(w, r)
	if !ok {
		return
	}

	var in quoteIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	checkIn, err := domain.ParseDate(in.CheckIn)
	if err != nil {
		response.BadRequest(w, "check_in must be a YYYY-MM-DD date")
		return
	}
	checkOut, err := domain.ParseDate(in.CheckOut)
	if err != nil {
		response.BadRequest(w, "check_out must be a YYYY-MM-DD date")
		return
	}

	quote, err := availability.QuoteRange(checkIn, checkOut, periods)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRange):
			response.WriteError(w, http.StatusUnprocessableEntity, err.Error(), response.CodeValidation)
		case errors.Is(err, availability.ErrNoPrice):
			response.WriteError(w, http.StatusUnprocessableEntity, err.Error(), response.CodeValidation)
		default:
			logger.ErrorContext(r.Context(), "Failed to compute quote", "error", err)
			response.InternalError(w, "Failed to compute quote")
		}
		return
	}

	response.WriteJSON(w, http.StatusOK, quote)
}
