package admin

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rivieracrest/villa-bookings/internal/domain"
	"github.com/rivieracrest/villa-bookings/internal/http/response"
	"github.com/rivieracrest/villa-bookings/internal/listview"
	"github.com/rivieracrest/villa-bookings/internal/repo/postgres"
	"github.com/rivieracrest/villa-bookings/pkg/config"
	"github.com/rivieracrest/villa-bookings/pkg/logger"
)

// PropertyHandler is the back-office CRUD surface for properties and their
// availability periods.
type PropertyHandler struct {
	Properties postgres.PropertyRepo
	Periods    postgres.AvailabilityRepo
	Config     *config.Config
}

func NewPropertyHandler(properties postgres.PropertyRepo, periods postgres.AvailabilityRepo, cfg *config.Config) *PropertyHandler {
	return &PropertyHandler{Properties: properties, Periods: periods, Config: cfg}
}

func (h *PropertyHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.getByID)
		r.Put("/", h.update)
		r.Delete("/", h.delete)
		r.Get("/periods", h.listPeriods)
		r.Post("/periods", h.createPeriod)
	})
	return r
}

// PeriodRoutes address periods directly, for update and delete.
func (h *PropertyHandler) PeriodRoutes() chi.Router {
	r := chi.NewRouter()
	r.Put("/{id}", h.updatePeriod)
	r.Delete("/{id}", h.deletePeriod)
	return r
}

func urlID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func (h *PropertyHandler) list(w http.ResponseWriter, r *http.Request) {
	var kind *domain.PropertyKind
	if raw := r.URL.Query().Get("kind"); raw != "" {
		parsed, ok := domain.ParsePropertyKind(raw)
		if !ok {
			response.BadRequest(w, "kind must be 'villa' or 'yacht'")
			return
		}
		kind = &parsed
	}

	// Admins see unlisted properties too.
	properties, err := h.Properties.List(r.Context(), kind, false)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list properties", "error", err)
		response.InternalError(w, "Failed to load properties")
		return
	}

	// The list is small, so search and sort run in memory, with the same
	// controls the customer list exposes.
	params := listview.Params{
		Query:     r.URL.Query().Get("q"),
		SortField: r.URL.Query().Get("sort"),
		Desc:      r.URL.Query().Get("dir") == "desc",
	}
	properties = listview.Apply(properties, params, listview.PropertyAccessor, h.Config.Site.DefaultLocale)

	response.WriteJSON(w, http.StatusOK, map[string]any{"properties": properties})
}

func (h *PropertyHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		response.BadRequest(w, "invalid id")
		return
	}

	prop, err := h.Properties.GetByID(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to get property", "error", err, "id", id)
		response.InternalError(w, "Failed to load property")
		return
	}
	if prop == nil {
		response.NotFound(w, "Property not found")
		return
	}
	response.WriteJSON(w, http.StatusOK, prop)
}

func (h *PropertyHandler) create(w http.ResponseWriter, r *http.Request) {
	var in domain.PropertyUpsert
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	in.Normalize()
	if errs := in.Validate(); errs != nil {
		response.WriteFieldErrors(w, errs)
		return
	}

	prop, err := h.Properties.Create(r.Context(), &in)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to create property", "error", err, "slug", in.Slug)
		response.InternalError(w, "Failed to create property")
		return
	}
	response.WriteJSON(w, http.StatusCreated, prop)
}

func (h *PropertyHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		response.BadRequest(w, "invalid id")
		return
	}

	var in domain.PropertyUpsert
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	in.Normalize()
	if errs := in.Validate(); errs != nil {
		response.WriteFieldErrors(w, errs)
		return
	}

	prop, err := h.Properties.Update(r.Context(), id, &in)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to update property", "error", err, "id", id)
		response.InternalError(w, "Failed to update property")
		return
	}
	if prop == nil {
		response.NotFound(w, "Property not found")
		return
	}
	response.WriteJSON(w, http.StatusOK, prop)
}

func (h *PropertyHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		response.BadRequest(w, "invalid id")
		return
	}

	deleted, err := h.Properties.Delete(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to delete property", "error", err, "id", id)
		response.InternalError(w, "Failed to delete property")
		return
	}
	if !deleted {
		response.NotFound(w, "Property not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PropertyHandler) listPeriods(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		response.BadRequest(w, "invalid id")
		return
	}

	periods, err := h.Periods.ListByProperty(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list periods", "error", err, "property_id", id)
		response.InternalError(w, "Failed to load periods")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"periods": periods})
}

func (h *PropertyHandler) createPeriod(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		response.BadRequest(w, "invalid id")
		return
	}

	prop, err := h.Properties.GetByID(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to get property", "error", err, "id", id)
		response.InternalError(w, "Failed to load property")
		return
	}
	if prop == nil {
		response.NotFound(w, "Property not found")
		return
	}

	var in domain.AvailabilityPeriod
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	in.PropertyID = id
	if in.MinNights == 0 {
		in.MinNights = 1
	}
	if !in.Valid() {
		response.BadRequest(w, "period needs an ordered date range and a valid status")
		return
	}

	period, err := h.Periods.Create(r.Context(), &in)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to create period", "error", err, "property_id", id)
		response.InternalError(w, "Failed to create period")
		return
	}
	response.WriteJSON(w, http.StatusCreated, period)
}

func (h *PropertyHandler) updatePeriod(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		response.BadRequest(w, "invalid id")
		return
	}

	existing, err := h.Periods.GetByID(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to get period", "error", err, "id", id)
		response.InternalError(w, "Failed to load period")
		return
	}
	if existing == nil {
		response.NotFound(w, "Period not found")
		return
	}

	var in domain.AvailabilityPeriod
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	in.PropertyID = existing.PropertyID
	if in.MinNights == 0 {
		in.MinNights = 1
	}
	if !in.Valid() {
		response.BadRequest(w, "period needs an ordered date range and a valid status")
		return
	}

	period, err := h.Periods.Update(r.Context(), id, &in)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to update period", "error", err, "id", id)
		response.InternalError(w, "Failed to update period")
		return
	}
	response.WriteJSON(w, http.StatusOK, period)
}

func (h *PropertyHandler) deletePeriod(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		response.BadRequest(w, "invalid id")
		return
	}

	deleted, err := h.Periods.Delete(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to delete period", "error", err, "id", id)
		response.InternalError(w, "Failed to delete period")
		return
	}
	if !deleted {
		response.NotFound(w, "Period not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
