package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rivieracrest/villa-bookings/internal/domain"
	"github.com/rivieracrest/villa-bookings/internal/http/response"
	"github.com/rivieracrest/villa-bookings/internal/listview"
	"github.com/rivieracrest/villa-bookings/internal/repo/postgres"
	"github.com/rivieracrest/villa-bookings/pkg/config"
	"github.com/rivieracrest/villa-bookings/pkg/logger"
)

// CustomerHandler is the CRM surface: CRUD plus a CSV export of the
// filtered list. The list endpoint returns every row; the admin UI
// filters, sorts, and paginates client-side with the same semantics the
// export applies server-side.
type CustomerHandler struct {
	Customers postgres.CustomerRepo
	Config    *config.Config
}

func NewCustomerHandler(customers postgres.CustomerRepo, cfg *config.Config) *CustomerHandler {
	return &CustomerHandler{Customers: customers, Config: cfg}
}

func (h *CustomerHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/export", h.export)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.getByID)
		r.Put("/", h.update)
		r.Delete("/", h.delete)
	})
	return r
}

func (h *CustomerHandler) list(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Customers.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list customers", "error", err)
		response.InternalError(w, "Failed to load customers")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"customers": customers})
}

func (h *CustomerHandler) export(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Customers.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list customers for export", "error", err)
		response.InternalError(w, "Failed to export customers")
		return
	}

	params, ok := exportParams(w, r)
	if !ok {
		return
	}

	filtered := listview.Apply(customers, params, listview.CustomerAccessor, h.Config.Site.DefaultLocale)
	csv := listview.CustomersCSV(filtered)
	filename := listview.ExportFilename("customers", time.Now())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}

func exportParams(w http.ResponseWriter, r *http.Request) (listview.Params, bool) {
	q := r.URL.Query()
	params := listview.Params{
		Query:     q.Get("q"),
		SortField: q.Get("sort"),
		Desc:      q.Get("dir") == "desc",
	}
	if raw := q.Get("status"); raw != "" {
		if _, ok := domain.ParseCustomerStatus(raw); !ok {
			response.BadRequest(w, "status must be active or inactive")
			return listview.Params{}, false
		}
		params.Status = raw
	}
	return params, true
}

func (h *CustomerHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		response.BadRequest(w, "invalid id")
		return
	}

	customer, err := h.Customers.GetByID(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to get customer", "error", err, "id", id)
		response.InternalError(w, "Failed to load customer")
		return
	}
	if customer == nil {
		response.NotFound(w, "Customer not found")
		return
	}
	response.WriteJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) create(w http.ResponseWriter, r *http.Request) {
	var in domain.CustomerUpsert
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	in.Normalize()
	if errs := in.Validate(); errs != nil {
		response.WriteFieldErrors(w, errs)
		return
	}

	customer, err := h.Customers.Create(r.Context(), &in)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to create customer", "error", err)
		response.InternalError(w, "Failed to create customer")
		return
	}
	response.WriteJSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		response.BadRequest(w, "invalid id")
		return
	}

	var in domain.CustomerUpsert
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	in.Normalize()
	if errs := in.Validate(); errs != nil {
		response.WriteFieldErrors(w, errs)
		return
	}

	customer, err := h.Customers.Update(r.Context(), id, &in)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to update customer", "error", err, "id", id)
		response.InternalError(w, "Failed to update customer")
		return
	}
	if customer == nil {
		response.NotFound(w, "Customer not found")
		return
	}
	response.WriteJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		response.BadRequest(w, "invalid id")
		return
	}

	deleted, err := h.Customers.Delete(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to delete customer", "error", err, "id", id)
		response.InternalError(w, "Failed to delete customer")
		return
	}
	if !deleted {
		response.NotFound(w, "Customer not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
