package admin

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rivieracrest/villa-bookings/internal/domain"
	"github.com/rivieracrest/villa-bookings/internal/http/response"
	"github.com/rivieracrest/villa-bookings/internal/repo/postgres"
	"github.com/rivieracrest/villa-bookings/internal/service"
	"github.com/rivieracrest/villa-bookings/pkg/logger"
)

// InquiryHandler lets operators work the lead queue.
type InquiryHandler struct {
	Inquiries postgres.InquiryRepo
	Service   service.InquiryService
}

func NewInquiryHandler(inquiries postgres.InquiryRepo, svc service.InquiryService) *InquiryHandler {
	return &InquiryHandler{Inquiries: inquiries, Service: svc}
}

func (h *InquiryHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.getByID)
		r.Patch("/", h.updateStatus)
		r.Post("/convert", h.convert)
	})
	return r
}

func (h *InquiryHandler) list(w http.ResponseWriter, r *http.Request) {
	var status *domain.InquiryStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, ok := domain.ParseInquiryStatus(raw)
		if !ok {
			response.BadRequest(w, "status must be new, contacted, closed, or booked")
			return
		}
		status = &parsed
	}

	limit, offset := 0, 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, _ = strconv.Atoi(raw)
	}

	inquiries, err := h.Inquiries.List(r.Context(), status, limit, offset)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list inquiries", "error", err)
		response.InternalError(w, "Failed to load inquiries")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"inquiries": inquiries})
}

func (h *InquiryHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		response.BadRequest(w, "invalid id")
		return
	}

	inq, err := h.Inquiries.GetByID(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to get inquiry", "error", err, "id", id)
		response.InternalError(w, "Failed to load inquiry")
		return
	}
	if inq == nil {
		response.NotFound(w, "Inquiry not found")
		return
	}
	response.WriteJSON(w, http.StatusOK, inq)
}

type statusIn struct {
	Status string `json:"status"`
}

func (h *InquiryHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		response.BadRequest(w, "invalid id")
		return
	}

	var in statusIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}
	status, ok := domain.ParseInquiryStatus(in.Status)
	if !ok {
		response.BadRequest(w, "status must be new, contacted, closed, or booked")
		return
	}

	inq, err := h.Inquiries.UpdateStatus(r.Context(), id, status)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to update inquiry status", "error", err, "id", id)
		response.InternalError(w, "Failed to update inquiry")
		return
	}
	if inq == nil {
		response.NotFound(w, "Inquiry not found")
		return
	}
	response.WriteJSON(w, http.StatusOK, inq)
}

func (h *InquiryHandler) convert(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		response.BadRequest(w, "invalid id")
		return
	}

	customer, err := h.Service.ConvertToCustomer(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to convert inquiry", "error", err, "id", id)
		response.InternalError(w, "Failed to convert inquiry")
		return
	}
	if customer == nil {
		response.NotFound(w, "Inquiry not found")
		return
	}
	response.WriteJSON(w, http.StatusCreated, customer)
}
