package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rivieracrest/villa-bookings/internal/domain"
	"github.com/rivieracrest/villa-bookings/internal/http/response"
	"github.com/rivieracrest/villa-bookings/internal/service"
	"github.com/rivieracrest/villa-bookings/pkg/logger"
)

// InquiryHandler accepts public booking inquiries. The submit endpoint is
// the only write the public site has, so it sits behind the rate limiter.
type InquiryHandler struct {
	Service service.InquiryService
}

func NewInquiryHandler(svc service.InquiryService) *InquiryHandler {
	return &InquiryHandler{Service: svc}
}

func (h *InquiryHandler) Routes(rateLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.With(rateLimit).Post("/", h.submit)
	return r
}

type submitOut struct {
	Success bool              `json:"success"`
	ID      int64             `json:"id,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (h *InquiryHandler) submit(w http.ResponseWriter, r *http.Request) {
	var in domain.InquiryCreateReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.WriteJSON(w, http.StatusBadRequest, submitOut{Success: false, Error: "Invalid JSON format"})
		return
	}

	created, err := h.Service.Create(r.Context(), &in)
	if err != nil {
		var fieldErrs domain.FieldErrors
		if errors.As(err, &fieldErrs) {
			response.WriteJSON(w, http.StatusBadRequest, submitOut{
				Success: false,
				Error:   "Please correct the highlighted fields.",
				Fields:  fieldErrs,
			})
			return
		}
		logger.ErrorContext(r.Context(), "Failed to create inquiry", "error", err)
		response.WriteJSON(w, http.StatusInternalServerError, submitOut{
			Success: false,
			Error:   "Something went wrong. Please try again.",
		})
		return
	}

	response.WriteJSON(w, http.StatusCreated, submitOut{Success: true, ID: created.ID})
}
