package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rivieracrest/villa-bookings/internal/domain"
	"github.com/rivieracrest/villa-bookings/internal/http/response"
	"github.com/rivieracrest/villa-bookings/internal/repo/postgres"
	"github.com/rivieracrest/villa-bookings/pkg/logger"
)

// CatalogHandler serves the public property listings and the editorial
// destination/service pages.
type CatalogHandler struct {
	Properties postgres.PropertyRepo
	Content    postgres.ContentRepo
}

func NewCatalogHandler(properties postgres.PropertyRepo, content postgres.ContentRepo) *CatalogHandler {
	return &CatalogHandler{Properties: properties, Content: content}
}

func (h *CatalogHandler) PropertyRoutes(av *AvailabilityHandler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.listProperties) // ?kind=villa|yacht
	r.Route("/{slug}", func(r chi.Router) {
		r.Get("/", h.getProperty)
		r.Get("/availability", av.listPeriods)
		r.Get("/calendar", av.calendar)
		r.Post("/quote", av.quote)
	})
	return r
}

func (h *CatalogHandler) DestinationRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.listDestinations)
	r.Get("/{slug}", h.getDestination)
	return r
}

func (h *CatalogHandler) ServiceRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.listServices)
	r.Get("/{slug}", h.getService)
	return r
}

func (h *CatalogHandler) listProperties(w http.ResponseWriter, r *http.Request) {
	var kind *domain.PropertyKind
	if raw := r.URL.Query().Get("kind"); raw != "" {
		parsed, ok := domain.ParsePropertyKind(raw)
		if !ok {
			response.BadRequest(w, "kind must be 'villa' or 'yacht'")
			return
		}
		kind = &parsed
	}

	// The public catalog only ever shows listed properties.
	properties, err := h.Properties.List(r.Context(), kind, true)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list properties", "error", err)
		response.InternalError(w, "Failed to load properties")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{"properties": properties})
}

func (h *CatalogHandler) getProperty(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	prop, err := h.Properties.GetBySlug(r.Context(), slug)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to get property", "error", err, "slug", slug)
		response.InternalError(w, "Failed to load property")
		return
	}
	if prop == nil || !prop.Listed {
		response.NotFound(w, "Property not found")
		return
	}

	response.WriteJSON(w, http.StatusOK, prop)
}

func (h *CatalogHandler) listDestinations(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.Content.ListDestinations(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list destinations", "error", err)
		response.InternalError(w, "Failed to load destinations")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"destinations": destinations})
}

func (h *CatalogHandler) getDestination(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	dest, err := h.Content.GetDestination(r.Context(), slug)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to get destination", "error", err, "slug", slug)
		response.InternalError(w, "Failed to load destination")
		return
	}
	if dest == nil {
		response.NotFound(w, "Destination not found")
		return
	}
	response.WriteJSON(w, http.StatusOK, dest)
}

func (h *CatalogHandler) listServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.Content.ListServicePages(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list service pages", "error", err)
		response.InternalError(w, "Failed to load services")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"services": services})
}

func (h *CatalogHandler) getService(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	svc, err := h.Content.GetServicePage(r.Context(), slug)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to get service page", "error", err, "slug", slug)
		response.InternalError(w, "Failed to load service")
		return
	}
	if svc == nil {
		response.NotFound(w, "Service not found")
		return
	}
	response.WriteJSON(w, http.StatusOK, svc)
}
