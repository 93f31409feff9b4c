package adaptor

import (
	"net/http"

	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetServices handles GET /api/booking/{slug}/services (public)
func (h *AvailabilityHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		utils.ResponseBadRequest(w, "Calendar slug is required", nil)
		return
	}

	services, err := h.service.GetServices(r.Context(), slug)
	if err != nil {
		handleServiceError(w, h.log, err, "get services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// GetStaff handles GET /api/staff (public)
func (h *AvailabilityHandler) GetStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.service.GetStaff(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get staff")
		return
	}

	utils.ResponseSuccess(w, "success", staff)
}

// GetAvailability handles GET /api/booking/{slug}/availability (public)
// Requires query params: ?service_id=...&date=2026-09-07&tz_offset=120
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		utils.ResponseBadRequest(w, "Calendar slug is required", nil)
		return
	}

	query := r.URL.Query()
	serviceID := query.Get("service_id")
	date := query.Get("date")
	if serviceID == "" || date == "" {
		utils.ResponseBadRequest(w, "service_id and date are required", nil)
		return
	}
	tzOffset := utils.ParseInt(query.Get("tz_offset"), 0)

	availability, err := h.service.GetDaySlots(r.Context(), slug, serviceID, date, tzOffset)
	if err != nil {
		handleServiceError(w, h.log, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}
