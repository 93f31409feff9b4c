package adaptor

import (
	"encoding/json"
	"net/http"

	"salon-booking/internal/dto/request"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListServices handles GET /api/admin/services (admin only)
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.ListServices(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// CreateService handles POST /api/admin/services (admin only)
func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req request.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	service, err := h.service.CreateService(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create service")
		return
	}

	utils.ResponseCreated(w, "success", service)
}

// UpdateService handles PUT /api/admin/services/{id} (admin only)
func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "id")
	if serviceID == "" {
		utils.ResponseBadRequest(w, "Service ID is required", nil)
		return
	}

	var req request.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	service, err := h.service.UpdateService(r.Context(), serviceID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// ListCalendars handles GET /api/admin/calendars (admin only)
func (h *CatalogHandler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	calendars, err := h.service.ListCalendars(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list calendars")
		return
	}

	utils.ResponseSuccess(w, "success", calendars)
}

// CreateCalendar handles POST /api/admin/calendars (admin only)
func (h *CatalogHandler) CreateCalendar(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCalendarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	calendar, err := h.service.CreateCalendar(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create calendar")
		return
	}

	utils.ResponseCreated(w, "success", calendar)
}

// SetCalendarServices handles PUT /api/admin/calendars/{id}/services (admin only)
func (h *CatalogHandler) SetCalendarServices(w http.ResponseWriter, r *http.Request) {
	calendarID := chi.URLParam(r, "id")
	if calendarID == "" {
		utils.ResponseBadRequest(w, "Calendar ID is required", nil)
		return
	}

	var req request.SetCalendarServicesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.SetCalendarServices(r.Context(), calendarID, &req); err != nil {
		handleServiceError(w, h.log, err, "set calendar services")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
