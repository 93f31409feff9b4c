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

type ScheduleHandler struct {
	service usecase.ScheduleService
	log     *zap.Logger
}

func NewScheduleHandler(service usecase.ScheduleService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log.With(zap.String("handler", "schedule")),
	}
}

// GetSchedule handles GET /api/admin/schedule (admin only)
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.service.GetSchedule(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get schedule")
		return
	}

	utils.ResponseSuccess(w, "success", schedule)
}

// UpdateSchedule handles PUT /api/admin/schedule (admin only)
func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	schedule, err := h.service.UpdateSchedule(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update schedule")
		return
	}

	utils.ResponseSuccess(w, "success", schedule)
}

// CreateRestPeriod handles POST /api/admin/rest-periods (admin only)
func (h *ScheduleHandler) CreateRestPeriod(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRestPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	rest, err := h.service.AddRestPeriod(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create rest period")
		return
	}

	utils.ResponseCreated(w, "success", rest)
}

// DeleteRestPeriod handles DELETE /api/admin/rest-periods/{id} (admin only)
func (h *ScheduleHandler) DeleteRestPeriod(w http.ResponseWriter, r *http.Request) {
	restPeriodID := chi.URLParam(r, "id")
	if restPeriodID == "" {
		utils.ResponseBadRequest(w, "Rest period ID is required", nil)
		return
	}

	if err := h.service.RemoveRestPeriod(r.Context(), restPeriodID); err != nil {
		handleServiceError(w, h.log, err, "delete rest period")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
