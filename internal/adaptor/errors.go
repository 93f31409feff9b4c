package adaptor

import (
	"errors"
	"net/http"

	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps usecase errors onto HTTP responses. Shared by all
// handlers so every route rejects the same way.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrSlotConflict):
		// 409 tells the client to re-fetch availability and pick again.
		log.Info(operation+" rejected - slot conflict",
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrOutsideBusinessHours),
		errors.Is(err, usecase.ErrRestPeriodBlocked),
		errors.Is(err, usecase.ErrServiceUnavailable):
		log.Info(operation+" rejected by policy",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnprocessable(w, err.Error())

	default:
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
