package adaptor

import (
	"salon-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Schedule     *ScheduleHandler
	Catalog      *CatalogHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Availability: NewAvailabilityHandler(service.Availability, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Schedule:     NewScheduleHandler(service.Schedule, log),
		Catalog:      NewCatalogHandler(service.Catalog, log),
	}
}
