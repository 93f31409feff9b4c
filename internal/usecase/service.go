package usecase

import (
	"salon-booking/internal/data/repository"
	"salon-booking/internal/gcal"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

// Service bundles all usecase services for wiring.
type Service struct {
	Availability AvailabilityService
	Booking      BookingService
	Schedule     ScheduleService
	Catalog      CatalogService
}

func NewService(repo *repository.Repository, config *utils.Config, syncer gcal.Syncer, log *zap.Logger) *Service {
	return &Service{
		Availability: NewAvailabilityService(repo, log),
		Booking:      NewBookingService(repo, syncer, config, log),
		Schedule:     NewScheduleService(repo, log),
		Catalog:      NewCatalogService(repo, log),
	}
}
