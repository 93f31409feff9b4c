package wire

import (
	"salon-booking/internal/adaptor"
	"salon-booking/pkg/middleware"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	handler *adaptor.Handler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	// All admin routes require the bearer token.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Admin(config.Admin.TokenHash, log))

		// Weekly schedule and rest periods
		r.Get("/schedule", handler.Schedule.GetSchedule)
		r.Put("/schedule", handler.Schedule.UpdateSchedule)
		r.Post("/rest-periods", handler.Schedule.CreateRestPeriod)
		r.Delete("/rest-periods/{id}", handler.Schedule.DeleteRestPeriod)

		// Service catalog
		r.Get("/services", handler.Catalog.ListServices)
		r.Post("/services", handler.Catalog.CreateService)
		r.Put("/services/{id}", handler.Catalog.UpdateService)

		// Booking calendars
		r.Get("/calendars", handler.Catalog.ListCalendars)
		r.Post("/calendars", handler.Catalog.CreateCalendar)
		r.Put("/calendars/{id}/services", handler.Catalog.SetCalendarServices)

		// Reservations
		r.Get("/reservations/{id}", handler.Booking.GetReservation)
		r.Put("/reservations/{id}/cancel", handler.Booking.CancelReservation)
	})
}
