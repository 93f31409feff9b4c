package wire

import (
	"salon-booking/internal/adaptor"
	"salon-booking/pkg/middleware"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	handler *adaptor.Handler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/booking/{slug}/services - Services bookable on a calendar
	r.Get("/api/booking/{slug}/services", handler.Availability.GetServices)

	// GET /api/booking/{slug}/availability - Slot grid for one day
	// Requires query params: ?service_id=...&date=2026-09-07&tz_offset=120
	r.Get("/api/booking/{slug}/availability", handler.Availability.GetAvailability)

	// GET /api/staff - Active staff members a booking may request
	r.Get("/api/staff", handler.Availability.GetStaff)

	// POST /api/booking/{slug} - Submit a booking (rate limited per IP)
	r.With(middleware.RateLimit(config.Booking.RatePerMinute, config.Booking.RateBurst, log)).
		Post("/api/booking/{slug}", handler.Booking.CreateBooking)

	// ==================== WEBHOOK ROUTES ====================
	// POST /api/webhooks/payment - Payment provider callback (idempotent)
	r.Post("/api/webhooks/payment", handler.Booking.PaymentWebhook)
}
