package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	reservationCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon_booking",
			Name:      "reservation_created_total",
			Help:      "Count of reservations created by status.",
		},
		[]string{"status"},
	)

	reservationConflict = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon_booking",
			Name:      "reservation_conflict_total",
			Help:      "Count of booking attempts rejected for lost capacity races.",
		},
	)

	reservationCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon_booking",
			Name:      "reservation_cancelled_total",
			Help:      "Count of reservations cancelled.",
		},
	)

	calendarSyncFailure = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon_booking",
			Name:      "calendar_sync_failure_total",
			Help:      "Count of failed outbound calendar sync attempts.",
		},
	)

	availabilityRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon_booking",
			Name:      "availability_request_total",
			Help:      "Count of availability queries served.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			reservationCreated,
			reservationConflict,
			reservationCancelled,
			calendarSyncFailure,
			availabilityRequests,
		)
	})
}

func IncReservationCreated(status string) {
	reservationCreated.WithLabelValues(status).Inc()
}

func IncReservationConflict() {
	reservationConflict.Inc()
}

func IncReservationCancelled() {
	reservationCancelled.Inc()
}

func IncCalendarSyncFailure() {
	calendarSyncFailure.Inc()
}

func IncAvailabilityRequest() {
	availabilityRequests.Inc()
}
