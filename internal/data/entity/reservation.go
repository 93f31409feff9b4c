package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Reservation is the only entity the booking engine mutates. StartTime and
// EndTime are absolute UTC instants; EndTime = StartTime + service duration.
// Cancellation is soft, via Status.
type Reservation struct {
	Base
	Code            string            `db:"code"`
	CalendarID      uuid.UUID         `db:"calendar_id"`
	ServiceID       uuid.UUID         `db:"service_id"`
	ClientID        uuid.UUID         `db:"client_id"`
	StaffID         *uuid.UUID        `db:"staff_id"`
	StartTime       time.Time         `db:"start_time"`
	EndTime         time.Time         `db:"end_time"`
	Status          ReservationStatus `db:"status"`
	Notes           *string           `db:"notes"`
	ExternalEventID *string           `db:"external_event_id"`
}

// Overlaps reports whether the reservation's interval intersects
// [start, end) under the half-open overlap test. Cancelled reservations
// never overlap anything.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	if r.Status == ReservationStatusCancelled {
		return false
	}
	return r.StartTime.Before(end) && r.EndTime.After(start)
}
