package usecase

import "errors"

// Domain errors surfaced to handlers, which map them onto HTTP statuses
// with errors.Is. Policy errors are returned before any store mutation.
var (
	// ErrValidation covers malformed or missing request fields.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound covers a missing calendar, service, staff or reservation.
	ErrNotFound = errors.New("not found")

	// ErrOutsideBusinessHours rejects a start time outside the day's
	// opening window, or on a closed day.
	ErrOutsideBusinessHours = errors.New("requested time is outside business hours")

	// ErrRestPeriodBlocked rejects a slot intersecting a rest period.
	ErrRestPeriodBlocked = errors.New("requested time falls in a rest period")

	// ErrServiceUnavailable rejects a service that is inactive or not
	// enabled on the calendar.
	ErrServiceUnavailable = errors.New("service is not available on this calendar")

	// ErrSlotConflict is the capacity race: the slot was full at commit
	// time. Callers surface it as 409 so the UI re-fetches availability.
	ErrSlotConflict = errors.New("this time slot is no longer available")
)
