package request

// CreateBookingRequest is the public booking submission. Date and Time are
// the client's local wall clock; TzOffset is their offset from UTC in
// minutes east (e.g. 120 for UTC+2).
type CreateBookingRequest struct {
	ServiceID   string  `json:"service_id" validate:"required,uuid4"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string  `json:"time" validate:"required,datetime=15:04"`
	TzOffset    int     `json:"tz_offset" validate:"min=-720,max=840"`
	ClientName  string  `json:"client_name" validate:"required,min=2,max=100"`
	ClientPhone string  `json:"client_phone" validate:"required,min=5,max=20"`
	ClientEmail *string `json:"client_email,omitempty" validate:"omitempty,email"`
	StaffID     *string `json:"staff_id,omitempty" validate:"omitempty,uuid4"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// FinalizeBookingRequest is delivered by the payment provider's webhook.
// The intent fields mirror CreateBookingRequest so a reservation can still
// be materialized if the pending row was never created (retried callbacks
// may arrive out of order).
type FinalizeBookingRequest struct {
	ReservationID string  `json:"reservation_id" validate:"required,uuid4"`
	CalendarSlug  string  `json:"calendar_slug,omitempty"`
	ServiceID     string  `json:"service_id,omitempty" validate:"omitempty,uuid4"`
	StartTime     string  `json:"start_time,omitempty"` // ISO-8601 UTC
	ClientName    string  `json:"client_name,omitempty"`
	ClientPhone   string  `json:"client_phone,omitempty"`
	ClientEmail   *string `json:"client_email,omitempty" validate:"omitempty,email"`
	Notes         *string `json:"notes,omitempty"`
}
