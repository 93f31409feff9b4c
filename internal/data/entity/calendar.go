package entity

// BookingCalendar is a named public booking surface. ConcurrencyLimit is the
// maximum number of reservations allowed over any overlapping time window.
type BookingCalendar struct {
	Base
	Slug             string `db:"slug"`
	Name             string `db:"name"`
	ConcurrencyLimit int    `db:"concurrency_limit"`
	IsActive         bool   `db:"is_active"`
}

// EffectiveLimit normalizes the configured limit; anything below 1 means 1.
func (c *BookingCalendar) EffectiveLimit() int {
	if c.ConcurrencyLimit < 1 {
		return 1
	}
	return c.ConcurrencyLimit
}
