package entity

import (
	"time"

	"github.com/google/uuid"
)

// DaySchedule holds the weekly opening hours for one weekday.
// Times are wall-clock local to the business, "HH:MM" with minute precision.
// When IsOpen is false the open/close times are ignored.
type DaySchedule struct {
	ID        uuid.UUID    `db:"id"`
	DayOfWeek time.Weekday `db:"day_of_week"`
	IsOpen    bool         `db:"is_open"`
	OpenTime  string       `db:"open_time"`
	CloseTime string       `db:"close_time"`
	UpdatedAt time.Time    `db:"updated_at"`
}

// RestPeriod is a recurring blackout (lunch break, cleaning) on one weekday.
// It blocks booking outright, regardless of remaining capacity.
type RestPeriod struct {
	ID        uuid.UUID    `db:"id"`
	DayOfWeek time.Weekday `db:"day_of_week"`
	StartTime string       `db:"start_time"`
	EndTime   string       `db:"end_time"`
	CreatedAt time.Time    `db:"created_at"`
}
