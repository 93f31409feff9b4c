package usecase

import (
	"fmt"
	"time"
)

// localDayStartUTC translates a local calendar date into the UTC instant of
// its midnight. tzOffsetMinutes is the client's offset in minutes east of
// UTC, so local = UTC + offset and therefore UTC = local - offset. The
// engine works on UTC instants internally and only touches wall-clock time
// at this boundary.
func localDayStartUTC(date string, tzOffsetMinutes int) (time.Time, time.Weekday, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("%w: invalid date %q", ErrValidation, date)
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC).
		Add(-time.Duration(tzOffsetMinutes) * time.Minute)

	return dayStart, day.Weekday(), nil
}
