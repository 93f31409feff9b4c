// Package slots computes the bookable time slots of a single day. It is a
// pure projection: the same inputs always produce the same candidate list,
// and nothing here touches the data store.
package slots

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StepMinutes is the fixed enumeration step between candidate start times.
// Service durations need not align with it.
const StepMinutes = 30

// DaySchedule is the opening window for the requested weekday, wall-clock
// local to the business. A closed day yields no candidates.
type DaySchedule struct {
	IsOpen    bool
	OpenTime  string // "HH:MM"
	CloseTime string // "HH:MM"
}

// RestPeriod is a recurring blackout within the day, local wall clock.
type RestPeriod struct {
	StartTime string
	EndTime   string
}

// Interval is an existing reservation's absolute UTC window.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Candidate is one computed slot. Time is the local wall-clock label shown
// to callers; Start is the absolute UTC instant used for booking.
type Candidate struct {
	Time      string
	Start     time.Time
	Available bool
	Remaining int
}

// ParseClock parses "HH:MM" into minutes from midnight.
func ParseClock(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	return hours*60 + minutes, nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// BuildDay enumerates every candidate start time between open and close at
// the fixed step, counts overlapping reservations against the concurrency
// limit, and applies rest periods as a hard block.
//
// dayStartUTC is the absolute UTC instant of the requested day's local
// midnight; all local wall-clock arithmetic is offset from it, so the
// overlap test against the UTC reservation intervals needs no further
// timezone handling.
func BuildDay(
	dayStartUTC time.Time,
	schedule DaySchedule,
	rests []RestPeriod,
	durationMinutes int,
	concurrencyLimit int,
	booked []Interval,
) ([]Candidate, error) {
	if !schedule.IsOpen {
		return nil, nil
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("invalid service duration %d", durationMinutes)
	}
	if concurrencyLimit < 1 {
		concurrencyLimit = 1
	}

	openMin, err := ParseClock(schedule.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("parse open time: %w", err)
	}
	closeMin, err := ParseClock(schedule.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("parse close time: %w", err)
	}

	type restWindow struct{ start, end int }
	restWindows := make([]restWindow, 0, len(rests))
	for _, rest := range rests {
		start, err := ParseClock(rest.StartTime)
		if err != nil {
			return nil, fmt.Errorf("parse rest start: %w", err)
		}
		end, err := ParseClock(rest.EndTime)
		if err != nil {
			return nil, fmt.Errorf("parse rest end: %w", err)
		}
		restWindows = append(restWindows, restWindow{start: start, end: end})
	}

	var candidates []Candidate
	for startMin := openMin; startMin+durationMinutes <= closeMin; startMin += StepMinutes {
		endMin := startMin + durationMinutes
		slotStart := dayStartUTC.Add(time.Duration(startMin) * time.Minute)
		slotEnd := dayStartUTC.Add(time.Duration(endMin) * time.Minute)

		overlapping := 0
		for _, iv := range booked {
			if iv.Start.Before(slotEnd) && iv.End.After(slotStart) {
				overlapping++
			}
		}

		remaining := concurrencyLimit - overlapping
		if remaining < 0 {
			remaining = 0
		}
		available := overlapping < concurrencyLimit

		// Rest periods override capacity entirely.
		for _, rest := range restWindows {
			if rest.start < endMin && rest.end > startMin {
				available = false
				remaining = 0
				break
			}
		}

		candidates = append(candidates, Candidate{
			Time:      FormatClock(startMin),
			Start:     slotStart,
			Available: available,
			Remaining: remaining,
		})
	}

	return candidates, nil
}
