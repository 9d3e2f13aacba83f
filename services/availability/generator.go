package availability

import (
	"fmt"
	"time"

	"reparaya/models"
)

// ValidGranularities are the supported slot lengths in minutes.
var ValidGranularities = map[int]bool{15: true, 30: true, 60: true}

// ScheduleSnapshot is the joined, read-only input to slot generation: the
// contractor's schedule configuration plus everything that carves time out
// of it, fetched once before generation begins.
type ScheduleSnapshot struct {
	Timezone           string
	GranularityMinutes int
	Rules              []models.WeeklyRule
	Exceptions         []models.Exception
	Blockouts          []models.Blockout
	Bookings           []models.Booking
}

// GenerateSlots expands the snapshot into bookable slots for every calendar
// day from startDate through endDate inclusive, in the contractor's local
// time, converting each slot boundary to UTC with the offset in effect at
// that specific local time.
//
// Per day: weekly rule -> exception override -> subtract blockouts ->
// subtract confirmed bookings -> slice at the granularity -> optional
// service-duration filter. Slots are emitted in ascending date order and,
// within a day, ascending local start time.
//
// When serviceDurationMinutes is zero, slots are granularity-sized chunks
// (trailing partial chunks discarded). When it is positive, one slot of
// exactly that duration is emitted per granularity-aligned start position at
// which the window fits inside a remaining open span.
func GenerateSlots(snap ScheduleSnapshot, startDate, endDate string, serviceDurationMinutes int) ([]models.AvailableSlot, error) {
	loc, err := LoadZone(snap.Timezone)
	if err != nil {
		return nil, ValidationError{Reason: err.Error()}
	}
	if !ValidGranularities[snap.GranularityMinutes] {
		return nil, ValidationError{Reason: fmt.Sprintf("granularity must be 15, 30 or 60 minutes; got %d", snap.GranularityMinutes)}
	}
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, ValidationError{Reason: err.Error()}
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, ValidationError{Reason: err.Error()}
	}
	if end.Before(start) {
		return nil, ValidationError{Reason: fmt.Sprintf("endDate %s is before startDate %s", endDate, startDate)}
	}
	if serviceDurationMinutes < 0 {
		return nil, ValidationError{Reason: "serviceDurationMinutes must not be negative"}
	}

	slots := []models.AvailableSlot{}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(DateLayout)
		open, err := openIntervalsFor(date, snap)
		if err != nil {
			return nil, err
		}
		daySlots, err := sliceIntervals(date, open, snap.GranularityMinutes, serviceDurationMinutes, loc)
		if err != nil {
			return nil, err
		}
		slots = append(slots, daySlots...)
	}
	return slots, nil
}

// openIntervalsFor computes the day's remaining open local intervals after
// exception overrides and blockout/booking subtraction, merged into a
// minimal ascending cover.
func openIntervalsFor(date string, snap ScheduleSnapshot) ([]Interval, error) {
	day, err := DayOfWeekOf(date)
	if err != nil {
		return nil, ValidationError{Reason: err.Error()}
	}

	// Base intervals from the weekly rule; no rule means a closed day.
	var base []Interval
	if rule := ruleFor(day, snap.Rules); rule != nil {
		base, err = ParseIntervals(rule.Intervals)
		if err != nil {
			return nil, ValidationError{Reason: fmt.Sprintf("weekly rule %s: %v", rule.ID, err)}
		}
	}

	// An exception replaces the weekly intervals entirely; it never merges.
	if exc := ResolveException(date, snap.Exceptions); exc != nil {
		if exc.IsFullDayClosure {
			return nil, nil
		}
		base, err = ParseIntervals(exc.CustomIntervals)
		if err != nil {
			return nil, ValidationError{Reason: fmt.Sprintf("exception %s: %v", exc.ID, err)}
		}
	}
	if len(base) == 0 {
		return nil, nil
	}

	var cuts []Interval
	for _, b := range snap.Blockouts {
		if b.Date != date {
			continue
		}
		cut, err := ParseInterval(models.TimeInterval{StartTime: b.StartTime, EndTime: b.EndTime})
		if err != nil {
			return nil, ValidationError{Reason: fmt.Sprintf("blockout %s: %v", b.ID, err)}
		}
		cuts = append(cuts, cut)
	}
	for _, bk := range snap.Bookings {
		if bk.Date != date || bk.Status != models.BookingConfirmed {
			continue
		}
		cut, err := ParseInterval(models.TimeInterval{StartTime: bk.StartTime, EndTime: bk.EndTime})
		if err != nil {
			return nil, ValidationError{Reason: fmt.Sprintf("booking %s: %v", bk.ID, err)}
		}
		cuts = append(cuts, cut)
	}

	// Merge before slicing so touching spans (a rule listing 08:00-12:00
	// and 12:00-17:00) form one open span and duration windows can cross
	// the boundary.
	return MergeIntervals(SubtractAll(base, cuts)), nil
}

// sliceIntervals splits open intervals into emitted slots and attaches UTC
// boundaries.
func sliceIntervals(date string, open []Interval, granularity, serviceDuration int, loc *time.Location) ([]models.AvailableSlot, error) {
	var out []models.AvailableSlot
	for _, iv := range open {
		if serviceDuration > 0 {
			// One slot per granularity-aligned start at which the full
			// service window still fits in this span.
			for s := iv.Start; s+serviceDuration <= iv.End; s += granularity {
				slot, err := buildSlot(date, Interval{Start: s, End: s + serviceDuration}, loc)
				if err != nil {
					return nil, err
				}
				out = append(out, slot)
			}
			continue
		}
		// Granularity-sized chunks; a trailing partial chunk is discarded.
		for s := iv.Start; s+granularity <= iv.End; s += granularity {
			slot, err := buildSlot(date, Interval{Start: s, End: s + granularity}, loc)
			if err != nil {
				return nil, err
			}
			out = append(out, slot)
		}
	}
	return out, nil
}

// buildSlot converts one local interval into an AvailableSlot with UTC
// boundaries resolved against the offset in effect at each endpoint.
func buildSlot(date string, iv Interval, loc *time.Location) (models.AvailableSlot, error) {
	startUTC, err := LocalToUTC(date, iv.Start, loc)
	if err != nil {
		return models.AvailableSlot{}, ValidationError{Reason: err.Error()}
	}
	endUTC, err := LocalToUTC(date, iv.End, loc)
	if err != nil {
		return models.AvailableSlot{}, ValidationError{Reason: err.Error()}
	}
	return models.AvailableSlot{
		Date:            date,
		StartTime:       FormatClock(iv.Start),
		EndTime:         FormatClock(iv.End),
		StartTimeUTC:    startUTC,
		EndTimeUTC:      endUTC,
		DurationMinutes: iv.Duration(),
	}, nil
}
