package availability

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used throughout the schedule domain.
const DateLayout = "2006-01-02"

// IsValidZone reports whether name resolves in the runtime's IANA timezone
// database. "Local" and the empty string are rejected: a contractor profile
// must pin an explicit zone.
func IsValidZone(name string) bool {
	if name == "" || name == "Local" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// LoadZone resolves an IANA zone name.
func LoadZone(name string) (*time.Location, error) {
	if !IsValidZone(name) {
		return nil, fmt.Errorf("unresolvable timezone %q", name)
	}
	return time.LoadLocation(name)
}

// ParseDate parses a "2006-01-02" calendar date. The result carries no
// timezone meaning; only its year/month/day are used.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", date, DateLayout)
	}
	return t, nil
}

// LocalToUTC resolves a local civil date and clock time (minutes from
// midnight) in the given zone to an absolute UTC instant.
//
// DST policy: a clock time inside a spring-forward gap resolves forward to
// the next valid instant; a clock time repeated by a fall-back overlap
// resolves to the earlier UTC instant (the earlier offset).
func LocalToUTC(date string, minutes int, loc *time.Location) (time.Time, error) {
	day, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	year, month, dom := day.Date()
	t := time.Date(year, month, dom, minutes/60, minutes%60, 0, 0, loc)

	// A clock time inside a spring-forward gap never reads back as itself;
	// time.Date makes no guarantee which side of the gap it lands on. Shift
	// the requested clock forward by the gap length (the offset change
	// across the transition), so 02:30 on a 60-minute transition becomes
	// 03:30.
	if !sameCivil(t, loc, year, month, dom, minutes) {
		_, offBefore := t.Add(-4 * time.Hour).In(loc).Zone()
		_, offAfter := t.Add(4 * time.Hour).In(loc).Zone()
		if gap := (offAfter - offBefore) / 60; gap > 0 {
			shifted := minutes + gap
			t = time.Date(year, month, dom, shifted/60, shifted%60, 0, 0, loc)
		}
		return t.UTC(), nil
	}

	// For an ambiguous local time both offsets yield the same civil clock;
	// probe earlier instants (transitions are 30 or 60 minutes in practice)
	// and keep the earliest one that still reads back as the requested time.
	for _, delta := range []time.Duration{time.Hour, 30 * time.Minute} {
		cand := t.Add(-delta)
		if sameCivil(cand, loc, year, month, dom, minutes) {
			t = cand
			break
		}
	}
	return t.UTC(), nil
}

// UTCToLocal maps an absolute instant back into the zone's civil date and
// clock time (minutes from midnight).
func UTCToLocal(instant time.Time, loc *time.Location) (string, int) {
	local := instant.In(loc)
	return local.Format(DateLayout), local.Hour()*60 + local.Minute()
}

// OffsetHoursFor returns the zone's signed UTC offset, in hours, in effect
// at local noon of the given date. Display aid only; slot math always
// round-trips through LocalToUTC/UTCToLocal.
func OffsetHoursFor(zone string, date string) (float64, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return 0, err
	}
	day, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	year, month, dom := day.Date()
	_, offsetSeconds := time.Date(year, month, dom, 12, 0, 0, 0, loc).Zone()
	return float64(offsetSeconds) / 3600, nil
}

// sameCivil reports whether the instant reads as the given local date and
// clock time in loc.
func sameCivil(t time.Time, loc *time.Location, year int, month time.Month, dom int, minutes int) bool {
	local := t.In(loc)
	ly, lm, ld := local.Date()
	return ly == year && lm == month && ld == dom && local.Hour()*60+local.Minute() == minutes
}
