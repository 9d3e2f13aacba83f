package availability

import (
	"fmt"
	"time"

	"reparaya/models"
)

// validateIntervalSet parses an interval list and rejects overlapping pairs.
// Touching intervals are fine; a rule may legitimately list 08:00-12:00 and
// 12:00-17:00.
func validateIntervalSet(ivs []models.TimeInterval) ([]Interval, error) {
	if len(ivs) == 0 {
		return nil, ValidationError{Reason: "at least one interval is required"}
	}
	parsed, err := ParseIntervals(ivs)
	if err != nil {
		return nil, ValidationError{Reason: err.Error()}
	}
	sortIntervals(parsed)
	for i := 1; i < len(parsed); i++ {
		if Overlaps(parsed[i-1], parsed[i]) {
			return nil, ValidationError{Reason: fmt.Sprintf(
				"intervals %s-%s and %s-%s overlap",
				FormatClock(parsed[i-1].Start), FormatClock(parsed[i-1].End),
				FormatClock(parsed[i].Start), FormatClock(parsed[i].End),
			)}
		}
	}
	return parsed, nil
}

// validateExceptionRequest checks that exactly the fields matching the
// exception type are populated.
func validateExceptionRequest(req models.CreateExceptionRequest) error {
	switch req.Type {
	case models.ExceptionOneOff:
		if req.Date == "" {
			return ValidationError{Reason: "ONE_OFF exception requires a date"}
		}
		if _, err := ParseDate(req.Date); err != nil {
			return ValidationError{Reason: err.Error()}
		}
		if req.RecurringMonth != 0 || req.RecurringDay != 0 {
			return ValidationError{Reason: "ONE_OFF exception must not carry recurring fields"}
		}
	case models.ExceptionRecurring:
		if req.Date != "" {
			return ValidationError{Reason: "RECURRING exception must not carry a date"}
		}
		if !validMonthDay(req.RecurringMonth, req.RecurringDay) {
			return ValidationError{Reason: fmt.Sprintf("invalid recurring month/day %d/%d", req.RecurringMonth, req.RecurringDay)}
		}
	default:
		return ValidationError{Reason: fmt.Sprintf("unknown exception type %q", req.Type)}
	}

	if req.IsFullDayClosure {
		if len(req.CustomIntervals) > 0 {
			return ValidationError{Reason: "a full-day closure must not carry custom intervals"}
		}
		return nil
	}
	_, err := validateIntervalSet(req.CustomIntervals)
	return err
}

// validMonthDay accepts any month/day combination that exists in some year.
// Feb 29 is allowed; it simply never matches outside leap years.
func validMonthDay(month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	// Probe against a leap year so Feb 29 passes.
	probe := time.Date(2024, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return int(probe.Month()) == month && probe.Day() == day
}

// validateDayOfWeek rejects values outside the seven-day enumeration.
func validateDayOfWeek(day models.DayOfWeek) error {
	if _, ok := day.Weekday(); !ok {
		return ValidationError{Reason: fmt.Sprintf("invalid day of week %q", day)}
	}
	return nil
}
