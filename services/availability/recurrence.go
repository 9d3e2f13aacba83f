package availability

import (
	"reparaya/models"
)

// DayOfWeekOf computes the weekday of a calendar date. Pure calendar
// arithmetic; no timezone is involved.
func DayOfWeekOf(date string) (models.DayOfWeek, error) {
	day, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return models.DayOfWeekFrom(day.Weekday()), nil
}

// MatchesRecurringException reports whether the date's month and day match
// the exception's recurring pattern, independent of year. A recurring
// exception on Feb 29 matches only in leap years.
func MatchesRecurringException(date string, exc models.Exception) bool {
	if exc.Type != models.ExceptionRecurring {
		return false
	}
	day, err := ParseDate(date)
	if err != nil {
		return false
	}
	return int(day.Month()) == exc.RecurringMonth && day.Day() == exc.RecurringDay
}

// ResolveException picks the single exception that applies to the date, or
// nil if none does. A ONE_OFF dated exactly on the day beats any RECURRING
// match; among equal-precedence candidates the earliest-created wins.
func ResolveException(date string, exceptions []models.Exception) *models.Exception {
	var oneOff, recurring *models.Exception
	for i := range exceptions {
		exc := &exceptions[i]
		switch exc.Type {
		case models.ExceptionOneOff:
			if exc.Date == date && (oneOff == nil || exc.CreatedAt.Before(oneOff.CreatedAt)) {
				oneOff = exc
			}
		case models.ExceptionRecurring:
			if MatchesRecurringException(date, *exc) && (recurring == nil || exc.CreatedAt.Before(recurring.CreatedAt)) {
				recurring = exc
			}
		}
	}
	if oneOff != nil {
		return oneOff
	}
	return recurring
}

// ruleFor returns the weekly rule covering the weekday, or nil when the
// contractor has no availability template for that day.
func ruleFor(day models.DayOfWeek, rules []models.WeeklyRule) *models.WeeklyRule {
	for i := range rules {
		if rules[i].DayOfWeek == day {
			return &rules[i]
		}
	}
	return nil
}
