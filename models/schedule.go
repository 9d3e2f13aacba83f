package models

import "time"

// DayOfWeek is a calendar weekday in the contractor's local time.
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// Weekday maps a DayOfWeek onto the stdlib weekday numbering.
func (d DayOfWeek) Weekday() (time.Weekday, bool) {
	switch d {
	case Sunday:
		return time.Sunday, true
	case Monday:
		return time.Monday, true
	case Tuesday:
		return time.Tuesday, true
	case Wednesday:
		return time.Wednesday, true
	case Thursday:
		return time.Thursday, true
	case Friday:
		return time.Friday, true
	case Saturday:
		return time.Saturday, true
	}
	return 0, false
}

// DayOfWeekFrom converts a stdlib weekday to its DayOfWeek value.
func DayOfWeekFrom(wd time.Weekday) DayOfWeek {
	switch wd {
	case time.Sunday:
		return Sunday
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	default:
		return Saturday
	}
}

// TimeInterval is a half-open [startTime, endTime) range within a single day,
// both ends in local "HH:mm". startTime must be strictly before endTime.
type TimeInterval struct {
	StartTime string `bson:"startTime" json:"startTime" binding:"required"`
	EndTime   string `bson:"endTime" json:"endTime" binding:"required"`
}

// WeeklyRule is the recurring weekly availability template for one weekday.
// A contractor has at most one rule per weekday; its intervals must be
// pairwise non-overlapping.
type WeeklyRule struct {
	ID           string         `bson:"id" json:"id"`
	ContractorID string         `bson:"contractorId" json:"contractorId"`
	DayOfWeek    DayOfWeek      `bson:"dayOfWeek" json:"dayOfWeek"`
	Intervals    []TimeInterval `bson:"intervals" json:"intervals"`
	CreatedAt    time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// ExceptionType distinguishes single-date overrides from yearly repeating ones.
type ExceptionType string

const (
	ExceptionOneOff    ExceptionType = "ONE_OFF"
	ExceptionRecurring ExceptionType = "RECURRING"
)

// Exception overrides the weekly rule for a matching date. A ONE_OFF carries
// an exact date; a RECURRING carries a month+day repeating every year. When
// IsFullDayClosure is false, CustomIntervals replace the day's weekly
// intervals entirely.
type Exception struct {
	ID               string         `bson:"id" json:"id"`
	ContractorID     string         `bson:"contractorId" json:"contractorId"`
	Type             ExceptionType  `bson:"type" json:"type"`
	Date             string         `bson:"date,omitempty" json:"date,omitempty"` // "2006-01-02", ONE_OFF only
	RecurringMonth   int            `bson:"recurringMonth,omitempty" json:"recurringMonth,omitempty"`
	RecurringDay     int            `bson:"recurringDay,omitempty" json:"recurringDay,omitempty"`
	IsFullDayClosure bool           `bson:"isFullDayClosure" json:"isFullDayClosure"`
	CustomIntervals  []TimeInterval `bson:"customIntervals,omitempty" json:"customIntervals,omitempty"`
	Reason           string         `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt        time.Time      `bson:"createdAt" json:"createdAt"`
}

// Blockout is an ad hoc manual unavailability window carved out of an
// otherwise-open day.
type Blockout struct {
	ID           string    `bson:"block_id" json:"block_id"`
	ContractorID string    `bson:"contractor_id" json:"contractor_id"`
	Date         string    `bson:"date" json:"date"` // "2006-01-02"
	StartTime    string    `bson:"start_time" json:"start_time"`
	EndTime      string    `bson:"end_time" json:"end_time"`
	Reason       string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// CreateWeeklyRuleRequest is the payload for creating a weekly rule.
type CreateWeeklyRuleRequest struct {
	DayOfWeek DayOfWeek      `json:"dayOfWeek" binding:"required"`
	Intervals []TimeInterval `json:"intervals" binding:"required,min=1"`
}

// UpdateWeeklyRuleRequest replaces the intervals of an existing rule.
type UpdateWeeklyRuleRequest struct {
	Intervals []TimeInterval `json:"intervals" binding:"required,min=1"`
}

// CreateExceptionRequest is the payload for creating an exception.
// Exactly the fields matching Type must be populated; the exception type is
// immutable after creation (delete and recreate to change it).
type CreateExceptionRequest struct {
	Type             ExceptionType  `json:"type" binding:"required"`
	Date             string         `json:"date,omitempty"`
	RecurringMonth   int            `json:"recurringMonth,omitempty"`
	RecurringDay     int            `json:"recurringDay,omitempty"`
	IsFullDayClosure bool           `json:"isFullDayClosure"`
	CustomIntervals  []TimeInterval `json:"customIntervals,omitempty"`
	Reason           string         `json:"reason,omitempty"`
}

// CreateBlockoutRequest is the payload for creating a blockout.
type CreateBlockoutRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Reason    string `json:"reason,omitempty"`
}

// ScheduleView bundles a contractor's full schedule configuration for display.
type ScheduleView struct {
	ContractorID string       `json:"contractorId"`
	Timezone     string       `json:"timezone"`
	WeeklyRules  []WeeklyRule `json:"weeklyRules"`
	Exceptions   []Exception  `json:"exceptions"`
	Blockouts    []Blockout   `json:"blockouts"`
}
