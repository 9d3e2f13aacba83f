package availability

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"reparaya/models"
	"reparaya/utils"
)

// GenerateSlots validates the request, loads the contractor's schedule
// snapshot and expands it into bookable slots. The whole call fails
// atomically: a fetch error never yields partial results for some days.
func (s *DefaultAvailabilityService) GenerateSlots(ctx context.Context, contractorID, startDate, endDate string, serviceDurationMinutes int) (*models.AvailabilityResponse, error) {
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
	capWeeks := s.RangeCapWeeks
	if capWeeks <= 0 {
		capWeeks = DefaultRangeCapWeeks
	}
	if end.Sub(start) > time.Duration(capWeeks)*7*24*time.Hour {
		return nil, ValidationError{Reason: fmt.Sprintf("date range exceeds the %d-week cap", capWeeks)}
	}
	if serviceDurationMinutes < 0 {
		return nil, ValidationError{Reason: "serviceDurationMinutes must not be negative"}
	}

	contractor, err := s.Contractors.GetByID(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contractor: %w", err)
	}
	if contractor == nil {
		return nil, NotFoundError{Resource: "contractor", ID: contractorID}
	}
	if contractor.Timezone == "" {
		return nil, ConfigError{ContractorID: contractorID, Reason: "timezone not set"}
	}
	if contractor.GranularityMinutes == 0 {
		return nil, ConfigError{ContractorID: contractorID, Reason: "granularity not set"}
	}

	rules, err := s.Schedule.GetWeeklyRules(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly rules: %w", err)
	}
	exceptions, err := s.Schedule.GetExceptions(ctx, contractorID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load exceptions: %w", err)
	}
	blockouts, err := s.Schedule.GetBlockouts(ctx, contractorID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load blockouts: %w", err)
	}
	bookings, err := s.Bookings.GetConfirmedBookings(ctx, contractorID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	snapshot := ScheduleSnapshot{
		Timezone:           contractor.Timezone,
		GranularityMinutes: contractor.GranularityMinutes,
		Rules:              rules,
		Exceptions:         exceptions,
		Blockouts:          blockouts,
		Bookings:           bookings,
	}
	slots, err := GenerateSlots(snapshot, startDate, endDate, serviceDurationMinutes)
	if err != nil {
		return nil, err
	}

	return &models.AvailabilityResponse{
		Slots:       slots,
		Timezone:    contractor.Timezone,
		Total:       len(slots),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// GetSchedule returns the contractor's full schedule configuration for
// display. Reads are public.
func (s *DefaultAvailabilityService) GetSchedule(ctx context.Context, contractorID string) (*models.ScheduleView, error) {
	contractor, err := s.Contractors.GetByID(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contractor: %w", err)
	}
	if contractor == nil {
		return nil, NotFoundError{Resource: "contractor", ID: contractorID}
	}

	rules, err := s.Schedule.GetWeeklyRules(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly rules: %w", err)
	}
	exceptions, err := s.Schedule.ListExceptions(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load exceptions: %w", err)
	}
	blockouts, err := s.Schedule.ListBlockouts(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load blockouts: %w", err)
	}

	return &models.ScheduleView{
		ContractorID: contractorID,
		Timezone:     contractor.Timezone,
		WeeklyRules:  rules,
		Exceptions:   exceptions,
		Blockouts:    blockouts,
	}, nil
}

// CreateWeeklyRule adds the weekly availability template for one weekday.
// At most one rule may exist per weekday.
func (s *DefaultAvailabilityService) CreateWeeklyRule(ctx context.Context, callerID string, req models.CreateWeeklyRuleRequest) (*models.WeeklyRule, error) {
	if err := validateDayOfWeek(req.DayOfWeek); err != nil {
		return nil, err
	}
	if _, err := validateIntervalSet(req.Intervals); err != nil {
		return nil, err
	}
	if err := s.requireContractor(ctx, callerID); err != nil {
		return nil, err
	}

	existing, err := s.Schedule.GetWeeklyRuleByDay(ctx, callerID, req.DayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing rule: %w", err)
	}
	if existing != nil {
		return nil, ValidationError{Reason: fmt.Sprintf("a weekly rule for %s already exists", req.DayOfWeek)}
	}

	rule := models.WeeklyRule{
		ContractorID: callerID,
		DayOfWeek:    req.DayOfWeek,
		Intervals:    req.Intervals,
	}
	return s.Schedule.CreateWeeklyRule(ctx, rule)
}

// UpdateWeeklyRule replaces the intervals of an existing rule after an
// ownership check.
func (s *DefaultAvailabilityService) UpdateWeeklyRule(ctx context.Context, callerID, ruleID string, req models.UpdateWeeklyRuleRequest) (*models.WeeklyRule, error) {
	if _, err := validateIntervalSet(req.Intervals); err != nil {
		return nil, err
	}

	rule, err := s.Schedule.GetWeeklyRuleByID(ctx, ruleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly rule: %w", err)
	}
	if rule == nil {
		return nil, NotFoundError{Resource: "weekly rule", ID: ruleID}
	}
	if rule.ContractorID != callerID {
		return nil, OwnershipError{ContractorID: rule.ContractorID}
	}

	rule.Intervals = req.Intervals
	return s.Schedule.UpdateWeeklyRule(ctx, *rule)
}

// DeleteWeeklyRule removes a rule after an ownership check.
func (s *DefaultAvailabilityService) DeleteWeeklyRule(ctx context.Context, callerID, ruleID string) error {
	rule, err := s.Schedule.GetWeeklyRuleByID(ctx, ruleID)
	if err != nil {
		return fmt.Errorf("failed to load weekly rule: %w", err)
	}
	if rule == nil {
		return NotFoundError{Resource: "weekly rule", ID: ruleID}
	}
	if rule.ContractorID != callerID {
		return OwnershipError{ContractorID: rule.ContractorID}
	}
	return s.Schedule.DeleteWeeklyRule(ctx, ruleID)
}

// CreateException records a date-specific override of the weekly rule.
func (s *DefaultAvailabilityService) CreateException(ctx context.Context, callerID string, req models.CreateExceptionRequest) (*models.Exception, error) {
	if err := validateExceptionRequest(req); err != nil {
		return nil, err
	}
	if err := s.requireContractor(ctx, callerID); err != nil {
		return nil, err
	}

	exc := models.Exception{
		ContractorID:     callerID,
		Type:             req.Type,
		Date:             req.Date,
		RecurringMonth:   req.RecurringMonth,
		RecurringDay:     req.RecurringDay,
		IsFullDayClosure: req.IsFullDayClosure,
		CustomIntervals:  req.CustomIntervals,
		Reason:           req.Reason,
	}
	return s.Schedule.CreateException(ctx, exc)
}

// DeleteException removes an exception after an ownership check.
func (s *DefaultAvailabilityService) DeleteException(ctx context.Context, callerID, exceptionID string) error {
	exc, err := s.Schedule.GetExceptionByID(ctx, exceptionID)
	if err != nil {
		return fmt.Errorf("failed to load exception: %w", err)
	}
	if exc == nil {
		return NotFoundError{Resource: "exception", ID: exceptionID}
	}
	if exc.ContractorID != callerID {
		return OwnershipError{ContractorID: exc.ContractorID}
	}
	return s.Schedule.DeleteException(ctx, exceptionID)
}

// CreateBlockout records manual unavailability. A blockout must never
// silently cancel a confirmed booking, so the range is checked against
// bookings before the insert and re-checked afterwards; if a booking
// committed concurrently the blockout is rolled back.
func (s *DefaultAvailabilityService) CreateBlockout(ctx context.Context, callerID string, req models.CreateBlockoutRequest) (*models.Blockout, error) {
	if _, err := ParseDate(req.Date); err != nil {
		return nil, ValidationError{Reason: err.Error()}
	}
	blockIv, err := ParseInterval(models.TimeInterval{StartTime: req.StartTime, EndTime: req.EndTime})
	if err != nil {
		return nil, ValidationError{Reason: err.Error()}
	}
	if err := s.requireContractor(ctx, callerID); err != nil {
		return nil, err
	}

	if err := s.checkBookingConflict(ctx, callerID, req.Date, blockIv); err != nil {
		return nil, err
	}

	blockout := models.Blockout{
		ContractorID: callerID,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Reason:       req.Reason,
	}
	created, err := s.Schedule.CreateBlockout(ctx, blockout)
	if err != nil {
		return nil, err
	}

	// Re-validate after the insert: a booking may have been confirmed
	// between the snapshot read and the commit.
	if err := s.checkBookingConflict(ctx, callerID, req.Date, blockIv); err != nil {
		if delErr := s.Schedule.DeleteBlockout(ctx, created.ID); delErr != nil {
			utils.GetLogger().Error("failed to roll back conflicting blockout",
				zap.String("blockoutID", created.ID), zap.Error(delErr))
		}
		return nil, err
	}
	return created, nil
}

// DeleteBlockout removes a blockout after an ownership check.
func (s *DefaultAvailabilityService) DeleteBlockout(ctx context.Context, callerID, blockoutID string) error {
	blockout, err := s.Schedule.GetBlockoutByID(ctx, blockoutID)
	if err != nil {
		return fmt.Errorf("failed to load blockout: %w", err)
	}
	if blockout == nil {
		return NotFoundError{Resource: "blockout", ID: blockoutID}
	}
	if blockout.ContractorID != callerID {
		return OwnershipError{ContractorID: blockout.ContractorID}
	}
	return s.Schedule.DeleteBlockout(ctx, blockoutID)
}

// requireContractor verifies the caller's contractor profile exists.
func (s *DefaultAvailabilityService) requireContractor(ctx context.Context, contractorID string) error {
	contractor, err := s.Contractors.GetByID(ctx, contractorID)
	if err != nil {
		return fmt.Errorf("failed to load contractor: %w", err)
	}
	if contractor == nil {
		return NotFoundError{Resource: "contractor", ID: contractorID}
	}
	return nil
}

// checkBookingConflict rejects a blockout range that intersects any
// confirmed booking on that date.
func (s *DefaultAvailabilityService) checkBookingConflict(ctx context.Context, contractorID, date string, blockIv Interval) error {
	bookings, err := s.Bookings.GetConfirmedBookingsForDate(ctx, contractorID, date)
	if err != nil {
		return fmt.Errorf("failed to check bookings: %w", err)
	}
	for _, bk := range bookings {
		bkIv, err := ParseInterval(models.TimeInterval{StartTime: bk.StartTime, EndTime: bk.EndTime})
		if err != nil {
			continue
		}
		if Overlaps(blockIv, bkIv) {
			return ConflictError{Reason: fmt.Sprintf(
				"blockout %s %s-%s overlaps confirmed booking %s",
				date, FormatClock(blockIv.Start), FormatClock(blockIv.End), bk.ID,
			)}
		}
	}
	return nil
}
