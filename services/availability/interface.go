package availability

import (
	"context"
	"fmt"

	bookingRepo "reparaya/database/repository/booking"
	contractorRepo "reparaya/database/repository/contractor"
	scheduleRepo "reparaya/database/repository/schedule"
	"reparaya/models"
)

// AvailabilityService validates requests, enforces ownership and delegates
// slot generation to the pure generator. Reads are public; every mutation
// requires the caller's contractor ID for ownership verification.
type AvailabilityService interface {
	GenerateSlots(ctx context.Context, contractorID, startDate, endDate string, serviceDurationMinutes int) (*models.AvailabilityResponse, error)
	GetSchedule(ctx context.Context, contractorID string) (*models.ScheduleView, error)

	// Weekly rules
	CreateWeeklyRule(ctx context.Context, callerID string, req models.CreateWeeklyRuleRequest) (*models.WeeklyRule, error)
	UpdateWeeklyRule(ctx context.Context, callerID, ruleID string, req models.UpdateWeeklyRuleRequest) (*models.WeeklyRule, error)
	DeleteWeeklyRule(ctx context.Context, callerID, ruleID string) error

	// Exceptions. The exception type is immutable; changing a ONE_OFF into
	// a RECURRING (or back) is delete + recreate.
	CreateException(ctx context.Context, callerID string, req models.CreateExceptionRequest) (*models.Exception, error)
	DeleteException(ctx context.Context, callerID, exceptionID string) error

	// Blockouts
	CreateBlockout(ctx context.Context, callerID string, req models.CreateBlockoutRequest) (*models.Blockout, error)
	DeleteBlockout(ctx context.Context, callerID, blockoutID string) error
}

// DefaultAvailabilityService is the production implementation. All data
// access goes through the injected repositories, so the service can be
// exercised against fixtures.
type DefaultAvailabilityService struct {
	Schedule    scheduleRepo.ScheduleRepository
	Bookings    bookingRepo.BookingRepository
	Contractors contractorRepo.ContractorRepository

	// RangeCapWeeks bounds a single generation request. Zero means the
	// default of 8 weeks.
	RangeCapWeeks int
}

// DefaultRangeCapWeeks bounds generation requests when no explicit cap is
// configured.
const DefaultRangeCapWeeks = 8

func NewDefaultAvailabilityService(
	schedule scheduleRepo.ScheduleRepository,
	bookings bookingRepo.BookingRepository,
	contractors contractorRepo.ContractorRepository,
	rangeCapWeeks int,
) (*DefaultAvailabilityService, error) {
	if schedule == nil || bookings == nil || contractors == nil {
		return nil, fmt.Errorf("availability service initialization error: one or more dependencies are nil")
	}
	if rangeCapWeeks <= 0 {
		rangeCapWeeks = DefaultRangeCapWeeks
	}
	return &DefaultAvailabilityService{
		Schedule:      schedule,
		Bookings:      bookings,
		Contractors:   contractors,
		RangeCapWeeks: rangeCapWeeks,
	}, nil
}
