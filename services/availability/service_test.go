package availability

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reparaya/models"
)

// fakeScheduleRepo is an in-memory ScheduleRepository for service tests.
type fakeScheduleRepo struct {
	rules      map[string]models.WeeklyRule
	exceptions map[string]models.Exception
	blockouts  map[string]models.Blockout
	seq        int
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		rules:      map[string]models.WeeklyRule{},
		exceptions: map[string]models.Exception{},
		blockouts:  map[string]models.Blockout{},
	}
}

func (f *fakeScheduleRepo) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeScheduleRepo) GetWeeklyRules(_ context.Context, contractorID string) ([]models.WeeklyRule, error) {
	var out []models.WeeklyRule
	for _, r := range f.rules {
		if r.ContractorID == contractorID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) GetWeeklyRuleByID(_ context.Context, ruleID string) (*models.WeeklyRule, error) {
	if r, ok := f.rules[ruleID]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeScheduleRepo) GetWeeklyRuleByDay(_ context.Context, contractorID string, day models.DayOfWeek) (*models.WeeklyRule, error) {
	for _, r := range f.rules {
		if r.ContractorID == contractorID && r.DayOfWeek == day {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleRepo) CreateWeeklyRule(_ context.Context, rule models.WeeklyRule) (*models.WeeklyRule, error) {
	rule.ID = f.nextID("rule")
	f.rules[rule.ID] = rule
	return &rule, nil
}

func (f *fakeScheduleRepo) UpdateWeeklyRule(_ context.Context, rule models.WeeklyRule) (*models.WeeklyRule, error) {
	f.rules[rule.ID] = rule
	return &rule, nil
}

func (f *fakeScheduleRepo) DeleteWeeklyRule(_ context.Context, ruleID string) error {
	delete(f.rules, ruleID)
	return nil
}

func (f *fakeScheduleRepo) GetExceptions(_ context.Context, contractorID, startDate, endDate string) ([]models.Exception, error) {
	var out []models.Exception
	for _, e := range f.exceptions {
		if e.ContractorID != contractorID {
			continue
		}
		if e.Type == models.ExceptionRecurring || (e.Date >= startDate && e.Date <= endDate) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) ListExceptions(_ context.Context, contractorID string) ([]models.Exception, error) {
	var out []models.Exception
	for _, e := range f.exceptions {
		if e.ContractorID == contractorID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) GetExceptionByID(_ context.Context, exceptionID string) (*models.Exception, error) {
	if e, ok := f.exceptions[exceptionID]; ok {
		return &e, nil
	}
	return nil, nil
}

func (f *fakeScheduleRepo) CreateException(_ context.Context, exc models.Exception) (*models.Exception, error) {
	exc.ID = f.nextID("exc")
	f.exceptions[exc.ID] = exc
	return &exc, nil
}

func (f *fakeScheduleRepo) DeleteException(_ context.Context, exceptionID string) error {
	delete(f.exceptions, exceptionID)
	return nil
}

func (f *fakeScheduleRepo) GetBlockouts(_ context.Context, contractorID, startDate, endDate string) ([]models.Blockout, error) {
	var out []models.Blockout
	for _, b := range f.blockouts {
		if b.ContractorID == contractorID && b.Date >= startDate && b.Date <= endDate {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) ListBlockouts(_ context.Context, contractorID string) ([]models.Blockout, error) {
	var out []models.Blockout
	for _, b := range f.blockouts {
		if b.ContractorID == contractorID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) GetBlockoutByID(_ context.Context, blockoutID string) (*models.Blockout, error) {
	if b, ok := f.blockouts[blockoutID]; ok {
		return &b, nil
	}
	return nil, nil
}

func (f *fakeScheduleRepo) CreateBlockout(_ context.Context, blockout models.Blockout) (*models.Blockout, error) {
	blockout.ID = f.nextID("block")
	f.blockouts[blockout.ID] = blockout
	return &blockout, nil
}

func (f *fakeScheduleRepo) DeleteBlockout(_ context.Context, blockoutID string) error {
	delete(f.blockouts, blockoutID)
	return nil
}

// fakeBookingRepo serves bookings from a fixed slice. When responses is
// non-empty, GetConfirmedBookingsForDate consumes one canned response per
// call, which lets tests simulate a booking confirmed between the conflict
// check and the re-check.
type fakeBookingRepo struct {
	bookings  []models.Booking
	responses [][]models.Booking
}

func (f *fakeBookingRepo) GetConfirmedBookings(_ context.Context, contractorID, startDate, endDate string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ContractorID == contractorID && b.Status == models.BookingConfirmed && b.Date >= startDate && b.Date <= endDate {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetConfirmedBookingsForDate(ctx context.Context, contractorID, date string) ([]models.Booking, error) {
	if len(f.responses) > 0 {
		next := f.responses[0]
		f.responses = f.responses[1:]
		return next, nil
	}
	return f.GetConfirmedBookings(ctx, contractorID, date, date)
}

type fakeContractorRepo struct {
	contractors map[string]models.Contractor
}

func (f *fakeContractorRepo) Create(_ context.Context, c *models.Contractor) error {
	f.contractors[c.ID] = *c
	return nil
}

func (f *fakeContractorRepo) GetByID(_ context.Context, id string) (*models.Contractor, error) {
	if c, ok := f.contractors[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeContractorRepo) GetByEmail(_ context.Context, email string) (*models.Contractor, error) {
	for _, c := range f.contractors {
		if c.Email == email {
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeContractorRepo) Update(_ context.Context, c *models.Contractor) error {
	f.contractors[c.ID] = *c
	return nil
}

type serviceFixture struct {
	svc         *DefaultAvailabilityService
	schedule    *fakeScheduleRepo
	bookings    *fakeBookingRepo
	contractors *fakeContractorRepo
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	schedule := newFakeScheduleRepo()
	bookings := &fakeBookingRepo{}
	contractors := &fakeContractorRepo{contractors: map[string]models.Contractor{
		"c1": {ID: "c1", Email: "ana@example.com", Timezone: "America/Mexico_City", GranularityMinutes: 30},
	}}
	svc, err := NewDefaultAvailabilityService(schedule, bookings, contractors, 0)
	require.NoError(t, err)
	return &serviceFixture{svc: svc, schedule: schedule, bookings: bookings, contractors: contractors}
}

func TestServiceGenerateSlotsEndToEnd(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	_, err := fx.svc.CreateWeeklyRule(ctx, "c1", models.CreateWeeklyRuleRequest{
		DayOfWeek: models.Monday,
		Intervals: []models.TimeInterval{{StartTime: "08:00", EndTime: "12:00"}},
	})
	require.NoError(t, err)
	fx.bookings.bookings = []models.Booking{{
		ID: "bk1", ContractorID: "c1", Date: "2026-03-02",
		StartTime: "09:00", EndTime: "09:30", Status: models.BookingConfirmed,
	}}

	resp, err := fx.svc.GenerateSlots(ctx, "c1", "2026-03-02", "2026-03-02", 0)
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Total)
	assert.Equal(t, "America/Mexico_City", resp.Timezone)
	assert.False(t, resp.GeneratedAt.IsZero())
}

func TestServiceGenerateSlotsRangeCap(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	// Exactly eight weeks succeeds.
	_, err := fx.svc.GenerateSlots(ctx, "c1", "2026-03-02", "2026-04-27", 0)
	assert.NoError(t, err)

	// One day past the cap fails before anything is fetched.
	_, err = fx.svc.GenerateSlots(ctx, "c1", "2026-03-02", "2026-04-28", 0)
	assert.ErrorAs(t, err, &ValidationError{})
}

func TestServiceGenerateSlotsContractorNotFound(t *testing.T) {
	fx := newServiceFixture(t)

	_, err := fx.svc.GenerateSlots(context.Background(), "ghost", "2026-03-02", "2026-03-02", 0)
	var notFound NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "contractor", notFound.Resource)
}

func TestServiceGenerateSlotsUnconfiguredContractor(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	fx.contractors.contractors["c2"] = models.Contractor{ID: "c2", GranularityMinutes: 30}
	_, err := fx.svc.GenerateSlots(ctx, "c2", "2026-03-02", "2026-03-02", 0)
	assert.ErrorAs(t, err, &ConfigError{})

	fx.contractors.contractors["c3"] = models.Contractor{ID: "c3", Timezone: "America/Mexico_City"}
	_, err = fx.svc.GenerateSlots(ctx, "c3", "2026-03-02", "2026-03-02", 0)
	assert.ErrorAs(t, err, &ConfigError{})
}

func TestServiceCreateWeeklyRule(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	req := models.CreateWeeklyRuleRequest{
		DayOfWeek: models.Monday,
		Intervals: []models.TimeInterval{{StartTime: "08:00", EndTime: "12:00"}},
	}
	rule, err := fx.svc.CreateWeeklyRule(ctx, "c1", req)
	require.NoError(t, err)
	assert.NotEmpty(t, rule.ID)

	t.Run("duplicate weekday rejected", func(t *testing.T) {
		_, err := fx.svc.CreateWeeklyRule(ctx, "c1", req)
		assert.ErrorAs(t, err, &ValidationError{})
	})

	t.Run("overlapping intervals rejected", func(t *testing.T) {
		_, err := fx.svc.CreateWeeklyRule(ctx, "c1", models.CreateWeeklyRuleRequest{
			DayOfWeek: models.Tuesday,
			Intervals: []models.TimeInterval{
				{StartTime: "08:00", EndTime: "12:00"},
				{StartTime: "11:00", EndTime: "14:00"},
			},
		})
		assert.ErrorAs(t, err, &ValidationError{})
	})

	t.Run("touching intervals accepted", func(t *testing.T) {
		_, err := fx.svc.CreateWeeklyRule(ctx, "c1", models.CreateWeeklyRuleRequest{
			DayOfWeek: models.Wednesday,
			Intervals: []models.TimeInterval{
				{StartTime: "08:00", EndTime: "12:00"},
				{StartTime: "12:00", EndTime: "17:00"},
			},
		})
		assert.NoError(t, err)
	})
}

func TestServiceWeeklyRuleOwnership(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()
	fx.contractors.contractors["c2"] = models.Contractor{ID: "c2", Timezone: "America/Mexico_City", GranularityMinutes: 30}

	rule, err := fx.svc.CreateWeeklyRule(ctx, "c1", models.CreateWeeklyRuleRequest{
		DayOfWeek: models.Monday,
		Intervals: []models.TimeInterval{{StartTime: "08:00", EndTime: "12:00"}},
	})
	require.NoError(t, err)

	update := models.UpdateWeeklyRuleRequest{Intervals: []models.TimeInterval{{StartTime: "09:00", EndTime: "13:00"}}}

	_, err = fx.svc.UpdateWeeklyRule(ctx, "c2", rule.ID, update)
	assert.ErrorAs(t, err, &OwnershipError{})

	err = fx.svc.DeleteWeeklyRule(ctx, "c2", rule.ID)
	assert.ErrorAs(t, err, &OwnershipError{})

	// The owner can still mutate it.
	updated, err := fx.svc.UpdateWeeklyRule(ctx, "c1", rule.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "09:00", updated.Intervals[0].StartTime)
}

func TestServiceDeleteWeeklyRuleNotFound(t *testing.T) {
	fx := newServiceFixture(t)

	err := fx.svc.DeleteWeeklyRule(context.Background(), "c1", "missing")
	assert.ErrorAs(t, err, &NotFoundError{})
}

func TestServiceCreateExceptionValidation(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.CreateExceptionRequest
	}{
		{"one-off without date", models.CreateExceptionRequest{Type: models.ExceptionOneOff, IsFullDayClosure: true}},
		{"one-off with recurring fields", models.CreateExceptionRequest{Type: models.ExceptionOneOff, Date: "2026-05-01", RecurringMonth: 5, IsFullDayClosure: true}},
		{"recurring with date", models.CreateExceptionRequest{Type: models.ExceptionRecurring, Date: "2026-05-01", RecurringMonth: 5, RecurringDay: 1, IsFullDayClosure: true}},
		{"recurring with impossible day", models.CreateExceptionRequest{Type: models.ExceptionRecurring, RecurringMonth: 2, RecurringDay: 30, IsFullDayClosure: true}},
		{"closure with custom intervals", models.CreateExceptionRequest{Type: models.ExceptionOneOff, Date: "2026-05-01", IsFullDayClosure: true,
			CustomIntervals: []models.TimeInterval{{StartTime: "08:00", EndTime: "10:00"}}}},
		{"open day without intervals", models.CreateExceptionRequest{Type: models.ExceptionOneOff, Date: "2026-05-01"}},
		{"unknown type", models.CreateExceptionRequest{Type: "SOMETIMES", IsFullDayClosure: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.svc.CreateException(ctx, "c1", tc.req)
			assert.ErrorAs(t, err, &ValidationError{})
		})
	}

	t.Run("recurring Feb 29 accepted", func(t *testing.T) {
		_, err := fx.svc.CreateException(ctx, "c1", models.CreateExceptionRequest{
			Type: models.ExceptionRecurring, RecurringMonth: 2, RecurringDay: 29, IsFullDayClosure: true,
		})
		assert.NoError(t, err)
	})
}

func TestServiceCreateBlockout(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	created, err := fx.svc.CreateBlockout(ctx, "c1", models.CreateBlockoutRequest{
		Date: "2026-03-02", StartTime: "10:00", EndTime: "11:00", Reason: "dentist",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "c1", created.ContractorID)
}

func TestServiceCreateBlockoutConflictsWithConfirmedBooking(t *testing.T) {
	fx := newServiceFixture(t)
	fx.bookings.bookings = []models.Booking{{
		ID: "bk1", ContractorID: "c1", Date: "2026-03-02",
		StartTime: "10:30", EndTime: "11:30", Status: models.BookingConfirmed,
	}}

	_, err := fx.svc.CreateBlockout(context.Background(), "c1", models.CreateBlockoutRequest{
		Date: "2026-03-02", StartTime: "10:00", EndTime: "11:00",
	})
	assert.ErrorAs(t, err, &ConflictError{})
	assert.Empty(t, fx.schedule.blockouts)
}

func TestServiceCreateBlockoutRollsBackOnConcurrentBooking(t *testing.T) {
	fx := newServiceFixture(t)

	// First conflict check sees no bookings; the re-check after the insert
	// sees one that committed in between.
	conflicting := models.Booking{
		ID: "bk-late", ContractorID: "c1", Date: "2026-03-02",
		StartTime: "10:00", EndTime: "10:30", Status: models.BookingConfirmed,
	}
	fx.bookings.responses = [][]models.Booking{nil, {conflicting}}

	_, err := fx.svc.CreateBlockout(context.Background(), "c1", models.CreateBlockoutRequest{
		Date: "2026-03-02", StartTime: "10:00", EndTime: "11:00",
	})
	assert.ErrorAs(t, err, &ConflictError{})
	assert.Empty(t, fx.schedule.blockouts)
}

func TestServiceDeleteBlockoutOwnership(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()
	fx.contractors.contractors["c2"] = models.Contractor{ID: "c2", Timezone: "America/Mexico_City", GranularityMinutes: 30}

	created, err := fx.svc.CreateBlockout(ctx, "c1", models.CreateBlockoutRequest{
		Date: "2026-03-02", StartTime: "10:00", EndTime: "11:00",
	})
	require.NoError(t, err)

	err = fx.svc.DeleteBlockout(ctx, "c2", created.ID)
	assert.ErrorAs(t, err, &OwnershipError{})

	require.NoError(t, fx.svc.DeleteBlockout(ctx, "c1", created.ID))
	assert.Empty(t, fx.schedule.blockouts)
}

func TestServiceGetSchedule(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	_, err := fx.svc.CreateWeeklyRule(ctx, "c1", models.CreateWeeklyRuleRequest{
		DayOfWeek: models.Monday,
		Intervals: []models.TimeInterval{{StartTime: "08:00", EndTime: "12:00"}},
	})
	require.NoError(t, err)

	view, err := fx.svc.GetSchedule(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", view.ContractorID)
	assert.Equal(t, "America/Mexico_City", view.Timezone)
	assert.Len(t, view.WeeklyRules, 1)

	_, err = fx.svc.GetSchedule(ctx, "ghost")
	assert.ErrorAs(t, err, &NotFoundError{})
}
