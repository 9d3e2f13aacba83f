package availability

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reparaya/models"
)

func mondayRule(intervals ...models.TimeInterval) models.WeeklyRule {
	return models.WeeklyRule{ID: "rule-mon", ContractorID: "c1", DayOfWeek: models.Monday, Intervals: intervals}
}

func baseSnapshot() ScheduleSnapshot {
	return ScheduleSnapshot{
		Timezone:           "America/Mexico_City",
		GranularityMinutes: 30,
		Rules: []models.WeeklyRule{
			mondayRule(models.TimeInterval{StartTime: "08:00", EndTime: "12:00"}),
		},
	}
}

func localStarts(slots []models.AvailableSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime
	}
	return out
}

func TestGenerateSlotsBasicDayWithBooking(t *testing.T) {
	snap := baseSnapshot()
	snap.Bookings = []models.Booking{{
		ID: "bk1", ContractorID: "c1", Date: "2026-03-02",
		StartTime: "09:00", EndTime: "09:30", Status: models.BookingConfirmed,
	}}

	slots, err := GenerateSlots(snap, "2026-03-02", "2026-03-02", 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"08:00", "08:30", "09:30", "10:00", "10:30", "11:00", "11:30"}, localStarts(slots))
	for _, s := range slots {
		assert.Equal(t, "2026-03-02", s.Date)
		assert.Equal(t, 30, s.DurationMinutes)
		assert.Equal(t, 30*time.Minute, s.EndTimeUTC.Sub(s.StartTimeUTC))
	}
	// Mexico City sits at a fixed UTC-6.
	assert.Equal(t, time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC), slots[0].StartTimeUTC)
}

func TestGenerateSlotsPendingBookingDoesNotBlock(t *testing.T) {
	snap := baseSnapshot()
	snap.Bookings = []models.Booking{{
		ID: "bk1", ContractorID: "c1", Date: "2026-03-02",
		StartTime: "09:00", EndTime: "09:30", Status: models.BookingPending,
	}}

	slots, err := GenerateSlots(snap, "2026-03-02", "2026-03-02", 0)
	require.NoError(t, err)
	assert.Len(t, slots, 8)
}

func TestGenerateSlotsBlockoutSubtraction(t *testing.T) {
	snap := baseSnapshot()
	snap.Blockouts = []models.Blockout{{
		ID: "bl1", ContractorID: "c1", Date: "2026-03-02",
		StartTime: "10:00", EndTime: "11:00",
	}}

	slots, err := GenerateSlots(snap, "2026-03-02", "2026-03-02", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "08:30", "09:00", "09:30", "11:00", "11:30"}, localStarts(slots))
}

func TestGenerateSlotsFullDayClosure(t *testing.T) {
	snap := baseSnapshot()
	snap.Exceptions = []models.Exception{{
		ID: "exc1", Type: models.ExceptionOneOff, Date: "2026-03-02", IsFullDayClosure: true,
	}}

	slots, err := GenerateSlots(snap, "2026-03-02", "2026-03-02", 0)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsExceptionReplacesWeeklyIntervals(t *testing.T) {
	snap := baseSnapshot()
	snap.Exceptions = []models.Exception{{
		ID: "exc1", Type: models.ExceptionOneOff, Date: "2026-03-02",
		CustomIntervals: []models.TimeInterval{{StartTime: "14:00", EndTime: "15:00"}},
	}}

	slots, err := GenerateSlots(snap, "2026-03-02", "2026-03-02", 0)
	require.NoError(t, err)
	// The custom window replaces 08:00-12:00 entirely; nothing merges.
	assert.Equal(t, []string{"14:00", "14:30"}, localStarts(slots))
}

func TestGenerateSlotsOneOffBeatsRecurring(t *testing.T) {
	snap := baseSnapshot()
	snap.Exceptions = []models.Exception{
		{ID: "rec", Type: models.ExceptionRecurring, RecurringMonth: 3, RecurringDay: 2, IsFullDayClosure: true},
		{ID: "one", Type: models.ExceptionOneOff, Date: "2026-03-02",
			CustomIntervals: []models.TimeInterval{{StartTime: "09:00", EndTime: "10:00"}}},
	}

	slots, err := GenerateSlots(snap, "2026-03-02", "2026-03-02", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, localStarts(slots))
}

func TestGenerateSlotsNoRuleMeansClosedDay(t *testing.T) {
	snap := baseSnapshot()

	// 2026-03-03 is a Tuesday; only a Monday rule exists.
	slots, err := GenerateSlots(snap, "2026-03-03", "2026-03-03", 0)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsTrailingPartialChunkDiscarded(t *testing.T) {
	snap := baseSnapshot()
	snap.Rules = []models.WeeklyRule{
		mondayRule(models.TimeInterval{StartTime: "08:00", EndTime: "08:50"}),
	}

	slots, err := GenerateSlots(snap, "2026-03-02", "2026-03-02", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00"}, localStarts(slots))
	assert.Equal(t, "08:30", slots[0].EndTime)
}

func TestGenerateSlotsServiceDurationWindows(t *testing.T) {
	snap := baseSnapshot()
	snap.Rules = []models.WeeklyRule{
		mondayRule(models.TimeInterval{StartTime: "08:00", EndTime: "10:00"}),
	}

	slots, err := GenerateSlots(snap, "2026-03-02", "2026-03-02", 90)
	require.NoError(t, err)

	// 90-minute windows on a 30-minute grid inside 08:00-10:00.
	assert.Equal(t, []string{"08:00", "08:30"}, localStarts(slots))
	for _, s := range slots {
		assert.Equal(t, 90, s.DurationMinutes)
	}
	assert.Equal(t, "10:00", slots[1].EndTime)
}

func TestGenerateSlotsServiceDurationCrossesTouchingIntervals(t *testing.T) {
	snap := baseSnapshot()
	snap.Rules = []models.WeeklyRule{
		mondayRule(
			models.TimeInterval{StartTime: "08:00", EndTime: "12:00"},
			models.TimeInterval{StartTime: "12:00", EndTime: "17:00"},
		),
	}

	slots, err := GenerateSlots(snap, "2026-03-02", "2026-03-02", 90)
	require.NoError(t, err)

	// Touching rule intervals form one 08:00-17:00 span, so 90-minute
	// windows straddling 12:00 are bookable too.
	starts := localStarts(slots)
	assert.Contains(t, starts, "11:00")
	assert.Contains(t, starts, "11:30")
	assert.Contains(t, starts, "12:00")
	assert.Len(t, starts, 16) // every 30 minutes from 08:00 through 15:30
	assert.Equal(t, "08:00", starts[0])
	assert.Equal(t, "15:30", starts[len(starts)-1])

	// A booking at the former boundary splits the span again.
	snap.Bookings = []models.Booking{{
		ID: "bk1", ContractorID: "c1", Date: "2026-03-02",
		StartTime: "12:00", EndTime: "12:30", Status: models.BookingConfirmed,
	}}
	slots, err = GenerateSlots(snap, "2026-03-02", "2026-03-02", 90)
	require.NoError(t, err)
	assert.NotContains(t, localStarts(slots), "11:00")
	assert.NotContains(t, localStarts(slots), "11:30")
	assert.Contains(t, localStarts(slots), "12:30")
}

func TestGenerateSlotsServiceDurationLongerThanAnySpan(t *testing.T) {
	snap := baseSnapshot()

	slots, err := GenerateSlots(snap, "2026-03-02", "2026-03-02", 300)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsAcrossDSTTransition(t *testing.T) {
	snap := ScheduleSnapshot{
		Timezone:           "America/New_York",
		GranularityMinutes: 60,
		Rules: []models.WeeklyRule{{
			ID: "rule-sun", ContractorID: "c1", DayOfWeek: models.Sunday,
			Intervals: []models.TimeInterval{{StartTime: "08:00", EndTime: "10:00"}},
		}},
	}

	// 2026-03-01 is EST (UTC-5); 2026-03-08 is past spring-forward, EDT (UTC-4).
	slots, err := GenerateSlots(snap, "2026-03-01", "2026-03-08", 0)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	assert.Equal(t, time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC), slots[0].StartTimeUTC)
	assert.Equal(t, time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC), slots[2].StartTimeUTC)

	// The local clock representation is identical on both Sundays.
	assert.Equal(t, slots[0].StartTime, slots[2].StartTime)
}

func TestGenerateSlotsOrderingAndIdempotence(t *testing.T) {
	snap := baseSnapshot()
	snap.Rules = append(snap.Rules, models.WeeklyRule{
		ID: "rule-tue", ContractorID: "c1", DayOfWeek: models.Tuesday,
		Intervals: []models.TimeInterval{
			{StartTime: "14:00", EndTime: "16:00"},
			{StartTime: "08:00", EndTime: "09:00"},
		},
	})

	first, err := GenerateSlots(snap, "2026-03-02", "2026-03-08", 0)
	require.NoError(t, err)
	second, err := GenerateSlots(snap, "2026-03-02", "2026-03-08", 0)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	isSorted := sort.SliceIsSorted(first, func(i, j int) bool {
		if first[i].Date != first[j].Date {
			return first[i].Date < first[j].Date
		}
		return first[i].StartTime < first[j].StartTime
	})
	assert.True(t, isSorted)
}

func TestGenerateSlotsValidation(t *testing.T) {
	snap := baseSnapshot()

	t.Run("unresolvable timezone", func(t *testing.T) {
		bad := snap
		bad.Timezone = "Mars/Olympus_Mons"
		_, err := GenerateSlots(bad, "2026-03-02", "2026-03-02", 0)
		assert.ErrorAs(t, err, &ValidationError{})
	})

	t.Run("unsupported granularity", func(t *testing.T) {
		bad := snap
		bad.GranularityMinutes = 45
		_, err := GenerateSlots(bad, "2026-03-02", "2026-03-02", 0)
		assert.ErrorAs(t, err, &ValidationError{})
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := GenerateSlots(snap, "2026-03-02", "2026-03-01", 0)
		assert.ErrorAs(t, err, &ValidationError{})
	})

	t.Run("negative service duration", func(t *testing.T) {
		_, err := GenerateSlots(snap, "2026-03-02", "2026-03-02", -30)
		assert.ErrorAs(t, err, &ValidationError{})
	})
}
