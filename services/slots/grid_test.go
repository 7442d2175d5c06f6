package slots

import (
	"testing"
	"time"

	"pawcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlots_EnumeratesGrid(t *testing.T) {
	v := newTestValidator(fixedNow)
	p := models.BookingTimePolicy{
		Start:              "09:00",
		End:                "11:00",
		GapBetween:         30,
		PerGapLimitBooking: 2,
		DisabledTimeSlots:  []models.DisabledTimeSlot{{Type: models.DisabledSingle, Time: "10:00"}},
	}

	times, err := v.Slots(p, nextMonday, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00"}, times)
}

func TestSlots_SkipsElapsedTimesToday(t *testing.T) {
	v := newTestValidator(time.Date(2025, 6, 2, 10, 5, 0, 0, ist))
	p := models.BookingTimePolicy{Start: "09:00", End: "11:00", GapBetween: 30, PerGapLimitBooking: 1}

	times, err := v.Slots(p, "2025-06-02", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30", "11:00"}, times)
}

func TestSlots_ClosedAndPastDaysAreEmpty(t *testing.T) {
	v := newTestValidator(fixedNow)
	p := testPolicy()

	times, err := v.Slots(p, nextSunday, nil)
	require.NoError(t, err)
	assert.Empty(t, times)

	times, err = v.Slots(p, "2025-05-26", nil)
	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestAvailability_ReportsRemainingCapacity(t *testing.T) {
	v := newTestValidator(fixedNow)
	p := models.BookingTimePolicy{Start: "09:00", End: "10:00", GapBetween: 30, PerGapLimitBooking: 2}
	existing := append(
		bookingsAt(2, nextMonday, "09:00", models.StatusConfirmed),
		bookingsAt(1, nextMonday, "09:30", models.StatusConfirmed)...,
	)

	got, err := v.Availability(p, nextMonday, nil, existing)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 0, got[0].Remaining)
	assert.Equal(t, 1, got[1].Remaining)
	assert.Equal(t, 2, got[2].Remaining)
	assert.Equal(t, "10:00", got[2].Time)
}

func TestAvailability_ClinicWindow(t *testing.T) {
	v := newTestValidator(fixedNow)
	p := testPolicy()
	clinic := &models.Clinic{ID: "c1", OpenTime: "12:00", CloseTime: "13:00"}

	got, err := v.Availability(p, nextMonday, clinic, nil)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "12:00", got[0].Time)
	assert.Equal(t, "13:00", got[2].Time)
}
