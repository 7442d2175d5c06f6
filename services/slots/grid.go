package slots

import (
	"time"

	"pawcare/models"
)

// Slots lists every grid time of date that passes the date, hours and disabled-slot
// checks. It returns nil when the whole day is rejected (past or closed).
func (v *Validator) Slots(policy models.BookingTimePolicy, date string, clinic *models.Clinic) ([]string, error) {
	w, err := v.resolveWindow(policy, date, clinic)
	if err != nil {
		return nil, err
	}
	now := v.now().In(v.loc)
	if w.day.Before(at(now, 0)) || policy.IsClosedOn(w.day.Weekday()) {
		return nil, nil
	}

	var out []string
	for t := w.businessStart; !t.After(w.openUntil); t = t.Add(minutes(policy.GapBetween)) {
		if t.Before(w.openFrom) {
			continue
		}
		// Slots earlier today are not offered even though the date check would accept them.
		if t.Before(now) {
			continue
		}
		m := t.Hour()*60 + t.Minute()
		disabled, err := isDisabled(policy.DisabledTimeSlots, w.day, m)
		if err != nil {
			return nil, err
		}
		if disabled {
			continue
		}
		out = append(out, models.FormatClock(m))
	}
	return out, nil
}

// Availability returns the open grid of date with the remaining capacity of each slot.
// Full slots are reported with Remaining 0.
func (v *Validator) Availability(policy models.BookingTimePolicy, date string, clinic *models.Clinic, existing []models.Booking) ([]models.AvailableSlot, error) {
	times, err := v.Slots(policy, date, clinic)
	if err != nil {
		return nil, err
	}
	w, err := v.resolveWindow(policy, date, clinic)
	if err != nil {
		return nil, err
	}

	out := make([]models.AvailableSlot, 0, len(times))
	for _, clock := range times {
		m, _ := models.ParseClock(clock)
		req := Request{Date: date, Time: clock, Clinic: clinic, Initial: true}
		taken := v.countHolding(existing, req, m, w)
		remaining := policy.PerGapLimitBooking - taken
		if remaining < 0 {
			remaining = 0
		}
		out = append(out, models.AvailableSlot{
			Date:      date,
			Time:      clock,
			Remaining: remaining,
			Capacity:  policy.PerGapLimitBooking,
		})
	}
	return out, nil
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
