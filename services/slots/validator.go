// Package slots decides whether a (date, time) pair is bookable under a category's
// BookingTimePolicy and enumerates the bookable grid of a day.
package slots

import (
	"fmt"
	"time"

	"pawcare/models"
	"pawcare/utils"
)

// Request is a candidate slot.
type Request struct {
	Date   string         // "YYYY-MM-DD" in the service's civil calendar
	Time   string         // "HH:MM"
	Clinic *models.Clinic // non-nil for at-clinic bookings

	// Initial is true when creating a booking; it widens the set of statuses that do not
	// hold capacity (Pending bookings are ignored on initial booking).
	Initial bool
	// ExcludeBookingID is left out of the capacity count (the booking being rescheduled).
	ExcludeBookingID string
}

// Validator runs the ordered slot checks. It holds no state besides its clock and zone
// and is safe for concurrent use.
type Validator struct {
	loc *time.Location
	now func() time.Time
}

// NewValidator returns a validator working in loc. A nil clock means time.Now.
func NewValidator(loc *time.Location, now func() time.Time) *Validator {
	if loc == nil {
		loc = utils.Location()
	}
	if now == nil {
		now = time.Now
	}
	return &Validator{loc: loc, now: now}
}

// Location returns the civil zone the validator computes dates in.
func (v *Validator) Location() *time.Location {
	return v.loc
}

// ExcludedStatuses lists the statuses whose bookings never count against capacity.
func ExcludedStatuses(initial bool) []models.BookingStatus {
	if initial {
		return []models.BookingStatus{models.StatusCancelled, models.StatusRescheduled, models.StatusPending}
	}
	return []models.BookingStatus{models.StatusCancelled, models.StatusRescheduled}
}

// window is the resolved schedule of one day.
type window struct {
	day           time.Time // midnight of the candidate date
	businessStart time.Time // grid anchor, policy start
	openFrom      time.Time // policy start, narrowed by clinic hours
	openUntil     time.Time // policy end, narrowed by clinic hours
}

func (v *Validator) resolveWindow(policy models.BookingTimePolicy, date string, clinic *models.Clinic) (window, error) {
	day, err := utils.ParseDate(date, v.loc)
	if err != nil {
		return window{}, models.NewSlotError(models.CodeInvalidInput, err.Error())
	}
	start, err := models.ParseClock(policy.Start)
	if err != nil {
		return window{}, fmt.Errorf("policy start: %w", err)
	}
	end, err := models.ParseClock(policy.End)
	if err != nil {
		return window{}, fmt.Errorf("policy end: %w", err)
	}
	if policy.GapBetween <= 0 {
		return window{}, fmt.Errorf("policy gapBetween must be positive, got %d", policy.GapBetween)
	}

	w := window{
		day:           day,
		businessStart: at(day, start),
		openFrom:      at(day, start),
		openUntil:     at(day, end),
	}
	if clinic != nil {
		open, err := models.ParseClock(clinic.OpenTime)
		if err != nil {
			return window{}, fmt.Errorf("clinic %s openTime: %w", clinic.ID, err)
		}
		closing, err := models.ParseClock(clinic.CloseTime)
		if err != nil {
			return window{}, fmt.Errorf("clinic %s closeTime: %w", clinic.ID, err)
		}
		if o := at(day, open); o.After(w.openFrom) {
			w.openFrom = o
		}
		if c := at(day, closing); c.Before(w.openUntil) {
			w.openUntil = c
		}
	}
	return w, nil
}

// Validate runs the checks in order and returns the first rejection, nil on accept.
// Rejections are *models.SlotError; any other error means the policy or clinic document
// is malformed.
//
// existing must hold the category's bookings whose effective slot is on req.Date.
func (v *Validator) Validate(policy models.BookingTimePolicy, req Request, existing []models.Booking) error {
	w, err := v.resolveWindow(policy, req.Date, req.Clinic)
	if err != nil {
		return err
	}
	minutes, err := models.ParseClock(req.Time)
	if err != nil {
		return models.NewSlotError(models.CodeInvalidTimeSlot, err.Error())
	}
	instant := at(w.day, minutes)

	// 1. not in the past
	now := v.now().In(v.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, v.loc)
	if w.day.Before(today) {
		return models.NewSlotError(models.CodePastDate, fmt.Sprintf("%s is in the past", req.Date))
	}

	// 2. day not closed
	if policy.IsClosedOn(w.day.Weekday()) {
		return models.NewSlotError(models.CodeDayClosed,
			fmt.Sprintf("bookings are closed on %s", w.day.Weekday()))
	}

	// 3. within business hours
	if instant.Before(w.openFrom) || instant.After(w.openUntil) {
		return models.NewSlotError(models.CodeOutsideHours,
			fmt.Sprintf("%s is outside booking hours %s-%s", req.Time, w.openFrom.Format("15:04"), w.openUntil.Format("15:04")))
	}

	// 4. not disabled
	disabled, err := isDisabled(policy.DisabledTimeSlots, w.day, minutes)
	if err != nil {
		return err
	}
	if disabled {
		return models.NewSlotError(models.CodeDisabledTimeSlot, fmt.Sprintf("%s is not available for booking", req.Time))
	}

	// 5. aligned to the grid
	if !aligned(w.businessStart, instant, policy.GapBetween) {
		return models.NewSlotError(models.CodeInvalidTimeSlot,
			fmt.Sprintf("%s is not a valid slot; slots start at %s every %d minutes", req.Time, policy.Start, policy.GapBetween))
	}

	// 6. capacity
	taken := v.countHolding(existing, req, minutes, w)
	if taken >= policy.PerGapLimitBooking {
		return models.NewSlotError(models.CodeSlotFull,
			fmt.Sprintf("%s on %s is fully booked", req.Time, req.Date))
	}

	return nil
}

// countHolding counts the bookings occupying the candidate slot.
func (v *Validator) countHolding(existing []models.Booking, req Request, minutes int, w window) int {
	excluded := ExcludedStatuses(req.Initial)
	count := 0
	for _, b := range existing {
		if req.ExcludeBookingID != "" && b.ID == req.ExcludeBookingID {
			continue
		}
		if statusIn(b.Status, excluded) {
			continue
		}
		date, clock := b.Effective()
		if date != req.Date {
			continue
		}
		m, err := models.ParseClock(clock)
		if err != nil || m != minutes {
			continue
		}
		if req.Clinic != nil {
			if b.ClinicID != req.Clinic.ID {
				continue
			}
			if t := at(w.day, m); t.Before(w.openFrom) || t.After(w.openUntil) {
				continue
			}
		}
		count++
	}
	return count
}

func isDisabled(entries []models.DisabledTimeSlot, day time.Time, minutes int) (bool, error) {
	instant := at(day, minutes)
	for _, ds := range entries {
		switch ds.Type {
		case models.DisabledSingle:
			m, err := models.ParseClock(ds.Time)
			if err != nil {
				return false, fmt.Errorf("disabled slot: %w", err)
			}
			if m == minutes {
				return true, nil
			}
		case models.DisabledRange:
			rs, err := models.ParseClock(ds.Start)
			if err != nil {
				return false, fmt.Errorf("disabled range start: %w", err)
			}
			re, err := models.ParseClock(ds.End)
			if err != nil {
				return false, fmt.Errorf("disabled range end: %w", err)
			}
			if !instant.Before(at(day, rs)) && !instant.After(at(day, re)) {
				return true, nil
			}
		default:
			return false, fmt.Errorf("disabled slot has unknown type %q", ds.Type)
		}
	}
	return false, nil
}

func aligned(anchor, instant time.Time, gap int) bool {
	offset := int(instant.Sub(anchor) / time.Minute)
	return offset%gap == 0
}

func statusIn(s models.BookingStatus, set []models.BookingStatus) bool {
	for _, x := range set {
		if s == x {
			return true
		}
	}
	return false
}

// at returns the instant minutes after midnight of day, in day's zone.
func at(day time.Time, minutes int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, day.Location())
}
