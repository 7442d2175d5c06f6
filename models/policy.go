package models

import (
	"fmt"
	"strings"
	"time"
)

// Disabled slot kinds.
const (
	DisabledSingle = "single"
	DisabledRange  = "range"
)

// DisabledTimeSlot blocks either one instant (Type "single", Time set) or an inclusive
// [Start, End] range (Type "range") inside open hours.
type DisabledTimeSlot struct {
	Type  string `bson:"type" json:"type"`
	Time  string `bson:"time,omitempty" json:"time,omitempty"`
	Start string `bson:"start,omitempty" json:"start,omitempty"`
	End   string `bson:"end,omitempty" json:"end,omitempty"`
}

// BookingTimePolicy is the admin-configured schedule of one service category.
type BookingTimePolicy struct {
	Start                 string             `bson:"start" json:"start"`                                 // "HH:MM", 24h
	End                   string             `bson:"end" json:"end"`                                     // "HH:MM", 24h
	GapBetween            int                `bson:"gapBetween" json:"gapBetween"`                       // slot grid in minutes
	PerGapLimitBooking    int                `bson:"perGapLimitBooking" json:"perGapLimitBooking"`       // capacity per slot
	WhichDayBookingClosed []string           `bson:"whichDayBookingClosed" json:"whichDayBookingClosed"` // weekday names
	DisabledTimeSlots     []DisabledTimeSlot `bson:"disabledTimeSlots" json:"disabledTimeSlots"`
}

// CategorySettings is the settings document stored per category.
type CategorySettings struct {
	Category  Category          `bson:"category" json:"category"`
	Policy    BookingTimePolicy `bson:"policy" json:"policy"`
	Fee       int64             `bson:"fee" json:"fee"` // minor currency units
	Currency  string            `bson:"currency" json:"currency"`
	UpdatedAt time.Time         `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy string            `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
}

// ParseClock converts "HH:MM" (24h) into minutes after midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes after midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// IsClosedOn reports whether bookings are closed on the given weekday.
func (p BookingTimePolicy) IsClosedOn(day time.Weekday) bool {
	for _, name := range p.WhichDayBookingClosed {
		if strings.EqualFold(strings.TrimSpace(name), day.String()) {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of the policy.
func (p BookingTimePolicy) Validate() error {
	start, err := ParseClock(p.Start)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	end, err := ParseClock(p.End)
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}
	if start >= end {
		return fmt.Errorf("start %s must be before end %s", p.Start, p.End)
	}
	if p.GapBetween <= 0 {
		return fmt.Errorf("gapBetween must be positive, got %d", p.GapBetween)
	}
	if p.PerGapLimitBooking <= 0 {
		return fmt.Errorf("perGapLimitBooking must be positive, got %d", p.PerGapLimitBooking)
	}
	for _, day := range p.WhichDayBookingClosed {
		if _, ok := weekdayByName(day); !ok {
			return fmt.Errorf("unknown weekday %q in whichDayBookingClosed", day)
		}
	}

	within := func(m int) bool { return m >= start && m < end }
	for i, ds := range p.DisabledTimeSlots {
		switch ds.Type {
		case DisabledSingle:
			m, err := ParseClock(ds.Time)
			if err != nil {
				return fmt.Errorf("disabledTimeSlots[%d]: %w", i, err)
			}
			if !within(m) {
				return fmt.Errorf("disabledTimeSlots[%d]: %s is outside %s-%s", i, ds.Time, p.Start, p.End)
			}
		case DisabledRange:
			rs, err := ParseClock(ds.Start)
			if err != nil {
				return fmt.Errorf("disabledTimeSlots[%d].start: %w", i, err)
			}
			re, err := ParseClock(ds.End)
			if err != nil {
				return fmt.Errorf("disabledTimeSlots[%d].end: %w", i, err)
			}
			if rs >= re {
				return fmt.Errorf("disabledTimeSlots[%d]: range start must be before end", i)
			}
			if !within(rs) || re > end {
				return fmt.Errorf("disabledTimeSlots[%d]: range %s-%s is outside %s-%s", i, ds.Start, ds.End, p.Start, p.End)
			}
		default:
			return fmt.Errorf("disabledTimeSlots[%d]: unknown type %q", i, ds.Type)
		}
	}
	return nil
}

func weekdayByName(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(strings.TrimSpace(name), d.String()) {
			return d, true
		}
	}
	return 0, false
}
