package reservationRepo

import (
	"context"
	"fmt"
	"time"
)

// Key identifies one bookable slot across categories and clinics.
type Key struct {
	Category string
	ClinicID string
	Date     string
	Time     string
}

func (k Key) String() string {
	clinic := k.ClinicID
	if clinic == "" {
		clinic = "home"
	}
	return fmt.Sprintf("%s|%s|%s|%s", k.Category, clinic, k.Date, k.Time)
}

// ReservationRepository holds one seat document per booking occupying a slot. Seats are
// numbered 1..limit and each (slot, seat) pair can exist once, so concurrent writers for
// the last seat cannot both succeed.
type ReservationRepository interface {
	// Reserve takes a free seat of key for bookingID. A non-zero expiresAt makes the seat
	// a hold that any other booking may take over once it has passed; a zero one holds the
	// seat until it is released. When the booking already holds a seat of key, only its
	// expiry is updated. Returns models.ErrSlotFull when all seats are taken.
	Reserve(ctx context.Context, key Key, bookingID string, limit int, expiresAt time.Time) error
	// Release frees every seat held by bookingID except those of keep (zero Key keeps none).
	Release(ctx context.Context, bookingID string, keep Key) error
	EnsureIndexes(ctx context.Context) error
}
