package models

import (
	"errors"
	"fmt"
)

// Reason codes returned to clients. The vocabulary is stable: clients switch on it.
const (
	CodePastDate          = "PAST_DATE"
	CodeDayClosed         = "DAY_CLOSED"
	CodeOutsideHours      = "OUTSIDE_HOURS"
	CodeDisabledTimeSlot  = "DISABLED_TIME_SLOT"
	CodeInvalidTimeSlot   = "INVALID_TIME_SLOT"
	CodeSlotFull          = "SLOT_FULL"
	CodeAlreadyFinalized  = "ALREADY_FINALIZED"
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidID         = "INVALID_ID"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInvalidInput      = "INVALID_INPUT"
)

// ErrBookingNotFound is returned by repositories when no booking matches.
var ErrBookingNotFound = errors.New("booking not found")

// ErrSettingsNotFound is returned when a category has no stored settings.
var ErrSettingsNotFound = errors.New("category settings not found")

// ErrClinicNotFound is returned when a clinic id does not resolve.
var ErrClinicNotFound = errors.New("clinic not found")

// SlotError is a client-correctable rejection carrying a reason code.
type SlotError struct {
	Code    string
	Message string
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewSlotError builds a rejection with the given code.
func NewSlotError(code, msg string) error {
	return &SlotError{Code: code, Message: msg}
}

// RejectionCode extracts the reason code from err, or "" when err is not a rejection.
func RejectionCode(err error) string {
	var se *SlotError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// ErrStaleBooking is returned when a guarded update finds the booking in a different
// status than the one it was read in.
var ErrStaleBooking = errors.New("booking was modified concurrently")

// ErrSlotFull is returned by the reservation store when every seat of a slot is held.
var ErrSlotFull = errors.New("slot capacity exhausted")
