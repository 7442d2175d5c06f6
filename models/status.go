package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending     BookingStatus = "Pending"
	StatusConfirmed   BookingStatus = "Confirmed"
	StatusCancelled   BookingStatus = "Cancelled"
	StatusCompleted   BookingStatus = "Completed"
	StatusFacingError BookingStatus = "Facing Error"
	StatusRescheduled BookingStatus = "Rescheduled"
)

// transitions lists the statuses reachable from each state. Terminal states map to nothing.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:     {StatusConfirmed, StatusFacingError, StatusRescheduled, StatusCancelled},
	StatusFacingError: {StatusConfirmed, StatusRescheduled, StatusCancelled},
	StatusConfirmed:   {StatusRescheduled, StatusCompleted, StatusCancelled},
	StatusRescheduled: {StatusRescheduled, StatusConfirmed, StatusCompleted, StatusCancelled},
	StatusCancelled:   nil,
	StatusCompleted:   nil,
}

// ParseBookingStatus returns the status matching s exactly.
func ParseBookingStatus(s string) (BookingStatus, error) {
	st := BookingStatus(s)
	if _, ok := transitions[st]; !ok {
		return "", fmt.Errorf("unknown booking status %q", s)
	}
	return st, nil
}

// IsTerminal reports whether no further transition is permitted.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransition reports whether moving from s to next is legal.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) String() string {
	return string(s)
}

func (s *BookingStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	st, err := ParseBookingStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// StatusChange records one transition in a booking's history.
type StatusChange struct {
	From BookingStatus `bson:"from" json:"from"`
	To   BookingStatus `bson:"to" json:"to"`
	At   time.Time     `bson:"at" json:"at"`
	By   string        `bson:"by,omitempty" json:"by,omitempty"`
}
