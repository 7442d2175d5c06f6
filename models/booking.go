package models

import "time"

// Booking types.
const (
	BookingTypeHome   = "home"
	BookingTypeClinic = "clinic"
)

// Contact carries the channels used to reach the customer about this booking.
type Contact struct {
	FCMToken string `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"` // E.164, used for WhatsApp
	Name     string `bson:"name,omitempty" json:"name,omitempty"`
}

// PaymentInfo is the payment-order state attached to a booking.
type PaymentInfo struct {
	OrderID  string `bson:"orderId,omitempty" json:"orderId,omitempty"`
	Amount   int64  `bson:"amount" json:"amount"`
	Currency string `bson:"currency,omitempty" json:"currency,omitempty"`
	Status   string `bson:"status,omitempty" json:"status,omitempty"`
}

// Booking is one appointment in a service category.
type Booking struct {
	ID              string         `bson:"id" json:"id"` // UUID
	Category        Category       `bson:"category" json:"category"`
	CustomerID      string         `bson:"customerId" json:"customerId"`
	PetID           string         `bson:"petId,omitempty" json:"petId,omitempty"`
	BookingType     string         `bson:"bookingType" json:"bookingType"` // "home" or "clinic"
	ClinicID        string         `bson:"clinicId,omitempty" json:"clinicId,omitempty"`
	SelectedDate    string         `bson:"selectedDate" json:"selectedDate"` // "YYYY-MM-DD"
	SelectedTime    string         `bson:"selectedTime" json:"selectedTime"` // "HH:MM"
	RescheduledDate string         `bson:"rescheduledDate,omitempty" json:"rescheduledDate,omitempty"`
	RescheduledTime string         `bson:"rescheduledTime,omitempty" json:"rescheduledTime,omitempty"`
	EffectiveDate   string         `bson:"effectiveDate" json:"-"` // denormalized for slot queries
	EffectiveTime   string         `bson:"effectiveTime" json:"-"`
	Status          BookingStatus  `bson:"status" json:"status"`
	Contact         Contact        `bson:"contact" json:"contact"`
	Payment         PaymentInfo    `bson:"payment" json:"payment"`
	Notes           string         `bson:"notes,omitempty" json:"notes,omitempty"`
	History         []StatusChange `bson:"history,omitempty" json:"history,omitempty"`
	CreatedAt       time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// Effective returns the slot the booking currently occupies: the rescheduled pair when
// present, the original one otherwise.
func (b Booking) Effective() (date, clock string) {
	if b.RescheduledDate != "" && b.RescheduledTime != "" {
		return b.RescheduledDate, b.RescheduledTime
	}
	return b.SelectedDate, b.SelectedTime
}

// SyncEffective refreshes the denormalized effective slot fields.
func (b *Booking) SyncEffective() {
	b.EffectiveDate, b.EffectiveTime = b.Effective()
}

// Transition moves the booking to next and appends a history entry. The caller is
// expected to have checked CanTransition.
func (b *Booking) Transition(next BookingStatus, by string, at time.Time) {
	b.History = append(b.History, StatusChange{From: b.Status, To: next, At: at, By: by})
	b.Status = next
	b.UpdatedAt = at
}

// Clinic is a physical location with its own opening hours.
type Clinic struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	OpenTime  string `bson:"openTime" json:"openTime"`   // "HH:MM"
	CloseTime string `bson:"closeTime" json:"closeTime"` // "HH:MM"
	Address   string `bson:"address,omitempty" json:"address,omitempty"`
}

// AvailableSlot is one bookable grid position with its remaining capacity.
type AvailableSlot struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Remaining int    `json:"remaining"`
	Capacity  int    `json:"capacity"`
}
