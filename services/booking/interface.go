package booking

import (
	"context"

	"pawcare/models"
)

// CreateBookingInput is a customer's request for a new appointment.
type CreateBookingInput struct {
	Category    models.Category
	CustomerID  string
	PetID       string
	BookingType string
	ClinicID    string
	Date        string
	Time        string
	Contact     models.Contact
	Notes       string
}

// RescheduleInput moves an existing booking to a new slot. An empty CustomerID means the
// caller is an admin and ownership is not checked.
type RescheduleInput struct {
	Category   models.Category
	BookingID  string
	CustomerID string
	Date       string
	Time       string
}

// BookingService is the booking lifecycle shared by every service category.
type BookingService interface {
	Create(ctx context.Context, in CreateBookingInput) (*models.Booking, *models.PaymentOrder, error)
	Reschedule(ctx context.Context, in RescheduleInput) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id string, to models.BookingStatus, actor string) (*models.Booking, error)
	ConfirmPayment(ctx context.Context, id, orderID, customerID string) (*models.Booking, error)
	Get(ctx context.Context, id, customerID string) (*models.Booking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	Delete(ctx context.Context, id string) error
	Availability(ctx context.Context, category models.Category, date, clinicID string) ([]models.AvailableSlot, error)
}
