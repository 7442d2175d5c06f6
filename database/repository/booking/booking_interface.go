package bookingRepo

import (
	"context"

	"pawcare/models"
)

// BookingRepository persists bookings of every category.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListOnDate returns the category's bookings whose effective slot is on date, minus
	// those in an excluded status. An empty clinicID matches every clinic.
	ListOnDate(ctx context.Context, category models.Category, date, clinicID string, excluded []models.BookingStatus) ([]models.Booking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	// UpdateSchedule writes the schedule, status and history fields, provided the stored
	// status still equals prev. It returns models.ErrStaleBooking otherwise.
	UpdateSchedule(ctx context.Context, booking *models.Booking, prev models.BookingStatus) error
	// UpdateStatus writes the status, history and payment fields under the same guard.
	UpdateStatus(ctx context.Context, booking *models.Booking, prev models.BookingStatus) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}
