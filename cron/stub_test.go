package cron

import (
	"context"

	bookingRepo "pawcare/database/repository/booking"
	"pawcare/models"
)

// bookingRepoStub satisfies the parts of BookingRepository the worker never calls.
type bookingRepoStub struct{}

var _ bookingRepo.BookingRepository = (*stubBookings)(nil)

func (bookingRepoStub) Create(context.Context, *models.Booking) error { return nil }
func (bookingRepoStub) GetByID(context.Context, string) (*models.Booking, error) {
	return nil, models.ErrBookingNotFound
}
func (bookingRepoStub) ListOnDate(context.Context, models.Category, string, string, []models.BookingStatus) ([]models.Booking, error) {
	return nil, nil
}
func (bookingRepoStub) ListByCustomer(context.Context, string) ([]models.Booking, error) {
	return nil, nil
}
func (bookingRepoStub) UpdateSchedule(context.Context, *models.Booking, models.BookingStatus) error {
	return nil
}
func (bookingRepoStub) UpdateStatus(context.Context, *models.Booking, models.BookingStatus) error {
	return nil
}
func (bookingRepoStub) Delete(context.Context, string) error { return nil }
func (bookingRepoStub) EnsureIndexes(context.Context) error { return nil }
