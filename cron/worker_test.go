package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"pawcare/models"
	"pawcare/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBookings struct {
	bookingRepoStub
	docs map[string]models.Booking
}

func (s *stubBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := s.docs[id]
	if !ok {
		return nil, models.ErrBookingNotFound
	}
	return &b, nil
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyReschedule(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockNotifier) NotifyStatus(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockNotifier) SendReminder(ctx context.Context, b *models.Booking, p models.ReminderPayload) error {
	return m.Called(ctx, b, p).Error(0)
}

func reminderTask(t *testing.T, id, date, clock string) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(models.ReminderPayload{BookingID: id, Date: date, Time: clock})
	require.NoError(t, err)
	return asynq.NewTask(tasks.TypeSendReminder, data)
}

func TestHandleReminderTask(t *testing.T) {
	repo := &stubBookings{docs: map[string]models.Booking{
		"active":    {ID: "active", Status: models.StatusConfirmed, SelectedDate: "2025-06-03", SelectedTime: "10:00"},
		"moved":     {ID: "moved", Status: models.StatusRescheduled, SelectedDate: "2025-06-03", SelectedTime: "10:00", RescheduledDate: "2025-06-04", RescheduledTime: "11:00"},
		"cancelled": {ID: "cancelled", Status: models.StatusCancelled, SelectedDate: "2025-06-03", SelectedTime: "10:00"},
	}}
	notifier := new(mockNotifier)
	notifier.On("SendReminder", mock.Anything, mock.MatchedBy(func(b *models.Booking) bool { return b.ID == "active" }), mock.Anything).
		Return(nil).Once()

	handler := HandleReminderTask(repo, notifier, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, handler(ctx, reminderTask(t, "active", "2025-06-03", "10:00")))
	require.NoError(t, handler(ctx, reminderTask(t, "moved", "2025-06-03", "10:00")))
	require.NoError(t, handler(ctx, reminderTask(t, "cancelled", "2025-06-03", "10:00")))
	require.NoError(t, handler(ctx, reminderTask(t, "gone", "2025-06-03", "10:00")))

	notifier.AssertExpectations(t)
}

func TestHandleReminderTaskRetriesDeliveryFailure(t *testing.T) {
	repo := &stubBookings{docs: map[string]models.Booking{
		"active": {ID: "active", Status: models.StatusConfirmed, SelectedDate: "2025-06-03", SelectedTime: "10:00"},
	}}
	notifier := new(mockNotifier)
	notifier.On("SendReminder", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("fcm down"))

	err := HandleReminderTask(repo, notifier, zap.NewNop())(context.Background(), reminderTask(t, "active", "2025-06-03", "10:00"))
	assert.Error(t, err)
}

func TestHandleReminderTaskBadPayload(t *testing.T) {
	handler := HandleReminderTask(&stubBookings{}, new(mockNotifier), zap.NewNop())
	err := handler(context.Background(), asynq.NewTask(tasks.TypeSendReminder, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
