package tasks

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"pawcare/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (r *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func TestReminderTaskIDChangesWithSlot(t *testing.T) {
	a := ReminderTaskID("b-1", "2025-06-10", "10:00")
	b := ReminderTaskID("b-1", "2025-06-11", "10:00")
	assert.Equal(t, "reminder:b-1:2025-06-10T10:00", a)
	assert.NotEqual(t, a, b)
}

func TestScheduleEnqueuesPayload(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	q := &recordingEnqueuer{}
	s := NewAsynqReminderScheduler(q, time.Hour, func() time.Time { return now })

	b := &models.Booking{ID: "b-1", Category: models.CategoryLab, SelectedDate: "2025-06-03", SelectedTime: "09:00"}
	require.NoError(t, s.Schedule(context.Background(), b, now.Add(23*time.Hour)))
	require.Len(t, q.tasks, 1)
	assert.Equal(t, TypeSendReminder, q.tasks[0].Type())

	var p models.ReminderPayload
	require.NoError(t, json.Unmarshal(q.tasks[0].Payload(), &p))
	assert.Equal(t, "b-1", p.BookingID)
	assert.Equal(t, "2025-06-03", p.Date)
	assert.Equal(t, "09:00", p.Time)
}

func TestScheduleSkipsWhenLeadElapsed(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	q := &recordingEnqueuer{}
	s := NewAsynqReminderScheduler(q, time.Hour, func() time.Time { return now })

	b := &models.Booking{ID: "b-1", SelectedDate: "2025-06-02", SelectedTime: "10:30"}
	require.NoError(t, s.Schedule(context.Background(), b, now.Add(30*time.Minute)))
	assert.Empty(t, q.tasks)
}

func TestScheduleTreatsDuplicateAsDone(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	q := &recordingEnqueuer{err: asynq.ErrTaskIDConflict}
	s := NewAsynqReminderScheduler(q, time.Hour, func() time.Time { return now })

	b := &models.Booking{ID: "b-1", SelectedDate: "2025-06-03", SelectedTime: "09:00"}
	assert.NoError(t, s.Schedule(context.Background(), b, now.Add(24*time.Hour)))
}
