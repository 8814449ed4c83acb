package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sevahub/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(payload.ReminderID),
		asynq.MaxRetry(3),
	}

	return task, opts, nil
}

// Enqueuer is the part of *asynq.Client used to schedule reminders.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqReminderScheduler queues reminder pushes for both parties ahead of a booked slot.
type AsynqReminderScheduler struct {
	Client Enqueuer
	Lead   time.Duration
	Logger *zap.Logger
	Now    func() time.Time
}

func NewAsynqReminderScheduler(client Enqueuer, lead time.Duration, logger *zap.Logger) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{Client: client, Lead: lead, Logger: logger, Now: time.Now}
}

// ScheduleReminder enqueues the reminders. Nothing is queued when the fire time has passed.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, req *models.ServiceRequest, slotStart time.Time) error {
	fireAt := slotStart.Add(-s.Lead)
	if !fireAt.After(s.Now()) {
		s.Logger.Debug("Reminder time already passed, skipping", zap.String("requestId", req.ID))
		return nil
	}

	for _, p := range reminderPayloads(req, fireAt) {
		task, opts, err := NewReminderTask(p, fireAt)
		if err != nil {
			return fmt.Errorf("failed to build reminder task: %w", err)
		}
		if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
			return fmt.Errorf("failed to enqueue reminder: %w", err)
		}
		s.Logger.Info("Reminder scheduled",
			zap.String("requestId", req.ID),
			zap.String("target", string(p.Target)),
			zap.Time("fireAt", fireAt))
	}
	return nil
}

func reminderPayloads(req *models.ServiceRequest, fireAt time.Time) []models.ReminderPayload {
	fireDate := fireAt.Format(time.RFC3339)
	batch := uuid.New().String()
	return []models.ReminderPayload{
		{
			ReminderID: batch + "-user",
			RequestID:  req.ID,
			Target:     models.RoleUser,
			ID:         req.UserID,
			Title:      "Upcoming service",
			Body:       fmt.Sprintf("%s is booked for %s at %s.", req.WorkerName, req.ServiceType, req.SlotTime),
			FireDate:   fireDate,
		},
		{
			ReminderID: batch + "-worker",
			RequestID:  req.ID,
			Target:     models.RoleWorker,
			ID:         req.WorkerID,
			Title:      "Upcoming job",
			Body:       fmt.Sprintf("%s job for %s in %s at %s.", req.ServiceType, req.UserName, req.UserVillage, req.SlotTime),
			FireDate:   fireDate,
		},
	}
}
