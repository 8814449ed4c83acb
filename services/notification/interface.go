package notification

import (
	"context"
	"errors"
	"fmt"

	requestRepo "sevahub/database/repository/request"
	userRepo "sevahub/database/repository/user"
	"sevahub/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Messenger sends a single push. *messaging.Client satisfies it.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// RequestLookup loads the current state of a request.
type RequestLookup interface {
	GetByID(ctx context.Context, id string) (*models.ServiceRequest, error)
}

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendPushNotification(ctx context.Context, accountID, title, body string, data map[string]string) error
	SendReminder(ctx context.Context, payload models.ReminderPayload) error
	NotifyNewRequest(ctx context.Context, req *models.ServiceRequest)
	NotifyStatusChange(ctx context.Context, req *models.ServiceRequest)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users     userRepo.UserRepository
	Requests  RequestLookup // nil sends reminders without a status check
	Messenger Messenger     // nil disables pushes
	Logger    *zap.Logger

	// async runs fire-and-forget sends; tests replace it to run inline.
	async func(func())
}

func NewDefaultNotificationService(users userRepo.UserRepository, requests RequestLookup, messenger Messenger, logger *zap.Logger) (*DefaultNotificationService, error) {
	if users == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository is nil")
	}
	return &DefaultNotificationService{
		Users:     users,
		Requests:  requests,
		Messenger: messenger,
		Logger:    logger,
		async:     func(f func()) { go f() },
	}, nil
}

// SendPushNotification looks up an account's FCM token and sends a push.
func (s *DefaultNotificationService) SendPushNotification(
	ctx context.Context,
	accountID, title, body string,
	data map[string]string,
) error {
	if s.Messenger == nil {
		return nil
	}
	account, err := s.Users.GetByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("SendPushNotification: could not find account %s: %w", accountID, err)
	}
	if account.FCMToken == "" {
		s.Logger.Debug("Account has no FCM token, skipping push", zap.String("accountId", accountID))
		return nil
	}

	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = string(account.Role)
	}

	msg := &messaging.Message{
		Token: account.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := s.Messenger.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendPushNotification: failed to send FCM message: %w", err)
	}
	return nil
}

// SendReminder delivers a scheduled reminder to its recipient, unless the job
// has already finished or was withdrawn.
func (s *DefaultNotificationService) SendReminder(ctx context.Context, p models.ReminderPayload) error {
	if p.Target != models.RoleUser && p.Target != models.RoleWorker {
		s.Logger.Warn("Unknown reminder target", zap.String("target", string(p.Target)))
		return nil
	}
	if s.Requests != nil && p.RequestID != "" {
		req, err := s.Requests.GetByID(ctx, p.RequestID)
		if errors.Is(err, requestRepo.ErrNotFound) {
			s.Logger.Info("Dropping reminder for missing request", zap.String("requestId", p.RequestID))
			return nil
		}
		if err != nil {
			return fmt.Errorf("SendReminder: could not load request %s: %w", p.RequestID, err)
		}
		if req.Status.IsTerminal() || req.Status == models.StatusWorkerCompleted {
			s.Logger.Info("Dropping reminder for finished request",
				zap.String("requestId", p.RequestID), zap.String("status", string(req.Status)))
			return nil
		}
	}
	return s.SendPushNotification(ctx, p.ID, p.Title, p.Body, map[string]string{
		"type":       "reminder",
		"reminderId": p.ReminderID,
		"requestId":  p.RequestID,
		"fireDate":   p.FireDate,
		"role":       string(p.Target),
	})
}
