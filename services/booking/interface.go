package booking

import (
	"context"
	"time"

	requestRepo "sevahub/database/repository/request"
	userRepo "sevahub/database/repository/user"
	"sevahub/models"

	"go.uber.org/zap"
)

// BookingService covers slot browsing, request lifecycle and worker statistics.
type BookingService interface {
	SlotDay(ctx context.Context, workerID string, selector models.DateSelector, customDate string) (*models.SlotDay, error)
	CreateRequest(ctx context.Context, requester *models.UserProfile, in models.CreateRequestInput) (*models.ServiceRequest, error)
	GetRequest(ctx context.Context, caller *models.UserProfile, id string) (*models.ServiceRequest, error)
	ListRequests(ctx context.Context, caller *models.UserProfile) ([]models.ServiceRequest, error)
	ApplyAction(ctx context.Context, caller *models.UserProfile, id string, action Action) (*models.ServiceRequest, error)
	Rate(ctx context.Context, caller *models.UserProfile, id string, in models.RatingInput) (*models.ServiceRequest, error)

	GetWorker(ctx context.Context, id string) (*models.WorkerWithStats, error)
	ListWorkers(ctx context.Context, service string, includeInactive bool) ([]models.WorkerWithStats, error)
	Dashboard(ctx context.Context) (*models.DashboardTotals, error)

	StartSession(ctx context.Context, requester *models.UserProfile, in models.StartSessionInput) (*models.BookingResponse, error)
	SelectDate(ctx context.Context, requester *models.UserProfile, sessionID string, in models.SelectDateInput) (*models.BookingResponse, error)
	SelectSlot(ctx context.Context, requester *models.UserProfile, sessionID string, in models.SelectSlotInput) (*models.BookingResponse, error)
	ConfirmSession(ctx context.Context, requester *models.UserProfile, sessionID string) (*models.BookingResponse, error)
	CancelSession(ctx context.Context, requester *models.UserProfile, sessionID string) error
}

// Notifier tells the parties of a request about changes. Implementations must not block.
type Notifier interface {
	NotifyNewRequest(ctx context.Context, req *models.ServiceRequest)
	NotifyStatusChange(ctx context.Context, req *models.ServiceRequest)
}

// ReminderScheduler queues a reminder ahead of an accepted booking's slot.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, req *models.ServiceRequest, slotStart time.Time) error
}

// SessionStore persists in-progress booking sessions.
type SessionStore interface {
	Save(ctx context.Context, session *models.BookingSession) error
	Get(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Requests  requestRepo.RequestRepository
	Users     userRepo.UserRepository
	Sessions  SessionStore
	Notifier  Notifier          // optional
	Reminders ReminderScheduler // optional
	Logger    *zap.Logger
	Location  *time.Location
	Now       func() time.Time
}

// NewBookingService wires a service with the real clock.
func NewBookingService(
	requests requestRepo.RequestRepository,
	users userRepo.UserRepository,
	sessions SessionStore,
	notifier Notifier,
	reminders ReminderScheduler,
	logger *zap.Logger,
	loc *time.Location,
) *DefaultBookingService {
	return &DefaultBookingService{
		Requests:  requests,
		Users:     users,
		Sessions:  sessions,
		Notifier:  notifier,
		Reminders: reminders,
		Logger:    logger,
		Location:  loc,
		Now:       time.Now,
	}
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now == nil {
		return time.Now().In(s.loc())
	}
	return s.Now().In(s.loc())
}

func (s *DefaultBookingService) loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}
