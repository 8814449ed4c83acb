package booking

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	requestRepo "sevahub/database/repository/request"
	userRepo "sevahub/database/repository/user"
	"sevahub/models"

	"go.uber.org/zap"
)

const maxDescriptionLength = 1000

// bookableWorker loads an active worker account.
func (s *DefaultBookingService) bookableWorker(ctx context.Context, workerID string) (*models.UserProfile, error) {
	worker, err := s.Users.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	if worker.Role != models.RoleWorker {
		return nil, ErrWorkerNotFound
	}
	if !worker.Active() {
		return nil, ErrWorkerUnavailable
	}
	return worker, nil
}

// SlotDay lists a worker's slots for the selected date with their availability.
func (s *DefaultBookingService) SlotDay(ctx context.Context, workerID string, selector models.DateSelector, customDate string) (*models.SlotDay, error) {
	worker, err := s.bookableWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}
	target, err := ResolveTargetDate(selector, customDate, s.now(), s.loc())
	if err != nil {
		return nil, invalid("date", "%v", err)
	}
	return s.slotDay(ctx, worker, target.Format(DateLayout))
}

func (s *DefaultBookingService) slotDay(ctx context.Context, worker *models.UserProfile, slotDate string) (*models.SlotDay, error) {
	target, err := ResolveTargetDate(models.DateCustom, slotDate, s.now(), s.loc())
	if err != nil {
		return nil, invalid("date", "%v", err)
	}
	existing, err := s.Requests.ListByWorker(ctx, worker.ID)
	if err != nil {
		return nil, err
	}
	day := BuildSlotDay(worker.ID, worker.EffectiveWorkingHours(), target, s.now(), existing)
	return &day, nil
}

func requesterVillage(u *models.UserProfile) string {
	if u.Village != "" {
		return u.Village
	}
	return u.Location.Village
}

// CreateRequest books a worker's slot for the requester. The new request starts pending.
func (s *DefaultBookingService) CreateRequest(ctx context.Context, requester *models.UserProfile, in models.CreateRequestInput) (*models.ServiceRequest, error) {
	if requester.Role != models.RoleUser {
		return nil, ErrUsersOnly
	}
	in.ServiceType = strings.TrimSpace(in.ServiceType)
	in.Description = strings.TrimSpace(in.Description)
	switch {
	case in.WorkerID == "":
		return nil, invalid("workerId", "is required")
	case in.ServiceType == "":
		return nil, invalid("serviceType", "is required")
	case in.SlotDate == "":
		return nil, invalid("slotDate", "is required")
	case strings.TrimSpace(in.SlotTime) == "":
		return nil, invalid("slotTime", "is required")
	case utf8.RuneCountInString(in.Description) > maxDescriptionLength:
		return nil, invalid("description", "must be at most %d characters", maxDescriptionLength)
	}

	worker, err := s.bookableWorker(ctx, in.WorkerID)
	if err != nil {
		return nil, err
	}
	if worker.ID == requester.ID {
		return nil, invalid("workerId", "cannot book yourself")
	}
	if len(worker.Services) > 0 && !worker.OffersService(in.ServiceType) {
		return nil, invalid("serviceType", "worker does not offer %q", in.ServiceType)
	}

	slotTime := FormatClock(ParseClock(in.SlotTime))
	if !IsOfferedSlot(worker.EffectiveWorkingHours(), slotTime) {
		return nil, invalid("slotTime", "%s is outside the worker's hours", in.SlotTime)
	}
	day, err := s.slotDay(ctx, worker, in.SlotDate)
	if err != nil {
		return nil, err
	}
	for _, v := range day.Slots {
		if v.Time != slotTime || !v.Blocked {
			continue
		}
		if v.BlockReason == models.SlotBlockedPast {
			return nil, invalid("slotTime", "%s has already started", slotTime)
		}
		return nil, ErrSlotTaken
	}

	target, _ := ResolveTargetDate(models.DateCustom, day.Date, s.now(), s.loc())
	description := strings.TrimSpace(in.Description + " " + SlotMarker(slotTime, target))

	req := &models.ServiceRequest{
		UserID:      requester.ID,
		UserName:    requester.Name,
		UserVillage: requesterVillage(requester),
		WorkerID:    worker.ID,
		WorkerName:  worker.Name,
		ServiceType: in.ServiceType,
		Status:      models.StatusPending,
		Description: description,
		Date:        s.now(),
		SlotDate:    day.Date,
		SlotTime:    slotTime,
		SlotKey:     SlotKey(worker.ID, day.Date, slotTime),
	}
	if err := s.Requests.Create(ctx, req); err != nil {
		return nil, err
	}

	s.Logger.Info("Request created",
		zap.String("requestId", req.ID),
		zap.String("workerId", req.WorkerID),
		zap.String("slot", req.SlotKey))
	if s.Notifier != nil {
		s.Notifier.NotifyNewRequest(ctx, req)
	}
	req.Timeline = models.BuildTimeline(req.Status)
	return req, nil
}

// GetRequest returns a request the caller is party to, or any request for admins.
func (s *DefaultBookingService) GetRequest(ctx context.Context, caller *models.UserProfile, id string) (*models.ServiceRequest, error) {
	req, err := s.Requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role != models.RoleAdmin && !req.IsParty(caller.ID) {
		return nil, ErrForbidden
	}
	req.Timeline = models.BuildTimeline(req.Status)
	return req, nil
}

// ListRequests returns the caller's requests newest first: a worker's jobs,
// a user's bookings, or everything for admins.
func (s *DefaultBookingService) ListRequests(ctx context.Context, caller *models.UserProfile) ([]models.ServiceRequest, error) {
	var (
		reqs []models.ServiceRequest
		err  error
	)
	switch caller.Role {
	case models.RoleAdmin:
		reqs, err = s.Requests.ListAll(ctx)
	case models.RoleWorker:
		reqs, err = s.Requests.ListByWorker(ctx, caller.ID)
	default:
		reqs, err = s.Requests.ListByUser(ctx, caller.ID)
	}
	if err != nil {
		return nil, err
	}
	for i := range reqs {
		reqs[i].Timeline = models.BuildTimeline(reqs[i].Status)
	}
	return reqs, nil
}

// ApplyAction moves a request through its lifecycle on behalf of one of its parties.
func (s *DefaultBookingService) ApplyAction(ctx context.Context, caller *models.UserProfile, id string, action Action) (*models.ServiceRequest, error) {
	req, err := s.Requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !req.IsParty(caller.ID) {
		return nil, ErrForbidden
	}
	actor := models.RoleUser
	if req.WorkerID == caller.ID {
		actor = models.RoleWorker
	}

	next, err := NextState(req.Status, action, actor)
	if err != nil {
		return nil, err
	}
	if next == req.Status {
		req.Timeline = models.BuildTimeline(req.Status)
		return req, nil
	}

	updated, err := s.Requests.UpdateStatus(ctx, req.ID, req.Status, next)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("Request status changed",
		zap.String("requestId", updated.ID),
		zap.String("action", string(action)),
		zap.String("from", string(req.Status)),
		zap.String("to", string(updated.Status)))

	if updated.Status == models.StatusAccepted && s.Reminders != nil {
		if start, ok := SlotStart(*updated, s.loc()); ok {
			if err := s.Reminders.ScheduleReminder(ctx, updated, start); err != nil {
				s.Logger.Warn("Failed to schedule reminder", zap.String("requestId", updated.ID), zap.Error(err))
			}
		}
	}
	if s.Notifier != nil {
		s.Notifier.NotifyStatusChange(ctx, updated)
	}
	updated.Timeline = models.BuildTimeline(updated.Status)
	return updated, nil
}

// Rate attaches the requester's rating and feedback to a completed request, once.
func (s *DefaultBookingService) Rate(ctx context.Context, caller *models.UserProfile, id string, in models.RatingInput) (*models.ServiceRequest, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, invalid("rating", "must be between 1 and 5")
	}
	in.Feedback = strings.TrimSpace(in.Feedback)
	if utf8.RuneCountInString(in.Feedback) > maxDescriptionLength {
		return nil, invalid("feedback", "must be at most %d characters", maxDescriptionLength)
	}

	req, err := s.Requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.UserID != caller.ID {
		return nil, ErrForbidden
	}
	if req.Rating != nil {
		return nil, ErrAlreadyRated
	}
	if req.Status != models.StatusCompleted {
		return nil, ErrNotRatable
	}

	updated, err := s.Requests.SetRating(ctx, id, in.Rating, in.Feedback, s.now())
	if err != nil {
		// Completed is terminal, so a failed conditional write means a rating won the race.
		if errors.Is(err, requestRepo.ErrNotRatable) {
			return nil, ErrAlreadyRated
		}
		return nil, err
	}
	s.Logger.Info("Request rated", zap.String("requestId", id), zap.Int("rating", in.Rating))
	updated.Timeline = models.BuildTimeline(updated.Status)
	return updated, nil
}
