package booking

import (
	"context"
	"strings"

	"sevahub/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartSession opens a booking session for a worker with today preselected.
func (s *DefaultBookingService) StartSession(ctx context.Context, requester *models.UserProfile, in models.StartSessionInput) (*models.BookingResponse, error) {
	if requester.Role != models.RoleUser {
		return nil, ErrUsersOnly
	}
	if strings.TrimSpace(in.ServiceType) == "" {
		return nil, invalid("serviceType", "is required")
	}
	worker, err := s.bookableWorker(ctx, in.WorkerID)
	if err != nil {
		return nil, err
	}

	today := s.now().Format(DateLayout)
	day, err := s.slotDay(ctx, worker, today)
	if err != nil {
		return nil, err
	}

	session := &models.BookingSession{
		SessionID:    uuid.New().String(),
		UserID:       requester.ID,
		WorkerID:     worker.ID,
		ServiceType:  strings.TrimSpace(in.ServiceType),
		Description:  strings.TrimSpace(in.Description),
		DateSelector: models.DateToday,
		SelectedDate: today,
		CreatedAt:    s.now(),
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return &models.BookingResponse{Session: session, SlotDay: day}, nil
}

// loadSession returns the requester's session. Sessions of other accounts read as missing.
func (s *DefaultBookingService) loadSession(ctx context.Context, requester *models.UserProfile, sessionID string) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != requester.ID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// SelectDate changes the session's date and clears any chosen slot.
func (s *DefaultBookingService) SelectDate(ctx context.Context, requester *models.UserProfile, sessionID string, in models.SelectDateInput) (*models.BookingResponse, error) {
	session, err := s.loadSession(ctx, requester, sessionID)
	if err != nil {
		return nil, err
	}
	target, err := ResolveTargetDate(in.Selector, in.Date, s.now(), s.loc())
	if err != nil {
		return nil, invalid("date", "%v", err)
	}
	worker, err := s.bookableWorker(ctx, session.WorkerID)
	if err != nil {
		return nil, err
	}
	day, err := s.slotDay(ctx, worker, target.Format(DateLayout))
	if err != nil {
		return nil, err
	}

	session.DateSelector = in.Selector
	session.SelectedDate = day.Date
	session.SelectedSlot = ""
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return &models.BookingResponse{Session: session, SlotDay: day}, nil
}

// SelectSlot picks an available slot on the session's date.
func (s *DefaultBookingService) SelectSlot(ctx context.Context, requester *models.UserProfile, sessionID string, in models.SelectSlotInput) (*models.BookingResponse, error) {
	session, err := s.loadSession(ctx, requester, sessionID)
	if err != nil {
		return nil, err
	}
	if session.SelectedDate == "" {
		return nil, invalid("date", "choose a date first")
	}
	worker, err := s.bookableWorker(ctx, session.WorkerID)
	if err != nil {
		return nil, err
	}
	day, err := s.slotDay(ctx, worker, session.SelectedDate)
	if err != nil {
		return nil, err
	}

	slot := FormatClock(ParseClock(in.Slot))
	found := false
	for _, v := range day.Slots {
		if v.Time != slot {
			continue
		}
		found = true
		if v.BlockReason == models.SlotBlockedPast {
			return nil, invalid("slot", "%s has already started", slot)
		}
		if v.Blocked {
			return nil, ErrSlotTaken
		}
	}
	if !found {
		return nil, invalid("slot", "%s is not offered on %s", in.Slot, day.Date)
	}

	session.SelectedSlot = slot
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return &models.BookingResponse{Session: session, SlotDay: day}, nil
}

// ConfirmSession turns the session's selection into a request and closes the session.
func (s *DefaultBookingService) ConfirmSession(ctx context.Context, requester *models.UserProfile, sessionID string) (*models.BookingResponse, error) {
	session, err := s.loadSession(ctx, requester, sessionID)
	if err != nil {
		return nil, err
	}
	if session.SelectedSlot == "" {
		return nil, invalid("slot", "choose a slot first")
	}

	req, err := s.CreateRequest(ctx, requester, models.CreateRequestInput{
		WorkerID:    session.WorkerID,
		ServiceType: session.ServiceType,
		Description: session.Description,
		SlotDate:    session.SelectedDate,
		SlotTime:    session.SelectedSlot,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		s.Logger.Warn("Failed to delete confirmed booking session", zap.String("sessionId", sessionID), zap.Error(err))
	}
	return &models.BookingResponse{Request: req}, nil
}

// CancelSession discards the requester's session.
func (s *DefaultBookingService) CancelSession(ctx context.Context, requester *models.UserProfile, sessionID string) error {
	if _, err := s.loadSession(ctx, requester, sessionID); err != nil {
		return err
	}
	return s.Sessions.Delete(ctx, sessionID)
}
