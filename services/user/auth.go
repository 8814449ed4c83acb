package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sevahub/models"
	"sevahub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionPending  = "pending"
	sessionVerified = "verified"

	// registrationWindow is how long a verified phone may finish registering.
	registrationWindow = 15 * time.Minute
)

// RequestOTP sends a login code to phone and returns the auth session id to verify it against.
func (s *DefaultUserService) RequestOTP(ctx context.Context, phone string) (string, error) {
	phone = utils.NormalizePhone(phone)
	if !utils.ValidPhone(phone) {
		return "", utils.Invalid("phone", "must be a 10-digit mobile number")
	}

	code, err := utils.GenerateNumericOTP(utils.OTPLength)
	if err != nil {
		return "", err
	}
	hash, err := utils.HashOTP(code)
	if err != nil {
		return "", err
	}

	sessionID := uuid.New().String()
	session := utils.AuthSession{
		Phone:     phone,
		OTPHash:   hash,
		Status:    sessionPending,
		CreatedAt: time.Now(),
	}
	if err := s.Sessions.Save(ctx, sessionID, session, utils.AuthSessionTTL); err != nil {
		return "", fmt.Errorf("failed to create auth session: %w", err)
	}

	message := fmt.Sprintf("Your Sevahub OTP is: %s. It expires in %d minutes.", code, int(utils.AuthSessionTTL.Minutes()))
	if err := s.SendSMS(phone, message); err != nil {
		s.Logger.Error("Failed to send OTP", zap.String("phone", phone), zap.Error(err))
		return "", fmt.Errorf("failed to send OTP")
	}
	return sessionID, nil
}

func (s *DefaultUserService) loadAuthSession(ctx context.Context, sessionID string) (*utils.AuthSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, utils.ErrAuthSessionNotFound) {
			return nil, ErrOTPExpired
		}
		return nil, err
	}
	return session, nil
}

// VerifyOTP checks the code. A known phone gets a token; an unknown one is told to register.
func (s *DefaultUserService) VerifyOTP(ctx context.Context, sessionID, code string) (*models.AuthResult, error) {
	session, err := s.loadAuthSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != sessionPending {
		return nil, ErrOTPExpired
	}

	// The attempt is counted before the code is compared so parallel guesses share one budget.
	attempts, err := s.Sessions.IncrAttempts(ctx, sessionID, utils.AuthSessionTTL)
	if err != nil {
		return nil, err
	}
	if attempts > utils.MaxOTPAttempts {
		if err := s.Sessions.Delete(ctx, sessionID); err != nil {
			s.Logger.Warn("Failed to delete auth session", zap.Error(err))
		}
		return nil, ErrTooManyAttempts
	}

	if !utils.CompareOTP(session.OTPHash, strings.TrimSpace(code)) {
		return nil, ErrInvalidOTP
	}

	account, err := s.Repo.GetByPhone(ctx, session.Phone)
	if errors.Is(err, ErrNotFound) {
		session.Status = sessionVerified
		session.OTPHash = ""
		if err := s.Sessions.Save(ctx, sessionID, *session, registrationWindow); err != nil {
			return nil, fmt.Errorf("failed to update auth session: %w", err)
		}
		return &models.AuthResult{NeedRegistration: true, SessionID: sessionID}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		s.Logger.Warn("Failed to delete auth session", zap.Error(err))
	}
	if !account.Active() {
		return nil, ErrAccountDisabled
	}
	return s.issueToken(account)
}

func (s *DefaultUserService) issueToken(account *models.UserProfile) (*models.AuthResult, error) {
	token, err := utils.GenerateToken(account.ID, string(account.Role), s.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &models.AuthResult{Token: token, User: account}, nil
}
