package user

import (
	"context"
	"io"
	"time"

	userRepo "sevahub/database/repository/user"
	"sevahub/models"
	"sevahub/services/storage"
	"sevahub/utils"

	"go.uber.org/zap"
)

type UserService interface {
	// Phone login
	RequestOTP(ctx context.Context, phone string) (string, error)
	VerifyOTP(ctx context.Context, sessionID, code string) (*models.AuthResult, error)
	Register(ctx context.Context, in models.RegistrationInput) (*models.AuthResult, error)

	// Accounts
	GetUserByID(ctx context.Context, id string) (*models.UserProfile, error)
	UpdateFCMToken(ctx context.Context, userID, token string) error

	// Workers
	SetAvailability(ctx context.Context, worker *models.UserProfile, status models.Availability) (*models.UserProfile, error)
	UpdateWorkerProfile(ctx context.Context, worker *models.UserProfile, update models.WorkerProfileUpdate) (*models.UserProfile, error)
	UploadProfilePhoto(ctx context.Context, worker *models.UserProfile, file io.Reader) (*models.UserProfile, error)

	// Admin
	SetWorkerActive(ctx context.Context, workerID string, active bool) (*models.UserProfile, error)
}

// AuthSessionStore keeps OTP login progress between requests.
type AuthSessionStore interface {
	Save(ctx context.Context, sessionID string, session utils.AuthSession, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*utils.AuthSession, error)
	// IncrAttempts atomically counts a verification attempt and returns the new total.
	IncrAttempts(ctx context.Context, sessionID string, ttl time.Duration) (int64, error)
	Delete(ctx context.Context, sessionID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Sessions AuthSessionStore
	Storage  storage.StorageService // optional
	SendSMS  func(phone, message string) error
	TokenTTL time.Duration
	Logger   *zap.Logger
}

func NewUserService(repo userRepo.UserRepository, sessions AuthSessionStore, store storage.StorageService, tokenTTL time.Duration, logger *zap.Logger) *DefaultUserService {
	return &DefaultUserService{
		Repo:     repo,
		Sessions: sessions,
		Storage:  store,
		SendSMS:  utils.SendSMSMessage,
		TokenTTL: tokenTTL,
		Logger:   logger,
	}
}
