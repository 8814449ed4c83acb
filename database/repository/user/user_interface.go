package userRepo

import (
	"context"
	"errors"

	"sevahub/models"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrPhoneTaken = errors.New("phone number already registered")
	ErrCodeTaken  = errors.New("worker code already assigned")
)

// WorkerFilter narrows a worker listing.
type WorkerFilter struct {
	Service    string // only workers offering this service when set
	ActiveOnly bool   // skip workers with isActive == false
}

// UserRepository defines methods for account data access.
type UserRepository interface {
	// Create inserts a new account. A duplicate phone returns ErrPhoneTaken,
	// a duplicate worker code ErrCodeTaken.
	Create(ctx context.Context, user *models.UserProfile) error
	// GetByID retrieves an account by its unique id.
	GetByID(ctx context.Context, id string) (*models.UserProfile, error)
	// GetByPhone retrieves an account by phone number.
	GetByPhone(ctx context.Context, phone string) (*models.UserProfile, error)
	// ListWorkers returns workers matching the filter, sorted by name.
	ListWorkers(ctx context.Context, filter WorkerFilter) ([]models.UserProfile, error)
	// NextWorkerCode returns the next free WRK### code.
	NextWorkerCode(ctx context.Context) (string, error)
	// UpdateSetDocument applies a $set to the account and returns the result.
	UpdateSetDocument(ctx context.Context, id string, set bson.M) (*models.UserProfile, error)
	// CountByRole counts accounts with the role.
	CountByRole(ctx context.Context, role models.Role) (int64, error)
}
