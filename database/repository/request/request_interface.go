package requestRepo

import (
	"context"
	"errors"
	"time"

	"sevahub/models"
)

var (
	ErrNotFound       = errors.New("request not found")
	ErrStatusConflict = errors.New("request status changed concurrently")
	ErrSlotTaken      = errors.New("slot already booked")
	ErrNotRatable     = errors.New("request cannot be rated")
)

// RequestRepository defines methods for service request data access.
type RequestRepository interface {
	// Create inserts a new request, assigning its id. A held slot collision returns ErrSlotTaken.
	Create(ctx context.Context, req *models.ServiceRequest) error
	// GetByID retrieves a request by its id.
	GetByID(ctx context.Context, id string) (*models.ServiceRequest, error)
	// ListByWorker returns the worker's requests, newest first.
	ListByWorker(ctx context.Context, workerID string) ([]models.ServiceRequest, error)
	// ListByUser returns the requester's requests, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.ServiceRequest, error)
	// ListAll returns every request, newest first.
	ListAll(ctx context.Context) ([]models.ServiceRequest, error)
	// UpdateStatus moves a request from one status to another only if it is still in from.
	// Leaving the set of slot-holding statuses drops the slot key in the same write.
	UpdateStatus(ctx context.Context, id string, from, to models.RequestStatus) (*models.ServiceRequest, error)
	// SetRating attaches rating and feedback to a completed, unrated request.
	SetRating(ctx context.Context, id string, rating int, feedback string, at time.Time) (*models.ServiceRequest, error)
	// CountActive counts requests that are neither rejected nor completed.
	CountActive(ctx context.Context) (int64, error)
	// CountCompletedSince counts requests completed at or after since.
	CountCompletedSince(ctx context.Context, since time.Time) (int64, error)
	// Watch emits a signal whenever the requests collection changes.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
