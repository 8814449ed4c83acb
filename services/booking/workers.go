package booking

import (
	"context"
	"errors"

	userRepo "sevahub/database/repository/user"
	"sevahub/models"
)

// GetWorker returns a worker profile with statistics derived from their requests.
func (s *DefaultBookingService) GetWorker(ctx context.Context, id string) (*models.WorkerWithStats, error) {
	worker, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, err
	}
	if worker.Role != models.RoleWorker {
		return nil, ErrWorkerNotFound
	}
	return s.withStats(ctx, *worker)
}

// ListWorkers lists workers offering service (all services when empty).
// Disabled workers are included only when includeInactive is set.
func (s *DefaultBookingService) ListWorkers(ctx context.Context, service string, includeInactive bool) ([]models.WorkerWithStats, error) {
	workers, err := s.Users.ListWorkers(ctx, userRepo.WorkerFilter{Service: service, ActiveOnly: !includeInactive})
	if err != nil {
		return nil, err
	}
	out := make([]models.WorkerWithStats, 0, len(workers))
	for _, w := range workers {
		ws, err := s.withStats(ctx, w)
		if err != nil {
			return nil, err
		}
		out = append(out, *ws)
	}
	return out, nil
}

func (s *DefaultBookingService) withStats(ctx context.Context, worker models.UserProfile) (*models.WorkerWithStats, error) {
	reqs, err := s.Requests.ListByWorker(ctx, worker.ID)
	if err != nil {
		return nil, err
	}
	return &models.WorkerWithStats{UserProfile: worker, Stats: ComputeWorkerStats(reqs)}, nil
}

// Dashboard totals the platform for admins. "Today" follows the configured timezone.
func (s *DefaultBookingService) Dashboard(ctx context.Context) (*models.DashboardTotals, error) {
	users, err := s.Users.CountByRole(ctx, models.RoleUser)
	if err != nil {
		return nil, err
	}
	workers, err := s.Users.CountByRole(ctx, models.RoleWorker)
	if err != nil {
		return nil, err
	}
	active, err := s.Requests.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.Requests.CountCompletedSince(ctx, startOfDay(s.now()))
	if err != nil {
		return nil, err
	}
	return &models.DashboardTotals{
		TotalUsers:     users,
		TotalWorkers:   workers,
		ActiveRequests: active,
		CompletedToday: completed,
	}, nil
}
