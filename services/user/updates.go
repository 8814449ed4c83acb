package user

import (
	"context"
	"io"
	"strings"

	"sevahub/models"
	"sevahub/services/booking"
	"sevahub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.UserProfile, error) {
	return s.Repo.GetByID(ctx, id)
}

// UpdateFCMToken stores the device push token used for notifications.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return utils.Invalid("fcmToken", "is required")
	}
	_, err := s.Repo.UpdateSetDocument(ctx, userID, bson.M{"fcmToken": token})
	return err
}

// SetAvailability updates the worker's broadcast flag. It does not affect slot booking.
func (s *DefaultUserService) SetAvailability(ctx context.Context, worker *models.UserProfile, status models.Availability) (*models.UserProfile, error) {
	if worker.Role != models.RoleWorker {
		return nil, ErrWorkersOnly
	}
	if !status.Valid() {
		return nil, utils.Invalid("availabilityStatus", "must be Available, Busy or Offline")
	}
	return s.Repo.UpdateSetDocument(ctx, worker.ID, bson.M{"availabilityStatus": status})
}

// UpdateWorkerProfile applies the provided fields; working hours are validated strictly.
func (s *DefaultUserService) UpdateWorkerProfile(ctx context.Context, worker *models.UserProfile, update models.WorkerProfileUpdate) (*models.UserProfile, error) {
	if worker.Role != models.RoleWorker {
		return nil, ErrWorkersOnly
	}

	set := bson.M{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, utils.Invalid("name", "cannot be empty")
		}
		set["name"] = name
	}
	if update.Village != nil {
		set["village"] = strings.TrimSpace(*update.Village)
	}
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.SkillCategory != nil {
		set["skillCategory"] = strings.TrimSpace(*update.SkillCategory)
	}
	if update.Services != nil {
		services := cleanServices(update.Services)
		if len(services) == 0 {
			return nil, utils.Invalid("services", "at least one service is required")
		}
		set["services"] = services
	}
	if update.ExperienceYears != nil {
		if *update.ExperienceYears < 0 {
			return nil, utils.Invalid("experienceYears", "cannot be negative")
		}
		set["experienceYears"] = *update.ExperienceYears
	}
	if update.Bio != nil {
		set["bio"] = strings.TrimSpace(*update.Bio)
	}
	if update.WorkingHours != nil {
		hours := strings.TrimSpace(*update.WorkingHours)
		if err := booking.ValidateWorkingHours(hours); err != nil {
			return nil, utils.Invalid("workingHours", "%v", err)
		}
		set["workingHours"] = hours
	}
	if update.CallEnabled != nil {
		set["callEnabled"] = *update.CallEnabled
	}
	if len(set) == 0 {
		return worker, nil
	}
	return s.Repo.UpdateSetDocument(ctx, worker.ID, set)
}

// UploadProfilePhoto stores a new photo for the worker and records its URL.
func (s *DefaultUserService) UploadProfilePhoto(ctx context.Context, worker *models.UserProfile, file io.Reader) (*models.UserProfile, error) {
	if worker.Role != models.RoleWorker {
		return nil, ErrWorkersOnly
	}
	if s.Storage == nil {
		return nil, ErrStorageUnavailable
	}
	url, err := s.Storage.UploadProfilePhoto(ctx, worker.ID, file)
	if err != nil {
		return nil, err
	}
	return s.Repo.UpdateSetDocument(ctx, worker.ID, bson.M{"profilePhoto": url})
}

// SetWorkerActive enables or disables a worker. Disabled workers cannot sign in or be booked.
func (s *DefaultUserService) SetWorkerActive(ctx context.Context, workerID string, active bool) (*models.UserProfile, error) {
	worker, err := s.Repo.GetByID(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if worker.Role != models.RoleWorker {
		return nil, ErrNotFound
	}
	updated, err := s.Repo.UpdateSetDocument(ctx, workerID, bson.M{"isActive": active})
	if err != nil {
		return nil, err
	}
	s.Logger.Info("Worker active flag changed", zap.String("workerId", workerID), zap.Bool("active", active))
	return updated, nil
}
