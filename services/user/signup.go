package user

import (
	"context"
	"errors"
	"strings"

	userRepo "sevahub/database/repository/user"
	"sevahub/models"
	"sevahub/services/booking"
	"sevahub/utils"

	"go.uber.org/zap"
)

const workerCodeAttempts = 3

// Register creates the account for a phone verified in the given session.
func (s *DefaultUserService) Register(ctx context.Context, in models.RegistrationInput) (*models.AuthResult, error) {
	session, err := s.loadAuthSession(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != sessionVerified {
		return nil, ErrNotVerified
	}

	account, err := buildAccount(session.Phone, in)
	if err != nil {
		return nil, err
	}

	if account.Role == models.RoleWorker {
		err = s.createWorker(ctx, account)
	} else {
		err = s.Repo.Create(ctx, account)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Sessions.Delete(ctx, in.SessionID); err != nil {
		s.Logger.Warn("Failed to delete auth session", zap.Error(err))
	}
	s.Logger.Info("Account registered",
		zap.String("id", account.ID),
		zap.String("role", string(account.Role)),
		zap.String("workerCode", account.WorkerCode))
	return s.issueToken(account)
}

// createWorker assigns the next WRK code, retrying when a concurrent registration took it.
func (s *DefaultUserService) createWorker(ctx context.Context, account *models.UserProfile) error {
	var err error
	for attempt := 0; attempt < workerCodeAttempts; attempt++ {
		if account.WorkerCode, err = s.Repo.NextWorkerCode(ctx); err != nil {
			return err
		}
		err = s.Repo.Create(ctx, account)
		if !errors.Is(err, userRepo.ErrCodeTaken) {
			return err
		}
	}
	return err
}

func buildAccount(phone string, in models.RegistrationInput) (*models.UserProfile, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, utils.Invalid("name", "is required")
	}
	if in.Role != models.RoleUser && in.Role != models.RoleWorker {
		return nil, utils.Invalid("role", "must be user or worker")
	}

	active := true
	village := strings.TrimSpace(in.Village)
	if village == "" {
		village = in.Location.Village
	}
	account := &models.UserProfile{
		Name:              name,
		Phone:             phone,
		Role:              in.Role,
		Village:           village,
		Location:          in.Location,
		Gender:            in.Gender,
		PreferredLanguage: in.PreferredLanguage,
		IsActive:          &active,
	}
	if in.Role == models.RoleUser {
		return account, nil
	}

	services := cleanServices(in.Services)
	if len(services) == 0 {
		return nil, utils.Invalid("services", "at least one service is required")
	}
	if in.ExperienceYears < 0 {
		return nil, utils.Invalid("experienceYears", "cannot be negative")
	}
	hours := strings.TrimSpace(in.WorkingHours)
	if hours == "" {
		hours = models.DefaultWorkingHours
	}
	if err := booking.ValidateWorkingHours(hours); err != nil {
		return nil, utils.Invalid("workingHours", "%v", err)
	}

	account.SkillCategory = strings.TrimSpace(in.SkillCategory)
	account.Services = services
	account.ExperienceYears = in.ExperienceYears
	account.Bio = strings.TrimSpace(in.Bio)
	account.WorkingHours = hours
	account.AvailabilityStatus = models.AvailabilityAvailable
	account.CallEnabled = in.CallEnabled
	return account, nil
}

func cleanServices(services []string) []string {
	seen := make(map[string]bool, len(services))
	out := make([]string, 0, len(services))
	for _, s := range services {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
