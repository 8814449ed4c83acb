package user

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"sync"
	"time"

	userRepo "sevahub/database/repository/user"
	"sevahub/models"
	"sevahub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type fakeUsers struct {
	mu       sync.Mutex
	byID     map[string]models.UserProfile
	seq      int
	codes    int
	takeCode int // number of Create calls that should fail with ErrCodeTaken
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]models.UserProfile{}}
}

func (f *fakeUsers) Create(_ context.Context, u *models.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Phone == u.Phone {
			return userRepo.ErrPhoneTaken
		}
	}
	if u.WorkerCode != "" && f.takeCode > 0 {
		f.takeCode--
		return userRepo.ErrCodeTaken
	}
	f.seq++
	u.ID = fmt.Sprintf("acc-%d", f.seq)
	f.byID[u.ID] = *u
	return nil
}

func (f *fakeUsers) put(u models.UserProfile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) GetByPhone(_ context.Context, phone string) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Phone == phone {
			found := u
			return &found, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (f *fakeUsers) ListWorkers(context.Context, userRepo.WorkerFilter) ([]models.UserProfile, error) {
	return nil, nil
}

func (f *fakeUsers) NextWorkerCode(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes++
	return userRepo.FormatWorkerCode(f.codes), nil
}

func (f *fakeUsers) UpdateSetDocument(_ context.Context, id string, set bson.M) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	for k, v := range set {
		switch k {
		case "fcmToken":
			u.FCMToken = v.(string)
		case "availabilityStatus":
			u.AvailabilityStatus = v.(models.Availability)
		case "name":
			u.Name = v.(string)
		case "village":
			u.Village = v.(string)
		case "services":
			u.Services = v.([]string)
		case "workingHours":
			u.WorkingHours = v.(string)
		case "experienceYears":
			u.ExperienceYears = v.(int)
		case "bio":
			u.Bio = v.(string)
		case "callEnabled":
			u.CallEnabled = v.(bool)
		case "profilePhoto":
			u.ProfilePhoto = v.(string)
		case "isActive":
			active := v.(bool)
			u.IsActive = &active
		}
	}
	f.byID[id] = u
	return &u, nil
}

func (f *fakeUsers) CountByRole(context.Context, models.Role) (int64, error) {
	return int64(len(f.byID)), nil
}

type memoryAuthSessions struct {
	mu       sync.Mutex
	sessions map[string]utils.AuthSession
	attempts map[string]int64
}

func newMemoryAuthSessions() *memoryAuthSessions {
	return &memoryAuthSessions{sessions: map[string]utils.AuthSession{}, attempts: map[string]int64{}}
}

func (m *memoryAuthSessions) IncrAttempts(_ context.Context, id string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[id]++
	return m.attempts[id], nil
}

func (m *memoryAuthSessions) Save(_ context.Context, id string, s utils.AuthSession, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = s
	return nil
}

func (m *memoryAuthSessions) Get(_ context.Context, id string) (*utils.AuthSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, utils.ErrAuthSessionNotFound
	}
	return &s, nil
}

func (m *memoryAuthSessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

type fakeStorage struct {
	uploaded []string
}

func (f *fakeStorage) UploadProfilePhoto(_ context.Context, accountID string, file io.Reader) (string, error) {
	if _, err := io.ReadAll(file); err != nil {
		return "", err
	}
	f.uploaded = append(f.uploaded, accountID)
	return "https://cdn.example.com/" + accountID + ".jpg", nil
}

func (f *fakeStorage) DeleteFile(context.Context, string) error { return nil }

var otpPattern = regexp.MustCompile(`\b(\d{6})\b`)

type testEnv struct {
	svc      *DefaultUserService
	users    *fakeUsers
	sessions *memoryAuthSessions
	storage  *fakeStorage
	lastSMS  map[string]string
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:    newFakeUsers(),
		sessions: newMemoryAuthSessions(),
		storage:  &fakeStorage{},
		lastSMS:  map[string]string{},
	}
	env.svc = &DefaultUserService{
		Repo:     env.users,
		Sessions: env.sessions,
		Storage:  env.storage,
		SendSMS: func(phone, message string) error {
			env.lastSMS[phone] = message
			return nil
		},
		TokenTTL: time.Hour,
		Logger:   zap.NewNop(),
	}
	return env
}

// otpFor returns the code most recently texted to phone.
func (e *testEnv) otpFor(phone string) string {
	m := otpPattern.FindStringSubmatch(e.lastSMS[phone])
	if m == nil {
		return ""
	}
	return m[1]
}

func boolPtr(b bool) *bool     { return &b }
func strPtr(s string) *string { return &s }
