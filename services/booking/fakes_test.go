package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	requestRepo "sevahub/database/repository/request"
	userRepo "sevahub/database/repository/user"
	"sevahub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type fakeRequests struct {
	mu    sync.Mutex
	byID  map[string]models.ServiceRequest
	slots map[string]string
	seq   int
	clock time.Time // stamps status writes like the Mongo repository does with time.Now
}

func newFakeRequests() *fakeRequests {
	return &fakeRequests{byID: map[string]models.ServiceRequest{}, slots: map[string]string{}, clock: testNow}
}

func (f *fakeRequests) setClock(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clock = t
}

func (f *fakeRequests) Create(_ context.Context, req *models.ServiceRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.SlotKey != "" {
		if _, taken := f.slots[req.SlotKey]; taken {
			return requestRepo.ErrSlotTaken
		}
	}
	f.seq++
	if req.ID == "" {
		req.ID = fmt.Sprintf("req-%d", f.seq)
	}
	req.UpdatedAt = req.Date
	if req.SlotKey != "" {
		f.slots[req.SlotKey] = req.ID
	}
	f.byID[req.ID] = *req
	return nil
}

func (f *fakeRequests) put(req models.ServiceRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[req.ID] = req
	if req.SlotKey != "" {
		f.slots[req.SlotKey] = req.ID
	}
}

func (f *fakeRequests) GetByID(_ context.Context, id string) (*models.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.byID[id]
	if !ok {
		return nil, requestRepo.ErrNotFound
	}
	return &req, nil
}

func (f *fakeRequests) list(keep func(models.ServiceRequest) bool) []models.ServiceRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.ServiceRequest, 0)
	for _, r := range f.byID {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (f *fakeRequests) ListByWorker(_ context.Context, workerID string) ([]models.ServiceRequest, error) {
	return f.list(func(r models.ServiceRequest) bool { return r.WorkerID == workerID }), nil
}

func (f *fakeRequests) ListByUser(_ context.Context, userID string) ([]models.ServiceRequest, error) {
	return f.list(func(r models.ServiceRequest) bool { return r.UserID == userID }), nil
}

func (f *fakeRequests) ListAll(_ context.Context) ([]models.ServiceRequest, error) {
	return f.list(func(models.ServiceRequest) bool { return true }), nil
}

func (f *fakeRequests) UpdateStatus(_ context.Context, id string, from, to models.RequestStatus) (*models.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.byID[id]
	if !ok {
		return nil, requestRepo.ErrNotFound
	}
	if req.Status != from {
		return nil, requestRepo.ErrStatusConflict
	}
	req.Status = to
	req.UpdatedAt = f.clock
	if to == models.StatusCompleted {
		at := f.clock
		req.CompletedAt = &at
	}
	if !to.BlocksSlot() && req.SlotKey != "" {
		delete(f.slots, req.SlotKey)
		req.SlotKey = ""
	}
	f.byID[id] = req
	return &req, nil
}

func (f *fakeRequests) SetRating(_ context.Context, id string, rating int, feedback string, at time.Time) (*models.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.byID[id]
	if !ok {
		return nil, requestRepo.ErrNotFound
	}
	if req.Status != models.StatusCompleted || req.Rating != nil {
		return nil, requestRepo.ErrNotRatable
	}
	req.Rating, req.Feedback, req.RatedAt = &rating, feedback, &at
	req.UpdatedAt = at
	f.byID[id] = req
	return &req, nil
}

func (f *fakeRequests) CountActive(context.Context) (int64, error) {
	n := len(f.list(func(r models.ServiceRequest) bool { return !r.Status.IsTerminal() }))
	return int64(n), nil
}

func (f *fakeRequests) CountCompletedSince(_ context.Context, since time.Time) (int64, error) {
	n := len(f.list(func(r models.ServiceRequest) bool {
		return r.Status == models.StatusCompleted && r.CompletedAt != nil && !r.CompletedAt.Before(since)
	}))
	return int64(n), nil
}

func (f *fakeRequests) Watch(context.Context) (<-chan struct{}, error) {
	return nil, fmt.Errorf("change streams not supported")
}

type fakeUsers struct {
	mu    sync.Mutex
	byID  map[string]models.UserProfile
	codes int
}

func newFakeUsers(users ...models.UserProfile) *fakeUsers {
	f := &fakeUsers{byID: map[string]models.UserProfile{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *models.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Phone == u.Phone {
			return userRepo.ErrPhoneTaken
		}
	}
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", len(f.byID)+1)
	}
	f.byID[u.ID] = *u
	return nil
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
			return &u, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (f *fakeUsers) ListWorkers(_ context.Context, filter userRepo.WorkerFilter) ([]models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.UserProfile, 0)
	for _, u := range f.byID {
		if u.Role != models.RoleWorker {
			continue
		}
		if filter.Service != "" && !u.OffersService(filter.Service) {
			continue
		}
		if filter.ActiveOnly && !u.Active() {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeUsers) NextWorkerCode(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes++
	return userRepo.FormatWorkerCode(f.codes), nil
}

func (f *fakeUsers) UpdateSetDocument(_ context.Context, id string, set bson.M) (*models.UserProfile, error) {
	return nil, fmt.Errorf("not used")
}

func (f *fakeUsers) CountByRole(_ context.Context, role models.Role) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, u := range f.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]models.BookingSession
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]models.BookingSession{}}
}

func (m *memorySessions) Save(_ context.Context, s *models.BookingSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.SessionID] = *s
	return nil
}

func (m *memorySessions) Get(_ context.Context, id string) (*models.BookingSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (m *memorySessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	created  []string
	statuses []models.RequestStatus
}

func (r *recordingNotifier) NotifyNewRequest(_ context.Context, req *models.ServiceRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, req.ID)
}

func (r *recordingNotifier) NotifyStatusChange(_ context.Context, req *models.ServiceRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, req.Status)
}

type recordingReminders struct {
	scheduled map[string]time.Time
}

func (r *recordingReminders) ScheduleReminder(_ context.Context, req *models.ServiceRequest, start time.Time) error {
	if r.scheduled == nil {
		r.scheduled = map[string]time.Time{}
	}
	r.scheduled[req.ID] = start
	return nil
}

// testEnv is a service over in-memory stores with the clock fixed at 2025-03-14 10:30 UTC.
type testEnv struct {
	svc       *DefaultBookingService
	requests  *fakeRequests
	users     *fakeUsers
	sessions  *memorySessions
	notifier  *recordingNotifier
	reminders *recordingReminders
	user      *models.UserProfile
	other     *models.UserProfile
	worker    *models.UserProfile
	admin     *models.UserProfile
}

var testNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func newTestEnv() *testEnv {
	off := false
	user := models.UserProfile{ID: "u1", Name: "Asha", Phone: "9876543210", Role: models.RoleUser, Village: "Hosur"}
	other := models.UserProfile{ID: "u2", Name: "Ravi", Phone: "9876543211", Role: models.RoleUser}
	worker := models.UserProfile{ID: "w1", Name: "Kumar", Phone: "9876543212", Role: models.RoleWorker,
		Services: []string{"Electrician"}, WorkingHours: "09:00 AM - 01:00 PM"}
	disabled := models.UserProfile{ID: "w2", Name: "Mani", Phone: "9876543213", Role: models.RoleWorker,
		Services: []string{"Electrician"}, IsActive: &off}
	admin := models.UserProfile{ID: "a1", Name: "Admin", Phone: "9876543214", Role: models.RoleAdmin}

	env := &testEnv{
		requests:  newFakeRequests(),
		users:     newFakeUsers(user, other, worker, disabled, admin),
		sessions:  newMemorySessions(),
		notifier:  &recordingNotifier{},
		reminders: &recordingReminders{},
		user:      &user,
		other:     &other,
		worker:    &worker,
		admin:     &admin,
	}
	env.svc = &DefaultBookingService{
		Requests:  env.requests,
		Users:     env.users,
		Sessions:  env.sessions,
		Notifier:  env.notifier,
		Reminders: env.reminders,
		Logger:    zap.NewNop(),
		Location:  time.UTC,
		Now:       func() time.Time { return testNow },
	}
	return env
}
