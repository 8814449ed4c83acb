package feed

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"time"

	"sevahub/models"

	"go.uber.org/zap"
)

// ErrClosed is returned by Subscribe once the hub has been shut down.
var ErrClosed = errors.New("live feed is shutting down")

// Snapshotter returns the requests a caller may see, newest first.
type Snapshotter interface {
	ListRequests(ctx context.Context, caller *models.UserProfile) ([]models.ServiceRequest, error)
}

// ChangeSource signals whenever the requests collection changes.
type ChangeSource interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Hub pushes a fresh scoped snapshot to every subscriber after each change.
// Slow subscribers only ever hold the latest snapshot.
type Hub struct {
	Snapshots    Snapshotter
	Changes      ChangeSource
	PollInterval time.Duration
	Logger       *zap.Logger

	mu     sync.Mutex
	subs   map[int]*subscription
	nextID int
	closed bool
}

type subscription struct {
	caller *models.UserProfile

	mu     sync.Mutex
	ch     chan []models.ServiceRequest
	last   []models.ServiceRequest
	sent   bool
	closed bool
}

func NewHub(snapshots Snapshotter, changes ChangeSource, pollInterval time.Duration, logger *zap.Logger) *Hub {
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	return &Hub{
		Snapshots:    snapshots,
		Changes:      changes,
		PollInterval: pollInterval,
		Logger:       logger,
		subs:         make(map[int]*subscription),
	}
}

// Subscribe registers caller and delivers the current snapshot right away.
// The returned cancel func must be called to release the subscription.
func (h *Hub) Subscribe(ctx context.Context, caller *models.UserProfile) (<-chan []models.ServiceRequest, func(), error) {
	snapshot, err := h.Snapshots.ListRequests(ctx, caller)
	if err != nil {
		return nil, nil, err
	}

	sub := &subscription{caller: caller, ch: make(chan []models.ServiceRequest, 1)}
	sub.deliver(snapshot)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, nil, ErrClosed
	}
	id := h.nextID
	h.nextID++
	h.subs[id] = sub
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
		sub.close()
	}
	return sub.ch, cancel, nil
}

// Close ends every open subscription and refuses new ones. Streams reading
// from a subscription see their channel close and return.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	subs := h.subs
	h.subs = make(map[int]*subscription)
	h.mu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
}

// Subscribers returns the number of open subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Broadcast recomputes and delivers a snapshot for each subscriber.
// Unchanged snapshots are not re-sent.
func (h *Hub) Broadcast(ctx context.Context) {
	h.mu.Lock()
	subs := make([]*subscription, 0, len(h.subs))
	for _, s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		snapshot, err := h.Snapshots.ListRequests(ctx, sub.caller)
		if err != nil {
			h.Logger.Warn("Failed to build feed snapshot", zap.String("caller", sub.caller.ID), zap.Error(err))
			continue
		}
		sub.deliver(snapshot)
	}
}

// Run drives broadcasts from the change stream until ctx ends. When the stream
// cannot be opened or drops, the hub falls back to polling.
func (h *Hub) Run(ctx context.Context) {
	if h.Changes != nil {
		signals, err := h.Changes.Watch(ctx)
		if err == nil {
			h.Logger.Info("Live feed following change stream")
			for range signals {
				h.Broadcast(ctx)
			}
			if ctx.Err() != nil {
				return
			}
			h.Logger.Warn("Change stream closed, falling back to polling")
		} else {
			h.Logger.Warn("Change stream unavailable, falling back to polling", zap.Error(err))
		}
	}

	ticker := time.NewTicker(h.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Broadcast(ctx)
		}
	}
}

func (s *subscription) deliver(snapshot []models.ServiceRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || (s.sent && reflect.DeepEqual(s.last, snapshot)) {
		return
	}
	select {
	case <-s.ch:
	default:
	}
	s.ch <- snapshot
	s.last = snapshot
	s.sent = true
}

func (s *subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
