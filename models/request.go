package models

import "time"

// RequestStatus is the lifecycle state of a service request.
type RequestStatus string

const (
	StatusPending         RequestStatus = "pending"
	StatusAccepted        RequestStatus = "accepted"
	StatusRejected        RequestStatus = "rejected"
	StatusUserStarted     RequestStatus = "user_started"
	StatusInProgress      RequestStatus = "in-progress"
	StatusWorkerCompleted RequestStatus = "worker_completed"
	StatusCompleted       RequestStatus = "completed"
)

// AllStatuses lists every known status in lifecycle order.
var AllStatuses = []RequestStatus{
	StatusPending,
	StatusAccepted,
	StatusRejected,
	StatusUserStarted,
	StatusInProgress,
	StatusWorkerCompleted,
	StatusCompleted,
}

func (s RequestStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

// BlocksSlot reports whether a request in this status occupies its slot.
func (s RequestStatus) BlocksSlot() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusWorkerCompleted:
		return false
	}
	return true
}

// NonBlockingStatuses are the statuses that free the booked slot.
var NonBlockingStatuses = []RequestStatus{StatusRejected, StatusCompleted, StatusWorkerCompleted}

// CountsAsJob reports whether the request counts toward a worker's job total.
func (s RequestStatus) CountsAsJob() bool {
	return s == StatusCompleted || s == StatusWorkerCompleted
}

// ServiceRequest is a booking of a worker by a user.
type ServiceRequest struct {
	ID          string        `bson:"id" json:"id"`
	UserID      string        `bson:"userId" json:"userId"`
	UserName    string        `bson:"userName" json:"userName"`
	UserVillage string        `bson:"userVillage" json:"userVillage"`
	WorkerID    string        `bson:"workerId" json:"workerId"`
	WorkerName  string        `bson:"workerName" json:"workerName"`
	ServiceType string        `bson:"serviceType" json:"serviceType"`
	Status      RequestStatus `bson:"status" json:"status"`
	Description string        `bson:"description" json:"description"`
	Date        time.Time     `bson:"date" json:"date"`                                 // creation time
	SlotDate    string        `bson:"slotDate,omitempty" json:"slotDate,omitempty"`     // YYYY-MM-DD
	SlotTime    string        `bson:"slotTime,omitempty" json:"slotTime,omitempty"`     // "09:00 AM"
	SlotKey     string        `bson:"slotKey,omitempty" json:"-"`                       // set only while the slot is held
	Rating      *int          `bson:"rating,omitempty" json:"rating,omitempty"`         // 1..5
	Feedback    string        `bson:"feedback,omitempty" json:"feedback,omitempty"`
	RatedAt     *time.Time    `bson:"ratedAt,omitempty" json:"ratedAt,omitempty"`
	CompletedAt *time.Time    `bson:"completedAt,omitempty" json:"completedAt,omitempty"` // set on the move to completed
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`

	Timeline []TimelineStep `bson:"-" json:"timeline,omitempty"`
}

// IsParty reports whether the account is the requester or the assigned worker.
func (r *ServiceRequest) IsParty(accountID string) bool {
	return accountID != "" && (r.UserID == accountID || r.WorkerID == accountID)
}

// CreateRequestInput is the payload for booking a worker.
type CreateRequestInput struct {
	WorkerID    string `json:"workerId"`
	ServiceType string `json:"serviceType"`
	Description string `json:"description"`
	SlotDate    string `json:"slotDate"`
	SlotTime    string `json:"slotTime"`
}

// RatingInput is the payload for rating a completed job.
type RatingInput struct {
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

// TimelineStep is one milestone of the tracking timeline.
type TimelineStep struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

var timelineSteps = []struct {
	id, label string
	from      RequestStatus
}{
	{"booked", "Booked", StatusPending},
	{"accepted", "Accepted", StatusAccepted},
	{"in-progress", "In Progress", StatusUserStarted},
	{"completed", "Completed", StatusCompleted},
}

// lifecycleRank orders the non-rejected statuses.
var lifecycleRank = map[RequestStatus]int{
	StatusPending:         0,
	StatusAccepted:        1,
	StatusUserStarted:     2,
	StatusInProgress:      3,
	StatusWorkerCompleted: 4,
	StatusCompleted:       5,
}

// BuildTimeline returns the tracking milestones for a status.
// A rejected request has no active milestone.
func BuildTimeline(status RequestStatus) []TimelineStep {
	rank, ok := lifecycleRank[status]
	steps := make([]TimelineStep, 0, len(timelineSteps))
	for _, s := range timelineSteps {
		steps = append(steps, TimelineStep{
			ID:     s.id,
			Label:  s.label,
			Active: ok && rank >= lifecycleRank[s.from],
		})
	}
	return steps
}
