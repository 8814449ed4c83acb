package models

import "time"

// BookingSession holds a user's slot selection between choosing a worker and confirming.
type BookingSession struct {
	SessionID    string       `json:"sessionId"`
	UserID       string       `json:"userId"`
	WorkerID     string       `json:"workerId"`
	ServiceType  string       `json:"serviceType"`
	Description  string       `json:"description,omitempty"`
	DateSelector DateSelector `json:"dateSelector,omitempty"`
	SelectedDate string       `json:"selectedDate,omitempty"`
	SelectedSlot string       `json:"selectedSlot,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

type StartSessionInput struct {
	WorkerID    string `json:"workerId"`
	ServiceType string `json:"serviceType"`
	Description string `json:"description"`
}

type SelectDateInput struct {
	Selector DateSelector `json:"selector"`
	Date     string       `json:"date"`
}

type SelectSlotInput struct {
	Slot string `json:"slot"`
}

// BookingResponse is returned by each booking-session step.
type BookingResponse struct {
	Session *BookingSession `json:"session,omitempty"`
	SlotDay *SlotDay        `json:"slotDay,omitempty"`
	Request *ServiceRequest `json:"request,omitempty"`
}
