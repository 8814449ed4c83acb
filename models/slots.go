package models

// Reasons a slot cannot be booked.
const (
	SlotBlockedPast   = "past"
	SlotBlockedBooked = "booked"
)

// DateSelector picks the target booking date.
type DateSelector string

const (
	DateToday    DateSelector = "today"
	DateTomorrow DateSelector = "tomorrow"
	DateCustom   DateSelector = "date"
)

// SlotView is a slot label with its availability for the target date.
type SlotView struct {
	Time        string `json:"time"`
	Blocked     bool   `json:"blocked"`
	BlockReason string `json:"blockReason,omitempty"`
}

// SlotDay lists a worker's slots for one date.
type SlotDay struct {
	WorkerID     string     `json:"workerId"`
	Date         string     `json:"date"` // YYYY-MM-DD
	WorkingHours string     `json:"workingHours"`
	Slots        []SlotView `json:"slots"`
}
