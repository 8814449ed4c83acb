package booking

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"sevahub/models"
)

// DateLayout is the wire format of slot dates.
const DateLayout = "2006-01-02"

const slotStepMinutes = 60

var (
	ErrInvalidDate  = errors.New("date must be YYYY-MM-DD")
	ErrPastDate     = errors.New("date is in the past")
	ErrInvalidHours = errors.New(`working hours must look like "09:00 AM - 06:00 PM" with start before end`)
)

var workingHoursPattern = regexp.MustCompile(`^(0?[1-9]|1[0-2]):[0-5][0-9] (AM|PM) - (0?[1-9]|1[0-2]):[0-5][0-9] (AM|PM)$`)

// legacyMarker matches the slot marker older clients appended to descriptions.
var legacyMarker = regexp.MustCompile(`\(Time: (\d{1,2}:\d{2} [AP]M)(?: on (\d{1,2})/(\d{1,2})/(\d{4}))?\)`)

// ParseClock converts "H:MM AM" or "HH:MM PM" to minutes since midnight.
// Without a recognised modifier the hour is taken as is. Malformed numbers read as 0.
func ParseClock(s string) int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	hm := strings.SplitN(fields[0], ":", 2)
	h, err := strconv.Atoi(hm[0])
	if err != nil {
		h = 0
	}
	m := 0
	if len(hm) == 2 {
		if m, err = strconv.Atoi(hm[1]); err != nil {
			m = 0
		}
	}
	if len(fields) > 1 {
		switch strings.ToUpper(fields[1]) {
		case "PM":
			if h < 12 {
				h += 12
			}
		case "AM":
			if h == 12 {
				h = 0
			}
		}
	}
	return h*60 + m
}

// FormatClock renders minutes since midnight as "HH:MM AM".
func FormatClock(minutes int) string {
	h := (minutes / 60) % 24
	m := minutes % 60
	modifier := "AM"
	if h >= 12 {
		modifier = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h12, m, modifier)
}

// ParseWorkingHours splits a "start - end" window into minutes since midnight.
func ParseWorkingHours(workingHours string) (start, end int) {
	if strings.TrimSpace(workingHours) == "" {
		workingHours = models.DefaultWorkingHours
	}
	parts := strings.SplitN(workingHours, "-", 2)
	start = ParseClock(parts[0])
	if len(parts) == 2 {
		end = ParseClock(parts[1])
	}
	return start, end
}

// GenerateSlots lists hourly slot labels from start (inclusive) to end (exclusive).
// An end at or before the start yields no slots; "12:00 AM" as end means midnight.
func GenerateSlots(workingHours string) []string {
	start, end := ParseWorkingHours(workingHours)
	slots := make([]string, 0)
	for m := start; m < end; m += slotStepMinutes {
		slots = append(slots, FormatClock(m))
	}
	return slots
}

// ValidateWorkingHours is the strict check applied before a window is stored.
func ValidateWorkingHours(workingHours string) error {
	if !workingHoursPattern.MatchString(workingHours) {
		return ErrInvalidHours
	}
	start, end := ParseWorkingHours(workingHours)
	if start >= end {
		return ErrInvalidHours
	}
	return nil
}

// IsOfferedSlot reports whether slot is one of the labels generated for the window.
func IsOfferedSlot(workingHours, slot string) bool {
	for _, s := range GenerateSlots(workingHours) {
		if s == slot {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ResolveTargetDate turns a date selector into a calendar day in loc.
// A custom date may be today or later.
func ResolveTargetDate(selector models.DateSelector, customDate string, now time.Time, loc *time.Location) (time.Time, error) {
	today := startOfDay(now.In(loc))
	switch selector {
	case "", models.DateToday:
		return today, nil
	case models.DateTomorrow:
		return today.AddDate(0, 0, 1), nil
	case models.DateCustom:
		d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(customDate), loc)
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
		if d.Before(today) {
			return time.Time{}, ErrPastDate
		}
		return d, nil
	default:
		return time.Time{}, fmt.Errorf("unknown date selector %q", selector)
	}
}

// SlotMarker is the description suffix older clients read to find a booking's slot.
func SlotMarker(slotTime string, date time.Time) string {
	return fmt.Sprintf("(Time: %s on %d/%d/%d)", slotTime, int(date.Month()), date.Day(), date.Year())
}

// SlotKey identifies a worker's slot on a date.
func SlotKey(workerID, slotDate, slotTime string) string {
	return workerID + "/" + slotDate + "/" + slotTime
}

// RequestSlot returns the date and slot a request occupies.
// Structured fields win; older records fall back to the description marker,
// using the request date when the marker carries only a time.
func RequestSlot(req models.ServiceRequest, loc *time.Location) (slotDate, slotTime string, ok bool) {
	if req.SlotDate != "" && req.SlotTime != "" {
		return req.SlotDate, req.SlotTime, true
	}
	match := legacyMarker.FindStringSubmatch(req.Description)
	if match == nil {
		return "", "", false
	}
	slotTime = FormatClock(ParseClock(match[1]))
	if match[2] != "" {
		month, _ := strconv.Atoi(match[2])
		day, _ := strconv.Atoi(match[3])
		year, _ := strconv.Atoi(match[4])
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc).Format(DateLayout), slotTime, true
	}
	if req.Date.IsZero() {
		return "", "", false
	}
	return req.Date.In(loc).Format(DateLayout), slotTime, true
}

// occupiedSlots collects the slots on slotDate held by blocking requests of the worker.
func occupiedSlots(workerID, slotDate string, existing []models.ServiceRequest, loc *time.Location) map[string]bool {
	occupied := make(map[string]bool)
	for _, req := range existing {
		if req.WorkerID != workerID || !req.Status.BlocksSlot() {
			continue
		}
		d, t, ok := RequestSlot(req, loc)
		if ok && d == slotDate {
			occupied[t] = true
		}
	}
	return occupied
}

// BuildSlotDay classifies every slot of the window for the target date.
func BuildSlotDay(workerID, workingHours string, target, now time.Time, existing []models.ServiceRequest) models.SlotDay {
	loc := target.Location()
	slotDate := target.Format(DateLayout)
	localNow := now.In(loc)
	isToday := slotDate == localNow.Format(DateLayout)
	nowMinutes := localNow.Hour()*60 + localNow.Minute()
	occupied := occupiedSlots(workerID, slotDate, existing, loc)

	if strings.TrimSpace(workingHours) == "" {
		workingHours = models.DefaultWorkingHours
	}
	day := models.SlotDay{
		WorkerID:     workerID,
		Date:         slotDate,
		WorkingHours: workingHours,
		Slots:        make([]models.SlotView, 0),
	}
	for _, label := range GenerateSlots(workingHours) {
		view := models.SlotView{Time: label}
		switch {
		case isToday && ParseClock(label) < nowMinutes:
			view.Blocked, view.BlockReason = true, models.SlotBlockedPast
		case occupied[label]:
			view.Blocked, view.BlockReason = true, models.SlotBlockedBooked
		}
		day.Slots = append(day.Slots, view)
	}
	return day
}

// SlotStart returns the wall-clock start of the request's slot in loc.
func SlotStart(req models.ServiceRequest, loc *time.Location) (time.Time, bool) {
	slotDate, slotTime, ok := RequestSlot(req, loc)
	if !ok {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(DateLayout, slotDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return day.Add(time.Duration(ParseClock(slotTime)) * time.Minute), true
}
