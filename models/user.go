package models

import "time"

type Role string

const (
	RoleUser   Role = "user"
	RoleWorker Role = "worker"
	RoleAdmin  Role = "admin"
)

// Availability is the broadcast flag a worker shows to users.
type Availability string

const (
	AvailabilityAvailable Availability = "Available"
	AvailabilityBusy      Availability = "Busy"
	AvailabilityOffline   Availability = "Offline"
)

func (a Availability) Valid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityOffline:
		return true
	}
	return false
}

// DefaultWorkingHours applies when a worker has not set a window.
const DefaultWorkingHours = "09:00 AM - 06:00 PM"

type Location struct {
	Village  string `bson:"village,omitempty" json:"village,omitempty"`
	Taluk    string `bson:"taluk,omitempty" json:"taluk,omitempty"`
	District string `bson:"district,omitempty" json:"district,omitempty"`
	Pincode  string `bson:"pincode,omitempty" json:"pincode,omitempty"`
}

// UserProfile is an account of any role. Worker-only fields stay empty for users.
type UserProfile struct {
	ID                 string       `bson:"id" json:"id"`
	Name               string       `bson:"name" json:"name"`
	Phone              string       `bson:"phone" json:"phone"`
	Role               Role         `bson:"role" json:"role"`
	Village            string       `bson:"village,omitempty" json:"village,omitempty"`
	Location           Location     `bson:"location,omitempty" json:"location"`
	Gender             string       `bson:"gender,omitempty" json:"gender,omitempty"`
	PreferredLanguage  string       `bson:"preferredLanguage,omitempty" json:"preferredLanguage,omitempty"`
	ProfilePhoto       string       `bson:"profilePhoto,omitempty" json:"profilePhoto,omitempty"`
	WorkerCode         string       `bson:"workerId,omitempty" json:"workerId,omitempty"` // WRK001...
	SkillCategory      string       `bson:"skillCategory,omitempty" json:"skillCategory,omitempty"`
	Services           []string     `bson:"services,omitempty" json:"services,omitempty"`
	ExperienceYears    int          `bson:"experienceYears,omitempty" json:"experienceYears,omitempty"`
	Bio                string       `bson:"bio,omitempty" json:"bio,omitempty"`
	WorkingHours       string       `bson:"workingHours,omitempty" json:"workingHours,omitempty"`
	AvailabilityStatus Availability `bson:"availabilityStatus,omitempty" json:"availabilityStatus,omitempty"`
	CallEnabled        bool         `bson:"callEnabled" json:"callEnabled"`
	IsActive           *bool        `bson:"isActive,omitempty" json:"isActive,omitempty"`
	FCMToken           string       `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt          time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// Active treats a missing isActive flag as active.
func (u *UserProfile) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

// EffectiveWorkingHours returns the stored window or the default.
func (u *UserProfile) EffectiveWorkingHours() string {
	if u.WorkingHours == "" {
		return DefaultWorkingHours
	}
	return u.WorkingHours
}

// OffersService reports whether the worker lists the given service.
func (u *UserProfile) OffersService(service string) bool {
	for _, s := range u.Services {
		if s == service {
			return true
		}
	}
	return false
}

// RegistrationInput completes a phone login for a new account.
type RegistrationInput struct {
	SessionID         string   `json:"sessionId"`
	Name              string   `json:"name"`
	Role              Role     `json:"role"`
	Village           string   `json:"village"`
	Location          Location `json:"location"`
	Gender            string   `json:"gender"`
	PreferredLanguage string   `json:"preferredLanguage"`
	SkillCategory     string   `json:"skillCategory"`
	Services          []string `json:"services"`
	ExperienceYears   int      `json:"experienceYears"`
	Bio               string   `json:"bio"`
	WorkingHours      string   `json:"workingHours"`
	CallEnabled       bool     `json:"callEnabled"`
}

// WorkerProfileUpdate carries the editable worker fields. Nil means unchanged.
type WorkerProfileUpdate struct {
	Name            *string   `json:"name,omitempty"`
	Village         *string   `json:"village,omitempty"`
	Location        *Location `json:"location,omitempty"`
	SkillCategory   *string   `json:"skillCategory,omitempty"`
	Services        []string  `json:"services,omitempty"`
	ExperienceYears *int      `json:"experienceYears,omitempty"`
	Bio             *string   `json:"bio,omitempty"`
	WorkingHours    *string   `json:"workingHours,omitempty"`
	CallEnabled     *bool     `json:"callEnabled,omitempty"`
}

// AuthResult is returned by OTP verification.
type AuthResult struct {
	NeedRegistration bool         `json:"needRegistration"`
	SessionID        string       `json:"sessionId,omitempty"`
	Token            string       `json:"token,omitempty"`
	User             *UserProfile `json:"user,omitempty"`
}
