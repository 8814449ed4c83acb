package utils

import "time"

const (
	// AuthSessionTTL bounds how long an OTP stays valid.
	AuthSessionTTL = 5 * time.Minute

	// BookingSessionTTL bounds an abandoned booking session.
	BookingSessionTTL = 30 * time.Minute

	// MaxOTPAttempts is the number of wrong codes tolerated per auth session.
	MaxOTPAttempts = 5

	OTPLength = 6
)
