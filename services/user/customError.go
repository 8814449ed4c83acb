package user

import (
	"errors"

	userRepo "sevahub/database/repository/user"
)

var (
	ErrNotFound           = userRepo.ErrNotFound
	ErrPhoneTaken         = userRepo.ErrPhoneTaken
	ErrOTPExpired         = errors.New("OTP expired or session not found")
	ErrInvalidOTP         = errors.New("OTP does not match")
	ErrTooManyAttempts    = errors.New("too many wrong OTP attempts, request a new code")
	ErrNotVerified        = errors.New("phone number not verified for this session")
	ErrAccountDisabled    = errors.New("account has been disabled")
	ErrWorkersOnly        = errors.New("only worker accounts can do this")
	ErrStorageUnavailable = errors.New("photo storage is not configured")
)
