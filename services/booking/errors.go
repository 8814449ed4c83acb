package booking

import (
	"errors"

	requestRepo "sevahub/database/repository/request"
	userRepo "sevahub/database/repository/user"
	"sevahub/utils"
)

var (
	ErrNotFound          = requestRepo.ErrNotFound
	ErrStatusConflict    = requestRepo.ErrStatusConflict
	ErrSlotTaken         = requestRepo.ErrSlotTaken
	ErrWorkerNotFound    = userRepo.ErrNotFound
	ErrForbidden         = errors.New("not a party to this request")
	ErrUsersOnly         = errors.New("only user accounts can book workers")
	ErrWorkerUnavailable = errors.New("worker is not available for booking")
	ErrAlreadyRated      = errors.New("request has already been rated")
	ErrNotRatable        = errors.New("only completed requests can be rated")
	ErrSessionNotFound   = errors.New("booking session not found or expired")
)

// ValidationError reports bad caller input before anything is stored.
type ValidationError = utils.ValidationError

func invalid(field, format string, args ...any) error {
	return utils.Invalid(field, format, args...)
}
