package handlers

import (
	"errors"
	"net/http"

	"sevahub/middleware"
	"sevahub/models"
	"sevahub/services/booking"
	"sevahub/services/feed"
	"sevahub/services/user"
	"sevahub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors to HTTP responses. Anything unrecognised is a 500.
func respondError(c *gin.Context, err error) {
	var (
		verr *utils.ValidationError
		terr *booking.TransitionError
	)
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.As(err, &terr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": terr.Error()})
	case errors.Is(err, booking.ErrStatusConflict),
		errors.Is(err, booking.ErrSlotTaken),
		errors.Is(err, booking.ErrAlreadyRated),
		errors.Is(err, user.ErrPhoneTaken):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrNotFound),
		errors.Is(err, booking.ErrWorkerNotFound),
		errors.Is(err, booking.ErrSessionNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrForbidden),
		errors.Is(err, booking.ErrUsersOnly),
		errors.Is(err, user.ErrWorkersOnly),
		errors.Is(err, user.ErrAccountDisabled):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrNotRatable),
		errors.Is(err, booking.ErrWorkerUnavailable):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrOTPExpired),
		errors.Is(err, user.ErrInvalidOTP),
		errors.Is(err, user.ErrNotVerified):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrTooManyAttempts):
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrStorageUnavailable),
		errors.Is(err, feed.ErrClosed):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

// bindJSON decodes the body, answering 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		getLogger(c).Debug("Invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return false
	}
	return true
}

// caller returns the authenticated account; the auth middleware guarantees it on protected routes.
func caller(c *gin.Context) (*models.UserProfile, bool) {
	account, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return account, ok
}
