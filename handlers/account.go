package handlers

import (
	"net/http"

	"sevahub/models"
	"sevahub/services/user"

	"github.com/gin-gonic/gin"
)

// maxPhotoBytes caps profile photo uploads.
const maxPhotoBytes = 5 << 20

// AccountHandler serves the caller's own profile.
type AccountHandler struct {
	Service user.UserService
}

func NewAccountHandler(svc user.UserService) *AccountHandler {
	return &AccountHandler{Service: svc}
}

// MeHandler handles GET /api/me.
func (h *AccountHandler) MeHandler(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, account)
}

// UpdateFCMTokenHandler handles PUT /api/me/fcm-token.
func (h *AccountHandler) UpdateFCMTokenHandler(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	var req struct {
		FCMToken string `json:"fcmToken"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.UpdateFCMToken(c.Request.Context(), account.ID, req.FCMToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "FCM token updated"})
}

// SetAvailabilityHandler handles PUT /api/workers/me/availability.
func (h *AccountHandler) SetAvailabilityHandler(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	var req struct {
		AvailabilityStatus models.Availability `json:"availabilityStatus"`
	}
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.Service.SetAvailability(c.Request.Context(), account, req.AvailabilityStatus)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateWorkerProfileHandler handles PATCH /api/workers/me/profile.
func (h *AccountHandler) UpdateWorkerProfileHandler(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	var update models.WorkerProfileUpdate
	if !bindJSON(c, &update) {
		return
	}
	updated, err := h.Service.UpdateWorkerProfile(c.Request.Context(), account, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UploadPhotoHandler handles POST /api/workers/me/photo with a multipart "photo" field.
func (h *AccountHandler) UploadPhotoHandler(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoBytes)
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "could not read photo"})
		return
	}
	defer file.Close()

	updated, err := h.Service.UploadProfilePhoto(c.Request.Context(), account, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
