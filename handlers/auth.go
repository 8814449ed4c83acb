package handlers

import (
	"net/http"

	"sevahub/models"
	"sevahub/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves the phone login flow.
type AuthHandler struct {
	Service user.UserService
}

func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// RequestOTPHandler handles POST /api/auth/otp.
func (h *AuthHandler) RequestOTPHandler(c *gin.Context) {
	var req struct {
		Phone string `json:"phone"`
	}
	if !bindJSON(c, &req) {
		return
	}

	sessionID, err := h.Service.RequestOTP(c.Request.Context(), req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"sessionId": sessionID,
		"message":   "OTP sent",
	})
}

// VerifyOTPHandler handles POST /api/auth/verify. Unknown phones get needRegistration.
func (h *AuthHandler) VerifyOTPHandler(c *gin.Context) {
	var req struct {
		SessionID string `json:"sessionId"`
		OTP       string `json:"otp"`
	}
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.Service.VerifyOTP(c.Request.Context(), req.SessionID, req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RegisterHandler handles POST /api/auth/register.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var in models.RegistrationInput
	if !bindJSON(c, &in) {
		return
	}

	res, err := h.Service.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Registration complete", zap.String("id", res.User.ID), zap.String("role", string(res.User.Role)))
	c.JSON(http.StatusCreated, res)
}
