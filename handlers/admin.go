package handlers

import (
	"net/http"

	"sevahub/models"
	"sevahub/services/booking"
	"sevahub/services/user"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin console.
type AdminHandler struct {
	Booking booking.BookingService
	Users   user.UserService
}

func NewAdminHandler(bookingSvc booking.BookingService, userSvc user.UserService) *AdminHandler {
	return &AdminHandler{Booking: bookingSvc, Users: userSvc}
}

// DashboardHandler handles GET /api/admin/dashboard.
func (h *AdminHandler) DashboardHandler(c *gin.Context) {
	totals, err := h.Booking.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

// ListWorkersHandler handles GET /api/admin/workers, disabled workers included.
func (h *AdminHandler) ListWorkersHandler(c *gin.Context) {
	workers, err := h.Booking.ListWorkers(c.Request.Context(), c.Query("service"), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": workers})
}

// SetWorkerActiveHandler handles PUT /api/admin/workers/:id/active.
func (h *AdminHandler) SetWorkerActiveHandler(c *gin.Context) {
	var in models.SetActiveInput
	if !bindJSON(c, &in) {
		return
	}
	if in.Active == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "active is required", "field": "active"})
		return
	}
	worker, err := h.Users.SetWorkerActive(c.Request.Context(), c.Param("id"), *in.Active)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, worker)
}
