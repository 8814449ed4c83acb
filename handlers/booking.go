package handlers

import (
	"net/http"

	"sevahub/models"
	"sevahub/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves workers, slots, booking sessions and requests.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// ListWorkersHandler handles GET /api/workers?service=X.
func (h *BookingHandler) ListWorkersHandler(c *gin.Context) {
	workers, err := h.Service.ListWorkers(c.Request.Context(), c.Query("service"), false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": workers})
}

// GetWorkerHandler handles GET /api/workers/:id.
func (h *BookingHandler) GetWorkerHandler(c *gin.Context) {
	worker, err := h.Service.GetWorker(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, worker)
}

// SlotDayHandler handles GET /api/workers/:id/slots?date=today|tomorrow|YYYY-MM-DD.
func (h *BookingHandler) SlotDayHandler(c *gin.Context) {
	selector, custom := parseDateQuery(c.DefaultQuery("date", string(models.DateToday)))
	day, err := h.Service.SlotDay(c.Request.Context(), c.Param("id"), selector, custom)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func parseDateQuery(v string) (models.DateSelector, string) {
	switch models.DateSelector(v) {
	case models.DateToday, models.DateTomorrow:
		return models.DateSelector(v), ""
	}
	return models.DateCustom, v
}

// StartSessionHandler handles POST /api/booking/session.
func (h *BookingHandler) StartSessionHandler(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	var in models.StartSessionInput
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Service.StartSession(c.Request.Context(), account, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// SelectDateHandler handles PUT /api/booking/session/:id/date.
func (h *BookingHandler) SelectDateHandler(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	var in models.SelectDateInput
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Service.SelectDate(c.Request.Context(), account, c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// SelectSlotHandler handles PUT /api/booking/session/:id/slot.
func (h *BookingHandler) SelectSlotHandler(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	var in models.SelectSlotInput
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Service.SelectSlot(c.Request.Context(), account, c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ConfirmSessionHandler handles POST /api/booking/session/:id/confirm.
func (h *BookingHandler) ConfirmSessionHandler(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	res, err := h.Service.ConfirmSession(c.Request.Context(), account, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// CancelSessionHandler handles DELETE /api/booking/session/:id.
func (h *BookingHandler) CancelSessionHandler(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	if err := h.Service.CancelSession(c.Request.Context(), account, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateRequestHandler handles POST /api/requests.
func (h *BookingHandler) CreateRequestHandler(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	var in models.CreateRequestInput
	if !bindJSON(c, &in) {
		return
	}
	req, err := h.Service.CreateRequest(c.Request.Context(), account, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// ListRequestsHandler handles GET /api/requests and GET /api/admin/requests.
func (h *BookingHandler) ListRequestsHandler(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	reqs, err := h.Service.ListRequests(c.Request.Context(), account)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": reqs, "count": len(reqs)})
}

// GetRequestHandler handles GET /api/requests/:id.
func (h *BookingHandler) GetRequestHandler(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	req, err := h.Service.GetRequest(c.Request.Context(), account, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"request":        req,
		"allowedActions": allowedActions(req, account),
	})
}

// allowedActions lists what the caller may do next; admins viewing other people's requests get none.
func allowedActions(req *models.ServiceRequest, account *models.UserProfile) []booking.Action {
	actions := []booking.Action{}
	switch account.ID {
	case req.WorkerID:
		actions = append(actions, booking.AllowedActions(req.Status, models.RoleWorker)...)
	case req.UserID:
		actions = append(actions, booking.AllowedActions(req.Status, models.RoleUser)...)
	}
	return actions
}

// ApplyActionHandler handles POST /api/requests/:id/actions/:action.
func (h *BookingHandler) ApplyActionHandler(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	req, err := h.Service.ApplyAction(c.Request.Context(), account, c.Param("id"), booking.Action(c.Param("action")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// RateHandler handles POST /api/requests/:id/rating.
func (h *BookingHandler) RateHandler(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	var in models.RatingInput
	if !bindJSON(c, &in) {
		return
	}
	req, err := h.Service.Rate(c.Request.Context(), account, c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
