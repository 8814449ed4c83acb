package notification

import (
	"context"
	"fmt"

	"sevahub/models"

	"go.uber.org/zap"
)

// statusMessages holds the push text for each status, keyed by who receives it.
var statusMessages = map[models.RequestStatus]struct {
	target models.Role
	title  string
	body   string
}{
	models.StatusAccepted:        {models.RoleUser, "Request accepted", "%s accepted your %s request%s."},
	models.StatusRejected:        {models.RoleUser, "Request declined", "%s cannot take your %s request%s."},
	models.StatusUserStarted:     {models.RoleWorker, "Customer confirmed arrival", "%s confirmed you have arrived for %s%s."},
	models.StatusInProgress:      {models.RoleUser, "Work started", "%s has started your %s job%s."},
	models.StatusWorkerCompleted: {models.RoleUser, "Job marked done", "%s marked your %s job done%s. Please verify and pay."},
	models.StatusCompleted:       {models.RoleWorker, "Payment confirmed", "%s verified and paid for %s%s."},
}

func slotSuffix(req *models.ServiceRequest) string {
	if req.SlotTime == "" {
		return ""
	}
	return fmt.Sprintf(" at %s on %s", req.SlotTime, req.SlotDate)
}

func requestData(req *models.ServiceRequest, kind string) map[string]string {
	return map[string]string{
		"type":        kind,
		"requestId":   req.ID,
		"status":      string(req.Status),
		"serviceType": req.ServiceType,
		"slotDate":    req.SlotDate,
		"slotTime":    req.SlotTime,
	}
}

// NotifyNewRequest pushes the new booking to the worker without blocking the caller.
func (s *DefaultNotificationService) NotifyNewRequest(_ context.Context, req *models.ServiceRequest) {
	title := "New service request"
	body := fmt.Sprintf("%s from %s booked you for %s%s.", req.UserName, req.UserVillage, req.ServiceType, slotSuffix(req))
	data := requestData(req, "new_request")
	workerID := req.WorkerID

	s.async(func() {
		if err := s.SendPushNotification(context.Background(), workerID, title, body, data); err != nil {
			s.Logger.Warn("Failed to push new request", zap.String("requestId", data["requestId"]), zap.Error(err))
		}
	})
}

// NotifyStatusChange tells the other party that the request moved.
func (s *DefaultNotificationService) NotifyStatusChange(_ context.Context, req *models.ServiceRequest) {
	msg, ok := statusMessages[req.Status]
	if !ok {
		return
	}

	recipient, actor := req.UserID, req.WorkerName
	if msg.target == models.RoleWorker {
		recipient, actor = req.WorkerID, req.UserName
	}
	body := fmt.Sprintf(msg.body, actor, req.ServiceType, slotSuffix(req))
	data := requestData(req, "status_change")

	s.async(func() {
		if err := s.SendPushNotification(context.Background(), recipient, msg.title, body, data); err != nil {
			s.Logger.Warn("Failed to push status change", zap.String("requestId", data["requestId"]), zap.Error(err))
		}
	})
}
