package handlers

import (
	"io"
	"time"

	"sevahub/services/feed"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const keepAliveInterval = 25 * time.Second

// FeedHandler streams request snapshots over Server-Sent Events.
type FeedHandler struct {
	Hub *feed.Hub
}

func NewFeedHandler(hub *feed.Hub) *FeedHandler {
	return &FeedHandler{Hub: hub}
}

// LiveRequestsHandler handles GET /api/requests/live. Each "requests" event carries
// the caller's full newest-first list.
func (h *FeedHandler) LiveRequestsHandler(c *gin.Context) {
	account, ok := caller(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	updates, cancel, err := h.Hub.Subscribe(ctx, account)
	if err != nil {
		respondError(c, err)
		return
	}
	defer cancel()

	logger := getLogger(c)
	logger.Debug("Live feed subscribed", zap.String("caller", account.ID))

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case snapshot, open := <-updates:
			if !open {
				return false
			}
			c.SSEvent("requests", snapshot)
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		}
	})
	logger.Debug("Live feed closed", zap.String("caller", account.ID))
}
