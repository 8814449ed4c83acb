package handlers

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sevahub/models"
	"sevahub/services/feed"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticSnapshots []models.ServiceRequest

func (s staticSnapshots) ListRequests(_ context.Context, caller *models.UserProfile) ([]models.ServiceRequest, error) {
	out := []models.ServiceRequest{}
	for _, r := range s {
		if r.IsParty(caller.ID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestLiveRequestsHandler_StreamsSnapshot(t *testing.T) {
	hub := feed.NewHub(staticSnapshots{
		{ID: "r2", UserID: "u1", WorkerID: "w1"},
		{ID: "r1", UserID: "u9", WorkerID: "w1"},
	}, nil, time.Hour, zap.NewNop())

	r := gin.New()
	r.GET("/api/requests/live", withCaller(asha), NewFeedHandler(hub).LiveRequestsHandler)
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/requests/live", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	scanner := bufio.NewScanner(resp.Body)
	var event, data string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event:") {
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		}
		if strings.HasPrefix(line, "data:") {
			data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			break
		}
	}
	assert.Equal(t, "requests", event)
	assert.Contains(t, data, `"id":"r2"`)
	assert.NotContains(t, data, `"id":"r1"`)
}

func TestLiveRequestsHandler_EndsWhenHubCloses(t *testing.T) {
	hub := feed.NewHub(staticSnapshots{{ID: "r2", UserID: "u1", WorkerID: "w1"}}, nil, time.Hour, zap.NewNop())

	r := gin.New()
	r.GET("/api/requests/live", withCaller(asha), NewFeedHandler(hub).LiveRequestsHandler)
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/requests/live", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		if strings.HasPrefix(scanner.Text(), "data:") {
			break
		}
	}
	hub.Close()

	// The handler returns, so the body reaches EOF well before the client timeout.
	for scanner.Scan() {
	}
	assert.NoError(t, scanner.Err())
	assert.NoError(t, ctx.Err())
}

func TestRespondError_FeedClosed(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, feed.ErrClosed)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
