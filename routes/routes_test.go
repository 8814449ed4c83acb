package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sevahub/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		Auth:    handlers.NewAuthHandler(nil),
		Account: handlers.NewAccountHandler(nil),
		Booking: handlers.NewBookingHandler(nil),
		Feed:    handlers.NewFeedHandler(nil),
		Admin:   handlers.NewAdminHandler(nil, nil),
	})

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /api/auth/otp",
		"POST /api/auth/verify",
		"POST /api/auth/register",
		"GET /api/me",
		"PUT /api/me/fcm-token",
		"GET /api/workers",
		"GET /api/workers/:id",
		"GET /api/workers/:id/slots",
		"PUT /api/workers/me/availability",
		"PATCH /api/workers/me/profile",
		"POST /api/workers/me/photo",
		"POST /api/booking/session",
		"PUT /api/booking/session/:id/date",
		"PUT /api/booking/session/:id/slot",
		"POST /api/booking/session/:id/confirm",
		"DELETE /api/booking/session/:id",
		"POST /api/requests",
		"GET /api/requests",
		"GET /api/requests/live",
		"GET /api/requests/:id",
		"POST /api/requests/:id/actions/:action",
		"POST /api/requests/:id/rating",
		"GET /api/admin/dashboard",
		"GET /api/admin/workers",
		"PUT /api/admin/workers/:id/active",
		"GET /api/admin/requests",
		"GET /health",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		Auth:    handlers.NewAuthHandler(nil),
		Account: handlers.NewAccountHandler(nil),
		Booking: handlers.NewBookingHandler(nil),
		Feed:    handlers.NewFeedHandler(nil),
		Admin:   handlers.NewAdminHandler(nil, nil),
	})

	for _, path := range []string{"/api/me", "/api/requests", "/api/admin/dashboard", "/api/workers/w1/slots"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
