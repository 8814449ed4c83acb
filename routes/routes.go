package routes

import (
	"time"

	"sevahub/handlers"
	"sevahub/middleware"
	"sevahub/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the phone login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/otp", hb.Auth.RequestOTPHandler)
		api.POST("/verify", hb.Auth.VerifyOTPHandler)
		api.POST("/register", hb.Auth.RegisterHandler)
	}
}

// RegisterAccountRoutes registers the caller's own profile endpoints.
func RegisterAccountRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/me")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("", hb.Account.MeHandler)
		api.PUT("/fcm-token", hb.Account.UpdateFCMTokenHandler)
	}
}

// RegisterWorkerRoutes registers worker browsing and worker self-service endpoints.
func RegisterWorkerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/workers")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))

		self := api.Group("/me")
		self.Use(middleware.RequireRole(models.RoleWorker))
		self.PUT("/availability", hb.Account.SetAvailabilityHandler)
		self.PATCH("/profile", hb.Account.UpdateWorkerProfileHandler)
		self.POST("/photo", hb.Account.UploadPhotoHandler)

		api.GET("", hb.Booking.ListWorkersHandler)
		api.GET("/:id", hb.Booking.GetWorkerHandler)
		api.GET("/:id/slots", hb.Booking.SlotDayHandler)
	}
}

// RegisterBookingRoutes sets up the step-by-step booking session endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleUser))
		bookingGroup.POST("/session", hb.Booking.StartSessionHandler)
		bookingGroup.PUT("/session/:id/date", hb.Booking.SelectDateHandler)
		bookingGroup.PUT("/session/:id/slot", hb.Booking.SelectSlotHandler)
		bookingGroup.POST("/session/:id/confirm", hb.Booking.ConfirmSessionHandler)
		bookingGroup.DELETE("/session/:id", hb.Booking.CancelSessionHandler)
	}
}

// RegisterRequestRoutes sets up service request endpoints and the live feed.
func RegisterRequestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/requests")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", middleware.RequireRole(models.RoleUser), hb.Booking.CreateRequestHandler)
		api.GET("", hb.Booking.ListRequestsHandler)
		api.GET("/live", hb.Feed.LiveRequestsHandler)
		api.GET("/:id", hb.Booking.GetRequestHandler)
		api.POST("/:id/actions/:action", hb.Booking.ApplyActionHandler)
		api.POST("/:id/rating", middleware.RequireRole(models.RoleUser), hb.Booking.RateHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleAdmin))
		adminGroup.GET("/dashboard", hb.Admin.DashboardHandler)
		adminGroup.GET("/workers", hb.Admin.ListWorkersHandler)
		adminGroup.PUT("/workers/:id/active", hb.Admin.SetWorkerActiveHandler)
		adminGroup.GET("/requests", hb.Booking.ListRequestsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterAccountRoutes(r, hb)
	RegisterWorkerRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterRequestRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
