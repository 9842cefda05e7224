package routes

import (
	"net/http"
	"time"

	"brightsite/handlers"
	"brightsite/middleware"
	"brightsite/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers the router wires up.
type HandlerBundle struct {
	Availability *handlers.AvailabilityHandler
	Booking      *handlers.BookingHandler
	Chat         *handlers.ChatHandler
	Content      *handlers.ContentHandler
	Auth         *handlers.AuthHandler
	Storage      *handlers.StorageHandler
	Payment      *handlers.PaymentHandler
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPublicContentRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterPublicContentRoutes registers the read-only marketing surface.
func RegisterPublicContentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/services", hb.Content.ListServices)
		api.GET("/services/:slug", hb.Content.GetServiceBySlug)
		api.GET("/industries", hb.Content.ListIndustries)
		api.GET("/industries/:slug", hb.Content.GetIndustryBySlug)
		api.GET("/blog", hb.Content.ListBlogPosts)
		api.GET("/blog/:slug", hb.Content.GetBlogPostBySlug)
		api.GET("/testimonials", hb.Content.ListTestimonials)
	}
}

// RegisterBookingRoutes sets up the public booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/booking")
	{
		api.GET("/resources/:resourceId/slots", hb.Availability.AvailableSlots)
		api.POST("/bookings", hb.Booking.CreateBooking)
		api.GET("/bookings", hb.Booking.MyBookings)
		api.GET("/bookings/:id", hb.Booking.GetBooking)
	}
}

// RegisterChatRoutes sets up the visitor chat endpoints. The guest cookie is
// resolved up front; a forged cookie is rejected before any work happens.
func RegisterChatRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.Use(middleware.GuestResolutionMiddleware())
		api.POST("/sessions", hb.Chat.StartSession)
		api.GET("/sessions/:id", hb.Chat.GetSession)
		api.POST("/sessions/:id/messages", hb.Chat.PostMessage(models.ChatSenderUser))
		api.POST("/sessions/:id/read", hb.Chat.MarkRead(models.ChatSenderUser))
		api.GET("/sessions/:id/ws", hb.Chat.SessionSocket(models.ChatSenderUser))
	}
}

// RegisterWebhookRoutes sets up payment provider callbacks. No auth
// middleware: the HMAC signature is the authentication.
func RegisterWebhookRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.POST("/webhooks/stripe", hb.Payment.StripeWebhook)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	admin := r.Group("/api/admin")
	{
		admin.POST("/login", hb.Auth.Login)

		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.POST("/logout", hb.Auth.Logout)

		// Availability windows.
		admin.POST("/availability", hb.Availability.CreateWindow)
		admin.PUT("/availability/:id", hb.Availability.UpdateWindow)
		admin.DELETE("/availability/:id", hb.Availability.DeleteWindow)
		admin.GET("/availability", hb.Availability.ListWindows)

		// Booking lifecycle.
		admin.GET("/bookings", hb.Booking.ListBookings)
		admin.POST("/bookings/:id/:action", hb.Booking.Transition)

		// Chat operations.
		admin.GET("/chat/sessions", hb.Chat.ListSessions)
		admin.POST("/chat/sessions/:id/messages", hb.Chat.PostMessage(models.ChatSenderAdmin))
		admin.POST("/chat/sessions/:id/read", hb.Chat.MarkRead(models.ChatSenderAdmin))
		admin.POST("/chat/sessions/:id/end", hb.Chat.EndSession)
		admin.GET("/chat/sessions/:id/ws", hb.Chat.SessionSocket(models.ChatSenderAdmin))
		admin.GET("/chat/ws", hb.Chat.InboxSocket)

		// Content management.
		admin.POST("/services", hb.Content.CreateService)
		admin.PUT("/services/:id", hb.Content.UpdateService)
		admin.DELETE("/services/:id", hb.Content.DeleteService)
		admin.GET("/services", hb.Content.ListServices)
		admin.POST("/industries", hb.Content.CreateIndustry)
		admin.PUT("/industries/:id", hb.Content.UpdateIndustry)
		admin.DELETE("/industries/:id", hb.Content.DeleteIndustry)
		admin.GET("/industries", hb.Content.ListIndustries)
		admin.POST("/blog", hb.Content.CreateBlogPost)
		admin.PUT("/blog/:id", hb.Content.UpdateBlogPost)
		admin.DELETE("/blog/:id", hb.Content.DeleteBlogPost)
		admin.GET("/blog", hb.Content.ListBlogPosts)
		admin.POST("/testimonials", hb.Content.CreateTestimonial)
		admin.DELETE("/testimonials/:id", hb.Content.DeleteTestimonial)

		// Uploads.
		admin.POST("/uploads/:bucket", hb.Storage.UploadFileHandler)
	}
}
