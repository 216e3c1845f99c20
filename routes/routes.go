package routes

import (
	"net/http"
	"time"

	"servitech/handlers"
	"servitech/middleware"
	"servitech/session"
	"servitech/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers and the session resolver the routes need.
type HandlerBundle struct {
	Requests      *handlers.RequestHandler
	Technicians   *handlers.TechnicianHandler
	Notifications *handlers.NotificationHandler
	Catalog       *handlers.CatalogHandler
	Sessions      *handlers.SessionHandler
	Resolver      session.Resolver
}

// RegisterCustomerRoutes registers the customer-facing request endpoints.
func RegisterCustomerRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/requests")
	{
		api.Use(middleware.SessionAuth(hb.Resolver, session.RoleCustomer))
		api.POST("", hb.Requests.Create)
		api.GET("/pending", hb.Requests.LatestActive)
		api.GET("/completed", hb.Requests.Completed)
		api.DELETE("/:id", hb.Requests.Cancel)
		api.GET("/:id/progress", hb.Requests.Progress)
		api.GET("/:id/state", hb.Requests.CurrentState)
		api.POST("/:id/settle", hb.Requests.Settle)
	}

	reports := r.Group("/api/reports")
	{
		reports.Use(middleware.SessionAuth(hb.Resolver, session.RoleCustomer))
		reports.POST("", hb.Requests.Report)
	}
}

// RegisterTechnicianRoutes registers the technician-facing dispatch endpoints.
func RegisterTechnicianRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/technician")
	{
		api.Use(middleware.SessionAuth(hb.Resolver, session.RoleTechnician))
		api.GET("/requests/available", hb.Technicians.Available)
		api.GET("/requests/assigned", hb.Technicians.Assigned)
		api.GET("/requests/completed", hb.Technicians.Completed)
		api.POST("/requests/:id/claim", hb.Technicians.Claim)
		api.PUT("/requests/:id/cancel", hb.Technicians.Cancel)
		api.POST("/requests/:id/advance", hb.Technicians.Advance)
		api.GET("/payments", hb.Technicians.Payments)
	}
}

// RegisterNotificationRoutes registers per-user notification endpoints. Both
// roles can read their own notifications, so each role gets a scoped group.
func RegisterNotificationRoutes(r *gin.Engine, hb *HandlerBundle) {
	customer := r.Group("/api/notifications")
	{
		customer.Use(middleware.SessionAuth(hb.Resolver, session.RoleCustomer))
		customer.GET("", hb.Notifications.List)
		customer.PUT("/read", hb.Notifications.MarkRead)
		customer.DELETE("/:id", hb.Notifications.Delete)
	}

	technician := r.Group("/api/technician/notifications")
	{
		technician.Use(middleware.SessionAuth(hb.Resolver, session.RoleTechnician))
		technician.GET("", hb.Notifications.List)
		technician.PUT("/read", hb.Notifications.MarkRead)
		technician.DELETE("/:id", hb.Notifications.Delete)
	}
}

// RegisterSessionRoutes registers the internal session admin endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/internal/sessions")
	{
		api.POST("", hb.Sessions.Open)
		api.DELETE("/:token", hb.Sessions.Close)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "Hi, I'm Servitech",
			"dependencies": utils.GetHealthStatus(),
		})
	})
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
	r.GET("/api/services", hb.Catalog.List)

	RegisterCustomerRoutes(r, hb)
	RegisterTechnicianRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
}
