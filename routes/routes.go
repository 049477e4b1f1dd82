package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	profileRepo "meetspace/database/repository/profile"
	"meetspace/handlers"
	"meetspace/middleware"
	"meetspace/services/admin"
)

// HandlerBundle groups the handlers and the dependencies the route
// middleware needs.
type HandlerBundle struct {
	Auth     *handlers.AuthHandler
	Rooms    *handlers.RoomHandler
	Bookings *handlers.BookingHandler
	Admin    *handlers.AdminHandler
	Events   *handlers.EventsHandler

	Profiles  profileRepo.ProfileRepository
	AdminSvc  admin.AdminService
	AuthCache *redis.Client
}

// RegisterUserRoutes registers registration, login and logout.
func RegisterUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)

		api.Use(middleware.AuthMiddleware(hb.Profiles, hb.AuthCache))
		api.POST("/logout", hb.Auth.Logout)
	}
}

// RegisterRoomRoutes registers the room listing and availability grid.
func RegisterRoomRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/rooms")
	{
		api.Use(middleware.AuthMiddleware(hb.Profiles, hb.AuthCache))
		api.GET("", hb.Rooms.List)
		api.GET("/:id", hb.Rooms.Get)
		api.GET("/:id/availability", hb.Bookings.Availability)
	}
}

// RegisterBookingRoutes registers the booking workflow endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.AuthMiddleware(hb.Profiles, hb.AuthCache))
		api.POST("", hb.Bookings.Create)
		api.GET("/mine", hb.Bookings.Mine)
		api.DELETE("/:id", hb.Bookings.Cancel)
	}
}

// RegisterEventRoutes registers the SSE refresh stream.
func RegisterEventRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/events")
	{
		api.Use(middleware.AuthMiddleware(hb.Profiles, hb.AuthCache))
		api.GET("", hb.Events.Stream)
	}
}

// RegisterAdminRoutes registers room management and user management,
// both behind the role gate.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.AuthMiddleware(hb.Profiles, hb.AuthCache))
		api.Use(middleware.AdminMiddleware(hb.AdminSvc))

		api.POST("/rooms", hb.Rooms.Create)
		api.PUT("/rooms/:id", hb.Rooms.Update)
		api.DELETE("/rooms/:id", hb.Rooms.Delete)

		api.GET("/users", hb.Admin.ListUsers)
		api.POST("/users/promote", hb.Admin.Promote)
		api.POST("/users/demote", hb.Admin.Demote)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and
// the CORS policy.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterRoomRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterEventRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
