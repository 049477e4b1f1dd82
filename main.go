package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"meetspace/config"
	"meetspace/database"
	bookingRepoPkg "meetspace/database/repository/booking"
	profileRepoPkg "meetspace/database/repository/profile"
	roomRepoPkg "meetspace/database/repository/room"
	"meetspace/events"
	"meetspace/handlers"
	"meetspace/middleware"
	"meetspace/routes"
	adminSvc "meetspace/services/admin"
	bookingSvc "meetspace/services/booking"
	roomSvc "meetspace/services/room"
	userSvc "meetspace/services/user"
	"meetspace/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Repositories.
	roomRepo := roomRepoPkg.NewMongoRoomRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	profileRepo := profileRepoPkg.NewMongoProfileRepo()

	for _, ensure := range []func() error{
		roomRepo.EnsureIndexes,
		bookingRepo.EnsureIndexes,
		profileRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	bus := events.NewBus(logger)

	// Services.
	bookingService := &bookingSvc.DefaultBookingService{
		Rooms:     roomRepo,
		Bookings:  bookingRepo,
		Bus:       bus,
		StartHour: config.AppConfig.GridStartHour,
		Interval:  time.Duration(config.AppConfig.SlotMinutes) * time.Minute,
		SlotCount: config.AppConfig.SlotCount,
	}
	roomService := &roomSvc.DefaultRoomService{
		Rooms:    roomRepo,
		Bookings: bookingRepo,
		Bus:      bus,
	}
	adminService := &adminSvc.DefaultAdminService{
		Profiles: profileRepo,
		Cache:    utils.GetCacheClient(),
	}
	userService := &userSvc.DefaultUserService{
		Profiles:  profileRepo,
		AuthCache: utils.GetAuthCacheClient(),
	}

	handlerBundle := &routes.HandlerBundle{
		Auth:     &handlers.AuthHandler{Svc: userService},
		Rooms:    &handlers.RoomHandler{Svc: roomService},
		Bookings: &handlers.BookingHandler{Svc: bookingService},
		Admin:    &handlers.AdminHandler{Svc: adminService},
		Events:   &handlers.EventsHandler{Bus: bus},

		Profiles:  profileRepo,
		AdminSvc:  adminService,
		AuthCache: utils.GetAuthCacheClient(),
	}

	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
