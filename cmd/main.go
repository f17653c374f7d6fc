package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"organizely/organizer/broker"
	"organizely/organizer/config"
	"organizely/organizer/database"
	"organizely/organizer/middleware"
	"organizely/organizer/models"
	"organizely/organizer/routes"
	"organizely/organizer/services"
	"organizely/organizer/utils/geocode"

	"github.com/gin-gonic/gin"
)

// completionToggleDelay is how long a deferred completion toggle stays
// cancellable before it is committed.
const completionToggleDelay = 300 * time.Millisecond

func main() {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	refs := models.DefaultReferenceSet()

	// Initialize NATS producer with better error handling
	natsAvailable := true
	if err := broker.InitProducer(cfg); err != nil {
		log.Printf("Warning: Failed to initialize NATS producer: %v", err)
		log.Println("The application will continue, but broker-dependent features will be disabled")
		natsAvailable = false
	} else {
		defer broker.CloseProducer()
	}

	// Create and initialize the WebSocket service
	webSocketService := services.NewWebSocketService()
	services.WebSocketServiceInstance = webSocketService
	webSocketService.Start(cfg)
	defer webSocketService.Stop()

	// Only run the dispatcher when the broker is reachable; events queue up
	// in the store either way.
	if natsAvailable {
		eventDispatcher := services.NewEventDispatcherService(db)
		services.EventDispatcherServiceInstance = eventDispatcher
		eventDispatcher.Start()
		defer eventDispatcher.Stop()
	} else {
		log.Println("Event dispatcher is disabled due to NATS unavailability")
	}

	// Initialize authentication service
	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpirationHours)
	services.AuthServiceInstance = authService

	// Initialize user service with auth service dependency
	userService := services.NewUserService(authService)
	services.UserServiceInstance = userService

	scheduler := services.NewCompletionScheduler(db, services.TaskServiceInstance, completionToggleDelay)
	geocoder := geocode.NewNominatimClient(cfg.GeocoderBaseURL)
	sortPrefs := services.NewSortPreferenceStore()

	if cfg.SeedDemoData {
		if err := seedDemoData(db, userService, refs); err != nil {
			log.Printf("Warning: Failed to seed demo data: %v", err)
		}
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// Authentication endpoints stay public.
	authGroup := router.Group("/api/v1/auth")
	routes.RegisterAuthRoutes(authGroup, db, authService, userService)

	// Everything else requires a valid token.
	apiGroup := router.Group("/api/v1")
	apiGroup.Use(middleware.AuthMiddleware(authService))
	routes.RegisterUserRoutes(apiGroup, db, userService)
	routes.RegisterProjectRoutes(apiGroup, db, services.ProjectServiceInstance, services.TaskServiceInstance)
	routes.RegisterTaskRoutes(apiGroup, db, services.TaskServiceInstance, scheduler, geocoder)
	routes.RegisterSubtaskRoutes(apiGroup, db, services.SubtaskServiceInstance)
	routes.RegisterViewRoutes(apiGroup, db, services.TaskServiceInstance, refs, sortPrefs)

	// WebSocket handshakes carry the token as a query parameter.
	wsGroup := router.Group("/api/v1")
	wsGroup.Use(middleware.WebSocketAuthMiddleware(authService))
	routes.RegisterWebSocketRoutes(wsGroup, webSocketService)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		// Commit any armed completion toggles before the process dies.
		scheduler.Flush()
		webSocketService.Stop()
		broker.CloseProducer()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// seedDemoData provisions the demo account and fills it with sample
// projects and tasks on first boot.
func seedDemoData(db *database.Database, userService services.UserServiceInterface, refs models.ReferenceSet) error {
	var demo models.User
	err := db.DB.Where("email = ?", "demo@organizer.local").First(&demo).Error
	if err != nil {
		demo, err = userService.Register(db, "demo@organizer.local", "demo-password", "Demo User")
		if err != nil {
			return err
		}
	}
	return database.SeedDemoData(db, demo.ID, refs)
}
