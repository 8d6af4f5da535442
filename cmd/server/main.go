package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gymbook/admin-app/internal/api"
	"gymbook/admin-app/internal/config"
	"gymbook/admin-app/internal/identity"
	"gymbook/admin-app/internal/repository/mongo"
	"gymbook/admin-app/internal/service"
	"gymbook/admin-app/internal/storage"
	"gymbook/admin-app/internal/watch"

	"github.com/gin-gonic/gin"
)

// @title Gym Booking Admin API
// @version 1.0
// @description Admin console API for the gym booking platform: catalog CRUD and trainer account provisioning.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting booking admin server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureGymIndexes(ctx, appDB.Collection("gyms"))
		mongo.EnsureTrainerIndexes(ctx, appDB.Collection("trainers"))
		mongo.EnsureTimeSlotIndexes(ctx, appDB.Collection("timeslots"))
		mongo.EnsureReservationIndexes(ctx, appDB.Collection("reservations"))
		identity.EnsureIdentityIndexes(ctx, appDB.Collection("auth_users"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	photoStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize photo storage: %v", err)
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserProfileRepository(appDB)
	gymRepo := mongo.NewMongoGymRepository(appDB)
	trainerRepo := mongo.NewMongoTrainerRepository(appDB)
	timeSlotRepo := mongo.NewMongoTimeSlotRepository(appDB)
	reservationRepo := mongo.NewMongoReservationRepository(appDB)
	adminRepo := mongo.NewMongoAdminAllowlistRepository(appDB)
	idp := identity.NewMongoProvider(appDB)

	// --- Watch hubs for the console's live lists ---
	gymHub := watch.NewHub()
	trainerHub := watch.NewHub()

	// --- Initialize Services ---
	guard := service.NewAdminGuard(userRepo)
	authService := service.NewAuthService(idp, userRepo, adminRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	provisioningService := service.NewProvisioningService(
		guard, idp, userRepo, trainerRepo, timeSlotRepo, reservationRepo, photoStorage, trainerHub)
	gymService := service.NewGymService(guard, gymRepo, gymHub)
	trainerService := service.NewTrainerService(guard, trainerRepo, userRepo, photoStorage, trainerHub)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret, authService, provisioningService, gymService, trainerService, gymHub, trainerHub)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
