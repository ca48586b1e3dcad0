package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lifeplanapp/lifeplan-backend/internal/ads"
	"github.com/lifeplanapp/lifeplan-backend/internal/config"
	"github.com/lifeplanapp/lifeplan-backend/internal/database"
	"github.com/lifeplanapp/lifeplan-backend/internal/handlers"
	"github.com/lifeplanapp/lifeplan-backend/internal/jobs"
	"github.com/lifeplanapp/lifeplan-backend/internal/localstore"
	"github.com/lifeplanapp/lifeplan-backend/internal/repository"
	cron "github.com/lifeplanapp/lifeplan-backend/internal/scheduler"
	"github.com/lifeplanapp/lifeplan-backend/internal/services"
	"github.com/lifeplanapp/lifeplan-backend/pkg/logger"
	"github.com/lifeplanapp/lifeplan-backend/pkg/middleware"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Open the device-scoped local store (review heuristic, onboarding flags)
	store, err := localstore.Open(cfg.LocalStorePath)
	if err != nil {
		log.Fatalf("Local store error: %v", err)
	}
	defer store.Close()

	// The ad session is owned here and injected into its handler,
	// never reached through package-level state.
	adSession := ads.NewSession(ads.Config{
		Enabled:            cfg.AdsEnabled,
		BannerUnitID:       cfg.AdBannerUnitID,
		InterstitialUnitID: cfg.AdInterstitialUnitID,
		RewardedUnitID:     cfg.AdRewardedUnitID,
	})
	if err := adSession.Initialize(context.Background()); err != nil {
		log.Fatalf("Ad session error: %v", err)
	}
	defer adSession.Dispose()

	// Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	goalRepo := repository.NewGoalRepository(db)

	// Initialize Services
	reviewService := services.NewReviewService(store, cfg.ReviewMinGoals, cfg.ReviewCooldownDays)
	goalService := services.NewGoalService(goalRepo, userRepo, reviewService)
	userService := services.NewUserService(userRepo, goalRepo)

	// Initialize Handlers
	goalHandler := handlers.NewGoalHandler(goalService)
	userHandler := handlers.NewUserHandler(userService)
	reviewHandler := handlers.NewReviewHandler(reviewService, store)
	adsHandler := handlers.NewAdsHandler(adSession)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Goal routes (protected)
	protectedRoutes := router.PathPrefix("/goals").Subrouter()
	protectedRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedRoutes.HandleFunc("", goalHandler.CreateGoalHandler).Methods("POST")
	protectedRoutes.HandleFunc("", goalHandler.GetGoalsHandler).Methods("GET")
	protectedRoutes.HandleFunc("/{id}", goalHandler.GetGoalHandler).Methods("GET")
	protectedRoutes.HandleFunc("/{id}", goalHandler.UpdateGoalHandler).Methods("PUT")
	protectedRoutes.HandleFunc("/{id}", goalHandler.DeleteGoalHandler).Methods("DELETE")
	protectedRoutes.HandleFunc("/{id}/progress", goalHandler.UpdateGoalProgressHandler).Methods("PATCH")
	protectedRoutes.HandleFunc("/{id}/complete", goalHandler.MarkGoalCompleteHandler).Methods("POST")

	// Profile routes (protected)
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.HandleFunc("/me", userHandler.GetProfileHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/me", userHandler.UpdateProfileHandler).Methods("PATCH")
	protectedUserRoutes.HandleFunc("/me", userHandler.DeleteAccountHandler).Methods("DELETE")
	protectedUserRoutes.HandleFunc("/me/recompute-stats", userHandler.RecomputeStatsHandler).Methods("POST")

	// Device-scoped routes: review prompt heuristic and onboarding flag.
	// These key on the X-Device-ID header, not on an authenticated user.
	router.HandleFunc("/review/eligibility", reviewHandler.EligibilityHandler).Methods("GET")
	router.HandleFunc("/review/shown", reviewHandler.PromptShownHandler).Methods("POST")
	router.HandleFunc("/review/completed", reviewHandler.ReviewedHandler).Methods("POST")
	router.HandleFunc("/onboarding", reviewHandler.OnboardingStatusHandler).Methods("GET")
	router.HandleFunc("/onboarding/complete", reviewHandler.OnboardingCompleteHandler).Methods("POST")
	router.HandleFunc("/onboarding/reset", reviewHandler.OnboardingResetHandler).Methods("POST")

	// Ad configuration
	router.HandleFunc("/ads/config", adsHandler.ConfigHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Schedule the nightly stats reconciliation
	reconciler := jobs.NewStatsReconciler(userService)
	cron.StartCronJobs(reconciler)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Device-ID"},
		AllowCredentials: false,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
