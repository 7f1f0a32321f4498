package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ecoTrackAPI/handlers"
	"ecoTrackAPI/middleware"
	"ecoTrackAPI/services"
	"ecoTrackAPI/store/postgres"
)

var (
	dbPool          *pgxpool.Pool
	activityService *services.ActivityService
	badgeService    *services.BadgeService
	goalService     *services.GoalService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to database")

	activityStore := postgres.NewActivityStore(dbPool)
	statsStore := postgres.NewStatsStore(dbPool)
	badgeStore := postgres.NewBadgeStore(dbPool)
	goalStore := postgres.NewGoalStore(dbPool)

	badgeService = services.NewBadgeService(statsStore, badgeStore)
	activityService = services.NewActivityService(activityStore, badgeService)
	goalService = services.NewGoalService(goalStore, activityStore, badgeService)

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	activityHandler := handlers.NewActivityHandler(activityService)
	badgeHandler := handlers.NewBadgeHandler(badgeService)
	goalHandler := handlers.NewGoalHandler(goalService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "ecoTrack-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER (REQUIRES IDENTITY HEADER)
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.IdentityMiddleware)

	api.HandleFunc("/activities", activityHandler.CreateActivity).Methods("POST")
	api.HandleFunc("/activities", activityHandler.GetActivities).Methods("GET")
	api.HandleFunc("/activities/{id}", activityHandler.DeleteActivity).Methods("DELETE")

	api.HandleFunc("/goals", goalHandler.CreateGoal).Methods("POST")
	api.HandleFunc("/goals", goalHandler.GetGoals).Methods("GET")
	api.HandleFunc("/goals/history", goalHandler.GetGoalHistory).Methods("GET")
	api.HandleFunc("/goals/refresh", goalHandler.RefreshGoals).Methods("POST")
	api.HandleFunc("/goals/{id}", goalHandler.UpdateGoal).Methods("PUT")

	api.HandleFunc("/badges", badgeHandler.GetBadges).Methods("GET")
	api.HandleFunc("/badges/recent", badgeHandler.GetRecentBadges).Methods("GET")
	api.HandleFunc("/badges/stats", badgeHandler.GetBadgeStats).Methods("GET")
	api.HandleFunc("/badges/leaderboard", badgeHandler.GetBadgeLeaderboard).Methods("GET")

	// Background goal refresh keeps expired windows from lingering for users
	// who never hit the goals endpoints.
	refreshInterval := 15 * time.Minute
	scheduler, err := services.StartGoalRefreshScheduler(goalService, refreshInterval)
	if err != nil {
		log.Fatal("Failed to start goal refresh scheduler:", err)
	}

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-User-ID"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	if err := scheduler.Shutdown(); err != nil {
		log.Printf("Scheduler shutdown error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
