package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"precojusto-backend/cart"
	"precojusto-backend/catalog"
	"precojusto-backend/config"
	"precojusto-backend/database"
	"precojusto-backend/feedback"
	"precojusto-backend/firebase"
	"precojusto-backend/imaging"
	"precojusto-backend/logger"
	"precojusto-backend/middleware"
	"precojusto-backend/routes"
	"precojusto-backend/search"
	"precojusto-backend/suggest"
)

const cleanupInterval = 5 * time.Minute

func main() {
	// Load environment variables
	config.LoadEnv()

	if err := logger.Initialize(config.GetEnv("APP_ENV", "development")); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	log := logger.Log

	if err := config.ValidateEnv(); err != nil {
		log.Fatal("Environment validation failed", zap.Error(err))
	}
	cfg := config.Load()

	// Prices are sent to clients as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Price ledger
	db, err := database.Connect(cfg.PriceHistoryDSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	history := database.NewPriceHistory(db, log)

	store := catalog.NewStore(catalog.Seed(time.Now()))
	store.OnPriceChange(history.Record)

	// Image storage is optional; without a bucket photos stay inline
	var storage firebase.StorageClient
	if cfg.FirebaseBucket != "" {
		s, err := firebase.Init(context.Background(), cfg.GoogleCredentials, cfg.FirebaseBucket, log)
		if err != nil {
			log.Fatal("Failed to initialize Firebase Storage", zap.Error(err))
		}
		storage = s
	} else {
		log.Warn("FIREBASE_STORAGE_BUCKET not set, product photos are stored inline")
	}

	var suggester suggest.Suggester = suggest.Noop{}
	if cfg.GeminiAPIKey != "" {
		g, err := suggest.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, log)
		if err != nil {
			log.Error("Failed to create Gemini client, suggestions disabled", zap.Error(err))
		} else {
			suggester = g
		}
	}

	lists := cart.NewRegistry(cfg.ListTTL)
	sessions := search.NewRegistry(cfg.SearchDebounce, cfg.SearchSessionTTL)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)

	stopCleanup := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				expired := lists.CleanupExpired()
				idle := sessions.CleanupIdle()
				if expired > 0 || idle > 0 {
					log.Debug("cleanup", zap.Int("lists", expired), zap.Int("search_sessions", idle))
				}
			case <-stopCleanup:
				return
			}
		}
	}()

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))

	// Limit multipart form memory to 10MB
	r.MaxMultipartMemory = 10 << 20

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Dependencies{
		Store:        store,
		Lists:        lists,
		Sessions:     sessions,
		Board:        feedback.NewBoard(cfg.FeedbackDelay, feedback.Seed()),
		Suggester:    suggester,
		History:      history,
		Storage:      storage,
		Fetcher:      imaging.NewFetcher(),
		NotifyPhone:  cfg.NotifyPhone,
		WriteLimiter: limiter,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Run server in a goroutine
	go func() {
		log.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Search streams only end when their session closes
	sessions.Close()

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	close(stopCleanup)
	limiter.Close()

	if err := database.Close(db); err != nil {
		log.Error("Error closing database connection", zap.Error(err))
	} else {
		log.Info("Database connection closed")
	}

	log.Info("Server exited gracefully")
}
