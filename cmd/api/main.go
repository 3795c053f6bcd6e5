package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/up2ustore/bundles-backend/api/routes"
	"github.com/up2ustore/bundles-backend/internal/config"
	"github.com/up2ustore/bundles-backend/internal/handlers"
	"github.com/up2ustore/bundles-backend/internal/metrics"
	"github.com/up2ustore/bundles-backend/internal/repositories"
	mongorepo "github.com/up2ustore/bundles-backend/internal/repositories/mongodb"
	"github.com/up2ustore/bundles-backend/internal/services"
	"github.com/up2ustore/bundles-backend/pkg/mongodb"
	"github.com/up2ustore/bundles-backend/pkg/paystack"
)

func main() {
	// Load .env if present; real deployments supply the environment directly
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogger(cfg.LogLevel)
	metrics.Init()

	// Connect to MongoDB
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelConnect()

	mongoClient, err := mongodb.NewClient(connectCtx, cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelIndex()
	if err := mongorepo.EnsureIndexes(indexCtx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Initialize repositories
	var transactionRepo repositories.TransactionRepository = mongorepo.NewTransactionRepository(db)
	var adminRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)

	// Initialize gateway client and services
	gateway := paystack.NewClient(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey)

	transactionService := services.NewTransactionService(transactionRepo)
	verificationService := services.NewVerificationService(transactionRepo, gateway)
	authService := services.NewAuthService(adminRepo, cfg)

	// Initialize handlers
	handlerDeps := routes.HandlerDependencies{
		TransactionHandler:  handlers.NewTransactionHandler(transactionService),
		VerificationHandler: handlers.NewVerificationHandler(verificationService, cfg),
		BundleHandler:       handlers.NewBundleHandler(),
		AuthHandler:         handlers.NewAuthHandler(authService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	slog.Info("Server starting", "port", cfg.Server.Port)

	// Run server in a goroutine so that it doesn't block
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	slog.Info("Server exiting")
}

func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
