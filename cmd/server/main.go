package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/worldreach/careers/api"
	dbfs "github.com/worldreach/careers/db"
	"github.com/worldreach/careers/internal/config"
	"github.com/worldreach/careers/internal/db"
	"github.com/worldreach/careers/internal/repository/sqlite"
	"github.com/worldreach/careers/internal/storage"
	"github.com/worldreach/careers/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting careers server version %s (built at %s)", version, buildTime)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)

	ctx := context.Background()

	// Open database connection
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}

	if err := db.Migrate(ctx, database, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	if err := bootstrapAdmin(ctx, database, cfg.AdminUsername); err != nil {
		log.Fatalf("Failed to bootstrap admin: %v", err)
	}

	docs, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to init document store: %v", err)
	}

	handler, err := api.SetupRoutes(cfg, version, buildTime, database, docs)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Close database connection
	if err := database.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Server exited")
}

// bootstrapAdmin creates the first admin account when none exists yet. The
// password is taken from CAREERS_ADMIN_PASSWORD only; there is no built-in
// default credential.
func bootstrapAdmin(ctx context.Context, database *db.DB, username string) error {
	repo := sqlite.New(database, nil)

	n, err := repo.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	password := os.Getenv("CAREERS_ADMIN_PASSWORD")
	if password == "" {
		log.Println("No admin account exists and CAREERS_ADMIN_PASSWORD is not set; admin signin will be unavailable")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if _, err := repo.CreateAdmin(ctx, &models.Admin{Username: username, Role: "administrator", PasswordHash: string(hash)}); err != nil {
		return err
	}
	log.Printf("Created initial admin account %q", username)

	return nil
}
