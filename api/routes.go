package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/worldreach/careers/internal/config"
	"github.com/worldreach/careers/internal/db"
	"github.com/worldreach/careers/internal/forms"
	"github.com/worldreach/careers/internal/repository/sqlite"
	"github.com/worldreach/careers/internal/storage"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB, docs storage.DocumentStore) (*mux.Router, error) {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(database, logger)

	validator, err := forms.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("compile form schemas: %w", err)
	}

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	jobsHandler := NewJobsHandler(repo, validator)
	applicationsHandler := NewApplicationsHandler(repo, repo, docs)
	exportHandler := NewExportHandler(repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")
	r.HandleFunc("/v1/jobs", jobsHandler.ListJobs).Methods("GET")
	r.HandleFunc("/v1/jobs/{id:[0-9]+}", jobsHandler.GetJob).Methods("GET")
	r.HandleFunc("/v1/applications", applicationsHandler.Submit).Methods("POST")

	adminAuth := AdminAuthMiddlewareWithSecret(cfg.JWTSecret)

	// Auth endpoints behind the guard
	authV1 := r.PathPrefix("/v1/auth").Subrouter()
	authV1.Use(adminAuth)
	authV1.HandleFunc("/signout", authHandler.Signout).Methods("POST")
	authV1.HandleFunc("/me", authHandler.Me).Methods("GET")

	// Admin dashboard endpoints
	adminV1 := r.PathPrefix("/v1/admin").Subrouter()
	adminV1.Use(adminAuth)
	adminV1.HandleFunc("/jobs", jobsHandler.CreateJob).Methods("POST")
	adminV1.HandleFunc("/jobs/{id:[0-9]+}", jobsHandler.UpdateJob).Methods("PUT")
	adminV1.HandleFunc("/jobs/{id:[0-9]+}", jobsHandler.DeleteJob).Methods("DELETE")
	adminV1.HandleFunc("/applications", applicationsHandler.ListApplications).Methods("GET")

	// CSV export keeps its historical path outside /v1
	r.Handle("/export-applications", adminAuth(http.HandlerFunc(exportHandler.ExportApplications))).Methods("GET")

	return r, nil
}
