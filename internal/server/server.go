// Package server provides the HTTP REST API for the resume pipeline.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-genie/internal/db"
	"github.com/jonathan/resume-genie/internal/llm"
	"github.com/jonathan/resume-genie/internal/pipeline"
	"github.com/jonathan/resume-genie/internal/profile"
)

// JobStore is the persistence surface the handlers read from directly.
// *db.DB satisfies it.
type JobStore interface {
	ListJobs(ctx context.Context, limit int) ([]db.Job, error)
	GetJob(ctx context.Context, id string) (*db.Job, error)
	UpdateJob(ctx context.Context, id string, fields map[string]any) (bool, error)
	GetApplication(ctx context.Context, jobID string) (*db.ApplicationPackage, error)
}

// Runner runs the pipeline operations triggered over HTTP.
// *pipeline.Pipeline satisfies it.
type Runner interface {
	Ingest(ctx context.Context) (*pipeline.IngestReport, error)
	Generate(ctx context.Context, jobID string) (*pipeline.GenerationResult, error)
}

// Config holds server configuration
type Config struct {
	Port      int
	Store     JobStore
	Runner    Runner
	Profiles  *profile.Store
	Provider  llm.Provider
	OutputDir string
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      JobStore
	runner     Runner
	profiles   *profile.Store
	provider   llm.Provider
	outputDir  string
}

// New creates a new server instance
func New(cfg Config) *Server {
	s := &Server{
		store:     cfg.Store,
		runner:    cfg.Runner,
		profiles:  cfg.Profiles,
		provider:  cfg.Provider,
		outputDir: cfg.OutputDir,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /health/llm", s.handleLLMHealth)

	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.HandleFunc("PATCH /jobs/{id}", s.handleUpdateJob)
	mux.HandleFunc("GET /jobs/{id}/package", s.handleGetPackage)
	mux.HandleFunc("GET /export_jobs", s.handleExportJobs)

	mux.HandleFunc("POST /ingest", s.handleIngest)
	mux.HandleFunc("POST /generate/{id}", s.handleGenerate)

	mux.HandleFunc("GET /profile", s.handleGetProfile)
	mux.HandleFunc("POST /profile", s.handlePutProfile)
	mux.HandleFunc("PUT /profile", s.handlePutProfile)

	// Generated artifacts are served straight from the output directory
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.OutputDir))))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // generation requests can wait on the provider
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// jsonResponse writes a JSON response with the given status
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
