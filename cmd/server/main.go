package main

import (
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/portbound/go-filedb/internal/config"
	"github.com/portbound/go-filedb/internal/handlers"
	"github.com/portbound/go-filedb/internal/infrastructure/cache"
	"github.com/portbound/go-filedb/internal/infrastructure/database/sqlite"
	"github.com/portbound/go-filedb/internal/middleware"
	"github.com/portbound/go-filedb/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	accessOut, errorOut, closeLogs, err := setupLogOutputs(cfg.LogDir)
	if err != nil {
		log.Fatalf("failed to set up log outputs: %v", err)
	}
	defer closeLogs()

	accessLogger := slog.New(slog.NewJSONHandler(accessOut, &slog.HandlerOptions{Level: slog.LevelInfo}))
	errorLogger := slog.New(slog.NewJSONHandler(errorOut, &slog.HandlerOptions{Level: slog.LevelInfo}))

	db, err := sqlite.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: failed to open database: %v", err)
	}
	defer db.Close()

	recordCache, err := cache.NewLRU(cfg.CacheSize)
	if err != nil {
		log.Fatalf("main: failed to create record cache: %v", err)
	}

	fileService := services.NewFileService(db, recordCache)
	fileHandler := handlers.NewFileHandler(fileService, errorLogger)

	mux := http.NewServeMux()
	fileHandler.RegisterRoutes(mux)

	loggingMW := middleware.NewLoggingMiddleware(accessLogger)
	server := http.Server{
		Addr:    cfg.ServerPort,
		Handler: loggingMW.LogRequest(mux),
	}

	log.Printf("starting server on port %s\n", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("error: server failed to start: %v", err)
	}
}

// setupLogOutputs writes access/error logs under dir, falling back to
// stdout/stderr when no dir is configured.
func setupLogOutputs(dir string) (accessOut io.Writer, errorOut io.Writer, closeLogs func(), err error) {
	if dir == "" {
		return os.Stdout, os.Stderr, func() {}, nil
	}

	accessLog, err := os.OpenFile(filepath.Join(dir, "access.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, nil, nil, err
	}

	errorLog, err := os.OpenFile(filepath.Join(dir, "error.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		accessLog.Close()
		return nil, nil, nil, err
	}

	return accessLog, errorLog, func() {
		accessLog.Close()
		errorLog.Close()
	}, nil
}
