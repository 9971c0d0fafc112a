package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/handlers"
	"studentresults/internal/config"
	"studentresults/internal/database"
	"studentresults/internal/handler"
	"studentresults/internal/logger"
	"studentresults/internal/service"
	"studentresults/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	appLogger, logCloser, err := logger.New(cfg.LogDir, "results")
	if err != nil {
		return err
	}
	defer logCloser.Close()

	// Initialize roster store
	roster, err := openStore(cfg)
	if err != nil {
		return err
	}
	level.Info(appLogger).Log("msg", "roster store ready", "backend", cfg.Backend)

	recordService := service.NewRecordService(roster, appLogger)

	// Setup router
	r := handler.NewRouter(recordService, appLogger, cfg.RateLimit)

	var h http.Handler = r
	h = handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	h = handlers.CombinedLoggingHandler(os.Stdout, h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{appLogger}))(h)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Shut down gracefully on SIGINT and SIGTERM.
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdownChan
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			level.Error(appLogger).Log("msg", "server shutdown error", "err", err)
		}
	}()

	level.Info(appLogger).Log("msg", "server running", "addr", cfg.Addr())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	level.Info(appLogger).Log("msg", "server stopped")
	return nil
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.Backend == config.BackendMemory {
		return store.NewMemoryStore(), nil
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	gormStore, err := store.NewGormStore(db)
	if err != nil {
		return nil, err
	}
	return gormStore, nil
}

// recoveryLogger adapts the application logger to gorilla's RecoveryHandler.
type recoveryLogger struct {
	logger log.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	level.Error(l.logger).Log("msg", "recovered from panic", "panic", fmt.Sprint(v...))
}
