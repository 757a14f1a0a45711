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

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/resource-directory/pkg/adapters/handler"
	"github.com/wadjakorntonsri/resource-directory/pkg/adapters/repository"
	"github.com/wadjakorntonsri/resource-directory/pkg/config"
	"github.com/wadjakorntonsri/resource-directory/pkg/core/services"
	"github.com/wadjakorntonsri/resource-directory/pkg/logging"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.IsLocal(), cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	// Initialize Repository
	repo, closeRepo, err := repository.Open(cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	// Initialize Store
	store := services.NewResourceStore(repo, logger.Named("store"))

	// Initialize Router
	mux, err := handler.NewRouter(cfg, store, logger.Named("http"))
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("backend", cfg.Backend()),
			zap.String("admin", handler.AdminURL(cfg)))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
