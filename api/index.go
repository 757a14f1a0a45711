package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/resource-directory/pkg/adapters/handler"
	"github.com/wadjakorntonsri/resource-directory/pkg/adapters/repository"
	"github.com/wadjakorntonsri/resource-directory/pkg/config"
	"github.com/wadjakorntonsri/resource-directory/pkg/core/services"
	"github.com/wadjakorntonsri/resource-directory/pkg/logging"
)

var mux http.Handler

func init() {
	cfg := config.Load()

	logger, err := logging.New(cfg.IsLocal(), cfg.LogLevel)
	if err != nil {
		panic(err)
	}

	// Note: On Vercel the filesystem is ephemeral; point DATABASE_URL at Turso
	// to keep resources across invocations.
	repo, _, err := repository.Open(cfg)
	if err != nil {
		logger.Fatal("open repository", zap.Error(err))
	}

	store := services.NewResourceStore(repo, logger.Named("store"))
	mux, err = handler.NewRouter(cfg, store, logger.Named("http"))
	if err != nil {
		logger.Fatal("build router", zap.Error(err))
	}
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
