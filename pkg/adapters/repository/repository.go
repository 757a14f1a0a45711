// Package repository selects the collection backend from configuration.
package repository

import (
	"github.com/wadjakorntonsri/resource-directory/pkg/adapters/repository/jsonfile"
	"github.com/wadjakorntonsri/resource-directory/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/resource-directory/pkg/config"
	"github.com/wadjakorntonsri/resource-directory/pkg/ports"
)

// Open returns the configured repository and a close function to release it.
func Open(cfg *config.Config) (ports.CollectionRepository, func() error, error) {
	if cfg.Backend() == config.BackendSQLite {
		repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	}
	return jsonfile.NewJSONFileRepository(cfg.DataFile), func() error { return nil }, nil
}
