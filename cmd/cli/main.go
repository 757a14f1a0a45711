package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wadjakorntonsri/resource-directory/pkg/adapters/repository"
	"github.com/wadjakorntonsri/resource-directory/pkg/adapters/repository/jsonfile"
	"github.com/wadjakorntonsri/resource-directory/pkg/config"
	"github.com/wadjakorntonsri/resource-directory/pkg/core/domain"
	"github.com/wadjakorntonsri/resource-directory/pkg/core/services"
	"github.com/wadjakorntonsri/resource-directory/pkg/logging"
	"github.com/wadjakorntonsri/resource-directory/pkg/ports"
)

// app holds what every subcommand needs once the root command has run.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	repo      ports.CollectionRepository
	store     *services.ResourceStore
	closeRepo func() error
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var verbose bool

	root := &cobra.Command{
		Use:           "resctl",
		Short:         "Manage the resource directory data",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.Load()
			level := a.cfg.LogLevel
			if verbose {
				level = "debug"
			}
			var err error
			a.logger, err = logging.New(true, level)
			if err != nil {
				return err
			}
			a.repo, a.closeRepo, err = repository.Open(a.cfg)
			if err != nil {
				return fmt.Errorf("open %s backend: %w", a.cfg.Backend(), err)
			}
			a.store = services.NewResourceStore(a.repo, a.logger.Named("store"))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closeRepo != nil {
				_ = a.closeRepo()
			}
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newExportCmd(a),
		newImportCmd(a),
		newListCmd(a),
		newMigrateCmd(a),
	)
	return root
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the collection document to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.store.Load(cmd.Context())
			data, err := jsonfile.Encode(c)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Append resources from a document or JSON array, assigning new ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			resources, err := decodeResources(data)
			if err != nil {
				return err
			}
			n, err := importResources(cmd.Context(), a.store, resources)
			a.logger.Info("import finished", zap.Int("imported", n), zap.Int("total", len(resources)))
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file to import")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print resources in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResources(cmd.OutOrStdout(), a.store.Search(cmd.Context(), query))
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "only resources matching this text")
	return cmd
}

func newMigrateCmd(a *app) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy a JSON data file into the configured backend, keeping ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := jsonfile.NewJSONFileRepository(from).Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("read %s: %w", from, err)
			}
			src.Normalize()
			if err := a.store.Save(cmd.Context(), src); err != nil {
				return err
			}
			a.logger.Info("migrated collection",
				zap.String("from", from),
				zap.String("backend", a.cfg.Backend()),
				zap.Int("resources", len(src.Resources)),
				zap.Int64("next_id", src.NextID))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from-file", "", "source JSON data file")
	_ = cmd.MarkFlagRequired("from-file")
	return cmd
}

// decodeResources accepts either a full collection document or a bare array.
func decodeResources(data []byte) ([]domain.Resource, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []domain.Resource
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode resource array: %w", err)
		}
		return list, nil
	}

	var c domain.Collection
	if err := json.Unmarshal(trimmed, &c); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	return c.Sorted(), nil
}

func importResources(ctx context.Context, store ports.ResourceStore, resources []domain.Resource) (int, error) {
	count := 0
	for _, r := range resources {
		if r.Name == "" {
			continue
		}
		_, err := store.Add(ctx, domain.ResourceInput{
			Name:        r.Name,
			Type:        r.Type,
			Description: r.Description,
			TGLink:      r.TGLink,
			PanLink:     r.PanLink,
			PanPass:     r.PanPass,
			Tags:        r.Tags,
		})
		if err != nil {
			return count, fmt.Errorf("import %q: %w", r.Name, err)
		}
		count++
	}
	return count, nil
}

func printResources(w io.Writer, resources []domain.Resource) error {
	for _, r := range resources {
		if _, err := fmt.Fprintf(w, "%d\t%d\t%s\n", r.ID, r.SortOrder, r.Name); err != nil {
			return err
		}
	}
	return nil
}
