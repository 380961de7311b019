package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/fsnotify.v1"

	"github.com/coolbeans/gaceta/pkg/config"
	"github.com/coolbeans/gaceta/pkg/engine"
	"github.com/coolbeans/gaceta/pkg/store"
)

// settleDelay gives a dropped file time to finish writing before it is read.
const settleDelay = 500 * time.Millisecond

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Watch a drop directory and catalogue new documents",
		Long: `Watch a directory for new .txt files and structure each one into the
SQLite catalog as it appears. With --config the configuration file is
also watched: edits to keyword tables take effect without a restart.

Example:
  gaceta watch ./incoming --db catalog.db --config gaceta.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			configPath, _ := cmd.Flags().GetString("config")
			if dbPath == "" {
				return fmt.Errorf("--db flag is required")
			}

			catalog, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer catalog.Close()

			w, err := newWatchRunner(configPath, catalog)
			if err != nil {
				return err
			}
			defer w.stop()

			fmt.Printf("Watching %s (%s)\n", args[0], w.registry.Describe())
			return w.run(cmd.Context(), args[0])
		},
	}
	cmd.Flags().String("db", "", "SQLite catalog path")
	cmd.Flags().String("config", "", "YAML config file (hot-reloaded)")
	return cmd
}

// watchRunner structures dropped files with whatever configuration is
// currently active.
type watchRunner struct {
	registry *config.Registry
	catalog  *store.Catalog
	runID    string

	mu  sync.RWMutex
	eng *engine.Engine
}

func newWatchRunner(configPath string, catalog *store.Catalog) (*watchRunner, error) {
	var registry *config.Registry
	if configPath != "" {
		r, err := config.NewRegistryFromFile(configPath)
		if err != nil {
			return nil, err
		}
		registry = r
	} else {
		registry = config.NewRegistry(config.Default())
	}

	eng, err := engine.New(registry.Current())
	if err != nil {
		return nil, err
	}
	w := &watchRunner{
		registry: registry,
		catalog:  catalog,
		runID:    uuid.NewString(),
		eng:      eng,
	}

	registry.SetOnChange(func(cfg config.Config) {
		rebuilt, err := engine.New(cfg)
		if err != nil {
			slog.Warn("config reload produced unusable engine", "error", err)
			return
		}
		w.mu.Lock()
		w.eng = rebuilt
		w.mu.Unlock()
		slog.Info("configuration reloaded", "summary", w.registry.Describe())
	})
	if configPath != "" {
		if err := registry.Watch(); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *watchRunner) engine() *engine.Engine {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.eng
}

func (w *watchRunner) stop() {
	w.registry.StopWatch()
}

// run blocks until the context is cancelled, processing files already in the
// directory and then each new arrival.
func (w *watchRunner) run(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	// Catch up on files present before the watch started.
	existing, err := collectTextFiles(dir)
	if err != nil {
		return err
	}
	for _, path := range existing {
		w.process(ctx, path)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".txt") {
				continue
			}
			time.Sleep(settleDelay)
			w.process(ctx, event.Name)

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", werr)
		}
	}
}

func (w *watchRunner) process(ctx context.Context, path string) {
	raw, err := readRaw(path, "", "")
	if err != nil {
		slog.Warn("skipping unreadable file", "path", path, "error", err)
		return
	}
	eng := w.engine()
	doc, err := eng.Structure(raw)
	if err != nil {
		slog.Warn("skipping unstructurable file", "path", path, "error", err)
		return
	}
	if err := w.catalog.Save(ctx, eng.Record(doc), w.runID); err != nil {
		slog.Error("catalog save failed", "path", path, "error", err)
		return
	}
	fmt.Printf("  catalogued %s as %s\n", filepath.Base(path), doc.ID)
	_ = os.Stdout.Sync()
}
