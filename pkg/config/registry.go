package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/fsnotify.v1"
)

// Registry holds the currently active configuration and can reload it from
// a YAML file when the file changes on disk. Long-running callers (batch
// runners) use it to swap keyword tables without restarting; one-shot
// callers can ignore it and pass a Config directly.
type Registry struct {
	mu       sync.RWMutex
	cfg      Config
	path     string
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	onChange func(Config)
}

// NewRegistry returns a registry seeded with the given configuration.
func NewRegistry(cfg Config) *Registry {
	return &Registry{cfg: cfg}
}

// NewRegistryFromFile loads the file and returns a registry bound to it.
func NewRegistryFromFile(path string) (*Registry, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Registry{cfg: cfg, path: path}, nil
}

// Current returns the active configuration.
func (r *Registry) Current() Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg
}

// Reload re-reads the bound file. Invalid files leave the active
// configuration untouched.
func (r *Registry) Reload() error {
	if r.path == "" {
		return fmt.Errorf("no config file bound for reload")
	}
	cfg, err := Load(r.path)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.cfg = cfg
	onChange := r.onChange
	r.mu.Unlock()

	if onChange != nil {
		onChange(cfg)
	}
	return nil
}

// SetOnChange registers a callback invoked after each successful reload.
func (r *Registry) SetOnChange(fn func(Config)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

// Watch starts watching the bound file's directory and reloads on writes.
func (r *Registry) Watch() error {
	if r.path == "" {
		return fmt.Errorf("no config file bound for watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	r.watcher = watcher
	r.stopChan = make(chan struct{})

	go r.watchLoop()

	// Watch the directory rather than the file: editors replace files on
	// save, which drops a file-level watch.
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		r.watcher.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(r.path), err)
	}
	return nil
}

func (r *Registry) watchLoop() {
	base := filepath.Base(r.path)
	for {
		select {
		case <-r.stopChan:
			return

		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// Reload errors keep the previous config active.
			_ = r.Reload()

		case _, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// StopWatch stops watching the configuration file.
func (r *Registry) StopWatch() {
	if r.stopChan != nil {
		close(r.stopChan)
	}
	if r.watcher != nil {
		r.watcher.Close()
	}
}

// Describe returns a one-line summary of the active configuration, used by
// the CLI to confirm what was loaded.
func (r *Registry) Describe() string {
	cfg := r.Current()
	var b strings.Builder
	fmt.Fprintf(&b, "%d norm types, %d entities, %d topics", len(cfg.NormTypes), len(cfg.Entities), len(cfg.Topics))
	if r.path != "" {
		fmt.Fprintf(&b, " (from %s)", r.path)
	}
	return b.String()
}
