// Package refresh keeps long-lived views warm while the console is served.
package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/jekabolt/store-console/internal/dependency"
)

// Config holds configuration for the refresh worker.
type Config struct {
	WorkerInterval time.Duration `mapstructure:"worker_interval"`
	// Dashboard also reloads the dashboard with its applied filter on every tick.
	Dashboard bool `mapstructure:"dashboard"`
}

// DefaultConfig returns default configuration values.
func DefaultConfig() Config {
	return Config{
		WorkerInterval: 5 * time.Minute,
	}
}

type CategoryRefresher interface {
	RefreshCategories(ctx context.Context)
}

// Worker re-reads the category list, and optionally the dashboard, on a
// fixed interval.
type Worker struct {
	categories CategoryRefresher
	dashboard  dependency.Reloader
	c          *Config
	ctx        context.Context
	stop       context.CancelFunc
}

// New creates a new refresh worker. dashboard may be nil.
func New(c *Config, categories CategoryRefresher, dashboard dependency.Reloader) *Worker {
	if c == nil {
		dc := DefaultConfig()
		c = &dc
	}
	if c.WorkerInterval == 0 {
		c.WorkerInterval = DefaultConfig().WorkerInterval
	}
	return &Worker{
		categories: categories,
		dashboard:  dashboard,
		c:          c,
	}
}

// Start starts the worker.
func (w *Worker) Start(ctx context.Context) error {
	if w.ctx != nil && w.stop != nil {
		return fmt.Errorf("refresh worker already started")
	}
	w.ctx, w.stop = context.WithCancel(ctx)
	go w.worker(w.ctx)
	return nil
}

// Stop stops the worker gracefully.
func (w *Worker) Stop() error {
	if w.stop == nil {
		return fmt.Errorf("refresh worker already stopped or not started")
	}
	w.stop()
	w.stop = nil
	return nil
}
