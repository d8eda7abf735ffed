package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/custodia-labs/docfill/internal/core/ports/driven"
)

// Janitor periodically removes templates past their retention.
type Janitor struct {
	purger   driven.DocumentPurger
	logger   *slog.Logger
	interval time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// JanitorConfig holds configuration for the janitor.
type JanitorConfig struct {
	Purger   driven.DocumentPurger
	Logger   *slog.Logger
	Interval time.Duration // default: 1h
}

// NewJanitor creates a new janitor.
func NewJanitor(cfg JanitorConfig) *Janitor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	return &Janitor{
		purger:   cfg.Purger,
		logger:   logger,
		interval: interval,
	}
}

// Start runs the purge loop in the background until Stop is called or
// ctx is cancelled. Starting a running janitor is a no-op.
func (j *Janitor) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.running {
		return
	}
	j.running = true
	j.stopCh = make(chan struct{})
	j.doneCh = make(chan struct{})

	j.logger.Info("janitor starting", "interval", j.interval)
	go j.run(ctx, j.stopCh, j.doneCh)
}

// Stop halts the loop and waits for it to exit.
func (j *Janitor) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	close(j.stopCh)
	done := j.doneCh
	j.running = false
	j.mu.Unlock()

	<-done
	j.logger.Info("janitor stopped")
}

func (j *Janitor) run(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	// Run immediately on start
	j.purge(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			j.purge(ctx)
		}
	}
}

func (j *Janitor) purge(ctx context.Context) {
	n, err := j.purger.Purge(ctx)
	if err != nil {
		j.logger.Error("failed to purge expired documents", "error", err)
		return
	}
	if n > 0 {
		j.logger.Info("purged expired documents", "count", n)
	}
}
