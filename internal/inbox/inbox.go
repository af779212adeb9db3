package inbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Runner ties the watcher and processor together: it drains existing
// inbox files at startup, then evaluates new arrivals until cancelled.
type Runner struct {
	cfg       Config
	poll      bool
	interval  time.Duration
	processor *Processor
}

// New creates a runner with validated configuration.
func New(cfg Config, pollMode bool, pollInterval time.Duration) (*Runner, error) {
	if cfg.Dirs.Inbox == "" || cfg.Dirs.Outbox == "" {
		return nil, fmt.Errorf("inbox and outbox directories are required")
	}
	if pollInterval == 0 {
		pollInterval = pollDefault
	}

	return &Runner{
		cfg:       cfg,
		poll:      pollMode,
		interval:  pollInterval,
		processor: NewProcessor(cfg),
	}, nil
}

// Run starts the watcher. Blocks until ctx is cancelled.
// Files already present in the inbox are processed first.
func (r *Runner) Run(ctx context.Context) error {
	if err := EnsureDirs(r.cfg.Dirs); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	handler := func(path string) {
		if err := r.processor.Process(ctx, path); err != nil {
			fmt.Fprintf(os.Stderr, "watch: process %s: %v\n", filepath.Base(path), err)
		}
	}

	if err := ScanExisting(r.cfg.Dirs.Inbox, handler); err != nil {
		return fmt.Errorf("scan existing: %w", err)
	}

	if r.poll {
		pw := NewPollWatcher(r.cfg.Dirs.Inbox, handler, r.interval)
		return pw.Run(ctx)
	}

	w := NewWatcher(r.cfg.Dirs.Inbox, handler)
	return w.Run(ctx)
}
