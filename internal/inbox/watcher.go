package inbox

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDefault is the default debounce interval for file events.
const debounceDefault = 200 * time.Millisecond

// maxConcurrentFiles limits how many inbox files are evaluated simultaneously.
const maxConcurrentFiles = 5

// maxQueueSize is the buffer size for the work queue channel.
// Must be larger than maxConcurrentFiles to absorb bursts without
// blocking the debounce flush.
const maxQueueSize = 200

// pollDefault is the default polling interval when fsnotify is unavailable.
const pollDefault = 5 * time.Second

// Watcher watches a directory for new .txt response files using fsnotify.
type Watcher struct {
	inbox    string
	handler  func(path string)
	debounce time.Duration
}

// NewWatcher creates a watcher for the inbox directory.
func NewWatcher(inbox string, handler func(path string)) *Watcher {
	return &Watcher{
		inbox:    inbox,
		handler:  handler,
		debounce: debounceDefault,
	}
}

// Run watches the inbox for new .txt files. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(w.inbox); err != nil {
		return err
	}

	// ready collects paths that passed debounce. A single timer resets on
	// each event; when it fires, accumulated paths flush to the work queue.
	// No per-file goroutines are ever spawned.
	var mu sync.Mutex
	ready := make(map[string]bool)

	// Work queue consumed by a fixed pool of workers.
	queue := make(chan string, maxQueueSize)

	var wg sync.WaitGroup
	for i := 0; i < maxConcurrentFiles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range queue {
				func() {
					defer func() {
						if r := recover(); r != nil {
							_ = r
						}
					}()
					w.handler(path)
				}()
			}
		}()
	}

	// flush moves all ready paths into the work queue.
	flush := func() {
		mu.Lock()
		batch := make([]string, 0, len(ready))
		for p := range ready {
			batch = append(batch, p)
		}
		ready = make(map[string]bool)
		mu.Unlock()

		for _, p := range batch {
			select {
			case queue <- p:
			case <-ctx.Done():
				return
			}
		}
	}

	// Single debounce timer, initialized as stopped; first event starts it.
	debounceTimer := time.NewTimer(w.debounce)
	debounceTimer.Stop()

	defer func() {
		debounceTimer.Stop()
		flush()
		close(queue)
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-debounceTimer.C:
			flush()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !isResponseFile(event.Name) {
				continue
			}

			mu.Lock()
			ready[event.Name] = true
			mu.Unlock()

			if !debounceTimer.Stop() {
				select {
				case <-debounceTimer.C:
				default:
				}
			}
			debounceTimer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			_ = err
		}
	}
}

// PollWatcher watches a directory for new .txt files using polling.
// Used as a fallback when fsnotify is unavailable (e.g., NFS).
type PollWatcher struct {
	inbox    string
	handler  func(path string)
	interval time.Duration
	seen     map[string]bool
}

// NewPollWatcher creates a polling-based watcher.
func NewPollWatcher(inbox string, handler func(path string), interval time.Duration) *PollWatcher {
	if interval == 0 {
		interval = pollDefault
	}
	return &PollWatcher{
		inbox:    inbox,
		handler:  handler,
		interval: interval,
		seen:     make(map[string]bool),
	}
}

// Run polls the inbox directory. Blocks until ctx is cancelled.
func (w *PollWatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.scan()
		}
	}
}

// scan checks for new .txt files in the inbox.
func (w *PollWatcher) scan() {
	entries, err := os.ReadDir(w.inbox)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(w.inbox, e.Name())
		if !isResponseFile(path) {
			continue
		}
		if w.seen[path] {
			continue
		}
		w.seen[path] = true
		w.handler(path)
	}
}

// ScanExisting processes any .txt files already present in the inbox.
// Called at startup to handle files that arrived while the watcher was down.
func ScanExisting(inbox string, handler func(path string)) error {
	entries, err := os.ReadDir(inbox)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(inbox, e.Name())
		if isResponseFile(path) {
			handler(path)
		}
	}
	return nil
}

// isResponseFile returns true for .txt files (ignoring .tmp partial writes).
func isResponseFile(path string) bool {
	name := filepath.Base(path)
	return strings.HasSuffix(name, ".txt") && !strings.HasSuffix(name, ".tmp")
}
