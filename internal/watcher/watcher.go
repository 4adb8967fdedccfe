// Package watcher checks every deck that lands in a staging directory.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a file must be quiet before it is handled.
const DefaultSettle = 2 * time.Second

// EventHandler is a function that handles one settled deck
type EventHandler func(ctx context.Context, filePath string) error

// Options configure a Watcher
type Options struct {
	// Settle defaults to DefaultSettle.
	Settle time.Duration
	// DoneDir receives decks after their handler succeeds. Empty leaves them in place.
	DoneDir string
	// ScanExisting handles decks already in the directory at start.
	ScanExisting bool
	Logger       *slog.Logger
}

type Watcher struct {
	dir     string
	handler EventHandler
	opts    Options
	watcher *fsnotify.Watcher
	pending map[string]time.Time
}

// New starts watching dir, creating it if needed.
func New(dir string, handler EventHandler, opts Options) (*Watcher, error) {
	if opts.Settle <= 0 {
		opts.Settle = DefaultSettle
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create watch directory: %w", err)
	}
	if opts.DoneDir != "" {
		if err := os.MkdirAll(opts.DoneDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create done directory: %w", err)
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &Watcher{
		dir:     dir,
		handler: handler,
		opts:    opts,
		watcher: fw,
		pending: make(map[string]time.Time),
	}, nil
}

// Start handles decks one at a time until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	log := w.opts.Logger
	log.Info("Watching for decks", "dir", w.dir, "done", w.opts.DoneDir)

	if w.opts.ScanExisting {
		w.scan()
	}

	ticker := time.NewTicker(w.opts.Settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !IsDeck(event.Name) {
				log.Debug("Ignoring file", "path", event.Name)
				continue
			}
			w.pending[event.Name] = time.Now()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.Error("Watcher error", "error", err)

		case now := <-ticker.C:
			w.flush(ctx, now)
		}
	}
}

// Stop closes the file watcher
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) scan() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.opts.Logger.Warn("Failed to scan directory", "error", err)
		return
	}
	// due immediately on the first tick
	due := time.Now().Add(-w.opts.Settle)
	for _, e := range entries {
		path := filepath.Join(w.dir, e.Name())
		if !e.IsDir() && IsDeck(path) {
			w.pending[path] = due
		}
	}
}

func (w *Watcher) flush(ctx context.Context, now time.Time) {
	for path, last := range w.pending {
		if now.Sub(last) < w.opts.Settle {
			continue
		}
		delete(w.pending, path)

		if _, err := os.Stat(path); err != nil {
			continue
		}
		w.handle(ctx, path)

		if ctx.Err() != nil {
			return
		}
	}
}

func (w *Watcher) handle(ctx context.Context, path string) {
	log := w.opts.Logger
	log.Info("Processing deck", "path", path)

	if err := w.handler(ctx, path); err != nil {
		log.Error("Failed to process deck", "path", path, "error", err)
		return
	}

	if w.opts.DoneDir == "" {
		return
	}
	dest := filepath.Join(w.opts.DoneDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		log.Error("Failed to move processed deck", "path", path, "error", err)
		return
	}
	log.Debug("Moved processed deck", "dest", dest)
}

// IsDeck reports whether path names a .pptx file that is not an Office lock file.
func IsDeck(path string) bool {
	name := filepath.Base(path)
	return strings.EqualFold(filepath.Ext(name), ".pptx") && !strings.HasPrefix(name, "~$")
}
