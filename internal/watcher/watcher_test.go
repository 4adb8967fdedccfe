package watcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIsDeck(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"stage/q1.pptx", true},
		{"stage/Q1.PPTX", true},
		{"stage/~$q1.pptx", false},
		{"stage/q1.ppt", false},
		{"stage/notes.txt", false},
		{"stage/pptx", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsDeck(tt.path); got != tt.expected {
				t.Errorf("IsDeck(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

type recorder struct {
	mu    sync.Mutex
	paths []string
	seen  chan string
}

func (r *recorder) handle(ctx context.Context, path string) error {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
	r.seen <- path
	return nil
}

func waitFor(t *testing.T, seen <-chan string) string {
	t.Helper()
	select {
	case p := <-seen:
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for handler")
		return ""
	}
}

func TestWatcherHandlesNewDeck(t *testing.T) {
	dir := t.TempDir()
	done := filepath.Join(t.TempDir(), "done")
	rec := &recorder{seen: make(chan string, 4)}

	w, err := New(dir, rec.handle, Options{Settle: 50 * time.Millisecond, DoneDir: done, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	deck := filepath.Join(dir, "q1.pptx")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := os.WriteFile(deck, []byte("deck"), 0644); err != nil {
		t.Fatalf("Failed to write deck: %v", err)
	}

	if got := waitFor(t, rec.seen); got != deck {
		t.Errorf("Expected %s, got %s", deck, got)
	}

	// the move happens right after the handler returns
	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(filepath.Join(done, "q1.pptx")); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Processed deck was not moved to the done directory")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.paths) != 1 {
		t.Errorf("Expected one handled deck, got %v", rec.paths)
	}
}

func TestWatcherScanExisting(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.pptx")
	if err := os.WriteFile(existing, []byte("deck"), 0644); err != nil {
		t.Fatalf("Failed to write deck: %v", err)
	}

	rec := &recorder{seen: make(chan string, 4)}
	w, err := New(dir, rec.handle, Options{Settle: 50 * time.Millisecond, ScanExisting: true, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	if got := waitFor(t, rec.seen); got != existing {
		t.Errorf("Expected %s, got %s", existing, got)
	}
	if _, err := os.Stat(existing); err != nil {
		t.Error("Deck should stay in place without a done directory")
	}
}
