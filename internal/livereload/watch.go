package livereload

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/shellmarks/catalog/internal/logging"
)

// DefaultDebounce coalesces the bursts of events editors produce on save.
const DefaultDebounce = 150 * time.Millisecond

// Watcher watches script paths and broadcasts a reload after section files
// change.
type Watcher struct {
	Dirs []string
	// Match reports whether a base file name is worth a reload.
	// A nil Match accepts every file.
	Match    func(name string) bool
	Debounce time.Duration
	Logger   *slog.Logger
}

// Run blocks until ctx is done. Directories that do not exist are skipped
// with a warning.
func (w *Watcher) Run(ctx context.Context, b Broadcaster) error {
	logger := w.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	watched := 0
	for _, dir := range w.Dirs {
		if _, err := os.Stat(dir); err != nil {
			logger.Warn("not watching script path", "path", dir, "error", err)
			continue
		}
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		watched++
	}
	logger.Debug("watching script paths", "count", watched)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := ""

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if w.Match != nil && !w.Match(filepath.Base(ev.Name)) {
				continue
			}
			pending = ev.Name
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-timer.C:
			logger.Info("section file changed", "path", pending)
			b.Broadcast(Message{Type: "reload", Path: pending})
			pending = ""
		}
	}
}

// Watch is a convenience for running a Watcher with default settings.
func Watch(ctx context.Context, dirs []string, match func(string) bool, b Broadcaster, logger *slog.Logger) error {
	w := &Watcher{Dirs: dirs, Match: match, Logger: logger}
	return w.Run(ctx, b)
}
