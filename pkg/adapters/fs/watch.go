package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/notes/pkg/core"
)

// DebounceDelay coalesces the bursts fsnotify emits for a single write
// (an atomic replace shows up as Create+Chmod, editors add Write+Write).
const DebounceDelay = 50 * time.Millisecond

// Watch reports changes of the backing file.
// The parent directory is watched rather than the file itself because every
// Replace swaps the inode through a rename.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(r.Path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	r.setWatcherActive(true)
	events := make(chan core.Event)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		return r.runWatcher(ctx, watcher, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		r.handleWatcherError(fmt.Errorf("watcher panic: %w", err))
	}))

	return events, nil
}

// runWatcher is the event loop: it filters events down to the backing file
// and emits one debounced core.Event per burst.
func (r *Repository) runWatcher(ctx context.Context, watcher *fsnotify.Watcher, out chan<- core.Event) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			var stack string
			if r.config.Logger.Enabled(ctx, slog.LevelDebug) {
				stack = string(debug.Stack())
			}
			r.config.Logger.Error("watcher panic", "error", recovered, "stack", stack)
			err = fmt.Errorf("watcher panic: %v", recovered)
		}
	}()
	defer close(out)
	defer watcher.Close()
	defer r.setWatcherActive(false)

	timer := time.NewTimer(DebounceDelay)
	timer.Stop()
	var pending *core.Event

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			r.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())

			e, relevant := r.mapEvent(event)
			if !relevant {
				continue
			}
			pending = &e
			timer.Reset(DebounceDelay)

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			r.handleWatcherError(wErr)

		case <-timer.C:
			if pending == nil {
				continue
			}
			select {
			case out <- *pending:
			case <-ctx.Done():
				return nil
			}
			pending = nil
		}
	}
}

// mapEvent keeps only events about the backing file itself.
func (r *Repository) mapEvent(event fsnotify.Event) (core.Event, bool) {
	if filepath.Base(event.Name) != filepath.Base(r.Path) {
		return core.Event{}, false
	}

	var eType core.EventType
	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		eType = core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		eType = core.EventDelete
	default:
		return core.Event{}, false
	}

	return core.Event{
		Type:      eType,
		Path:      r.Path,
		Timestamp: time.Now().Unix(),
	}, true
}

// handleWatcherError processes errors from the fsnotify watcher.
func (r *Repository) handleWatcherError(err error) {
	r.config.Logger.Error("fsnotify error", "error", err)
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
	}
}
