package savefile

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"castedit/internal/logging"
)

// Event reports that the save changed on disk outside this process.
type Event struct {
	Path    string
	Removed bool
}

const (
	watchSettle     = 200 * time.Millisecond
	selfWriteWindow = 2 * time.Second
)

// Watch streams external modifications of the save until ctx is cancelled.
// The directory is watched rather than the file because the game, like Save,
// replaces the file by rename. Bursts collapse into one event; writes made
// by this File are ignored.
func (f *File) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	events := make(chan Event, 4)
	go func() {
		defer close(events)
		defer watcher.Close()

		var mu sync.Mutex
		var timer *time.Timer
		var pending Event
		stopped := false
		defer func() {
			mu.Lock()
			stopped = true
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
		}()

		emit := func() {
			mu.Lock()
			defer mu.Unlock()
			timer = nil
			if stopped || f.selfWrite() {
				return
			}
			select {
			case events <- pending:
			default:
				// Consumer is behind; it will reload on the event already queued.
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.WarnWithContext(f.logger, "save watcher error", "savefile_watch_error",
					logging.Error(err),
					logging.String(logging.FieldImpact, "external changes may go unnoticed"))
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != f.path {
					continue
				}
				if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) && !evt.Has(fsnotify.Remove) {
					continue
				}
				mu.Lock()
				pending = Event{Path: f.path, Removed: evt.Has(fsnotify.Remove)}
				if timer == nil {
					timer = time.AfterFunc(watchSettle, emit)
				}
				mu.Unlock()
			}
		}
	}()
	return events, nil
}

func (f *File) selfWrite() bool {
	last := f.lastWrite.Load()
	return last != 0 && time.Since(time.Unix(0, last)) < selfWriteWindow
}
