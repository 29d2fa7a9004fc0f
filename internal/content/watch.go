package content

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"charm.land/log/v2"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// ReloadEvent is sent after the store has been re-indexed.
type ReloadEvent struct {
	Err error
}

// Watch re-indexes s whenever a file under dir changes. Bursts of events are
// coalesced. The returned channel is closed when ctx is done.
func Watch(ctx context.Context, s *FSStore, dir string, logger *log.Logger) (<-chan ReloadEvent, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.Close()
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := w.Add(filepath.Join(dir, e.Name())); err != nil {
				logger.Warn("watch collection", "dir", e.Name(), "err", err)
			}
		}
	}

	out := make(chan ReloadEvent, 1)
	go func() {
		defer close(out)
		defer w.Close()

		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Create) {
					if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
						_ = w.Add(ev.Name)
					}
				}
				logger.Debug("content changed", "path", ev.Name, "op", ev.Op.String())
				pending = time.After(watchDebounce)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("content watcher", "err", err)
			case <-pending:
				pending = nil
				err := s.Reload()
				if err != nil {
					logger.Error("reload content", "err", err)
				} else {
					logger.Info("content reloaded")
				}
				select {
				case out <- ReloadEvent{Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
