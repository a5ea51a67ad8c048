package watch

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Watcher calls OnChange whenever one of the watched scripts is saved.
// Parent directories are watched rather than the files, so editors that
// save by renaming a temporary file are still noticed.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	debounce time.Duration
	logger   *zap.Logger
	onChange func(path string)
}

// New creates a Watcher for paths. Saves closer together than debounce
// are reported once.
func New(paths []string, debounce time.Duration, logger *zap.Logger, onChange func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating file watcher")
	}

	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]struct{}),
		debounce: debounce,
		logger:   logger,
		onChange: onChange,
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "resolving %s", p)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "watching %s", dir)
		}
		logger.Debug("Watching directory", zap.String("dir", dir))
	}

	return w, nil
}

// Run delivers change notifications until ctx is cancelled. OnChange is
// called from the Run goroutine, one file at a time.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("Script changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			pending[filepath.Clean(ev.Name)] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("File watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)

			for _, p := range changed {
				w.onChange(p)
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	_, ok := w.files[filepath.Clean(ev.Name)]
	return ok
}
