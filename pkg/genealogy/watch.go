package genealogy

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/evotree/pkg/errors"
)

// DefaultDebounce batches the burst of events a single save produces.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a tree file whenever it changes on disk.
type Watcher struct {
	path     string
	fs       *fsnotify.Watcher
	debounce time.Duration
	onChange func(*Node, error)

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets how long the file must stay quiet before it is reread.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watch starts watching the tree file at path. After each change settles,
// onChange receives the reread tree, or the error if the new contents do
// not load. onChange runs on the watcher's goroutine.
//
// The watcher stops when ctx is done or Close is called.
func Watch(ctx context.Context, path string, onChange func(*Node, error), opts ...WatchOption) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "watch %s: no change handler", path)
	}
	if _, err := FormatForPath(path); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve %s", path)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "start file watcher")
	}
	// Editors save by writing a temp file and renaming it over the
	// target, which drops a watch on the file itself.
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "watch %s", path)
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		path:     abs,
		fs:       fw,
		debounce: DefaultDebounce,
		onChange: onChange,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.run(ctx)
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.cancel()
		<-w.done
		w.closeErr = w.fs.Close()
	})
	return w.closeErr
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.onChange(nil, errors.Wrap(errors.ErrCodeInternal, err, "watch %s", w.path))

		case <-fire:
			fire = nil
			w.onChange(ReadFile(w.path))
		}
	}
}
