package leads

import (
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// fileWatcher flags changes to a single file. It watches the parent
// directory so editors that save by rename are still seen.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	name    string
	changed atomic.Bool

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func watchFile(path string) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	w := &fileWatcher{
		watcher: watcher,
		name:    abs,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *fileWatcher) run() {
	defer close(w.doneCh)

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.name {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.changed.Store(true)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			zap.L().Warn("dataset watcher error", zap.String("path", w.name), zap.Error(err))
		}
	}
}

// takeChanged reports and clears the pending-change flag. A nil watcher
// never reports a change.
func (w *fileWatcher) takeChanged() bool {
	if w == nil {
		return false
	}
	return w.changed.Swap(false)
}

func (w *fileWatcher) markChanged() {
	w.changed.Store(true)
}

func (w *fileWatcher) stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		if err := w.watcher.Close(); err != nil {
			zap.L().Debug("closing dataset watcher", zap.Error(err))
		}
	})
}
