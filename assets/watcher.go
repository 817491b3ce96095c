package assets

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports image files created or modified under a directory tree.
// Directories created after the watcher starts are watched as well.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	changed  chan string
	errors   chan error
	done     chan struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewWatcher starts watching root and all of its sub-directories.
func NewWatcher(root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsnotify: fsw,
		changed:  make(chan string, 16),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}
	if err := w.watchRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Changed delivers the paths of image files that were created or written.
// It is closed by Close.
func (w *Watcher) Changed() <-chan string { return w.changed }

// Errors delivers watch errors. It is closed by Close.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Close stops watching and closes both channels.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.wg.Wait()
		err = w.fsnotify.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer close(w.changed)
	defer close(w.errors)

	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			path, ok := w.handle(e)
			if !ok {
				continue
			}
			select {
			case w.changed <- path:
			case <-w.done:
				return
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			w.report(err)

		case <-w.done:
			return
		}
	}
}

// handle starts watching directories as they appear and reports whether e
// names an image file that was created or written.
func (w *Watcher) handle(e fsnotify.Event) (string, bool) {
	if e.Op&fsnotify.Create != 0 {
		if fi, err := os.Stat(e.Name); err == nil && fi.IsDir() {
			if err := w.watchRecursive(e.Name); err != nil {
				w.report(err)
			}
			return "", false
		}
	}
	if e.Op&(fsnotify.Create|fsnotify.Write) == 0 || !IsImage(e.Name) {
		return "", false
	}
	return e.Name, true
}

// report forwards err to Errors, dropping it when the previous one has not
// been read yet.
func (w *Watcher) report(err error) {
	select {
	case w.errors <- err:
	default:
	}
}

// watchRecursive adds every directory under root to the watch list.
func (w *Watcher) watchRecursive(root string) error {
	if root == "" {
		return errors.New("assets: empty watch root")
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsnotify.Add(path)
		}
		return nil
	})
}
