package assets

import (
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// Library caches images loaded from a directory by their relative name.
// With Watch enabled, Poll drops entries whose files changed so the next
// Image call reloads them.
type Library struct {
	dir  string
	load func(path string) (*ebiten.Image, error)

	mu      sync.Mutex
	images  map[string]*ebiten.Image
	watcher *Watcher
	logger  *log.Logger
}

// NewLibrary creates a library rooted at dir.
func NewLibrary(dir string) *Library {
	return newLibrary(dir, LoadImage)
}

func newLibrary(dir string, load func(string) (*ebiten.Image, error)) *Library {
	return &Library{
		dir:    dir,
		load:   load,
		images: make(map[string]*ebiten.Image),
		logger: log.Default().WithPrefix("assets"),
	}
}

// SetLogger replaces the logger used to report reloads and watch errors.
func (l *Library) SetLogger(logger *log.Logger) { l.logger = logger }

// Image returns the named image, loading it on first use.
func (l *Library) Image(name string) (*ebiten.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if img, ok := l.images[name]; ok {
		return img, nil
	}
	img, err := l.load(filepath.Join(l.dir, name))
	if err != nil {
		return nil, err
	}
	l.images[name] = img
	return img, nil
}

// MustImage is like Image but panics on error. Use it for assets shipped
// with the game.
func (l *Library) MustImage(name string) *ebiten.Image {
	img, err := l.Image(name)
	if err != nil {
		panic(err)
	}
	return img
}

// Watch starts reporting changes under the library directory.
func (l *Library) Watch() error {
	w, err := NewWatcher(l.dir)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.watcher = w
	l.mu.Unlock()
	return nil
}

// Poll drains pending change notifications without blocking and returns the
// names of the images that were evicted. Call it once per tick.
func (l *Library) Poll() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher == nil {
		return nil
	}
	var evicted []string
	for {
		select {
		case path, ok := <-l.watcher.Changed():
			if !ok {
				return evicted
			}
			name, err := filepath.Rel(l.dir, path)
			if err != nil {
				continue
			}
			if _, cached := l.images[name]; cached {
				delete(l.images, name)
				evicted = append(evicted, name)
				l.logger.Info("image changed", "name", name)
			}
		case err, ok := <-l.watcher.Errors():
			if ok {
				l.logger.Error("watch failed", "err", err)
			}
		default:
			return evicted
		}
	}
}

// Close stops watching. Cached images stay valid.
func (l *Library) Close() error {
	l.mu.Lock()
	w := l.watcher
	l.watcher = nil
	l.mu.Unlock()
	if w == nil {
		return nil
	}
	return w.Close()
}
