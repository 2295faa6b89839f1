package serve

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is how long the watcher waits after the last change
// before rebuilding.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls Rebuild once a burst of changes under Paths or to Files has
// settled.
type Watcher struct {
	Paths []string
	// Files are single files watched through their parent directory; other
	// entries in that directory are ignored.
	Files    []string
	Debounce time.Duration
	Rebuild  func(context.Context) error
	Logger   zerolog.Logger

	trees map[string]bool
	files map[string]bool
}

// Run blocks until ctx is done. Directories created while running are
// added to the watch set.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	w.trees = make(map[string]bool)
	w.files = make(map[string]bool, len(w.Files))
	for _, root := range w.Paths {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			w.Logger.Debug().Str("dir", root).Msg("directory not found, not watching")
			continue
		}
		w.addTree(watcher, root)
	}
	for _, f := range w.Files {
		f = filepath.Clean(f)
		w.files[f] = true
		if err := watcher.Add(filepath.Dir(f)); err != nil {
			w.Logger.Warn().Err(err).Str("path", f).Msg("failed to watch")
		}
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.relevant(event.Name) {
				continue
			}
			w.Logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				w.addTree(watcher, event.Name)
			}
			timer.Reset(debounce)
		case <-timer.C:
			w.Logger.Info().Msg("rebuilding site due to changes")
			if err := w.Rebuild(ctx); err != nil {
				w.Logger.Error().Err(err).Msg("rebuild failed")
			} else {
				w.Logger.Info().Msg("site rebuilt")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

// addTree watches root and every directory below it.
func (w *Watcher) addTree(watcher *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			w.Logger.Warn().Err(err).Str("path", p).Msg("error walking")
			return nil
		}
		if d.IsDir() {
			if err := watcher.Add(p); err != nil {
				w.Logger.Warn().Err(err).Str("path", p).Msg("failed to watch")
				return nil
			}
			w.trees[filepath.Clean(p)] = true
		}
		return nil
	})
}

func (w *Watcher) relevant(name string) bool {
	name = filepath.Clean(name)
	return w.files[name] || w.trees[filepath.Dir(name)] || w.trees[name]
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
