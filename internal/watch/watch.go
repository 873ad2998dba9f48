// Package watch re-runs theming when the wallpaper or the profile changes.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/bartint/internal/image"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before reporting a change.
const DefaultDebounce = 300 * time.Millisecond

// Change reports which inputs changed since the last callback.
type Change struct {
	Wallpaper bool
	Profile   bool
}

// Watcher watches a wallpaper (file or directory) and an optional profile file.
type Watcher struct {
	wallpaper    string
	wallpaperDir bool
	profile      string
	debounce     time.Duration
	logger       hclog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the settle delay.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New creates a watcher. profile may be empty.
func New(wallpaper, profile string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(wallpaper)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve wallpaper path: %w", err)
	}
	if err := image.ValidateImagePath(abs); err != nil {
		return nil, fmt.Errorf("invalid wallpaper: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to access wallpaper: %w", err)
	}

	w := &Watcher{
		wallpaper:    abs,
		wallpaperDir: info.IsDir(),
		debounce:     DefaultDebounce,
		logger:       hclog.NewNullLogger(),
	}
	if profile != "" {
		if w.profile, err = filepath.Abs(profile); err != nil {
			return nil, fmt.Errorf("failed to resolve profile path: %w", err)
		}
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named("watch")
	return w, nil
}

// dirs returns the directories to watch. Files are watched through their
// parent so atomic replacements (write temp, rename) are seen.
func (w *Watcher) dirs() []string {
	dirs := []string{w.wallpaper}
	if !w.wallpaperDir {
		dirs[0] = filepath.Dir(w.wallpaper)
	}
	if w.profile != "" {
		if d := filepath.Dir(w.profile); d != dirs[0] {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// classify maps a file event to the input it affects.
func (w *Watcher) classify(ev fsnotify.Event) Change {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return Change{}
	}
	name := filepath.Clean(ev.Name)

	var c Change
	if w.profile != "" && name == w.profile {
		c.Profile = true
	}
	if w.wallpaperDir {
		c.Wallpaper = filepath.Dir(name) == w.wallpaper && image.IsImageFile(name)
	} else {
		c.Wallpaper = name == w.wallpaper
	}
	return c
}

// Run watches until ctx is cancelled, calling fn once per settled burst of
// changes. fn runs on the Run goroutine, so calls never overlap.
func (w *Watcher) Run(ctx context.Context, fn func(Change)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	for _, d := range w.dirs() {
		if err := fw.Add(d); err != nil {
			return fmt.Errorf("failed to watch %s: %w", d, err)
		}
		w.logger.Debug("watching", "dir", d)
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var pending Change
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			c := w.classify(ev)
			if !c.Wallpaper && !c.Profile {
				continue
			}
			w.logger.Trace("file event", "name", ev.Name, "op", ev.Op.String())
			pending.Wallpaper = pending.Wallpaper || c.Wallpaper
			pending.Profile = pending.Profile || c.Profile
			timer.Reset(w.debounce)

		case <-timer.C:
			if !pending.Wallpaper && !pending.Profile {
				continue
			}
			w.logger.Debug("change settled", "wallpaper", pending.Wallpaper, "profile", pending.Profile)
			fn(pending)
			pending = Change{}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}
