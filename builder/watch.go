package builder

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

const debounce = 300 * time.Millisecond

// Watch rebuilds the site whenever a source file changes until ctx is done.
// Bursts of events within the debounce window cause a single rebuild.
// onBuild receives every successful result; failed rebuilds are only logged.
// Source directories missing at start are picked up once they are created.
func (b *Builder) Watch(ctx context.Context, onBuild func(*Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "fsnotify")
	}
	defer watcher.Close()

	for _, dir := range b.watchDirs() {
		if err := addDirsRecursive(watcher, dir); err != nil {
			return err
		}
	}
	pending := b.pendingDirs()
	for _, dir := range pending {
		parent := existingParent(dir)
		if err := watcher.Add(parent); err != nil {
			return errors.Wrapf(err, "error watching %s", parent)
		}
	}

	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if b.ignore(ev.Name) || !b.relevant(ev.Name, pending) {
				continue
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = addDirsRecursive(watcher, ev.Name)
				}
			}
			b.Logger.Debug("File change detected", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.Logger.Warn("Watcher error", "error", err)
		case <-timer.C:
			b.Logger.Info("Change detected; rebuilding site")
			result, err := b.Run(ctx)
			if err != nil {
				b.Logger.Error("Rebuild failed", "error", err)
				continue
			}
			if onBuild != nil {
				onBuild(result)
			}
		}
	}
}

// watchDirs returns the existing source directories, de-duplicated.
func (b *Builder) watchDirs() []string {
	var out []string
	for _, dir := range b.uniqueSourceDirs() {
		if isDir(dir) {
			out = append(out, dir)
		}
	}
	return out
}

// pendingDirs returns the source directories that do not exist yet.
func (b *Builder) pendingDirs() []string {
	var out []string
	for _, dir := range b.uniqueSourceDirs() {
		if !isDir(dir) {
			out = append(out, dir)
		}
	}
	return out
}

func (b *Builder) uniqueSourceDirs() []string {
	seen := map[string]bool{}
	var out []string
	for _, dir := range sourceDirs(b.Site) {
		if seen[dir] {
			continue
		}
		seen[dir] = true
		out = append(out, dir)
	}
	return out
}

// relevant reports whether path is inside a source directory or on the way
// to a pending one. Parents watched for pending directories also report
// unrelated siblings, which this filters out.
func (b *Builder) relevant(path string, pending []string) bool {
	for _, dir := range b.uniqueSourceDirs() {
		if within(path, dir) {
			return true
		}
	}
	for _, dir := range pending {
		if within(dir, path) {
			return true
		}
	}
	return false
}

// existingParent walks up from dir to the closest directory that exists.
func existingParent(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "."
	}
	for !isDir(abs) {
		parent := filepath.Dir(abs)
		if parent == abs {
			break
		}
		abs = parent
	}
	return abs
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ignore filters editor temp files and anything inside the output root.
func (b *Builder) ignore(path string) bool {
	if within(path, b.Site.OutputDir) {
		return true
	}

	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") ||
		strings.HasPrefix(base, "#") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx")
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				return errors.Wrapf(err, "error watching %s", path)
			}
		}
		return nil
	})
}
