// Package filesystem provides the local directory file source.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/harken-labs/pickr-cli/internal/core/ports/driven"
	"github.com/harken-labs/pickr-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.FileSource = (*Source)(nil)

// Source enumerates and reads files under a root directory. Hidden
// entries (any path component starting with a dot) are excluded.
type Source struct {
	rootPath string
	watcher  *fsnotify.Watcher
}

// New creates a file source rooted at rootPath.
func New(rootPath string) *Source {
	return &Source{rootPath: rootPath}
}

// Root returns the root directory.
func (s *Source) Root() string {
	return s.rootPath
}

// Validate checks the root exists and is a readable directory.
func (s *Source) Validate(_ context.Context) error {
	info, err := os.Stat(s.rootPath)
	if err != nil {
		return fmt.Errorf("stat root %s: %w", s.rootPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", s.rootPath)
	}

	f, err := os.Open(s.rootPath)
	if err != nil {
		return fmt.Errorf("open root %s: %w", s.rootPath, err)
	}
	return f.Close()
}

// Enumerate walks the tree and returns every visible regular file with
// its size and modification time. WalkDir visits entries in lexical
// order, so the listing is stable for an unchanged tree.
func (s *Source) Enumerate(ctx context.Context) ([]driven.FileEntry, error) {
	var entries []driven.FileEntry

	err := filepath.WalkDir(s.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			logger.Warn("enumerate: %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != s.rootPath && isHiddenName(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isHiddenName(d.Name()) || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logger.Warn("enumerate: stat %s: %v", path, err)
			return nil
		}
		entries = append(entries, driven.FileEntry{
			Path:       path,
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", s.rootPath, err)
	}
	return entries, nil
}

// Open returns the content of a file under the root.
func (s *Source) Open(_ context.Context, path string) (io.ReadCloser, error) {
	rel, err := filepath.Rel(s.rootPath, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("path %s is outside root %s", path, s.rootPath)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// Watch emits the paths of changed files until ctx is cancelled.
// Directories are watched recursively; directories created while
// watching are added on the fly.
func (s *Source) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := addRecursive(watcher, s.rootPath); err != nil {
		watcher.Close()
		return nil, err
	}
	s.watcher = watcher

	changes := make(chan string)
	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if isHiddenPath(event.Name) {
					continue
				}
				if event.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := addRecursive(watcher, event.Name); err != nil {
							logger.Warn("watch: %v", err)
						}
						continue
					}
				}
				if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) ||
					event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
					select {
					case changes <- event.Name:
					case <-ctx.Done():
						return
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch: %v", err)
			}
		}
	}()

	return changes, nil
}

// Close releases the watcher if one is active.
func (s *Source) Close() error {
	if s.watcher != nil {
		err := s.watcher.Close()
		s.watcher = nil
		return err
	}
	return nil
}

// addRecursive watches dir and every visible subdirectory.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHiddenName(d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// isHiddenName reports whether a single path component is hidden.
// "." and ".." are not considered hidden.
func isHiddenName(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// isHiddenPath reports whether any component of the path is hidden.
func isHiddenPath(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if isHiddenName(part) {
			return true
		}
	}
	return false
}
