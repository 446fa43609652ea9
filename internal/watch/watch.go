// Package watch re-checks cQASM files when they change on disk.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"cqasm/internal/driver"
	"cqasm/internal/project"
)

// DefaultDebounce collapses editor save bursts (write+chmod+rename) into one check.
const DefaultDebounce = 150 * time.Millisecond

// Options configure Run.
type Options struct {
	Include  []string // пусто — project.DefaultInclude
	Debounce time.Duration
	Check    driver.CheckOptions
	// Initial checks every matching file once before waiting for changes.
	Initial bool
}

// Batch is one round of re-checks.
type Batch struct {
	Reports []driver.FileReport
	Removed []string
}

// Run watches root recursively until ctx is done. Each debounced batch of changed
// files is checked and passed to onBatch from the watcher goroutine.
func Run(ctx context.Context, root string, opts Options, onBatch func(Batch)) error {
	if len(opts.Include) == 0 {
		opts.Include = project.DefaultInclude
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addTree(w, root); err != nil {
		return err
	}

	if opts.Initial {
		paths, err := project.CollectFiles(root, opts.Include)
		if err != nil {
			return err
		}
		if err := flush(ctx, paths, nil, opts, onBatch); err != nil {
			return err
		}
	}

	changed := map[string]struct{}{}
	removed := map[string]struct{}{}
	timer := time.NewTimer(opts.Debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) && isDir(ev.Name) {
				// новые каталоги надо подписать, а файлы в них могли появиться раньше подписки
				if err := addTree(w, ev.Name); err != nil {
					return err
				}
				if paths, err := project.CollectFiles(ev.Name, opts.Include); err == nil {
					for _, p := range paths {
						changed[p] = struct{}{}
					}
				}
				timer.Reset(opts.Debounce)
				continue
			}
			switch classify(root, ev, opts.Include) {
			case opChanged:
				delete(removed, ev.Name)
				changed[ev.Name] = struct{}{}
			case opRemoved:
				delete(changed, ev.Name)
				removed[ev.Name] = struct{}{}
			default:
				continue
			}
			timer.Reset(opts.Debounce)
		case <-timer.C:
			err := flush(ctx, sortedKeys(changed), sortedKeys(removed), opts, onBatch)
			clear(changed)
			clear(removed)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
		}
	}
}

func flush(ctx context.Context, changed, removed []string, opts Options, onBatch func(Batch)) error {
	if len(changed) == 0 && len(removed) == 0 {
		return nil
	}
	reports, err := driver.CheckFiles(ctx, changed, opts.Check)
	if err != nil {
		return err
	}
	if onBatch != nil {
		onBatch(Batch{Reports: reports, Removed: removed})
	}
	return nil
}

type op uint8

const (
	opIgnore op = iota
	opChanged
	opRemoved
)

// classify maps an fsnotify event on a file to what the watcher does with it.
func classify(root string, ev fsnotify.Event, include []string) op {
	rel, err := filepath.Rel(root, ev.Name)
	if err != nil || strings.HasPrefix(rel, "..") || hidden(rel) {
		return opIgnore
	}
	if !project.Matches(rel, include) {
		return opIgnore
	}
	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return opRemoved
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		return opChanged
	}
	return opIgnore
}

func hidden(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") && part != "." {
			return true
		}
	}
	return false
}

func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
