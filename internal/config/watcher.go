// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// ReloadFunc receives the freshly loaded configuration after a file change.
type ReloadFunc func(*Config)

// ErrorFunc receives reload failures; the previous configuration stays in
// effect when a reload fails.
type ErrorFunc func(error)

// Watcher reloads the configuration file when it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration

	onReload ReloadFunc
	onError  ErrorFunc

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc

	mu      sync.Mutex
	pending *time.Timer
}

// NewWatcher creates a watcher for the given config file. Watching the
// parent directory rather than the file itself survives editors that save
// by rename.
func NewWatcher(path string, onReload ReloadFunc, onError ErrorFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	return &Watcher{
		path:     path,
		debounce: 250 * time.Millisecond,
		onReload: onReload,
		onError:  onError,
		watcher:  fw,
	}, nil
}

// Start begins processing file events until the context is cancelled or
// Close is called.
func (w *Watcher) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	go w.processEvents(ctx)
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	if w.cancel != nil {
		w.cancel()
	}
	w.mu.Lock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

// scheduleReload debounces bursts of events from a single save.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := LoadFromPath(w.path)
	if err != nil {
		if w.onError != nil {
			w.onError(err)
		}
		return
	}
	if w.onReload != nil {
		w.onReload(cfg)
	}
}
