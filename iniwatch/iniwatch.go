// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package iniwatch reloads an INI file whenever it changes on disk.
package iniwatch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/yourbase/inifile/ini"
	"zombiezen.com/go/log"
)

// DefaultDebounce is the debounce interval used when Options.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// Options holds optional parameters for Watch.
type Options struct {
	// Debounce is how long to wait after the last change event before reloading
	// the file. Editors often produce several events for a single save.
	// If zero, DefaultDebounce is used.
	Debounce time.Duration

	// Parse is passed to ini.ReadFile on every reload.
	Parse *ini.ParseOptions
}

// Watch calls fn with the parsed contents of the INI file at path, then again
// every time the file is written or replaced, until ctx is Done. Nil options
// are treated identically as passing the zero value.
//
// If the file cannot be read or parsed, fn is called with a nil File and the
// error, and Watch continues watching. Each call to fn receives a newly parsed
// File that is not shared with any other call. fn is called on the goroutine
// that called Watch, so fn must not block for long.
//
// Watch returns ctx.Err() once ctx is Done, or an error if the watch could not
// be established.
func Watch(ctx context.Context, path string, opts *Options, fn func(*ini.File, error)) error {
	path = filepath.Clean(path)
	debounce := DefaultDebounce
	var parseOpts *ini.ParseOptions
	if opts != nil {
		if opts.Debounce > 0 {
			debounce = opts.Debounce
		}
		parseOpts = opts.Parse
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer w.Close()
	// Watch the directory rather than the file so that atomic replacements,
	// like those done by ini.WriteFile, are observed.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	log.Debugf(ctx, "Watching %s for changes", path)
	load(ctx, path, parseOpts, fn)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			log.Debugf(ctx, "Stopped watching %s", path)
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return fmt.Errorf("watch %s: %w", path, errClosed)
			}
			if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			log.Debugf(ctx, "%s changed (%v)", path, ev.Op)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			load(ctx, path, parseOpts, fn)
		case err, ok := <-w.Errors:
			if !ok {
				return fmt.Errorf("watch %s: %w", path, errClosed)
			}
			log.Warnf(ctx, "Watching %s: %v", path, err)
		}
	}
}

var errClosed = errors.New("watcher closed")

func load(ctx context.Context, path string, opts *ini.ParseOptions, fn func(*ini.File, error)) {
	f, err := ini.ReadFile(path, opts)
	if err != nil {
		log.Warnf(ctx, "Reloading %s: %v", path, err)
		fn(nil, err)
		return
	}
	log.Debugf(ctx, "Reloaded %s", path)
	fn(f, nil)
}
