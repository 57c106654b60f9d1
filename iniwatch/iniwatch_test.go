// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package iniwatch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yourbase/inifile/ini"
	"go.uber.org/goleak"
	"zombiezen.com/go/log/testlog"
)

const timeout = 10 * time.Second

type update struct {
	f   *ini.File
	err error
}

func startWatch(ctx context.Context, t *testing.T, path string) (<-chan update, <-chan error) {
	t.Helper()
	return startWatchOptions(ctx, t, path, &Options{Debounce: 10 * time.Millisecond})
}

func startWatchOptions(ctx context.Context, t *testing.T, path string, opts *Options) (<-chan update, <-chan error) {
	t.Helper()
	updates := make(chan update)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, opts, func(f *ini.File, err error) {
			select {
			case updates <- update{f, err}:
			case <-ctx.Done():
			}
		})
	}()
	return updates, done
}

// waitFor receives updates until match reports true.
func waitFor(t *testing.T, updates <-chan update, match func(update) bool) {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case u := <-updates:
			if match(u) {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}

func hasValue(want string) func(update) bool {
	return func(u update) bool {
		if u.err != nil {
			return false
		}
		got, _ := u.f.Section("app").Get("version")
		return got == want
	}
}

func TestWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(testlog.WithTB(context.Background(), t))
	defer cancel()
	path := filepath.Join(t.TempDir(), "app.ini")
	if err := os.WriteFile(path, []byte("[app]\nversion = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	updates, done := startWatch(ctx, t, path)
	waitFor(t, updates, hasValue("1"))

	f := ini.New()
	s, err := f.CreateSection("app")
	if err != nil {
		t.Fatal(err)
	}
	s.Put("version", "2")
	if err := ini.WriteFile(ctx, path, f, 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, updates, hasValue("2"))

	if err := os.WriteFile(path, []byte("[app\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, updates, func(u update) bool {
		return errors.Is(u.err, ini.UnterminatedSectionHeader)
	})

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Watch(...) = %v; want %v", err, context.Canceled)
		}
	case <-time.After(timeout):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchParseOptions(t *testing.T) {
	ctx, cancel := context.WithCancel(testlog.WithTB(context.Background(), t))
	defer cancel()
	path := filepath.Join(t.TempDir(), "app.ini")
	if err := os.WriteFile(path, []byte("[APP]\nVersion = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	updates, done := startWatchOptions(ctx, t, path, &Options{
		Debounce: 10 * time.Millisecond,
		Parse: &ini.ParseOptions{
			NormalizeSection: strings.ToLower,
			NormalizeKey: func(section, key string) string {
				return strings.ToLower(key)
			},
		},
	})
	waitFor(t, updates, hasValue("1"))

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Watch(...) = %v; want %v", err, context.Canceled)
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	ctx, cancel := context.WithCancel(testlog.WithTB(context.Background(), t))
	defer cancel()
	dir := t.TempDir()
	path := filepath.Join(dir, "app.ini")
	if err := os.WriteFile(path, []byte("[app]\nversion = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	updates, done := startWatch(ctx, t, path)
	waitFor(t, updates, hasValue("1"))

	if err := os.WriteFile(filepath.Join(dir, "other.ini"), []byte("garbage\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case u := <-updates:
		t.Errorf("unexpected reload after writing another file: %+v", u)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Watch(...) = %v; want %v", err, context.Canceled)
	}
}

func TestWatchMissingFile(t *testing.T) {
	ctx, cancel := context.WithCancel(testlog.WithTB(context.Background(), t))
	defer cancel()
	path := filepath.Join(t.TempDir(), "later.ini")

	updates, done := startWatch(ctx, t, path)
	waitFor(t, updates, func(u update) bool {
		return u.f == nil && errors.Is(u.err, os.ErrNotExist)
	})

	if err := os.WriteFile(path, []byte("[app]\nversion = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, updates, hasValue("3"))

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Watch(...) = %v; want %v", err, context.Canceled)
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	ctx := testlog.WithTB(context.Background(), t)
	path := filepath.Join(t.TempDir(), "nope", "app.ini")
	err := Watch(ctx, path, nil, func(*ini.File, error) {
		t.Error("callback called for unwatchable path")
	})
	if err == nil {
		t.Error("Watch(...) = <nil>; want error")
	}
}

func TestMain(m *testing.M) {
	testlog.Main(nil)
	goleak.VerifyTestMain(m)
}
