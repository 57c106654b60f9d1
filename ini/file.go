// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"context"
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"zombiezen.com/go/log"
)

// ReadFile parses the INI file at the given path. Nil options are treated
// identically as passing the zero value.
func ReadFile(path string, opts *ParseOptions) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read ini file: %w", err)
	}
	defer r.Close()
	f, err := Parse(r, opts)
	if err != nil {
		return nil, fmt.Errorf("read ini file %s: %w", path, err)
	}
	return f, nil
}

// WriteFile writes f to the given path in INI format. The file is replaced
// atomically: readers observe either the old content or the new content, never
// a partial write.
func WriteFile(ctx context.Context, path string, f *File, perm os.FileMode) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(perm))
	if err != nil {
		return fmt.Errorf("write ini file: %w", err)
	}
	defer func() {
		// No-op after CloseAtomicallyReplace succeeds.
		if err := pending.Cleanup(); err != nil {
			log.Debugf(ctx, "Cleaning up pending file for %s: %v", path, err)
		}
	}()
	if _, err := f.WriteTo(pending); err != nil {
		return fmt.Errorf("write ini file %s: %w", path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("write ini file %s: %w", path, err)
	}
	return nil
}
