// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"zombiezen.com/go/log/testlog"
)

func TestWriteFile(t *testing.T) {
	ctx := testlog.WithTB(context.Background(), t)
	path := filepath.Join(t.TempDir(), "config.ini")
	f := mustParse(t, "; settings\nname = demo\n\n[server]\nport = 8080\n")
	if err := WriteFile(ctx, path, f, 0o644); err != nil {
		t.Fatal("WriteFile:", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(f.String(), string(got)); diff != "" {
		t.Errorf("file content (-want +got):\n%s", diff)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm&0o600 != 0o600 {
		t.Errorf("file mode = %v; want owner read/write", perm)
	}

	read, err := ReadFile(path, nil)
	if err != nil {
		t.Fatal("ReadFile:", err)
	}
	if diff := cmp.Diff(dump(f), dump(read), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("ReadFile (-want +got):\n%s", diff)
	}
}

func TestWriteFileReplaces(t *testing.T) {
	ctx := testlog.WithTB(context.Background(), t)
	path := filepath.Join(t.TempDir(), "config.ini")
	if err := os.WriteFile(path, []byte("old=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f := New()
	f.TopLevel().Put("new", "2")
	if err := WriteFile(ctx, path, f, 0o644); err != nil {
		t.Fatal("WriteFile:", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new=2\n" {
		t.Errorf("file content = %q; want %q", got, "new=2\n")
	}
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadFile(filepath.Join(dir, "missing.ini"), nil); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(missing) = %v; want %v", err, fs.ErrNotExist)
	}

	bad := filepath.Join(dir, "bad.ini")
	if err := os.WriteFile(bad, []byte("ok=1\n[broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadFile(bad, nil)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("ReadFile(bad) = %v; want *ParseError", err)
	}
	if perr.Line != 2 || perr.Kind != UnterminatedSectionHeader {
		t.Errorf("ReadFile(bad) error = %+v; want line 2, %v", perr, UnterminatedSectionHeader)
	}
}

func TestMain(m *testing.M) {
	testlog.Main(nil)
	os.Exit(m.Run())
}
