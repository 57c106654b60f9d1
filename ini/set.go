// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"zombiezen.com/go/log"
)

// FileSet is a list of files to obtain configuration from in descending order
// of precedence. Nil elements are treated as empty files.
type FileSet []*File

// LoadFiles parses the files at the given paths as INI and returns a FileSet.
// If the returned error is nil, the returned file set's length will be the same
// as the number of arguments. LoadFiles will stop on the first error, but
// ignores missing file errors, instead filling the corresponding element of the
// set with a nil *File. Every file is parsed with opts.
func LoadFiles(ctx context.Context, opts *ParseOptions, paths ...string) (FileSet, error) {
	fset := make(FileSet, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if errors.Is(err, fs.ErrNotExist) {
			log.Debugf(ctx, "Skipping missing configuration file %s", p)
			fset = append(fset, nil)
			continue
		}
		if err != nil {
			return fset, fmt.Errorf("load ini files: %w", err)
		}
		parsed, err := Parse(f, opts)
		f.Close() // Close errors irrelevant.
		if err != nil {
			return fset, fmt.Errorf("load ini files: %s: %w", p, err)
		}
		log.Debugf(ctx, "Loaded configuration file %s (%d sections)", p, parsed.NumSections())
		fset = append(fset, parsed)
	}
	return fset, nil
}

// lookup returns the section with the given name in f. The empty string
// refers to the top-level section.
func lookup(f *File, section string) *Section {
	if f == nil {
		return nil
	}
	if section == "" {
		return f.TopLevel()
	}
	return f.Section(section)
}

// Get returns the value associated with the given key in the given section
// of the first file that has one. Passing an empty section name searches the
// top-level sections. TopLevelName is treated as an ordinary section name, so
// a section declared as [__top_level__] can still be reached.
func (fset FileSet) Get(section, key string) (_ string, ok bool) {
	for _, f := range fset {
		if s := lookup(f, section); s != nil {
			if v, ok := s.Get(key); ok {
				return v, true
			}
		}
	}
	return "", false
}

// Find returns all the values associated with the given key in the given
// section, starting with the file of lowest precedence.
func (fset FileSet) Find(section, key string) []string {
	var values []string
	for i := len(fset) - 1; i >= 0; i-- {
		s := lookup(fset[i], section)
		if s == nil {
			continue
		}
		for _, e := range s.entries {
			if kv, ok := e.(KeyValue); ok && kv.Key == key {
				values = append(values, kv.Value)
			}
		}
	}
	return values
}

// ContainsSection reports whether any file in the set has the named section.
func (fset FileSet) ContainsSection(name string) bool {
	for _, f := range fset {
		if f.ContainsSection(name) {
			return true
		}
	}
	return false
}

// SectionNames returns the names of the named sections in any file, in order
// of first appearance starting with the file of lowest precedence.
func (fset FileSet) SectionNames() []string {
	var names []string
	seen := make(map[string]struct{})
	for i := len(fset) - 1; i >= 0; i-- {
		for _, name := range fset[i].SectionNames() {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// Merged flattens the set into a single new File. Files are merged starting
// with the lowest precedence, so values from earlier files win.
func (fset FileSet) Merged() *File {
	merged := New()
	for i := len(fset) - 1; i >= 0; i-- {
		merged.Merge(fset[i])
	}
	return merged
}
