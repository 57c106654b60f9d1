// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	xunicode "golang.org/x/text/encoding/unicode"
)

// TopLevelName is the name of the section that holds the properties written
// before any section header.
const TopLevelName = "__top_level__"

// A File is an INI document: a top-level section followed by a list of named
// sections. The zero value is an empty file.
//
// A File is not safe for concurrent use by multiple goroutines.
type File struct {
	top      Section
	sections []*Section
}

// New returns an empty File.
func New() *File {
	f := new(File)
	f.TopLevel()
	return f
}

// ParseOptions holds optional parameters for Parse.
type ParseOptions struct {
	// NormalizeSection is called on each section name to apply text transformations.
	// This can be used to make section names case-insensitive, for instance.
	// Headers that normalize to the same name are merged into one section.
	// If nil, no transformations are made.
	NormalizeSection func(name string) string

	// NormalizeKey is called on each key to apply text transformations.
	// This can be used to make keys case-insensitive, for instance.
	// section is the normalized section name, or the empty string for the
	// top-level section. If nil, no transformations are made.
	NormalizeKey func(section, key string) string
}

func (opts *ParseOptions) section(name string) string {
	if opts == nil || opts.NormalizeSection == nil {
		return name
	}
	return opts.NormalizeSection(name)
}

func (opts *ParseOptions) key(section, key string) string {
	if opts == nil || opts.NormalizeKey == nil {
		return key
	}
	return opts.NormalizeKey(section, key)
}

// Parse reads r to completion and parses it as an INI file. The input is
// decoded as UTF-8 and a leading byte order mark is skipped. Nil options are
// treated identically as passing the zero value.
//
// See the Syntax section in the package documentation for the format
// recognized by Parse. Syntax errors are returned as *ParseError.
func Parse(r io.Reader, opts *ParseOptions) (*File, error) {
	data, err := io.ReadAll(xunicode.UTF8BOM.NewDecoder().Reader(r))
	if err != nil {
		return nil, fmt.Errorf("parse ini file: %w", err)
	}
	return parse(string(data), opts)
}

// ParseString parses s as an INI file with the default options.
func ParseString(s string) (*File, error) {
	return Parse(strings.NewReader(s), nil)
}

func parse(text string, opts *ParseOptions) (*File, error) {
	f := New()
	curr := &f.top
	currName := ""
	s := bufio.NewScanner(strings.NewReader(text))
	s.Buffer(nil, max(len(text)+1, bufio.MaxScanTokenSize))
	for lineno := 1; s.Scan(); lineno++ {
		raw := s.Text()
		line := strings.TrimLeftFunc(raw, unicode.IsSpace)
		e, name, kind := parseLine(line)
		if kind != 0 {
			return nil, &ParseError{Kind: kind, Line: lineno, Text: raw}
		}
		if kv, ok := e.(KeyValue); ok {
			kv.Key = opts.key(currName, kv.Key)
			if strings.TrimSpace(kv.Key) == "" {
				return nil, &ParseError{Kind: BlankKey, Line: lineno, Text: raw}
			}
			e = kv
		}
		if e != nil {
			curr.entries = append(curr.entries, e)
			continue
		}
		name = opts.section(name)
		if !isHeaderName(name) {
			return nil, &ParseError{Kind: InvalidSectionHeader, Line: lineno, Text: raw}
		}
		currName = name
		curr = f.Section(name)
		if curr == nil {
			curr = &Section{name: name}
			f.sections = append(f.sections, curr)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("parse ini file: %w", err)
	}
	return f, nil
}

// parseLine classifies a line with its leading whitespace removed. It returns
// either an entry, or a section name if the line is a section header.
func parseLine(line string) (_ Entry, section string, _ ErrorKind) {
	switch {
	case strings.HasPrefix(line, "["):
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if !strings.HasSuffix(line, "]") || len(line) < 2 {
			return nil, "", UnterminatedSectionHeader
		}
		name := strings.TrimSpace(line[1 : len(line)-1])
		if !isHeaderName(name) {
			return nil, "", InvalidSectionHeader
		}
		return nil, name, 0
	case strings.TrimSpace(line) == "":
		return Blank{}, "", 0
	case isCommentMarker(line[0]):
		return Comment{
			Marker: line[0],
			Text:   strings.TrimLeftFunc(line[1:], unicode.IsSpace),
		}, "", 0
	}
	i := strings.IndexByte(line, '=')
	if i == -1 {
		return nil, "", UnparsableLine
	}
	key := strings.TrimSpace(line[:i])
	if key == "" {
		return nil, "", BlankKey
	}
	return KeyValue{
		Key:   key,
		Value: strings.TrimLeftFunc(line[i+1:], unicode.IsSpace),
	}, "", 0
}

func isHeaderName(name string) bool {
	return strings.TrimSpace(name) != "" && !strings.ContainsAny(name, "[]")
}

// TopLevel returns the section holding properties outside any named section.
func (f *File) TopLevel() *Section {
	f.top.name = TopLevelName
	return &f.top
}

// Section returns the named section or nil if f does not have one.
func (f *File) Section(name string) *Section {
	if f == nil {
		return nil
	}
	for _, s := range f.sections {
		if s.name == name {
			return s
		}
	}
	return nil
}

// ContainsSection reports whether f has a section with the given name.
func (f *File) ContainsSection(name string) bool {
	return f.Section(name) != nil
}

// NumSections returns the number of named sections in f. The top-level
// section is not counted.
func (f *File) NumSections() int {
	if f == nil {
		return 0
	}
	return len(f.sections)
}

// Sections returns the named sections of f in order.
func (f *File) Sections() []*Section {
	if f == nil || len(f.sections) == 0 {
		return nil
	}
	return append([]*Section(nil), f.sections...)
}

// SectionsIncludingTopLevel returns the top-level section followed by the
// named sections of f.
func (f *File) SectionsIncludingTopLevel() []*Section {
	if f == nil {
		return nil
	}
	list := make([]*Section, 0, 1+len(f.sections))
	list = append(list, f.TopLevel())
	return append(list, f.sections...)
}

// SectionNames returns the names of the named sections of f in order.
func (f *File) SectionNames() []string {
	if f == nil {
		return nil
	}
	names := make([]string, 0, len(f.sections))
	for _, s := range f.sections {
		names = append(names, s.name)
	}
	return names
}

// CreateSection appends a new empty section to f. It returns an error
// matching DuplicateSection if f already has a section with the given name,
// or InvalidSectionName if IsValidSection(name) reports false.
func (f *File) CreateSection(name string) (*Section, error) {
	if !IsValidSection(name) {
		return nil, fmt.Errorf("ini: create section %q: %w", name, InvalidSectionName)
	}
	if f.ContainsSection(name) {
		return nil, fmt.Errorf("ini: create section %q: %w", name, DuplicateSection)
	}
	s := &Section{name: name}
	f.sections = append(f.sections, s)
	return s, nil
}

// RemoveSection removes the named section from f, if present. The top-level
// section cannot be removed.
func (f *File) RemoveSection(name string) {
	for i, s := range f.sections {
		if s.name == name {
			copy(f.sections[i:], f.sections[i+1:])
			f.sections[len(f.sections)-1] = nil
			f.sections = f.sections[:len(f.sections)-1]
			return
		}
	}
}

// Merge copies the contents of other into f. The top-level sections are
// merged, as are sections with the same name; other sections are copied to
// the end of f. Properties that already exist are updated in place.
func (f *File) Merge(other *File) {
	if other == nil || other == f {
		return
	}
	f.TopLevel().Merge(&other.top)
	for _, s := range other.sections {
		if dst := f.Section(s.name); dst != nil {
			dst.Merge(s)
			continue
		}
		f.sections = append(f.sections, s.Clone())
	}
}

// Clone returns a deep copy of f.
func (f *File) Clone() *File {
	clone := New()
	if f == nil {
		return clone
	}
	clone.top.entries = f.top.Entries()
	for _, s := range f.sections {
		clone.sections = append(clone.sections, s.Clone())
	}
	return clone
}

// ClearComments removes every comment from f.
func (f *File) ClearComments() {
	for _, s := range f.SectionsIncludingTopLevel() {
		s.ClearComments()
	}
}

// ClearBlankLines removes every blank line from f.
func (f *File) ClearBlankLines() {
	for _, s := range f.SectionsIncludingTopLevel() {
		s.ClearBlankLines()
	}
}

// MarshalText formats f in INI format. Lines are terminated by "\n".
// It never returns an error.
func (f *File) MarshalText() ([]byte, error) {
	if f == nil {
		return nil, nil
	}
	var buf []byte
	for _, e := range f.top.entries {
		buf = appendEntry(buf, e)
		buf = append(buf, '\n')
	}
	for _, s := range f.sections {
		buf = append(buf, '[')
		buf = append(buf, s.name...)
		buf = append(buf, "]\n"...)
		for _, e := range s.entries {
			buf = appendEntry(buf, e)
			buf = append(buf, '\n')
		}
	}
	return buf, nil
}

// String returns f in INI format.
func (f *File) String() string {
	text, _ := f.MarshalText()
	return string(text)
}

// WriteTo writes f to w in INI format.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	text, _ := f.MarshalText()
	n, err := w.Write(text)
	return int64(n), err
}

// UnmarshalText parses the INI data, replacing any sections in f.
func (f *File) UnmarshalText(data []byte) error {
	parsed, err := ParseString(string(data))
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}

// IsValidSection reports whether a string can be used as a section name in
// an INI file.
func IsValidSection(name string) bool {
	if strings.TrimSpace(name) != name || name == "" {
		return false
	}
	return !strings.ContainsAny(name, "[]\r\n")
}

// IsValidKey reports whether a string can be used as a property key in
// an INI file.
func IsValidKey(key string) bool {
	if strings.TrimSpace(key) != key || key == "" {
		return false
	}
	if isCommentMarker(key[0]) || key[0] == '[' {
		return false
	}
	return !strings.ContainsAny(key, "=\r\n")
}
