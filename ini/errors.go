// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "fmt"

// ErrorKind classifies the errors returned by this package. ErrorKind
// implements error so that callers can match on it with errors.Is:
//
//	if errors.Is(err, ini.BlankKey) { ... }
type ErrorKind int

// Error kinds.
const (
	// InvalidSectionHeader is returned for a section header with an empty name
	// or with brackets inside the name, like "[foo]]".
	InvalidSectionHeader ErrorKind = 1 + iota
	// UnterminatedSectionHeader is returned for a line that starts with '['
	// but does not end with ']'.
	UnterminatedSectionHeader
	// BlankKey is returned for a property line with nothing before the '='.
	BlankKey
	// UnparsableLine is returned for a line that is not a section header,
	// comment, blank line or property.
	UnparsableLine
	// DuplicateSection is returned by File.CreateSection when a section with
	// the same name already exists.
	DuplicateSection
	// InvalidSectionName is returned by File.CreateSection for a name that
	// cannot be written as a section header.
	InvalidSectionName
)

func (k ErrorKind) Error() string {
	switch k {
	case InvalidSectionHeader:
		return "invalid section header"
	case UnterminatedSectionHeader:
		return "missing section closing bracket"
	case BlankKey:
		return "blank key"
	case UnparsableLine:
		return "could not find '='"
	case DuplicateSection:
		return "section already exists"
	case InvalidSectionName:
		return "invalid section name"
	default:
		return fmt.Sprintf("ini.ErrorKind(%d)", int(k))
	}
}

// A ParseError describes a line that could not be parsed.
type ParseError struct {
	Kind ErrorKind
	// Line is the 1-based line number.
	Line int
	// Text is the content of the offending line.
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse ini file: line %d: %v: %q", e.Line, e.Kind, e.Text)
}

// Unwrap returns e.Kind.
func (e *ParseError) Unwrap() error {
	return e.Kind
}
