// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

// An Entry is a single line of an INI file. The concrete type of an Entry is
// always one of KeyValue, Comment or Blank.
type Entry interface {
	isEntry()
}

// KeyValue is a property line.
type KeyValue struct {
	Key   string
	Value string
}

// Comment is a comment line. Marker is the character that started the
// comment, either ';' or '#'. Text does not include leading whitespace.
type Comment struct {
	Marker byte
	Text   string
}

// Blank is an empty line.
type Blank struct{}

func (KeyValue) isEntry() {}
func (Comment) isEntry()  {}
func (Blank) isEntry()    {}

// Comment markers.
const (
	SemicolonMarker byte = ';'
	HashMarker      byte = '#'
)

func isCommentMarker(c byte) bool {
	return c == SemicolonMarker || c == HashMarker
}

// appendEntry appends the serialized form of e to dst without a line terminator.
func appendEntry(dst []byte, e Entry) []byte {
	switch e := e.(type) {
	case KeyValue:
		dst = append(dst, e.Key...)
		dst = append(dst, '=')
		dst = append(dst, e.Value...)
	case Comment:
		marker := e.Marker
		if !isCommentMarker(marker) {
			marker = SemicolonMarker
		}
		dst = append(dst, marker)
		if e.Text != "" {
			dst = append(dst, ' ')
			dst = append(dst, e.Text...)
		}
	case Blank:
	default:
		panic("unreachable")
	}
	return dst
}
