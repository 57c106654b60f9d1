// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"strings"
	"unicode"
)

// A Section is a named, ordered list of entries. Sections are owned by the
// File that created them.
type Section struct {
	name    string
	entries []Entry
}

// Name returns the section's name. The top-level section is named
// TopLevelName.
func (s *Section) Name() string {
	return s.name
}

// String returns the section's header, like "[name]".
func (s *Section) String() string {
	return "[" + s.name + "]"
}

// Len returns the number of entries in the section, including comments and
// blank lines.
func (s *Section) Len() int {
	return len(s.entries)
}

// NumRecords returns the number of properties in the section.
func (s *Section) NumRecords() int {
	n := 0
	for _, e := range s.entries {
		if _, ok := e.(KeyValue); ok {
			n++
		}
	}
	return n
}

// Entries returns a copy of the section's entries in order.
func (s *Section) Entries() []Entry {
	if len(s.entries) == 0 {
		return nil
	}
	return append([]Entry(nil), s.entries...)
}

// Records returns the section's properties as a map. If a key appears more
// than once, the last value is used. Note that this differs from Get, which
// returns the first value.
func (s *Section) Records() map[string]string {
	m := make(map[string]string)
	for _, e := range s.entries {
		if kv, ok := e.(KeyValue); ok {
			m[kv.Key] = kv.Value
		}
	}
	return m
}

// Get returns the value of the first property with the given key. Note that
// this differs from Records, which uses the last value.
func (s *Section) Get(key string) (_ string, ok bool) {
	if i := s.index(key); i >= 0 {
		return s.entries[i].(KeyValue).Value, true
	}
	return "", false
}

// ContainsKey reports whether the section has a property with the given key.
func (s *Section) ContainsKey(key string) bool {
	return s.index(key) >= 0
}

func (s *Section) index(key string) int {
	for i, e := range s.entries {
		if kv, ok := e.(KeyValue); ok && kv.Key == key {
			return i
		}
	}
	return -1
}

// Put sets the first property with the given key to value, keeping its
// position. If there is no such property, Put appends one to the end of the
// section. Put returns s so that calls can be chained.
//
// Put does not validate key or value. Keys that fail IsValidKey and values
// containing line breaks will not survive a round trip through MarshalText.
func (s *Section) Put(key, value string) *Section {
	if i := s.index(key); i >= 0 {
		s.entries[i] = KeyValue{Key: key, Value: value}
		return s
	}
	s.entries = append(s.entries, KeyValue{Key: key, Value: value})
	return s
}

// Set sets every property with the given key to value, keeping their
// positions. If there is no such property, Set appends one to the end of the
// section. After Set, Get and Records agree on the value of key. Set returns
// s so that calls can be chained.
func (s *Section) Set(key, value string) *Section {
	found := false
	for i, e := range s.entries {
		if kv, ok := e.(KeyValue); ok && kv.Key == key {
			s.entries[i] = KeyValue{Key: key, Value: value}
			found = true
		}
	}
	if !found {
		s.entries = append(s.entries, KeyValue{Key: key, Value: value})
	}
	return s
}

// Remove deletes every property with the given key.
func (s *Section) Remove(key string) {
	s.filter(func(e Entry) bool {
		kv, ok := e.(KeyValue)
		return !ok || kv.Key != key
	})
}

// AddBlankLine appends a blank line to the section and returns s.
func (s *Section) AddBlankLine() *Section {
	s.entries = append(s.entries, Blank{})
	return s
}

// AddComment appends a semicolon comment to the section and returns s.
// Each line of text becomes its own comment entry.
func (s *Section) AddComment(text string) *Section {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		s.entries = append(s.entries, Comment{
			Marker: SemicolonMarker,
			Text:   strings.TrimLeftFunc(line, unicode.IsSpace),
		})
	}
	return s
}

// Append adds e to the end of the section and returns s. Unlike Put, Append
// always adds a new entry, so it can be used to build sections with repeated
// keys.
func (s *Section) Append(e Entry) *Section {
	if e == nil {
		return s
	}
	s.entries = append(s.entries, e)
	return s
}

// ClearComments removes all comments from the section.
func (s *Section) ClearComments() {
	s.filter(func(e Entry) bool {
		_, ok := e.(Comment)
		return !ok
	})
}

// ClearBlankLines removes all blank lines from the section.
func (s *Section) ClearBlankLines() {
	s.filter(func(e Entry) bool {
		_, ok := e.(Blank)
		return !ok
	})
}

// filter keeps the entries for which keep returns true.
func (s *Section) filter(keep func(Entry) bool) {
	n := 0
	for _, e := range s.entries {
		if keep(e) {
			s.entries[n] = e
			n++
		}
	}
	for i := n; i < len(s.entries); i++ {
		// Zero out for garbage collection.
		s.entries[i] = nil
	}
	s.entries = s.entries[:n]
}

// Merge copies the entries of other onto the end of s. Properties whose key
// already exists in s are updated in place with Set instead of appended, so
// every copy of the key in s takes the value from other.
func (s *Section) Merge(other *Section) {
	if other == nil || other == s {
		return
	}
	existing := make(map[string]struct{})
	for _, e := range s.entries {
		if kv, ok := e.(KeyValue); ok {
			existing[kv.Key] = struct{}{}
		}
	}
	for _, e := range other.entries {
		if kv, ok := e.(KeyValue); ok {
			if _, ok := existing[kv.Key]; ok {
				s.Set(kv.Key, kv.Value)
				continue
			}
		}
		s.entries = append(s.entries, e)
	}
}

// Clone returns a deep copy of s.
func (s *Section) Clone() *Section {
	return &Section{
		name:    s.name,
		entries: s.Entries(),
	}
}
