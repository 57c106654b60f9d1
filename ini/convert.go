// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// The typed accessors below never fail: if the key is missing or its value
// does not parse as the requested type, they return defaultValue.
// Surrounding whitespace in the value is ignored.

func (s *Section) trimmed(key string) (string, bool) {
	v, ok := s.Get(key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (s *Section) parseInt(key string, bitSize int) (int64, bool) {
	v, ok := s.trimmed(key)
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(v, 10, bitSize)
	if err != nil {
		return 0, false
	}
	return i, true
}

func (s *Section) parseFloat(key string, bitSize int) (float64, bool) {
	v, ok := s.trimmed(key)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, bitSize)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int returns the value of key as a decimal int.
func (s *Section) Int(key string, defaultValue int) int {
	i, ok := s.parseInt(key, strconv.IntSize)
	if !ok {
		return defaultValue
	}
	return int(i)
}

// Int64 returns the value of key as a decimal int64.
func (s *Section) Int64(key string, defaultValue int64) int64 {
	i, ok := s.parseInt(key, 64)
	if !ok {
		return defaultValue
	}
	return i
}

// Int16 returns the value of key as a decimal int16.
func (s *Section) Int16(key string, defaultValue int16) int16 {
	i, ok := s.parseInt(key, 16)
	if !ok {
		return defaultValue
	}
	return int16(i)
}

// Int8 returns the value of key as a decimal int8. Values outside
// [-128, 127] return defaultValue.
func (s *Section) Int8(key string, defaultValue int8) int8 {
	i, ok := s.parseInt(key, 8)
	if !ok {
		return defaultValue
	}
	return int8(i)
}

// Float64 returns the value of key as a float64.
func (s *Section) Float64(key string, defaultValue float64) float64 {
	f, ok := s.parseFloat(key, 64)
	if !ok {
		return defaultValue
	}
	return f
}

// Float32 returns the value of key as a float32.
func (s *Section) Float32(key string, defaultValue float32) float32 {
	f, ok := s.parseFloat(key, 32)
	if !ok {
		return defaultValue
	}
	return float32(f)
}

// Bool returns true if the value of key is "true" and false if it is "false",
// ignoring case. Any other value, including strconv.ParseBool spellings like
// "1" or "t", returns defaultValue.
func (s *Section) Bool(key string, defaultValue bool) bool {
	v, ok := s.trimmed(key)
	switch {
	case !ok:
		return defaultValue
	case strings.EqualFold(v, "true"):
		return true
	case strings.EqualFold(v, "false"):
		return false
	default:
		return defaultValue
	}
}

// Rune returns the value of key if it consists of exactly one character.
func (s *Section) Rune(key string, defaultValue rune) rune {
	v, ok := s.trimmed(key)
	if !ok || utf8.RuneCountInString(v) != 1 {
		return defaultValue
	}
	r, size := utf8.DecodeRuneInString(v)
	if r == utf8.RuneError && size == 1 {
		return defaultValue
	}
	return r
}

// The typed setters below format value with strconv and store it with Put,
// so that the matching accessor reads the same value back.

// PutInt sets key to value in decimal and returns s.
func (s *Section) PutInt(key string, value int) *Section {
	return s.Put(key, strconv.Itoa(value))
}

// PutInt64 sets key to value in decimal and returns s.
func (s *Section) PutInt64(key string, value int64) *Section {
	return s.Put(key, strconv.FormatInt(value, 10))
}

// PutInt16 sets key to value in decimal and returns s.
func (s *Section) PutInt16(key string, value int16) *Section {
	return s.PutInt64(key, int64(value))
}

// PutInt8 sets key to value in decimal and returns s.
func (s *Section) PutInt8(key string, value int8) *Section {
	return s.PutInt64(key, int64(value))
}

// PutFloat64 sets key to the shortest representation of value and returns s.
func (s *Section) PutFloat64(key string, value float64) *Section {
	return s.Put(key, strconv.FormatFloat(value, 'g', -1, 64))
}

// PutFloat32 sets key to the shortest representation of value and returns s.
func (s *Section) PutFloat32(key string, value float32) *Section {
	return s.Put(key, strconv.FormatFloat(float64(value), 'g', -1, 32))
}

// PutBool sets key to "true" or "false" and returns s.
func (s *Section) PutBool(key string, value bool) *Section {
	return s.Put(key, strconv.FormatBool(value))
}

// PutRune sets key to the single character value and returns s.
func (s *Section) PutRune(key string, value rune) *Section {
	return s.Put(key, string(value))
}
