// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package envvar overrides INI configuration with environment variables.
package envvar

import (
	"context"
	"os"
	"strings"

	"github.com/yourbase/inifile/ini"
	"zombiezen.com/go/log"
)

// Get returns the value of the given environment variable. If it is empty or
// unset, it returns the default value.
func Get(key string, defaultValue string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	return v
}

// Name returns the environment variable that overrides the given property.
// The name is formed by joining prefix, section and key with underscores,
// upper-casing the result and replacing any character other than an ASCII
// letter or digit with an underscore. An empty section names the top-level
// section and omits the section part.
//
//	Name("APP", "db", "max-conns") == "APP_DB_MAX_CONNS"
//	Name("APP", "", "debug") == "APP_DEBUG"
func Name(prefix, section, key string) string {
	parts := make([]string, 0, 3)
	if prefix != "" {
		parts = append(parts, prefix)
	}
	if section != "" {
		parts = append(parts, section)
	}
	parts = append(parts, key)
	return strings.Map(func(c rune) rune {
		switch {
		case 'a' <= c && c <= 'z':
			return c - 'a' + 'A'
		case 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
			return c
		default:
			return '_'
		}
	}, strings.Join(parts, "_"))
}

// Apply replaces the value of every property in f that has a non-empty
// environment variable override, as named by Name. If a key appears more than
// once in a section, every copy is replaced. Properties that do not already
// exist in f are never added. Apply returns the number of keys that were
// changed.
func Apply(ctx context.Context, f *ini.File, prefix string) int {
	n := 0
	for i, s := range f.SectionsIncludingTopLevel() {
		section := s.Name()
		if i == 0 {
			section = ""
		}
		values := make(map[string][]string)
		var keys []string
		for _, e := range s.Entries() {
			kv, ok := e.(ini.KeyValue)
			if !ok {
				continue
			}
			if _, seen := values[kv.Key]; !seen {
				keys = append(keys, kv.Key)
			}
			values[kv.Key] = append(values[kv.Key], kv.Value)
		}
		for _, key := range keys {
			name := Name(prefix, section, key)
			v := Get(name, "")
			if v == "" || allEqual(values[key], v) {
				continue
			}
			log.Debugf(ctx, "Overriding %s %s from $%s", s, key, name)
			s.Set(key, v)
			n++
		}
	}
	return n
}

func allEqual(values []string, v string) bool {
	for _, value := range values {
		if value != v {
			return false
		}
	}
	return true
}
