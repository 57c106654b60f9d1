// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package ini provides a parser and serializer for the INI file format.
See https://en.wikipedia.org/wiki/INI_file.

This package is specifically designed for read-modify-write scenarios: a
parsed File keeps every line of its source, including comments and blank
lines, in order. Edits made through Section.Put change values in place, so
serializing a File reproduces the original layout.

Syntax

An INI file is Unicode text encoded in UTF-8. A leading byte order mark is
ignored. Lines are separated by "\n" or "\r\n".

An INI file consists of zero or more properties. A property is a key and
value written on a single line, separated by an equals sign ('='):

	key=value

The line is split on the first equals sign, so values may contain further
equals signs. Whitespace around the key is ignored. Whitespace before the
value is ignored, but whitespace after the value is part of the value.

Properties may be grouped into sections. A section is started by writing its
name in square brackets ('[' and ']') on its own line and ends at the next
section name or the end of file:

	[section]
	key1=value1
	key2=value2

Properties encountered before a section name belong to the top-level section,
which is always present and is never written with a header.

If the first non-whitespace character in a line is a semicolon (';') or a
hash ('#'), then the line is treated as a comment. Inline comments are not
supported. Blank lines are kept as entries of the section they appear in.

Any other non-blank line is an error. Parse reports the line number along
with an ErrorKind that can be tested with errors.Is.

Repeated names

Multiple properties in the same section may have the same key. Section.Get
returns the first value, while Section.Records folds the section so that the
last value wins. Both behaviors are relied upon by callers.

Multiple sections may have the same name. Parse treats the second header as
reopening the first section: its properties are appended to the existing
section. CreateSection, in contrast, refuses to create a duplicate.
*/
package ini
