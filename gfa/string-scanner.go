// elGFA: a validating parser for GFA and GFA2 assembly graph files.
// Copyright (c) 2026 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elgfa/blob/master/LICENSE.txt>.

package gfa

import "strings"

/*
A StringScanner scans/parses strings representing lines in GFA
files, or the comma- and space-separated lists nested inside single
fields.

The zero StringScanner is valid and empty.
*/
type StringScanner struct {
	index int
	data  string
}

/*
Reset resets the scanner, and initializes it with the given string.
*/
func (sc *StringScanner) Reset(s string) {
	sc.index = 0
	sc.data = s
}

/*
Len returns the number of ASCII characters that still need to be
scanned/parsed.
*/
func (sc *StringScanner) Len() int {
	return len(sc.data) - sc.index
}

/*
ReadUntil returns the text up to, but excluding, the next occurrence
of c, and advances past c. If c does not occur, it returns the
remaining text and false.
*/
func (sc *StringScanner) ReadUntil(c byte) (s string, found bool) {
	start := sc.index
	for end := sc.index; end < len(sc.data); end++ {
		if sc.data[end] == c {
			sc.index = end + 1
			return sc.data[start:end], true
		}
	}
	sc.index = len(sc.data)
	return sc.data[start:], false
}

/*
Split splits the remaining text on every occurrence of sep. Empty
elements are preserved, so n separators always yield n+1 elements.
An empty remainder yields a single empty element.
*/
func (sc *StringScanner) Split(sep byte, result []string) []string {
	for {
		s, found := sc.ReadUntil(sep)
		result = append(result, s)
		if !found {
			return result
		}
	}
}

// CommentCode is the record code of comment lines in both GFA dialects.
const CommentCode = '#'

// trailingSpace is the set of characters stripped from the end of a
// line before it is split.
const trailingSpace = " \t\r\n"

/*
TrimLine strips trailing whitespace and newline characters from a
line.
*/
func TrimLine(line string) string {
	return strings.TrimRight(line, trailingSpace)
}

/*
SplitFields splits a line into its tab-separated fields. Trailing
whitespace is stripped first; a blank line yields no fields at all.
Empty fields between two tabs are preserved as empty strings.

A comment line yields exactly two fields: the comment code, and the
rest of the line verbatim, tabs included.
*/
func SplitFields(line string) []string {
	line = TrimLine(line)
	if line == "" {
		return nil
	}
	if line[0] == CommentCode {
		return []string{line[:1], line[1:]}
	}
	var sc StringScanner
	sc.Reset(line)
	return sc.Split('\t', make([]string, 0, 16))
}

/*
SplitList splits a single field on sep, for example a comma-separated
list of path overlaps or a space-separated list of group members.
*/
func SplitList(field string, sep byte) []string {
	var sc StringScanner
	sc.Reset(field)
	return sc.Split(sep, nil)
}
