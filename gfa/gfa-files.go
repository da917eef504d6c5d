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

import (
	"bufio"
	"io"
	"os"

	"github.com/exascience/elgfa/utils"
)

/*
A LineSource yields the lines of a GFA file in order. ReadLine returns
io.EOF after the last line, possibly together with a final line that
is not terminated by a newline.
*/
type LineSource interface {
	ReadLine() (string, error)
}

type readerSource struct {
	reader *bufio.Reader
}

func (src readerSource) ReadLine() (string, error) {
	return src.reader.ReadString('\n')
}

// NewLineSource returns a LineSource that reads lines from r.
func NewLineSource(r io.Reader) LineSource {
	if reader, ok := r.(*bufio.Reader); ok {
		return readerSource{reader}
	}
	return readerSource{bufio.NewReader(r)}
}

// Options configure a parse.
type Options struct {
	// TwoPass defers reference checks to the end of the input, so that
	// records may refer to segments declared further down.
	TwoPass bool
}

// Parse parses GFA text of the given dialect from r.
func Parse(r io.Reader, dialect Format) (*Graph, error) {
	return ParseLines(NewLineSource(r), dialect, Options{})
}

/*
ParseLines drives the lines of src through the tokenizer, the grammar
of the given dialect, and a Builder. It stops at the first error and
returns it as a *ParseError carrying the 1-based line number. It
returns either a complete graph or an error, never both.
*/
func ParseLines(src LineSource, dialect Format, opts Options) (*Graph, error) {
	if dialect != GFA1 && dialect != GFA2 {
		return nil, newError(InvalidValue, "unknown format %v", dialect)
	}
	builder := NewBuilder(dialect, opts.TwoPass)
	for lineNo := 1; ; lineNo++ {
		line, err := src.ReadLine()
		if err != nil && err != io.EOF {
			return nil, &ParseError{Kind: IoError, Line: lineNo, Err: err}
		}
		if line != "" {
			if perr := parseLine(builder, dialect, lineNo, line); perr != nil {
				return nil, perr
			}
		}
		if err == io.EOF {
			break
		}
	}
	return builder.Finish()
}

func parseLine(builder *Builder, dialect Format, lineNo int, line string) error {
	fields := SplitFields(line)
	if len(fields) == 0 {
		return nil
	}
	record, err := ParseRecord(dialect, fields)
	if err != nil {
		return atLine(err, lineNo, fields[0])
	}
	if err := builder.InsertLine(lineNo, record); err != nil {
		return atLine(err, lineNo, fields[0])
	}
	return nil
}

/*
ParseFile parses the GFA file with the given name. Files compressed
with gzip or bgzip are decompressed transparently.
*/
func ParseFile(filename string, dialect Format, opts Options) (graph *Graph, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &ParseError{Kind: IoError, Err: err}
	}
	defer func() {
		if nerr := file.Close(); nerr != nil && err == nil {
			graph, err = nil, &ParseError{Kind: IoError, Err: nerr}
		}
	}()
	r, err := utils.HandleGzip(bufio.NewReader(file))
	if err != nil {
		return nil, &ParseError{Kind: IoError, Err: err}
	}
	return ParseLines(NewLineSource(r), dialect, opts)
}
