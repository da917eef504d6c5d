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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gfa1Example = "H\tVN:Z:1.0\nS\t1\tACGT\nS\t2\tTTTT\nL\t1\t+\t2\t+\t4M\n"

const gfa2Example = "H\nS\t11\t100\tACCTT\nS\t12\t150\tTTGCA\nE\t*\t11+\t12+\t80\t100$\t0\t20\t*\n"

func TestParseGFA1(t *testing.T) {
	g, err := Parse(strings.NewReader(gfa1Example), GFA1)
	require.NoError(t, err)
	version, ok := g.Version()
	assert.True(t, ok)
	assert.Equal(t, "1.0", version)
	require.Equal(t, 2, g.NumSegments())
	assert.Equal(t, "1", g.Segments()[0].ID)
	assert.Equal(t, "ACGT", g.Segments()[0].Sequence)
	require.Len(t, g.Links, 1)
	link := g.Links[0]
	assert.Equal(t, OrientedRef{"1", Forward}, link.From)
	assert.Equal(t, OrientedRef{"2", Forward}, link.To)
	assert.Equal(t, "4M", link.Overlap)
}

func TestParseGFA2(t *testing.T) {
	g, err := Parse(strings.NewReader(gfa2Example), GFA2)
	require.NoError(t, err)
	assert.Empty(t, g.Header)
	require.Len(t, g.Edges, 1)
	edge := g.Edges[0]
	assert.True(t, edge.IsAnonymous())
	assert.Equal(t, Position{Value: 100, End: true}, edge.End1)
	assert.Equal(t, Position{Value: 20}, edge.End2)
	seg, ok := g.Segment("12")
	require.True(t, ok)
	assert.Equal(t, int64(150), seg.Length)
}

func parseError(t *testing.T, input string, dialect Format) *ParseError {
	t.Helper()
	g, err := Parse(strings.NewReader(input), dialect)
	assert.Nil(t, g)
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "%v", err)
	return pe
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input   string
		dialect Format
		kind    ErrorKind
		line    int
		code    string
	}{
		{"S\t1\n", GFA1, ArityError, 1, "S"},
		{"S\t1\nS\t2\tACGT\nS\t3\tTT\n", GFA1, ArityError, 1, "S"},
		{"S\t1\tACGT\nS\t2\tTT\nL\t1\t+\t2\t+\t\tXX:i:1\n", GFA1, InvalidValue, 3, "L"},
		{"S\t1\tACGT\nL\t1\t+\t2\t+\t*\n", GFA1, DanglingReference, 2, "L"},
		{"S\t1\tACGT\n\nS\t1\tACGT\n", GFA1, DuplicateIdentity, 3, "S"},
		{"H\nX\tfoo\n", GFA2, UnknownRecordCode, 2, "X"},
		{"L\t1\t+\t1\t+\t*\n", GFA2, UnknownRecordCode, 1, "L"},
		{"S\t1\tAC GT\n", GFA1, InvalidValue, 1, "S"},
		{"# fine\nS\t1\t*\tLN:i:x\n", GFA1, LexicalError, 2, "S"},
		{"S\t1\t4\t*\nE\t*\t1+\t1-\t0\t5\t0\t4$\t*\n", GFA2, InvalidValue, 2, "E"},
	}
	for _, test := range tests {
		pe := parseError(t, test.input, test.dialect)
		assert.Equal(t, test.kind, pe.Kind, "%q: %v", test.input, pe)
		assert.Equal(t, test.line, pe.Line, "%q: %v", test.input, pe)
		assert.Equal(t, test.code, pe.Code, "%q: %v", test.input, pe)
	}
}

func TestParseErrorMessage(t *testing.T) {
	pe := parseError(t, "S\t1\tACGT\nL\t1\t+\t2\t+\t*\n", GFA1)
	assert.True(t, errors.Is(pe, ErrDangling))
	assert.False(t, errors.Is(pe, ErrDuplicate))
	assert.Contains(t, pe.Error(), "line 2")
	assert.Contains(t, pe.Error(), "2")
}

func TestParseLineEndings(t *testing.T) {
	input := "H\tVN:Z:1.0\r\n\r\n# a comment\r\nS\t1\tACGT \t\r\nS\t2\tTTTT\r\nL\t1\t+\t2\t-\t*"
	g, err := Parse(strings.NewReader(input), GFA1)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumSegments())
	assert.Equal(t, "ACGT", g.Segments()[0].Sequence)
	require.Len(t, g.Links, 1)
	assert.Equal(t, Reverse, g.Links[0].To.Orientation)
	assert.Equal(t, "", g.Links[0].Overlap)
}

func TestParseEmpty(t *testing.T) {
	g, err := Parse(strings.NewReader(""), GFA1)
	require.NoError(t, err)
	assert.Equal(t, 0, g.NumSegments())
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("gfa")
	require.NoError(t, err)
	assert.Equal(t, GFA1, format)
	format, err = ParseFormat("gfa2")
	require.NoError(t, err)
	assert.Equal(t, GFA2, format)
	for _, s := range []string{"GFA", "gfa1", "Gfa2", "GFA2", "", "gfa3"} {
		_, err := ParseFormat(s)
		assert.Equal(t, InvalidValue, KindOf(err), s)
	}
}

func TestParseUnknownFormat(t *testing.T) {
	_, err := Parse(strings.NewReader(gfa1Example), Format(7))
	assert.Equal(t, InvalidValue, KindOf(err))
}

type failingSource struct {
	lines []string
}

var errDisk = errors.New("disk on fire")

func (src *failingSource) ReadLine() (string, error) {
	if len(src.lines) == 0 {
		return "", errDisk
	}
	line := src.lines[0]
	src.lines = src.lines[1:]
	return line, nil
}

func TestParseIoError(t *testing.T) {
	_, err := ParseLines(&failingSource{[]string{"S\t1\tACGT\n"}}, GFA1, Options{})
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, IoError, pe.Kind)
	assert.Equal(t, 2, pe.Line)
	assert.True(t, errors.Is(err, errDisk))
	assert.True(t, errors.Is(err, ErrIO))
}

func TestParseTwoPass(t *testing.T) {
	input := "L\t1\t+\t2\t+\t4M\nS\t1\tACGT\nS\t2\tTTTT\n"
	_, err := Parse(strings.NewReader(input), GFA1)
	assert.Equal(t, DanglingReference, KindOf(err))

	g, err := ParseLines(NewLineSource(strings.NewReader(input)), GFA1, Options{TwoPass: true})
	require.NoError(t, err)
	assert.Len(t, g.Links, 1)

	input = "S\t1\tACGT\nL\t1\t+\t2\t+\t4M\n"
	_, err = ParseLines(NewLineSource(strings.NewReader(input)), GFA1, Options{TwoPass: true})
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, DanglingReference, pe.Kind)
	assert.Equal(t, 2, pe.Line)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.gfa")
	require.NoError(t, os.WriteFile(plain, []byte(gfa1Example), 0o644))
	g, err := ParseFile(plain, GFA1, Options{})
	require.NoError(t, err)
	assert.Len(t, g.Links, 1)

	compressed := filepath.Join(dir, "compressed.gfa.gz")
	file, err := os.Create(compressed)
	require.NoError(t, err)
	zw := gzip.NewWriter(file)
	_, err = zw.Write([]byte(gfa2Example))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, file.Close())
	g, err = ParseFile(compressed, GFA2, Options{})
	require.NoError(t, err)
	assert.Len(t, g.Edges, 1)

	_, err = ParseFile(filepath.Join(dir, "missing.gfa"), GFA1, Options{})
	assert.True(t, errors.Is(err, ErrIO))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
