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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertLines(t *testing.T, b *Builder, dialect Format, lines ...string) error {
	t.Helper()
	for i, line := range lines {
		record, err := ParseRecord(dialect, SplitFields(line))
		require.NoError(t, err, line)
		if err := b.InsertLine(i+1, record); err != nil {
			return err
		}
	}
	return nil
}

func TestBuilderDuplicateSegment(t *testing.T) {
	b := NewBuilder(GFA1, false)
	err := insertLines(t, b, GFA1, "S\t1\tACGT", "S\t1\tTTTT")
	assert.True(t, errors.Is(err, ErrDuplicate), "%v", err)
}

func TestBuilderDanglingReference(t *testing.T) {
	for _, line := range []string{
		"L\t1\t+\t3\t+\t4M",
		"L\t3\t+\t1\t+\t4M",
		"C\t1\t+\t3\t-\t0\t*",
		"P\tp1\t1+,3-\t*",
	} {
		b := NewBuilder(GFA1, false)
		err := insertLines(t, b, GFA1, "S\t1\tACGT", "S\t2\tTTTT", line)
		assert.True(t, errors.Is(err, ErrDangling), "%v: %v", line, err)
	}
}

func TestBuilderGFA1(t *testing.T) {
	b := NewBuilder(GFA1, false)
	require.NoError(t, insertLines(t, b, GFA1,
		"H\tVN:Z:1.0",
		"S\t1\tACGT",
		"S\t2\tTTTT",
		"S\t3\t*",
		"L\t1\t+\t2\t-\t4M",
		"C\t1\t+\t2\t+\t0\t4M",
		"P\tp1\t1+,2-\t4M",
		"H\tVN:Z:1.1\tTS:i:100",
		"# done",
	))
	g, err := b.Finish()
	require.NoError(t, err)
	assert.Equal(t, GFA1, g.Dialect())
	assert.Equal(t, 3, g.NumSegments())
	assert.Len(t, g.Links, 1)
	assert.Len(t, g.Containments, 1)
	assert.Len(t, g.Paths, 1)

	version, ok := g.Version()
	assert.True(t, ok)
	assert.Equal(t, "1.1", version)
	assert.Len(t, g.Header, 2)

	assert.Len(t, g.LinksOf("1"), 1)
	assert.Len(t, g.LinksOf("2"), 1)
	assert.Empty(t, g.LinksOf("3"))
	assert.Len(t, g.Incident("1"), 2)

	p, ok := g.Path("p1")
	require.True(t, ok)
	assert.Len(t, p.Segments, 2)

	isolated := g.IsolatedSegments()
	require.Len(t, isolated, 1)
	assert.Equal(t, "3", isolated[0].ID)
	assert.Len(t, g.ReferencedSegments(), 2)

	seg, ok := g.Segment("2")
	require.True(t, ok)
	assert.Equal(t, "TTTT", seg.Sequence)
	_, ok = g.Segment("4")
	assert.False(t, ok)
}

func TestBuilderDuplicatePath(t *testing.T) {
	b := NewBuilder(GFA1, false)
	err := insertLines(t, b, GFA1, "S\t1\tACGT", "P\tp1\t1+\t*", "P\tp1\t1-\t*")
	assert.Equal(t, DuplicateIdentity, KindOf(err))
}

func TestBuilderGFA2(t *testing.T) {
	b := NewBuilder(GFA2, false)
	require.NoError(t, insertLines(t, b, GFA2,
		"H\tVN:Z:2.0",
		"S\t11\t100\tACCTT",
		"S\t12\t150\t*",
		"S\t13\t50\t*",
		"F\t12\tread1-\t0\t150$\t10\t160\t150M",
		"E\te1\t11+\t12+\t80\t100$\t0\t20\t*",
		"E\t*\t11+\t12-\t0\t10\t140\t150$\t*",
		"E\t*\t12+\t12-\t0\t10\t0\t10\t*",
		"G\tg1\t11+\t13-\t-50\t*",
		"O\tpath1\t11+ e1+ 12+",
		"U\tset1\t13 g1 path1",
	))
	g, err := b.Finish()
	require.NoError(t, err)
	assert.Len(t, g.Edges, 3)
	assert.Len(t, g.Fragments, 1)
	assert.Len(t, g.Gaps, 1)
	assert.Len(t, g.Groups, 2)

	assert.Len(t, g.EdgesOf("11"), 2)
	assert.Len(t, g.EdgesOf("12"), 3)
	assert.Len(t, g.Incident("13"), 1)
	assert.Len(t, g.FragmentsOf("12"), 1)

	e, ok := g.Element("e1")
	require.True(t, ok)
	assert.Equal(t, byte('E'), e.Code())
	_, ok = g.Element("*")
	assert.False(t, ok)
	group, ok := g.Element("set1")
	require.True(t, ok)
	assert.Equal(t, byte('U'), group.Code())

	assert.Empty(t, g.IsolatedSegments())
}

func TestBuilderGFA2Errors(t *testing.T) {
	segments := []string{"S\t11\t100\t*", "S\t12\t150\t*"}
	tests := []struct {
		line string
		kind ErrorKind
	}{
		{"E\te1\t11+\t13+\t0\t1\t0\t1\t*", DanglingReference},
		{"F\t13\tr1+\t0\t1\t0\t1\t*", DanglingReference},
		{"G\tg1\t13+\t12+\t10\t*", DanglingReference},
		{"O\to1\t11+ e9+", DanglingReference},
		{"U\tu1\t11 nothing", DanglingReference},
		{"E\te1\t11+\t12+\t0\t101\t0\t1\t*", InvalidValue},
		{"E\te1\t11+\t12+\t0\t99$\t0\t1\t*", InvalidValue},
		{"F\t11\tr1+\t0\t120$\t0\t1\t*", InvalidValue},
	}
	for _, test := range tests {
		b := NewBuilder(GFA2, false)
		err := insertLines(t, b, GFA2, append(segments, test.line)...)
		assert.Equal(t, test.kind, KindOf(err), "%v: %v", test.line, err)
	}
}

func TestBuilderGFA2ElementNamespace(t *testing.T) {
	b := NewBuilder(GFA2, false)
	err := insertLines(t, b, GFA2,
		"S\t11\t100\t*",
		"S\t12\t150\t*",
		"E\t*\t11+\t12+\t0\t1\t0\t1\t*",
		"E\t*\t11+\t12+\t0\t1\t0\t1\t*",
		"E\t11\t11+\t12+\t0\t1\t0\t1\t*",
		"G\t11\t11+\t12+\t0\t*",
	)
	assert.Equal(t, DuplicateIdentity, KindOf(err), "%v", err)
}

func TestBuilderWrongDialect(t *testing.T) {
	b := NewBuilder(GFA2, false)
	require.NoError(t, b.Insert(&Segment{ID: "1", Length: 4}))
	err := b.Insert(&Link{From: OrientedRef{"1", Forward}, To: OrientedRef{"1", Forward}})
	assert.Equal(t, UnknownRecordCode, KindOf(err))
}

func TestBuilderTwoPass(t *testing.T) {
	b := NewBuilder(GFA1, true)
	require.NoError(t, insertLines(t, b, GFA1,
		"L\t1\t+\t2\t+\t4M",
		"S\t1\tACGT",
		"S\t2\tTTTT",
	))
	g, err := b.Finish()
	require.NoError(t, err)
	assert.Len(t, g.Links, 1)
	assert.Empty(t, g.IsolatedSegments())

	b = NewBuilder(GFA1, true)
	require.NoError(t, insertLines(t, b, GFA1,
		"S\t1\tACGT",
		"L\t1\t+\t2\t+\t4M",
		"L\t1\t+\t3\t+\t4M",
		"S\t2\tTTTT",
	))
	g, err = b.Finish()
	assert.Nil(t, g)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, DanglingReference, pe.Kind)
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, "L", pe.Code)
}

func TestBuilderTwoPassDuplicates(t *testing.T) {
	b := NewBuilder(GFA1, true)
	err := insertLines(t, b, GFA1, "S\t1\tACGT", "S\t1\tACGT")
	assert.Equal(t, DuplicateIdentity, KindOf(err))
}

func TestBuilderTwoPassGroupOrder(t *testing.T) {
	for _, lines := range [][]string{
		{"S\t1\t4\t*", "U\tg\tg"},
		{"S\t1\t4\t*", "U\tg1\t1 g2", "U\tg2\t1 g1"},
		{"S\t1\t4\t*", "O\tg1\t1+ g2+", "U\tg2\t1"},
	} {
		b := NewBuilder(GFA2, true)
		require.NoError(t, insertLines(t, b, GFA2, lines...))
		g, err := b.Finish()
		assert.Nil(t, g)
		var pe *ParseError
		require.True(t, errors.As(err, &pe), "%q", lines)
		assert.Equal(t, DanglingReference, pe.Kind)
		assert.Equal(t, 2, pe.Line)
	}

	b := NewBuilder(GFA2, true)
	require.NoError(t, insertLines(t, b, GFA2,
		"U\tg2\t1 g1 e1",
		"S\t1\t4\t*",
		"E\te1\t1+\t1-\t0\t2\t2\t4$\t*",
		"U\tg3\tg2 g1",
	))
	_, err := b.Finish()
	assert.Equal(t, DanglingReference, KindOf(err))

	b = NewBuilder(GFA2, true)
	require.NoError(t, insertLines(t, b, GFA2,
		"U\tg1\t1 e1",
		"S\t1\t4\t*",
		"E\te1\t1+\t1-\t0\t2\t2\t4$\t*",
		"U\tg2\tg1 1",
	))
	g, err := b.Finish()
	require.NoError(t, err)
	assert.Len(t, g.Groups, 2)
}

func TestBuilderSelfGroup(t *testing.T) {
	b := NewBuilder(GFA2, false)
	err := insertLines(t, b, GFA2, "S\t1\t4\t*", "U\tg\tg")
	assert.Equal(t, DanglingReference, KindOf(err))
}

func TestBuilderFailedInsert(t *testing.T) {
	b := NewBuilder(GFA1, false)
	err := insertLines(t, b, GFA1, "S\t1\tACGT", "L\t1\t+\t2\t+\t*")
	assert.Equal(t, DanglingReference, KindOf(err))
	assert.Empty(t, b.graph.Links)
	assert.Len(t, b.graph.IsolatedSegments(), 1)
	assert.Empty(t, b.graph.ReferencedSegments())
	g, err := b.Finish()
	assert.Nil(t, g)
	assert.Equal(t, DanglingReference, KindOf(err))

	b = NewBuilder(GFA1, false)
	err = insertLines(t, b, GFA1, "S\t1\tACGT", "P\tp\t1+\t*", "S\t2\tTT", "P\tp\t2+\t*")
	assert.Equal(t, DuplicateIdentity, KindOf(err))
	assert.Len(t, b.graph.IsolatedSegments(), 1)
	assert.Equal(t, "2", b.graph.IsolatedSegments()[0].ID)
}
