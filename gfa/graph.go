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
	"github.com/willf/bitset"

	"github.com/exascience/elgfa/utils"
)

/*
A Graph is a parsed GFA or GFA2 file.

Segments are indexed by id. Relational records are kept in input
order: Links, Containments, and Paths for GFA1; Fragments, Edges, Gaps,
and Groups for GFA2. Segment ids, GFA1 path names, and GFA2 edge, gap,
and group ids each form a namespace of their own.

A Graph returned by Parse is complete and consistent, and must be
treated as read-only.
*/
type Graph struct {
	dialect Format

	// Header holds the merged tags of all header lines.
	Header utils.SmallMap

	segmentList []*Segment
	segments    map[string]int
	referenced  *bitset.BitSet

	Links        []*Link
	Containments []*Containment
	Paths        []*Path

	Fragments []*Fragment
	Edges     []*Edge
	Gaps      []*Gap
	Groups    []*Group

	paths     map[string]*Path
	elements  map[string]Record
	incident  map[string][]Record
	fragments map[string][]*Fragment
}

// NewGraph allocates and initializes an empty graph of the given
// dialect.
func NewGraph(dialect Format) *Graph {
	return &Graph{
		dialect:    dialect,
		segments:   make(map[string]int),
		referenced: bitset.New(0),
		paths:      make(map[string]*Path),
		elements:   make(map[string]Record),
		incident:   make(map[string][]Record),
		fragments:  make(map[string][]*Fragment),
	}
}

// Dialect returns the dialect the graph was parsed as.
func (g *Graph) Dialect() Format {
	return g.dialect
}

// Version returns the value of the VN header tag, if any.
func (g *Graph) Version() (string, bool) {
	if vn, ok := LookupTag(g.Header, "VN"); ok {
		return vn.Text()
	}
	return "", false
}

// Segment returns the segment with the given id.
func (g *Graph) Segment(id string) (*Segment, bool) {
	if index, ok := g.segments[id]; ok {
		return g.segmentList[index], true
	}
	return nil, false
}

// Segments returns all segments in declaration order.
func (g *Graph) Segments() []*Segment {
	return g.segmentList
}

// NumSegments returns the number of segments.
func (g *Graph) NumSegments() int {
	return len(g.segmentList)
}

// Path returns the GFA1 path with the given name.
func (g *Graph) Path(name string) (*Path, bool) {
	p, ok := g.paths[name]
	return p, ok
}

// Element returns the GFA2 edge, gap, or group with the given id.
// Anonymous elements cannot be looked up.
func (g *Graph) Element(id string) (Record, bool) {
	r, ok := g.elements[id]
	return r, ok
}

// Incident returns the links and containments (GFA1), or edges and
// gaps (GFA2), that reference the segment with the given id, in input
// order.
func (g *Graph) Incident(id string) []Record {
	return g.incident[id]
}

// LinksOf returns the GFA1 links that reference the given segment.
func (g *Graph) LinksOf(id string) (links []*Link) {
	for _, r := range g.incident[id] {
		if link, ok := r.(*Link); ok {
			links = append(links, link)
		}
	}
	return links
}

// EdgesOf returns the GFA2 edges that reference the given segment.
func (g *Graph) EdgesOf(id string) (edges []*Edge) {
	for _, r := range g.incident[id] {
		if edge, ok := r.(*Edge); ok {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FragmentsOf returns the GFA2 fragments of the given segment.
func (g *Graph) FragmentsOf(id string) []*Fragment {
	return g.fragments[id]
}

// ReferencedSegments returns the segments that at least one
// relational record refers to, in declaration order.
func (g *Graph) ReferencedSegments() []*Segment {
	return g.filterSegments(true)
}

// IsolatedSegments returns the segments that no relational record
// refers to, in declaration order.
func (g *Graph) IsolatedSegments() []*Segment {
	return g.filterSegments(false)
}

func (g *Graph) filterSegments(referenced bool) (result []*Segment) {
	for i, seg := range g.segmentList {
		if g.referenced.Test(uint(i)) == referenced {
			result = append(result, seg)
		}
	}
	return result
}

func (g *Graph) addIncident(r Record, id1, id2 string) {
	g.incident[id1] = append(g.incident[id1], r)
	if id2 != id1 {
		g.incident[id2] = append(g.incident[id2], r)
	}
}

type pendingRecord struct {
	line   int
	record Record
}

/*
A Builder assembles records into a Graph, checking identities and
references as it goes.

By default a relational record may only refer to segments (and, for
GFA2 groups, elements) that were inserted before it. In two-pass mode
references to segments, edges, and gaps are only checked by Finish, so
that declaration order does not matter for them. A group may only
contain groups inserted before it in both modes, so groups never form
cycles.

Once Insert or InsertLine failed, Finish reports that failure. A
Builder must not be used after Finish.
*/
type Builder struct {
	graph   *Graph
	twoPass bool
	pending []pendingRecord
	err     error

	// position of each group in graph.Groups
	groupIndex map[*Group]int
	// segments referenced by the record being resolved
	marks []int
}

// NewBuilder returns a builder for an empty graph of the given dialect.
func NewBuilder(dialect Format, twoPass bool) *Builder {
	return &Builder{graph: NewGraph(dialect), twoPass: twoPass, groupIndex: make(map[*Group]int)}
}

// Insert adds a record to the graph.
func (b *Builder) Insert(record Record) error {
	return b.InsertLine(0, record)
}

/*
InsertLine adds a record that was parsed from the given line to the
graph. The line number is only used for errors reported by Finish in
two-pass mode.
*/
func (b *Builder) InsertLine(line int, record Record) error {
	if err := b.insert(line, record); err != nil {
		if b.err == nil {
			b.err = err
		}
		return err
	}
	return nil
}

func (b *Builder) insert(line int, record Record) error {
	g := b.graph
	switch r := record.(type) {
	case *Comment:
		return nil
	case *Header:
		// last write wins for tags repeated across header lines
		g.Header.Merge(r.Tags)
		return nil
	case *Segment:
		if _, found := g.segments[r.ID]; found {
			return newError(DuplicateIdentity, "duplicate segment %v", r.ID)
		}
		g.segments[r.ID] = len(g.segmentList)
		g.segmentList = append(g.segmentList, r)
		return nil
	}
	if err := b.checkDialect(record); err != nil {
		return err
	}
	if b.twoPass {
		if err := b.add(record); err != nil {
			return err
		}
		b.pending = append(b.pending, pendingRecord{line, record})
		return nil
	}
	if err := b.resolve(record); err != nil {
		return err
	}
	if err := b.add(record); err != nil {
		return err
	}
	b.mark()
	return nil
}

func (b *Builder) checkDialect(record Record) error {
	var ok bool
	switch record.(type) {
	case *Link, *Containment, *Path:
		ok = b.graph.dialect == GFA1
	case *Fragment, *Edge, *Gap, *Group:
		ok = b.graph.dialect == GFA2
	}
	if !ok {
		return newError(UnknownRecordCode, "%c records are not part of %v", record.Code(), b.graph.dialect)
	}
	return nil
}

// registerElement adds a GFA2 element to the element namespace.
func (g *Graph) registerElement(id string, r Record) error {
	if id == "*" {
		return nil
	}
	if _, found := g.elements[id]; found {
		return newError(DuplicateIdentity, "duplicate element %v", id)
	}
	g.elements[id] = r
	return nil
}

// add registers the identity of a relational record and appends it
// to the graph.
func (b *Builder) add(record Record) error {
	g := b.graph
	switch r := record.(type) {
	case *Link:
		g.Links = append(g.Links, r)
		g.addIncident(r, r.From.ID, r.To.ID)
	case *Containment:
		g.Containments = append(g.Containments, r)
		g.addIncident(r, r.Container.ID, r.Contained.ID)
	case *Path:
		if _, found := g.paths[r.Name]; found {
			return newError(DuplicateIdentity, "duplicate path %v", r.Name)
		}
		g.paths[r.Name] = r
		g.Paths = append(g.Paths, r)
	case *Fragment:
		g.Fragments = append(g.Fragments, r)
		g.fragments[r.Segment] = append(g.fragments[r.Segment], r)
	case *Edge:
		if err := g.registerElement(r.ID, r); err != nil {
			return err
		}
		g.Edges = append(g.Edges, r)
		g.addIncident(r, r.Segment1.ID, r.Segment2.ID)
	case *Gap:
		if err := g.registerElement(r.ID, r); err != nil {
			return err
		}
		g.Gaps = append(g.Gaps, r)
		g.addIncident(r, r.Segment1.ID, r.Segment2.ID)
	case *Group:
		if err := g.registerElement(r.ID, r); err != nil {
			return err
		}
		b.groupIndex[r] = len(g.Groups)
		g.Groups = append(g.Groups, r)
	}
	return nil
}

// segment looks up a referenced segment and records it for mark.
func (b *Builder) segment(id string) (*Segment, error) {
	g := b.graph
	index, ok := g.segments[id]
	if !ok {
		return nil, newError(DanglingReference, "reference to undeclared segment %v", id)
	}
	b.marks = append(b.marks, index)
	return g.segmentList[index], nil
}

// mark flags the segments found by the last successful resolve as
// referenced.
func (b *Builder) mark() {
	for _, index := range b.marks {
		b.graph.referenced.Set(uint(index))
	}
	b.marks = b.marks[:0]
}

// checkRange checks the endpoints of a GFA2 range against the length
// of its segment. A sentinel that carries a number must carry the
// segment length.
func checkRange(seg *Segment, positions ...Position) error {
	if !seg.HasLength() {
		return nil
	}
	for _, p := range positions {
		switch {
		case p.Value == NoValue:
		case p.End && p.Value != seg.Length:
			return newError(InvalidValue, "end position %v of segment %v differs from its length %v", p, seg.ID, seg.Length)
		case p.Value > seg.Length:
			return newError(InvalidValue, "position %v exceeds the length %v of segment %v", p, seg.Length, seg.ID)
		}
	}
	return nil
}

// resolve checks the references of a relational record.
func (b *Builder) resolve(record Record) error {
	b.marks = b.marks[:0]
	switch r := record.(type) {
	case *Link:
		if _, err := b.segment(r.From.ID); err != nil {
			return err
		}
		_, err := b.segment(r.To.ID)
		return err
	case *Containment:
		if _, err := b.segment(r.Container.ID); err != nil {
			return err
		}
		_, err := b.segment(r.Contained.ID)
		return err
	case *Path:
		for _, ref := range r.Segments {
			if _, err := b.segment(ref.ID); err != nil {
				return err
			}
		}
		return nil
	case *Fragment:
		seg, err := b.segment(r.Segment)
		if err != nil {
			return err
		}
		return checkRange(seg, r.SegmentBegin, r.SegmentEnd)
	case *Edge:
		seg1, err := b.segment(r.Segment1.ID)
		if err != nil {
			return err
		}
		seg2, err := b.segment(r.Segment2.ID)
		if err != nil {
			return err
		}
		if err := checkRange(seg1, r.Begin1, r.End1); err != nil {
			return err
		}
		return checkRange(seg2, r.Begin2, r.End2)
	case *Gap:
		if _, err := b.segment(r.Segment1.ID); err != nil {
			return err
		}
		_, err := b.segment(r.Segment2.ID)
		return err
	case *Group:
		self, ok := b.groupIndex[r]
		if !ok {
			self = len(b.graph.Groups)
		}
		for _, member := range r.Members {
			if _, ok := b.graph.segments[member.ID]; ok {
				if _, err := b.segment(member.ID); err != nil {
					return err
				}
				continue
			}
			element, ok := b.graph.elements[member.ID]
			if !ok {
				return newError(DanglingReference, "group member %v is neither a segment nor an element", member.ID)
			}
			if group, ok := element.(*Group); ok && b.groupIndex[group] >= self {
				return newError(DanglingReference, "group member %v is not a group declared before group %v", member.ID, r.ID)
			}
		}
		return nil
	}
	return nil
}

/*
Finish completes the graph. In two-pass mode it checks the references
of all relational records in input order, and reports the first
failure with the line the record was inserted with.
*/
func (b *Builder) Finish() (*Graph, error) {
	if b.err != nil {
		return nil, b.err
	}
	for _, p := range b.pending {
		if err := b.resolve(p.record); err != nil {
			return nil, atLine(err, p.line, string(p.record.Code()))
		}
		b.mark()
	}
	g := b.graph
	b.graph, b.pending = nil, nil
	return g, nil
}
