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
	"strconv"

	"github.com/exascience/elgfa/internal"
	"github.com/exascience/elgfa/utils"
)

func appendTags(out []byte, tags utils.SmallMap) []byte {
	for _, entry := range tags {
		out = FormatTag(append(out, '\t'), entry.Value.(Tag))
	}
	return out
}

func appendField(out []byte, field string) []byte {
	return append(append(out, '\t'), field...)
}

func appendPositions(out []byte, positions ...Position) []byte {
	for _, p := range positions {
		out = appendField(out, p.String())
	}
	return out
}

func appendJoined(out []byte, sep byte, refs []OrientedRef) []byte {
	out = append(out, '\t')
	for i, ref := range refs {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, ref.ID...)
		if ref.Orientation != 0 {
			out = append(out, byte(ref.Orientation))
		}
	}
	return out
}

/*
AppendRecord appends the text of the given record in the given dialect
to out, without a trailing newline.
*/
func AppendRecord(out []byte, dialect Format, record Record) []byte {
	out = append(out, record.Code())
	switch r := record.(type) {
	case *Comment:
		return append(out, r.Text...)
	case *Header:
		return appendTags(out, r.Tags)
	case *Segment:
		out = appendField(out, r.ID)
		if dialect == GFA2 {
			out = strconv.AppendInt(append(out, '\t'), r.Length, 10)
		}
		out = appendField(out, formatOpt(r.Sequence))
		return appendTags(out, r.Tags)
	case *Link:
		out = appendField(out, r.From.ID)
		out = appendField(out, r.From.Orientation.String())
		out = appendField(out, r.To.ID)
		out = appendField(out, r.To.Orientation.String())
		out = appendField(out, formatOpt(r.Overlap))
		return appendTags(out, r.Tags)
	case *Containment:
		out = appendField(out, r.Container.ID)
		out = appendField(out, r.Container.Orientation.String())
		out = appendField(out, r.Contained.ID)
		out = appendField(out, r.Contained.Orientation.String())
		out = strconv.AppendInt(append(out, '\t'), r.Pos, 10)
		out = appendField(out, formatOpt(r.Overlap))
		return appendTags(out, r.Tags)
	case *Path:
		out = appendField(out, r.Name)
		out = appendJoined(out, ',', r.Segments)
		if r.Overlaps == nil {
			out = appendField(out, "*")
		} else {
			out = append(out, '\t')
			for i, overlap := range r.Overlaps {
				if i > 0 {
					out = append(out, ',')
				}
				out = append(out, overlap...)
			}
		}
		return appendTags(out, r.Tags)
	case *Fragment:
		out = appendField(out, r.Segment)
		out = appendField(out, r.External.String())
		out = appendPositions(out, r.SegmentBegin, r.SegmentEnd, r.FragmentBegin, r.FragmentEnd)
		out = appendField(out, formatOpt(r.Alignment))
		return appendTags(out, r.Tags)
	case *Edge:
		out = appendField(out, r.ID)
		out = appendField(out, r.Segment1.String())
		out = appendField(out, r.Segment2.String())
		out = appendPositions(out, r.Begin1, r.End1, r.Begin2, r.End2)
		out = appendField(out, formatOpt(r.Alignment))
		return appendTags(out, r.Tags)
	case *Gap:
		out = appendField(out, r.ID)
		out = appendField(out, r.Segment1.String())
		out = appendField(out, r.Segment2.String())
		out = strconv.AppendInt(append(out, '\t'), r.Distance, 10)
		if r.HasVariance() {
			out = strconv.AppendInt(append(out, '\t'), r.Variance, 10)
		} else {
			out = appendField(out, "*")
		}
		return appendTags(out, r.Tags)
	case *Group:
		out = appendField(out, r.ID)
		out = appendJoined(out, ' ', r.Members)
		return appendTags(out, r.Tags)
	}
	return out
}

/*
Records returns all records of the graph in an order in which they
can be parsed again without two-pass mode: the header, the segments,
and then the relational records of each kind in input order. Groups
come last, and each group only contains groups before it.
*/
func (g *Graph) Records() []Record {
	var records []Record
	if len(g.Header) > 0 || g.dialect == GFA2 {
		records = append(records, &Header{Tags: g.Header})
	}
	for _, seg := range g.segmentList {
		records = append(records, seg)
	}
	switch g.dialect {
	case GFA1:
		for _, r := range g.Links {
			records = append(records, r)
		}
		for _, r := range g.Containments {
			records = append(records, r)
		}
		for _, r := range g.Paths {
			records = append(records, r)
		}
	case GFA2:
		for _, r := range g.Fragments {
			records = append(records, r)
		}
		for _, r := range g.Edges {
			records = append(records, r)
		}
		for _, r := range g.Gaps {
			records = append(records, r)
		}
		for _, r := range g.Groups {
			records = append(records, r)
		}
	}
	return records
}

/*
Format writes the graph as GFA text in its own dialect. Tags are
written exactly as they were parsed.
*/
func (g *Graph) Format(out *bufio.Writer) error {
	buf := internal.ReserveByteBuffer()
	defer func() { internal.ReleaseByteBuffer(buf) }()
	for _, record := range g.Records() {
		buf = append(AppendRecord(buf[:0], g.dialect, record), '\n')
		if _, err := out.Write(buf); err != nil {
			return err
		}
	}
	return nil
}
