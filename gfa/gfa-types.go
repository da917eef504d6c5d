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
	"fmt"
	"strconv"
	"strings"

	"github.com/exascience/elgfa/utils"
)

// A Format selects one of the two GFA dialects.
type Format int

// The GFA dialects.
const (
	GFA1 Format = iota + 1
	GFA2
)

func (f Format) String() string {
	switch f {
	case GFA1:
		return "gfa"
	case GFA2:
		return "gfa2"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat returns the Format for the selector "gfa" or "gfa2".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "gfa":
		return GFA1, nil
	case "gfa2":
		return GFA2, nil
	default:
		return 0, newError(InvalidValue, "invalid format %q, expected gfa or gfa2", s)
	}
}

// An Orientation is either Forward or Reverse.
type Orientation byte

// Orientations of segment references.
const (
	Forward Orientation = '+'
	Reverse Orientation = '-'
)

func (o Orientation) String() string {
	return string(rune(o))
}

func parseOrientation(field string) (Orientation, error) {
	if len(field) == 1 {
		switch o := Orientation(field[0]); o {
		case Forward, Reverse:
			return o, nil
		}
	}
	return 0, newError(InvalidValue, "invalid orientation %q, expected + or -", field)
}

// An OrientedRef is a reference to a segment (or, in GFA2 groups,
// another element) in a given orientation. Members of unordered
// groups have no orientation, in which case Orientation is 0.
type OrientedRef struct {
	ID          string
	Orientation Orientation
}

func (r OrientedRef) String() string {
	if r.Orientation == 0 {
		return r.ID
	}
	return r.ID + r.Orientation.String()
}

// parseOrientedRef parses a GFA2 style reference with the orientation
// as a suffix, as in "11+".
func parseOrientedRef(field string) (OrientedRef, error) {
	if len(field) < 2 {
		return OrientedRef{}, newError(InvalidValue, "invalid oriented reference %q", field)
	}
	orientation, err := parseOrientation(field[len(field)-1:])
	if err != nil {
		return OrientedRef{}, newError(InvalidValue, "invalid oriented reference %q, expected + or - suffix", field)
	}
	id := field[:len(field)-1]
	if err := checkID(id); err != nil {
		return OrientedRef{}, err
	}
	return OrientedRef{ID: id, Orientation: orientation}, nil
}

func checkID(id string) error {
	if id == "" {
		return newError(InvalidValue, "empty identifier")
	}
	for i := 0; i < len(id); i++ {
		if c := id[i]; c <= ' ' || c > '~' {
			return newError(InvalidValue, "invalid character %q in identifier %q", c, id)
		}
	}
	return nil
}

// NoValue is the Value of a Position written as a bare "$".
const NoValue = -1

/*
A Position is a GFA2 range endpoint. End marks the sentinel "$", the
final coordinate of the segment. A sentinel written with a number, as
in "100$", keeps that number in Value; a bare "$" has Value NoValue.
*/
type Position struct {
	Value int64
	End   bool
}

// IsEnd reports whether the position is the end-of-segment sentinel.
func (p Position) IsEnd() bool {
	return p.End
}

func (p Position) String() string {
	switch {
	case p.End && p.Value == NoValue:
		return "$"
	case p.End:
		return strconv.FormatInt(p.Value, 10) + "$"
	default:
		return strconv.FormatInt(p.Value, 10)
	}
}

func parsePosition(field string) (Position, error) {
	if field == "$" {
		return Position{Value: NoValue, End: true}, nil
	}
	var pos Position
	if strings.HasSuffix(field, "$") {
		pos.End = true
		field = field[:len(field)-1]
	}
	value, err := parseLength(field)
	if err != nil {
		return Position{}, err
	}
	pos.Value = value
	return pos, nil
}

// parseLength parses a non-negative integer field.
func parseLength(field string) (int64, error) {
	value, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return 0, newError(LexicalError, "invalid integer %q", field)
	}
	if value < 0 {
		return 0, newError(InvalidValue, "negative value %v", value)
	}
	return value, nil
}

// parseOpt parses an optional descriptor such as an overlap or an
// alignment. It returns the empty string for "*". An empty field is
// not a descriptor.
func parseOpt(field string) (string, error) {
	switch field {
	case "*":
		return "", nil
	case "":
		return "", newError(InvalidValue, "empty descriptor, expected * or a value")
	}
	return field, nil
}

func formatOpt(field string) string {
	if field == "" {
		return "*"
	}
	return field
}

// A Record is one decoded line of a GFA file. Its dynamic type is one
// of *Header, *Segment, *Link, *Containment, *Path, *Fragment, *Edge,
// *Gap, *Group, or *Comment.
type Record interface {
	// Code returns the record code of the line the record was parsed from.
	Code() byte
}

type (
	// A Header holds the tags of an H line.
	Header struct {
		Tags utils.SmallMap
	}

	// A Comment holds the text following the # of a comment line.
	Comment struct {
		Text string
	}

	/*
		A Segment is a node of the graph. Sequence is empty if the file
		gives "*". Length is NoValue if it is not known: in GFA1 the
		length is the length of the sequence, or the value of an LN:i
		tag; in GFA2 it is always given explicitly.
	*/
	Segment struct {
		ID       string
		Length   int64
		Sequence string
		Tags     utils.SmallMap
	}

	// A Link is a GFA1 overlap between two oriented segments. Overlap
	// is empty if the file gives "*".
	Link struct {
		From, To OrientedRef
		Overlap  string
		Tags     utils.SmallMap
	}

	// A Containment is a GFA1 record placing Contained inside
	// Container, starting at Pos.
	Containment struct {
		Container, Contained OrientedRef
		Pos                  int64
		Overlap              string
		Tags                 utils.SmallMap
	}

	// A Path is a GFA1 walk through oriented segments. Overlaps is nil
	// if the file gives "*", and has one element fewer than Segments
	// otherwise.
	Path struct {
		Name     string
		Segments []OrientedRef
		Overlaps []string
		Tags     utils.SmallMap
	}

	// A Fragment is a GFA2 alignment of an external sequence to a
	// range of a segment.
	Fragment struct {
		Segment                    string
		External                   OrientedRef
		SegmentBegin, SegmentEnd   Position
		FragmentBegin, FragmentEnd Position
		Alignment                  string
		Tags                       utils.SmallMap
	}

	// An Edge is a GFA2 alignment between ranges of two oriented
	// segments. ID is "*" for anonymous edges.
	Edge struct {
		ID                 string
		Segment1, Segment2 OrientedRef
		Begin1, End1       Position
		Begin2, End2       Position
		Alignment          string
		Tags               utils.SmallMap
	}

	// A Gap is a GFA2 estimate of the distance between the ends of
	// two oriented segments. A negative distance is an overlap.
	// Variance is NoValue if the file gives "*".
	Gap struct {
		ID                 string
		Segment1, Segment2 OrientedRef
		Distance           int64
		Variance           int64
		Tags               utils.SmallMap
	}

	// A Group is a GFA2 ordered (O) or unordered (U) collection of
	// references to segments, edges, gaps, or other groups. ID is "*"
	// for anonymous groups.
	Group struct {
		ID      string
		Ordered bool
		Members []OrientedRef
		Tags    utils.SmallMap
	}
)

func (*Header) Code() byte      { return 'H' }
func (*Comment) Code() byte     { return CommentCode }
func (*Segment) Code() byte     { return 'S' }
func (*Link) Code() byte        { return 'L' }
func (*Containment) Code() byte { return 'C' }
func (*Path) Code() byte        { return 'P' }
func (*Fragment) Code() byte    { return 'F' }
func (*Edge) Code() byte        { return 'E' }
func (*Gap) Code() byte         { return 'G' }

// Code returns 'O' for ordered and 'U' for unordered groups.
func (g *Group) Code() byte {
	if g.Ordered {
		return 'O'
	}
	return 'U'
}

// IsAnonymous reports whether the edge has no identifier.
func (e *Edge) IsAnonymous() bool { return e.ID == "*" }

// IsAnonymous reports whether the gap has no identifier.
func (g *Gap) IsAnonymous() bool { return g.ID == "*" }

// IsAnonymous reports whether the group has no identifier.
func (g *Group) IsAnonymous() bool { return g.ID == "*" }

// HasLength reports whether the length of the segment is known.
func (s *Segment) HasLength() bool { return s.Length != NoValue }

// HasVariance reports whether the gap gives a variance.
func (g *Gap) HasVariance() bool { return g.Variance != NoValue }
