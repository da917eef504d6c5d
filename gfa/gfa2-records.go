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

import "strconv"

var gfa2ParseTable = map[byte]recordParser{
	'H':         parseHeader,
	'S':         parseSegment2,
	'F':         parseFragment,
	'E':         parseEdge,
	'G':         parseGap,
	'O':         parseOrderedGroup,
	'U':         parseUnorderedGroup,
	CommentCode: parseComment,
}

func isGFA2Base(c byte) bool {
	return '!' <= c && c <= '~'
}

// parseOptID parses an identifier that may be "*".
func parseOptID(field string) (string, error) {
	if field == "*" {
		return field, nil
	}
	return field, checkID(field)
}

func parseSegment2(fields []string) (Record, error) {
	pos, err := splitRecord(fields, 3)
	if err != nil {
		return nil, err
	}
	if err := checkID(pos[0]); err != nil {
		return nil, err
	}
	length, err := parseLength(pos[1])
	if err != nil {
		return nil, err
	}
	seq, err := parseSequence(pos[2], isGFA2Base)
	if err != nil {
		return nil, err
	}
	tags, err := parseTags(fields[4:])
	if err != nil {
		return nil, err
	}
	return &Segment{ID: pos[0], Length: length, Sequence: seq, Tags: tags}, nil
}

// parseRange parses the begin and end of a range. An explicit begin
// may not exceed an explicit end.
func parseRange(beginField, endField string) (begin, end Position, err error) {
	if begin, err = parsePosition(beginField); err != nil {
		return
	}
	if end, err = parsePosition(endField); err != nil {
		return
	}
	if begin.Value != NoValue && end.Value != NoValue && begin.Value > end.Value {
		err = newError(InvalidValue, "range %v-%v begins after its end", begin, end)
	}
	return
}

func parseFragment(fields []string) (Record, error) {
	pos, err := splitRecord(fields, 7)
	if err != nil {
		return nil, err
	}
	if err := checkID(pos[0]); err != nil {
		return nil, err
	}
	external, err := parseOrientedRef(pos[1])
	if err != nil {
		return nil, err
	}
	frag := &Fragment{Segment: pos[0], External: external}
	if frag.Alignment, err = parseOpt(pos[6]); err != nil {
		return nil, err
	}
	if frag.SegmentBegin, frag.SegmentEnd, err = parseRange(pos[2], pos[3]); err != nil {
		return nil, err
	}
	if frag.FragmentBegin, frag.FragmentEnd, err = parseRange(pos[4], pos[5]); err != nil {
		return nil, err
	}
	if frag.Tags, err = parseTags(fields[8:]); err != nil {
		return nil, err
	}
	return frag, nil
}

func parseEdge(fields []string) (Record, error) {
	pos, err := splitRecord(fields, 8)
	if err != nil {
		return nil, err
	}
	edge := &Edge{}
	if edge.Alignment, err = parseOpt(pos[7]); err != nil {
		return nil, err
	}
	if edge.ID, err = parseOptID(pos[0]); err != nil {
		return nil, err
	}
	if edge.Segment1, err = parseOrientedRef(pos[1]); err != nil {
		return nil, err
	}
	if edge.Segment2, err = parseOrientedRef(pos[2]); err != nil {
		return nil, err
	}
	if edge.Begin1, edge.End1, err = parseRange(pos[3], pos[4]); err != nil {
		return nil, err
	}
	if edge.Begin2, edge.End2, err = parseRange(pos[5], pos[6]); err != nil {
		return nil, err
	}
	if edge.Tags, err = parseTags(fields[9:]); err != nil {
		return nil, err
	}
	return edge, nil
}

func parseGap(fields []string) (Record, error) {
	pos, err := splitRecord(fields, 5)
	if err != nil {
		return nil, err
	}
	gap := &Gap{Variance: NoValue}
	if gap.ID, err = parseOptID(pos[0]); err != nil {
		return nil, err
	}
	if gap.Segment1, err = parseOrientedRef(pos[1]); err != nil {
		return nil, err
	}
	if gap.Segment2, err = parseOrientedRef(pos[2]); err != nil {
		return nil, err
	}
	if gap.Distance, err = strconv.ParseInt(pos[3], 10, 64); err != nil {
		return nil, newError(LexicalError, "invalid distance %q", pos[3])
	}
	if pos[4] != "*" {
		if gap.Variance, err = parseLength(pos[4]); err != nil {
			return nil, err
		}
	}
	if gap.Tags, err = parseTags(fields[6:]); err != nil {
		return nil, err
	}
	return gap, nil
}

func parseGroup(fields []string, ordered bool) (*Group, error) {
	pos, err := splitRecord(fields, 2)
	if err != nil {
		return nil, err
	}
	group := &Group{Ordered: ordered}
	if group.ID, err = parseOptID(pos[0]); err != nil {
		return nil, err
	}
	for _, member := range SplitList(pos[1], ' ') {
		var ref OrientedRef
		if ordered {
			ref, err = parseOrientedRef(member)
		} else {
			ref.ID, err = member, checkID(member)
		}
		if err != nil {
			return nil, err
		}
		group.Members = append(group.Members, ref)
	}
	if group.Tags, err = parseTags(fields[3:]); err != nil {
		return nil, err
	}
	return group, nil
}

func parseOrderedGroup(fields []string) (Record, error) {
	group, err := parseGroup(fields, true)
	if err != nil {
		return nil, err
	}
	return group, nil
}

func parseUnorderedGroup(fields []string) (Record, error) {
	group, err := parseGroup(fields, false)
	if err != nil {
		return nil, err
	}
	return group, nil
}

/*
ParseRecord decodes the fields of one line according to the grammar
of the given dialect. fields must not be empty; field 0 is the record
code.
*/
func ParseRecord(format Format, fields []string) (Record, error) {
	var table map[byte]recordParser
	switch format {
	case GFA1:
		table = gfa1ParseTable
	case GFA2:
		table = gfa2ParseTable
	default:
		return nil, newError(InvalidValue, "unknown format %v", format)
	}
	code := fields[0]
	if len(code) != 1 {
		return nil, newError(UnknownRecordCode, "unknown %v record code %q", format, code)
	}
	parser, ok := table[code[0]]
	if !ok {
		return nil, newError(UnknownRecordCode, "unknown %v record code %q", format, code)
	}
	return parser(fields)
}
