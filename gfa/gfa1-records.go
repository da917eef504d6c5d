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

// A recordParser decodes the fields of one line, field 0 being the
// record code.
type recordParser func(fields []string) (Record, error)

var gfa1ParseTable = map[byte]recordParser{
	'H':         parseHeader,
	'S':         parseSegment1,
	'L':         parseLink,
	'C':         parseContainment,
	'P':         parsePath,
	CommentCode: parseComment,
}

/*
splitRecord checks that fields holds at least the required number of
positional fields after the record code, and returns them. Any further
fields are tags, which the caller decodes. A tag in a positional slot
means a required field is missing.
*/
func splitRecord(fields []string, required int) (positional []string, err error) {
	if len(fields)-1 < required {
		return nil, newError(ArityError, "expected %v fields, got %v", required, len(fields)-1)
	}
	positional = fields[1 : required+1]
	for i, field := range positional {
		if IsTag(field) {
			return nil, newError(ArityError, "expected %v fields, found tag %q in field %v", required, field, i+1)
		}
	}
	return positional, nil
}

func parseHeader(fields []string) (Record, error) {
	tags := fields[1:]
	hdr := &Header{}
	for _, field := range tags {
		tag, err := ParseTag(field)
		if err != nil {
			return nil, err
		}
		// last write wins, also within a single header line
		hdr.Tags.Set(tag.Name, tag)
	}
	return hdr, nil
}

func parseComment(fields []string) (Record, error) {
	if len(fields) < 2 {
		return &Comment{}, nil
	}
	return &Comment{Text: fields[1]}, nil
}

func isGFA1Base(c byte) bool {
	return isLetter(c) || c == '=' || c == '.'
}

func parseSequence(field string, valid func(byte) bool) (string, error) {
	if field == "*" {
		return "", nil
	}
	if field == "" {
		return "", newError(InvalidValue, "empty sequence")
	}
	for i := 0; i < len(field); i++ {
		if !valid(field[i]) {
			return "", newError(InvalidValue, "invalid character %q in sequence at position %v", field[i], i)
		}
	}
	return field, nil
}

func parseSegment1(fields []string) (Record, error) {
	pos, err := splitRecord(fields, 2)
	if err != nil {
		return nil, err
	}
	if err := checkID(pos[0]); err != nil {
		return nil, err
	}
	seq, err := parseSequence(pos[1], isGFA1Base)
	if err != nil {
		return nil, err
	}
	tags, err := parseTags(fields[3:])
	if err != nil {
		return nil, err
	}
	seg := &Segment{ID: pos[0], Sequence: seq, Length: NoValue, Tags: tags}
	if seq != "" {
		seg.Length = int64(len(seq))
	}
	if ln, ok := LookupTag(tags, "LN"); ok {
		length, ok := ln.Int()
		switch {
		case !ok:
			return nil, newError(InvalidValue, "LN tag of segment %v must have type i", seg.ID)
		case length < 0:
			return nil, newError(InvalidValue, "negative LN tag %v of segment %v", length, seg.ID)
		case seg.Length != NoValue && seg.Length != length:
			return nil, newError(InvalidValue, "LN tag %v of segment %v differs from its sequence length %v", length, seg.ID, seg.Length)
		}
		seg.Length = length
	}
	return seg, nil
}

// parseRef parses a GFA1 style reference, with the orientation in a
// separate field.
func parseRef(id, orientation string) (OrientedRef, error) {
	if err := checkID(id); err != nil {
		return OrientedRef{}, err
	}
	o, err := parseOrientation(orientation)
	if err != nil {
		return OrientedRef{}, err
	}
	return OrientedRef{ID: id, Orientation: o}, nil
}

func parseLink(fields []string) (Record, error) {
	pos, err := splitRecord(fields, 5)
	if err != nil {
		return nil, err
	}
	from, err := parseRef(pos[0], pos[1])
	if err != nil {
		return nil, err
	}
	to, err := parseRef(pos[2], pos[3])
	if err != nil {
		return nil, err
	}
	overlap, err := parseOpt(pos[4])
	if err != nil {
		return nil, err
	}
	tags, err := parseTags(fields[6:])
	if err != nil {
		return nil, err
	}
	return &Link{From: from, To: to, Overlap: overlap, Tags: tags}, nil
}

func parseContainment(fields []string) (Record, error) {
	pos, err := splitRecord(fields, 6)
	if err != nil {
		return nil, err
	}
	container, err := parseRef(pos[0], pos[1])
	if err != nil {
		return nil, err
	}
	contained, err := parseRef(pos[2], pos[3])
	if err != nil {
		return nil, err
	}
	offset, err := parseLength(pos[4])
	if err != nil {
		return nil, err
	}
	overlap, err := parseOpt(pos[5])
	if err != nil {
		return nil, err
	}
	tags, err := parseTags(fields[7:])
	if err != nil {
		return nil, err
	}
	return &Containment{
		Container: container,
		Contained: contained,
		Pos:       offset,
		Overlap:   overlap,
		Tags:      tags,
	}, nil
}

func parsePath(fields []string) (Record, error) {
	pos, err := splitRecord(fields, 3)
	if err != nil {
		return nil, err
	}
	if err := checkID(pos[0]); err != nil {
		return nil, err
	}
	path := &Path{Name: pos[0]}
	for _, name := range SplitList(pos[1], ',') {
		ref, err := parseOrientedRef(name)
		if err != nil {
			return nil, err
		}
		path.Segments = append(path.Segments, ref)
	}
	if pos[2] != "*" {
		overlaps := SplitList(pos[2], ',')
		if len(overlaps) != len(path.Segments)-1 {
			return nil, newError(InvalidValue, "path %v has %v segments but %v overlaps", path.Name, len(path.Segments), len(overlaps))
		}
		for _, overlap := range overlaps {
			if overlap == "" {
				return nil, newError(InvalidValue, "empty overlap in path %v", path.Name)
			}
		}
		path.Overlaps = overlaps
	}
	if path.Tags, err = parseTags(fields[4:]); err != nil {
		return nil, err
	}
	return path, nil
}
