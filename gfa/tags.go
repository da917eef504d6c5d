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

	"github.com/exascience/elgfa/utils"
)

type (
	// A ByteArray is the value of an H tag.
	ByteArray []byte

	// JSON is the value of a J tag. Its content is not validated.
	JSON string
)

/*
A Tag is an optional NAME:TYPE:VALUE field.

Value holds the decoded value, depending on Type:

	'A' byte
	'i' int64
	'f' float64
	'Z' string
	'J' JSON
	'H' ByteArray
	'B' []int8, []uint8, []int16, []uint16, []int32, []uint32, or []float32

A Tag also remembers the exact text of its value, so that writing it
back out reproduces the input even when the input was not in the
canonical form of the decoded value, for example i:+7 or f:1.50.
*/
type Tag struct {
	Name  utils.Symbol
	Type  byte
	Value interface{}
	raw   string
}

// NameString returns the name of the tag as a string.
func (t Tag) NameString() string {
	return *t.Name
}

// Raw returns the text of the tag value as it appeared in the input.
func (t Tag) Raw() string {
	return t.raw
}

func (t Tag) String() string {
	return string(FormatTag(nil, t))
}

// Canonical returns the tag re-encoded from its decoded value.
func (t Tag) Canonical() string {
	out := append(append([]byte(nil), *t.Name...), ':', t.Type, ':')
	out, err := appendTagValue(out, t.Type, t.Value)
	if err != nil {
		return t.String()
	}
	return string(out)
}

// Int returns the value of an i tag.
func (t Tag) Int() (int64, bool) {
	v, ok := t.Value.(int64)
	return v, ok
}

// Float returns the value of an f tag.
func (t Tag) Float() (float64, bool) {
	v, ok := t.Value.(float64)
	return v, ok
}

// Text returns the value of a Z or J tag.
func (t Tag) Text() (string, bool) {
	switch v := t.Value.(type) {
	case string:
		return v, true
	case JSON:
		return string(v), true
	default:
		return "", false
	}
}

// NewTag returns a tag for the given name and Go value. The type code
// is derived from the dynamic type of value, which must be one of the
// types listed in the Tag documentation (int and float32 are accepted
// as i and f values as well).
func NewTag(name string, value interface{}) (Tag, error) {
	if !isTagName(name) {
		return Tag{}, newError(LexicalError, "invalid tag name %q", name)
	}
	var typ byte
	switch v := value.(type) {
	case byte:
		typ = 'A'
	case int:
		typ, value = 'i', int64(v)
	case int64:
		typ = 'i'
	case float32:
		typ, value = 'f', float64(v)
	case float64:
		typ = 'f'
	case string:
		typ = 'Z'
	case JSON:
		typ = 'J'
	case ByteArray:
		typ = 'H'
	case []int8, []uint8, []int16, []uint16, []int32, []uint32, []float32:
		typ = 'B'
	default:
		return Tag{}, newError(LexicalError, "unsupported tag value %v of type %T", value, value)
	}
	out, err := appendTagValue(nil, typ, value)
	if err != nil {
		return Tag{}, err
	}
	return Tag{Name: utils.Intern(name), Type: typ, Value: value, raw: string(out)}, nil
}

func isLetter(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isPrintable(c byte) bool {
	return ' ' <= c && c <= '~'
}

func isTagName(name string) bool {
	return len(name) == 2 && isLetter(name[0]) && (isLetter(name[1]) || isDigit(name[1]))
}

// A tagParser decodes the value part of a tag.
type tagParser func(value string) (interface{}, error)

var tagParseTable map[byte]tagParser

func init() {
	tagParseTable = map[byte]tagParser{
		'A': parseChar,
		'i': parseInteger,
		'f': parseFloat,
		'Z': parseString,
		'J': parseJSON,
		'H': parseByteArray,
		'B': parseNumericArray,
	}
}

/*
IsTag reports whether field has the shape of a tag: a two-character
name, a known type code, and the two separating colons. It does not
check that the value can be decoded.

The grammars use IsTag to tell optional tags apart from required
positional fields.
*/
func IsTag(field string) bool {
	if len(field) < 5 || field[2] != ':' || field[4] != ':' || !isTagName(field[:2]) {
		return false
	}
	_, known := tagParseTable[field[3]]
	return known
}

/*
ParseTag decodes a NAME:TYPE:VALUE field. The value may itself
contain colons.
*/
func ParseTag(field string) (Tag, error) {
	if len(field) < 4 || field[2] != ':' || !isTagName(field[:2]) {
		return Tag{}, newError(LexicalError, "invalid tag %q", field)
	}
	if len(field) < 5 || field[4] != ':' {
		return Tag{}, newError(LexicalError, "invalid tag %q: missing value separator", field)
	}
	typ := field[3]
	parser, ok := tagParseTable[typ]
	if !ok {
		return Tag{}, newError(LexicalError, "invalid type %q in tag %q", typ, field)
	}
	raw := field[5:]
	value, err := parser(raw)
	if err != nil {
		return Tag{}, newError(LexicalError, "invalid value in tag %q: %v", field, err)
	}
	return Tag{Name: utils.Intern(field[:2]), Type: typ, Value: value, raw: raw}, nil
}

func parseChar(value string) (interface{}, error) {
	if len(value) != 1 || value[0] == ' ' || !isPrintable(value[0]) {
		return nil, fmt.Errorf("expected a single printable character, got %q", value)
	}
	return value[0], nil
}

func parseInteger(value string) (interface{}, error) {
	return strconv.ParseInt(value, 10, 64)
}

func isFloatLiteral(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		for i++; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := i
		for ; i < len(s) && isDigit(s[i]); i++ {
		}
		if i == exp {
			return false
		}
	}
	return i == len(s)
}

func parseFloatLiteral(value string, bitSize int) (float64, error) {
	if !isFloatLiteral(value) {
		return 0, fmt.Errorf("malformed floating point literal %q", value)
	}
	return strconv.ParseFloat(value, bitSize)
}

func parseFloat(value string) (interface{}, error) {
	return parseFloatLiteral(value, 64)
}

func checkPrintable(value string) error {
	for i := 0; i < len(value); i++ {
		if !isPrintable(value[i]) {
			return fmt.Errorf("non-printable character %q at position %v", value[i], i)
		}
	}
	return nil
}

func parseString(value string) (interface{}, error) {
	if err := checkPrintable(value); err != nil {
		return nil, err
	}
	return value, nil
}

func parseJSON(value string) (interface{}, error) {
	if err := checkPrintable(value); err != nil {
		return nil, err
	}
	return JSON(value), nil
}

func parseByteArray(value string) (interface{}, error) {
	if len(value)%2 != 0 {
		return nil, fmt.Errorf("odd number of hex digits in %q", value)
	}
	result := make(ByteArray, 0, len(value)>>1)
	for i := 0; i < len(value); i += 2 {
		val, err := strconv.ParseUint(value[i:i+2], 16, 8)
		if err != nil {
			return nil, err
		}
		result = append(result, byte(val))
	}
	return result, nil
}

func parseArrayInt(entry string, bitSize int) (int64, error) {
	return strconv.ParseInt(entry, 10, bitSize)
}

func parseArrayUint(entry string, bitSize int) (uint64, error) {
	if len(entry) > 0 && entry[0] == '+' {
		entry = entry[1:]
	}
	return strconv.ParseUint(entry, 10, bitSize)
}

func parseNumericArray(value string) (interface{}, error) {
	if len(value) < 2 || value[1] != ',' {
		return nil, fmt.Errorf("missing entry in numeric array %q", value)
	}
	entries := SplitList(value[2:], ',')
	switch ntype := value[0]; ntype {
	case 'c':
		result := make([]int8, len(entries))
		for i, entry := range entries {
			val, err := parseArrayInt(entry, 8)
			if err != nil {
				return nil, err
			}
			result[i] = int8(val)
		}
		return result, nil
	case 'C':
		result := make([]uint8, len(entries))
		for i, entry := range entries {
			val, err := parseArrayUint(entry, 8)
			if err != nil {
				return nil, err
			}
			result[i] = uint8(val)
		}
		return result, nil
	case 's':
		result := make([]int16, len(entries))
		for i, entry := range entries {
			val, err := parseArrayInt(entry, 16)
			if err != nil {
				return nil, err
			}
			result[i] = int16(val)
		}
		return result, nil
	case 'S':
		result := make([]uint16, len(entries))
		for i, entry := range entries {
			val, err := parseArrayUint(entry, 16)
			if err != nil {
				return nil, err
			}
			result[i] = uint16(val)
		}
		return result, nil
	case 'i':
		result := make([]int32, len(entries))
		for i, entry := range entries {
			val, err := parseArrayInt(entry, 32)
			if err != nil {
				return nil, err
			}
			result[i] = int32(val)
		}
		return result, nil
	case 'I':
		result := make([]uint32, len(entries))
		for i, entry := range entries {
			val, err := parseArrayUint(entry, 32)
			if err != nil {
				return nil, err
			}
			result[i] = uint32(val)
		}
		return result, nil
	case 'f':
		result := make([]float32, len(entries))
		for i, entry := range entries {
			val, err := parseFloatLiteral(entry, 32)
			if err != nil {
				return nil, err
			}
			result[i] = float32(val)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("invalid numeric array type %q", ntype)
	}
}

/*
FormatTag appends the tag in NAME:TYPE:VALUE form to out, using the
value text the tag was parsed from.
*/
func FormatTag(out []byte, t Tag) []byte {
	out = append(out, *t.Name...)
	out = append(out, ':', t.Type, ':')
	return append(out, t.raw...)
}

const upperHex = "0123456789ABCDEF"

func appendTagValue(out []byte, typ byte, value interface{}) ([]byte, error) {
	if typ == 'B' {
		return appendNumericArray(out, value)
	}
	switch val := value.(type) {
	case byte:
		if typ == 'A' {
			return append(out, val), nil
		}
	case int64:
		if typ == 'i' {
			return strconv.AppendInt(out, val, 10), nil
		}
	case float64:
		if typ == 'f' {
			return strconv.AppendFloat(out, val, 'g', -1, 64), nil
		}
	case string:
		if typ == 'Z' {
			return append(out, val...), nil
		}
	case JSON:
		if typ == 'J' {
			return append(out, val...), nil
		}
	case ByteArray:
		if typ == 'H' {
			for _, b := range val {
				out = append(out, upperHex[b>>4], upperHex[b&0xF])
			}
			return out, nil
		}
	}
	return nil, newError(LexicalError, "cannot encode %v of type %T as a %q tag", value, value, typ)
}

func appendNumericArray(out []byte, value interface{}) ([]byte, error) {
	switch val := value.(type) {
	case []int8:
		out = append(out, 'c')
		for _, v := range val {
			out = strconv.AppendInt(append(out, ','), int64(v), 10)
		}
	case []uint8:
		out = append(out, 'C')
		for _, v := range val {
			out = strconv.AppendUint(append(out, ','), uint64(v), 10)
		}
	case []int16:
		out = append(out, 's')
		for _, v := range val {
			out = strconv.AppendInt(append(out, ','), int64(v), 10)
		}
	case []uint16:
		out = append(out, 'S')
		for _, v := range val {
			out = strconv.AppendUint(append(out, ','), uint64(v), 10)
		}
	case []int32:
		out = append(out, 'i')
		for _, v := range val {
			out = strconv.AppendInt(append(out, ','), int64(v), 10)
		}
	case []uint32:
		out = append(out, 'I')
		for _, v := range val {
			out = strconv.AppendUint(append(out, ','), uint64(v), 10)
		}
	case []float32:
		out = append(out, 'f')
		for _, v := range val {
			out = strconv.AppendFloat(append(out, ','), float64(v), 'g', -1, 32)
		}
	default:
		return nil, newError(LexicalError, "cannot encode %v of type %T as a numeric array", value, value)
	}
	return out, nil
}

/*
LookupTag returns the tag with the given name in tags, as stored by
the grammars.
*/
func LookupTag(tags utils.SmallMap, name string) (Tag, bool) {
	if value, ok := tags.Get(utils.Intern(name)); ok {
		return value.(Tag), true
	}
	return Tag{}, false
}

/*
parseTags decodes the optional fields of a record. A repeated tag name
within one record is an error.
*/
func parseTags(fields []string) (utils.SmallMap, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	tags := make(utils.SmallMap, 0, len(fields))
	for _, field := range fields {
		tag, err := ParseTag(field)
		if err != nil {
			return nil, err
		}
		if !tags.SetUniqueEntry(tag.Name, tag) {
			return nil, newError(DuplicateIdentity, "duplicate tag %v", *tag.Name)
		}
	}
	return tags, nil
}
