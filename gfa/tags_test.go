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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTagValues(t *testing.T) {
	tests := []struct {
		field string
		typ   byte
		value interface{}
	}{
		{"XA:A:x", 'A', byte('x')},
		{"NM:i:-12", 'i', int64(-12)},
		{"NM:i:+7", 'i', int64(7)},
		{"XF:f:3.5e-2", 'f', 0.035},
		{"XF:f:.5", 'f', 0.5},
		{"VN:Z:1.0", 'Z', "1.0"},
		{"CO:Z:a:b:c", 'Z', "a:b:c"},
		{"CO:Z:", 'Z', ""},
		{"JS:J:{\"a\":[1,2]}", 'J', JSON("{\"a\":[1,2]}")},
		{"HX:H:1AE301", 'H', ByteArray{0x1A, 0xE3, 0x01}},
		{"BA:B:c,-1,2", 'B', []int8{-1, 2}},
		{"BA:B:C,0,255", 'B', []uint8{0, 255}},
		{"BA:B:s,-300", 'B', []int16{-300}},
		{"BA:B:S,65535", 'B', []uint16{65535}},
		{"BA:B:i,-2147483648,7", 'B', []int32{-2147483648, 7}},
		{"BA:B:I,4294967295", 'B', []uint32{4294967295}},
		{"BA:B:f,1.5,-2", 'B', []float32{1.5, -2}},
	}
	for _, test := range tests {
		tag, err := ParseTag(test.field)
		require.NoError(t, err, test.field)
		assert.Equal(t, test.field[:2], tag.NameString())
		assert.Equal(t, test.typ, tag.Type, test.field)
		assert.Equal(t, test.value, tag.Value, test.field)
		assert.Equal(t, test.field, tag.String(), "round trip of %v", test.field)
		assert.True(t, IsTag(test.field), test.field)
	}
}

func TestParseTagErrors(t *testing.T) {
	for _, field := range []string{
		"XA:A:xy",
		"XA:A:",
		"XA:A: ",
		"NM:i:1.5",
		"NM:i:",
		"NM:i:99999999999999999999",
		"XF:f:1.2.3",
		"XF:f:inf",
		"XF:f:0x1p-2",
		"XF:f:1e",
		"CO:Z:tab\x01",
		"HX:H:ABC",
		"HX:H:ZZ",
		"BA:B:c,128",
		"BA:B:C,-1",
		"BA:B:s,40000",
		"BA:B:S,65536",
		"BA:B:I,-1",
		"BA:B:f,1e40",
		"BA:B:x,1",
		"BA:B:c",
		"BA:B:c,",
		"BA:B:c,1,,2",
		"1A:Z:x",
		"AB:Q:x",
		"AB:Z",
		"ABC:Z:x",
		"4M",
	} {
		_, err := ParseTag(field)
		require.Error(t, err, field)
		assert.Equal(t, LexicalError, KindOf(err), field)
	}
}

func TestIsTag(t *testing.T) {
	for _, field := range []string{"VN:Z:1.0", "VN:Z:", "LN:i:4", "zz:B:c,1"} {
		assert.True(t, IsTag(field), field)
	}
	for _, field := range []string{"4M", "ACGT", "*", "VN:Q:1", "VN:Z", "V:Z:x", "11+", ""} {
		assert.False(t, IsTag(field), field)
	}
}

func TestTagCanonical(t *testing.T) {
	tests := []struct{ field, canonical string }{
		{"NM:i:+7", "NM:i:7"},
		{"NM:i:007", "NM:i:7"},
		{"XF:f:1.50", "XF:f:1.5"},
		{"HX:H:1ae3", "HX:H:1AE3"},
		{"BA:B:C,+5", "BA:B:C,5"},
		{"BA:B:f,1.5,-2", "BA:B:f,1.5,-2"},
		{"VN:Z:1.0", "VN:Z:1.0"},
	}
	for _, test := range tests {
		tag, err := ParseTag(test.field)
		require.NoError(t, err, test.field)
		assert.Equal(t, test.field, tag.String())
		assert.Equal(t, test.canonical, tag.Canonical())
	}
}

func TestNewTag(t *testing.T) {
	tests := []struct {
		value interface{}
		text  string
	}{
		{4, "LN:i:4"},
		{int64(-3), "LN:i:-3"},
		{0.25, "LN:f:0.25"},
		{byte('c'), "LN:A:c"},
		{"text", "LN:Z:text"},
		{JSON("[]"), "LN:J:[]"},
		{ByteArray{0, 255}, "LN:H:00FF"},
		{[]uint16{1, 2}, "LN:B:S,1,2"},
	}
	for _, test := range tests {
		tag, err := NewTag("LN", test.value)
		require.NoError(t, err)
		assert.Equal(t, test.text, tag.String())
		parsed, err := ParseTag(test.text)
		require.NoError(t, err)
		assert.Equal(t, tag.Value, parsed.Value)
	}
	_, err := NewTag("1x", 1)
	assert.Error(t, err)
	_, err = NewTag("XX", struct{}{})
	assert.Error(t, err)
}

func TestTagAccessors(t *testing.T) {
	tag, err := ParseTag("LN:i:42")
	require.NoError(t, err)
	n, ok := tag.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)
	_, ok = tag.Float()
	assert.False(t, ok)
	_, ok = tag.Text()
	assert.False(t, ok)
	assert.Equal(t, "42", tag.Raw())

	tag, err = ParseTag("JS:J:{}")
	require.NoError(t, err)
	s, ok := tag.Text()
	assert.True(t, ok)
	assert.Equal(t, "{}", s)
}

func TestParseTagsDuplicate(t *testing.T) {
	_, err := parseTags([]string{"XX:i:1", "XX:i:2"})
	assert.Equal(t, DuplicateIdentity, KindOf(err))

	tags, err := parseTags([]string{"XX:i:1", "YY:Z:a"})
	require.NoError(t, err)
	require.Len(t, tags, 2)
	yy, ok := LookupTag(tags, "YY")
	require.True(t, ok)
	assert.Equal(t, "a", yy.Value)
	_, ok = LookupTag(tags, "ZZ")
	assert.False(t, ok)
}
