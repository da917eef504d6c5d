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

// Package gfa parses GFA (version 1) and GFA2 assembly graph files into
// validated, cross-referenced in-memory graphs.
//
// Parsing is a single streaming pass over the input. Each line is split
// into tab-separated fields, dispatched on its one-character record code
// to the grammar of the selected dialect, and handed to a Builder, which
// rejects duplicate identifiers and references to segments that have
// not been declared yet. The first error stops the parse: Parse either
// returns a complete Graph or a *ParseError, never both.
//
// Optional fields use the NAME:TYPE:VALUE tag syntax shared with SAM
// files. Decoded tags keep their original text, so a parsed graph can be
// written back with Graph.Format without altering any tag.
package gfa
