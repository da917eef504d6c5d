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
	"fmt"
)

// An ErrorKind classifies a ParseError.
type ErrorKind int

// Error kinds reported by the parser.
const (
	// LexicalError is a malformed tag, number, or hex literal.
	LexicalError ErrorKind = iota + 1
	// ArityError is a record with the wrong number of positional fields.
	ArityError
	// UnknownRecordCode is a line whose record code the dialect does not define.
	UnknownRecordCode
	// DuplicateIdentity is a segment, element, or path id that was declared before.
	DuplicateIdentity
	// DanglingReference is a reference to an undeclared segment or element.
	DanglingReference
	// InvalidValue is a well-formed field with an unacceptable value,
	// such as an orientation other than + or -, or a negative length.
	InvalidValue
	// IoError is a failure of the underlying line source.
	IoError
)

var errorKindNames = map[ErrorKind]string{
	LexicalError:      "lexical error",
	ArityError:        "arity error",
	UnknownRecordCode: "unknown record code",
	DuplicateIdentity: "duplicate identity",
	DanglingReference: "dangling reference",
	InvalidValue:      "invalid value",
	IoError:           "i/o error",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// A ParseError reports why a GFA file could not be parsed.
type ParseError struct {
	Kind ErrorKind
	Line int    // 1-based line number, 0 if unknown
	Code string // record code of the offending line, empty if unknown
	Err  error  // underlying cause
}

func (e *ParseError) Error() string {
	msg := e.Kind.String()
	if e.Err != nil {
		msg = e.Err.Error()
	}
	switch {
	case e.Line > 0 && e.Code != "":
		return fmt.Sprintf("line %d (%s record): %s", e.Line, e.Code, msg)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	default:
		return msg
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports whether target is a ParseError of the same kind. This
// makes the sentinel values below usable with errors.Is.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind && t.Line == 0 && t.Err == nil
}

// Sentinel errors, one per ErrorKind, for use with errors.Is.
var (
	ErrLexical       = &ParseError{Kind: LexicalError}
	ErrArity         = &ParseError{Kind: ArityError}
	ErrUnknownRecord = &ParseError{Kind: UnknownRecordCode}
	ErrDuplicate     = &ParseError{Kind: DuplicateIdentity}
	ErrDangling      = &ParseError{Kind: DanglingReference}
	ErrInvalidValue  = &ParseError{Kind: InvalidValue}
	ErrIO            = &ParseError{Kind: IoError}
)

// KindOf returns the kind of the first ParseError in err's chain, or 0
// if there is none.
func KindOf(err error) ErrorKind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

func newError(kind ErrorKind, format string, args ...interface{}) *ParseError {
	return &ParseError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// atLine fills in the line number and record code of err, unless they
// are already set. Errors that are not ParseErrors become lexical
// errors.
func atLine(err error, line int, code string) *ParseError {
	pe, ok := err.(*ParseError)
	if !ok {
		pe = &ParseError{Kind: LexicalError, Err: err}
	}
	if pe.Line == 0 {
		pe.Line = line
	}
	if pe.Code == "" {
		pe.Code = code
	}
	return pe
}
