// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"errors"
	"strconv"
	"strings"
)

// These errors describe why a data value could not be decoded or encoded. They
// are usually wrapped in a [*DecodeError] or [*EncodeError].
var (
	// ErrNotASequence indicates that a SEQUENCE or SEQUENCE OF value was encoded
	// in primitive form.
	ErrNotASequence = errors.New("not a sequence")
	// ErrMissingMandatoryField indicates that a mandatory field of a SEQUENCE
	// is absent or has an unexpected tag.
	ErrMissingMandatoryField = errors.New("missing mandatory field")
	// ErrExtraData indicates that a SEQUENCE contains values that do not match
	// any field. The concrete error is an [*ExtraDataError].
	ErrExtraData = errors.New("extra data")
	// ErrChoiceNotMatched indicates that no alternative of a CHOICE matched a
	// data value.
	ErrChoiceNotMatched = errors.New("no choice alternative matched")
	// ErrChoiceNotSet indicates an attempt to encode a CHOICE message without
	// any alternative.
	ErrChoiceNotSet = errors.New("no choice alternative set")
	// ErrChoiceMultiplySet indicates an attempt to encode a CHOICE message with
	// more than one alternative.
	ErrChoiceMultiplySet = errors.New("multiple choice alternatives set")
	// ErrBadExplicitWrapper indicates that an EXPLICIT tag does not wrap
	// exactly one data value.
	ErrBadExplicitWrapper = errors.New("explicit tag does not contain exactly one value")
	// ErrTagMismatch indicates that a data value does not have the tag of the
	// type it is decoded as.
	ErrTagMismatch = errors.New("tag mismatch")

	// ErrUnknownType indicates that a type name cannot be resolved.
	ErrUnknownType = errors.New("unknown type")
	// ErrUnknownField indicates that a message is constructed with a field that
	// is not part of its type.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidValue indicates that a Go value cannot be encoded because it is
	// not a valid value of its ASN.1 type.
	ErrInvalidValue = errors.New("invalid value")
	// ErrTypeMismatch indicates that a Go value has the wrong type for the ASN.1
	// type it is encoded as.
	ErrTypeMismatch = errors.New("value type mismatch")
)

// ExtraDataError is the error returned if a SEQUENCE contains more values than
// its fields consume.
type ExtraDataError struct {
	Consumed int // number of child values matched by fields
	Total    int // number of child values
}

func (e *ExtraDataError) Error() string {
	return "extra data: " + strconv.Itoa(e.Total-e.Consumed) + " of " + strconv.Itoa(e.Total) + " values not consumed"
}

// Is reports whether target is [ErrExtraData].
func (e *ExtraDataError) Is(target error) bool {
	return target == ErrExtraData
}

// A DecodeError describes a failure to decode a data value. Schema and Field
// identify the innermost named SEQUENCE or CHOICE and its field that contain
// the error. Offset is the byte offset of the data value that caused the error
// or -1 if it is unknown.
type DecodeError struct {
	Schema string
	Field  string
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("schema: decoding")
	writeLocation(&b, e.Schema, e.Field)
	if e.Offset >= 0 {
		b.WriteString(" at offset ")
		b.WriteString(strconv.Itoa(e.Offset))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// An EncodeError describes a failure to encode a value. Schema and Field
// identify the innermost named SEQUENCE or CHOICE and its field that contain
// the error.
type EncodeError struct {
	Schema string
	Field  string
	Err    error
}

func (e *EncodeError) Error() string {
	var b strings.Builder
	b.WriteString("schema: encoding")
	writeLocation(&b, e.Schema, e.Field)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *EncodeError) Unwrap() error { return e.Err }

func writeLocation(b *strings.Builder, schema, field string) {
	if schema == "" && field == "" {
		return
	}
	b.WriteByte(' ')
	b.WriteString(schema)
	if field != "" {
		b.WriteByte('.')
		b.WriteString(field)
	}
}

// annotateDecode sets the location of err if it is a [*DecodeError] without a
// field.
func annotateDecode(err error, schema, field string) error {
	var dErr *DecodeError
	if errors.As(err, &dErr) && dErr.Field == "" && dErr.Schema == "" {
		dErr.Schema, dErr.Field = schema, field
	}
	return err
}

// annotateEncode wraps err in an [*EncodeError] unless it already is one. The
// location of an existing [*EncodeError] is set if it is unknown.
func annotateEncode(err error, schema, field string) error {
	var eErr *EncodeError
	if !errors.As(err, &eErr) {
		return &EncodeError{Schema: schema, Field: field, Err: err}
	}
	if eErr.Field == "" && eErr.Schema == "" {
		eErr.Schema, eErr.Field = schema, field
	}
	return err
}
