// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tlv

import (
	"errors"
	"strconv"
)

// These errors describe why a BER encoding could not be framed. They are
// wrapped in a [*SyntaxError] and can be tested with [errors.Is].
var (
	// ErrTruncatedInput indicates that the input ended in the middle of a header
	// or before all content octets were available.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrIndefiniteLength indicates that a data value uses the indefinite-length
	// form, which is not supported by the Z39.50 profile of BER.
	ErrIndefiniteLength = errors.New("unsupported indefinite length")

	// ErrChildExceedsParent indicates that a nested data value extends past the
	// end of the constructed value containing it.
	ErrChildExceedsParent = errors.New("data value exceeds parent")

	// ErrTrailingData indicates that bytes follow the single top-level data
	// value of the input.
	ErrTrailingData = errors.New("trailing data after top-level value")

	// ErrTooDeep indicates that the nesting of data values exceeds the limit of
	// a [Parser].
	ErrTooDeep = errors.New("maximum nesting depth exceeded")

	// ErrTooLarge indicates that the input exceeds the size limit of a
	// [Parser] or [Reader].
	ErrTooLarge = errors.New("maximum size exceeded")
)

var (
	errReservedLength = errors.New("reserved length octet 0xFF")
	errLengthTooLarge = errors.New("length too large")
	errInvalidEOC     = errors.New("invalid end of contents")
)

// SyntaxError represents an error in the TLV encoding. The error value contains
// the location of the error within the input as well as the [Header] of the
// surrounding data value.
type SyntaxError struct {
	requireKeyedLiterals
	nonComparable

	Err error // underlying error

	// ByteOffset is the location of the error. The location is the start of the
	// TLV header containing the error.
	ByteOffset int

	// Header is the TLV header of the constructed TLV whose value contained the
	// malformed data. It is the zero Header for top-level values.
	Header Header
}

func (e *SyntaxError) Unwrap() error { return e.Err }
func (e *SyntaxError) Error() string {
	b := []byte("tlv: syntax error")
	if e.Header != (Header{}) {
		b = append(b, " within "...)
		b = append(b, e.Header.String()...)
	}
	b = strconv.AppendInt(append(b, " for TLV beginning at offset "...), int64(e.ByteOffset), 10)
	if e.Err != nil {
		b = append(b, ": "...)
		b = append(b, e.Err.Error()...)
	}
	return string(b)
}
