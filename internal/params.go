// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package internal

import (
	"math/bits"
	"strconv"
	"strings"

	"codello.dev/z3950"
)

// FieldParameters is the parsed representation of the parameter string of a
// schema field.
type FieldParameters struct {
	Tagged   bool      // true iff a tag number was given
	Tag      z3950.Tag // the EXPLICIT or IMPLICIT class and tag number
	Optional bool      // true iff the field is OPTIONAL
	Implicit bool      // true iff an IMPLICIT tag is in use
}

// ParseFieldParameters parses a comma-separated parameter string into a
// FieldParameters structure. The following parts are recognized:
//
//	tag:N        the tag number; the class defaults to context-specific
//	application  use the APPLICATION class
//	private      use the PRIVATE class
//	universal    use the UNIVERSAL class
//	implicit     the tag is IMPLICIT, otherwise it is EXPLICIT
//	optional     the field is OPTIONAL
//
// Unknown parts and malformed tag numbers are reported as an error.
func ParseFieldParameters(str string) (ret FieldParameters, err error) {
	hasClass := false
	for part := range strings.SplitSeq(str, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
		case part == "optional":
			ret.Optional = true
		case part == "implicit":
			ret.Implicit = true
		case part == "explicit":
			ret.Implicit = false
		case strings.HasPrefix(part, "tag:"):
			i, err := strconv.ParseUint(part[4:], 10, bits.UintSize)
			if err != nil {
				return ret, err
			}
			if !hasClass {
				ret.Tag.Class = z3950.ClassContextSpecific
			}
			ret.Tag.Number = uint(i)
			ret.Tagged = true
		case part == "application":
			ret.Tag.Class = z3950.ClassApplication
			hasClass = true
		case part == "private":
			ret.Tag.Class = z3950.ClassPrivate
			hasClass = true
		case part == "universal":
			ret.Tag.Class = z3950.ClassUniversal
			hasClass = true
		default:
			return ret, &UnknownParameterError{Param: part}
		}
	}
	return ret, nil
}

// UnknownParameterError reports an unrecognized part of a parameter string.
type UnknownParameterError struct {
	Param string
}

func (e *UnknownParameterError) Error() string {
	return "unknown field parameter " + strconv.Quote(e.Param)
}
