// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package z3950 defines the ASN.1 vocabulary shared by the packages that
// implement the presentation layer of the Z39.50 information retrieval
// protocol ([ISO 23950]).
//
// The module is organized in layers:
//
//   - This package defines ASN.1 tags and the Go types used for ASN.1 universal
//     values that have no natural Go counterpart.
//   - Package [codello.dev/z3950/tlv] frames BER-encoded bytes into an immutable
//     tree of tag-length-value nodes without interpreting them.
//   - Package [codello.dev/z3950/ber] encodes and decodes the contents of
//     universal primitive types.
//   - Package [codello.dev/z3950/schema] interprets node trees against a
//     declarative description of ASN.1 SEQUENCE, CHOICE and SEQUENCE OF types.
//   - Package [codello.dev/z3950/apdu] contains the Z39-50-APDU-1995 module as
//     such a description.
//
// # Mapping of ASN.1 Types to Go Types
//
// Decoded values use the following Go types:
//
//   - INTEGER values are int64.
//   - BOOLEAN values are bool.
//   - OCTET STRING values are []byte.
//   - VisibleString, GeneralString and InternationalString values are Go
//     strings. Their bytes are passed through without transcoding.
//   - OBJECT IDENTIFIER, BIT STRING, NULL, GeneralizedTime and EXTERNAL values
//     use the types [ObjectIdentifier], [BitString], [Null], [GeneralizedTime]
//     and [External] defined in this package.
//   - Open types (ANY) are kept as [RawValue].
//
// [ISO 23950]: https://www.loc.gov/z3950/agency/
package z3950

import (
	"strconv"
	"strings"
)

// Tag constitutes an ASN.1 tag, consisting of its class and number. For
// details, see Section 8 of Rec. ITU-T X.680.
type Tag struct {
	Class  Class
	Number uint
}

// Class holds the class part of an ASN.1 tag. The class acts as a namespace for
// the tag number. A Class value is an unsigned 2-bit integer. Class values
// whose value exceeds 2 bits are invalid.
//
//go:generate stringer -type=Class -trimprefix=Class
type Class uint8

// IsValid reports whether c is a valid Class value.
func (c Class) IsValid() bool {
	return c <= 3
}

// Predefined [Class] constants. These are all the possible values that can be
// encoded in the [Class] type.
const (
	ClassUniversal Class = iota
	ClassApplication
	ClassContextSpecific
	ClassPrivate
)

// Universal returns the [ClassUniversal] tag with the given number.
func Universal(n uint) Tag {
	return Tag{Class: ClassUniversal, Number: n}
}

// Context returns the [ClassContextSpecific] tag with the given number. Almost
// all tags of the Z39.50 protocol are context specific.
func Context(n uint) Tag {
	return Tag{Class: ClassContextSpecific, Number: n}
}

// String returns a string representation t in a format similar to the one used
// in ASN.1 notation. The tag number is enclosed by square brackets and prefixed
// with the class used. To avoid ambiguity the UNIVERSAL word is used for
// universal tags, although this is not valid ASN.1 syntax.
func (t Tag) String() string {
	if t.Class == ClassContextSpecific {
		return "[" + strconv.FormatUint(uint64(t.Number), 10) + "]"
	}
	return "[" + strings.ToUpper(t.Class.String()) + " " + strconv.FormatUint(uint64(t.Number), 10) + "]"
}

// These are the ASN.1 tag numbers in the [ClassUniversal] namespace that appear
// in the Z39.50 protocol. These assignments are defined in Rec. ITU-T X.680,
// Section 8, Table 1.
const (
	TagBoolean          uint = 1
	TagInteger          uint = 2
	TagBitString        uint = 3
	TagOctetString      uint = 4
	TagNull             uint = 5
	TagOID              uint = 6
	TagObjectDescriptor uint = 7
	TagExternal         uint = 8
	TagEnumerated       uint = 10
	TagSequence         uint = 16
	TagSet              uint = 17
	TagGeneralizedTime  uint = 24
	TagVisibleString    uint = 26
	TagGeneralString    uint = 27
)
