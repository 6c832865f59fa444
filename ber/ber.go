// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ber implements the content encodings of the ASN.1 universal types
// used by Z39.50 as defined by the Basic Encoding Rules in [Rec. ITU-T X.690].
// See also “[A Layman's Guide to a Subset of ASN.1, BER, and DER]”.
//
// Decoding functions operate on framed [tlv.Node] values and do not check the
// tag of the node. This allows the same functions to be used for implicitly
// tagged values. Encoding functions return nodes carrying the universal tag of
// the type. The following rules apply:
//
//   - INTEGER values must be minimally encoded and fit into an int64.
//   - BOOLEAN values must consist of exactly one byte. Any non-zero byte is
//     decoded as true. True is encoded as 0xFF.
//   - OCTET STRING, BIT STRING and character string values may use the
//     constructed encoding. Segments are concatenated during decoding. Encoding
//     always uses the primitive form.
//   - Character strings are not transcoded. The bytes are passed through as-is.
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
// [A Layman's Guide to a Subset of ASN.1, BER, and DER]: http://luca.ntop.org/Teaching/Appunti/asn1.html
package ber

import (
	"errors"
	"strings"

	"codello.dev/z3950"
	"codello.dev/z3950/tlv"
)

// ErrMalformedPrimitive indicates that the content of a data value violates the
// grammar of its type. Every [*SyntaxError] matches ErrMalformedPrimitive.
var ErrMalformedPrimitive = errors.New("malformed primitive")

// errConstructed is returned when a constructed encoding is found for a type
// that only allows the primitive encoding.
var errConstructed = errors.New("constructed encoding of primitive type")

// A SyntaxError indicates that the content of an ASN.1 data value is invalid.
type SyntaxError struct {
	Tag z3950.Tag // where the syntax error occurred
	Err error
}

func (e *SyntaxError) Error() string {
	var s strings.Builder
	s.WriteString("ber: syntax error decoding ")
	s.WriteString(e.Tag.String())
	if e.Err != nil {
		s.WriteString(": ")
		s.WriteString(e.Err.Error())
	}
	return s.String()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Is reports whether target is [ErrMalformedPrimitive].
func (e *SyntaxError) Is(target error) bool {
	return target == ErrMalformedPrimitive
}

// primitive returns the content of n or an error if n is constructed.
func primitive(n *tlv.Node) ([]byte, error) {
	if n.Constructed() {
		return nil, &SyntaxError{n.Tag(), errConstructed}
	}
	return n.Content(), nil
}

//region ANY

// DecodeRaw returns the tag and content octets of n. For constructed nodes the
// content octets are the encodings of the children.
func DecodeRaw(n *tlv.Node) z3950.RawValue {
	rv := z3950.RawValue{Tag: n.Tag(), Constructed: n.Constructed()}
	if !n.Constructed() {
		rv.Bytes = append([]byte(nil), n.Content()...)
		return rv
	}
	rv.Bytes = make([]byte, 0, n.Len())
	for _, c := range n.Children() {
		rv.Bytes = c.Append(rv.Bytes)
	}
	return rv
}

// EncodeRaw returns a node for rv. The content octets of a constructed value
// are framed into children, so they must form a sequence of valid BER
// encodings.
func EncodeRaw(rv z3950.RawValue) (*tlv.Node, error) {
	if !rv.Constructed {
		return tlv.NewPrimitive(rv.Tag, rv.Bytes), nil
	}
	var children []*tlv.Node
	for off := 0; off < len(rv.Bytes); {
		c, n, err := tlv.ParseOne(rv.Bytes, off)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
		off += n
	}
	return tlv.NewConstructed(rv.Tag, children...), nil
}

//endregion
