// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schema implements a BER codec driven by a declarative description of
// ASN.1 types.
//
// A schema is a graph of [Type] values. Structured types are described by
// [Sequence], [Choice] and [SequenceOf] values, tags by [Tagged] values and
// references to named types by [Ref]. The universal types are available as
// package-level variables such as [Integer] or [OctetString]. Named types are
// collected in a [Registry]. References are resolved lazily, so a schema may be
// recursive.
//
// A [Codec] decodes BER-encoded bytes against a type into a [Message] tree and
// encodes [Message] trees back into bytes. Decoding first frames the input into
// a [tlv.Node] tree and then interprets the nodes against the schema.
//
// # Decoding Rules
//
// The fields of a SEQUENCE are matched against the child nodes strictly in
// declaration order. An OPTIONAL field whose type has a definite tag is present
// if and only if the tag of the next child node is equal to that tag. An
// OPTIONAL field whose type has no definite tag (an untagged CHOICE or ANY) is
// present if the next child node can be decoded as that type. Child nodes that
// remain after all fields have been processed are an error.
//
// The alternatives of a CHOICE are tried in declaration order. A tagged
// alternative matches if the tag of the node is equal to its tag. An untagged
// alternative matches if the node can be decoded as that alternative. The first
// match wins.
//
// IMPLICIT tags applied to an untagged CHOICE or to ANY are treated as EXPLICIT
// tags, as required by X.680.
//
// # Values
//
// Decoded values of the universal types use the Go types documented in package
// [codello.dev/z3950]. SEQUENCE and CHOICE values are represented by a
// *[Message]. SEQUENCE OF values are represented by []any.
package schema

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"codello.dev/z3950"
	"codello.dev/z3950/ber"
	"codello.dev/z3950/tlv"
)

// A Type describes an ASN.1 type. The implementations of this interface are
// provided by this package.
type Type interface {
	fmt.Stringer

	// Kind returns the kind of the type.
	Kind() Kind

	// tag returns the tag of the encoding of values of the type. If the type has
	// no definite tag (an untagged CHOICE or ANY), ok is false.
	tag(r *Registry) (tag z3950.Tag, ok bool)

	// decodeContents decodes n into a value of the type. The tag of n has already
	// been validated.
	decodeContents(d *decoder, n *tlv.Node) (any, error)

	// encodeContents encodes v into a node carrying the tag of the type.
	encodeContents(e *encoder, v any) (*tlv.Node, error)
}

// Kind identifies the different kinds of [Type] values.
//
//go:generate stringer -type=Kind -trimprefix=Kind
type Kind uint8

// These are the kinds of types in a schema.
const (
	KindPrimitive Kind = iota
	KindAny
	KindTagged
	KindSequence
	KindChoice
	KindSequenceOf
	KindRef
)

//region Primitive Types

// primitive implements the universal types. The ASN.1 name of the type is also
// used as its string representation.
type primitive struct {
	name   string
	number uint
	decode func(n *tlv.Node) (any, error)
	encode func(v any) (*tlv.Node, error)
}

func (p *primitive) String() string { return p.name }
func (p *primitive) Kind() Kind     { return KindPrimitive }

func (p *primitive) tag(*Registry) (z3950.Tag, bool) {
	return z3950.Universal(p.number), true
}

func (p *primitive) decodeContents(_ *decoder, n *tlv.Node) (any, error) {
	return p.decode(n)
}

func (p *primitive) encodeContents(_ *encoder, v any) (*tlv.Node, error) {
	return p.encode(v)
}

// These are the universal types used by the Z39.50 protocol.
var (
	// Integer decodes into int64. Encoding accepts any Go integer type.
	Integer Type = &primitive{"INTEGER", z3950.TagInteger,
		func(n *tlv.Node) (any, error) { return ber.DecodeInteger(n) },
		func(v any) (*tlv.Node, error) {
			i, err := toInt64(v)
			if err != nil {
				return nil, err
			}
			return ber.EncodeInteger(i), nil
		}}

	// Boolean decodes into bool.
	Boolean Type = &primitive{"BOOLEAN", z3950.TagBoolean,
		func(n *tlv.Node) (any, error) { return ber.DecodeBoolean(n) },
		func(v any) (*tlv.Node, error) {
			b, ok := v.(bool)
			if !ok {
				return nil, typeMismatch(v, "BOOLEAN")
			}
			return ber.EncodeBoolean(b), nil
		}}

	// OctetString decodes into []byte. Encoding also accepts a string.
	OctetString Type = &primitive{"OCTET STRING", z3950.TagOctetString,
		func(n *tlv.Node) (any, error) { return ber.DecodeOctetString(n) },
		func(v any) (*tlv.Node, error) {
			switch b := v.(type) {
			case []byte:
				return ber.EncodeOctetString(b), nil
			case string:
				return ber.EncodeOctetString([]byte(b)), nil
			}
			return nil, typeMismatch(v, "OCTET STRING")
		}}

	// VisibleString decodes into string.
	VisibleString Type = stringType("VisibleString", z3950.TagVisibleString)

	// GeneralString decodes into string.
	GeneralString Type = stringType("GeneralString", z3950.TagGeneralString)

	// InternationalString is the Z39.50 name of GeneralString. It decodes
	// into string.
	InternationalString Type = stringType("InternationalString", z3950.TagGeneralString)

	// ObjectDescriptor decodes into string.
	ObjectDescriptor Type = stringType("ObjectDescriptor", z3950.TagObjectDescriptor)

	// ObjectIdentifier decodes into z3950.ObjectIdentifier.
	ObjectIdentifier Type = &primitive{"OBJECT IDENTIFIER", z3950.TagOID,
		func(n *tlv.Node) (any, error) { return ber.DecodeObjectIdentifier(n) },
		func(v any) (*tlv.Node, error) {
			oid, ok := v.(z3950.ObjectIdentifier)
			if !ok {
				return nil, typeMismatch(v, "OBJECT IDENTIFIER")
			}
			return invalid(ber.EncodeObjectIdentifier(oid))
		}}

	// BitString decodes into z3950.BitString.
	BitString Type = &primitive{"BIT STRING", z3950.TagBitString,
		func(n *tlv.Node) (any, error) { return ber.DecodeBitString(n) },
		func(v any) (*tlv.Node, error) {
			s, ok := v.(z3950.BitString)
			if !ok {
				return nil, typeMismatch(v, "BIT STRING")
			}
			return invalid(ber.EncodeBitString(s))
		}}

	// Null decodes into z3950.Null.
	Null Type = &primitive{"NULL", z3950.TagNull,
		func(n *tlv.Node) (any, error) { return ber.DecodeNull(n) },
		func(v any) (*tlv.Node, error) {
			if _, ok := v.(z3950.Null); !ok {
				return nil, typeMismatch(v, "NULL")
			}
			return ber.EncodeNull(), nil
		}}

	// GeneralizedTime decodes into z3950.GeneralizedTime. Encoding also
	// accepts a time.Time.
	GeneralizedTime Type = &primitive{"GeneralizedTime", z3950.TagGeneralizedTime,
		func(n *tlv.Node) (any, error) { return ber.DecodeGeneralizedTime(n) },
		func(v any) (*tlv.Node, error) {
			switch t := v.(type) {
			case z3950.GeneralizedTime:
				return invalid(ber.EncodeGeneralizedTime(t))
			case time.Time:
				return invalid(ber.EncodeGeneralizedTime(z3950.GeneralizedTime(t)))
			}
			return nil, typeMismatch(v, "GeneralizedTime")
		}}

	// External decodes into z3950.External.
	External Type = &primitive{"EXTERNAL", z3950.TagExternal,
		func(n *tlv.Node) (any, error) { return ber.DecodeExternal(n) },
		func(v any) (*tlv.Node, error) {
			ext, ok := v.(z3950.External)
			if !ok {
				return nil, typeMismatch(v, "EXTERNAL")
			}
			return invalid(ber.EncodeExternal(ext))
		}}
)

// stringType returns a character string type with the given universal tag
// number. Values are Go strings. Encoding also accepts a []byte.
func stringType(name string, number uint) Type {
	return &primitive{name, number,
		func(n *tlv.Node) (any, error) { return ber.DecodeString(n) },
		func(v any) (*tlv.Node, error) {
			var b []byte
			switch s := v.(type) {
			case string:
				b = []byte(s)
			case []byte:
				b = s
			default:
				return nil, typeMismatch(v, name)
			}
			return tlv.NewPrimitive(z3950.Universal(number), b), nil
		}}
}

// toInt64 converts an integer value of any Go integer type into an int64.
func toInt64(v any) (int64, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if rv.Uint() > math.MaxInt64 {
			return 0, fmt.Errorf("%w: integer %d overflows int64", ErrInvalidValue, rv.Uint())
		}
		return int64(rv.Uint()), nil
	default:
		return 0, typeMismatch(v, "INTEGER")
	}
}

// typeMismatch returns an error indicating that v cannot be encoded as the
// named type.
func typeMismatch(v any, typ string) error {
	return fmt.Errorf("%w: cannot encode %T as %s", ErrTypeMismatch, v, typ)
}

// invalid marks an error returned by an encoding function of package ber as
// [ErrInvalidValue].
func invalid(n *tlv.Node, err error) (*tlv.Node, error) {
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return n, nil
}

//endregion

//region ANY

// anyType implements the ASN.1 ANY type.
type anyType struct{}

// Any is the ASN.1 ANY type. Values are represented as z3950.RawValue. Any has
// no definite tag.
var Any Type = anyType{}

func (anyType) String() string                  { return "ANY" }
func (anyType) Kind() Kind                      { return KindAny }
func (anyType) tag(*Registry) (z3950.Tag, bool) { return z3950.Tag{}, false }

func (anyType) decodeContents(_ *decoder, n *tlv.Node) (any, error) {
	return ber.DecodeRaw(n), nil
}

func (anyType) encodeContents(_ *encoder, v any) (*tlv.Node, error) {
	rv, ok := v.(z3950.RawValue)
	if !ok {
		return nil, typeMismatch(v, "ANY")
	}
	return invalid(ber.EncodeRaw(rv))
}

//endregion
