// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package apdu contains the Z39-50-APDU-1995 ASN.1 module as a [schema]
// description and functions to encode and decode Z39.50 protocol data units.
//
// Every type of the module is registered under its ASN.1 name. Anonymous
// SEQUENCE and CHOICE types nested in other types are registered under the
// name of the containing type and field, joined by an underscore (such as
// RPNStructure_rpnRpnOp). The element SEQUENCE of a named SEQUENCE OF type uses
// the suffix _item (such as OtherInformation_item). Field names are the ASN.1
// identifiers.
//
// Use [DecodePDU] to decode a protocol data unit received from a peer and
// [Encode] to encode a message built using [Build]:
//
//	m := apdu.Build("DeleteResultSetRequest").
//		Set("deleteFunction", apdu.DeleteAll).
//		MustMessage()
//	b, err := apdu.Encode(m)
//
// The package-level functions use [DefaultMaxDepth] and [DefaultMaxSize] as
// limits. Use [NewCodec] to choose different limits.
package apdu

import (
	"codello.dev/z3950/schema"
)

// Default limits of the package-level codec.
const (
	DefaultMaxDepth = 64
	DefaultMaxSize  = 16 << 20
)

var (
	registry     = newRegistry()
	defaultCodec = NewCodec(DefaultMaxDepth, DefaultMaxSize)
)

// newRegistry creates the registry of the Z39-50-APDU-1995 module. It panics if
// the module is inconsistent.
func newRegistry() *schema.Registry {
	r := schema.NewRegistry()
	definePDU(r)
	defineInit(r)
	defineSearch(r)
	defineQuery(r)
	defineRetrieval(r)
	defineDiagnostics(r)
	defineServices(r)
	defineScan(r)
	defineSort(r)
	defineClose(r)
	defineGlobal(r)
	defineRecordSyntaxes(r)
	if err := r.Validate(); err != nil {
		panic("apdu: " + err.Error())
	}
	return r
}

// Registry returns the registry containing the types of the Z39-50-APDU-1995
// module. The registry must not be modified.
func Registry() *schema.Registry {
	return registry
}

// NewCodec returns a codec for the types of the Z39-50-APDU-1995 module using
// the given limits. A value of 0 indicates no limit.
func NewCodec(maxDepth, maxSize int) *schema.Codec {
	return &schema.Codec{Registry: registry, MaxDepth: maxDepth, MaxSize: maxSize}
}

// Decode decodes b as a value of the named type.
func Decode(name string, b []byte) (*schema.Message, error) {
	return defaultCodec.Decode(name, b)
}

// DecodePDU decodes b as a protocol data unit. The returned message is a PDU
// CHOICE message. Use [schema.Message.Choice] to access the contained APDU.
func DecodePDU(b []byte) (*schema.Message, error) {
	return defaultCodec.Decode("PDU", b)
}

// Encode encodes m. To encode a protocol data unit, m must be a PDU message.
func Encode(m *schema.Message) ([]byte, error) {
	return defaultCodec.Encode(m)
}

// Build returns a builder for a message of the named type.
func Build(name string) *schema.Builder {
	return registry.Build(name)
}

// PDU wraps an APDU message into a PDU message. The PDU alternative is chosen
// by the type of m.
func PDU(m *schema.Message) (*schema.Message, error) {
	if m == nil {
		return nil, &schema.EncodeError{Schema: "PDU", Err: schema.ErrInvalidValue}
	}
	name, ok := pduAlternatives[m.TypeName()]
	if !ok {
		return nil, &schema.EncodeError{Schema: "PDU", Err: schema.ErrTypeMismatch}
	}
	return Build("PDU").Set(name, m).Message()
}

//region Catalog Helpers

// f is a shorthand for [schema.F].
var f = schema.F

// ref is a shorthand for [schema.Ref].
type ref = schema.Ref

func seq(fields ...schema.Field) *schema.Sequence {
	return &schema.Sequence{Fields: fields}
}

func choice(alts ...schema.Field) *schema.Choice {
	return &schema.Choice{Alternatives: alts}
}

func seqOf(t schema.Type) *schema.SequenceOf {
	return &schema.SequenceOf{Elem: t}
}

//endregion
