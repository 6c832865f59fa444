// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"errors"

	"codello.dev/z3950"
	"codello.dev/z3950/tlv"
)

//region [UNIVERSAL 8] EXTERNAL

// EncodeExternal returns the encoding of e. Only the alternative selected by
// e.Encoding is encoded.
func EncodeExternal(e z3950.External) (*tlv.Node, error) {
	var children []*tlv.Node
	if e.DirectReference != nil {
		n, err := EncodeObjectIdentifier(e.DirectReference)
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	if e.IndirectReference != nil {
		children = append(children, EncodeInteger(*e.IndirectReference))
	}
	if e.DataValueDescriptor != nil {
		children = append(children, tlv.NewPrimitive(z3950.Universal(z3950.TagObjectDescriptor), []byte(*e.DataValueDescriptor)))
	}
	switch e.Encoding {
	case z3950.SingleASN1Type:
		n, err := EncodeRaw(e.SingleASN1Type)
		if err != nil {
			return nil, err
		}
		children = append(children, tlv.NewConstructed(z3950.Context(0), n))
	case z3950.OctetAligned:
		children = append(children, tlv.NewPrimitive(z3950.Context(1), e.OctetAligned))
	case z3950.Arbitrary:
		n, err := EncodeBitString(e.Arbitrary)
		if err != nil {
			return nil, err
		}
		children = append(children, n.WithTag(z3950.Context(2)))
	default:
		return nil, errors.New("ber: invalid EXTERNAL encoding " + e.Encoding.String())
	}
	return tlv.NewConstructed(z3950.Universal(z3950.TagExternal), children...), nil
}

// DecodeExternal decodes an EXTERNAL value.
func DecodeExternal(n *tlv.Node) (e z3950.External, err error) {
	if !n.Constructed() {
		return e, &SyntaxError{n.Tag(), errors.New("primitive EXTERNAL")}
	}
	children := n.Children()
	i := 0
	if i < len(children) && children[i].Tag() == z3950.Universal(z3950.TagOID) {
		if e.DirectReference, err = DecodeObjectIdentifier(children[i]); err != nil {
			return e, err
		}
		i++
	}
	if i < len(children) && children[i].Tag() == z3950.Universal(z3950.TagInteger) {
		v, err := DecodeInteger(children[i])
		if err != nil {
			return e, err
		}
		e.IndirectReference = &v
		i++
	}
	if i < len(children) && children[i].Tag() == z3950.Universal(z3950.TagObjectDescriptor) {
		s, err := DecodeString(children[i])
		if err != nil {
			return e, err
		}
		e.DataValueDescriptor = &s
		i++
	}
	if i != len(children)-1 {
		return e, &SyntaxError{n.Tag(), errors.New("missing or ambiguous EXTERNAL encoding")}
	}

	c := children[i]
	switch c.Tag() {
	case z3950.Context(0):
		if !c.Constructed() || len(c.Children()) != 1 {
			return e, &SyntaxError{n.Tag(), errors.New("invalid single-ASN1-type encoding")}
		}
		e.Encoding = z3950.SingleASN1Type
		e.SingleASN1Type = DecodeRaw(c.Children()[0])
	case z3950.Context(1):
		e.Encoding = z3950.OctetAligned
		e.OctetAligned, err = DecodeOctetString(c)
	case z3950.Context(2):
		e.Encoding = z3950.Arbitrary
		e.Arbitrary, err = DecodeBitString(c)
	default:
		err = &SyntaxError{n.Tag(), errors.New("invalid EXTERNAL encoding " + c.Tag().String())}
	}
	return e, err
}

//endregion
