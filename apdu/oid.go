// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apdu

import (
	"errors"
	"fmt"

	"codello.dev/z3950"
	"codello.dev/z3950/ber"
	"codello.dev/z3950/schema"
)

// Object identifiers registered below the Z39.50 arc 1.2.840.10003.
var (
	Bib1AttributeSet = z3950.ObjectIdentifier{1, 2, 840, 10003, 3, 1}
	Exp1AttributeSet = z3950.ObjectIdentifier{1, 2, 840, 10003, 3, 2}
	Ext1AttributeSet = z3950.ObjectIdentifier{1, 2, 840, 10003, 3, 3}
	CCL1AttributeSet = z3950.ObjectIdentifier{1, 2, 840, 10003, 3, 4}
	GILSAttributeSet = z3950.ObjectIdentifier{1, 2, 840, 10003, 3, 5}

	Bib1DiagnosticSet  = z3950.ObjectIdentifier{1, 2, 840, 10003, 4, 1}
	Diag1DiagnosticSet = z3950.ObjectIdentifier{1, 2, 840, 10003, 4, 2}

	UNIMARCSyntax = z3950.ObjectIdentifier{1, 2, 840, 10003, 5, 1}
	USMARCSyntax  = z3950.ObjectIdentifier{1, 2, 840, 10003, 5, 10}
	ExplainSyntax = z3950.ObjectIdentifier{1, 2, 840, 10003, 5, 100}
	SUTRSSyntax   = z3950.ObjectIdentifier{1, 2, 840, 10003, 5, 101}
	OPACSyntax    = z3950.ObjectIdentifier{1, 2, 840, 10003, 5, 102}
	SummarySyntax = z3950.ObjectIdentifier{1, 2, 840, 10003, 5, 103}
	GRS0Syntax    = z3950.ObjectIdentifier{1, 2, 840, 10003, 5, 104}
	GRS1Syntax    = z3950.ObjectIdentifier{1, 2, 840, 10003, 5, 105}
	XMLSyntax     = z3950.ObjectIdentifier{1, 2, 840, 10003, 5, 109, 10}
)

// ErrUnknownSyntax indicates that the record syntax of an EXTERNAL value is not
// known.
var ErrUnknownSyntax = errors.New("unknown record syntax")

var recordSyntaxes = []struct {
	oid  z3950.ObjectIdentifier
	name string
}{
	{UNIMARCSyntax, "UNIMARC"},
	{USMARCSyntax, "USMARC"},
	{ExplainSyntax, "Explain"},
	{SUTRSSyntax, "SUTRS"},
	{OPACSyntax, "OPAC"},
	{SummarySyntax, "Summary"},
	{GRS0Syntax, "GRS-0"},
	{GRS1Syntax, "GRS-1"},
	{XMLSyntax, "XML"},
}

// RecordSyntax returns the common name of the record syntax identified by oid.
// If the syntax is not known, RecordSyntax returns the empty string.
func RecordSyntax(oid z3950.ObjectIdentifier) string {
	for _, s := range recordSyntaxes {
		if s.oid.Equal(oid) {
			return s.name
		}
	}
	return ""
}

// DecodeExternal decodes the record carried by the EXTERNAL value e, as found
// in the retrievalRecord alternative of a NamePlusRecord.
//
// SUTRS records are returned as strings. Records of other known syntaxes that
// are carried as octet-aligned data (such as MARC records) are returned as
// []byte. Other records result in an error wrapping [ErrUnknownSyntax].
func DecodeExternal(e z3950.External) (any, error) {
	name := RecordSyntax(e.DirectReference)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: %v", ErrUnknownSyntax, e.DirectReference)
	case e.Encoding == z3950.OctetAligned && name == "SUTRS":
		return string(e.OctetAligned), nil
	case e.Encoding == z3950.OctetAligned:
		return e.OctetAligned, nil
	case e.Encoding == z3950.SingleASN1Type && name == "SUTRS":
		n, err := ber.EncodeRaw(e.SingleASN1Type)
		if err != nil {
			return nil, err
		}
		return defaultCodec.DecodeNode(schema.Ref("SutrsRecord"), n)
	}
	return nil, fmt.Errorf("%w: %s record encoded as %s", ErrUnknownSyntax, name, e.Encoding)
}
