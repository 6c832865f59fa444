// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apdu

import (
	"codello.dev/z3950/schema"
)

func defineGlobal(r *schema.Registry) {
	r.Define("InternationalString", schema.InternationalString)
	r.Define("ReferenceId", schema.ImplicitTag(2, schema.OctetString))
	r.Define("ResultSetId", schema.ImplicitTag(31, schema.InternationalString))
	r.Define("ElementSetName", schema.ImplicitTag(103, schema.InternationalString))
	r.Define("DatabaseName", schema.ImplicitTag(105, schema.InternationalString))
	r.Define("AttributeSetId", schema.ObjectIdentifier)

	r.Define("OtherInformation", schema.ImplicitTag(201, seqOf(ref("OtherInformation_item"))))
	r.Define("OtherInformation_item", seq(
		f("category", "tag:1,implicit,optional", ref("InfoCategory")),
		f("information", "", ref("OtherInformation_information")),
	))
	r.Define("OtherInformation_information", choice(
		f("characterInfo", "tag:2,implicit", schema.InternationalString),
		f("binaryInfo", "tag:3,implicit", schema.OctetString),
		f("externallyDefinedInfo", "tag:4,implicit", schema.External),
		f("oid", "tag:5,implicit", schema.ObjectIdentifier),
	))
	r.Define("InfoCategory", seq(
		f("categoryTypeId", "tag:1,implicit,optional", schema.ObjectIdentifier),
		f("categoryValue", "tag:2,implicit", schema.Integer),
	))

	r.Define("IntUnit", seq(
		f("value", "tag:1,implicit", schema.Integer),
		f("unitUsed", "tag:2,implicit", ref("Unit")),
	))
	r.Define("Unit", seq(
		f("unitSystem", "tag:1,optional", schema.InternationalString),
		f("unitType", "tag:2,optional", ref("StringOrNumeric")),
		f("unit", "tag:3,optional", ref("StringOrNumeric")),
		f("scaleFactor", "tag:4,implicit,optional", schema.Integer),
	))
	r.Define("StringOrNumeric", choice(
		f("string", "tag:1,implicit", schema.InternationalString),
		f("numeric", "tag:2,implicit", schema.Integer),
	))
}

// defineRecordSyntaxes registers the ASN.1 types of record syntaxes that are
// transferred as single-ASN1-type encodings of EXTERNAL values.
func defineRecordSyntaxes(r *schema.Registry) {
	r.Define("SutrsRecord", schema.InternationalString)
}
