// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apdu

import (
	"codello.dev/z3950/schema"
)

//region Search

func defineSearch(r *schema.Registry) {
	r.Define("SearchRequest", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("smallSetUpperBound", "tag:13,implicit", schema.Integer),
		f("largeSetLowerBound", "tag:14,implicit", schema.Integer),
		f("mediumSetPresentNumber", "tag:15,implicit", schema.Integer),
		f("replaceIndicator", "tag:16,implicit", schema.Boolean),
		f("resultSetName", "tag:17,implicit", schema.InternationalString),
		f("databaseNames", "tag:18,implicit", seqOf(ref("DatabaseName"))),
		f("smallSetElementSetNames", "tag:100,optional", ref("ElementSetNames")),
		f("mediumSetElementSetNames", "tag:101,optional", ref("ElementSetNames")),
		f("preferredRecordSyntax", "tag:104,implicit,optional", schema.ObjectIdentifier),
		f("query", "tag:21", ref("Query")),
		f("additionalSearchInfo", "tag:203,implicit,optional", ref("OtherInformation")),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("SearchResponse", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("resultCount", "tag:23,implicit", schema.Integer),
		f("numberOfRecordsReturned", "tag:24,implicit", schema.Integer),
		f("nextResultSetPosition", "tag:25,implicit", schema.Integer),
		f("searchStatus", "tag:22,implicit", schema.Boolean),
		f("resultSetStatus", "tag:26,implicit,optional", schema.Integer),
		f("presentStatus", "optional", ref("PresentStatus")),
		f("records", "optional", ref("Records")),
		f("additionalSearchInfo", "tag:203,implicit,optional", ref("OtherInformation")),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
}

//endregion

//region Query

func defineQuery(r *schema.Registry) {
	r.Define("Query", choice(
		f("type-0", "tag:0", schema.Any),
		f("type-1", "tag:1,implicit", ref("RPNQuery")),
		f("type-2", "tag:2", schema.OctetString),
		f("type-100", "tag:100", schema.OctetString),
		f("type-101", "tag:101,implicit", ref("RPNQuery")),
		f("type-102", "tag:102", schema.OctetString),
	))
	r.Define("RPNQuery", seq(
		f("attributeSet", "", ref("AttributeSetId")),
		f("rpn", "", ref("RPNStructure")),
	))
	r.Define("RPNStructure", choice(
		f("op", "tag:0", ref("Operand")),
		f("rpnRpnOp", "tag:1,implicit", ref("RPNStructure_rpnRpnOp")),
	))
	r.Define("RPNStructure_rpnRpnOp", seq(
		f("rpn1", "", ref("RPNStructure")),
		f("rpn2", "", ref("RPNStructure")),
		f("op", "", ref("Operator")),
	))
	r.Define("Operand", choice(
		f("attrTerm", "", ref("AttributesPlusTerm")),
		f("resultSet", "", ref("ResultSetId")),
		f("resultAttr", "", ref("ResultSetPlusAttributes")),
	))
	r.Define("AttributesPlusTerm", schema.ImplicitTag(102, seq(
		f("attributes", "", ref("AttributeList")),
		f("term", "", ref("Term")),
	)))
	r.Define("ResultSetPlusAttributes", schema.ImplicitTag(214, seq(
		f("resultSet", "", ref("ResultSetId")),
		f("attributes", "", ref("AttributeList")),
	)))
	r.Define("AttributeList", schema.ImplicitTag(44, seqOf(ref("AttributeElement"))))
	r.Define("Term", choice(
		f("general", "tag:45,implicit", schema.OctetString),
		f("numeric", "tag:215,implicit", schema.Integer),
		f("characterString", "tag:216,implicit", schema.InternationalString),
		f("oid", "tag:217,implicit", schema.ObjectIdentifier),
		f("dateTime", "tag:218,implicit", schema.GeneralizedTime),
		f("external", "tag:219,implicit", schema.External),
		f("integerAndUnit", "tag:220,implicit", ref("IntUnit")),
		f("null", "tag:221,implicit", schema.Null),
	))
	r.Define("Operator", schema.ExplicitTag(46, choice(
		f("and", "tag:0,implicit", schema.Null),
		f("or", "tag:1,implicit", schema.Null),
		f("and-not", "tag:2,implicit", schema.Null),
		f("prox", "tag:3,implicit", ref("ProximityOperator")),
	)))
	r.Define("AttributeElement", seq(
		f("attributeSet", "tag:1,implicit,optional", ref("AttributeSetId")),
		f("attributeType", "tag:120,implicit", schema.Integer),
		f("attributeValue", "", ref("AttributeElement_attributeValue")),
	))
	r.Define("AttributeElement_attributeValue", choice(
		f("numeric", "tag:121,implicit", schema.Integer),
		f("complex", "tag:224,implicit", ref("AttributeElement_attributeValue_complex")),
	))
	r.Define("AttributeElement_attributeValue_complex", seq(
		f("list", "", seqOf(ref("StringOrNumeric"))),
		f("semanticAction", "tag:2,implicit,optional", seqOf(schema.Integer)),
	))
	r.Define("ProximityOperator", seq(
		f("exclusion", "tag:1,implicit,optional", schema.Boolean),
		f("distance", "tag:2,implicit", schema.Integer),
		f("ordered", "tag:3,implicit", schema.Boolean),
		f("relationType", "tag:4,implicit", schema.Integer),
		f("proximityUnitCode", "tag:5", ref("ProximityOperator_proximityUnitCode")),
	))
	r.Define("ProximityOperator_proximityUnitCode", choice(
		f("known", "tag:1,implicit", ref("KnownProximityUnit")),
		f("private", "tag:2,implicit", schema.Integer),
	))
	r.Define("KnownProximityUnit", schema.Integer)
}

//endregion
