// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apdu

import (
	"codello.dev/z3950/schema"
)

//region Scan

func defineScan(r *schema.Registry) {
	r.Define("ScanRequest", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("databaseNames", "tag:3,implicit", seqOf(ref("DatabaseName"))),
		f("attributeSet", "optional", ref("AttributeSetId")),
		f("termListAndStartPoint", "", ref("AttributesPlusTerm")),
		f("stepSize", "tag:5,implicit,optional", schema.Integer),
		f("numberOfTermsRequested", "tag:6,implicit", schema.Integer),
		f("preferredPositionInResponse", "tag:7,implicit,optional", schema.Integer),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("ScanResponse", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("stepSize", "tag:3,implicit,optional", schema.Integer),
		f("scanStatus", "tag:4,implicit", schema.Integer),
		f("numberOfEntriesReturned", "tag:5,implicit", schema.Integer),
		f("positionOfTerm", "tag:6,implicit,optional", schema.Integer),
		f("entries", "tag:7,implicit,optional", ref("ListEntries")),
		f("attributeSet", "tag:8,implicit,optional", ref("AttributeSetId")),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("ListEntries", seq(
		f("entries", "tag:1,implicit,optional", seqOf(ref("Entry"))),
		f("nonsurrogateDiagnostics", "tag:2,implicit,optional", seqOf(ref("DiagRec"))),
	))
	r.Define("Entry", choice(
		f("termInfo", "tag:1,implicit", ref("TermInfo")),
		f("surrogateDiagnostic", "tag:2", ref("DiagRec")),
	))
	r.Define("TermInfo", seq(
		f("term", "", ref("Term")),
		f("displayTerm", "tag:0,implicit,optional", schema.InternationalString),
		f("suggestedAttributes", "optional", ref("AttributeList")),
		f("alternativeTerm", "tag:4,implicit,optional", seqOf(ref("AttributesPlusTerm"))),
		f("globalOccurrences", "tag:2,implicit,optional", schema.Integer),
		f("byAttributes", "tag:3,implicit,optional", ref("OccurrenceByAttributes")),
		f("otherTermInfo", "optional", ref("OtherInformation")),
	))
	r.Define("OccurrenceByAttributes", seqOf(ref("OccurrenceByAttributes_item")))
	r.Define("OccurrenceByAttributes_item", seq(
		f("attributes", "tag:1", ref("AttributeList")),
		f("occurrences", "optional", ref("OccurrenceByAttributes_occurrences")),
		f("otherOccurInfo", "optional", ref("OtherInformation")),
	))
	r.Define("OccurrenceByAttributes_occurrences", choice(
		f("global", "tag:2", schema.Integer),
		f("byDatabase", "tag:3,implicit", seqOf(ref("OccurrenceByAttributes_byDatabase"))),
	))
	r.Define("OccurrenceByAttributes_byDatabase", seq(
		f("db", "", ref("DatabaseName")),
		f("num", "tag:1,implicit,optional", schema.Integer),
		f("otherDbInfo", "optional", ref("OtherInformation")),
	))
}

//endregion

//region Sort

func defineSort(r *schema.Registry) {
	r.Define("SortRequest", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("inputResultSetNames", "tag:3,implicit", seqOf(schema.InternationalString)),
		f("sortedResultSetName", "tag:4,implicit", schema.InternationalString),
		f("sortSequence", "tag:5,implicit", seqOf(ref("SortKeySpec"))),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("SortResponse", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("sortStatus", "tag:3,implicit", schema.Integer),
		f("resultSetStatus", "tag:4,implicit,optional", schema.Integer),
		f("diagnostics", "tag:5,implicit,optional", seqOf(ref("DiagRec"))),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("SortKeySpec", seq(
		f("sortElement", "", ref("SortElement")),
		f("sortRelation", "tag:1,implicit", schema.Integer),
		f("caseSensitivity", "tag:2,implicit", schema.Integer),
		f("missingValueAction", "tag:3,optional", ref("SortKeySpec_missingValueAction")),
	))
	r.Define("SortKeySpec_missingValueAction", choice(
		f("abort", "tag:1,implicit", schema.Null),
		f("null", "tag:2,implicit", schema.Null),
		f("missingValueData", "tag:3,implicit", schema.OctetString),
	))
	r.Define("SortElement", choice(
		f("generic", "tag:1", ref("SortKey")),
		f("datbaseSpecific", "tag:2,implicit", seqOf(ref("SortElement_datbaseSpecific"))),
	))
	r.Define("SortElement_datbaseSpecific", seq(
		f("databaseName", "", ref("DatabaseName")),
		f("dbSort", "", ref("SortKey")),
	))
	r.Define("SortKey", choice(
		f("sortfield", "tag:0", schema.InternationalString),
		f("elementSpec", "tag:1", ref("Specification")),
		f("sortAttributes", "tag:2,implicit", ref("SortKey_sortAttributes")),
	))
	r.Define("SortKey_sortAttributes", seq(
		f("id", "", ref("AttributeSetId")),
		f("list", "", ref("AttributeList")),
	))
}

//endregion
