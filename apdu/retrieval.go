// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apdu

import (
	"codello.dev/z3950/schema"
)

//region Present

func defineRetrieval(r *schema.Registry) {
	r.Define("PresentRequest", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("resultSetId", "", ref("ResultSetId")),
		f("resultSetStartPoint", "tag:30,implicit", schema.Integer),
		f("numberOfRecordsRequested", "tag:29,implicit", schema.Integer),
		f("additionalRanges", "tag:212,implicit,optional", seqOf(ref("Range"))),
		f("recordComposition", "optional", ref("PresentRequest_recordComposition")),
		f("preferredRecordSyntax", "tag:104,implicit,optional", schema.ObjectIdentifier),
		f("maxSegmentCount", "tag:204,implicit,optional", schema.Integer),
		f("maxRecordSize", "tag:206,implicit,optional", schema.Integer),
		f("maxSegmentSize", "tag:207,implicit,optional", schema.Integer),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("PresentRequest_recordComposition", choice(
		f("simple", "tag:19", ref("ElementSetNames")),
		f("complex", "tag:209,implicit", ref("CompSpec")),
	))
	r.Define("Segment", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("numberOfRecordsReturned", "tag:24,implicit", schema.Integer),
		f("segmentRecords", "tag:0,implicit", seqOf(ref("NamePlusRecord"))),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("PresentResponse", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("numberOfRecordsReturned", "tag:24,implicit", schema.Integer),
		f("nextResultSetPosition", "tag:25,implicit", schema.Integer),
		f("presentStatus", "", ref("PresentStatus")),
		f("records", "optional", ref("Records")),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("Records", choice(
		f("responseRecords", "tag:28,implicit", seqOf(ref("NamePlusRecord"))),
		f("nonSurrogateDiagnostic", "tag:130,implicit", ref("DefaultDiagFormat")),
		f("multipleNonSurDiagnostics", "tag:205,implicit", seqOf(ref("DiagRec"))),
	))
	r.Define("NamePlusRecord", seq(
		f("name", "tag:0,implicit,optional", ref("DatabaseName")),
		f("record", "tag:1", ref("NamePlusRecord_record")),
	))
	r.Define("NamePlusRecord_record", choice(
		f("retrievalRecord", "tag:1", schema.External),
		f("surrogateDiagnostic", "tag:2", ref("DiagRec")),
		f("startingFragment", "tag:3", ref("FragmentSyntax")),
		f("intermediateFragment", "tag:4", ref("FragmentSyntax")),
		f("finalFragment", "tag:5", ref("FragmentSyntax")),
	))
	r.Define("FragmentSyntax", choice(
		f("externallyTagged", "", schema.External),
		f("notExternallyTagged", "", schema.OctetString),
	))
	r.Define("Range", seq(
		f("startingPosition", "tag:1,implicit", schema.Integer),
		f("numberOfRecords", "tag:2,implicit", schema.Integer),
	))
	r.Define("ElementSetNames", choice(
		f("genericElementSetName", "tag:0,implicit", schema.InternationalString),
		f("databaseSpecific", "tag:1,implicit", seqOf(ref("ElementSetNames_databaseSpecific"))),
	))
	r.Define("ElementSetNames_databaseSpecific", seq(
		f("dbName", "", ref("DatabaseName")),
		f("esn", "", ref("ElementSetName")),
	))
	r.Define("PresentStatus", schema.ImplicitTag(27, schema.Integer))

	r.Define("CompSpec", seq(
		f("selectAlternativeSyntax", "tag:1,implicit", schema.Boolean),
		f("generic", "tag:2,implicit,optional", ref("Specification")),
		f("dbSpecific", "tag:3,implicit,optional", seqOf(ref("CompSpec_dbSpecific"))),
		f("recordSyntax", "tag:4,implicit,optional", seqOf(schema.ObjectIdentifier)),
	))
	r.Define("CompSpec_dbSpecific", seq(
		f("db", "tag:1", ref("DatabaseName")),
		f("spec", "tag:2,implicit", ref("Specification")),
	))
	r.Define("Specification", seq(
		f("schema", "tag:1,implicit,optional", schema.ObjectIdentifier),
		f("elementSpec", "tag:2,optional", ref("Specification_elementSpec")),
	))
	r.Define("Specification_elementSpec", choice(
		f("elementSetName", "tag:1,implicit", schema.InternationalString),
		f("externalEspec", "tag:2,implicit", schema.External),
	))
}

//endregion

//region Diagnostics

func defineDiagnostics(r *schema.Registry) {
	r.Define("DiagRec", choice(
		f("defaultFormat", "", ref("DefaultDiagFormat")),
		f("externallyDefined", "", schema.External),
	))
	r.Define("DefaultDiagFormat", seq(
		f("diagnosticSetId", "", schema.ObjectIdentifier),
		f("condition", "", schema.Integer),
		f("addinfo", "", ref("DefaultDiagFormat_addinfo")),
	))
	r.Define("DefaultDiagFormat_addinfo", choice(
		f("v2Addinfo", "", schema.VisibleString),
		f("v3Addinfo", "", schema.InternationalString),
	))
}

//endregion
