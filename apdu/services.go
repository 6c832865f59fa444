// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apdu

import (
	"codello.dev/z3950/schema"
)

func defineServices(r *schema.Registry) {
	defineDelete(r)
	defineAccessControl(r)
	defineResourceControl(r)
	defineExtendedServices(r)
}

//region Delete Result Set

func defineDelete(r *schema.Registry) {
	r.Define("DeleteResultSetRequest", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("deleteFunction", "tag:32,implicit", schema.Integer),
		f("resultSetList", "optional", seqOf(ref("ResultSetId"))),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("DeleteResultSetResponse", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("deleteOperationStatus", "tag:0,implicit", ref("DeleteSetStatus")),
		f("deleteListStatuses", "tag:1,implicit,optional", ref("ListStatuses")),
		f("numberNotDeleted", "tag:34,implicit,optional", schema.Integer),
		f("bulkStatuses", "tag:35,implicit,optional", ref("ListStatuses")),
		f("deleteMessage", "tag:36,implicit,optional", schema.InternationalString),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("ListStatuses", seqOf(ref("ListStatuses_item")))
	r.Define("ListStatuses_item", seq(
		f("id", "", ref("ResultSetId")),
		f("status", "", ref("DeleteSetStatus")),
	))
	r.Define("DeleteSetStatus", schema.ImplicitTag(33, schema.Integer))
}

//endregion

//region Access Control

func defineAccessControl(r *schema.Registry) {
	r.Define("AccessControlRequest", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("securityChallenge", "", ref("AccessControlRequest_securityChallenge")),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("AccessControlRequest_securityChallenge", choice(
		f("simpleForm", "tag:37,implicit", schema.OctetString),
		f("externallyDefined", "tag:0", schema.External),
	))
	r.Define("AccessControlResponse", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("securityChallengeResponse", "optional", ref("AccessControlResponse_securityChallengeResponse")),
		f("diagnostic", "tag:223,optional", ref("DiagRec")),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("AccessControlResponse_securityChallengeResponse", choice(
		f("simpleForm", "tag:38,implicit", schema.OctetString),
		f("externallyDefined", "tag:0", schema.External),
	))
}

//endregion

//region Resource Control

func defineResourceControl(r *schema.Registry) {
	r.Define("ResourceControlRequest", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("suspendedFlag", "tag:39,implicit,optional", schema.Boolean),
		f("resourceReport", "tag:40,optional", ref("ResourceReport")),
		f("partialResultsAvailable", "tag:41,implicit,optional", schema.Integer),
		f("responseRequired", "tag:42,implicit", schema.Boolean),
		f("triggeredRequestFlag", "tag:43,implicit,optional", schema.Boolean),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("ResourceControlResponse", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("continueFlag", "tag:44,implicit", schema.Boolean),
		f("resultSetWanted", "tag:45,implicit,optional", schema.Boolean),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("TriggerResourceControlRequest", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("requestedAction", "tag:46,implicit", schema.Integer),
		f("prefResourceReportFormat", "tag:47,implicit,optional", ref("ResourceReportId")),
		f("resultSetWanted", "tag:48,implicit,optional", schema.Boolean),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("ResourceReportRequest", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("opId", "tag:210,implicit,optional", ref("ReferenceId")),
		f("prefResourceReportFormat", "tag:49,implicit,optional", ref("ResourceReportId")),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("ResourceReportResponse", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("resourceReportStatus", "tag:50,implicit", schema.Integer),
		f("resourceReport", "tag:51,optional", ref("ResourceReport")),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("ResourceReport", schema.External)
	r.Define("ResourceReportId", schema.ObjectIdentifier)
}

//endregion

//region Extended Services

func defineExtendedServices(r *schema.Registry) {
	r.Define("ExtendedServicesRequest", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("function", "tag:3,implicit", schema.Integer),
		f("packageType", "tag:4,implicit", schema.ObjectIdentifier),
		f("packageName", "tag:5,implicit,optional", schema.InternationalString),
		f("userId", "tag:6,implicit,optional", schema.InternationalString),
		f("retentionTime", "tag:7,implicit,optional", ref("IntUnit")),
		f("permissions", "tag:8,implicit,optional", ref("Permissions")),
		f("description", "tag:9,implicit,optional", schema.InternationalString),
		f("taskSpecificParameters", "tag:10,implicit,optional", schema.External),
		f("waitAction", "tag:11,implicit", schema.Integer),
		f("elements", "optional", ref("ElementSetName")),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("Permissions", seqOf(ref("Permissions_item")))
	r.Define("Permissions_item", seq(
		f("userId", "tag:1,implicit", schema.InternationalString),
		f("allowableFunctions", "tag:2,implicit", seqOf(schema.Integer)),
	))
	r.Define("ExtendedServicesResponse", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("operationStatus", "tag:3,implicit", schema.Integer),
		f("diagnostics", "tag:4,implicit,optional", seqOf(ref("DiagRec"))),
		f("taskPackage", "tag:5,implicit,optional", schema.External),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
}

//endregion
