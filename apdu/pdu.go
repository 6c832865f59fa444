// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apdu

import (
	"codello.dev/z3950/schema"
)

// pduAlternatives maps APDU type names to the PDU alternative carrying them.
var pduAlternatives = func() map[string]string {
	t, _ := registry.Lookup("PDU")
	names := make(map[string]string)
	for _, alt := range t.(*schema.Choice).Alternatives {
		if tt, ok := alt.Type.(*schema.Tagged); ok {
			if r, ok := tt.Type.(schema.Ref); ok {
				names[string(r)] = alt.Name
			}
		}
	}
	return names
}()

func definePDU(r *schema.Registry) {
	r.Define("PDU", choice(
		f("initRequest", "tag:20,implicit", ref("InitializeRequest")),
		f("initResponse", "tag:21,implicit", ref("InitializeResponse")),
		f("searchRequest", "tag:22,implicit", ref("SearchRequest")),
		f("searchResponse", "tag:23,implicit", ref("SearchResponse")),
		f("presentRequest", "tag:24,implicit", ref("PresentRequest")),
		f("presentResponse", "tag:25,implicit", ref("PresentResponse")),
		f("deleteResultSetRequest", "tag:26,implicit", ref("DeleteResultSetRequest")),
		f("deleteResultSetResponse", "tag:27,implicit", ref("DeleteResultSetResponse")),
		f("accessControlRequest", "tag:28,implicit", ref("AccessControlRequest")),
		f("accessControlResponse", "tag:29,implicit", ref("AccessControlResponse")),
		f("resourceControlRequest", "tag:30,implicit", ref("ResourceControlRequest")),
		f("resourceControlResponse", "tag:31,implicit", ref("ResourceControlResponse")),
		f("triggerResourceControlRequest", "tag:32,implicit", ref("TriggerResourceControlRequest")),
		f("resourceReportRequest", "tag:33,implicit", ref("ResourceReportRequest")),
		f("resourceReportResponse", "tag:34,implicit", ref("ResourceReportResponse")),
		f("scanRequest", "tag:35,implicit", ref("ScanRequest")),
		f("scanResponse", "tag:36,implicit", ref("ScanResponse")),
		// [37] through [42] are reserved
		f("sortRequest", "tag:43,implicit", ref("SortRequest")),
		f("sortResponse", "tag:44,implicit", ref("SortResponse")),
		f("segmentRequest", "tag:45,implicit", ref("Segment")),
		f("extendedServicesRequest", "tag:46,implicit", ref("ExtendedServicesRequest")),
		f("extendedServicesResponse", "tag:47,implicit", ref("ExtendedServicesResponse")),
		f("close", "tag:48,implicit", ref("Close")),
	))
}

//region Initialize

func defineInit(r *schema.Registry) {
	r.Define("InitializeRequest", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("protocolVersion", "", ref("ProtocolVersion")),
		f("options", "", ref("Options")),
		f("preferredMessageSize", "tag:5,implicit", schema.Integer),
		f("exceptionalRecordSize", "tag:6,implicit", schema.Integer),
		f("idAuthentication", "tag:7,optional", ref("IdAuthentication")),
		f("implementationId", "tag:110,implicit,optional", schema.InternationalString),
		f("implementationName", "tag:111,implicit,optional", schema.InternationalString),
		f("implementationVersion", "tag:112,implicit,optional", schema.InternationalString),
		f("userInformationField", "tag:11,optional", schema.External),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("IdAuthentication", choice(
		f("open", "", schema.VisibleString),
		f("idPass", "", ref("IdAuthentication_idPass")),
		f("anonymous", "", schema.Null),
		f("other", "", schema.External),
	))
	r.Define("IdAuthentication_idPass", seq(
		f("groupId", "tag:0,implicit,optional", schema.InternationalString),
		f("userId", "tag:1,implicit,optional", schema.InternationalString),
		f("password", "tag:2,implicit,optional", schema.InternationalString),
	))
	r.Define("ProtocolVersion", schema.ImplicitTag(3, schema.BitString))
	r.Define("Options", schema.ImplicitTag(4, schema.BitString))

	r.Define("InitializeResponse", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("protocolVersion", "", ref("ProtocolVersion")),
		f("options", "", ref("Options")),
		f("preferredMessageSize", "tag:5,implicit", schema.Integer),
		f("exceptionalRecordSize", "tag:6,implicit", schema.Integer),
		f("result", "tag:12,implicit", schema.Boolean),
		f("implementationId", "tag:110,implicit,optional", schema.InternationalString),
		f("implementationName", "tag:111,implicit,optional", schema.InternationalString),
		f("implementationVersion", "tag:112,implicit,optional", schema.InternationalString),
		f("userInformationField", "tag:11,optional", schema.External),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
}

//endregion

//region Close

func defineClose(r *schema.Registry) {
	r.Define("Close", seq(
		f("referenceId", "optional", ref("ReferenceId")),
		f("closeReason", "", ref("CloseReason")),
		f("diagnosticInformation", "tag:3,implicit,optional", schema.InternationalString),
		f("resourceReportFormat", "tag:4,implicit,optional", ref("ResourceReportId")),
		f("resourceReport", "tag:5,optional", ref("ResourceReport")),
		f("otherInfo", "optional", ref("OtherInformation")),
	))
	r.Define("CloseReason", schema.ImplicitTag(211, schema.Integer))
}

//endregion
