// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apdu

import (
	"codello.dev/z3950"
)

//go:generate go tool stringer -type=CloseReason,PresentStatus -linecomment -output=values_string.go

// Values of the deleteFunction field of a DeleteResultSetRequest.
const (
	DeleteList int64 = 0
	DeleteAll  int64 = 1
)

// Values of the sortStatus field of a SortResponse.
const (
	SortSuccess  int64 = 0
	SortPartial1 int64 = 1
	SortFailure  int64 = 2
)

// A CloseReason is a value of the closeReason field of a Close APDU.
type CloseReason int64

const (
	Finished          CloseReason = iota // finished
	Shutdown                             // shutdown
	SystemProblem                        // systemProblem
	CostLimit                            // costLimit
	Resources                            // resources
	SecurityViolation                    // securityViolation
	ProtocolError                        // protocolError
	LackOfActivity                       // lackOfActivity
	PeerAbort                            // peerAbort
	Unspecified                          // unspecified
)

// A PresentStatus is a value of the presentStatus field of a SearchResponse
// or PresentResponse.
type PresentStatus int64

const (
	PresentSuccess  PresentStatus = iota // success
	PresentPartial1                      // partial-1
	PresentPartial2                      // partial-2
	PresentPartial3                      // partial-3
	PresentPartial4                      // partial-4
	PresentFailure                       // failure
)

// An Option is a service that can be negotiated in the options field of an
// initialization APDU.
type Option int

const (
	OptionSearch Option = iota
	OptionPresent
	OptionDeleteSet
	OptionResourceReport
	OptionTriggerResourceControl
	OptionResourceControl
	OptionAccessControl
	OptionScan
	OptionSort
	_ // reserved
	OptionExtendedServices
	OptionLevel1Segmentation
	OptionLevel2Segmentation
	OptionConcurrentOperations
	OptionNamedResultSets
)

// Options returns the value of the options field of an initialization APDU
// with the given options set.
func Options(opts ...Option) z3950.BitString {
	bits := make([]int, len(opts))
	for i, o := range opts {
		bits[i] = int(o)
	}
	return bitString(bits)
}

// ProtocolVersion returns the value of the protocolVersion field of an
// initialization APDU announcing the given protocol versions (1, 2 or 3).
func ProtocolVersion(versions ...int) z3950.BitString {
	bits := make([]int, len(versions))
	for i, v := range versions {
		bits[i] = v - 1
	}
	return bitString(bits)
}

// bitString returns a bit string just long enough to hold the given bits.
func bitString(bits []int) z3950.BitString {
	n := 0
	for _, b := range bits {
		n = max(n, b+1)
	}
	return z3950.NewBitString(n, bits...)
}
