// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command z3950dump inspects BER encoded Z39.50 protocol data units.
//
// Inputs are files containing one or more data values back to back, as
// captured from a Z39.50 association. The decode command decodes each value
// against a type of the Z39-50-APDU-1995 module (PDU by default), the tree
// command prints the TLV structure without interpreting it, and the types
// command lists the types of the module.
//
//	z3950dump decode session.ber
//	echo "BA 04 9F 20 01 01" | z3950dump decode --hex
//	z3950dump types SearchRequest
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(nil).Execute(); err != nil {
		os.Exit(1)
	}
}
