// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package apdu_test

import (
	"fmt"

	"codello.dev/z3950/apdu"
)

func Example() {
	m := apdu.Build("DeleteResultSetRequest").
		Set("deleteFunction", apdu.DeleteAll).
		MustMessage()
	p, _ := apdu.PDU(m)
	b, _ := apdu.Encode(p)
	fmt.Printf("% X\n", b)

	d, _ := apdu.DecodePDU(b)
	name, v := d.Choice()
	fmt.Println(name)
	fmt.Println(v)
	// Output:
	// BA 04 9F 20 01 01
	// deleteResultSetRequest
	// DeleteResultSetRequest {
	//   deleteFunction: 1
	// }
}
