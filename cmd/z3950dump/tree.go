// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/spf13/cobra"

	"codello.dev/z3950/tlv"
)

func newTreeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tree [file...]",
		Short: "Print the TLV structure of data values",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args, func(w io.Writer, _ int64, n *tlv.Node) error {
				_, err := io.WriteString(w, n.String())
				return err
			})
		},
	}
}
