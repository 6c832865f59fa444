// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"codello.dev/z3950/apdu"
	"codello.dev/z3950/schema"
)

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types [name...]",
		Short: "List the types of the APDU catalog",
		Long: `Without arguments types lists all types of the Z39-50-APDU-1995 module. With
arguments the definitions of the named types are shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if len(args) == 0 {
				for _, name := range apdu.Registry().Names() {
					t, _ := apdu.Registry().Lookup(name)
					fmt.Fprintf(w, "%s\t%s\n", name, t.Kind())
				}
				return w.Flush()
			}
			for _, name := range args {
				t, ok := apdu.Registry().Lookup(name)
				if !ok {
					return fmt.Errorf("unknown type %q", name)
				}
				describe(w, name, t)
			}
			return w.Flush()
		},
	}
}

// describe writes the definition of the named type t to w.
func describe(w io.Writer, name string, t schema.Type) {
	fmt.Fprintf(w, "%s ::= ", name)
	for {
		tt, ok := t.(*schema.Tagged)
		if !ok {
			break
		}
		fmt.Fprintf(w, "%s %s ", tt.Tag, strings.ToUpper(tt.Mode.String()))
		t = tt.Type
	}
	var fields []schema.Field
	switch t := t.(type) {
	case *schema.Sequence:
		fmt.Fprintln(w, "SEQUENCE")
		fields = t.Fields
	case *schema.Choice:
		fmt.Fprintln(w, "CHOICE")
		fields = t.Alternatives
	default:
		fmt.Fprintln(w, t)
	}
	for _, f := range fields {
		opt := ""
		if f.Optional {
			opt = "OPTIONAL"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", f.Name, f.Type, opt)
	}
}
