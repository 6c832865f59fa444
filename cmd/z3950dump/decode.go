// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"codello.dev/z3950/apdu"
	"codello.dev/z3950/schema"
	"codello.dev/z3950/tlv"
)

func newDecodeCmd(opts *options) *cobra.Command {
	var typeName, charset string
	cmd := &cobra.Command{
		Use:   "decode [file...]",
		Short: "Decode data values as values of a catalog type",
		Example: `  # Decode a SearchRequest without the PDU wrapper
  z3950dump decode --type SearchRequest request.ber

  # Show InternationalString values sent in Latin-1
  z3950dump decode --charset ISO-8859-1 session.ber`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := apdu.Registry().Lookup(typeName)
			if !ok {
				return fmt.Errorf("unknown type %q", typeName)
			}
			var enc encoding.Encoding
			if charset != "" {
				var err error
				if enc, err = lookupCharset(charset); err != nil {
					return err
				}
			}
			codec := apdu.NewCodec(opts.maxDepth, opts.maxSize)
			return opts.run(cmd, args, func(w io.Writer, off int64, n *tlv.Node) error {
				v, err := codec.DecodeNode(t, n)
				if err != nil {
					return err
				}
				if enc != nil {
					v = transcode(v, enc.NewDecoder())
				}
				_, err = fmt.Fprintln(w, v)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "PDU", "catalog type of the data values")
	cmd.Flags().StringVar(&charset, "charset", "", "IANA name of the character set used by InternationalString values")
	return cmd
}

// lookupCharset returns the encoding registered under the IANA name.
func lookupCharset(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown character set %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported character set %q", name)
	}
	return enc, nil
}

// transcode converts the strings in v from the character set of dec to UTF-8.
// Messages are rebuilt with the converted values. Strings that cannot be
// converted are kept.
func transcode(v any, dec *encoding.Decoder) any {
	switch v := v.(type) {
	case string:
		if s, err := dec.String(v); err == nil {
			return s
		}
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = transcode(elem, dec)
		}
		return out
	case *schema.Message:
		fields := make([]schema.FieldValue, 0, v.Len())
		for name, fv := range v.All() {
			fields = append(fields, schema.FieldValue{Name: name, Value: transcode(fv, dec)})
		}
		if m, err := schema.NewMessage(v.Type(), fields...); err == nil {
			return m
		}
	}
	return v
}
