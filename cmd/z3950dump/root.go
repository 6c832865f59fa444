// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"codello.dev/z3950/apdu"
	"codello.dev/z3950/schema"
	"codello.dev/z3950/tlv"
)

// options holds the values of the persistent flags.
type options struct {
	maxDepth int
	maxSize  int
	hexInput bool
	jobs     int
	verbose  bool

	log *zap.Logger
}

// newRootCmd creates the command tree. If log is nil, a logger is created
// according to the --verbose flag.
func newRootCmd(log *zap.Logger) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "z3950dump",
		Short: "Inspect BER encoded Z39.50 protocol data units",
		Long: `z3950dump decodes Z39.50 protocol data units (APDUs) encoded with the Basic
Encoding Rules. Each input may contain several data values back to back.`,
		Example: `  # Decode all APDUs of a captured session
  z3950dump decode session.ber

  # Decode a hex dump from standard input
  echo "BA 04 9F 20 01 01" | z3950dump decode --hex

  # Show the TLV structure of a file
  z3950dump tree record.ber`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.jobs < 1 {
				return fmt.Errorf("invalid --jobs %d: must be positive", opts.jobs)
			}
			if log != nil {
				opts.log = log
				return nil
			}
			var err error
			opts.log, err = newLogger(opts.verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.log.Sync()
		},
	}

	flags := cmd.PersistentFlags()
	flags.IntVar(&opts.maxDepth, "max-depth", apdu.DefaultMaxDepth, "maximum nesting depth of data values (0 for no limit)")
	flags.IntVar(&opts.maxSize, "max-size", apdu.DefaultMaxSize, "maximum size of a data value in bytes (0 for no limit)")
	flags.BoolVar(&opts.hexInput, "hex", false, "inputs are hex dumps instead of binary data")
	flags.IntVarP(&opts.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of inputs processed concurrently")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable development logging")

	cmd.AddCommand(newDecodeCmd(opts), newTreeCmd(opts), newTypesCmd())
	return cmd
}

// newLogger returns a production logger, or a development logger if verbose is
// set.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// frameFunc handles the data value n found at offset off of an input. Output
// is written to w.
type frameFunc func(w io.Writer, off int64, n *tlv.Node) error

// run calls fn for every data value of every input. Inputs are processed
// concurrently, their output is written in the order of inputs. Inputs that
// fail are logged and reported in the returned error. The name "-" denotes
// standard input, which is also used if no inputs are given.
func (o *options) run(cmd *cobra.Command, inputs []string, fn frameFunc) error {
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	results := make([]strings.Builder, len(inputs))
	var failed atomic.Int32
	g := new(errgroup.Group)
	g.SetLimit(o.jobs)
	for i, name := range inputs {
		g.Go(func() error {
			w := &results[i]
			if err := o.frames(cmd, name, w, fn); err != nil {
				failed.Add(1)
				o.logFailure(name, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	out := cmd.OutOrStdout()
	for i := range results {
		if _, err := io.WriteString(out, results[i].String()); err != nil {
			return err
		}
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d inputs failed", n, len(inputs))
	}
	return nil
}

// frames calls fn for each data value of the named input.
func (o *options) frames(cmd *cobra.Command, name string, w io.Writer, fn frameFunc) error {
	data, err := o.readInput(cmd, name)
	if err != nil {
		return err
	}
	r := tlv.NewReader(bytes.NewReader(data))
	r.MaxDepth = o.maxDepth
	r.MaxSize = o.maxSize
	for {
		off := r.InputOffset()
		n, err := r.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return fmt.Errorf("data value at offset %d: %w", off, err)
		}
		fmt.Fprintf(w, "# %s @%d\n", name, off)
		if err = fn(w, off, n); err != nil {
			return fmt.Errorf("data value at offset %d: %w", off, err)
		}
		o.log.Debug("processed data value",
			zap.String("file", name),
			zap.Int64("offset", off),
			zap.Int("size", n.Size()))
	}
}

// readInput returns the contents of the named input.
func (o *options) readInput(cmd *cobra.Command, name string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil || !o.hexInput {
		return data, err
	}
	return hex.DecodeString(strings.Join(strings.Fields(string(data)), ""))
}

// logFailure logs that the named input could not be processed.
func (o *options) logFailure(name string, err error) {
	fields := []zap.Field{zap.String("file", name), zap.Error(err)}
	var (
		dErr *schema.DecodeError
		sErr *tlv.SyntaxError
	)
	if errors.As(err, &dErr) {
		fields = append(fields,
			zap.String("schema", dErr.Schema),
			zap.String("field", dErr.Field),
			zap.Int("offset", dErr.Offset))
	} else if errors.As(err, &sErr) {
		fields = append(fields, zap.Int("offset", sErr.ByteOffset))
	}
	o.log.Error("cannot process input", fields...)
}
