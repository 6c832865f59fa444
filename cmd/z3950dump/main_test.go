// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"codello.dev/z3950/tlv"
)

// execute runs the command tree with the given arguments and standard input.
func execute(t *testing.T, log *zap.Logger, stdin string, args ...string) (string, error) {
	t.Helper()
	if log == nil {
		log = zaptest.NewLogger(t)
	}
	cmd := newRootCmd(log)
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecode(t *testing.T) {
	tests := map[string]struct {
		stdin string
		args  []string
		want  string
	}{
		"HexPDU": {"BA 04 9F 20\n01 01", []string{"decode", "--hex"},
			"# - @0\nPDU {\n  deleteResultSetRequest: DeleteResultSetRequest {\n    deleteFunction: 1\n  }\n}\n"},
		"Type": {"30 03 83 01 00", []string{"decode", "--hex", "--type", "SortResponse"},
			"# - @0\nSortResponse {\n  sortStatus: 0\n}\n"},
		"Frames": {"9F 81 57 01 2A 9F 2D 01 78", []string{"decode", "--hex", "-t", "Term"},
			"# - @0\nTerm {\n  numeric: 42\n}\n# - @5\nTerm {\n  general: '78'H\n}\n"},
		"Charset": {"9F 81 58 01 E9", []string{"decode", "--hex", "-t", "Term", "--charset", "ISO-8859-1"},
			"# - @0\nTerm {\n  characterString: \"é\"\n}\n"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := execute(t, nil, tc.stdin, tc.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Execute() output = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDecode_Files(t *testing.T) {
	good := writeFile(t, "good.ber", []byte{0x30, 0x03, 0x83, 0x01, 0x00})
	bad := writeFile(t, "bad.ber", []byte{0x30, 0x03, 0x84, 0x01, 0x00})
	core, logs := observer.New(zap.ErrorLevel)

	got, err := execute(t, zap.New(core), "", "decode", "-t", "SortResponse", "-j", "2", bad, good)
	if err == nil {
		t.Fatalf("Execute() succeeded with malformed input")
	}
	want := "# " + bad + " @0\n# " + good + " @0\nSortResponse {\n  sortStatus: 0\n}\n"
	if got != want {
		t.Errorf("Execute() output = %q, want %q", got, want)
	}
	entries := logs.FilterField(zap.String("file", bad)).All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries for %s, want 1", len(entries), bad)
	}
	fields := entries[0].ContextMap()
	if fields["schema"] != "SortResponse" || fields["field"] != "sortStatus" {
		t.Errorf("logged fields %v, want schema SortResponse and field sortStatus", fields)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := map[string]struct {
		stdin string
		args  []string
	}{
		"UnknownType":    {"", []string{"decode", "-t", "Nope"}},
		"UnknownCharset": {"", []string{"decode", "--charset", "no-such-charset"}},
		"InvalidHex":     {"zz", []string{"decode", "--hex"}},
		"Truncated":      {"BA 04 9F", []string{"decode", "--hex"}},
		"TooDeep":        {"BA 04 9F 20 01 01", []string{"decode", "--hex", "--max-depth", "1"}},
		"Jobs":           {"", []string{"decode", "--jobs", "0"}},
		"MissingFile":    {"", []string{"decode", filepath.Join(t.TempDir(), "missing")}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := execute(t, zap.NewNop(), tc.stdin, tc.args...); err == nil {
				t.Errorf("Execute() succeeded, want error")
			}
		})
	}
}

func TestTree(t *testing.T) {
	data := []byte{0x30, 0x03, 0x02, 0x01, 0x15}
	n, err := tlv.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	got, err := execute(t, nil, "", "tree", writeFile(t, "x.ber", data))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasSuffix(got, " @0\n"+n.String()) {
		t.Errorf("Execute() output = %q, want tree %q", got, n.String())
	}
}

func TestTypes(t *testing.T) {
	got, err := execute(t, nil, "", "types")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"PDU", "SearchRequest", "RPNStructure_rpnRpnOp"} {
		if !strings.Contains(got, want) {
			t.Errorf("types output does not contain %s", want)
		}
	}

	got, err = execute(t, nil, "", "types", "Close", "ReferenceId")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"Close ::= SEQUENCE", "closeReason", "OPTIONAL", "ReferenceId ::= [2] IMPLICIT OCTET STRING"} {
		if !strings.Contains(got, want) {
			t.Errorf("types output %q does not contain %q", got, want)
		}
	}

	if _, err = execute(t, nil, "", "types", "Nope"); err == nil {
		t.Errorf("types Nope succeeded, want error")
	}
}
