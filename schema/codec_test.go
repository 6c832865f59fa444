// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"codello.dev/z3950"
	"codello.dev/z3950/ber"
	"codello.dev/z3950/tlv"
)

// testRegistry contains a small set of types that use the same constructs as
// the Z39.50 protocol.
var testRegistry = func() *Registry {
	r := NewRegistry()
	r.Define("ReferenceId", ImplicitTag(2, OctetString))
	r.Define("Request", &Sequence{Fields: []Field{
		F("referenceId", "optional", Ref("ReferenceId")),
		F("function", "tag:45,implicit", Integer),
		F("names", "tag:32,implicit,optional", &SequenceOf{Elem: InternationalString}),
		F("info", "optional", Ref("Info")),
	}})
	r.Define("Info", &Choice{Alternatives: []Field{
		F("text", "", InternationalString),
		F("code", "", Integer),
	}})
	r.Define("Term", &Choice{Alternatives: []Field{
		F("general", "tag:45,implicit", OctetString),
		F("numeric", "tag:215,implicit", Integer),
		F("null", "tag:216,implicit", Null),
	}})
	r.Define("Result", &Sequence{Fields: []Field{
		F("status", "tag:1", Boolean),
		F("info", "tag:5,implicit,optional", Ref("Info")),
		F("extra", "optional", Any),
	}})
	r.Define("Expr", &Choice{Alternatives: []Field{
		F("leaf", "tag:0,implicit", Integer),
		F("pair", "tag:1,implicit", Ref("Pair")),
	}})
	r.Define("Pair", &Sequence{Fields: []Field{
		F("left", "", Ref("Expr")),
		F("right", "", Ref("Expr")),
	}})
	if err := r.Validate(); err != nil {
		panic(err)
	}
	return r
}()

var testCodec = &Codec{Registry: testRegistry}

func build(name string, kv ...any) *Message {
	b := testRegistry.Build(name)
	for i := 0; i < len(kv); i += 2 {
		b.Set(kv[i].(string), kv[i+1])
	}
	return b.MustMessage()
}

func leaf(i int) *Message { return build("Expr", "leaf", i) }

func pair(l, r *Message) *Message {
	return build("Expr", "pair", build("Pair", "left", l, "right", r))
}

func TestCodec_RoundTrip(t *testing.T) {
	tests := map[string]struct {
		typ  string
		msg  *Message
		data []byte
	}{
		"Minimal": {"Request", build("Request", "function", 1),
			[]byte{0x30, 0x04, 0x9F, 0x2D, 0x01, 0x01}},
		"AllFields": {"Request", build("Request",
			"referenceId", []byte("ab"),
			"function", 1,
			"names", []any{"x", "yz"},
			"info", build("Info", "text", "hi")),
			[]byte{0x30, 0x16,
				0x82, 0x02, 0x61, 0x62,
				0x9F, 0x2D, 0x01, 0x01,
				0xBF, 0x20, 0x07, 0x1B, 0x01, 0x78, 0x1B, 0x02, 0x79, 0x7A,
				0x1B, 0x02, 0x68, 0x69}},
		"UntaggedOptionalChoice": {"Request", build("Request", "function", 1, "info", build("Info", "code", 7)),
			[]byte{0x30, 0x07, 0x9F, 0x2D, 0x01, 0x01, 0x02, 0x01, 0x07}},
		"EmptySequenceOf": {"Request", build("Request", "function", -1, "names", []any{}),
			[]byte{0x30, 0x07, 0x9F, 0x2D, 0x01, 0xFF, 0xBF, 0x20, 0x00}},
		"ChoiceNumeric": {"Term", build("Term", "numeric", 42),
			[]byte{0x9F, 0x81, 0x57, 0x01, 0x2A}},
		"ChoiceGeneral": {"Term", build("Term", "general", []byte("abc")),
			[]byte{0x9F, 0x2D, 0x03, 0x61, 0x62, 0x63}},
		"ChoiceNull": {"Term", build("Term", "null", z3950.Null{}),
			[]byte{0x9F, 0x81, 0x58, 0x00}},
		"Explicit": {"Result", build("Result", "status", true),
			[]byte{0x30, 0x05, 0xA1, 0x03, 0x01, 0x01, 0xFF}},
		"ImplicitUntaggedChoice": {"Result", build("Result", "status", false, "info", build("Info", "code", 7)),
			[]byte{0x30, 0x0A, 0xA1, 0x03, 0x01, 0x01, 0x00, 0xA5, 0x03, 0x02, 0x01, 0x07}},
		"Any": {"Result", build("Result", "status", true, "extra", z3950.RawValue{Tag: z3950.Context(9), Bytes: []byte{0x01}}),
			[]byte{0x30, 0x08, 0xA1, 0x03, 0x01, 0x01, 0xFF, 0x89, 0x01, 0x01}},
		"Recursive": {"Expr", pair(leaf(1), pair(leaf(2), leaf(3))),
			[]byte{0xA1, 0x0B, 0x80, 0x01, 0x01, 0xA1, 0x06, 0x80, 0x01, 0x02, 0x80, 0x01, 0x03}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := testCodec.Encode(tc.msg)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if !bytes.Equal(data, tc.data) {
				t.Errorf("Encode() = % X, want % X", data, tc.data)
			}
			got, err := testCodec.Decode(tc.typ, tc.data)
			if err != nil {
				t.Fatalf("Decode(%q, % X) error = %v", tc.typ, tc.data, err)
			}
			if diff := cmp.Diff(tc.msg, got); diff != "" {
				t.Errorf("Decode(%q) mismatch (-want +got):\n%s", tc.typ, diff)
			}
		})
	}
}

func TestCodec_DecodeTermSelectsOneAlternative(t *testing.T) {
	m, err := testCodec.Decode("Term", []byte{0x9F, 0x81, 0x57, 0x01, 0x2A})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("Decode() has %d alternatives, want 1", m.Len())
	}
	if name, v := m.Choice(); name != "numeric" || v != int64(42) {
		t.Errorf("Choice() = %s, %v, want numeric, 42", name, v)
	}
	for _, name := range []string{"general", "null"} {
		if m.Has(name) {
			t.Errorf("Has(%q) = true, want false", name)
		}
	}
}

func TestCodec_DecodeError(t *testing.T) {
	tests := map[string]struct {
		typ     string
		data    []byte
		wantErr error
		schema  string
		field   string
		offset  int
	}{
		"NotASequence": {"Request", []byte{0x10, 0x00},
			ErrNotASequence, "Request", "", 0},
		"MissingAtEnd": {"Request", []byte{0x30, 0x04, 0x82, 0x02, 0x61, 0x62},
			ErrMissingMandatoryField, "Request", "function", 0},
		"MandatoryTagMismatch": {"Request", []byte{0x30, 0x03, 0x02, 0x01, 0x01},
			ErrMissingMandatoryField, "Request", "function", 2},
		"ExtraData": {"Request", []byte{0x30, 0x06, 0x9F, 0x2D, 0x01, 0x01, 0x04, 0x00},
			ErrExtraData, "Request", "", 6},
		"MalformedInteger": {"Request", []byte{0x30, 0x03, 0x9F, 0x2D, 0x00},
			ber.ErrMalformedPrimitive, "Request", "function", 2},
		"ElementTagMismatch": {"Request", []byte{0x30, 0x0A, 0x9F, 0x2D, 0x01, 0x01, 0xBF, 0x20, 0x03, 0x02, 0x01, 0x01},
			ErrTagMismatch, "Request", "names", 9},
		"ChoiceNotMatched": {"Term", []byte{0x80, 0x00},
			ErrChoiceNotMatched, "Term", "", 0},
		"TaggedAlternativeFails": {"Term", []byte{0x9F, 0x81, 0x57, 0x00},
			ber.ErrMalformedPrimitive, "Term", "numeric", 0},
		"EmptyExplicitWrapper": {"Result", []byte{0x30, 0x02, 0xA1, 0x00},
			ErrBadExplicitWrapper, "Result", "status", 2},
		"PrimitiveExplicitWrapper": {"Result", []byte{0x30, 0x03, 0x81, 0x01, 0xFF},
			ErrBadExplicitWrapper, "Result", "status", 2},
		"TopLevelTagMismatch": {"Request", []byte{0x31, 0x00},
			ErrTagMismatch, "", "", 0},
		"UnknownType": {"Nope", []byte{0x05, 0x00},
			ErrUnknownType, "", "", -1},
		"Truncated": {"Request", []byte{0x30, 0x04, 0x9F, 0x2D, 0x01},
			tlv.ErrTruncatedInput, "", "", 0},
		"TrailingData": {"Request", []byte{0x30, 0x04, 0x9F, 0x2D, 0x01, 0x01, 0x00},
			tlv.ErrTrailingData, "", "", 6},
		"IndefiniteLength": {"Request", []byte{0x30, 0x80, 0x9F, 0x2D, 0x01, 0x01, 0x00, 0x00},
			tlv.ErrIndefiniteLength, "", "", 0},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := testCodec.Decode(tc.typ, tc.data)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Decode(%q, % X) error = %v, want %v", tc.typ, tc.data, err, tc.wantErr)
			}
			var dErr *DecodeError
			if !errors.As(err, &dErr) {
				t.Fatalf("Decode() error = %T, want *DecodeError", err)
			}
			if dErr.Schema != tc.schema || dErr.Field != tc.field || dErr.Offset != tc.offset {
				t.Errorf("Decode() error location = %s.%s@%d, want %s.%s@%d",
					dErr.Schema, dErr.Field, dErr.Offset, tc.schema, tc.field, tc.offset)
			}
		})
	}
}

func TestCodec_DecodeExtraDataCounts(t *testing.T) {
	_, err := testCodec.Decode("Request", []byte{0x30, 0x08, 0x9F, 0x2D, 0x01, 0x01, 0x04, 0x00, 0x04, 0x00})
	var eErr *ExtraDataError
	if !errors.As(err, &eErr) {
		t.Fatalf("Decode() error = %v, want *ExtraDataError", err)
	}
	if eErr.Consumed != 1 || eErr.Total != 3 {
		t.Errorf("ExtraDataError = %d/%d, want 1/3", eErr.Consumed, eErr.Total)
	}
}

func TestCodec_EncodeError(t *testing.T) {
	tests := map[string]struct {
		msg     *Message
		wantErr error
		schema  string
		field   string
	}{
		"ChoiceNotSet":      {build("Term"), ErrChoiceNotSet, "Term", ""},
		"ChoiceMultiplySet": {build("Term", "general", []byte("a"), "numeric", 1), ErrChoiceMultiplySet, "Term", ""},
		"MissingMandatory":  {build("Request"), ErrMissingMandatoryField, "Request", "function"},
		"WrongPrimitive":    {build("Request", "function", "one"), ErrTypeMismatch, "Request", "function"},
		"WrongMessage":      {build("Result", "status", true, "info", build("Term", "numeric", 1)), ErrTypeMismatch, "Result", "info"},
		"NotASlice":         {build("Request", "function", 1, "names", "x"), ErrTypeMismatch, "Request", "names"},
		"NestedChoice":      {build("Request", "function", 1, "info", build("Info")), ErrChoiceNotSet, "Info", ""},
		"InvalidValue": {build("Result", "status", true, "extra", z3950.RawValue{Tag: z3950.Context(1), Constructed: true, Bytes: []byte{0x02}}),
			ErrInvalidValue, "Result", "extra"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := testCodec.Encode(tc.msg)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Encode() error = %v, want %v", err, tc.wantErr)
			}
			var eErr *EncodeError
			if !errors.As(err, &eErr) {
				t.Fatalf("Encode() error = %T, want *EncodeError", err)
			}
			if eErr.Schema != tc.schema || eErr.Field != tc.field {
				t.Errorf("Encode() error location = %s.%s, want %s.%s", eErr.Schema, eErr.Field, tc.schema, tc.field)
			}
		})
	}
}

func TestCodec_Limits(t *testing.T) {
	data := []byte{0xA1, 0x0B, 0x80, 0x01, 0x01, 0xA1, 0x06, 0x80, 0x01, 0x02, 0x80, 0x01, 0x03}
	tests := map[string]struct {
		codec   *Codec
		wantErr error
	}{
		"Unlimited": {&Codec{Registry: testRegistry}, nil},
		"Depth":     {&Codec{Registry: testRegistry, MaxDepth: 3}, nil},
		"TooDeep":   {&Codec{Registry: testRegistry, MaxDepth: 2}, tlv.ErrTooDeep},
		"Size":      {&Codec{Registry: testRegistry, MaxSize: len(data)}, nil},
		"TooLarge":  {&Codec{Registry: testRegistry, MaxSize: len(data) - 1}, tlv.ErrTooLarge},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tc.codec.Decode("Expr", data)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tc.wantErr)
			}
		})
	}

	c := &Codec{Registry: testRegistry, MaxSize: 4}
	if _, err := c.Encode(build("Request", "function", 1)); !errors.Is(err, tlv.ErrTooLarge) {
		t.Errorf("Encode() error = %v, want %v", err, tlv.ErrTooLarge)
	}
}

func TestCodec_DeepNesting(t *testing.T) {
	e := leaf(0)
	for i := range 2000 {
		e = pair(leaf(i), e)
	}
	c := &Codec{Registry: testRegistry}
	data, err := c.Encode(e)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := c.Decode("Expr", data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !e.Equal(got) {
		t.Errorf("Decode() returned a different value")
	}
}

func TestCodec_NonMinimalLength(t *testing.T) {
	data := []byte{0x30, 0x81, 0x05, 0x9F, 0x2D, 0x81, 0x01, 0x01}
	m, err := testCodec.Decode("Request", data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	got, err := testCodec.Encode(m)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := []byte{0x30, 0x04, 0x9F, 0x2D, 0x01, 0x01}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode() = % X, want % X", got, want)
	}
}

func TestCodec_Truncation(t *testing.T) {
	m := build("Request",
		"referenceId", []byte("ab"),
		"function", 1,
		"names", []any{"x", "yz"},
		"info", build("Info", "text", "hi"))
	data, err := testCodec.Encode(m)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	for i := range len(data) {
		_, err := testCodec.Decode("Request", data[:i])
		if !errors.Is(err, tlv.ErrTruncatedInput) && !errors.Is(err, tlv.ErrChildExceedsParent) {
			t.Errorf("Decode(data[:%d]) error = %v, want truncation error", i, err)
		}
	}
}

func TestCodec_Concurrent(t *testing.T) {
	want := pair(leaf(1), pair(leaf(2), leaf(3)))
	data, err := testCodec.Encode(want)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	var g errgroup.Group
	for range 32 {
		g.Go(func() error {
			got, err := testCodec.Decode("Expr", data)
			if err != nil {
				return err
			}
			if !got.Equal(want) {
				return errors.New("decoded message differs")
			}
			_, err = testCodec.Encode(got)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Error(err)
	}
}

func TestCodec_EncodeNamedTaggedType(t *testing.T) {
	r := NewRegistry()
	r.Define("Wrapped", ImplicitTag(7, &Sequence{Fields: []Field{
		F("value", "", Integer),
	}}))
	c := &Codec{Registry: r}
	m := r.Build("Wrapped").Set("value", 5).MustMessage()
	got, err := c.Encode(m)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := []byte{0xA7, 0x03, 0x02, 0x01, 0x05}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode() = % X, want % X", got, want)
	}
	dm, err := c.Decode("Wrapped", want)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !dm.Equal(m) {
		t.Errorf("Decode() = %v, want %v", dm, m)
	}
}

func TestCodec_DecodeValue(t *testing.T) {
	v, err := testCodec.DecodeValue(Ref("ReferenceId"), []byte{0x82, 0x01, 0x61})
	if err != nil {
		t.Fatalf("DecodeValue() error = %v", err)
	}
	if diff := cmp.Diff([]byte("a"), v); diff != "" {
		t.Errorf("DecodeValue() mismatch (-want +got):\n%s", diff)
	}
	if _, err = testCodec.Decode("ReferenceId", []byte{0x82, 0x01, 0x61}); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Decode() error = %v, want %v", err, ErrTypeMismatch)
	}
	data, err := testCodec.EncodeValue(&SequenceOf{Elem: Integer}, []int{1, 2})
	if err != nil {
		t.Fatalf("EncodeValue() error = %v", err)
	}
	want := []byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x02}
	if !bytes.Equal(data, want) {
		t.Errorf("EncodeValue() = % X, want % X", data, want)
	}
}
