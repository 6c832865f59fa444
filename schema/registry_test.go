// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"codello.dev/z3950/tlv"
)

func TestRegistry_Define(t *testing.T) {
	r := NewRegistry()
	seq := &Sequence{}
	r.Define("B", ImplicitTag(1, seq))
	r.Define("A", Integer)
	if seq.Name != "B" {
		t.Errorf("Define() did not name the sequence, got %q", seq.Name)
	}
	if got := r.Names(); !slices.Equal(got, []string{"B", "A"}) {
		t.Errorf("Names() = %v, want [B A]", got)
	}
	if _, ok := r.Lookup("C"); ok {
		t.Errorf("Lookup(C) = true, want false")
	}

	defer func() {
		if recover() == nil {
			t.Errorf("Define() did not panic on duplicate name")
		}
	}()
	r.Define("A", Boolean)
}

func TestRegistry_Validate(t *testing.T) {
	if err := testRegistry.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	r := NewRegistry()
	r.Define("Dangling", &Sequence{Fields: []Field{F("a", "", Ref("Missing"))}})
	r.Define("Clash", &Choice{Alternatives: []Field{
		F("a", "tag:1,implicit", Integer),
		F("b", "tag:1", Boolean),
	}})
	r.Define("Loop1", Ref("Loop2"))
	r.Define("Loop2", Ref("Loop1"))
	err := r.Validate()
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("Validate() error = %v, want %v", err, ErrUnknownType)
	}
	for _, want := range []string{"Dangling.a", "Clash", "Loop1"} {
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error = %v, want mention of %s", err, want)
		}
	}
	if _, err := r.Build("Loop1").Message(); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Build(Loop1) error = %v, want %v", err, ErrUnknownType)
	}
}

func TestRegistry_SelfReferencingChoice(t *testing.T) {
	r := NewRegistry()
	r.Define("Self", &Choice{Alternatives: []Field{F("self", "", Ref("Self"))}})
	c := &Codec{Registry: r}
	if _, err := c.Decode("Self", []byte{0x05, 0x00}); !errors.Is(err, tlv.ErrTooDeep) {
		t.Errorf("Decode() error = %v, want %v", err, tlv.ErrTooDeep)
	}

	// limit errors are not mistaken for an absent optional field
	r.Define("Holder", &Sequence{Fields: []Field{F("self", "optional", Ref("Self"))}})
	_, err := c.Decode("Holder", []byte{0x30, 0x02, 0x05, 0x00})
	if !errors.Is(err, tlv.ErrTooDeep) {
		t.Errorf("Decode() error = %v, want %v", err, tlv.ErrTooDeep)
	}
	var extra *ExtraDataError
	if errors.As(err, &extra) {
		t.Errorf("Decode() reported extra data: %v", err)
	}
}
