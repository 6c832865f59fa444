// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package z3950

import (
	"fmt"
	"testing"
	"time"
)

func ExampleNewBitString() {
	// Z39.50 protocol versions 2 and 3.
	v := NewBitString(3, 1, 2)
	fmt.Println(v)
	// Output: 011
}

func TestTag_String(t *testing.T) {
	tests := map[string]struct {
		tag  Tag
		want string
	}{
		"Context":     {Context(215), "[215]"},
		"Universal":   {Universal(TagSequence), "[UNIVERSAL 16]"},
		"Application": {Tag{ClassApplication, 3}, "[APPLICATION 3]"},
		"Private":     {Tag{ClassPrivate, 0}, "[PRIVATE 0]"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.tag.String(); got != tt.want {
				t.Errorf("Tag.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBitString(t *testing.T) {
	tests := map[string]struct {
		s     BitString
		valid bool
		want  string
	}{
		"Empty":      {BitString{}, true, ""},
		"Partial":    {BitString{[]byte{0xA0}, 3}, true, "101"},
		"FullBytes":  {BitString{[]byte{0xFF, 0x01}, 16}, true, "11111111 00000001"},
		"TooShort":   {BitString{[]byte{0xFF}, 9}, false, ""},
		"TooLong":    {BitString{[]byte{0xFF, 0x00}, 8}, false, ""},
		"NegBitSize": {BitString{nil, -1}, false, ""},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.s.IsValid(); got != tt.valid {
				t.Fatalf("BitString.IsValid() = %v, want %v", got, tt.valid)
			}
			if !tt.valid {
				return
			}
			if got := tt.s.String(); got != tt.want {
				t.Errorf("BitString.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBitString_Equal(t *testing.T) {
	a := BitString{[]byte{0xA0}, 3}
	b := BitString{[]byte{0xBF}, 3} // differs only in padding
	if !a.Equal(b) {
		t.Errorf("%v.Equal(%v) = false, want true", a, b)
	}
	c := BitString{[]byte{0xA0}, 4}
	if a.Equal(c) {
		t.Errorf("%v.Equal(%v) = true, want false", a, c)
	}
	if !NewBitString(8, 0, 7).Equal(BitString{[]byte{0x81}, 8}) {
		t.Errorf("NewBitString(8, 0, 7) != 0x81")
	}
}

func TestObjectIdentifier(t *testing.T) {
	tests := map[string]struct {
		s       string
		want    ObjectIdentifier
		wantErr bool
	}{
		"Bib1":       {"1.2.840.10003.3.1", ObjectIdentifier{1, 2, 840, 10003, 3, 1}, false},
		"JointISO":   {"2.999.3", ObjectIdentifier{2, 999, 3}, false},
		"SingleArc":  {"1", nil, true},
		"BadArc":     {"1.x", nil, true},
		"FirstArc":   {"3.1", nil, true},
		"SecondArc":  {"1.40", nil, true},
		"EmptyPart":  {"1..2", nil, true},
		"Whitespace": {" 1.2", nil, true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseObjectIdentifier(tt.s)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseObjectIdentifier(%q) error = %v, wantErr %v", tt.s, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseObjectIdentifier(%q) = %v, want %v", tt.s, got, tt.want)
			}
			if got.String() != tt.s {
				t.Errorf("ObjectIdentifier.String() = %q, want %q", got.String(), tt.s)
			}
		})
	}
}

func TestExternal_Equal(t *testing.T) {
	ref := int64(3)
	desc := "record"
	base := External{
		DirectReference: ObjectIdentifier{1, 2, 840, 10003, 5, 101},
		Encoding:        OctetAligned,
		OctetAligned:    []byte("hello"),
	}
	tests := map[string]struct {
		a, b External
		want bool
	}{
		"Same":          {base, base, true},
		"OtherData":     {base, External{DirectReference: base.DirectReference, Encoding: OctetAligned, OctetAligned: []byte("world")}, false},
		"OtherRef":      {base, External{DirectReference: ObjectIdentifier{1, 2}, Encoding: OctetAligned, OctetAligned: []byte("hello")}, false},
		"OtherEncoding": {base, External{DirectReference: base.DirectReference, Encoding: Arbitrary}, false},
		"Indirect": {
			External{IndirectReference: &ref, DataValueDescriptor: &desc, Encoding: SingleASN1Type, SingleASN1Type: RawValue{Tag: Universal(TagInteger), Bytes: []byte{1}}},
			External{IndirectReference: &ref, DataValueDescriptor: &desc, Encoding: SingleASN1Type, SingleASN1Type: RawValue{Tag: Universal(TagInteger), Bytes: []byte{1}}},
			true,
		},
		"IgnoresUnselected": {
			External{Encoding: Arbitrary, Arbitrary: NewBitString(2, 0), OctetAligned: []byte{1}},
			External{Encoding: Arbitrary, Arbitrary: NewBitString(2, 0)},
			true,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("External.Equal() = %v, want %v", got, tt.want)
			}
			if !tt.a.SyntaxIdentified() && tt.a.DirectReference != nil {
				t.Errorf("External.SyntaxIdentified() = false with direct reference")
			}
		})
	}
}

func TestGeneralizedTime_String(t *testing.T) {
	tests := map[string]struct {
		t    time.Time
		want string
	}{
		"Example":       {time.Date(1985, 11, 06, 21, 06, 27, 300000000, time.Local), "19851106210627.3"},
		"ExampleUTC":    {time.Date(1985, 11, 06, 21, 06, 27, 300000000, time.UTC), "19851106210627.3Z"},
		"Fractional":    {time.Date(1985, 11, 06, 21, 06, 27, 30000000, time.UTC), "19851106210627.03Z"},
		"ExampleOffset": {time.Date(1985, 11, 06, 21, 06, 27, 300000000, time.FixedZone("", -5*3600)), "19851106210627.3-0500"},
		"Example2":      {time.Date(1985, 11, 06, 21, 06, 00, 456000000, time.Local), "19851106210600.456"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := GeneralizedTime(tt.t).String(); got != tt.want {
				t.Errorf("GeneralizedTime.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestItoaN(t *testing.T) {
	tests := map[string]struct {
		i    int
		n    int
		want string
	}{
		"2-digit":     {23, 2, "23"},
		"2-digit-pad": {7, 2, "07"},
		"4-digit":     {1023, 4, "1023"},
		"4-digit-pad": {18, 4, "0018"},
		"truncate":    {12345, 4, "2345"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := itoaN(tt.i, tt.n); got != tt.want {
				t.Errorf("ItoaN() = %v, want %v", got, tt.want)
			}
		})
	}
}
