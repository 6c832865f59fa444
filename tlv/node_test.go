package tlv

import (
	"bytes"
	"testing"

	"codello.dev/z3950"
)

func TestNode_String(t *testing.T) {
	n := NewConstructed(z3950.Universal(z3950.TagSequence),
		NewPrimitive(z3950.Context(3), []byte{0x00}),
		NewConstructed(z3950.Context(4)),
		NewPrimitive(z3950.Context(5), nil),
	)
	want := "[UNIVERSAL 16] {\n  [3] 00\n  [4] {}\n  [5] {}\n}\n"
	if got := n.String(); got != want {
		t.Errorf("Node.String() = %q, want %q", got, want)
	}
}

func TestNode_Bytes(t *testing.T) {
	n := NewConstructed(z3950.Context(46),
		NewConstructed(z3950.Context(0)),
		NewPrimitive(z3950.Universal(z3950.TagOctetString), bytes.Repeat([]byte{0xAB}, 130)),
	)
	got := n.Bytes()
	want := append([]byte{0xBF, 0x2E, 0x81, 0x87, 0xA0, 0x00, 0x04, 0x81, 0x82}, bytes.Repeat([]byte{0xAB}, 130)...)
	if !bytes.Equal(got, want) {
		t.Errorf("Node.Bytes() = % X, want % X", got, want)
	}
	if n.Size() != len(want) {
		t.Errorf("Node.Size() = %d, want %d", n.Size(), len(want))
	}
	if n.Offset() != -1 {
		t.Errorf("Node.Offset() = %d, want -1", n.Offset())
	}
}

func TestNode_WithTag(t *testing.T) {
	n := NewPrimitive(z3950.Universal(z3950.TagInteger), []byte{0x2A})
	m := n.WithTag(z3950.Context(215))
	if n.Tag() != z3950.Universal(z3950.TagInteger) {
		t.Errorf("WithTag modified the original node")
	}
	if want := []byte{0x9F, 0x81, 0x57, 0x01, 0x2A}; !bytes.Equal(m.Bytes(), want) {
		t.Errorf("Node.Bytes() = % X, want % X", m.Bytes(), want)
	}
}

func TestNode_Equal(t *testing.T) {
	a := NewConstructed(z3950.Context(1), NewPrimitive(z3950.Context(2), []byte{1}))
	tests := map[string]struct {
		b    *Node
		want bool
	}{
		"Same":         {NewConstructed(z3950.Context(1), NewPrimitive(z3950.Context(2), []byte{1})), true},
		"OtherTag":     {NewConstructed(z3950.Context(9), NewPrimitive(z3950.Context(2), []byte{1})), false},
		"OtherContent": {NewConstructed(z3950.Context(1), NewPrimitive(z3950.Context(2), []byte{2})), false},
		"Primitive":    {NewPrimitive(z3950.Context(1), NewPrimitive(z3950.Context(2), []byte{1}).Bytes()), false},
		"FewerKids":    {NewConstructed(z3950.Context(1)), false},
		"Nil":          {nil, false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := a.Equal(tc.b); got != tc.want {
				t.Errorf("Node.Equal() = %v, want %v", got, tc.want)
			}
		})
	}
}
