// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"strings"

	"codello.dev/z3950"
	"codello.dev/z3950/internal"
	"codello.dev/z3950/tlv"
)

//region Tagged

// Mode is the tagging mode of a [Tagged] type.
//
//go:generate stringer -type=Mode
type Mode uint8

// Supported tagging modes. Explicit is the zero value because the Z39.50 ASN.1
// module does not declare a tagging default.
const (
	Explicit Mode = iota
	Implicit
)

// Tagged is a type with an additional tag. An IMPLICIT tag replaces the tag of
// the underlying type. An EXPLICIT tag wraps the encoding of the underlying
// type in a constructed data value.
//
// If Type has no definite tag (an untagged CHOICE or ANY), the tag is always
// applied as if Mode was [Explicit].
type Tagged struct {
	Tag  z3950.Tag
	Mode Mode
	Type Type
}

// ImplicitTag returns a context-specific IMPLICIT tag of t.
func ImplicitTag(n uint, t Type) *Tagged {
	return &Tagged{Tag: z3950.Context(n), Mode: Implicit, Type: t}
}

// ExplicitTag returns a context-specific EXPLICIT tag of t.
func ExplicitTag(n uint, t Type) *Tagged {
	return &Tagged{Tag: z3950.Context(n), Mode: Explicit, Type: t}
}

func (t *Tagged) String() string {
	return t.Tag.String() + " " + strings.ToUpper(t.Mode.String()) + " " + t.Type.String()
}

func (t *Tagged) Kind() Kind { return KindTagged }

func (t *Tagged) tag(*Registry) (z3950.Tag, bool) {
	return t.Tag, true
}

// explicit reports whether t must be encoded using the explicit form.
func (t *Tagged) explicit(r *Registry) bool {
	if t.Mode == Explicit {
		return true
	}
	_, ok := t.Type.tag(r)
	return !ok
}

func (t *Tagged) decodeContents(d *decoder, n *tlv.Node) (any, error) {
	if !t.explicit(d.reg) {
		return d.contents(t.Type, n)
	}
	if !n.Constructed() || len(n.Children()) != 1 {
		return nil, d.fail(n, ErrBadExplicitWrapper)
	}
	return d.decode(t.Type, n.Children()[0])
}

func (t *Tagged) encodeContents(e *encoder, v any) (*tlv.Node, error) {
	if !t.explicit(e.reg) {
		inner, err := e.reg.resolve(t.Type)
		if err != nil {
			return nil, err
		}
		n, err := inner.encodeContents(e, v)
		if err != nil {
			return nil, err
		}
		return n.WithTag(t.Tag), nil
	}
	n, err := e.encode(t.Type, v)
	if err != nil {
		return nil, err
	}
	return tlv.NewConstructed(t.Tag, n), nil
}

//endregion

//region Field

// A Field is a named component of a [Sequence] or an alternative of a
// [Choice].
type Field struct {
	Name     string
	Type     Type
	Optional bool // ignored for CHOICE alternatives
}

// F returns a field with the given name and type. The params string configures
// the tag and optionality of the field using a comma-separated list of the
// following parts:
//
//	tag:N        tag the field with number N
//	application  use an APPLICATION tag instead of a context-specific one
//	private      use a PRIVATE tag
//	universal    use a UNIVERSAL tag
//	implicit     use an IMPLICIT tag, the default is EXPLICIT
//	explicit     use an EXPLICIT tag
//	optional     the field is OPTIONAL
//
// F panics if params is malformed. It is intended to be used in variable
// initializers describing a schema.
func F(name, params string, t Type) Field {
	p, err := internal.ParseFieldParameters(params)
	if err != nil {
		panic("schema: field " + name + ": " + err.Error())
	}
	if p.Tagged {
		mode := Explicit
		if p.Implicit {
			mode = Implicit
		}
		t = &Tagged{Tag: p.Tag, Mode: mode, Type: t}
	}
	return Field{Name: name, Type: t, Optional: p.Optional}
}

// fieldIndex returns the index of the field with the given name or -1.
func fieldIndex(fields []Field, name string) int {
	for i, f := range fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

//endregion

//region Sequence

// A Sequence describes an ASN.1 SEQUENCE type. Values of a Sequence are
// represented by a [*Message].
type Sequence struct {
	Name   string // set by [Registry.Define] if empty
	Fields []Field
}

func (s *Sequence) String() string {
	if s.Name == "" {
		return "SEQUENCE"
	}
	return s.Name
}

func (s *Sequence) Kind() Kind { return KindSequence }

func (s *Sequence) tag(*Registry) (z3950.Tag, bool) {
	return z3950.Universal(z3950.TagSequence), true
}

// decodeContents matches the children of n against the fields of s in
// declaration order.
func (s *Sequence) decodeContents(d *decoder, n *tlv.Node) (any, error) {
	if !n.Constructed() {
		return nil, &DecodeError{Schema: s.String(), Offset: n.Offset(), Err: ErrNotASequence}
	}
	children := n.Children()
	var values []FieldValue
	i := 0
	for _, f := range s.Fields {
		if i >= len(children) {
			if f.Optional {
				continue
			}
			return nil, s.missing(n, f)
		}
		child := children[i]
		if tag, ok := d.reg.tagOf(f.Type); ok {
			if child.Tag() != tag {
				if f.Optional {
					continue
				}
				return nil, s.missing(child, f)
			}
		} else if f.Optional {
			// presence of untagged CHOICE and ANY values is decided by trial
			v, err := d.decode(f.Type, child)
			if err == nil {
				values = append(values, FieldValue{f.Name, v})
				i++
			} else if limitExceeded(err) {
				return nil, annotateDecode(err, s.String(), f.Name)
			}
			continue
		}
		v, err := d.decode(f.Type, child)
		if err != nil {
			return nil, annotateDecode(err, s.String(), f.Name)
		}
		values = append(values, FieldValue{f.Name, v})
		i++
	}
	if i < len(children) {
		err := d.fail(children[i], &ExtraDataError{Consumed: i, Total: len(children)})
		return nil, annotateDecode(err, s.String(), "")
	}
	return &Message{typ: s, fields: values}, nil
}

// missing returns an error indicating that the mandatory field f was not found
// at n.
func (s *Sequence) missing(n *tlv.Node, f Field) error {
	return &DecodeError{Schema: s.String(), Field: f.Name, Offset: n.Offset(), Err: ErrMissingMandatoryField}
}

func (s *Sequence) encodeContents(e *encoder, v any) (*tlv.Node, error) {
	m, err := e.message(s, v)
	if err != nil {
		return nil, err
	}
	children := make([]*tlv.Node, 0, len(m.fields))
	j := 0
	for _, f := range s.Fields {
		if j >= len(m.fields) || m.fields[j].Name != f.Name {
			if f.Optional {
				continue
			}
			return nil, &EncodeError{Schema: s.String(), Field: f.Name, Err: ErrMissingMandatoryField}
		}
		child, err := e.encode(f.Type, m.fields[j].Value)
		if err != nil {
			return nil, annotateEncode(err, s.String(), f.Name)
		}
		children = append(children, child)
		j++
	}
	return tlv.NewConstructed(z3950.Universal(z3950.TagSequence), children...), nil
}

//endregion

//region Choice

// A Choice describes an ASN.1 CHOICE type. Values of a Choice are represented
// by a [*Message] with exactly one field set. A Choice has no definite tag.
//
// Alternatives are matched in declaration order. If two untagged alternatives
// can decode the same data value, the first one wins.
type Choice struct {
	Name         string // set by [Registry.Define] if empty
	Alternatives []Field
}

func (c *Choice) String() string {
	if c.Name == "" {
		return "CHOICE"
	}
	return c.Name
}

func (c *Choice) Kind() Kind { return KindChoice }

func (c *Choice) tag(*Registry) (z3950.Tag, bool) {
	return z3950.Tag{}, false
}

func (c *Choice) decodeContents(d *decoder, n *tlv.Node) (any, error) {
	for _, alt := range c.Alternatives {
		var (
			v   any
			err error
		)
		if tag, ok := d.reg.tagOf(alt.Type); ok {
			if n.Tag() != tag {
				continue
			}
			if v, err = d.decode(alt.Type, n); err != nil {
				return nil, annotateDecode(err, c.String(), alt.Name)
			}
		} else if v, err = d.decode(alt.Type, n); err != nil {
			if limitExceeded(err) {
				return nil, annotateDecode(err, c.String(), alt.Name)
			}
			continue
		}
		return &Message{typ: c, fields: []FieldValue{{alt.Name, v}}}, nil
	}
	err := d.fail(n, ErrChoiceNotMatched)
	return nil, annotateDecode(err, c.String(), "")
}

func (c *Choice) encodeContents(e *encoder, v any) (*tlv.Node, error) {
	m, err := e.message(c, v)
	if err != nil {
		return nil, err
	}
	switch len(m.fields) {
	case 0:
		return nil, &EncodeError{Schema: c.String(), Err: ErrChoiceNotSet}
	case 1:
	default:
		return nil, &EncodeError{Schema: c.String(), Err: ErrChoiceMultiplySet}
	}
	fv := m.fields[0]
	alt := c.Alternatives[fieldIndex(c.Alternatives, fv.Name)]
	n, err := e.encode(alt.Type, fv.Value)
	if err != nil {
		return nil, annotateEncode(err, c.String(), alt.Name)
	}
	return n, nil
}

//endregion

//region SequenceOf

// SequenceOf describes an ASN.1 SEQUENCE OF type. Values are represented by
// []any. Encoding also accepts other slice types, except for []byte.
type SequenceOf struct {
	Elem Type
}

func (s *SequenceOf) String() string { return "SEQUENCE OF " + s.Elem.String() }
func (s *SequenceOf) Kind() Kind     { return KindSequenceOf }

func (s *SequenceOf) tag(*Registry) (z3950.Tag, bool) {
	return z3950.Universal(z3950.TagSequence), true
}

func (s *SequenceOf) decodeContents(d *decoder, n *tlv.Node) (any, error) {
	if !n.Constructed() {
		return nil, d.fail(n, ErrNotASequence)
	}
	values := make([]any, 0, len(n.Children()))
	for _, child := range n.Children() {
		v, err := d.decode(s.Elem, child)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func (s *SequenceOf) encodeContents(e *encoder, v any) (*tlv.Node, error) {
	if _, ok := v.([]byte); ok {
		return nil, typeMismatch(v, s.String())
	}
	elems, ok := asSlice(v)
	if !ok {
		return nil, typeMismatch(v, s.String())
	}
	children := make([]*tlv.Node, len(elems))
	for i, elem := range elems {
		child, err := e.encode(s.Elem, elem)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return tlv.NewConstructed(z3950.Universal(z3950.TagSequence), children...), nil
}

//endregion

//region Ref

// Ref is a reference to a type defined in a [Registry]. References are resolved
// when a value is decoded or encoded. This allows schemas to be recursive.
type Ref string

func (r Ref) String() string { return string(r) }
func (r Ref) Kind() Kind     { return KindRef }

func (r Ref) tag(reg *Registry) (z3950.Tag, bool) {
	return reg.tagOf(r)
}

func (r Ref) decodeContents(d *decoder, n *tlv.Node) (any, error) {
	return d.contents(r, n)
}

func (r Ref) encodeContents(e *encoder, v any) (*tlv.Node, error) {
	t, err := e.reg.resolve(r)
	if err != nil {
		return nil, err
	}
	return t.encodeContents(e, v)
}

//endregion
