// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"bytes"
	"fmt"
	"iter"
	"reflect"
	"strings"

	"codello.dev/z3950"
)

// A FieldValue is the value of a named field of a [Message].
type FieldValue struct {
	Name  string
	Value any
}

// A Message is the value of a SEQUENCE or CHOICE type. A message holds the
// values of its present fields in declaration order. Absent OPTIONAL fields are
// not stored. A message of a CHOICE type usually holds exactly one field.
//
// Messages are immutable. Use [NewMessage] or a [Builder] to create messages.
type Message struct {
	typ    Type // *Sequence or *Choice
	fields []FieldValue
}

// NewMessage creates a message of type t with the given field values. t must be
// a [*Sequence] or [*Choice], possibly tagged. Fields with a nil value are
// treated as absent.
//
// NewMessage does not check whether mandatory fields are present or whether a
// CHOICE message has exactly one alternative. These conditions are checked
// when the message is encoded.
func NewMessage(t Type, fields ...FieldValue) (*Message, error) {
	b := Build(t)
	for _, f := range fields {
		b.Set(f.Name, f.Value)
	}
	return b.Message()
}

// Type returns the SEQUENCE or CHOICE type of m.
func (m *Message) Type() Type { return m.typ }

// TypeName returns the name of the type of m.
func (m *Message) TypeName() string { return m.typ.String() }

// Len returns the number of present fields in m.
func (m *Message) Len() int { return len(m.fields) }

// Get returns the value of the named field. If the field is absent, ok is
// false.
func (m *Message) Get(name string) (v any, ok bool) {
	for _, f := range m.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Has reports whether the named field is present in m.
func (m *Message) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// All returns an iterator over the present fields of m in declaration order.
func (m *Message) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, f := range m.fields {
			if !yield(f.Name, f.Value) {
				return
			}
		}
	}
}

// Choice returns the selected alternative of a CHOICE message. If m holds no
// fields, name is empty.
func (m *Message) Choice() (name string, v any) {
	if len(m.fields) == 0 {
		return "", nil
	}
	return m.fields[0].Name, m.fields[0].Value
}

// Equal reports whether m and other have the same type and equal field values.
// Integer values of different Go types are equal if their values are equal.
func (m *Message) Equal(other *Message) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.typ != other.typ || len(m.fields) != len(other.fields) {
		return false
	}
	for i, f := range m.fields {
		g := other.fields[i]
		if f.Name != g.Name || !valueEqual(f.Value, g.Value) {
			return false
		}
	}
	return true
}

// valueEqual reports whether a and b are equal field values.
func valueEqual(a, b any) bool {
	switch a := a.(type) {
	case *Message:
		b, ok := b.(*Message)
		return ok && a.Equal(b)
	case []byte:
		b, ok := b.([]byte)
		return ok && bytes.Equal(a, b)
	case z3950.ObjectIdentifier:
		b, ok := b.(z3950.ObjectIdentifier)
		return ok && a.Equal(b)
	case z3950.BitString:
		b, ok := b.(z3950.BitString)
		return ok && a.Equal(b)
	case z3950.GeneralizedTime:
		b, ok := b.(z3950.GeneralizedTime)
		return ok && a.Equal(b)
	case z3950.External:
		b, ok := b.(z3950.External)
		return ok && a.Equal(b)
	case z3950.RawValue:
		b, ok := b.(z3950.RawValue)
		return ok && a.Equal(b)
	}
	if i, err := toInt64(a); err == nil {
		j, err := toInt64(b)
		return err == nil && i == j
	}
	if as, ok := asSlice(a); ok {
		bs, ok := asSlice(b)
		if !ok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !valueEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// asSlice converts a slice of any element type into a []any.
func asSlice(v any) ([]any, bool) {
	if vs, ok := v.([]any); ok {
		return vs, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	vs := make([]any, rv.Len())
	for i := range vs {
		vs[i] = rv.Index(i).Interface()
	}
	return vs, true
}

// String returns an indented textual representation of m.
func (m *Message) String() string {
	var b strings.Builder
	m.format(&b, 0)
	return b.String()
}

func (m *Message) format(b *strings.Builder, depth int) {
	if m == nil {
		b.WriteString("<nil>")
		return
	}
	b.WriteString(m.TypeName())
	if len(m.fields) == 0 {
		b.WriteString(" {}")
		return
	}
	b.WriteString(" {\n")
	for _, f := range m.fields {
		indent(b, depth+1)
		b.WriteString(f.Name)
		b.WriteString(": ")
		formatValue(b, f.Value, depth+1)
		b.WriteByte('\n')
	}
	indent(b, depth)
	b.WriteByte('}')
}

func formatValue(b *strings.Builder, v any, depth int) {
	switch v := v.(type) {
	case *Message:
		v.format(b, depth)
	case []any:
		if len(v) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for _, elem := range v {
			indent(b, depth+1)
			formatValue(b, elem, depth+1)
			b.WriteByte('\n')
		}
		indent(b, depth)
		b.WriteByte(']')
	case []byte:
		fmt.Fprintf(b, "'%X'H", v)
	case string:
		fmt.Fprintf(b, "%q", v)
	case z3950.BitString:
		b.WriteByte('\'')
		b.WriteString(strings.ReplaceAll(v.String(), " ", ""))
		b.WriteString("'B")
	default:
		fmt.Fprint(b, v)
	}
}

func indent(b *strings.Builder, depth int) {
	for range depth {
		b.WriteString("  ")
	}
}

//region Builder

// A Builder constructs a [Message]. The zero value is not usable, use [Build]
// or [Registry.Build] to create a Builder. Errors are reported by
// [Builder.Message].
type Builder struct {
	typ    Type
	fields []Field
	values []any
	err    error
}

// Build returns a builder for a message of type t. t must be a [*Sequence] or
// [*Choice], possibly tagged. Use [Registry.Build] to build messages of named
// types.
func Build(t Type) *Builder {
	b := &Builder{typ: untag(t)}
	switch t := b.typ.(type) {
	case *Sequence:
		b.fields = t.Fields
	case *Choice:
		b.fields = t.Alternatives
	default:
		b.err = fmt.Errorf("%w: cannot build message of type %s", ErrTypeMismatch, t)
	}
	b.values = make([]any, len(b.fields))
	return b
}

// Set sets the value of the named field. Setting a field to nil makes it absent.
// Nil pointers, slices and maps count as nil.
func (b *Builder) Set(name string, v any) *Builder {
	if b.err != nil {
		return b
	}
	i := fieldIndex(b.fields, name)
	if i < 0 {
		b.err = fmt.Errorf("%w: %s has no field %s", ErrUnknownField, b.typ, name)
		return b
	}
	if isNil(v) {
		v = nil
	}
	b.values[i] = v
	return b
}

// isNil reports whether v is nil or a nil pointer, slice or map.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map:
		return rv.IsNil()
	}
	return false
}

// Message returns the message with the fields set so far. The builder may be
// reused afterwards.
func (b *Builder) Message() (*Message, error) {
	if b.err != nil {
		return nil, b.err
	}
	m := &Message{typ: b.typ}
	for i, v := range b.values {
		if v != nil {
			m.fields = append(m.fields, FieldValue{b.fields[i].Name, v})
		}
	}
	return m, nil
}

// MustMessage is like [Builder.Message] but panics if an error occurs.
func (b *Builder) MustMessage() *Message {
	m, err := b.Message()
	if err != nil {
		panic(err)
	}
	return m
}

//endregion
