// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"errors"
	"fmt"

	"codello.dev/z3950/tlv"
)

// maxTypeHops limits the number of nested types that may be applied to a single
// data value without descending into its children. It guards against schemas
// that refer to themselves without consuming a data value (such as a CHOICE
// containing itself). Nesting of data values is limited by [Codec.MaxDepth].
const maxTypeHops = 1 << 10

// A Codec decodes and encodes data values using the types of a [Registry].
//
// MaxDepth and MaxSize limit the nesting depth and the size of inputs and
// outputs. Zero values indicate no limit. A Codec is safe for concurrent use.
type Codec struct {
	Registry *Registry
	MaxDepth int
	MaxSize  int
}

// Decode decodes b as a value of the named type. The type must be a SEQUENCE or
// CHOICE type, possibly tagged.
func (c *Codec) Decode(name string, b []byte) (*Message, error) {
	t, ok := c.Registry.Lookup(name)
	if !ok {
		return nil, &DecodeError{Offset: -1, Err: fmt.Errorf("%w: %s", ErrUnknownType, name)}
	}
	v, err := c.DecodeValue(t, b)
	if err != nil {
		return nil, err
	}
	m, ok := v.(*Message)
	if !ok {
		return nil, &DecodeError{Offset: -1, Err: fmt.Errorf("%w: %s is not a SEQUENCE or CHOICE type", ErrTypeMismatch, name)}
	}
	return m, nil
}

// DecodeValue decodes b as a value of type t. b must contain exactly one data
// value. Errors are returned as [*DecodeError] values wrapping the errors of
// package tlv, package ber or this package.
func (c *Codec) DecodeValue(t Type, b []byte) (any, error) {
	p := tlv.Parser{MaxDepth: c.MaxDepth, MaxSize: c.MaxSize}
	n, err := p.Parse(b)
	if err != nil {
		dErr := &DecodeError{Offset: -1, Err: err}
		var sErr *tlv.SyntaxError
		if errors.As(err, &sErr) {
			dErr.Offset = sErr.ByteOffset
		}
		return nil, dErr
	}
	return c.DecodeNode(t, n)
}

// DecodeNode decodes the framed data value n as a value of type t.
func (c *Codec) DecodeNode(t Type, n *tlv.Node) (any, error) {
	d := &decoder{reg: c.Registry}
	v, err := d.decode(t, n)
	if err != nil {
		return nil, d.fail(n, err)
	}
	return v, nil
}

// Encode encodes m. If the type of m is registered under its name, the
// registered type is used, so tags of named types are applied.
func (c *Codec) Encode(m *Message) ([]byte, error) {
	if m == nil {
		return nil, &EncodeError{Err: fmt.Errorf("%w: nil message", ErrInvalidValue)}
	}
	var t Type = m.typ
	if rt, ok := c.Registry.Lookup(m.TypeName()); ok {
		if it, err := c.Registry.resolve(rt); err == nil && untag(it) == m.typ {
			t = rt
		}
	}
	return c.EncodeValue(t, m)
}

// EncodeValue encodes v as a value of type t.
func (c *Codec) EncodeValue(t Type, v any) ([]byte, error) {
	n, err := c.EncodeNode(t, v)
	if err != nil {
		return nil, err
	}
	if c.MaxSize > 0 && n.Size() > c.MaxSize {
		return nil, &EncodeError{Err: tlv.ErrTooLarge}
	}
	return n.Bytes(), nil
}

// EncodeNode encodes v as a value of type t into a node tree.
func (c *Codec) EncodeNode(t Type, v any) (*tlv.Node, error) {
	e := &encoder{reg: c.Registry}
	n, err := e.encode(t, v)
	if err != nil {
		var eErr *EncodeError
		if !errors.As(err, &eErr) {
			err = &EncodeError{Err: err}
		}
		return nil, err
	}
	return n, nil
}

//region decoder

// decoder holds the state of a single decode operation.
type decoder struct {
	reg  *Registry
	node *tlv.Node // data value of the innermost contents call
	hops int       // types applied to node
}

// decode decodes n as a value of type t. The tag of n must match the tag of t.
func (d *decoder) decode(t Type, n *tlv.Node) (any, error) {
	if tag, ok := d.reg.tagOf(t); ok && n.Tag() != tag {
		return nil, d.fail(n, fmt.Errorf("%w: expected %s, got %s", ErrTagMismatch, tag, n.Tag()))
	}
	return d.contents(t, n)
}

// contents decodes n as a value of type t without checking the tag of n.
func (d *decoder) contents(t Type, n *tlv.Node) (any, error) {
	rt, err := d.reg.resolve(t)
	if err != nil {
		return nil, d.fail(n, err)
	}
	node, hops := d.node, d.hops
	defer func() { d.node, d.hops = node, hops }()
	if n != d.node {
		d.node, d.hops = n, 0
	}
	if d.hops >= maxTypeHops {
		return nil, d.fail(n, tlv.ErrTooDeep)
	}
	d.hops++
	v, err := rt.decodeContents(d, n)
	if err != nil {
		return nil, d.fail(n, err)
	}
	return v, nil
}

// fail returns err as a [*DecodeError] located at n. If err already is a
// [*DecodeError], it is returned unchanged.
func (d *decoder) fail(n *tlv.Node, err error) error {
	var dErr *DecodeError
	if errors.As(err, &dErr) {
		return err
	}
	return &DecodeError{Offset: n.Offset(), Err: err}
}

// limitExceeded reports whether err indicates that a decoding limit was
// exceeded. Such errors are never treated as a mismatch during trial decoding.
func limitExceeded(err error) bool {
	return errors.Is(err, tlv.ErrTooDeep) || errors.Is(err, tlv.ErrTooLarge)
}

//endregion

//region encoder

// encoder holds the state of a single encode operation.
type encoder struct {
	reg *Registry
}

// encode encodes v as a value of type t.
func (e *encoder) encode(t Type, v any) (*tlv.Node, error) {
	rt, err := e.reg.resolve(t)
	if err != nil {
		return nil, err
	}
	return rt.encodeContents(e, v)
}

// message returns v as a message of type t.
func (e *encoder) message(t Type, v any) (*Message, error) {
	m, ok := v.(*Message)
	if !ok || m == nil {
		return nil, typeMismatch(v, t.String())
	}
	if m.typ != t {
		return nil, fmt.Errorf("%w: cannot encode %s message as %s", ErrTypeMismatch, m.TypeName(), t)
	}
	return m, nil
}

//endregion
