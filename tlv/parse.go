// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tlv

import "errors"

// A Parser frames BER-encoded bytes into [Node] trees. The zero Parser imposes
// no limits.
//
// Parsing is recursive in the nesting depth of the input. Servers that parse
// untrusted input should set limits.
type Parser struct {
	// MaxDepth limits the nesting depth of data values. The outermost value has
	// depth 1. A value of 0 means no limit.
	MaxDepth int

	// MaxSize limits the size in bytes of a top-level data value, including
	// its header. A value of 0 means no limit.
	MaxSize int
}

// Parse frames b as exactly one data value. Bytes following that value result
// in an error wrapping [ErrTrailingData]. The returned nodes reference b, so b
// must not be modified while they are in use.
func Parse(b []byte) (*Node, error) {
	return Parser{}.Parse(b)
}

// ParseOne frames the data value starting at b[off] and returns it along with
// the number of bytes it occupies. Bytes after that value are ignored.
func ParseOne(b []byte, off int) (*Node, int, error) {
	return Parser{}.ParseOne(b, off)
}

// Parse works like the package-level [Parse] function but enforces the limits
// of p.
func (p Parser) Parse(b []byte) (*Node, error) {
	if p.MaxSize > 0 && len(b) > p.MaxSize {
		return nil, &SyntaxError{Err: ErrTooLarge, ByteOffset: 0}
	}
	n, l, err := p.ParseOne(b, 0)
	if err != nil {
		return nil, err
	}
	if l != len(b) {
		return nil, &SyntaxError{Err: ErrTrailingData, ByteOffset: l}
	}
	return n, nil
}

// ParseOne works like the package-level [ParseOne] function but enforces the
// limits of p.
func (p Parser) ParseOne(b []byte, off int) (*Node, int, error) {
	n, end, err := p.parse(b, off, len(b), 1, nil)
	if err != nil {
		return nil, 0, err
	}
	return n, end - off, nil
}

// parse frames the data value at b[off]. The value must end before end. parent
// is the header of the enclosing constructed value, or nil at the top level. On
// success the offset following the value is returned.
func (p Parser) parse(b []byte, off, end, depth int, parent *Header) (*Node, int, error) {
	var ph Header
	exceeded := ErrTruncatedInput
	if parent != nil {
		ph = *parent
		exceeded = ErrChildExceedsParent
	}
	if p.MaxDepth > 0 && depth > p.MaxDepth {
		return nil, 0, &SyntaxError{Err: ErrTooDeep, ByteOffset: off, Header: ph}
	}

	h, hl, err := ReadHeader(b[:end], off)
	if err != nil {
		var sErr *SyntaxError
		if errors.As(err, &sErr) {
			if sErr.Err == ErrTruncatedInput {
				sErr.Err = exceeded
			}
			sErr.ByteOffset = off
			sErr.Header = ph
		}
		return nil, 0, err
	}
	if h.Tag == TagEndOfContents {
		return nil, 0, &SyntaxError{Err: errInvalidEOC, ByteOffset: off, Header: ph}
	}
	if p.MaxSize > 0 && h.Length > p.MaxSize-hl {
		return nil, 0, &SyntaxError{Err: ErrTooLarge, ByteOffset: off, Header: ph}
	}
	start := off + hl
	if h.Length > end-start {
		return nil, 0, &SyntaxError{Err: exceeded, ByteOffset: off, Header: ph}
	}
	stop := start + h.Length

	n := &Node{tag: h.Tag, constructed: h.Constructed, offset: off}
	if !h.Constructed {
		n.content = b[start:stop:stop]
		n.length = h.Length
		return n, stop, nil
	}
	n.children = []*Node{}
	for pos := start; pos < stop; {
		c, next, err := p.parse(b, pos, stop, depth+1, &h)
		if err != nil {
			return nil, 0, err
		}
		n.children = append(n.children, c)
		// children with non-minimal lengths shrink when re-encoded
		n.length += c.Size()
		pos = next
	}
	return n, stop, nil
}
