// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tlv

import (
	"bytes"
	"fmt"
	"strings"

	"codello.dev/z3950"
)

// A Node is a framed BER data value. A primitive node owns its content octets,
// a constructed node owns an ordered list of child nodes. Nodes are immutable
// after construction.
//
// Nodes are produced by [Parse] or built with [NewPrimitive] and
// [NewConstructed]. The zero Node is not valid.
type Node struct {
	tag         z3950.Tag
	constructed bool
	content     []byte  // primitive nodes only
	children    []*Node // constructed nodes only
	length      int     // number of content octets in the minimal encoding
	offset      int     // offset of the identifier octets in the parsed input, or -1
}

// NewPrimitive returns a primitive node with the given tag and content. The
// node takes ownership of content.
func NewPrimitive(tag z3950.Tag, content []byte) *Node {
	return &Node{tag: tag, content: content, length: len(content), offset: -1}
}

// NewConstructed returns a constructed node with the given tag and children.
func NewConstructed(tag z3950.Tag, children ...*Node) *Node {
	n := &Node{tag: tag, constructed: true, children: children, offset: -1}
	for _, c := range children {
		n.length += c.Size()
	}
	return n
}

// Tag returns the tag of n.
func (n *Node) Tag() z3950.Tag { return n.tag }

// Constructed reports whether n uses the constructed encoding.
func (n *Node) Constructed() bool { return n.constructed }

// Content returns the content octets of a primitive node. The result is nil for
// constructed nodes. The returned slice must not be modified.
func (n *Node) Content() []byte { return n.content }

// Children returns the child nodes of a constructed node. The result is nil for
// primitive nodes. The returned slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Len returns the number of content octets of n. For constructed nodes this is
// the length of the minimal encoding of the children, which may be less than
// the length found in the parsed input.
func (n *Node) Len() int { return n.length }

// Size returns the number of bytes of the encoding of n, including its header.
func (n *Node) Size() int { return n.Header().Size() + n.length }

// Offset returns the byte offset of n within the parsed input. Nodes that were
// not produced by parsing return -1.
func (n *Node) Offset() int { return n.offset }

// Header returns the header of the minimal encoding of n.
func (n *Node) Header() Header {
	return Header{Tag: n.tag, Constructed: n.constructed, Length: n.length}
}

// WithTag returns a copy of n that uses the given tag. This implements implicit
// tagging.
func (n *Node) WithTag(tag z3950.Tag) *Node {
	c := *n
	c.tag = tag
	return &c
}

// Append appends the BER encoding of n to dst and returns the extended buffer.
// Lengths are always encoded in their minimal form.
func (n *Node) Append(dst []byte) []byte {
	dst = n.Header().Append(dst)
	if !n.constructed {
		return append(dst, n.content...)
	}
	for _, c := range n.children {
		dst = c.Append(dst)
	}
	return dst
}

// Bytes returns the BER encoding of n.
func (n *Node) Bytes() []byte {
	return n.Append(make([]byte, 0, n.Size()))
}

// Equal reports whether n and other describe the same data value. Offsets are
// not compared.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.tag != other.tag || n.constructed != other.constructed || n.length != other.length {
		return false
	}
	if !n.constructed {
		return bytes.Equal(n.content, other.content)
	}
	if len(n.children) != len(other.children) {
		return false
	}
	for i, c := range n.children {
		if !c.Equal(other.children[i]) {
			return false
		}
	}
	return true
}

// String returns an indented representation of the tree rooted at n. Long
// primitive contents are abbreviated.
func (n *Node) String() string {
	var sb strings.Builder
	n.format(&sb, 0)
	return sb.String()
}

// format writes n to sb indented by depth levels.
func (n *Node) format(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.tag.String())
	if !n.constructed {
		if len(n.content) > 32 {
			fmt.Fprintf(sb, " % X ... (%d bytes)\n", n.content[:32], len(n.content))
		} else if len(n.content) > 0 {
			fmt.Fprintf(sb, " % X\n", n.content)
		} else {
			sb.WriteString(" {}\n")
		}
		return
	}
	if len(n.children) == 0 {
		sb.WriteString(" {}\n")
		return
	}
	sb.WriteString(" {\n")
	for _, c := range n.children {
		c.format(sb, depth+1)
	}
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString("}\n")
}
