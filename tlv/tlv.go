// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tlv implements the tag-length-value framing of the Basic Encoding
// Rules (BER) as specified in [Rec. ITU-T X.690], restricted to the
// definite-length form mandated by the Z39.50 profile.
// See also “[A Layman's Guide to a Subset of ASN.1, BER, and DER]”.
//
// This package deals with the syntactic layer of BER only. [Parse] frames a
// byte buffer into a tree of [Node] values without interpreting tags. Other
// packages such as [codello.dev/z3950/ber] and [codello.dev/z3950/schema] deal
// with the semantic layer.
//
// # Headers
//
// In BER each value is encoded using a tag-length-value format. The tag and
// length (we call them a header) are represented by the [Header] type. The
// functions [ReadIdentifier], [ReadLength] and [ReadHeader] decode the parts of
// a header at a given offset of a buffer. Indefinite-length encodings are
// rejected with [ErrIndefiniteLength].
//
// # Streams
//
// A [Reader] reads consecutive data values from an [io.Reader], such as the
// connection of a Z39.50 association. Each value is framed using its header
// before it is parsed.
//
// [Rec. ITU-T X.690]: https://www.itu.int/rec/T-REC-X.690
// [A Layman's Guide to a Subset of ASN.1, BER, and DER]: http://luca.ntop.org/Teaching/Appunti/asn1.html
package tlv

import (
	"errors"
	"io"
	"math"
	"math/bits"
	"strconv"

	"codello.dev/z3950"
	"codello.dev/z3950/internal/vlq"
)

// TagEndOfContents is the reserved tag of the end-of-contents marker. It only
// appears in indefinite-length encodings and is therefore never valid input for
// this package.
var TagEndOfContents = z3950.Universal(0)

// Header represents a TLV header. Length is the number of content octets
// following the header.
type Header struct {
	Tag         z3950.Tag
	Constructed bool
	Length      int
}

// String returns a string representation of h.
func (h Header) String() string {
	s := h.Tag.String()
	if h.Constructed {
		s += "/c"
	} else {
		s += "/p"
	}
	s += ":" + strconv.Itoa(h.Length)
	return s
}

// Size returns the number of bytes used by the encoding of h. Lengths are always
// encoded in their minimal form.
func (h Header) Size() int {
	l := 1 // class, constructed, tag
	if h.Tag.Number >= 31 {
		l += vlq.Length(h.Tag.Number)
	}
	l++ // length
	if h.Length >= 128 {
		l += (bits.Len(uint(h.Length)) + 7) / 8
	}
	return l
}

// Append appends the BER encoding of h to dst and returns the extended buffer.
// The length is encoded in its minimal form.
func (h Header) Append(dst []byte) []byte {
	b := uint8(h.Tag.Class&0b11) << 6
	if h.Constructed {
		b |= 0x20
	}
	if h.Tag.Number < 31 {
		dst = append(dst, b|uint8(h.Tag.Number))
	} else {
		dst = append(dst, b|0x1f)
		dst = vlq.Append(dst, h.Tag.Number)
	}

	if h.Length < 128 {
		return append(dst, byte(h.Length))
	}
	numBytes := (bits.Len(uint(h.Length)) + 7) / 8
	dst = append(dst, 0x80|byte(numBytes))
	for ; numBytes > 0; numBytes-- {
		dst = append(dst, byte(h.Length>>uint((numBytes-1)*8)))
	}
	return dst
}

// ReadIdentifier decodes the identifier octets starting at b[off]. It returns
// the tag, whether the encoding is constructed and the number of bytes consumed.
//
// Tag numbers of 31 and above use the high-tag-number form, which must be
// minimally encoded.
func ReadIdentifier(b []byte, off int) (tag z3950.Tag, constructed bool, n int, err error) {
	if off >= len(b) {
		return tag, false, 0, &SyntaxError{Err: ErrTruncatedInput, ByteOffset: off}
	}
	c := b[off]
	tag = z3950.Tag{Class: z3950.Class(c >> 6), Number: uint(c & 0x1f)}
	constructed = c&0x20 == 0x20
	n = 1

	// If the bottom five bits are set, then the tag number is actually VLQ-encoded
	if c&0x1f == 0x1f {
		num, l, err := vlq.ParseMinimal[uint](b[off+1:])
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				err = ErrTruncatedInput
			}
			return tag, constructed, 0, &SyntaxError{Err: err, ByteOffset: off}
		}
		tag.Number = num
		n += l
	}
	return tag, constructed, n, nil
}

// ReadLength decodes the length octets starting at b[off]. It returns the
// content length and the number of bytes consumed. Lengths in the long form may
// contain leading zero octets.
func ReadLength(b []byte, off int) (length int, n int, err error) {
	if off >= len(b) {
		return 0, 0, &SyntaxError{Err: ErrTruncatedInput, ByteOffset: off}
	}
	c := b[off]
	if c&0x80 == 0 {
		// The length is encoded in the bottom 7 bits.
		return int(c), 1, nil
	}
	if c == 0x80 {
		return 0, 0, &SyntaxError{Err: ErrIndefiniteLength, ByteOffset: off}
	}
	if c == 0xff {
		return 0, 0, &SyntaxError{Err: errReservedLength, ByteOffset: off}
	}
	// Bottom 7 bits give the number of length bytes to follow.
	numBytes := int(c & 0x7f)
	if off+1+numBytes > len(b) {
		return 0, 0, &SyntaxError{Err: ErrTruncatedInput, ByteOffset: off}
	}
	for _, c := range b[off+1 : off+1+numBytes] {
		if length > math.MaxInt>>8 {
			// We can't shift length up without overflowing.
			return 0, 0, &SyntaxError{Err: errLengthTooLarge, ByteOffset: off}
		}
		length = length<<8 | int(c)
	}
	return length, 1 + numBytes, nil
}

// ReadHeader decodes the identifier and length octets starting at b[off]. It
// returns the header and the number of bytes consumed. The content octets are
// not checked against the size of b.
func ReadHeader(b []byte, off int) (Header, int, error) {
	tag, constructed, n, err := ReadIdentifier(b, off)
	if err != nil {
		return Header{}, 0, err
	}
	length, m, err := ReadLength(b, off+n)
	if err != nil {
		return Header{Tag: tag, Constructed: constructed}, 0, err
	}
	return Header{Tag: tag, Constructed: constructed, Length: length}, n + m, nil
}

// requireKeyedLiterals can be embedded in a struct to require keyed literals.
type requireKeyedLiterals struct{}

// nonComparable can be embedded in a struct to prevent comparability.
type nonComparable [0]func()
