// Package vlq implements [Variable-length quantity] encoding as used in BER
// for high tag numbers and object identifier arcs. A VLQ is essentially a
// base-128 representation of an unsigned integer with the addition of the
// eighth bit to mark continuation of bytes. VLQ is identical to [LEB128] except
// in endianness.
//
// [Variable-length quantity]: https://en.wikipedia.org/wiki/Variable-length_quantity
// [LEB128]: https://en.wikipedia.org/wiki/LEB128
package vlq

import (
	"errors"
	"io"
	"math/bits"
	"unsafe"
)

var (
	ErrNotMinimal = errors.New("vlq is not minimally encoded")
	ErrOverflow   = errors.New("vlq too large for target type")
)

// Unsigned is the set of integer types a VLQ can be decoded into.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Parse decodes an unsigned VLQ from the start of b and returns its value and
// the number of bytes it occupies. The maximum allowed value is limited by the
// size of T.
//
// If b is empty, the returned error is io.EOF. If b ends in the middle of a VLQ
// the returned error is io.ErrUnexpectedEOF.
//
// Parse ignores an arbitrary amount of leading zeros (encoded as 0x80 bytes).
// Use [ParseMinimal] to parse a minimally-encoded VLQ.
func Parse[T Unsigned](b []byte) (T, int, error) {
	return parse[T](b, false)
}

// ParseMinimal works like [Parse] but returns an error if the VLQ is not
// minimally encoded (i.e. if it starts with a 0x80 byte).
func ParseMinimal[T Unsigned](b []byte) (T, int, error) {
	return parse[T](b, true)
}

// parse implements [Parse] and [ParseMinimal]. If minimal is true, the encoded
// VLQ must be minimally encoded.
func parse[T Unsigned](b []byte, minimal bool) (ret T, n int, err error) {
	if len(b) == 0 {
		return 0, 0, io.EOF
	}
	if b[0] == 0x80 && minimal {
		return 0, 0, ErrNotMinimal
	}

	numBits := 0
	for n < len(b) {
		c := b[n]
		n++
		ret <<= 7
		ret |= T(c & 0x7f)

		if numBits == 0 {
			numBits = bits.Len8(c & 0x7f)
		} else {
			numBits += 7
		}
		if numBits > int(unsafe.Sizeof(ret)*8) {
			return 0, n, ErrOverflow
		}
		if c&0x80 == 0 {
			return ret, n, nil
		}
	}
	return 0, n, io.ErrUnexpectedEOF
}

// Length returns the number of bytes needed to encode n as a VLQ.
func Length[T Unsigned](n T) int {
	if n == 0 {
		return 1
	}
	l := 0
	for i := n; i > 0; i >>= 7 {
		l++
	}
	return l
}

// Append appends the minimal VLQ encoding of i to dst and returns the extended
// buffer.
func Append[T Unsigned](dst []byte, i T) []byte {
	for j := Length(i) - 1; j >= 0; j-- {
		b := byte(i>>(j*7)) & 0x7f
		if j > 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}
