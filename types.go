// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package z3950

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unsafe"
)

//region [UNIVERSAL 3] BIT STRING

// BitString implements the ASN.1 BIT STRING type. A bit string is padded up to
// the nearest byte in memory and the number of valid bits is recorded. Padding
// bits will be encoded and decoded as zero bits.
//
// Z39.50 uses bit strings for the protocol version and the options negotiated
// during initialization. Bit 0 is the most significant bit of the first byte.
//
// See also section 22 of Rec. ITU-T X.680.
type BitString struct {
	Bytes     []byte // bits packed into bytes.
	BitLength int    // length in bits.
}

// NewBitString returns a BitString of length n where the bits at the given
// positions are set. NewBitString panics if a position is outside of [0, n).
func NewBitString(n int, set ...int) BitString {
	s := BitString{Bytes: make([]byte, (n+7)/8), BitLength: n}
	for _, i := range set {
		if i < 0 || i >= n {
			panic("z3950: bit position out of range")
		}
		s.Bytes[i/8] |= 0x80 >> uint(i%8)
	}
	return s
}

// IsValid reports whether there are enough bytes in s for the indicated
// BitLength.
func (s BitString) IsValid() bool {
	return s.BitLength >= 0 && len(s.Bytes) == (s.BitLength+8-1)/8
}

// Len returns the number of bits in s.
func (s BitString) Len() int {
	return s.BitLength
}

// At returns the bit at the given index. If the index is out of range At panics.
func (s BitString) At(i int) int {
	if i < 0 || i >= s.BitLength {
		panic("index out of range")
	}
	x := i / 8
	y := 7 - uint(i%8)
	return int(s.Bytes[x]>>y) & 1
}

// Equal reports whether s and other contain the same bits. Padding bits are
// ignored.
func (s BitString) Equal(other BitString) bool {
	if s.BitLength != other.BitLength || !s.IsValid() || !other.IsValid() {
		return false
	}
	if s.BitLength == 0 {
		return true
	}
	n := len(s.Bytes) - 1
	if !bytes.Equal(s.Bytes[:n], other.Bytes[:n]) {
		return false
	}
	mask := ^byte(1<<uint((8-s.BitLength%8)%8) - 1)
	return s.Bytes[n]&mask == other.Bytes[n]&mask
}

// String formats s as a sequence of '0' and '1' characters, grouped into bytes.
// The last group may have fewer than 8 characters.
func (s BitString) String() string {
	var sb strings.Builder
	sb.Grow(s.BitLength + s.BitLength/8)
	for i := 0; i < s.BitLength; i++ {
		if i > 0 && i%8 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('0' + byte(s.At(i)))
	}
	return sb.String()
}

//endregion

//region [UNIVERSAL 5] NULL

// Null represents the ASN.1 NULL type. Z39.50 uses NULL values as markers,
// for example for the boolean operators of a type-1 query.
//
// See also section 24 of Rec. ITU-T X.680.
type Null struct{}

// String returns the ASN.1 notation of a NULL value.
func (Null) String() string {
	return "NULL"
}

//endregion

//region [UNIVERSAL 6] OBJECT IDENTIFIER

// An ObjectIdentifier represents an ASN.1 OBJECT IDENTIFIER. The semantics of an object identifier are specified in [Rec. ITU-T X.660].
//
// See also section 32 of Rec. ITU-T X.680.
//
// [Rec. ITU-T X.660]: https://www.itu.int/rec/T-REC-X.660
type ObjectIdentifier []uint

// ParseObjectIdentifier parses the dot-separated notation of an object
// identifier.
func ParseObjectIdentifier(s string) (ObjectIdentifier, error) {
	parts := strings.Split(s, ".")
	oid := make(ObjectIdentifier, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 0)
		if err != nil {
			return nil, fmt.Errorf("invalid object identifier %q: %w", s, err)
		}
		oid[i] = uint(v)
	}
	if !oid.IsValid() {
		return nil, fmt.Errorf("invalid object identifier %q", s)
	}
	return oid, nil
}

// IsValid reports whether oid has at least two arcs and its first two arcs are
// within the ranges permitted by X.660.
func (oid ObjectIdentifier) IsValid() bool {
	return len(oid) >= 2 && oid[0] <= 2 && (oid[0] == 2 || oid[1] < 40)
}

// Equal reports whether oid and other represent the same identifier.
func (oid ObjectIdentifier) Equal(other ObjectIdentifier) bool {
	return slices.Equal(oid, other)
}

// String returns the dot-separated notation of oid.
func (oid ObjectIdentifier) String() string {
	var s strings.Builder
	s.Grow(32)

	buf := make([]byte, 0, 19)
	for i, v := range oid {
		if i > 0 {
			s.WriteByte('.')
		}
		s.Write(strconv.AppendUint(buf, uint64(v), 10))
	}

	return s.String()
}

//endregion

//region [UNIVERSAL 8] EXTERNAL

// ExternalEncoding identifies the alternative chosen for the encoding of an
// [External] value.
type ExternalEncoding uint8

// These are the alternatives of the encoding CHOICE of the EXTERNAL type.
const (
	SingleASN1Type ExternalEncoding = iota // [0] ANY
	OctetAligned                           // [1] IMPLICIT OCTET STRING
	Arbitrary                              // [2] IMPLICIT BIT STRING
)

// String returns the ASN.1 identifier of the alternative.
func (e ExternalEncoding) String() string {
	switch e {
	case SingleASN1Type:
		return "single-ASN1-type"
	case OctetAligned:
		return "octet-aligned"
	case Arbitrary:
		return "arbitrary"
	default:
		return "ExternalEncoding(" + strconv.Itoa(int(e)) + ")"
	}
}

// External represents a value of the ASN.1 EXTERNAL type in its X.208 form:
//
//	EXTERNAL ::= [UNIVERSAL 8] IMPLICIT SEQUENCE {
//		direct-reference      OBJECT IDENTIFIER OPTIONAL,
//		indirect-reference    INTEGER OPTIONAL,
//		data-value-descriptor ObjectDescriptor OPTIONAL,
//		encoding CHOICE {
//			single-ASN1-type [0] ANY,
//			octet-aligned    [1] IMPLICIT OCTET STRING,
//			arbitrary        [2] IMPLICIT BIT STRING } }
//
// A value whose DirectReference is set is syntax-identified: the object
// identifier names the abstract syntax of the embedded value (in Z39.50 usually
// a record syntax). A value that only carries an IndirectReference is
// identified by a presentation context negotiated out of band.
//
// Only the field selected by Encoding is significant.
type External struct {
	DirectReference     ObjectIdentifier // nil if absent
	IndirectReference   *int64           // nil if absent
	DataValueDescriptor *string          // nil if absent

	Encoding       ExternalEncoding
	SingleASN1Type RawValue  // the complete encoding of the embedded value
	OctetAligned   []byte    // opaque octets, e.g. a MARC record
	Arbitrary      BitString // opaque bits
}

// SyntaxIdentified reports whether e names the syntax of its data through a
// direct reference.
func (e External) SyntaxIdentified() bool {
	return e.DirectReference != nil
}

// Equal reports whether e and other hold the same value.
func (e External) Equal(other External) bool {
	if !e.DirectReference.Equal(other.DirectReference) ||
		(e.IndirectReference == nil) != (other.IndirectReference == nil) ||
		(e.DataValueDescriptor == nil) != (other.DataValueDescriptor == nil) ||
		e.Encoding != other.Encoding {
		return false
	}
	if e.IndirectReference != nil && *e.IndirectReference != *other.IndirectReference {
		return false
	}
	if e.DataValueDescriptor != nil && *e.DataValueDescriptor != *other.DataValueDescriptor {
		return false
	}
	switch e.Encoding {
	case SingleASN1Type:
		return e.SingleASN1Type.Equal(other.SingleASN1Type)
	case OctetAligned:
		return bytes.Equal(e.OctetAligned, other.OctetAligned)
	case Arbitrary:
		return e.Arbitrary.Equal(other.Arbitrary)
	}
	return false
}

// String returns a short description of e. The embedded data is summarized by
// its length.
func (e External) String() string {
	var s strings.Builder
	s.WriteString("EXTERNAL{")
	if e.DirectReference != nil {
		s.WriteString(e.DirectReference.String())
		s.WriteByte(' ')
	}
	if e.IndirectReference != nil {
		s.WriteString("indirect ")
		s.WriteString(strconv.FormatInt(*e.IndirectReference, 10))
		s.WriteByte(' ')
	}
	s.WriteString(e.Encoding.String())
	switch e.Encoding {
	case SingleASN1Type:
		s.WriteByte(' ')
		s.WriteString(e.SingleASN1Type.String())
	case OctetAligned:
		fmt.Fprintf(&s, " {%d bytes}", len(e.OctetAligned))
	case Arbitrary:
		fmt.Fprintf(&s, " {%d bits}", e.Arbitrary.BitLength)
	}
	s.WriteByte('}')
	return s.String()
}

//endregion

//region [UNIVERSAL 24] GeneralizedTime

// GeneralizedTime represents the corresponding ASN.1 type. This type can
// represent dates between years 1 and 9999. Values in the [time.Local] location
// are encoded without a time zone designator.
//
// See also section 46 of Rec. ITU-T X.680.
type GeneralizedTime time.Time

// IsValid reports if the year of t is between 1 and 9999.
func (t GeneralizedTime) IsValid() bool {
	year := time.Time(t).Year()
	return year >= 1 && year <= 9999
}

// Equal reports whether t and u have the same representation.
func (t GeneralizedTime) Equal(u GeneralizedTime) bool {
	return t.String() == u.String()
}

// String returns a string representation of t that matches its representation
// in ASN.1 notation.
func (t GeneralizedTime) String() string {
	tt := time.Time(t)
	b := strings.Builder{}
	b.Grow(29) // allocate enough space for nanosecond precision
	b.WriteString(itoaN(tt.Year()%10000, 4))
	b.WriteString(itoaN(tt.Month(), 2))
	b.WriteString(itoaN(tt.Day(), 2))
	b.WriteString(itoaN(tt.Hour(), 2))
	b.WriteString(itoaN(tt.Minute(), 2))
	b.WriteString(itoaN(tt.Second(), 2))
	if tt.Nanosecond() > 0 {
		s := strconv.FormatFloat(float64(tt.Nanosecond())/float64(time.Second), 'f', -1, 64)
		b.WriteString(s[1:])
	}
	if tt.Location() == time.Local {
		return b.String()
	}
	_, offset := tt.Zone()
	offset /= 60
	if offset == 0 {
		b.WriteByte('Z')
		return b.String()
	}
	if offset < 0 {
		b.WriteByte('-')
	} else {
		b.WriteByte('+')
	}
	b.WriteString(itoaN(offset/60, 2))
	b.WriteString(itoaN(offset%60, 2))
	return b.String()
}

// itoaN returns the base 10 string representation of the absolute value of i,
// truncated or zero padded to exactly n digits.
func itoaN[T ~int](i T, n int) string {
	if i < 0 {
		i = -i
	}
	bs := make([]byte, n)
	for ; n > 0; n-- {
		bs[n-1] = '0' + byte(i%10)
		i /= 10
	}
	return unsafe.String(unsafe.SliceData(bs), len(bs))
}

//endregion

//region ANY

// A RawValue represents an un-decoded ASN.1 value, as used for open types
// (ANY). Bytes holds the content octets. If Constructed is true, Bytes is a
// sequence of complete BER encodings.
type RawValue struct {
	Tag         Tag
	Constructed bool
	Bytes       []byte
}

// Equal reports whether rv and other hold the same encoding.
func (rv RawValue) Equal(other RawValue) bool {
	return rv.Tag == other.Tag && rv.Constructed == other.Constructed && bytes.Equal(rv.Bytes, other.Bytes)
}

// String returns a string representation of rv. The byte contents of rv are
// only included if they are short enough.
func (rv RawValue) String() string {
	constructed := "primitive"
	if rv.Constructed {
		constructed = "constructed"
	}
	if len(rv.Bytes) > 24 {
		return fmt.Sprintf("RawValue{%s (%s) {%d bytes}}", rv.Tag.String(), constructed, len(rv.Bytes))
	}
	return fmt.Sprintf("RawValue{%s (%s) {% X}}", rv.Tag.String(), constructed, rv.Bytes)
}

//endregion
