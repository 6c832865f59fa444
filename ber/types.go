// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

import (
	"encoding/binary"
	"errors"
	"iter"
	"math/bits"
	"time"

	"codello.dev/z3950"
	"codello.dev/z3950/internal/vlq"
	"codello.dev/z3950/tlv"
)

//region [UNIVERSAL 1] BOOLEAN

// EncodeBoolean returns the encoding of v. The value false is encoded as 0x00,
// true is encoded as 0xFF.
func EncodeBoolean(v bool) *tlv.Node {
	b := byte(0x00)
	if v {
		b = 0xff
	}
	return tlv.NewPrimitive(z3950.Universal(z3950.TagBoolean), []byte{b})
}

// DecodeBoolean decodes a BOOLEAN value. Any non-zero byte is decoded as true.
func DecodeBoolean(n *tlv.Node) (bool, error) {
	b, err := primitive(n)
	if err != nil {
		return false, err
	}
	if len(b) != 1 {
		return false, &SyntaxError{n.Tag(), errors.New("invalid boolean")}
	}
	return b[0] != 0, nil
}

//endregion

//region [UNIVERSAL 2] INTEGER

// AppendInteger appends the minimal two's complement encoding of v to dst.
func AppendInteger(dst []byte, v int64) []byte {
	var bs [8]byte
	u64 := uint64(v)
	binary.BigEndian.PutUint64(bs[:], u64)
	var l int
	if v < 0 {
		l = 8 - (bits.LeadingZeros64(^u64)-1)/8
	} else {
		l = 8 - (bits.LeadingZeros64(u64)-1)/8
	}
	return append(dst, bs[8-l:]...)
}

// EncodeInteger returns the encoding of v.
func EncodeInteger(v int64) *tlv.Node {
	return tlv.NewPrimitive(z3950.Universal(z3950.TagInteger), AppendInteger(nil, v))
}

// DecodeInteger decodes an INTEGER value. The value must be minimally encoded
// and fit into an int64.
func DecodeInteger(n *tlv.Node) (int64, error) {
	b, err := primitive(n)
	if err != nil {
		return 0, err
	}
	return parseInteger(n.Tag(), b)
}

// parseInteger decodes the two's complement integer in b.
func parseInteger(tag z3950.Tag, b []byte) (int64, error) {
	if len(b) == 0 {
		return 0, &SyntaxError{tag, errors.New("empty integer")}
	}
	if len(b) > 1 && (b[0] == 0x00 && b[1]&0x80 == 0 || b[0] == 0xff && b[1]&0x80 != 0) {
		return 0, &SyntaxError{tag, errors.New("integer not minimally-encoded")}
	}
	if len(b) > 8 {
		return 0, &SyntaxError{tag, errors.New("integer too large")}
	}
	var val uint64
	for _, c := range b {
		val = val<<8 | uint64(c)
	}
	// Shift up and down in order to sign extend the result.
	i := int64(val << (64 - len(b)*8))
	return i >> (64 - len(b)*8), nil
}

//endregion

//region [UNIVERSAL 3] BIT STRING

// EncodeBitString returns the encoding of s. Padding bits are encoded as zero
// bits.
func EncodeBitString(s z3950.BitString) (*tlv.Node, error) {
	if !s.IsValid() {
		return nil, errors.New("ber: BitString is not valid")
	}
	padding := byte((8 - s.BitLength%8) % 8)
	b := make([]byte, 1+len(s.Bytes))
	b[0] = padding
	copy(b[1:], s.Bytes)
	if len(s.Bytes) > 0 {
		// zero out any padding bits
		b[len(b)-1] &= ^byte(1<<uint(padding) - 1)
	}
	return tlv.NewPrimitive(z3950.Universal(z3950.TagBitString), b), nil
}

// DecodeBitString decodes a BIT STRING value. The constructed encoding is
// supported. Padding bits are decoded as zero bits.
func DecodeBitString(n *tlv.Node) (z3950.BitString, error) {
	var buf []byte
	var padding byte
	for seg, err := range segments(n, z3950.Universal(z3950.TagBitString)) {
		if err != nil {
			return z3950.BitString{}, err
		}
		if padding != 0 {
			return z3950.BitString{}, &SyntaxError{n.Tag(), errors.New("non-zero padding in constructed BIT STRING")}
		}
		if len(seg) == 0 {
			return z3950.BitString{}, &SyntaxError{n.Tag(), errors.New("zero length BIT STRING")}
		}
		padding = seg[0]
		if padding > 7 || len(seg) == 1 && padding > 0 {
			return z3950.BitString{}, &SyntaxError{n.Tag(), errors.New("invalid padding bits in BIT STRING")}
		}
		buf = append(buf, seg[1:]...)
	}
	bs := z3950.BitString{
		BitLength: len(buf)*8 - int(padding),
		Bytes:     buf,
	}
	if len(buf) > 0 {
		// zero out padding bits
		bs.Bytes[len(bs.Bytes)-1] &= ^byte(1<<uint(padding) - 1)
	} else {
		bs.Bytes = []byte{}
	}
	return bs, nil
}

//endregion

//region [UNIVERSAL 4] OCTET STRING

// EncodeOctetString returns the encoding of b using the primitive form.
func EncodeOctetString(b []byte) *tlv.Node {
	return tlv.NewPrimitive(z3950.Universal(z3950.TagOctetString), b)
}

// DecodeOctetString decodes an OCTET STRING value. The constructed encoding is
// supported. The result does not share memory with n.
func DecodeOctetString(n *tlv.Node) ([]byte, error) {
	if !n.Constructed() {
		return append([]byte{}, n.Content()...), nil
	}
	buf := make([]byte, 0, n.Len())
	for seg, err := range segments(n, z3950.Universal(z3950.TagOctetString)) {
		if err != nil {
			return nil, err
		}
		buf = append(buf, seg...)
	}
	return buf, nil
}

// segments iterates over the primitive segments of a string type that may use
// the constructed encoding. Segments of a constructed value must be tagged with
// the given tag or with the tag of n itself.
func segments(n *tlv.Node, tag z3950.Tag) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		walkSegments(n, n.Tag(), tag, yield)
	}
}

// walkSegments implements segments. It returns false if iteration should stop.
func walkSegments(n *tlv.Node, outer, tag z3950.Tag, yield func([]byte, error) bool) bool {
	if !n.Constructed() {
		return yield(n.Content(), nil)
	}
	for _, c := range n.Children() {
		if c.Tag() != tag && c.Tag() != outer {
			return yield(nil, &SyntaxError{outer, errors.New("invalid segment " + c.Tag().String() + " in constructed string")})
		}
		if !walkSegments(c, outer, tag, yield) {
			return false
		}
	}
	return true
}

//endregion

//region [UNIVERSAL 5] NULL

// EncodeNull returns the encoding of a NULL value.
func EncodeNull() *tlv.Node {
	return tlv.NewPrimitive(z3950.Universal(z3950.TagNull), nil)
}

// DecodeNull validates the encoding of a NULL value.
func DecodeNull(n *tlv.Node) (z3950.Null, error) {
	if n.Constructed() || n.Len() > 0 {
		return z3950.Null{}, &SyntaxError{n.Tag(), errors.New("invalid NULL value")}
	}
	return z3950.Null{}, nil
}

//endregion

//region [UNIVERSAL 6] OBJECT IDENTIFIER

// EncodeObjectIdentifier returns the encoding of oid. The first two arcs are
// encoded into a single subidentifier. Every subidentifier uses a
// variable-length base128 encoding.
func EncodeObjectIdentifier(oid z3950.ObjectIdentifier) (*tlv.Node, error) {
	if !oid.IsValid() {
		return nil, errors.New("ber: invalid ObjectIdentifier " + oid.String())
	}
	b := vlq.Append(nil, oid[0]*40+oid[1])
	for _, arc := range oid[2:] {
		b = vlq.Append(b, arc)
	}
	return tlv.NewPrimitive(z3950.Universal(z3950.TagOID), b), nil
}

// DecodeObjectIdentifier decodes an OBJECT IDENTIFIER value.
func DecodeObjectIdentifier(n *tlv.Node) (z3950.ObjectIdentifier, error) {
	b, err := primitive(n)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, &SyntaxError{n.Tag(), errors.New("zero length OBJECT IDENTIFIER")}
	}

	// The first varint is 40*value1 + value2:
	// According to this packing, value1 can take the values 0, 1 and 2 only.
	// When value1 = 0 or value1 = 1, then value2 is <= 39. When value1 = 2,
	// then there are no restrictions on value2.
	v, l, err := vlq.ParseMinimal[uint](b)
	if err != nil {
		return nil, &SyntaxError{n.Tag(), err}
	}
	b = b[l:]

	// In the worst case, we get two elements from the first byte (which is
	// encoded differently) and then every varint is a single byte long.
	s := make(z3950.ObjectIdentifier, 2, len(b)+2)
	if v < 80 {
		s[0] = v / 40
		s[1] = v % 40
	} else {
		s[0] = 2
		s[1] = v - 80
	}
	for len(b) > 0 {
		v, l, err = vlq.ParseMinimal[uint](b)
		if err != nil {
			return nil, &SyntaxError{n.Tag(), err}
		}
		s = append(s, v)
		b = b[l:]
	}
	return s, nil
}

//endregion

//region [UNIVERSAL 24] GeneralizedTime

// EncodeGeneralizedTime returns the encoding of t. Values are encoded as their
// ASN.1 string representation.
func EncodeGeneralizedTime(t z3950.GeneralizedTime) (*tlv.Node, error) {
	if !t.IsValid() {
		return nil, errors.New("ber: cannot represent time as GeneralizedTime")
	}
	return tlv.NewPrimitive(z3950.Universal(z3950.TagGeneralizedTime), []byte(t.String())), nil
}

// DecodeGeneralizedTime decodes a GeneralizedTime value. Values without a time
// zone designator are decoded in the [time.Local] location. Sub-nanosecond
// precision is silently discarded.
func DecodeGeneralizedTime(n *tlv.Node) (z3950.GeneralizedTime, error) {
	bs, err := DecodeOctetString(n)
	if err != nil {
		return z3950.GeneralizedTime{}, err
	}
	t, ok := parseGeneralizedTime(string(bs))
	if !ok {
		return z3950.GeneralizedTime{}, &SyntaxError{n.Tag(), errors.New("invalid GeneralizedTime")}
	}
	return z3950.GeneralizedTime(t), nil
}

// parseGeneralizedTime parses the string representation of a GeneralizedTime.
func parseGeneralizedTime(s string) (time.Time, bool) {
	if len(s) < 10 {
		return time.Time{}, false
	}
	year := atoiN[int](s, 4)
	month := atoiN[time.Month](s[4:], 2)
	day := atoiN[int](s[6:], 2)
	hour := atoiN[time.Duration](s[8:], 2)
	if year < 0 || hour < 0 || 23 < hour {
		return time.Time{}, false
	}
	s = s[10:]
	dur := hour * time.Hour
	unit := time.Hour // unit for fractional time
	if len(s) >= 2 && '0' <= s[0] && s[0] <= '9' {
		minute := atoiN[time.Duration](s, 2)
		if minute < 0 || 59 < minute {
			return time.Time{}, false
		}
		dur += minute * time.Minute
		unit = time.Minute
		s = s[2:]
	}
	if len(s) >= 2 && '0' <= s[0] && s[0] <= '9' {
		second := atoiN[time.Duration](s, 2)
		if second < 0 || 59 < second {
			return time.Time{}, false
		}
		unit = time.Second
		dur += second * time.Second
		s = s[2:]
	}
	if len(s) > 0 && (s[0] == '.' || s[0] == ',') {
		i := 1
		for ; i < len(s); i++ {
			if s[i] < '0' || '9' < s[i] {
				break
			}
			unit /= 10
			dur += time.Duration(s[i]-'0') * unit
		}
		if i == 1 {
			return time.Time{}, false
		}
		s = s[i:]
	}
	loc := time.Local
	if len(s) > 0 {
		if loc = parseLocation(s); loc == nil {
			return time.Time{}, false
		}
	}
	ret := time.Date(year, month, day, 0, 0, 0, 0, loc)
	ret = ret.Add(dur)
	if ret.Year() != year || ret.Month() != month || ret.Day() != day {
		return time.Time{}, false
	}
	return ret, true
}

// parseLocation parses a time zone designator.
func parseLocation(s string) *time.Location {
	if len(s) == 1 && s[0] == 'Z' {
		return time.UTC
	}
	if len(s) != 5 {
		return nil
	}
	if s[0] != '+' && s[0] != '-' {
		return nil
	}
	mul := 44 - int(s[0])
	locHour := atoiN[int](s[1:], 2)
	locMinute := atoiN[int](s[3:], 2)
	if locHour < 0 || locMinute < 0 {
		return nil
	}
	return time.FixedZone("", mul*(locHour*3600+locMinute*60))
}

// atoiN parses the first n decimal digits of s. It returns -1 if s does not
// start with n digits.
func atoiN[T ~int | ~int64](s string, n int) (i T) {
	if len(s) < n {
		return -1
	}
	for j := 0; j < n; j++ {
		if s[j] < '0' || '9' < s[j] {
			return -1
		}
		i = i*10 + T(s[j]-'0')
	}
	return i
}

//endregion

//region [UNIVERSAL 26] VisibleString and [UNIVERSAL 27] GeneralString

// EncodeVisibleString returns the encoding of s as a VisibleString.
func EncodeVisibleString(s string) *tlv.Node {
	return tlv.NewPrimitive(z3950.Universal(z3950.TagVisibleString), []byte(s))
}

// EncodeGeneralString returns the encoding of s as a GeneralString. Z39.50
// uses GeneralString for its InternationalString type.
func EncodeGeneralString(s string) *tlv.Node {
	return tlv.NewPrimitive(z3950.Universal(z3950.TagGeneralString), []byte(s))
}

// DecodeString decodes the value of a character string type. The constructed
// encoding is supported. The bytes are not validated against the character
// repertoire of the type.
func DecodeString(n *tlv.Node) (string, error) {
	if !n.Constructed() {
		return string(n.Content()), nil
	}
	b, err := DecodeOctetString(n)
	return string(b), err
}

//endregion
