package vlq

import (
	"errors"
	"io"
	"slices"
	"strconv"
	"testing"
)

//region Testing Helpers

// parseTestCase represents a single parsing test case for type T.
type parseTestCase[T Unsigned] struct {
	data    []byte // input
	wantN   int    // number of bytes consumed
	want    T      // expected output
	wantErr error  // expected error
}

// testParse asserts that decoding a VLQ using f from tc.data produces the
// expected results.
func testParse[T Unsigned](t *testing.T, name string, f func([]byte) (T, int, error), tc parseTestCase[T]) {
	t.Helper()

	got, n, err := f(tc.data)
	if !errors.Is(err, tc.wantErr) {
		t.Fatalf("%s(% X) error = %v, wantErr %v", name, tc.data, err, tc.wantErr)
	}
	if err != nil {
		return
	}
	if got != tc.want {
		t.Errorf("%s(% X) got = %v, want %v", name, tc.data, got, tc.want)
	}
	if n != tc.wantN {
		t.Errorf("%s(% X) n = %d, want %d", name, tc.data, n, tc.wantN)
	}
}

// appendTestCase represents a single encoding test case for type T.
type appendTestCase[T Unsigned] struct {
	value T
	want  []byte
}

// testAppend asserts that appending tc.value produces the bytes in tc.want.
func testAppend[T Unsigned](t *testing.T, tc appendTestCase[T]) {
	t.Helper()

	l := Length(tc.value)
	if l != len(tc.want) {
		t.Errorf("Length(%d) = %d, want %d", tc.value, l, len(tc.want))
	}
	prefix := []byte{0xAA}
	got := Append(prefix, tc.value)
	if !slices.Equal(got[1:], tc.want) || got[0] != 0xAA {
		t.Errorf("Append(%d) = % X, want AA % X", tc.value, got, tc.want)
	}
}

//endregion

//region Parse Tests

func TestParse(t *testing.T) {
	tests := map[string]parseTestCase[uint]{
		"SingleByte":    {[]byte{0x05}, 1, 5, nil},
		"MultiByte":     {[]byte{0x85, 0x01, 0x00}, 2, 641, nil},
		"LeadingZeros":  {[]byte{0x80, 0x85, 0x01}, 3, 641, nil},
		"EOF":           {nil, 0, 0, io.EOF},
		"UnexpectedEOF": {[]byte{0x81, 0x80}, 0, 0, io.ErrUnexpectedEOF},
		"Overflow":      {[]byte{0x81, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00}, 0, 0, ErrOverflow}, // assumes uint size of 8 bytes (64 bit architecture)
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			testParse(t, "Parse", Parse[uint], tc)
		})
	}
}

func TestParse8(t *testing.T) {
	tests := map[string]parseTestCase[uint8]{
		"SingleByte": {[]byte{0x05}, 1, 5, nil},
		"MaxValue":   {[]byte{0x81, 0x7F}, 2, 255, nil},
		"Overflow":   {[]byte{0x85, 0x01, 0x00}, 0, 0, ErrOverflow},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			testParse(t, "Parse", Parse[uint8], tc)
		})
	}
}

func TestParseMinimal(t *testing.T) {
	tests := map[string]parseTestCase[uint]{
		"Minimal":    {[]byte{0x81, 0x57}, 2, 215, nil},
		"NonMinimal": {[]byte{0x80, 0x85, 0x01}, 0, 0, ErrNotMinimal},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			testParse(t, "ParseMinimal", ParseMinimal[uint], tc)
		})
	}
}

//endregion

//region Append Tests

func TestAppend(t *testing.T) {
	tests := []appendTestCase[uint]{
		{0, []byte{0x00}},
		{25, []byte{25}},
		{215, []byte{0x81, 0x57}},
		{641, []byte{0x85, 0x01}},
		{10003, []byte{0xCE, 0x13}},
	}
	for _, tc := range tests {
		t.Run(strconv.FormatUint(uint64(tc.value), 10), func(t *testing.T) {
			testAppend(t, tc)
		})
	}
}

func TestAppend8(t *testing.T) {
	tests := []appendTestCase[uint8]{
		{0, []byte{0x00}},
		{200, []byte{0x81, 0x48}},
	}
	for _, tc := range tests {
		t.Run(strconv.FormatUint(uint64(tc.value), 10), func(t *testing.T) {
			testAppend(t, tc)
		})
	}
}

//endregion

func BenchmarkLength(b *testing.B) {
	for b.Loop() {
		Length(uint8(200))
	}
}
