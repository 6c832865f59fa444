// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tlv

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// A Reader reads a sequence of top-level data values from a byte stream. Peers
// of a Z39.50 association send APDUs back to back without additional framing,
// so the header of each value determines where the next one starts.
//
// The limits of the embedded [Parser] apply to each value individually.
type Reader struct {
	Parser

	rd  *bufio.Reader
	off int64
}

// NewReader returns a Reader that reads from r. If r is a [*bufio.Reader] it is
// used directly.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{rd: br}
}

// InputOffset returns the number of bytes consumed from the underlying reader.
// Before a call to [Reader.ReadFrame] or [Reader.Next] it is the stream offset
// of the next data value.
func (r *Reader) InputOffset() int64 { return r.off }

// ReadFrame reads the next data value and returns its complete encoding. The
// contents are not inspected. At the end of the stream ReadFrame returns
// [io.EOF]. If the stream ends within a data value, the error wraps
// [ErrTruncatedInput].
func (r *Reader) ReadFrame() ([]byte, error) {
	start := r.off
	b := make([]byte, 0, 8)
	var (
		h   Header
		hl  int
		err error
	)
	for {
		c, rErr := r.rd.ReadByte()
		if rErr == io.EOF && len(b) == 0 {
			return nil, io.EOF
		} else if rErr == io.EOF {
			return nil, r.errorAt(start, ErrTruncatedInput)
		} else if rErr != nil {
			return nil, rErr
		}
		r.off++
		b = append(b, c)
		if h, hl, err = ReadHeader(b, 0); err == nil {
			break
		} else if !errors.Is(err, ErrTruncatedInput) {
			var sErr *SyntaxError
			if errors.As(err, &sErr) {
				sErr.ByteOffset = int(start)
			}
			return nil, err
		}
	}
	if h.Tag == TagEndOfContents {
		return nil, r.errorAt(start, errInvalidEOC)
	}
	if r.MaxSize > 0 && h.Length > r.MaxSize-hl {
		return nil, r.errorAt(start, ErrTooLarge)
	}

	// The buffer grows with the data actually received.
	buf := bytes.NewBuffer(b)
	n, err := io.CopyN(buf, r.rd, int64(h.Length))
	r.off += n
	if err == io.EOF {
		return nil, r.errorAt(start, ErrTruncatedInput)
	} else if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Next reads and parses the next data value. Offsets of the returned nodes and
// of syntax errors are relative to the start of the value. At the end of the
// stream Next returns [io.EOF].
func (r *Reader) Next() (*Node, error) {
	b, err := r.ReadFrame()
	if err != nil {
		return nil, err
	}
	return r.Parser.Parse(b)
}

func (r *Reader) errorAt(off int64, err error) error {
	return &SyntaxError{Err: err, ByteOffset: int(off)}
}
