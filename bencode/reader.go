// Copyright 2026 The Bencoding Authors. All rights reserved.
// Use of this source code is governed by the BSD 2-Clause license,
// which can be found in the LICENSE file.

package bencode

import "io"

// byteSource is a pull-based byte reader with a single byte of pushback.
// The grammar never needs more than one byte of lookahead, so this is the
// only buffering between the decoder and the underlying reader: handing the
// decoder a shared stream loses nothing beyond the bytes it consumed.
type byteSource struct {
	r   io.Reader
	pb  byte
	has bool
	one [1]byte
}

func newByteSource(r io.Reader) *byteSource {
	return &byteSource{r: r}
}

// pop consumes and returns the next byte.
func (s *byteSource) pop() (byte, error) {
	if s.has {
		s.has = false
		return s.pb, nil
	}
	for {
		n, err := s.r.Read(s.one[:])
		if n == 1 {
			return s.one[0], nil
		}
		if err == io.EOF {
			return 0, ErrEndOfInput
		}
		if err != nil {
			return 0, err
		}
	}
}

// unread pushes b back so the next pop returns it again. Only one byte may
// be pushed back at a time.
func (s *byteSource) unread(b byte) {
	s.pb = b
	s.has = true
}

// peek returns the next byte without consuming it.
func (s *byteSource) peek() (byte, error) {
	b, err := s.pop()
	if err != nil {
		return 0, err
	}
	s.unread(b)
	return b, nil
}

// readFull fills p, retrying short reads until either the buffer is full or
// the source is exhausted.
func (s *byteSource) readFull(p []byte) error {
	n := 0
	if s.has && len(p) > 0 {
		p[0] = s.pb
		s.has = false
		n = 1
	}
	for n < len(p) {
		nn, err := s.r.Read(p[n:])
		n += nn
		if n == len(p) {
			return nil
		}
		if err == io.EOF {
			return ErrEndOfInput
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// skip discards up to n bytes and returns the count actually skipped. Unlike
// the other operations, running out of input is not an error here.
func (s *byteSource) skip(n int) (int, error) {
	skipped := 0
	if s.has && n > 0 {
		s.has = false
		skipped = 1
	}
	var scratch [512]byte
	for skipped < n {
		chunk := n - skipped
		if chunk > len(scratch) {
			chunk = len(scratch)
		}
		nn, err := s.r.Read(scratch[:chunk])
		skipped += nn
		if err == io.EOF {
			return skipped, nil
		}
		if err != nil {
			return skipped, err
		}
	}
	return skipped, nil
}
