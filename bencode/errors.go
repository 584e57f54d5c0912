// Copyright 2026 The Bencoding Authors. All rights reserved.
// Use of this source code is governed by the BSD 2-Clause license,
// which can be found in the LICENSE file.

package bencode

import (
	"errors"
	"fmt"
)

var (
	// ErrEndOfInput is returned when the underlying source is exhausted
	// before a complete value has been decoded.
	ErrEndOfInput = errors.New("bencode: unexpected end of input")

	// ErrMalformedLength is returned when a byte-string length prefix is
	// missing or contains a non-numeric byte.
	ErrMalformedLength = errors.New("bencode: malformed string length")

	// ErrMalformedNumber is returned when the body of a number token
	// cannot be parsed.
	ErrMalformedNumber = errors.New("bencode: malformed number")

	// ErrUnknownToken is returned when a lead byte matches no grammar
	// rule and no token handler was configured.
	ErrUnknownToken = errors.New("bencode: unrecognized token")
)

// A TypeMismatchError is returned when a decoded value does not hold the
// variant a typed accessor asked for.
type TypeMismatchError struct {
	Want Kind
	Got  Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("bencode: type mismatch: want %s, got %s", e.Want, e.Got)
}

// An UnknownEnumError is returned when a decoded string matches none of the
// symbolic values supplied to ReadEnum.
type UnknownEnumError struct {
	Value string
}

func (e *UnknownEnumError) Error() string {
	return fmt.Sprintf("bencode: %q is not a known enum value", e.Value)
}
