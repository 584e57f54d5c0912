// Copyright 2026 The Bencoding Authors. All rights reserved.
// Use of this source code is governed by the BSD 2-Clause license,
// which can be found in the LICENSE file.

// Package charset resolves IANA character-set names to text encodings.
package charset

import (
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Default is the encoding used when no charset is configured.
var Default encoding.Encoding = unicode.UTF8

// Lookup resolves an IANA charset name to its encoding. The empty name
// resolves to Default.
func Lookup(name string) (encoding.Encoding, error) {
	if name == "" {
		return Default, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown charset %q", name)
	}
	if enc == nil {
		// The index knows the name but carries no decoder for it.
		return nil, errors.Errorf("charset %q is not supported", name)
	}
	return enc, nil
}
