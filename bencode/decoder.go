// Copyright 2026 The Bencoding Authors. All rights reserved.
// Use of this source code is governed by the BSD 2-Clause license,
// which can be found in the LICENSE file.

package bencode

import (
	"bytes"
	"io"
	"math/big"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"

	"github.com/ardverk/bencoding/pkg/charset"
)

// A TokenHandler decodes a token whose lead byte matches no built-in
// grammar rule. The lead byte has been peeked but not consumed: the handler
// reads it from d itself. Returning an error aborts the decode.
type TokenHandler func(lead byte, d *Decoder) (Value, error)

// Config represents the configurable options for a Decoder.
type Config struct {
	// Charset is the IANA name of the encoding used to materialize text.
	// Empty means UTF-8.
	Charset string `yaml:"charset"`

	// DecodeAsString materializes every byte-string as text instead of raw
	// bytes. Dictionary keys are text regardless of this setting.
	DecodeAsString bool `yaml:"decode_as_string"`

	// Handler is invoked for unrecognized lead bytes. When nil, such
	// bytes fail the decode with ErrUnknownToken.
	Handler TokenHandler `yaml:"-"`
}

// A Decoder reads bencoded values from an input stream. It exclusively owns
// its source for the duration of a decode call and keeps no state beyond a
// single byte of pushback; it is not safe for concurrent use.
type Decoder struct {
	src            *byteSource
	enc            encoding.Encoding
	decodeAsString bool
	handler        TokenHandler
}

// New returns a Decoder reading from r with the given configuration.
func New(r io.Reader, cfg Config) (*Decoder, error) {
	enc, err := charset.Lookup(cfg.Charset)
	if err != nil {
		return nil, err
	}
	return &Decoder{
		src:            newByteSource(r),
		enc:            enc,
		decodeAsString: cfg.DecodeAsString,
		handler:        cfg.Handler,
	}, nil
}

// NewDecoder returns a Decoder with the default configuration: UTF-8 text
// and raw byte-strings.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{src: newByteSource(r), enc: charset.Default}
}

// Unmarshal decodes and returns the first bencoded value in buf.
func Unmarshal(buf []byte) (Value, error) {
	return NewDecoder(bytes.NewReader(buf)).ReadObject()
}

// tokenKind classifies a lead byte without consuming anything.
func tokenKind(lead byte) Kind {
	switch {
	case lead == 'd':
		return KindDict
	case lead == 'l':
		return KindList
	case lead == 'i':
		return KindInteger
	case isDigit(lead):
		return KindBytes
	}
	return KindCustom
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

// ReadObject decodes the next value in the stream. This is the single
// dispatch point: aggregates recurse back through it for every element.
func (d *Decoder) ReadObject() (Value, error) {
	lead, err := d.src.peek()
	if err != nil {
		return Value{}, err
	}

	switch {
	case lead == 'd':
		dict, err := d.readDict()
		if err != nil {
			return Value{}, err
		}
		return DictValue(dict), nil

	case lead == 'l':
		list, err := d.readList()
		if err != nil {
			return Value{}, err
		}
		return ListValue(list...), nil

	case lead == 'i':
		return d.readNumber()

	case isDigit(lead):
		raw, err := d.readBytes()
		if err != nil {
			return Value{}, err
		}
		if d.decodeAsString {
			s, err := d.decodeText(raw, d.enc)
			if err != nil {
				return Value{}, err
			}
			return StringValue(s), nil
		}
		return BytesValue(raw), nil

	default:
		if d.handler != nil {
			return d.handler(lead, d)
		}
		return Value{}, errors.Wrapf(ErrUnknownToken, "lead byte %q", lead)
	}
}

// expect consumes one byte and fails with a TypeMismatchError when it is
// not the given token.
func (d *Decoder) expect(tok byte, want Kind) error {
	b, err := d.src.pop()
	if err != nil {
		return err
	}
	if b != tok {
		return &TypeMismatchError{Want: want, Got: tokenKind(b)}
	}
	return nil
}

// readLength parses the ASCII digit run and trailing ':' of a byte-string.
func (d *Decoder) readLength() (int, error) {
	var digits []byte
	for {
		b, err := d.src.pop()
		if err != nil {
			return 0, err
		}
		if b == ':' {
			break
		}
		if !isDigit(b) {
			return 0, errors.Wrapf(ErrMalformedLength, "byte %q in length prefix", b)
		}
		digits = append(digits, b)
	}
	if len(digits) == 0 {
		return 0, errors.Wrap(ErrMalformedLength, "empty length prefix")
	}
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedLength, "length prefix %q", digits)
	}
	return n, nil
}

// readBytes decodes one byte-string token and returns its raw bytes.
func (d *Decoder) readBytes() ([]byte, error) {
	n, err := d.readLength()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := d.src.readFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// readNumber decodes one number token. The body runs to the 'e' terminator;
// a '.' anywhere in the body selects the decimal extension over the
// canonical integer grammar.
func (d *Decoder) readNumber() (Value, error) {
	if err := d.expect('i', KindInteger); err != nil {
		return Value{}, err
	}

	var body []byte
	point := false
	for {
		b, err := d.src.pop()
		if err != nil {
			return Value{}, err
		}
		if b == 'e' {
			break
		}
		if b == '.' {
			point = true
		}
		body = append(body, b)
	}

	if point {
		dec, err := decimal.NewFromString(string(body))
		if err != nil {
			return Value{}, errors.Wrapf(ErrMalformedNumber, "numeral %q", body)
		}
		return DecimalValue(dec), nil
	}

	num, ok := new(big.Int).SetString(string(body), 10)
	if !ok {
		return Value{}, errors.Wrapf(ErrMalformedNumber, "numeral %q", body)
	}
	return IntegerValue(num), nil
}

// readList decodes one list token.
func (d *Decoder) readList() ([]Value, error) {
	if err := d.expect('l', KindList); err != nil {
		return nil, err
	}

	list := []Value{}
	for {
		terminated, err := d.readTerminator()
		if err != nil {
			return nil, err
		}
		if terminated {
			return list, nil
		}

		v, err := d.ReadObject()
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
}

// readDict decodes one dictionary token. Keys are always materialized as
// text; a duplicate key overwrites the earlier entry.
func (d *Decoder) readDict() (*Dict, error) {
	if err := d.expect('d', KindDict); err != nil {
		return nil, err
	}

	dict := NewDict()
	for {
		terminated, err := d.readTerminator()
		if err != nil {
			return nil, err
		}
		if terminated {
			return dict, nil
		}

		raw, err := d.readBytes()
		if err != nil {
			return nil, err
		}
		key, err := d.decodeText(raw, d.enc)
		if err != nil {
			return nil, err
		}

		v, err := d.ReadObject()
		if err != nil {
			return nil, err
		}
		dict.Set(key, v)
	}
}

// readTerminator reports whether the next byte is the aggregate terminator,
// consuming it only when it is.
func (d *Decoder) readTerminator() (bool, error) {
	b, err := d.src.peek()
	if err != nil {
		return false, err
	}
	if b != 'e' {
		return false, nil
	}
	_, err = d.src.pop()
	return true, err
}

// decodeText materializes raw bytes as text under enc.
func (d *Decoder) decodeText(raw []byte, enc encoding.Encoding) (string, error) {
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", errors.Wrap(err, "bencode: charset decode failed")
	}
	return string(out), nil
}
