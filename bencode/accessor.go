// Copyright 2026 The Bencoding Authors. All rights reserved.
// Use of this source code is governed by the BSD 2-Clause license,
// which can be found in the LICENSE file.

package bencode

import (
	"math/big"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
)

// ReadBytes decodes the next byte-string token and returns its raw bytes,
// ignoring the decode-as-string setting.
func (d *Decoder) ReadBytes() ([]byte, error) {
	return d.readBytes()
}

// ReadString decodes the next byte-string token as text under the
// configured encoding.
func (d *Decoder) ReadString() (string, error) {
	return d.ReadStringEncoding(d.enc)
}

// ReadStringEncoding decodes the next byte-string token as text under enc.
func (d *Decoder) ReadStringEncoding(enc encoding.Encoding) (string, error) {
	raw, err := d.readBytes()
	if err != nil {
		return "", err
	}
	return d.decodeText(raw, enc)
}

// ReadList decodes the next list token.
func (d *Decoder) ReadList() ([]Value, error) {
	return d.readList()
}

// ReadDict decodes the next dictionary token.
func (d *Decoder) ReadDict() (*Dict, error) {
	return d.readDict()
}

// ReadInteger decodes the next number token, rejecting decimals.
func (d *Decoder) ReadInteger() (*big.Int, error) {
	v, err := d.readNumber()
	if err != nil {
		return nil, err
	}
	return v.AsInteger()
}

// ReadDecimal decodes the next number token, widening integers.
func (d *Decoder) ReadDecimal() (decimal.Decimal, error) {
	v, err := d.readNumber()
	if err != nil {
		return decimal.Decimal{}, err
	}
	if v.kind == KindInteger {
		return decimal.NewFromBigInt(v.num, 0), nil
	}
	return v.AsDecimal()
}

func (d *Decoder) readInt64() (int64, error) {
	v, err := d.readNumber()
	if err != nil {
		return 0, err
	}
	return v.toInt64()
}

// ReadInt64 decodes the next number token as an int64.
func (d *Decoder) ReadInt64() (int64, error) {
	return d.readInt64()
}

// ReadInt32 decodes the next number token as an int32.
func (d *Decoder) ReadInt32() (int32, error) {
	n, err := d.readInt64()
	return int32(n), err
}

// ReadInt16 decodes the next number token as an int16.
func (d *Decoder) ReadInt16() (int16, error) {
	n, err := d.readInt64()
	return int16(n), err
}

// ReadInt8 decodes the next number token as an int8.
func (d *Decoder) ReadInt8() (int8, error) {
	n, err := d.readInt64()
	return int8(n), err
}

// ReadUint8 decodes the next number token as the low 8 bits, unsigned.
func (d *Decoder) ReadUint8() (uint8, error) {
	n, err := d.readInt64()
	return uint8(n), err
}

// ReadUint16 decodes the next number token as the low 16 bits, unsigned.
func (d *Decoder) ReadUint16() (uint16, error) {
	n, err := d.readInt64()
	return uint16(n), err
}

// ReadFloat64 decodes the next number token as a float64.
func (d *Decoder) ReadFloat64() (float64, error) {
	v, err := d.readNumber()
	if err != nil {
		return 0, err
	}
	return v.toFloat64()
}

// ReadFloat32 decodes the next number token as a float32.
func (d *Decoder) ReadFloat32() (float32, error) {
	f, err := d.ReadFloat64()
	return float32(f), err
}

// ReadBool decodes the next number token as a boolean: nonzero is true.
func (d *Decoder) ReadBool() (bool, error) {
	n, err := d.readInt64()
	return n != 0, err
}

// ReadRune decodes the next byte-string token and returns its first
// character.
func (d *Decoder) ReadRune() (rune, error) {
	s, err := d.ReadString()
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, errors.New("bencode: no leading character in an empty string")
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// ReadFull reads exactly len(p) raw bytes from the source, retrying short
// reads. It fails with ErrEndOfInput if the source runs out first.
func (d *Decoder) ReadFull(p []byte) error {
	return d.src.readFull(p)
}

// ReadLine is ReadString. The wire format has no line-termination
// semantics; the method exists only for structured-input interface parity.
func (d *Decoder) ReadLine() (string, error) {
	return d.ReadString()
}

// SkipBytes discards up to n raw bytes and returns the count actually
// skipped.
func (d *Decoder) SkipBytes(n int) (int, error) {
	return d.src.skip(n)
}

// ReadEnum decodes a string and resolves it against a named set of
// symbolic values, failing with an UnknownEnumError when nothing matches.
func ReadEnum[T any](d *Decoder, values map[string]T) (T, error) {
	var zero T
	s, err := d.ReadString()
	if err != nil {
		return zero, err
	}
	v, ok := values[s]
	if !ok {
		return zero, &UnknownEnumError{Value: s}
	}
	return v, nil
}

// ReadListOf decodes a list, converting every element through conv as it is
// read. Conversions typically come from the Value accessors, e.g.
// ReadListOf(d, Value.AsString).
func ReadListOf[T any](d *Decoder, conv func(Value) (T, error)) ([]T, error) {
	if err := d.expect('l', KindList); err != nil {
		return nil, err
	}

	list := []T{}
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
		elem, err := conv(v)
		if err != nil {
			return nil, err
		}
		list = append(list, elem)
	}
}

// ReadDictOf decodes a dictionary, converting every value through conv.
// Keys are always text; a duplicate key overwrites the earlier entry.
func ReadDictOf[T any](d *Decoder, conv func(Value) (T, error)) (map[string]T, error) {
	if err := d.expect('d', KindDict); err != nil {
		return nil, err
	}

	m := map[string]T{}
	for {
		terminated, err := d.readTerminator()
		if err != nil {
			return nil, err
		}
		if terminated {
			return m, nil
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
		m[key], err = conv(v)
		if err != nil {
			return nil, err
		}
	}
}
