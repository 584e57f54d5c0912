// Copyright 2026 The Bencoding Authors. All rights reserved.
// Use of this source code is governed by the BSD 2-Clause license,
// which can be found in the LICENSE file.

package bencode

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindInvalid is the kind of the zero Value.
	KindInvalid Kind = iota

	// KindBytes is a raw byte-string.
	KindBytes

	// KindString is a byte-string materialized as text.
	KindString

	// KindInteger is an arbitrary-precision integer.
	KindInteger

	// KindDecimal is an arbitrary-precision decimal.
	KindDecimal

	// KindList is an ordered sequence of values.
	KindList

	// KindDict is a key-sorted dictionary.
	KindDict

	// KindCustom is a value produced by a TokenHandler.
	KindCustom
)

var kindNames = map[Kind]string{
	KindInvalid: "invalid",
	KindBytes:   "bytes",
	KindString:  "string",
	KindInteger: "integer",
	KindDecimal: "decimal",
	KindList:    "list",
	KindDict:    "dict",
	KindCustom:  "custom",
}

// String implements Stringer for a Kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// A Value is one decoded bencode value. Values are immutable once
// constructed: callers must not modify byte slices or lists reachable from
// a Value they did not build themselves.
type Value struct {
	kind   Kind
	bytes  []byte
	str    string
	num    *big.Int
	dec    decimal.Decimal
	list   []Value
	dict   *Dict
	custom interface{}
}

// BytesValue returns a Value holding raw bytes.
func BytesValue(b []byte) Value {
	return Value{kind: KindBytes, bytes: b}
}

// StringValue returns a Value holding text.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// IntegerValue returns a Value holding an arbitrary-precision integer.
func IntegerValue(n *big.Int) Value {
	return Value{kind: KindInteger, num: n}
}

// Int64Value returns an integer Value for n.
func Int64Value(n int64) Value {
	return IntegerValue(big.NewInt(n))
}

// DecimalValue returns a Value holding an arbitrary-precision decimal.
func DecimalValue(d decimal.Decimal) Value {
	return Value{kind: KindDecimal, dec: d}
}

// ListValue returns a Value holding an ordered sequence.
func ListValue(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindList, list: elems}
}

// DictValue returns a Value holding a dictionary.
func DictValue(d *Dict) Value {
	return Value{kind: KindDict, dict: d}
}

// CustomValue returns a Value holding a payload produced by a TokenHandler.
func CustomValue(v interface{}) Value {
	return Value{kind: KindCustom, custom: v}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// AsBytes returns the raw bytes held by v.
func (v Value) AsBytes() ([]byte, error) {
	if v.kind != KindBytes {
		return nil, &TypeMismatchError{Want: KindBytes, Got: v.kind}
	}
	return v.bytes, nil
}

// AsString returns the text held by v.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", &TypeMismatchError{Want: KindString, Got: v.kind}
	}
	return v.str, nil
}

// AsInteger returns the integer held by v.
func (v Value) AsInteger() (*big.Int, error) {
	if v.kind != KindInteger {
		return nil, &TypeMismatchError{Want: KindInteger, Got: v.kind}
	}
	return v.num, nil
}

// AsDecimal returns the decimal held by v.
func (v Value) AsDecimal() (decimal.Decimal, error) {
	if v.kind != KindDecimal {
		return decimal.Decimal{}, &TypeMismatchError{Want: KindDecimal, Got: v.kind}
	}
	return v.dec, nil
}

// AsList returns the ordered sequence held by v.
func (v Value) AsList() ([]Value, error) {
	if v.kind != KindList {
		return nil, &TypeMismatchError{Want: KindList, Got: v.kind}
	}
	return v.list, nil
}

// AsDict returns the dictionary held by v.
func (v Value) AsDict() (*Dict, error) {
	if v.kind != KindDict {
		return nil, &TypeMismatchError{Want: KindDict, Got: v.kind}
	}
	return v.dict, nil
}

// AsCustom returns the payload held by v.
func (v Value) AsCustom() (interface{}, error) {
	if v.kind != KindCustom {
		return nil, &TypeMismatchError{Want: KindCustom, Got: v.kind}
	}
	return v.custom, nil
}

// toInt64 narrows a numeric value to int64, truncating decimals and
// wrapping out-of-range integers the way fixed-width narrowing does.
func (v Value) toInt64() (int64, error) {
	switch v.kind {
	case KindInteger:
		return v.num.Int64(), nil
	case KindDecimal:
		return v.dec.IntPart(), nil
	}
	return 0, &TypeMismatchError{Want: KindInteger, Got: v.kind}
}

// toFloat64 converts a numeric value to the nearest float64.
func (v Value) toFloat64() (float64, error) {
	switch v.kind {
	case KindInteger:
		f, _ := new(big.Float).SetInt(v.num).Float64()
		return f, nil
	case KindDecimal:
		return v.dec.InexactFloat64(), nil
	}
	return 0, &TypeMismatchError{Want: KindDecimal, Got: v.kind}
}
