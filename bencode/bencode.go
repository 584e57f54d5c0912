// Copyright 2026 The Bencoding Authors. All rights reserved.
// Use of this source code is governed by the BSD 2-Clause license,
// which can be found in the LICENSE file.

// Package bencode implements streaming decoding of bencoded data into a
// tagged value tree, typed accessors over that tree, and the symmetric
// encoder producing canonical (key-sorted) output.
package bencode

import (
	"bytes"
	"fmt"
	"io"
	"math/big"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// An Encoder writes bencoded values to an output stream.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the bencoding of v to the stream.
func (enc *Encoder) Encode(v interface{}) error {
	return marshal(enc.w, v)
}

// Marshal returns the bencoding of v.
func Marshal(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := marshal(buf, v)
	return buf.Bytes(), err
}

// Marshaler is the interface implemented by objects that can marshal
// themselves.
type Marshaler interface {
	MarshalBencode() ([]byte, error)
}

func marshal(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case Marshaler:
		bencoded, err := v.MarshalBencode()
		if err != nil {
			return err
		}
		_, err = w.Write(bencoded)
		if err != nil {
			return err
		}

	case Value:
		return marshalValue(w, v)

	case string:
		fmt.Fprintf(w, "%d:%s", len(v), v)

	case []byte:
		fmt.Fprintf(w, "%d:", len(v))
		w.Write(v)

	case int:
		fmt.Fprintf(w, "i%de", v)

	case int64:
		fmt.Fprintf(w, "i%se", strconv.FormatInt(v, 10))

	case uint:
		fmt.Fprintf(w, "i%se", strconv.FormatUint(uint64(v), 10))

	case uint64:
		fmt.Fprintf(w, "i%se", strconv.FormatUint(v, 10))

	case bool:
		if v {
			fmt.Fprint(w, "i1e")
		} else {
			fmt.Fprint(w, "i0e")
		}

	case *big.Int:
		fmt.Fprintf(w, "i%se", v.String())

	case decimal.Decimal:
		fmt.Fprintf(w, "i%se", v.String())

	case []string:
		fmt.Fprint(w, "l")
		for _, val := range v {
			if err := marshal(w, val); err != nil {
				return err
			}
		}
		fmt.Fprint(w, "e")

	case []interface{}:
		fmt.Fprint(w, "l")
		for _, val := range v {
			if err := marshal(w, val); err != nil {
				return err
			}
		}
		fmt.Fprint(w, "e")

	case []Value:
		fmt.Fprint(w, "l")
		for _, val := range v {
			if err := marshalValue(w, val); err != nil {
				return err
			}
		}
		fmt.Fprint(w, "e")

	case *Dict:
		return marshalDict(w, v)

	case map[string]interface{}:
		// Canonical form requires sorted keys.
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		fmt.Fprint(w, "d")
		for _, key := range keys {
			fmt.Fprintf(w, "%d:%s", len(key), key)
			if err := marshal(w, v[key]); err != nil {
				return err
			}
		}
		fmt.Fprint(w, "e")

	default:
		return errors.Errorf("bencode: attempted to marshal unsupported type %T", data)
	}

	return nil
}

func marshalValue(w io.Writer, v Value) error {
	switch v.kind {
	case KindBytes:
		return marshal(w, v.bytes)
	case KindString:
		return marshal(w, v.str)
	case KindInteger:
		return marshal(w, v.num)
	case KindDecimal:
		return marshal(w, v.dec)
	case KindList:
		return marshal(w, v.list)
	case KindDict:
		return marshalDict(w, v.dict)
	case KindCustom:
		return marshal(w, v.custom)
	}
	return errors.New("bencode: attempted to marshal an invalid value")
}

func marshalDict(w io.Writer, d *Dict) error {
	fmt.Fprint(w, "d")
	var err error
	d.Ascend(func(key string, val Value) bool {
		fmt.Fprintf(w, "%d:%s", len(key), key)
		err = marshalValue(w, val)
		return err == nil
	})
	if err != nil {
		return err
	}
	fmt.Fprint(w, "e")
	return nil
}
