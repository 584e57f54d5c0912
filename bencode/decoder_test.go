// Copyright 2026 The Bencoding Authors. All rights reserved.
// Use of this source code is governed by the BSD 2-Clause license,
// which can be found in the LICENSE file.

package bencode

import (
	"io"
	"math/big"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bigFromString(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad test numeral " + s)
	}
	return n
}

var unmarshalTests = []struct {
	input    string
	expected Value
}{
	{"i42e", Int64Value(42)},
	{"i-7e", Int64Value(-7)},
	{"i999999999999999999999e", IntegerValue(bigFromString("999999999999999999999"))},
	{"i3.14e", DecimalValue(decimal.RequireFromString("3.14"))},

	{"7:example", BytesValue([]byte("example"))},
	{"0:", BytesValue([]byte{})},

	{"le", ListValue()},
	{"l3:one3:twoe", ListValue(BytesValue([]byte("one")), BytesValue([]byte("two")))},
	{"li1ei2ee", ListValue(Int64Value(1), Int64Value(2))},
}

func TestUnmarshal(t *testing.T) {
	for _, tt := range unmarshalTests {
		got, err := Unmarshal([]byte(tt.input))
		require.NoError(t, err, "unmarshal should not fail for %q", tt.input)
		assert.Equal(t, tt.expected, got, "unmarshalled values should match the expected results for %q", tt.input)
	}
}

var unmarshalErrorTests = []struct {
	input    string
	expected error
}{
	{"", ErrEndOfInput},
	{"5:abc", ErrEndOfInput},
	{"i42", ErrEndOfInput},
	{"li1e", ErrEndOfInput},
	{"d3:key", ErrEndOfInput},

	{"i3.1.4e", ErrMalformedNumber},
	{"ie", ErrMalformedNumber},
	{"iabce", ErrMalformedNumber},

	{"1x:a", ErrMalformedLength},

	{"x", ErrUnknownToken},
	{"e", ErrUnknownToken},
}

func TestUnmarshalErrors(t *testing.T) {
	for _, tt := range unmarshalErrorTests {
		_, err := Unmarshal([]byte(tt.input))
		assert.ErrorIs(t, err, tt.expected, "unmarshalling %q should fail", tt.input)
	}
}

func TestUnmarshalDict(t *testing.T) {
	got, err := Unmarshal([]byte("d3:keyli1ei2eee"))
	require.NoError(t, err)

	dict, err := got.AsDict()
	require.NoError(t, err)
	require.Equal(t, 1, dict.Len())

	v, ok := dict.Get("key")
	require.True(t, ok)
	assert.Equal(t, ListValue(Int64Value(1), Int64Value(2)), v)
}

func TestUnmarshalEmptyDict(t *testing.T) {
	got, err := Unmarshal([]byte("de"))
	require.NoError(t, err)

	dict, err := got.AsDict()
	require.NoError(t, err)
	assert.Equal(t, 0, dict.Len())
}

func TestUnmarshalDuplicateKeys(t *testing.T) {
	got, err := Unmarshal([]byte("d1:ai1e1:ai2ee"))
	require.NoError(t, err)

	dict, err := got.AsDict()
	require.NoError(t, err)
	require.Equal(t, 1, dict.Len())

	v, ok := dict.Get("a")
	require.True(t, ok)
	assert.Equal(t, Int64Value(2), v, "the later of two duplicate keys should win")
}

func TestUnmarshalSortsKeys(t *testing.T) {
	// Keys deliberately out of canonical order on the wire.
	got, err := Unmarshal([]byte("d1:ci3e1:ai1e1:bi2ee"))
	require.NoError(t, err)

	dict, err := got.AsDict()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, dict.Keys())
}

func TestDecodeAsString(t *testing.T) {
	d, err := New(strings.NewReader("7:example"), Config{DecodeAsString: true})
	require.NoError(t, err)

	got, err := d.ReadObject()
	require.NoError(t, err)
	assert.Equal(t, StringValue("example"), got)
}

func TestDecodeKeysAlwaysText(t *testing.T) {
	// decode_as_string is off, but keys must still come out as text.
	d, err := New(strings.NewReader("d3:key5:valuee"), Config{})
	require.NoError(t, err)

	dict, err := d.ReadDict()
	require.NoError(t, err)

	v, ok := dict.Get("key")
	require.True(t, ok)
	assert.Equal(t, KindBytes, v.Kind())
}

func TestDecodeCharset(t *testing.T) {
	// 0xE9 is 'é' in ISO-8859-1 and invalid on its own in UTF-8.
	d, err := New(strings.NewReader("1:\xe9"), Config{
		Charset:        "ISO-8859-1",
		DecodeAsString: true,
	})
	require.NoError(t, err)

	got, err := d.ReadObject()
	require.NoError(t, err)

	s, err := got.AsString()
	require.NoError(t, err)
	assert.Equal(t, "é", s)
}

func TestDecodeUnknownCharset(t *testing.T) {
	_, err := New(strings.NewReader("le"), Config{Charset: "no-such-charset"})
	assert.Error(t, err)
}

func TestTokenHandler(t *testing.T) {
	handler := func(lead byte, d *Decoder) (Value, error) {
		// A trivial extension grammar: 'b' followed by one ASCII flag byte.
		var buf [2]byte
		if err := d.ReadFull(buf[:]); err != nil {
			return Value{}, err
		}
		return CustomValue(buf[1] == '1'), nil
	}

	d, err := New(strings.NewReader("lb1b0e"), Config{Handler: handler})
	require.NoError(t, err)

	got, err := d.ReadObject()
	require.NoError(t, err)
	assert.Equal(t, ListValue(CustomValue(true), CustomValue(false)), got)
}

func TestPeekIsIdempotent(t *testing.T) {
	src := newByteSource(strings.NewReader("ab"))

	for i := 0; i < 3; i++ {
		b, err := src.peek()
		require.NoError(t, err)
		assert.Equal(t, byte('a'), b)
	}

	b, err := src.pop()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), b)

	b, err = src.pop()
	require.NoError(t, err)
	assert.Equal(t, byte('b'), b)

	_, err = src.pop()
	assert.ErrorIs(t, err, ErrEndOfInput)
}

// chunkReader returns at most one byte per Read call to exercise the
// short-read retry paths.
type chunkReader struct {
	val string
	off int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if r.off >= len(r.val) {
		return 0, io.EOF
	}
	p[0] = r.val[r.off]
	r.off++
	return 1, nil
}

func TestDecodeFromChunkedReader(t *testing.T) {
	d := NewDecoder(&chunkReader{val: "d3:keyli1ei2eee"})

	got, err := d.ReadObject()
	require.NoError(t, err)

	dict, err := got.AsDict()
	require.NoError(t, err)
	assert.Equal(t, []string{"key"}, dict.Keys())
}

type bufferLoop struct {
	val string
}

func (r *bufferLoop) Read(b []byte) (int, error) {
	n := copy(b, r.val)
	return n, nil
}

func BenchmarkDecodeScalar(b *testing.B) {
	d1 := NewDecoder(&bufferLoop{"7:example"})
	d2 := NewDecoder(&bufferLoop{"i42e"})

	for i := 0; i < b.N; i++ {
		d1.ReadObject()
		d2.ReadObject()
	}
}

func BenchmarkDecodeLarge(b *testing.B) {
	data, err := Marshal(map[string]interface{}{
		"k1": []string{"a", "b", "c"},
		"k2": int64(42),
		"k3": "val",
		"k4": int64(-42),
	})
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		if _, err := Unmarshal(data); err != nil {
			b.Fatal(err)
		}
	}
}
