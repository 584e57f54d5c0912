// Copyright 2026 The Bencoding Authors. All rights reserved.
// Use of this source code is governed by the BSD 2-Clause license,
// which can be found in the LICENSE file.

package bencode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadString(t *testing.T) {
	d := NewDecoder(strings.NewReader("7:example"))

	s, err := d.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "example", s)
}

func TestReadStringEncoding(t *testing.T) {
	d := NewDecoder(strings.NewReader("1:\xe9"))

	s, err := d.ReadStringEncoding(charmap.ISO8859_1)
	require.NoError(t, err)
	assert.Equal(t, "é", s)
}

func TestReadInteger(t *testing.T) {
	d := NewDecoder(strings.NewReader("i42e"))

	n, err := d.ReadInteger()
	require.NoError(t, err)
	assert.EqualValues(t, 42, n.Int64())
}

func TestReadIntegerRejectsDecimal(t *testing.T) {
	d := NewDecoder(strings.NewReader("i3.14e"))

	_, err := d.ReadInteger()
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, KindInteger, mismatch.Want)
	assert.Equal(t, KindDecimal, mismatch.Got)
}

func TestReadDecimal(t *testing.T) {
	d := NewDecoder(strings.NewReader("i3.14ei42e"))

	dec, err := d.ReadDecimal()
	require.NoError(t, err)
	assert.Equal(t, "3.14", dec.String())

	// Integers widen.
	dec, err = d.ReadDecimal()
	require.NoError(t, err)
	assert.Equal(t, "42", dec.String())
}

func TestReadFixedWidth(t *testing.T) {
	d := NewDecoder(strings.NewReader("i42ei-1ei-1ei300ei3.9e"))

	n64, err := d.ReadInt64()
	require.NoError(t, err)
	assert.EqualValues(t, 42, n64)

	n8, err := d.ReadInt8()
	require.NoError(t, err)
	assert.EqualValues(t, -1, n8)

	u8, err := d.ReadUint8()
	require.NoError(t, err)
	assert.EqualValues(t, 0xff, u8, "unsigned reads widen the raw bits")

	u16, err := d.ReadUint16()
	require.NoError(t, err)
	assert.EqualValues(t, 300, u16)

	n64, err = d.ReadInt64()
	require.NoError(t, err)
	assert.EqualValues(t, 3, n64, "decimals truncate toward zero")
}

func TestReadFloat(t *testing.T) {
	d := NewDecoder(strings.NewReader("i3.5ei2e"))

	f, err := d.ReadFloat64()
	require.NoError(t, err)
	assert.Equal(t, 3.5, f)

	f32, err := d.ReadFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(2), f32)
}

func TestReadBool(t *testing.T) {
	d := NewDecoder(strings.NewReader("i0ei1ei-7e"))

	for _, expected := range []bool{false, true, true} {
		b, err := d.ReadBool()
		require.NoError(t, err)
		assert.Equal(t, expected, b)
	}
}

func TestReadRune(t *testing.T) {
	d := NewDecoder(strings.NewReader("7:example0:"))

	r, err := d.ReadRune()
	require.NoError(t, err)
	assert.Equal(t, 'e', r)

	_, err = d.ReadRune()
	assert.Error(t, err, "an empty string has no leading character")
}

func TestReadEnum(t *testing.T) {
	type event uint8
	const (
		started event = iota
		stopped
	)
	events := map[string]event{
		"started": started,
		"stopped": stopped,
	}

	d := NewDecoder(strings.NewReader("7:stopped9:completed"))

	e, err := ReadEnum(d, events)
	require.NoError(t, err)
	assert.Equal(t, stopped, e)

	_, err = ReadEnum(d, events)
	var unknown *UnknownEnumError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "completed", unknown.Value)
}

func TestReadListOf(t *testing.T) {
	d := NewDecoder(strings.NewReader("l3:one3:twoe"))

	list, err := ReadListOf(d, Value.AsBytes)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("one"), []byte("two")}, list)
}

func TestReadListOfMismatch(t *testing.T) {
	d := NewDecoder(strings.NewReader("l3:onei2ee"))

	_, err := ReadListOf(d, Value.AsBytes)
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, KindBytes, mismatch.Want)
	assert.Equal(t, KindInteger, mismatch.Got)
}

func TestReadListOfWrongToken(t *testing.T) {
	d := NewDecoder(strings.NewReader("i42e"))

	_, err := ReadListOf(d, Value.AsBytes)
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, KindList, mismatch.Want)
	assert.Equal(t, KindInteger, mismatch.Got)
}

func TestReadDictOf(t *testing.T) {
	d := NewDecoder(strings.NewReader("d1:ai1e1:bi2ee"))

	m, err := ReadDictOf(d, func(v Value) (int64, error) {
		return v.toInt64()
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"a": 1, "b": 2}, m)
}

func TestReadFullRetriesShortReads(t *testing.T) {
	d := NewDecoder(&chunkReader{val: "abcdef"})

	buf := make([]byte, 6)
	require.NoError(t, d.ReadFull(buf))
	assert.Equal(t, []byte("abcdef"), buf)

	require.ErrorIs(t, d.ReadFull(buf), ErrEndOfInput)
}

func TestSkipBytes(t *testing.T) {
	d := NewDecoder(strings.NewReader("xxxi42e"))

	n, err := d.SkipBytes(3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	v, err := d.ReadInt64()
	require.NoError(t, err)
	assert.EqualValues(t, 42, v)

	// Skipping past the end is not an error; the count reports how far we got.
	n, err = d.SkipBytes(10)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestReadLine(t *testing.T) {
	d := NewDecoder(strings.NewReader("5:hello"))

	s, err := d.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}
