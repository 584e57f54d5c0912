// Copyright 2026 The Bencoding Authors. All rights reserved.
// Use of this source code is governed by the BSD 2-Clause license,
// which can be found in the LICENSE file.

package bencode

import "github.com/google/btree"

type dictEntry struct {
	key   string
	value Value
}

func lessEntry(a, b dictEntry) bool { return a.key < b.key }

// A Dict is a dictionary of decoded values maintained in byte-lexicographic
// key order, matching the wire format's canonical form. It is not an
// insertion-ordered map: iteration order depends only on the keys present.
type Dict struct {
	tree *btree.BTreeG[dictEntry]
}

// NewDict returns an empty Dict.
func NewDict() *Dict {
	return &Dict{tree: btree.NewG(2, lessEntry)}
}

// Set inserts value under key, overwriting any existing entry.
func (d *Dict) Set(key string, value Value) {
	d.tree.ReplaceOrInsert(dictEntry{key: key, value: value})
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (Value, bool) {
	e, ok := d.tree.Get(dictEntry{key: key})
	if !ok {
		return Value{}, false
	}
	return e.value, true
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	return d.tree.Len()
}

// Ascend calls fn for every entry in ascending key order until fn returns
// false.
func (d *Dict) Ascend(fn func(key string, value Value) bool) {
	d.tree.Ascend(func(e dictEntry) bool {
		return fn(e.key, e.value)
	})
}

// Keys returns all keys in ascending order.
func (d *Dict) Keys() []string {
	keys := make([]string, 0, d.Len())
	d.Ascend(func(key string, _ Value) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}
