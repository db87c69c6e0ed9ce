// Copyright 2026 The Bytetable Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bytetable implements an open-addressing hash table keyed by
// arbitrary byte sequences.
//
// # Design
//
// A Table[V] maps []byte keys to values of type V. Keys are hashed with
// FNV-1a (see https://en.wikipedia.org/wiki/Fowler-Noll-Vo_hash_function)
// over the raw key bytes and collisions are resolved with linear probing:
// starting from hash(key) mod capacity, slots are scanned sequentially
// (wrapping at the end of the backing array) until either an empty slot is
// found, meaning the key is absent, or a slot whose key is byte-equal to
// the query is found. Two keys are equal iff they have the same length and
// the same bytes, so ("ab", 2 bytes) and ("ab\x00", 3 bytes) are distinct
// keys. The hash function can be replaced at construction time with
// WithHash; any func([]byte) uint64 will do, e.g. xxhash.Sum64.
//
// The table grows before an insert would push the load factor size/capacity
// above the configured resize threshold (default 0.5). Growth multiplies
// the capacity by the resize factor (default 2.0) and rehashes every entry
// into the new backing array. Capacity never shrinks. Deletion
// backward-shifts the tail of the collision cluster into the vacated slot,
// so an empty slot always terminates a probe chain and no tombstone state
// is needed. Probe scans are bounded to capacity steps so every operation
// terminates even on a corrupted table; under the load factor invariant
// the bound is never reached on the normal path.
//
// # Ownership
//
// The table owns a private copy of every inserted key. Values are owned by
// the table from the moment Put returns true: if a destructor is configured
// with WithDestructor it is invoked exactly once for every value the table
// drops, whether by an overwriting Put, Delete, Clear, or Close. PutCopy
// instead installs a copy of the value: the value itself for types whose
// representation holds no references (Go assignment already duplicates the
// bytes), or the result of the cloner configured with WithCloner. If Put or
// PutCopy returns false the table took nothing and the caller keeps
// ownership of the value it passed.
//
// Values returned by Get alias the stored value. When a destructor is
// configured, an alias must not be retained across a later mutation of the
// same key: the destructor may have reclaimed whatever the value refers to.
//
// A Table is NOT goroutine-safe.
package bytetable

import (
	"bytes"
	"fmt"
	"strings"
)

const debug = false

// Default creation parameters, used by New unless overridden with options.
const (
	DefaultCapacity        = 16
	DefaultResizeThreshold = 0.5
	DefaultResizeFactor    = 2.0
)

// slot holds one entry. A slot is occupied iff used is true; the key of an
// occupied slot may legitimately be zero-length, so occupancy is tracked
// explicitly rather than inferred from the key.
type slot[V any] struct {
	key   []byte
	value V
	used  bool
}

// Table is an unordered map from byte-sequence keys to values of type V
// with Put, PutCopy, Get, Contains, Delete, Clear, Close, and All
// operations. Keys are compared structurally (length plus content). See the
// package documentation for the hashing, growth, and ownership contracts.
//
// A Table is NOT goroutine-safe.
type Table[V any] struct {
	// The hash function applied to key bytes. Defaults to 64-bit FNV-1a.
	hash func(key []byte) uint64
	// slots is capacity in length.
	slots []slot[V]
	// The total number of slots.
	capacity int
	// The number of occupied slots.
	size int
	// Load factor above which an insert grows the table first.
	resizeThreshold float64
	// Multiplier applied to capacity on growth.
	resizeFactor float64
	// Optional value destructor, invoked once per dropped value.
	destroy func(value V)
	// Optional value cloner used by PutCopy.
	clone func(value V) V
}

// New constructs a Table with the default capacity (16), resize threshold
// (0.5), and resize factor (2.0), each overridable with options. The
// parameters are not validated beyond their defaults: a resize factor <= 1
// or a zero capacity will make inserts fail once growth is needed, and that
// is the caller's responsibility to avoid. The zero value for a Table is
// not usable.
func New[V any](options ...option[V]) *Table[V] {
	t := &Table[V]{
		hash:            fnv1a,
		capacity:        DefaultCapacity,
		resizeThreshold: DefaultResizeThreshold,
		resizeFactor:    DefaultResizeFactor,
	}
	for _, op := range options {
		op.apply(t)
	}
	t.slots = make([]slot[V], t.capacity)
	return t
}

// Close clears the table, invoking the destructor for every remaining
// value, and releases the backing storage. It is invalid to insert into a
// Table after it has been closed, though Close itself is idempotent and a
// nil Table may be closed.
func (t *Table[V]) Close() {
	if t == nil {
		return
	}
	t.Clear()
	t.slots = nil
	t.capacity = 0
}

// Put inserts an entry into the table, taking ownership of value. If an
// entry with a byte-equal key already exists its old value is destroyed and
// replaced in place, leaving the size unchanged. Put reports whether the
// entry was stored: it returns false, with the table untouched and the
// value still owned by the caller, when the table or key is nil or when a
// required growth step cannot strictly increase the capacity.
func (t *Table[V]) Put(key []byte, value V) bool {
	if t == nil || key == nil {
		return false
	}

	// Grow before the insert rather than after, so the load factor never
	// exceeds the threshold while an entry is being placed.
	if float64(t.size+1)/float64(t.capacity) > t.resizeThreshold {
		if !t.resize(int(float64(t.capacity) * t.resizeFactor)) {
			return false
		}
	}

	i, found := t.find(key)
	if found {
		s := &t.slots[i]
		if debug {
			fmt.Printf("put(updating): index=%d key=%q\n", i, key)
		}
		if t.destroy != nil {
			t.destroy(s.value)
		}
		s.value = value
		t.checkInvariants()
		return true
	}
	if t.slots[i].used {
		// The probe scan hit its bound without finding an empty slot. The
		// growth step above makes a full table unreachable, so this only
		// triggers on corrupted state.
		return false
	}

	if debug {
		fmt.Printf("put(inserting): index=%d key=%q size=%d\n", i, key, t.size+1)
	}
	t.slots[i] = slot[V]{key: CloneBytes(key), value: value, used: true}
	t.size++
	t.checkInvariants()
	return true
}

// PutCopy inserts an entry holding a copy of value, following the same
// update and failure semantics as Put. The copy is produced by the cloner
// configured with WithCloner; without a cloner the value itself is stored,
// which is already an independent copy for any value type whose
// representation holds no references.
func (t *Table[V]) PutCopy(key []byte, value V) bool {
	if t == nil || key == nil {
		return false
	}
	if t.clone != nil {
		value = t.clone(value)
	}
	return t.Put(key, value)
}

// Get retrieves the value stored for the specified key, returning ok=false
// if the key is not present. Get never mutates the table. The returned
// value aliases the stored value; see the package documentation for the
// lifetime contract when a destructor is configured.
func (t *Table[V]) Get(key []byte) (value V, ok bool) {
	if t == nil || key == nil {
		return value, false
	}
	i, found := t.find(key)
	if !found {
		return value, false
	}
	return t.slots[i].value, true
}

// Contains reports whether the table holds an entry for the specified key.
func (t *Table[V]) Contains(key []byte) bool {
	_, ok := t.Get(key)
	return ok
}

// Delete removes the entry for the specified key, releasing the stored key
// and destroying the value. It is a noop to delete a non-existent key.
// Deletion never shrinks the capacity.
func (t *Table[V]) Delete(key []byte) {
	if t == nil || key == nil {
		return
	}
	i, found := t.find(key)
	if !found {
		return
	}
	if debug {
		fmt.Printf("delete: index=%d key=%q size=%d\n", i, key, t.size-1)
	}
	if t.destroy != nil {
		t.destroy(t.slots[i].value)
	}
	t.slots[i] = slot[V]{}
	t.size--

	// Emptying the slot leaves a hole inside the probe cluster, and find
	// stops at the first empty slot, which would orphan every entry that
	// collided past this one. Repair the cluster by backward-shifting:
	// walk the occupied run after the hole and move each entry whose probe
	// path covers the hole into it, opening a new hole at the entry's old
	// slot. The walk ends at the empty slot that terminates the cluster
	// and is bounded to capacity steps like every other scan.
	capacity := uint64(t.capacity)
	hole := uint64(i)
	j := (hole + 1) % capacity
	for n := 0; t.slots[j].used && n < t.capacity; n++ {
		home := t.hash(t.slots[j].key) % capacity
		// The entry at j may live in the hole iff the hole lies on its
		// probe path, i.e. cyclically between its home slot and j.
		if (j+capacity-home)%capacity >= (j+capacity-hole)%capacity {
			if debug {
				fmt.Printf("delete(shift): index=%d -> %d key=%q\n", j, hole, t.slots[j].key)
			}
			t.slots[hole] = t.slots[j]
			t.slots[j] = slot[V]{}
			hole = j
		}
		j = (j + 1) % capacity
	}
	t.checkInvariants()
}

// Clear removes every entry, destroying each value exactly once. The
// capacity and backing storage are retained, so the table can be refilled
// without reallocating.
func (t *Table[V]) Clear() {
	if t == nil {
		return
	}
	for i := range t.slots {
		if !t.slots[i].used {
			continue
		}
		if t.destroy != nil {
			t.destroy(t.slots[i].value)
		}
		t.slots[i] = slot[V]{}
	}
	t.size = 0
	t.checkInvariants()
}

// All calls yield for each key and value present in the table, in no
// particular order, stopping early if yield returns false. The key slice
// passed to yield is the table's own copy and must not be modified. The
// table must not be mutated during iteration.
func (t *Table[V]) All(yield func(key []byte, value V) bool) {
	if t == nil {
		return
	}
	for i := range t.slots {
		if t.slots[i].used {
			if !yield(t.slots[i].key, t.slots[i].value) {
				return
			}
		}
	}
}

// Len returns the number of entries in the table. A nil Table has length 0.
func (t *Table[V]) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Cap returns the current slot capacity of the table. A nil or closed Table
// has capacity 0.
func (t *Table[V]) Cap() int {
	if t == nil {
		return 0
	}
	return t.capacity
}

// find locates the slot for key: starting at hash(key) mod capacity it
// scans occupied slots by linear probing until it reaches a slot whose key
// is byte-equal to the query (found=true) or an empty slot (found=false,
// with index pointing at that slot so an insert can use it). The scan is
// bounded to capacity probes; if the bound is hit, found=false and the
// indexed slot is occupied. find is the single probe routine shared by
// Put, Get, Delete, and resize.
func (t *Table[V]) find(key []byte) (index int, found bool) {
	if t.capacity == 0 {
		return 0, false
	}
	i := t.hash(key) % uint64(t.capacity)
	for n := 0; t.slots[i].used && n < t.capacity; n++ {
		if bytes.Equal(t.slots[i].key, key) {
			if debug {
				fmt.Printf("find(hit): index=%d key=%q\n", i, key)
			}
			return int(i), true
		}
		i = (i + 1) % uint64(t.capacity)
	}
	return int(i), false
}

// resize grows the backing storage to newCapacity slots and rehashes every
// entry into it, moving key and value ownership slot by slot. It reports
// failure, leaving the table untouched, unless newCapacity strictly exceeds
// the current capacity.
func (t *Table[V]) resize(newCapacity int) bool {
	if newCapacity <= t.capacity {
		return false
	}

	if debug {
		fmt.Printf("resize: capacity=%d->%d size=%d\n", t.capacity, newCapacity, t.size)
	}

	old := t.slots
	t.slots = make([]slot[V], newCapacity)
	t.capacity = newCapacity
	t.size = 0

	for i := range old {
		if !old[i].used {
			continue
		}
		// Collisions against already-rehashed entries are resolved exactly
		// like a normal insert's probe.
		j := t.hash(old[i].key) % uint64(newCapacity)
		for n := 0; t.slots[j].used && n < newCapacity; n++ {
			j = (j + 1) % uint64(newCapacity)
		}
		t.slots[j] = old[i]
		t.size++
	}

	t.checkInvariants()
	return true
}

// 64-bit FNV-1a parameters.
const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// fnv1a computes the 64-bit FNV-1a hash of key. It is the default hash
// function for a Table.
func fnv1a(key []byte) uint64 {
	h := uint64(fnvOffset64)
	for _, b := range key {
		h ^= uint64(b)
		h *= fnvPrime64
	}
	return h
}

func (t *Table[V]) checkInvariants() {
	if invariants {
		var used int
		for i := range t.slots {
			if t.slots[i].used {
				used++
				if _, ok := t.Get(t.slots[i].key); !ok {
					panic(fmt.Sprintf("invariant failed: slot(%d): key %q not retrievable\n%s",
						i, t.slots[i].key, t.debugString()))
				}
			} else if t.slots[i].key != nil {
				panic(fmt.Sprintf("invariant failed: slot(%d): empty slot retains key %q\n%s",
					i, t.slots[i].key, t.debugString()))
			}
		}
		if used != t.size {
			panic(fmt.Sprintf("invariant failed: found %d used slots, but size is %d\n%s",
				used, t.size, t.debugString()))
		}
		if t.size > t.capacity {
			panic(fmt.Sprintf("invariant failed: size %d exceeds capacity %d", t.size, t.capacity))
		}
	}
}

func (t *Table[V]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d size=%d\n", t.capacity, t.size)
	for i := range t.slots {
		if t.slots[i].used {
			fmt.Fprintf(&buf, "  %4d: %q [hash=%016x]\n", i, t.slots[i].key, t.hash(t.slots[i].key))
		} else {
			fmt.Fprintf(&buf, "  %4d: empty\n", i)
		}
	}
	return buf.String()
}
