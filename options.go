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

package bytetable

// option provide an interface to do work on Table while it is being created.
type option[V any] interface {
	apply(t *Table[V])
}

type capacityOption[V any] struct {
	capacity int
}

func (op capacityOption[V]) apply(t *Table[V]) {
	t.capacity = op.capacity
}

// WithCapacity is an option to specify the initial slot capacity of a
// Table[V]. The capacity is not validated; a table created with zero
// capacity rejects every insert.
func WithCapacity[V any](capacity int) option[V] {
	return capacityOption[V]{capacity}
}

type resizeThresholdOption[V any] struct {
	threshold float64
}

func (op resizeThresholdOption[V]) apply(t *Table[V]) {
	t.resizeThreshold = op.threshold
}

// WithResizeThreshold is an option to specify the load factor (0,1] above
// which an insert grows the table before placing its entry.
func WithResizeThreshold[V any](threshold float64) option[V] {
	return resizeThresholdOption[V]{threshold}
}

type resizeFactorOption[V any] struct {
	factor float64
}

func (op resizeFactorOption[V]) apply(t *Table[V]) {
	t.resizeFactor = op.factor
}

// WithResizeFactor is an option to specify the multiplier (>1) applied to
// the capacity when the table grows. A factor that does not strictly
// increase the capacity makes growth, and therefore the insert that needed
// it, fail.
func WithResizeFactor[V any](factor float64) option[V] {
	return resizeFactorOption[V]{factor}
}

type destructorOption[V any] struct {
	destroy func(value V)
}

func (op destructorOption[V]) apply(t *Table[V]) {
	t.destroy = op.destroy
}

// WithDestructor is an option to specify a cleanup function for the values
// of a Table[V]. The destructor is table-level configuration: it is invoked
// exactly once for every value the table drops, whether by an overwriting
// Put, Delete, Clear, or Close. Without a destructor dropped values are
// simply released to the garbage collector.
func WithDestructor[V any](destroy func(value V)) option[V] {
	return destructorOption[V]{destroy}
}

type clonerOption[V any] struct {
	clone func(value V) V
}

func (op clonerOption[V]) apply(t *Table[V]) {
	t.clone = op.clone
}

// WithCloner is an option to specify how PutCopy duplicates a value whose
// representation holds references, e.g. WithCloner[[]byte](CloneBytes) for
// a byte-slice valued table. Callers configuring both a cloner and a
// destructor must ensure the destructor is compatible with cloned values.
func WithCloner[V any](clone func(value V) V) option[V] {
	return clonerOption[V]{clone}
}

type hashOption[V any] struct {
	hash func(key []byte) uint64
}

func (op hashOption[V]) apply(t *Table[V]) {
	t.hash = op.hash
}

// WithHash is an option to specify the hash function to use for a Table[V]
// in place of the default FNV-1a, e.g. xxhash.Sum64.
func WithHash[V any](hash func(key []byte) uint64) option[V] {
	return hashOption[V]{hash}
}
