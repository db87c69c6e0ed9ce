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

// String-key convenience layer. A string key is hashed and compared as the
// string's bytes followed by a single NUL terminator, so a string key is
// only ever equal to a binary key that carries the same terminator: the
// string "ab" and the two-byte binary key {'a','b'} are distinct entries.
// These wrappers add no logic of their own beyond that key encoding.

// stringKey returns the probe key for a string key: the string's bytes
// plus a trailing NUL.
func stringKey(key string) []byte {
	b := make([]byte, len(key)+1)
	copy(b, key)
	return b
}

// PutString inserts an entry under a string key with Put's move semantics.
func (t *Table[V]) PutString(key string, value V) bool {
	return t.Put(stringKey(key), value)
}

// PutCopyString inserts a copy of value under a string key; see PutCopy.
func (t *Table[V]) PutCopyString(key string, value V) bool {
	return t.PutCopy(stringKey(key), value)
}

// GetString retrieves the value stored under a string key; see Get.
func (t *Table[V]) GetString(key string) (value V, ok bool) {
	return t.Get(stringKey(key))
}

// ContainsString reports whether the table holds an entry for a string key.
func (t *Table[V]) ContainsString(key string) bool {
	return t.Contains(stringKey(key))
}

// DeleteString removes the entry stored under a string key; see Delete.
func (t *Table[V]) DeleteString(key string) {
	t.Delete(stringKey(key))
}
