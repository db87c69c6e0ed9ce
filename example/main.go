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

package main

import (
	"encoding/binary"
	"fmt"

	"github.com/bytetable/bytetable"
)

// sensorRecord is a value type whose resources want explicit cleanup.
type sensorRecord struct {
	name    string
	samples []float64
	closed  bool
}

func (r *sensorRecord) release() {
	r.samples = nil
	r.closed = true
}

func main() {
	fmt.Println("=== bytetable examples ===")

	// Example 1: plain values with copy-semantics inserts.
	fmt.Println("\nExample 1: plain values with PutCopyString")
	numbers := bytetable.New[int]()
	numbers.PutCopyString("age", 25)
	numbers.PutCopyString("score", 95)
	numbers.PutCopyString("level", 10)

	for _, key := range []string{"age", "score", "level"} {
		if v, ok := numbers.GetString(key); ok {
			fmt.Printf("  %s: %d\n", key, v)
		}
	}
	fmt.Printf("  size=%d capacity=%d\n", numbers.Len(), numbers.Cap())
	numbers.Close()

	// Example 2: move semantics with a table-level destructor. Every value
	// the table drops, whether by update, delete, or close, is released
	// exactly once.
	fmt.Println("\nExample 2: owned values with a destructor")
	var released int
	sensors := bytetable.New[*sensorRecord](
		bytetable.WithDestructor[*sensorRecord](func(r *sensorRecord) {
			r.release()
			released++
		}),
	)

	sensors.PutString("loft", &sensorRecord{name: "loft", samples: []float64{19.5, 19.8}})
	sensors.PutString("cellar", &sensorRecord{name: "cellar", samples: []float64{12.1}})

	// Updating a key releases the value it replaces.
	sensors.PutString("loft", &sensorRecord{name: "loft", samples: []float64{20.2}})
	fmt.Printf("  released after update: %d\n", released)

	sensors.DeleteString("cellar")
	fmt.Printf("  released after delete: %d\n", released)

	sensors.Close()
	fmt.Printf("  released after close:  %d\n", released)

	// Example 3: binary keys. Any byte sequence is a key; here an 8-byte
	// big-endian sensor id.
	fmt.Println("\nExample 3: fixed-size binary keys")
	byID := bytetable.New[string]()
	for id := uint64(1); id <= 3; id++ {
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, id)
		byID.Put(key, fmt.Sprintf("sensor-%d", id))
	}

	probe := make([]byte, 8)
	binary.BigEndian.PutUint64(probe, 2)
	if name, ok := byID.Get(probe); ok {
		fmt.Printf("  id 2 -> %s\n", name)
	}
	byID.Clear()
	fmt.Printf("  size after clear=%d capacity=%d\n", byID.Len(), byID.Cap())
	byID.Close()
}
