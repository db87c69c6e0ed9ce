package bytetable

import (
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"testing"

	"github.com/aclements/go-perfevent/perfbench"
	"github.com/cespare/xxhash/v2"
)

func BenchmarkTableGetHit(b *testing.B) {
	b.Run("impl=runtimeMap", benchSizes(benchmarkRuntimeMapGetHit))
	b.Run("impl=byteTable/hash=fnv1a", benchSizes(benchmarkByteTableGetHit(fnv1a)))
	b.Run("impl=byteTable/hash=xxhash", benchSizes(benchmarkByteTableGetHit(xxhash.Sum64)))
}

func BenchmarkTableGetMiss(b *testing.B) {
	b.Run("impl=runtimeMap", benchSizes(benchmarkRuntimeMapGetMiss))
	b.Run("impl=byteTable/hash=fnv1a", benchSizes(benchmarkByteTableGetMiss(fnv1a)))
	b.Run("impl=byteTable/hash=xxhash", benchSizes(benchmarkByteTableGetMiss(xxhash.Sum64)))
}

func BenchmarkTablePutGrow(b *testing.B) {
	b.Run("impl=runtimeMap", benchSizes(benchmarkRuntimeMapPutGrow))
	b.Run("impl=byteTable/hash=fnv1a", benchSizes(benchmarkByteTablePutGrow(fnv1a)))
	b.Run("impl=byteTable/hash=xxhash", benchSizes(benchmarkByteTablePutGrow(xxhash.Sum64)))
}

func BenchmarkTablePutDelete(b *testing.B) {
	b.Run("impl=runtimeMap", benchSizes(benchmarkRuntimeMapPutDelete))
	b.Run("impl=byteTable/hash=fnv1a", benchSizes(benchmarkByteTablePutDelete(fnv1a)))
	b.Run("impl=byteTable/hash=xxhash", benchSizes(benchmarkByteTablePutDelete(xxhash.Sum64)))
}

func BenchmarkHash(b *testing.B) {
	hashes := []struct {
		name string
		fn   func([]byte) uint64
	}{
		{"fnv1a", fnv1a},
		{"xxhash", xxhash.Sum64},
	}
	for _, h := range hashes {
		for _, n := range []int{8, 64, 1024} {
			b.Run(fmt.Sprintf("hash=%s/len=%d", h.name, n), func(b *testing.B) {
				key := make([]byte, n)
				rand.New(rand.NewSource(int64(n))).Read(key)
				b.ResetTimer()
				var sum uint64
				for i := 0; i < b.N; i++ {
					sum = h.fn(key)
				}
				b.StopTimer()
				fmt.Fprint(io.Discard, sum)
			})
		}
	}
}

func benchSizes(f func(b *testing.B, n int)) func(*testing.B) {
	var cases = []int{
		16,
		128,
		1024,
		8192,
		1 << 16,
	}

	return func(b *testing.B) {
		for _, n := range cases {
			b.Run("len="+strconv.Itoa(n), func(b *testing.B) { f(b, n) })
		}
	}
}

func genKeys(start, end int) [][]byte {
	keys := make([][]byte, end-start)
	for i := range keys {
		keys[i] = []byte(strconv.Itoa(start + i))
	}
	return keys
}

func genStringKeys(start, end int) []string {
	keys := make([]string, end-start)
	for i := range keys {
		keys[i] = strconv.Itoa(start + i)
	}
	return keys
}

func benchmarkRuntimeMapGetHit(b *testing.B, n int) {
	m := make(map[string]int, n)
	keys := genStringKeys(0, n)
	for i, k := range keys {
		m[k] = i
	}
	cs := perfbench.Open(b)
	b.ResetTimer()
	var v int
	for i := 0; i < b.N; i++ {
		v = m[keys[i%n]]
	}
	cs.Stop()
	b.StopTimer()
	fmt.Fprint(io.Discard, v)
}

func benchmarkByteTableGetHit(hash func([]byte) uint64) func(b *testing.B, n int) {
	return func(b *testing.B, n int) {
		m := New[int](WithHash[int](hash))
		defer m.Close()
		keys := genKeys(0, n)
		for i, k := range keys {
			m.Put(k, i)
		}
		cs := perfbench.Open(b)
		b.ResetTimer()
		var ok bool
		for i := 0; i < b.N; i++ {
			_, ok = m.Get(keys[i%n])
		}
		cs.Stop()
		b.StopTimer()
		fmt.Fprint(io.Discard, ok)
	}
}

func benchmarkRuntimeMapGetMiss(b *testing.B, n int) {
	m := make(map[string]int, n)
	keys := genStringKeys(0, n)
	miss := genStringKeys(-n, 0)
	for i, k := range keys {
		m[k] = i
	}
	cs := perfbench.Open(b)
	b.ResetTimer()
	var v int
	for i := 0; i < b.N; i++ {
		v = m[miss[i%n]]
	}
	cs.Stop()
	b.StopTimer()
	fmt.Fprint(io.Discard, v)
}

func benchmarkByteTableGetMiss(hash func([]byte) uint64) func(b *testing.B, n int) {
	return func(b *testing.B, n int) {
		m := New[int](WithHash[int](hash))
		defer m.Close()
		keys := genKeys(0, n)
		miss := genKeys(-n, 0)
		for i, k := range keys {
			m.Put(k, i)
		}
		cs := perfbench.Open(b)
		b.ResetTimer()
		var ok bool
		for i := 0; i < b.N; i++ {
			_, ok = m.Get(miss[i%n])
		}
		cs.Stop()
		b.StopTimer()
		fmt.Fprint(io.Discard, ok)
	}
}

func benchmarkRuntimeMapPutGrow(b *testing.B, n int) {
	keys := genStringKeys(0, n)
	cs := perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := make(map[string]int)
		for j, k := range keys {
			m[k] = j
		}
	}
	cs.Stop()
}

func benchmarkByteTablePutGrow(hash func([]byte) uint64) func(b *testing.B, n int) {
	return func(b *testing.B, n int) {
		keys := genKeys(0, n)
		cs := perfbench.Open(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			m := New[int](WithHash[int](hash))
			for j, k := range keys {
				m.Put(k, j)
			}
		}
		cs.Stop()
	}
}

func benchmarkRuntimeMapPutDelete(b *testing.B, n int) {
	m := make(map[string]int, n)
	keys := genStringKeys(0, n)
	for i, k := range keys {
		m[k] = i
	}
	cs := perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		j := i % n
		delete(m, keys[j])
		m[keys[j]] = j
	}
	cs.Stop()
}

func benchmarkByteTablePutDelete(hash func([]byte) uint64) func(b *testing.B, n int) {
	return func(b *testing.B, n int) {
		m := New[int](WithHash[int](hash))
		defer m.Close()
		keys := genKeys(0, n)
		for i, k := range keys {
			m.Put(k, i)
		}
		cs := perfbench.Open(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			j := i % n
			m.Delete(keys[j])
			m.Put(keys[j], j)
		}
		cs.Stop()
	}
}
