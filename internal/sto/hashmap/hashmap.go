// Copyright 2026 MELP Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package hashmap implements the string-keyed, chained hash table that the
// generated code uses for the surface `map` type: FNV-1a hashing, 16-bucket
// initial capacity, and resize-on-0.75-load-factor, matching the reference
// C implementation in runtime/stdlib/mlp_map.c.
package hashmap

const (
	initialCapacity = 16
	loadFactor      = 0.75

	fnvOffsetBasis uint64 = 14695981039346656037
	fnvPrime       uint64 = 1099511628211
)

type node[V any] struct {
	key   string
	value V
	next  *node[V]
}

// Map is a string-keyed chained hash table holding values of type V.
type Map[V any] struct {
	buckets []*node[V]
	length  int
}

// New creates an empty map.
func New[V any]() *Map[V] {
	return &Map[V]{buckets: make([]*node[V], initialCapacity)}
}

// hash computes the FNV-1a hash of key.
func hash(key string) uint64 {
	h := fnvOffsetBasis
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= fnvPrime
	}
	return h
}

func (m *Map[V]) bucketIndex(key string, capacity int) int {
	return int(hash(key) % uint64(capacity))
}

// resize doubles the bucket array and rehashes every existing node.
func (m *Map[V]) resize(newCapacity int) {
	newBuckets := make([]*node[V], newCapacity)
	for _, head := range m.buckets {
		for n := head; n != nil; {
			next := n.next
			idx := int(hash(n.key) % uint64(newCapacity))
			n.next = newBuckets[idx]
			newBuckets[idx] = n
			n = next
		}
	}
	m.buckets = newBuckets
}

// Insert adds or overwrites the value stored under key.
func (m *Map[V]) Insert(key string, value V) {
	if float64(m.length+1)/float64(len(m.buckets)) > loadFactor {
		m.resize(len(m.buckets) * 2)
	}
	idx := m.bucketIndex(key, len(m.buckets))
	for n := m.buckets[idx]; n != nil; n = n.next {
		if n.key == key {
			n.value = value
			return
		}
	}
	m.buckets[idx] = &node[V]{key: key, value: value, next: m.buckets[idx]}
	m.length++
}

// Get returns the value stored under key, and whether key was present. The
// lifetime of the returned value's identity ends at the next operation that
// could mutate or resize the map.
func (m *Map[V]) Get(key string) (V, bool) {
	idx := m.bucketIndex(key, len(m.buckets))
	for n := m.buckets[idx]; n != nil; n = n.next {
		if n.key == key {
			return n.value, true
		}
	}
	var zero V
	return zero, false
}

// Has reports whether key is present.
func (m *Map[V]) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Remove deletes key, reporting whether it was present.
func (m *Map[V]) Remove(key string) bool {
	idx := m.bucketIndex(key, len(m.buckets))
	var prev *node[V]
	for n := m.buckets[idx]; n != nil; n = n.next {
		if n.key == key {
			if prev == nil {
				m.buckets[idx] = n.next
			} else {
				prev.next = n.next
			}
			m.length--
			return true
		}
		prev = n
	}
	return false
}

// Len returns the number of key/value pairs currently stored.
func (m *Map[V]) Len() int {
	return m.length
}

// Keys returns every key currently stored, in unspecified order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, m.length)
	for _, head := range m.buckets {
		for n := head; n != nil; n = n.next {
			keys = append(keys, n.key)
		}
	}
	return keys
}
