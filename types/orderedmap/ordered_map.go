// Package orderedmap provides a generic map that remembers insertion order.
package orderedmap

import "iter"

type entry[K comparable, V any] struct {
	key        K
	value      V
	prev, next *entry[K, V]
}

// OrderedMap stores key/value pairs and iterates them in insertion order. Overwriting an
// existing key keeps its original position. The zero value is not usable; use New.
type OrderedMap[K comparable, V any] struct {
	index      map[K]*entry[K, V]
	head, tail *entry[K, V]
}

// New creates an empty OrderedMap
func New[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{index: make(map[K]*entry[K, V])}
}

// Set stores value under key
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if e, ok := m.index[key]; ok {
		e.value = value
		return
	}

	e := &entry[K, V]{key: key, value: value, prev: m.tail}
	if m.tail != nil {
		m.tail.next = e
	} else {
		m.head = e
	}
	m.tail = e
	m.index[key] = e
}

// Get returns the value stored under key and whether it exists
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	if e, ok := m.index[key]; ok {
		return e.value, true
	}

	var zero V
	return zero, false
}

// Has reports whether key exists
func (m *OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.index[key]
	return ok
}

// Delete removes key. Deleting a missing key is a no-op.
func (m *OrderedMap[K, V]) Delete(key K) {
	e, ok := m.index[key]
	if !ok {
		return
	}

	if e.prev != nil {
		e.prev.next = e.next
	} else {
		m.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		m.tail = e.prev
	}
	delete(m.index, key)
}

// Len returns the number of stored pairs
func (m *OrderedMap[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.index)
}

// All iterates over the pairs in insertion order
func (m *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}
		for e := m.head; e != nil; e = e.next {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Keys returns the keys in insertion order
func (m *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, 0, m.Len())
	for k := range m.All() {
		keys = append(keys, k)
	}
	return keys
}

// Values returns the values in insertion order
func (m *OrderedMap[K, V]) Values() []V {
	values := make([]V, 0, m.Len())
	for _, v := range m.All() {
		values = append(values, v)
	}
	return values
}

// Clone returns a shallow copy that preserves order
func (m *OrderedMap[K, V]) Clone() *OrderedMap[K, V] {
	c := New[K, V]()
	for k, v := range m.All() {
		c.Set(k, v)
	}
	return c
}
