package openapi

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// OrderedMap is a string-keyed map that remembers insertion order. Setting an
// existing key replaces its value in place. It serializes as a JSON object
// whose members follow insertion order, which keeps schema properties in
// declaration order and responses in the order they were documented.
//
// The zero value and a nil *OrderedMap are empty and ready for reads; the
// zero value also accepts writes.
type OrderedMap[V any] struct {
	pairs *orderedmap.OrderedMap[string, V]
}

// NewOrderedMap returns an empty ordered map.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{pairs: orderedmap.New[string, V]()}
}

// Set stores value under key. A new key is appended; an existing key keeps
// its position.
func (m *OrderedMap[V]) Set(key string, value V) {
	if m.pairs == nil {
		m.pairs = orderedmap.New[string, V]()
	}
	m.pairs.Set(key, value)
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil || m.pairs == nil {
		var zero V
		return zero, false
	}
	return m.pairs.Get(key)
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	if m == nil || m.pairs == nil {
		return 0
	}
	return m.pairs.Len()
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	var keys []string
	for k := range m.All() {
		keys = append(keys, k)
	}
	return keys
}

// All iterates over the entries in insertion order.
func (m *OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil || m.pairs == nil {
			return
		}
		for pair := m.pairs.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	if m == nil || m.pairs == nil {
		return []byte("{}"), nil
	}
	return m.pairs.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object, keeping the member order of data.
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	m.pairs = orderedmap.New[string, V]()
	return m.pairs.UnmarshalJSON(data)
}
