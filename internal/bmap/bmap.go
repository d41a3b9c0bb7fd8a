// Package bmap implements a small read-mostly map with []byte keys.
package bmap

// BMap maps byte slices to values without converting lookup keys to strings on the heap.
// It is intended to hold a small fixed set of keys (e.g. reserved words) built once and then
// shared read-only between scanners.
// Keys cannot be deleted. Added keys are copied, so callers may reuse their buffers.
type BMap[T any] struct {
	smap   map[string]T
	maxLen int
}

// New creates bytes map. size is a hint for the number of stored keys.
func New[T any](size int) *BMap[T] {
	return &BMap[T]{
		smap: make(map[string]T, size),
	}
}

// FromStrings creates a map holding every key of keys with value produced by value function.
func FromStrings[T any](keys []string, value func(key string) T) *BMap[T] {
	m := New[T](len(keys))
	for _, k := range keys {
		m.Set([]byte(k), value(k))
	}
	return m
}

// Get returns stored value by key and a flag telling whether this key is stored in the map.
// Returns zero value if the key is not present.
func (m *BMap[T]) Get(key []byte) (T, bool) {
	result, has := m.smap[string(key)]
	return result, has
}

// Has tells whether key is stored in the map.
func (m *BMap[T]) Has(key []byte) bool {
	if len(key) > m.maxLen {
		return false
	}
	_, has := m.smap[string(key)]
	return has
}

// Set adds or rewrites value for given key.
func (m *BMap[T]) Set(key []byte, value T) {
	if len(key) > m.maxLen {
		m.maxLen = len(key)
	}
	m.smap[string(key)] = value
}

// Len returns number of stored keys.
func (m *BMap[T]) Len() int {
	return len(m.smap)
}

// MaxKeyLen returns length of the longest stored key.
func (m *BMap[T]) MaxKeyLen() int {
	return m.maxLen
}
