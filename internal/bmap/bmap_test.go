package bmap

import (
	"testing"

	. "github.com/apconduct/veld/internal/test"
)

func TestEmptyMap(t *testing.T) {
	m := New[int](1)

	en, found := m.Get([]byte{})
	ExpectInt(t, 0, en)
	ExpectBool(t, false, found)

	en, found = m.Get([]byte{1, 2, 3})
	ExpectInt(t, 0, en)
	ExpectBool(t, false, found)
	ExpectInt(t, 0, m.Len())
}

func TestEmptyKey(t *testing.T) {
	m := New[int](1)
	empty := []byte{}

	m.Set([]byte("foo"), 123)
	en, found := m.Get(empty)
	ExpectInt(t, 0, en)
	ExpectBool(t, false, found)

	m.Set(empty, 345)
	en, found = m.Get(empty)
	ExpectInt(t, 345, en)
	ExpectBool(t, true, found)
}

func TestKey(t *testing.T) {
	m := New[int](2)
	key := []byte{1, 2, 3}
	key2 := []byte{1, 2}

	m.Set(key, 111)
	m.Set(key2, 222)

	en, found := m.Get(key)
	ExpectInt(t, 111, en)
	ExpectBool(t, true, found)

	key = key[:2]
	en, found = m.Get(key)
	ExpectInt(t, 222, en)
	ExpectBool(t, true, found)
}

func TestKeysAreCopied(t *testing.T) {
	m := New[bool](1)
	buf := []byte("let")
	m.Set(buf, true)
	buf[0] = 'n'

	ExpectBool(t, true, m.Has([]byte("let")))
	ExpectBool(t, false, m.Has(buf))
}

func TestFromStrings(t *testing.T) {
	m := FromStrings([]string{"if", "then", "else"}, func(k string) int { return len(k) })
	ExpectInt(t, 3, m.Len())
	ExpectInt(t, 4, m.MaxKeyLen())

	n, found := m.Get([]byte("then"))
	ExpectBool(t, true, found)
	ExpectInt(t, 4, n)
	ExpectBool(t, false, m.Has([]byte("elsewhere")))
}
