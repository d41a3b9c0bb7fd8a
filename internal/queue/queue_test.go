package queue

import (
	"fmt"
	"testing"

	. "github.com/apconduct/veld/internal/test"
)

func TestCapFor(t *testing.T) {
	for i := 0; i <= 33; i++ {
		name := fmt.Sprintf("%d elements", i)
		t.Run(name, func(t *testing.T) {
			c := capFor(i)
			Assert(t, c >= minCap, "expecting at least %d, got %d", minCap, c)
			Assert(t, c&(c-1) == 0, "expecting 2^n, got %b", c)
			Assert(t, c >= i, "expecting capacity >= %d, got %d", i, c)
			if c > minCap {
				Assert(t, c>>1 < i, "expecting capacity/2 < %d, got capacity %d", i, c)
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	q := New[int]()
	ExpectInt(t, minCap, len(q.items))
	ExpectInt(t, 0, q.Len())
	ExpectBool(t, true, q.IsEmpty())

	i, f := q.Pop()
	ExpectInt(t, 0, i)
	ExpectBool(t, false, f)

	_, f = q.Front()
	ExpectBool(t, false, f)

	var zero Queue[int]
	zero.Push(5)
	i, f = zero.Pop()
	ExpectInt(t, 5, i)
	ExpectBool(t, true, f)
}

func TestPrefilled(t *testing.T) {
	items := make([]int, minCap+1)
	for i := range items {
		items[i] = i
	}

	q := New(items[:minCap]...)
	ExpectInt(t, minCap, q.Len())
	ExpectInt(t, minCap, len(q.items))

	q = New(items...)
	ExpectInt(t, minCap+1, q.Len())
	ExpectInt(t, minCap<<1, len(q.items))
	for i, v := range q.Items() {
		ExpectInt(t, i, v)
	}
}

func TestPushPop(t *testing.T) {
	q := New[int]()
	for i := 0; i < 3; i++ {
		q.Push(i)
	}
	for i := 0; i < 2; i++ {
		v, _ := q.Pop()
		ExpectInt(t, i, v)
	}

	for i := 3; i < 6; i++ {
		q.Push(i)
	}
	ExpectInt(t, minCap, len(q.items))
	ExpectInt(t, 2, q.head)

	q.Push(6)
	ExpectInt(t, minCap<<1, len(q.items))
	ExpectInt(t, 0, q.head)

	front, f := q.Front()
	ExpectBool(t, true, f)
	ExpectInt(t, 2, front)
	for i := 2; i <= 6; i++ {
		v, f := q.Pop()
		ExpectBool(t, true, f)
		ExpectInt(t, i, v)
	}
	ExpectBool(t, true, q.IsEmpty())
	ExpectInt(t, 0, q.head)
}

func TestItems(t *testing.T) {
	samples := []struct {
		head, count int
	}{
		{0, 0},
		{0, 3},
		{3, 1},
		{2, 4},
		{3, 4},
	}

	for i, s := range samples {
		name := fmt.Sprintf("sample #%d", i)
		t.Run(name, func(t *testing.T) {
			q := New[int]()
			for j := range q.items {
				q.items[j] = j
			}
			q.head = s.head
			q.count = s.count

			items := q.Items()
			ExpectInt(t, s.count, len(items))
			v := s.head
			for _, item := range items {
				ExpectInt(t, v, item)
				v = (v + 1) & (minCap - 1)
			}
		})
	}
}

func TestClear(t *testing.T) {
	q := New(1, 2, 3)
	q.Pop()
	q.Clear()
	ExpectBool(t, true, q.IsEmpty())
	ExpectInt(t, 0, q.head)
	for _, v := range q.items {
		ExpectInt(t, 0, v)
	}
}
