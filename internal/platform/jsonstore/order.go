package jsonstore

import (
	"cmp"
	"slices"
	"time"
)

// newestFirst orders by creation time then id, both descending. The SQL
// backend uses the same ordering.
func newestFirst(at1 time.Time, id1 string, at2 time.Time, id2 string) int {
	if c := at2.Compare(at1); c != 0 {
		return c
	}
	return cmp.Compare(id2, id1)
}

func oldestFirst(at1 time.Time, id1 string, at2 time.Time, id2 string) int {
	return -newestFirst(at1, id1, at2, id2)
}

func sortBy[T any](items []T, key func(T) (time.Time, string), order func(time.Time, string, time.Time, string) int) {
	slices.SortStableFunc(items, func(a, b T) int {
		at1, id1 := key(a)
		at2, id2 := key(b)
		return order(at1, id1, at2, id2)
	})
}
