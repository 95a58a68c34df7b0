package common

import (
	"slices"
	"strings"
)

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}

// FormatDate returns the calendar part (YYYY-MM-DD) of an API timestamp such as
// "2022-10-27 13:45:35.000000 +00:00" or "2022-10-27T13:45:35Z".
// An empty input yields an empty string.
func FormatDate(date string) string {
	if date == "" {
		return ""
	}
	if i := strings.IndexAny(date, "T "); i >= 0 {
		return date[:i]
	}
	return date
}

// ReverseDate turns "2023-06-02" into "02/06/2023".
func ReverseDate(date string) string {
	parts := strings.Split(date, "-")
	slices.Reverse(parts)
	return strings.Join(parts, "/")
}

// ArraysAreEqual reports whether a and b have the same length and every element
// of a is present in b. Order is ignored.
func ArraysAreEqual[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for _, v := range a {
		if !slices.Contains(b, v) {
			return false
		}
	}
	return true
}

// Difference returns the elements of a that are absent from b, keeping a's order.
func Difference[T comparable](a, b []T) []T {
	out := make([]T, 0, len(a))
	for _, v := range a {
		if !slices.Contains(b, v) {
			out = append(out, v)
		}
	}
	return out
}

// Unique returns the distinct elements of s in first-seen order.
func Unique[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	out := make([]T, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
