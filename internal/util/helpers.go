package util

import (
	"fmt"
	"strings"
)

// Ptr returns a pointer to the value.
func Ptr[T any](v T) *T {
	return &v
}

// Deref safely dereferences a pointer, returning the zero value if nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Money renders a monetary amount with up to two decimal places,
// dropping trailing zeros so whole amounts print without a fraction.
func Money(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
