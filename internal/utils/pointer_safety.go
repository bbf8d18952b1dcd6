package utils

import "strings"

// Value dereferences v, returning the zero value for nil.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

func ValueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}

func Ptr[T any](v T) *T {
	return &v
}

// TrimmedPtr returns a pointer to a trimmed copy of *s. Nil stays nil.
func TrimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return Ptr(strings.TrimSpace(*s))
}
