// Package utils holds the small generic helpers shared across packages.
package utils

// Ptr returns a pointer to v, for optional struct fields.
func Ptr[T any](v T) *T {
	return &v
}

func Filter[T any](src []T, keep func(T) bool) []T {
	dst := make([]T, 0, len(src))
	for _, item := range src {
		if keep(item) {
			dst = append(dst, item)
		}
	}
	return dst
}

func Map[T any, U any](src []T, mapper func(T) U) []U {
	dst := make([]U, 0, len(src))
	for _, item := range src {
		dst = append(dst, mapper(item))
	}
	return dst
}

// Find returns a pointer to the first match, nil when nothing matches.
func Find[T any](items []T, match func(T) bool) *T {
	for _, item := range items {
		if match(item) {
			return &item
		}
	}
	return nil
}

func GroupBy[T any, K comparable](items []T, key func(T) K) map[K][]T {
	grouped := make(map[K][]T)
	for _, item := range items {
		grouped[key(item)] = append(grouped[key(item)], item)
	}
	return grouped
}
