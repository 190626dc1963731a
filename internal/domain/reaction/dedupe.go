package reaction

// RemoveDuplicates removes duplicate elements while preserving first-seen
// order.  It is used on raw molecule substrings before parsing, so that
// dedup keys are the literal input fragments rather than canonical renders.
func RemoveDuplicates[T comparable](seq []T) []T {
	return RemoveDuplicatesBy(seq, func(x T) T { return x })
}

// RemoveDuplicatesBy removes duplicates by a derived comparable key while
// preserving first-seen order.
func RemoveDuplicatesBy[T any, K comparable](seq []T, key func(T) K) []T {
	seen := make(map[K]bool, len(seq))
	out := make([]T, 0, len(seq))
	for _, x := range seq {
		k := key(x)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, x)
	}
	return out
}
