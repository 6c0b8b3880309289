package idxrange

// Slice returns s[r.Start():r.End()]. It follows the native slicing
// contract: bounds beyond len(s) panic. Use ClampTo to stay in bounds.
func Slice[T any](s []T, r Range) []T {
	return s[r.start:r.end]
}
