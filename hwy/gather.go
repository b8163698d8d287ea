package hwy

// This file provides the pure Go (scalar) implementation of the masked
// gather used by the ELL SpMV kernels. The AVX-512 build (gather_avx512.go)
// provides a hardware-accelerated path for the same semantics; this one is
// what ellspmv's portable fallback kernel (gather_portable.go) uses when
// that hardware path isn't available.

// GatherIndexMasked loads elements from non-contiguous memory locations specified by indices,
// but only for lanes where the mask is true.
// If an index is out of bounds or the mask is false, the result for that lane is zero.
// This is the portable equivalent of the masked gather ELL padding slots rely on: a
// masked-off lane never dereferences its index into src, valid or not.
func GatherIndexMasked[T Lanes, I ~int32 | ~int64](src []T, indices Vec[I], mask Mask[T]) Vec[T] {
	n := min(len(mask.bits), len(indices.data))
	result := make([]T, len(indices.data))
	for i := range n {
		if mask.bits[i] {
			idx := int(indices.data[i])
			if idx >= 0 && idx < len(src) {
				result[i] = src[idx]
			}
		}
		// else: leave as zero value
	}
	return Vec[T]{data: result}
}
