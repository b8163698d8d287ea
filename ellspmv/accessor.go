package ellspmv

import "github.com/ellkernel/ellspmv/hwy"

// aAt/bAt are thin, bounds-check-free translators from raw storage to the
// working precision AT, small enough that the compiler inlines them at
// every call site inside the kernels' inner loops.

// aAt reads A's i-th raw stored value and promotes it to AT.
func aAt[MV, AT hwy.Floats](values []MV, i int) AT {
	return Promote[MV, AT](values[i])
}

// bAt reads B[row, col] (row-major, given stride) and promotes it to AT.
func bAt[IV, AT hwy.Floats](b []IV, row, col, stride int) AT {
	return Promote[IV, AT](b[row*stride+col])
}
