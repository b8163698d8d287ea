package ellspmv

import (
	"fmt"
	"unsafe"

	"github.com/ellkernel/ellspmv/hwy"
)

// checkSpmvShapes validates the plain-SpMV shape preconditions: A.rows ==
// C.rows, A.cols == B.rows, B.cols == C.cols. Matches the teacher's own
// panic("...") precondition style (matvec_base.go, matmul_blocked.go)
// rather than returning an error: a shape mismatch is a caller bug, not a
// recoverable runtime condition.
func checkSpmvShapes(aRows, aCols, bRows, bCols, cRows, cCols int) {
	if aRows != cRows {
		panic(fmt.Sprintf("ellspmv: A.rows (%d) != C.rows (%d)", aRows, cRows))
	}
	if aCols != bRows {
		panic(fmt.Sprintf("ellspmv: A.cols (%d) != B.rows (%d)", aCols, bRows))
	}
	if bCols != cCols {
		panic(fmt.Sprintf("ellspmv: B.cols (%d) != C.cols (%d)", bCols, cCols))
	}
}

// checkScalarShape validates that alpha/beta are 1x1, as AdvancedSpmv
// requires.
func checkScalarShape(name string, rows, cols int) {
	if rows != 1 || cols != 1 {
		panic(fmt.Sprintf("ellspmv: %s must be 1x1, got %dx%d", name, rows, cols))
	}
}

// slicesOverlap reports whether the memory spans backing a and b overlap,
// regardless of element type. Grounded on the aliasing-avoidance discipline
// of sparse BLAS wrappers (workspace/output buffers must never alias): C
// must never alias A or B, and this is how that's actually checked at a
// raw-buffer level.
func slicesOverlap[A, B hwy.Floats](a []A, b []B) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	var za A
	var zb B
	aStart := uintptr(unsafe.Pointer(&a[0]))
	aEnd := aStart + uintptr(len(a))*unsafe.Sizeof(za)
	bStart := uintptr(unsafe.Pointer(&b[0]))
	bEnd := bStart + uintptr(len(b))*unsafe.Sizeof(zb)
	return aStart < bEnd && bStart < aEnd
}

// checkNoAliasing panics if C's backing buffer overlaps A's or B's.
func checkNoAliasing[MV, IV, OV hwy.Floats](aValues []MV, bValues []IV, cValues []OV) {
	if slicesOverlap(aValues, cValues) {
		panic("ellspmv: C aliases A's value buffer")
	}
	if slicesOverlap(bValues, cValues) {
		panic("ellspmv: C aliases B's value buffer")
	}
}
