package ellspmv

import (
	"github.com/ellkernel/ellspmv/ellmat"
	"github.com/ellkernel/ellspmv/hwy"
)

// Working precision AT is fixed to float64 throughout this package: in the
// two-type domain this corpus's containers support (float32, float64),
// float64 is always at least as wide as every operand type, so accumulating
// in float64 is always at least as precise as accumulating in the widest of
// the operand types, without needing a type-level max operator Go generics
// can't express. See DESIGN.md for the considered alternatives.

const smallRHSBlockV = 4

// spmvSmallRHSBlockRange processes row-blocks [rowStart, rowEnd), V=4 rows
// per iteration, for RHS widths R in [1,4]. Both bounds must be multiples
// of V; this is what lets the row-parallel scheduler hand each worker a
// disjoint, block-aligned row range with no cross-worker coordination. R is
// a runtime int here (Go has no value-generic template parameter);
// spmvSmallRHS1..4 reach it through spmvSmallRHSSequential with an R
// literal, so the `j` loop is a candidate for the compiler to unroll.
func spmvSmallRHSBlockRange[MV, IV, OV hwy.Floats, IT hwy.SignedInts](
	a *ellmat.ELL[MV, IT], b *ellmat.Dense[IV], c *ellmat.Dense[OV], r int, ep epilogue[float64], rowStart, rowEnd int,
) {
	const v = smallRHSBlockV
	k := a.K()
	stride := a.Stride()
	values := a.Values()
	colIdxs := a.ColIdxs()
	bVals := b.Values()
	bStride := b.Stride()
	cVals := c.Values()
	cStride := c.Stride()
	invalid := ellmat.Invalid[IT]()

	var partial [v * 4]float64 // v*R, R<=4
	for firstRow := rowStart; firstRow < rowEnd; firstRow += v {
		for idx := range partial[:v*r] {
			partial[idx] = 0
		}
		for i := 0; i < k; i++ {
			for next := 0; next < v; next++ {
				off := firstRow + next + i*stride
				col := colIdxs[off]
				if col == invalid {
					continue
				}
				val := aAt[MV, float64](values, off)
				cIdx := int(col)
				for j := 0; j < r; j++ {
					partial[next*r+j] += val * bAt[IV, float64](bVals, cIdx, j, bStride)
				}
			}
		}
		for next := 0; next < v; next++ {
			row := firstRow + next
			for j := 0; j < r; j++ {
				prev := Promote[OV, float64](cVals[row*cStride+j])
				cVals[row*cStride+j] = Demote[float64, OV](ep.apply(partial[next*r+j], prev))
			}
		}
	}
}

// spmvSmallRHSTail processes rows [rowStart, rowEnd) one at a time, with
// the same masking semantics as the block path. Used both for the M mod V
// scalar tail of the row-blocked path and (when M < V) for the entire
// matrix.
func spmvSmallRHSTail[MV, IV, OV hwy.Floats, IT hwy.SignedInts](
	a *ellmat.ELL[MV, IT], b *ellmat.Dense[IV], c *ellmat.Dense[OV], r int, ep epilogue[float64], rowStart, rowEnd int,
) {
	k := a.K()
	stride := a.Stride()
	values := a.Values()
	colIdxs := a.ColIdxs()
	bVals := b.Values()
	bStride := b.Stride()
	cVals := c.Values()
	cStride := c.Stride()
	invalid := ellmat.Invalid[IT]()

	for row := rowStart; row < rowEnd; row++ {
		var sum [4]float64
		for i := 0; i < k; i++ {
			off := row + i*stride
			col := colIdxs[off]
			if col == invalid {
				continue
			}
			val := aAt[MV, float64](values, off)
			cIdx := int(col)
			for j := 0; j < r; j++ {
				sum[j] += val * bAt[IV, float64](bVals, cIdx, j, bStride)
			}
		}
		for j := 0; j < r; j++ {
			prev := Promote[OV, float64](cVals[row*cStride+j])
			cVals[row*cStride+j] = Demote[float64, OV](ep.apply(sum[j], prev))
		}
	}
}

// spmvSmallRHS1 computes C := A*B (or the advanced epilogue) for R=1 over
// the full matrix, single-threaded. Higher-level callers that want row
// parallelism go through the dispatcher (dispatch.go), which drives
// spmvSmallRHSBlockRange/spmvSmallRHSTail directly via the Executor.
func spmvSmallRHS1[MV, IV, OV hwy.Floats, IT hwy.SignedInts](a *ellmat.ELL[MV, IT], b *ellmat.Dense[IV], c *ellmat.Dense[OV], ep epilogue[float64]) {
	spmvSmallRHSSequential(a, b, c, 1, ep)
}

// spmvSmallRHS2 is spmvSmallRHS1's R=2 sibling.
func spmvSmallRHS2[MV, IV, OV hwy.Floats, IT hwy.SignedInts](a *ellmat.ELL[MV, IT], b *ellmat.Dense[IV], c *ellmat.Dense[OV], ep epilogue[float64]) {
	spmvSmallRHSSequential(a, b, c, 2, ep)
}

// spmvSmallRHS3 is spmvSmallRHS1's R=3 sibling.
func spmvSmallRHS3[MV, IV, OV hwy.Floats, IT hwy.SignedInts](a *ellmat.ELL[MV, IT], b *ellmat.Dense[IV], c *ellmat.Dense[OV], ep epilogue[float64]) {
	spmvSmallRHSSequential(a, b, c, 3, ep)
}

// spmvSmallRHS4 is spmvSmallRHS1's R=4 sibling.
func spmvSmallRHS4[MV, IV, OV hwy.Floats, IT hwy.SignedInts](a *ellmat.ELL[MV, IT], b *ellmat.Dense[IV], c *ellmat.Dense[OV], ep epilogue[float64]) {
	spmvSmallRHSSequential(a, b, c, 4, ep)
}

// spmvSmallRHSSequential runs the full matrix through the block path then
// the tail path, single-threaded. The dispatcher (dispatch.go) drives
// spmvSmallRHSBlockRange/spmvSmallRHSTail directly through the Executor
// when row parallelism is wanted.
func spmvSmallRHSSequential[MV, IV, OV hwy.Floats, IT hwy.SignedInts](a *ellmat.ELL[MV, IT], b *ellmat.Dense[IV], c *ellmat.Dense[OV], r int, ep epilogue[float64]) {
	m := a.Rows()
	blockRows := (m / smallRHSBlockV) * smallRHSBlockV
	spmvSmallRHSBlockRange(a, b, c, r, ep, 0, blockRows)
	spmvSmallRHSTail(a, b, c, r, ep, blockRows, m)
}
