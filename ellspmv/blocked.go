package ellspmv

import (
	"github.com/ellkernel/ellspmv/ellmat"
	"github.com/ellkernel/ellspmv/hwy"
)

const blockedBCol = 4

// spmvBlockedRange handles the general wide-RHS case for rows [rowStart,
// rowEnd): one row at a time (no row-blocking), RHS traversed in tiles of
// bCol=4 with a scalar tail for the remaining columns. Grounded on
// matmul_blocked.go's register-tile accumulator shape, adapted from a dense
// B_col x B_col tile to an RHS-only tile since the sparse side of this
// product has no column blocking of its own. The row range lets the
// row-parallel scheduler hand each worker a disjoint slice of rows.
func spmvBlockedRange[MV, IV, OV hwy.Floats, IT hwy.SignedInts](
	a *ellmat.ELL[MV, IT], b *ellmat.Dense[IV], c *ellmat.Dense[OV], ep epilogue[float64], rowStart, rowEnd int,
) {
	const bCol = blockedBCol
	_, rCols := c.Size()
	k := a.K()
	stride := a.Stride()
	values := a.Values()
	colIdxs := a.ColIdxs()
	bVals := b.Values()
	bStride := b.Stride()
	cVals := c.Values()
	cStride := c.Stride()
	invalid := ellmat.Invalid[IT]()

	rounded := (rCols / bCol) * bCol
	tailCols := rCols - rounded

	for row := rowStart; row < rowEnd; row++ {
		for rhsBase := 0; rhsBase < rounded; rhsBase += bCol {
			var acc [bCol]float64
			for i := 0; i < k; i++ {
				off := row + i*stride
				col := colIdxs[off]
				if col == invalid {
					continue
				}
				val := aAt[MV, float64](values, off)
				cIdx := int(col)
				for j := 0; j < bCol; j++ {
					acc[j] += val * bAt[IV, float64](bVals, cIdx, rhsBase+j, bStride)
				}
			}
			for j := 0; j < bCol; j++ {
				col := rhsBase + j
				prev := Promote[OV, float64](cVals[row*cStride+col])
				cVals[row*cStride+col] = Demote[float64, OV](ep.apply(acc[j], prev))
			}
		}

		// RHS tail: columns [rounded, R) reuse accumulator slots [0, R-rounded).
		if tailCols > 0 {
			var acc [bCol]float64
			for i := 0; i < k; i++ {
				off := row + i*stride
				col := colIdxs[off]
				if col == invalid {
					continue
				}
				val := aAt[MV, float64](values, off)
				cIdx := int(col)
				for j := 0; j < tailCols; j++ {
					acc[j] += val * bAt[IV, float64](bVals, cIdx, rounded+j, bStride)
				}
			}
			for j := 0; j < tailCols; j++ {
				col := rounded + j
				prev := Promote[OV, float64](cVals[row*cStride+col])
				cVals[row*cStride+col] = Demote[float64, OV](ep.apply(acc[j], prev))
			}
		}
	}
}

// spmvBlocked runs spmvBlockedRange over the whole matrix, single-threaded.
func spmvBlocked[MV, IV, OV hwy.Floats, IT hwy.SignedInts](a *ellmat.ELL[MV, IT], b *ellmat.Dense[IV], c *ellmat.Dense[OV], ep epilogue[float64]) {
	spmvBlockedRange(a, b, c, ep, 0, a.Rows())
}
