package ellspmv

import (
	"github.com/ellkernel/ellspmv/ellmat"
	"github.com/ellkernel/ellspmv/hwy"
)

// dispatchSpmv branches on the RHS width: for R=1 and the one type
// instantiation wired to vector kernels (MV=IV=OV=float64, IT=int32), try
// the AVX-512 masked-gather kernel first and otherwise run the portable
// Vec/Mask gather kernel (gather_portable.go); every other R=1 instantiation
// and R in [2,4] use the row-blocked small-RHS kernel, and anything wider
// the general blocked kernel. All four paths go through exec's worker pool
// so every branch gets the same row-parallel treatment.
func dispatchSpmv[MV, IV, OV hwy.Floats, IT hwy.SignedInts](exec *Executor, a *ellmat.ELL[MV, IT], b *ellmat.Dense[IV], c *ellmat.Dense[OV], ep epilogue[float64]) {
	_, r := b.Size()

	if r == 1 {
		if a64, ok := any(a).(*ellmat.ELL[float64, int32]); ok {
			if b64, ok2 := any(b).(*ellmat.Dense[float64]); ok2 {
				if c64, ok3 := any(c).(*ellmat.Dense[float64]); ok3 {
					if trySIMDSpmv(a64, b64, c64, ep, exec) {
						return
					}
					tryPortableGatherSpmv(a64, b64, c64, ep, exec)
					return
				}
			}
		}
	}

	if r >= 1 && r <= 4 {
		dispatchSmallRHS(exec, a, b, c, r, ep)
		return
	}

	dispatchBlocked(exec, a, b, c, ep)
}

// dispatchSmallRHS drives spmvSmallRHSBlockRange/spmvSmallRHSTail through
// exec's worker pool: row-blocks of V=4 rows are the unit of parallel work,
// using a static row-block partition.
func dispatchSmallRHS[MV, IV, OV hwy.Floats, IT hwy.SignedInts](exec *Executor, a *ellmat.ELL[MV, IT], b *ellmat.Dense[IV], c *ellmat.Dense[OV], r int, ep epilogue[float64]) {
	m := a.Rows()
	blockRows := (m / smallRHSBlockV) * smallRHSBlockV
	numBlocks := blockRows / smallRHSBlockV
	if numBlocks > 0 {
		exec.run(numBlocks, func(startBlock, endBlock int) {
			spmvSmallRHSBlockRange(a, b, c, r, ep, startBlock*smallRHSBlockV, endBlock*smallRHSBlockV)
		})
	}
	if blockRows < m {
		spmvSmallRHSTail(a, b, c, r, ep, blockRows, m)
	}
}

// dispatchBlocked drives spmvBlockedRange through exec's worker pool, one
// row per unit of parallel work (the wide-RHS kernel has no row-blocking).
func dispatchBlocked[MV, IV, OV hwy.Floats, IT hwy.SignedInts](exec *Executor, a *ellmat.ELL[MV, IT], b *ellmat.Dense[IV], c *ellmat.Dense[OV], ep epilogue[float64]) {
	m := a.Rows()
	exec.run(m, func(start, end int) {
		spmvBlockedRange(a, b, c, ep, start, end)
	})
}
