//go:build amd64 && goexperiment.simd

package ellspmv

import (
	"simd/archsimd"

	"github.com/ellkernel/ellspmv/ellmat"
	"github.com/ellkernel/ellspmv/hwy"
)

const simdBlockV = 8

// spmvSIMDBlockRange is the masked-gather fast path for row-blocks
// [rowStart, rowEnd), V=8 rows per iteration, R=1. Only the
// MV=IV=OV=float64, IT=int32 instantiation is wired to hardware SIMD (see
// trySIMDSpmv's type gate in dispatch.go); every other type combination
// uses the scalar kernels in scalar.go.
//
// Masking happens before the gather, not after: column indices equal to
// Invalid are folded into a zero mask lane so GatherIndexMasked_AVX512_F64x8_I32
// never reads B at a stale or out-of-range offset.
func spmvSIMDBlockRange(a *ellmat.ELL[float64, int32], b *ellmat.Dense[float64], c *ellmat.Dense[float64], ep epilogue[float64], rowStart, rowEnd int) {
	const v = simdBlockV
	k := a.K()
	stride := a.Stride()
	values := a.Values()
	colIdxs := a.ColIdxs()
	bVals := b.Values()
	bStride := b.Stride()
	cVals := c.Values()
	cStride := c.Stride()

	for firstRow := rowStart; firstRow < rowEnd; firstRow += v {
		acc := archsimd.BroadcastFloat64x8(0)
		for i := 0; i < k; i++ {
			off := firstRow + i*stride

			var colData [16]int32
			var valData [8]float64
			var maskData [16]int32
			for lane := 0; lane < v; lane++ {
				col := colIdxs[off+lane]
				valData[lane] = values[off+lane]
				if col == ellmat.Invalid[int32]() {
					colData[lane] = 0
					maskData[lane] = 0
				} else {
					colData[lane] = col * int32(bStride)
					maskData[lane] = -1
				}
			}
			cols := archsimd.LoadInt32x16Slice(colData[:])
			mask := archsimd.LoadInt32x16Slice(maskData[:])
			aVec := archsimd.LoadFloat64x8Slice(valData[:])

			gathered := hwy.GatherIndexMasked_AVX512_F64x8_I32(bVals, cols, mask)
			acc = acc.Add(aVec.Mul(gathered))
		}

		var partial [8]float64
		acc.StoreSlice(partial[:])
		for lane := 0; lane < v; lane++ {
			row := firstRow + lane
			prev := cVals[row*cStride]
			cVals[row*cStride] = ep.apply(partial[lane], prev)
		}
	}
}

// trySIMDSpmv runs the AVX-512 masked-gather R=1 kernel across the row
// range [0, a.Rows()) using exec's worker pool, returning false if the
// runtime-detected dispatch level is below AVX-512 (e.g. the CPU lacks
// support or HWY_NO_SIMD is set). dispatch.go only calls this once its
// type-assertion gate confirms MV=IV=OV=float64, IT=int32.
func trySIMDSpmv(a *ellmat.ELL[float64, int32], b, c *ellmat.Dense[float64], ep epilogue[float64], exec *Executor) bool {
	if hwy.CurrentLevel() != hwy.DispatchAVX512 {
		return false
	}
	m := a.Rows()
	blockRows := (m / simdBlockV) * simdBlockV
	numBlocks := blockRows / simdBlockV
	if numBlocks > 0 {
		exec.run(numBlocks, func(startBlock, endBlock int) {
			spmvSIMDBlockRange(a, b, c, ep, startBlock*simdBlockV, endBlock*simdBlockV)
		})
	}
	if blockRows < m {
		spmvSmallRHSTail(a, b, c, 1, ep, blockRows, m)
	}
	return true
}
