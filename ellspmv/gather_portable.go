package ellspmv

import (
	"github.com/ellkernel/ellspmv/ellmat"
	"github.com/ellkernel/ellspmv/hwy"
)

// maxPortableBlockV bounds the row-block width used by
// spmvPortableGatherBlockRange: it's sized well above any MaxLanes[float64]
// the dispatcher can report, so the scratch arrays below never need to
// escape to the heap.
const maxPortableBlockV = 64

// portableBlockWidth returns the row-block width spmvPortableGatherBlockRange
// and tryPortableGatherSpmv must agree on: the current dispatch level's
// float64 lane count, clamped to [1, maxPortableBlockV].
func portableBlockWidth() int {
	v := hwy.MaxLanes[float64]()
	if v < 1 {
		v = 1
	}
	if v > maxPortableBlockV {
		v = maxPortableBlockV
	}
	return v
}

// spmvPortableGatherBlockRange is the non-hardware-SIMD analog of
// spmvSIMDBlockRange: it drives the same mask-before-gather kernel shape
// through the portable hwy.Vec/hwy.Mask scalar fallback instead of
// archsimd's native vector types, so builds without GOEXPERIMENT=simd (or
// CPUs the dispatcher detects as lacking AVX-512) still process R=1 a
// vector width at a time rather than one row at a time. Restricted to the
// MV=IV=OV=float64, IT=int32 instantiation tryPortableGatherSpmv gates on,
// since hwy.GatherIndexMasked's index constraint is narrower than the
// general IT type parameter.
func spmvPortableGatherBlockRange(a *ellmat.ELL[float64, int32], b *ellmat.Dense[float64], c *ellmat.Dense[float64], ep epilogue[float64], rowStart, rowEnd int) {
	v := portableBlockWidth()

	k := a.K()
	stride := a.Stride()
	values := a.Values()
	colIdxs := a.ColIdxs()
	bVals := b.Values()
	bStride := b.Stride()
	cVals := c.Values()
	cStride := c.Stride()
	invalidFloat := hwy.Set[float64](float64(ellmat.Invalid[int32]()))

	var colsFloatBuf, partialBuf [maxPortableBlockV]float64
	var scaledBuf [maxPortableBlockV]int32

	for firstRow := rowStart; firstRow < rowEnd; firstRow += v {
		acc := hwy.Zero[float64]()
		for i := 0; i < k; i++ {
			off := firstRow + i*stride
			cols := hwy.Load(colIdxs[off : off+v])
			aVec := hwy.Load(values[off : off+v])

			for lane, col := range cols.Data() {
				colsFloatBuf[lane] = float64(col)
				scaledBuf[lane] = col * int32(bStride)
			}
			mask := hwy.NotEqual(hwy.Load(colsFloatBuf[:v]), invalidFloat)
			if !mask.AnyTrue() {
				continue
			}

			gathered := hwy.GatherIndexMasked(bVals, hwy.Load(scaledBuf[:v]), mask)
			acc = hwy.FMA(aVec, gathered, acc)
		}

		hwy.Store(acc, partialBuf[:v])
		for lane := 0; lane < v; lane++ {
			row := firstRow + lane
			prev := cVals[row*cStride]
			cVals[row*cStride] = ep.apply(partialBuf[lane], prev)
		}
	}
}

// tryPortableGatherSpmv runs spmvPortableGatherBlockRange across exec's
// worker pool for R=1. Unlike trySIMDSpmv it never declines: the portable
// Vec fallback has no hardware prerequisite, so dispatch.go calls this only
// once trySIMDSpmv has already had its chance.
func tryPortableGatherSpmv(a *ellmat.ELL[float64, int32], b, c *ellmat.Dense[float64], ep epilogue[float64], exec *Executor) {
	v := portableBlockWidth()
	m := a.Rows()
	blockRows := (m / v) * v
	numBlocks := blockRows / v
	if numBlocks > 0 {
		exec.run(numBlocks, func(startBlock, endBlock int) {
			spmvPortableGatherBlockRange(a, b, c, ep, startBlock*v, endBlock*v)
		})
	}
	if blockRows < m {
		spmvSmallRHSTail(a, b, c, 1, ep, blockRows, m)
	}
}
