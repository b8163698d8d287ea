//go:build !(amd64 && goexperiment.simd)

package ellspmv

import "github.com/ellkernel/ellspmv/ellmat"

// trySIMDSpmv is the non-SIMD-build stub: this platform/build has no
// archsimd kernel available, so the dispatcher always falls back to the
// portable gather kernel (tryPortableGatherSpmv) for R=1.
func trySIMDSpmv(a *ellmat.ELL[float64, int32], b, c *ellmat.Dense[float64], ep epilogue[float64], exec *Executor) bool {
	return false
}
