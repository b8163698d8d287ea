// Package ellspmv computes C := A*B and C := alpha*A*B + beta*C for a
// sparse ELLPACK matrix A against a dense matrix B, dispatching across
// scalar, row-blocked, and AVX-512 masked-gather kernels by RHS width and
// runtime CPU support.
package ellspmv

import (
	"github.com/ellkernel/ellspmv/ellmat"
	"github.com/ellkernel/ellspmv/hwy"
)

// Spmv computes C := A*B. A is rows x cols in ELLPACK format, B is
// cols x R, C is rows x R. Panics if the shapes are inconsistent or if C
// aliases A's or B's backing buffer.
func Spmv[MV, IV, OV hwy.Floats, IT hwy.SignedInts](
	exec *Executor, a *ellmat.ELL[MV, IT], b *ellmat.Dense[IV], c *ellmat.Dense[OV],
) {
	checkSpmvShapes(a.Rows(), a.Cols(), b.Rows(), b.Cols(), c.Rows(), c.Cols())
	checkNoAliasing(a.Values(), b.Values(), c.Values())
	checkColumnIndices(a.ColIdxs(), a.Cols())

	dispatchSpmv(exec, a, b, c, identityEpilogue[float64]())
}

// AdvancedSpmv computes C := alpha*A*B + beta*C, where alpha and beta are
// 1x1 scalar matrices. Panics under the same conditions as Spmv, plus if
// alpha or beta is not 1x1.
func AdvancedSpmv[MV, IV, OV hwy.Floats, IT hwy.SignedInts](
	exec *Executor, alpha *ellmat.Dense[OV], a *ellmat.ELL[MV, IT],
	b *ellmat.Dense[IV], beta *ellmat.Dense[OV], c *ellmat.Dense[OV],
) {
	checkSpmvShapes(a.Rows(), a.Cols(), b.Rows(), b.Cols(), c.Rows(), c.Cols())
	checkScalarShape("alpha", alpha.Rows(), alpha.Cols())
	checkScalarShape("beta", beta.Rows(), beta.Cols())
	checkNoAliasing(a.Values(), b.Values(), c.Values())
	checkColumnIndices(a.ColIdxs(), a.Cols())

	alphaAT := Promote[OV, float64](alpha.Values()[0])
	betaAT := Promote[OV, float64](beta.Values()[0])
	dispatchSpmv(exec, a, b, c, axpyEpilogue[float64](alphaAT, betaAT))
}
