package ellspmv

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ellkernel/ellspmv/ellmat"
)

// TestCorrectnessVsReference checks property 1: random ELL/B agree with the
// naive triple-loop reference, for every RHS width the dispatcher branches
// on (R=1 SIMD-eligible, R in [2,4] small-RHS, R>4 blocked).
func TestCorrectnessVsReference(t *testing.T) {
	for _, r := range []int{1, 2, 3, 4, 5, 9} {
		r := r
		t.Run(ridName(r), func(t *testing.T) {
			rng := rand.New(rand.NewSource(int64(1000 + r)))
			a := randomELL(rng, 37, 29, 4, 40)
			b := randomDense(rng, 29, r)
			want := naiveReference(a, b)

			c := ellmat.NewDense[float64](37, r)
			exec := NewExecutor(2)
			defer exec.Close()
			Spmv(exec, a, b, c)

			if d := maxAbsDiff(c, want); d > 1e-9 {
				t.Errorf("max abs diff = %v, want <= 1e-9", d)
			}
		})
	}
}

func ridName(r int) string {
	switch r {
	case 1:
		return "R1"
	case 2:
		return "R2"
	case 3:
		return "R3"
	case 4:
		return "R4"
	default:
		return "Rwide"
	}
}

// TestPaddingIndependence checks property 2: the value paired with an
// Invalid column index must never influence the result.
func TestPaddingIndependence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	a := randomPaddedELL(rng, 12, 10, 4, 12, 2)
	b := randomDense(rng, 10, 3)

	c1 := ellmat.NewDense[float64](12, 3)
	exec := NewExecutor(1)
	defer exec.Close()
	Spmv(exec, a, b, c1)

	// Poison every padding slot's paired value with an arbitrary scalar.
	invalid := ellmat.Invalid[int32]()
	colIdxs := a.ColIdxs()
	values := a.Values()
	for i, col := range colIdxs {
		if col == invalid {
			values[i] = math.Inf(1)
		}
	}

	c2 := ellmat.NewDense[float64](12, 3)
	Spmv(exec, a, b, c2)

	if d := maxAbsDiff(c1, c2); d > 0 {
		t.Errorf("poisoning padding slots changed the result, max abs diff = %v", d)
	}
}

// TestLinearityInB checks property 3.
func TestLinearityInB(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := randomELL(rng, 20, 16, 3, 24)
	b1 := randomDense(rng, 16, 2)
	b2 := randomDense(rng, 16, 2)
	lambda, mu := 2.5, -1.5

	combined := ellmat.NewDense[float64](16, 2)
	for i := range combined.Values() {
		combined.Values()[i] = lambda*b1.Values()[i] + mu*b2.Values()[i]
	}

	exec := NewExecutor(1)
	defer exec.Close()

	cCombined := ellmat.NewDense[float64](20, 2)
	Spmv(exec, a, combined, cCombined)

	c1 := ellmat.NewDense[float64](20, 2)
	Spmv(exec, a, b1, c1)
	c2 := ellmat.NewDense[float64](20, 2)
	Spmv(exec, a, b2, c2)

	want := ellmat.NewDense[float64](20, 2)
	for i := range want.Values() {
		want.Values()[i] = lambda*c1.Values()[i] + mu*c2.Values()[i]
	}

	if d := maxAbsDiff(cCombined, want); d > 1e-8 {
		t.Errorf("max abs diff = %v, want <= 1e-8", d)
	}
}

// TestIdentityExact checks property 4: with A the identity and AT matching
// the output precision, C must equal B exactly (no rounding).
func TestIdentityExact(t *testing.T) {
	a := identityELL(6)
	b := ellmat.NewDense[float64](6, 2)
	for i := range b.Values() {
		b.Values()[i] = float64(i) + 0.25
	}
	c := ellmat.NewDense[float64](6, 2)
	exec := NewExecutor(1)
	defer exec.Close()
	Spmv(exec, a, b, c)

	for i := range c.Values() {
		if c.Values()[i] != b.Values()[i] {
			t.Fatalf("C[%d] = %v, want exactly %v", i, c.Values()[i], b.Values()[i])
		}
	}
}

// TestZeroMatrix checks property 5 for both plain and advanced SpMV.
func TestZeroMatrix(t *testing.T) {
	a := ellmat.NewELL[float64, int32](5, 5, 2, 5) // all slots left as Invalid
	b := ellmat.NewDense[float64](5, 3)
	for i := range b.Values() {
		b.Values()[i] = float64(i + 1)
	}

	exec := NewExecutor(1)
	defer exec.Close()

	c := ellmat.NewDense[float64](5, 3)
	Spmv(exec, a, b, c)
	for _, v := range c.Values() {
		if v != 0 {
			t.Fatalf("plain SpMV with zero matrix produced %v, want 0", v)
		}
	}

	cPrev := ellmat.NewDense[float64](5, 3)
	for i := range cPrev.Values() {
		cPrev.Values()[i] = float64(i + 1)
	}
	alpha := denseFromRows([][]float64{{10}})
	beta := denseFromRows([][]float64{{4}})
	want := ellmat.NewDense[float64](5, 3)
	for i := range want.Values() {
		want.Values()[i] = 4 * cPrev.Values()[i]
	}
	AdvancedSpmv(exec, alpha, a, b, beta, cPrev)
	if d := maxAbsDiff(cPrev, want); d > 0 {
		t.Errorf("advanced SpMV with zero matrix: max abs diff = %v, want 0", d)
	}
}

// TestRHSDispatchEquivalence checks property 6: spmv_small_rhs<R> for
// R in [1,4] must agree with the general blocked kernel restricted to the
// first R columns of a width-5 RHS.
func TestRHSDispatchEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	a := randomELL(rng, 15, 11, 3, 20)
	bWide := randomDense(rng, 11, 5)

	cBlocked := ellmat.NewDense[float64](15, 5)
	spmvBlocked(a, bWide, cBlocked, identityEpilogue[float64]())

	for r := 1; r <= 4; r++ {
		bNarrow := ellmat.NewDense[float64](11, r)
		for row := 0; row < 11; row++ {
			for j := 0; j < r; j++ {
				bNarrow.Set(row, j, bWide.At(row, j))
			}
		}
		cNarrow := ellmat.NewDense[float64](15, r)
		spmvSmallRHSSequential(a, bNarrow, cNarrow, r, identityEpilogue[float64]())

		for row := 0; row < 15; row++ {
			for j := 0; j < r; j++ {
				got := cNarrow.At(row, j)
				want := cBlocked.At(row, j)
				if math.Abs(got-want) > 1e-9 {
					t.Errorf("R=%d [%d][%d] = %v, want %v", r, row, j, got, want)
				}
			}
		}
	}
}

// TestThreadCountInvariance checks property 8: results must not depend on
// worker count.
func TestThreadCountInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(123))
	a := randomELL(rng, 64, 48, 4, 64)
	b := randomDense(rng, 48, 3)

	var baseline *ellmat.Dense[float64]
	for _, workers := range []int{1, 2, 4, 8} {
		c := ellmat.NewDense[float64](64, 3)
		exec := NewExecutor(workers)
		Spmv(exec, a, b, c)
		exec.Close()

		if baseline == nil {
			baseline = c
			continue
		}
		if d := maxAbsDiff(c, baseline); d > 0 {
			t.Errorf("workers=%d: max abs diff vs 1-worker baseline = %v, want 0", workers, d)
		}
	}
}
