package ellspmv

import (
	"math"
	"testing"

	"github.com/ellkernel/ellspmv/ellmat"
)

func identityELL(n int) *ellmat.ELL[float64, int32] {
	a := ellmat.NewELL[float64, int32](n, n, 1, n)
	for i := 0; i < n; i++ {
		a.Set(i, 0, int32(i), 1)
	}
	return a
}

func denseFromRows(rows [][]float64) *ellmat.Dense[float64] {
	r := len(rows)
	c := 0
	if r > 0 {
		c = len(rows[0])
	}
	d := ellmat.NewDense[float64](r, c)
	for i, row := range rows {
		for j, v := range row {
			d.Set(i, j, v)
		}
	}
	return d
}

func expectDense(t *testing.T, got, want *ellmat.Dense[float64]) {
	t.Helper()
	gr, gc := got.Size()
	wr, wc := want.Size()
	if gr != wr || gc != wc {
		t.Fatalf("shape mismatch: got %dx%d, want %dx%d", gr, gc, wr, wc)
	}
	for i := 0; i < gr; i++ {
		for j := 0; j < gc; j++ {
			if math.Abs(got.At(i, j)-want.At(i, j)) > 1e-9 {
				t.Errorf("C[%d][%d] = %v, want %v", i, j, got.At(i, j), want.At(i, j))
			}
		}
	}
}

// E1: identity times dense reproduces the dense matrix.
func TestScenarioE1Identity(t *testing.T) {
	a := identityELL(4)
	b := denseFromRows([][]float64{{1, 2}, {3, 4}, {5, 6}, {7, 8}})
	c := ellmat.NewDense[float64](4, 2)
	exec := NewExecutor(1)
	defer exec.Close()

	Spmv(exec, a, b, c)
	expectDense(t, c, b)
}

// E2: padding slot must be ignored regardless of its stored value.
func TestScenarioE2Padding(t *testing.T) {
	a := ellmat.NewELL[float64, int32](3, 3, 2, 3)
	a.Set(0, 0, 0, 10)
	a.Set(0, 1, 1, 40)
	a.Set(1, 0, 1, 20)
	a.Set(1, 1, ellmat.Invalid[int32](), 0)
	a.Set(2, 0, 2, 30)
	a.Set(2, 1, 0, 50)

	b := denseFromRows([][]float64{{1}, {2}, {3}})
	c := ellmat.NewDense[float64](3, 1)
	exec := NewExecutor(1)
	defer exec.Close()

	Spmv(exec, a, b, c)
	expectDense(t, c, denseFromRows([][]float64{{90}, {40}, {140}}))
}

// E3: 8x8 diagonal on a SIMD-eligible shape (R=1).
func TestScenarioE3Diagonal8(t *testing.T) {
	a := ellmat.NewELL[float64, int32](8, 8, 1, 8)
	for i := 0; i < 8; i++ {
		a.Set(i, 0, int32(i), float64(i+1))
	}
	b := ellmat.NewDense[float64](8, 1)
	for i := 0; i < 8; i++ {
		b.Set(i, 0, float64(i+1))
	}
	c := ellmat.NewDense[float64](8, 1)
	exec := NewExecutor(1)
	defer exec.Close()

	Spmv(exec, a, b, c)
	want := denseFromRows([][]float64{{1}, {4}, {9}, {16}, {25}, {36}, {49}, {64}})
	expectDense(t, c, want)
}

// E4: 10x10 diagonal exercises the SIMD block plus the scalar tail, and
// must agree with the dedicated R=1 kernel.
func TestScenarioE4DiagonalWithTail(t *testing.T) {
	a := ellmat.NewELL[float64, int32](10, 10, 1, 10)
	for i := 0; i < 10; i++ {
		a.Set(i, 0, int32(i), float64(i+1))
	}
	b := ellmat.NewDense[float64](10, 1)
	for i := 0; i < 10; i++ {
		b.Set(i, 0, float64(i+1))
	}

	c := ellmat.NewDense[float64](10, 1)
	exec := NewExecutor(1)
	defer exec.Close()
	Spmv(exec, a, b, c)

	cDirect := ellmat.NewDense[float64](10, 1)
	spmvSmallRHS1(a, b, cDirect, identityEpilogue[float64]())

	expectDense(t, c, cDirect)
	want := ellmat.NewDense[float64](10, 1)
	for i := 0; i < 10; i++ {
		want.Set(i, 0, float64((i+1)*(i+1)))
	}
	expectDense(t, c, want)
}

// E5: R=7 exercises the blocked multi-RHS dispatch (rounded=4, tail [4,7)).
func TestScenarioE5WideRHS(t *testing.T) {
	a := identityELL(4)
	rows := make([][]float64, 4)
	for i := range rows {
		row := make([]float64, 7)
		for j := range row {
			row[j] = float64(i*7 + j + 1)
		}
		rows[i] = row
	}
	b := denseFromRows(rows)
	c := ellmat.NewDense[float64](4, 7)
	exec := NewExecutor(1)
	defer exec.Close()

	Spmv(exec, a, b, c)
	expectDense(t, c, b)
}

// E6: advanced SpMV applies alpha*partial + beta*prevC.
func TestScenarioE6Advanced(t *testing.T) {
	a := identityELL(4)
	b := denseFromRows([][]float64{{1}, {1}, {1}, {1}})
	c := denseFromRows([][]float64{{1}, {1}, {1}, {1}})
	alpha := denseFromRows([][]float64{{2}})
	beta := denseFromRows([][]float64{{3}})
	exec := NewExecutor(1)
	defer exec.Close()

	AdvancedSpmv(exec, alpha, a, b, beta, c)
	want := denseFromRows([][]float64{{5}, {5}, {5}, {5}})
	expectDense(t, c, want)
}
