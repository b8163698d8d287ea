package ellspmv

import (
	"math"
	"math/rand"

	"github.com/ellkernel/ellspmv/ellmat"
)

// randomELL builds a rows x cols ELL matrix with exactly k non-zeros per
// row (no padding), distinct random columns, values in [-1, 1).
func randomELL(rng *rand.Rand, rows, cols, k, stride int) *ellmat.ELL[float64, int32] {
	a := ellmat.NewELL[float64, int32](rows, cols, k, stride)
	for r := 0; r < rows; r++ {
		used := map[int]bool{}
		for i := 0; i < k; i++ {
			col := rng.Intn(cols)
			for used[col] {
				col = rng.Intn(cols)
			}
			used[col] = true
			a.Set(r, i, int32(col), rng.Float64()*2-1)
		}
	}
	return a
}

// randomPaddedELL is like randomELL but leaves the last `pad` stored slots
// of every row as Invalid padding, so K > actual non-zero count.
func randomPaddedELL(rng *rand.Rand, rows, cols, k, stride, pad int) *ellmat.ELL[float64, int32] {
	a := ellmat.NewELL[float64, int32](rows, cols, k, stride)
	for r := 0; r < rows; r++ {
		used := map[int]bool{}
		for i := 0; i < k-pad; i++ {
			col := rng.Intn(cols)
			for used[col] {
				col = rng.Intn(cols)
			}
			used[col] = true
			a.Set(r, i, int32(col), rng.Float64()*2-1)
		}
	}
	return a
}

func randomDense(rng *rand.Rand, rows, cols int) *ellmat.Dense[float64] {
	d := ellmat.NewDense[float64](rows, cols)
	for i := 0; i < rows*cols; i++ {
		d.Values()[i] = rng.Float64()*2 - 1
	}
	return d
}

// naiveReference computes C := A*B by densifying A and using the textbook
// triple loop, independent of any kernel under test.
func naiveReference(a *ellmat.ELL[float64, int32], b *ellmat.Dense[float64]) *ellmat.Dense[float64] {
	m, n := a.Rows(), a.Cols()
	_, r := b.Size()
	c := ellmat.NewDense[float64](m, r)
	k := a.K()
	invalid := ellmat.Invalid[int32]()
	for row := 0; row < m; row++ {
		for i := 0; i < k; i++ {
			col := a.ColAt(row, i)
			if col == invalid {
				continue
			}
			val := a.Values()[row+i*a.Stride()]
			for j := 0; j < r; j++ {
				c.Set(row, j, c.At(row, j)+val*b.At(int(col), j))
			}
		}
	}
	_ = n
	return c
}

func maxAbsDiff(a, b *ellmat.Dense[float64]) float64 {
	var worst float64
	av, bv := a.Values(), b.Values()
	for i := range av {
		d := math.Abs(av[i] - bv[i])
		if d > worst {
			worst = d
		}
	}
	return worst
}
