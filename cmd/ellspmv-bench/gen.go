package main

import (
	"math/rand"

	"github.com/ellkernel/ellspmv/ellmat"
)

func randomMatrix(rng *rand.Rand, rows, cols, k int) *ellmat.ELL[float64, int32] {
	a := ellmat.NewELL[float64, int32](rows, cols, k, rows)
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

func randomRHS(rng *rand.Rand, rows, cols int) *ellmat.Dense[float64] {
	d := ellmat.NewDense[float64](rows, cols)
	for i := range d.Values() {
		d.Values()[i] = rng.Float64()*2 - 1
	}
	return d
}

func naiveSpmv(a *ellmat.ELL[float64, int32], b *ellmat.Dense[float64]) *ellmat.Dense[float64] {
	m := a.Rows()
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
	return c
}

func maxAbsDiff(a, b *ellmat.Dense[float64]) float64 {
	var worst float64
	av, bv := a.Values(), b.Values()
	for i := range av {
		d := av[i] - bv[i]
		if d < 0 {
			d = -d
		}
		if d > worst {
			worst = d
		}
	}
	return worst
}
