// Package ellmat provides the minimal dense and ELL (ELLPACK) sparse
// matrix containers consumed by package ellspmv. Construction, I/O, and
// conversion from other sparse formats are out of scope here; these types
// exist only to carry raw buffers plus the shape/stride metadata the
// kernels need.
package ellmat

import "github.com/ellkernel/ellspmv/hwy"

// Dense is a row-major dense matrix with an explicit stride, which may
// exceed the column count (e.g. to over-allocate a row for alignment).
type Dense[T hwy.Floats] struct {
	rows, cols int
	stride     int
	values     []T
}

// NewDense allocates a zeroed rows x cols dense matrix with stride == cols.
func NewDense[T hwy.Floats](rows, cols int) *Dense[T] {
	return NewDenseStride[T](rows, cols, cols)
}

// NewDenseStride allocates a zeroed rows x cols dense matrix with the given
// row stride. stride must be >= cols.
func NewDenseStride[T hwy.Floats](rows, cols, stride int) *Dense[T] {
	if stride < cols {
		panic("ellmat: stride smaller than column count")
	}
	return &Dense[T]{
		rows:   rows,
		cols:   cols,
		stride: stride,
		values: make([]T, rows*stride),
	}
}

// WrapDense wraps an existing row-major buffer without copying. len(values)
// must be at least rows*stride.
func WrapDense[T hwy.Floats](rows, cols, stride int, values []T) *Dense[T] {
	if stride < cols {
		panic("ellmat: stride smaller than column count")
	}
	if len(values) < rows*stride {
		panic("ellmat: values buffer too small for rows*stride")
	}
	return &Dense[T]{rows: rows, cols: cols, stride: stride, values: values}
}

// Size returns (rows, cols).
func (d *Dense[T]) Size() (int, int) { return d.rows, d.cols }

// Rows returns the number of rows.
func (d *Dense[T]) Rows() int { return d.rows }

// Cols returns the number of columns.
func (d *Dense[T]) Cols() int { return d.cols }

// Stride returns the row stride in elements.
func (d *Dense[T]) Stride() int { return d.stride }

// At returns the element at (i, j). Bounds-checked: callers in the hot
// kernel path index Values() directly instead.
func (d *Dense[T]) At(i, j int) T {
	if i < 0 || i >= d.rows || j < 0 || j >= d.cols {
		panic("ellmat: Dense.At index out of range")
	}
	return d.values[i*d.stride+j]
}

// Set writes the element at (i, j).
func (d *Dense[T]) Set(i, j int, v T) {
	if i < 0 || i >= d.rows || j < 0 || j >= d.cols {
		panic("ellmat: Dense.Set index out of range")
	}
	d.values[i*d.stride+j] = v
}

// Values returns the raw underlying row-major buffer, length rows*stride.
// Kernels index into this directly rather than going through At/Set.
func (d *Dense[T]) Values() []T { return d.values }
