package ellmat

import "github.com/ellkernel/ellspmv/hwy"

// Invalid returns the column-index sentinel marking an ELL padding slot.
func Invalid[IT hwy.SignedInts]() IT { return IT(-1) }

// ELL is a sparse M x N matrix in ELLPACK format: every row is padded to a
// fixed width K (NumStoredElementsPerRow), stored column-major across rows
// (the i-th non-zero of row r lives at offset r + i*Stride) so a
// row-blocked traversal reads contiguous memory. A column index equal to
// Invalid[IT]() marks a padding slot whose paired value must not
// contribute to the result.
type ELL[MV hwy.Floats, IT hwy.SignedInts] struct {
	rows, cols int
	k          int
	stride     int
	values     []MV
	colIdxs    []IT
}

// NewELL allocates an empty (all-padding) ELL matrix. stride must be >= rows.
func NewELL[MV hwy.Floats, IT hwy.SignedInts](rows, cols, k, stride int) *ELL[MV, IT] {
	if stride < rows {
		panic("ellmat: ELL stride smaller than row count")
	}
	n := stride * k
	colIdxs := make([]IT, n)
	invalid := Invalid[IT]()
	for i := range colIdxs {
		colIdxs[i] = invalid
	}
	return &ELL[MV, IT]{
		rows:    rows,
		cols:    cols,
		k:       k,
		stride:  stride,
		values:  make([]MV, n),
		colIdxs: colIdxs,
	}
}

// WrapELL wraps existing raw buffers without copying.
func WrapELL[MV hwy.Floats, IT hwy.SignedInts](rows, cols, k, stride int, values []MV, colIdxs []IT) *ELL[MV, IT] {
	if stride < rows {
		panic("ellmat: ELL stride smaller than row count")
	}
	n := stride * k
	if len(values) < n || len(colIdxs) < n {
		panic("ellmat: ELL buffers too small for stride*K")
	}
	return &ELL[MV, IT]{rows: rows, cols: cols, k: k, stride: stride, values: values, colIdxs: colIdxs}
}

// Rows returns the logical row count M.
func (e *ELL[MV, IT]) Rows() int { return e.rows }

// Cols returns the logical column count N.
func (e *ELL[MV, IT]) Cols() int { return e.cols }

// K returns the maximum number of stored non-zeros per row.
func (e *ELL[MV, IT]) K() int { return e.k }

// Stride returns the row-panel stride (>= Rows()).
func (e *ELL[MV, IT]) Stride() int { return e.stride }

// Values returns the raw value buffer, length Stride()*K().
func (e *ELL[MV, IT]) Values() []MV { return e.values }

// ColIdxs returns the raw column-index buffer, length Stride()*K().
func (e *ELL[MV, IT]) ColIdxs() []IT { return e.colIdxs }

// ColAt returns col_idxs[r + i*stride], the column index of the i-th
// stored non-zero of row r.
func (e *ELL[MV, IT]) ColAt(r, i int) IT {
	return e.colIdxs[r+i*e.stride]
}

// Set stores a non-zero at stored-slot i of row r. col must satisfy
// col == Invalid[IT]() or 0 <= col < Cols().
func (e *ELL[MV, IT]) Set(r, i int, col IT, val MV) {
	if r < 0 || r >= e.rows || i < 0 || i >= e.k {
		panic("ellmat: ELL.Set index out of range")
	}
	invalid := Invalid[IT]()
	if col != invalid && (col < 0 || int(col) >= e.cols) {
		panic("ellmat: ELL.Set column index out of range")
	}
	off := r + i*e.stride
	e.colIdxs[off] = col
	e.values[off] = val
}
