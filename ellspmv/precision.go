package ellspmv

// This file implements the mixed-precision arithmetic policy: AT is fixed
// to float64 (see scalar.go's top-of-file note), and Promote/Demote convert
// stored or output values to and from it.

import "github.com/ellkernel/ellspmv/hwy"

// Promote converts a value read from A or B up to the working precision
// AT. Go's float32->float64 widening conversion is exact, matching the
// "promote every read" rule; narrower-to-wider int/float conversions never
// round.
func Promote[S, T hwy.Floats](v S) T {
	return T(v)
}

// Demote converts a computed value down to the output precision OV before
// it is written to C. Go's float64->float32 conversion rounds to nearest,
// ties to even, matching the required rounding mode.
func Demote[S, T hwy.Floats](v S) T {
	return T(v)
}
