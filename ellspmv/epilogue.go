package ellspmv

import "github.com/ellkernel/ellspmv/hwy"

// epilogue is the output transform applied at every result cell: identity
// for plain Spmv, alpha*v+beta*c_prev for AdvancedSpmv. Passed by value into
// the kernels (not as an interface) so the compiler can inline the call at
// every output cell instead of routing through a dynamic dispatch.
type epilogue[AT hwy.Floats] struct {
	// advanced is false for plain SpMV (out(r,j,v) = v).
	advanced bool
	alpha    AT
	beta     AT
}

func identityEpilogue[AT hwy.Floats]() epilogue[AT] {
	return epilogue[AT]{advanced: false}
}

func axpyEpilogue[AT hwy.Floats](alpha, beta AT) epilogue[AT] {
	return epilogue[AT]{advanced: true, alpha: alpha, beta: beta}
}

// apply computes out(r, j, partial) given the prior value of C[r,j]. The
// prior value must be read by the caller before this call writes to C[r,j]:
// each cell is read-then-written exactly once, by exactly one thread.
func (e epilogue[AT]) apply(partial, prevC AT) AT {
	if !e.advanced {
		return partial
	}
	return e.alpha*partial + e.beta*prevC
}
