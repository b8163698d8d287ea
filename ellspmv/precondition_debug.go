//go:build debug

package ellspmv

import (
	"fmt"

	"github.com/ellkernel/ellspmv/hwy"
)

// checkColumnIndices scans every stored column index of a and panics if
// one falls outside {Invalid} ∪ [0, cols). This is an O(stride*K) scan,
// disabled by default since the accessors perform no bounds checks at
// runtime; build with -tags debug to enable it for tests or when
// diagnosing a suspect ELL matrix.
func checkColumnIndices[IT hwy.SignedInts](colIdxs []IT, cols int) {
	invalid := IT(-1)
	for i, c := range colIdxs {
		if c == invalid {
			continue
		}
		if c < 0 || int(c) >= cols {
			panic(fmt.Sprintf("ellspmv: column index %d at stored slot %d out of range [0,%d)", c, i, cols))
		}
	}
}
