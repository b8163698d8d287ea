//go:build !debug

package ellspmv

import "github.com/ellkernel/ellspmv/hwy"

// checkColumnIndices is a no-op in release builds: see
// precondition_debug.go. Column-index validity is a precondition the
// caller is responsible for; the kernel does not re-verify it on the hot
// path.
func checkColumnIndices[IT hwy.SignedInts](colIdxs []IT, cols int) {
	_ = colIdxs
	_ = cols
}
