// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build amd64 && goexperiment.simd

package hwy

import (
	"simd/archsimd"
)

// This file provides the AVX-512 gather used by the single-RHS ELL SpMV
// kernel: 8 float64 values gathered by 32-bit column indices. AVX-512 has
// hardware gather support (VGATHERDPD) but archsimd does not expose it
// directly, so we fall back to a store/scalar-loop/load sequence: the index
// vector is spilled to an array, the gather is done lane-by-lane with a
// bounds check, and the result is reloaded into a vector register.
//
// indices carries 16 int32 lanes (one register's worth of column indices);
// only the low 8 are consulted, matching the width of a Float64x8 result.

// GatherIndexMasked_AVX512_F64x8_I32 gathers 8 float64 values from src at
// the column indices in the low 8 lanes of indices, but only for lanes whose
// corresponding entry in mask (low 8 lanes) is nonzero. Masked-off lanes and
// out-of-range indices both read as zero without touching src: this is what
// lets ELL padding slots (column index INVALID) be masked out before the
// gather instead of being bounds-checked after it.
func GatherIndexMasked_AVX512_F64x8_I32(src []float64, indices archsimd.Int32x16, mask archsimd.Int32x16) archsimd.Float64x8 {
	var idxData [16]int32
	indices.StoreSlice(idxData[:])

	var maskData [16]int32
	mask.StoreSlice(maskData[:])

	var result [8]float64
	for i := 0; i < 8; i++ {
		if maskData[i] != 0 {
			idx := int(idxData[i])
			if idx >= 0 && idx < len(src) {
				result[i] = src[idx]
			}
		}
	}
	return archsimd.LoadFloat64x8Slice(result[:])
}
