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

//go:build !amd64

package hwy

func init() {
	// Non-amd64 architectures fall back to scalar mode. The ELL SpMV
	// hardware-SIMD fast path is amd64/AVX-512-only by design; every other
	// architecture runs the portable scalar kernels exclusively.
	currentLevel = DispatchScalar
	currentWidth = 16
}
