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

//go:build amd64 && !goexperiment.simd

package hwy

import "golang.org/x/sys/cpu"

// Fallback for when GOEXPERIMENT=simd is not enabled: archsimd is unavailable,
// so the AVX-512 masked-gather kernel can't be built and every matrix runs
// through the portable scalar-fallback kernels regardless of what the CPU
// actually supports. What we can still do without archsimd is widen the
// portable fallback's lane count on CPUs that report AVX2+FMA, since
// gather_portable.go only needs a lane count and FMA, not actual vector
// instructions. Build with GOEXPERIMENT=simd for the AVX-512 fast path.

func init() {
	if NoSimdEnv() {
		setScalarMode()
		return
	}
	detectCPUFeatures()
}

func detectCPUFeatures() {
	if cpu.X86.HasAVX2 && cpu.X86.HasFMA {
		currentLevel = DispatchAVX2
		currentWidth = 32
		return
	}
	setScalarMode()
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = 16
}
