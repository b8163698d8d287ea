// Package hwy provides portable SIMD vector primitives with runtime CPU
// dispatch, scaled down from the general-purpose Highway-style toolkit to the
// subset exercised by the ellspmv sparse kernels: loads/stores, fused
// multiply-add, inequality comparison, and masked gather.
//
// It follows the Highway C++ library's design philosophy: write once,
// run optimally everywhere. The generic Vec/Mask operations are portable
// scalar Go whose lane count follows the detected dispatch level; the
// AVX-512 masked gather (GatherIndexMasked_AVX512_F64x8_I32, amd64 builds
// with GOEXPERIMENT=simd) is a separate function that callers select
// explicitly.
//
// Basic usage:
//
//	import "github.com/ellkernel/ellspmv/hwy"
//
//	a := hwy.Load(data1)
//	b := hwy.Load(data2)
//	mask := hwy.NotEqual(a, b)
//	hwy.Store(hwy.FMA(a, b, hwy.Zero[float64]()), output)
package hwy

// Floats is a constraint for the floating-point types the kernels operate on.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types, used for ELL column indices.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored in SIMD lanes.
type Lanes interface {
	Floats | Integers
}

// Vec is a portable vector handle that wraps SIMD operations.
// In base (scalar) mode, it wraps a slice. In SIMD modes, it may wrap
// architecture-specific vector types.
//
// Vec instances should not be created directly; use Load, Set, or Zero instead.
type Vec[T Lanes] struct {
	// data holds the vector elements in base mode.
	data []T
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return len(v.data)
}

// Data returns the underlying slice representation of the vector.
// This is primarily for testing and should not be used in performance-critical code.
func (v Vec[T]) Data() []T {
	return v.data
}

// Store writes the vector's data to a slice.
// This is the method form of the hwy.Store function.
func (v Vec[T]) Store(dst []T) {
	n := min(len(dst), len(v.data))
	copy(dst[:n], v.data[:n])
}

// Mask represents the result of a comparison operation.
// It can be used with GatherIndexMasked to skip masked-off lanes entirely.
//
// Mask instances should not be created directly; use a comparison operation
// like NotEqual instead.
type Mask[T Lanes] struct {
	// bits stores which lanes are active (true).
	bits []bool
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int {
	return len(m.bits)
}

// AllTrue returns true if all lanes in the mask are active.
func (m Mask[T]) AllTrue() bool {
	for _, bit := range m.bits {
		if !bit {
			return false
		}
	}
	return true
}

// AnyTrue returns true if at least one lane in the mask is active.
func (m Mask[T]) AnyTrue() bool {
	for _, bit := range m.bits {
		if bit {
			return true
		}
	}
	return false
}

// CountTrue returns the number of active lanes in the mask.
func (m Mask[T]) CountTrue() int {
	count := 0
	for _, bit := range m.bits {
		if bit {
			count++
		}
	}
	return count
}

// GetBit returns whether lane i is active.
func (m Mask[T]) GetBit(i int) bool {
	if i < 0 || i >= len(m.bits) {
		return false
	}
	return m.bits[i]
}
