// Package bufpool recycles float64/int scratch slices for tatamigo's
// temporary buffers: the COO-to-compressed conversion and the isometric
// operation's vector gather. It is grounded on
// sparse.getFloats/getInts/putFloats/putInts from the teacher library: a pair
// of sync.Pool instances holding slices sized to a common small default, with
// oversized slices simply left for the garbage collector rather than pooled.
package bufpool

import "sync"

const (
	pooledFloatSize = 256
	pooledIntSize   = 256
)

var (
	floatPool = sync.Pool{
		New: func() interface{} {
			return make([]float64, pooledFloatSize)
		},
	}
	intPool = sync.Pool{
		New: func() interface{} {
			return make([]int, pooledIntSize)
		},
	}
)

// Floats returns a []float64 of length l, reusing a pooled allocation when
// possible. If clear is true the returned slice is zeroed.
func Floats(l int, clear bool) []float64 {
	w := floatPool.Get().([]float64)
	return useFloats(w, l, clear)
}

// PutFloats returns w to the pool. w must not be referenced again by the
// caller, nor have had any of its backing array aliased elsewhere.
func PutFloats(w []float64) {
	if cap(w) >= pooledFloatSize {
		floatPool.Put(w[:cap(w)]) //nolint:staticcheck // re-pool at full capacity
	}
}

// Ints returns a []int of length l, reusing a pooled allocation when possible.
// If clear is true the returned slice is zeroed.
func Ints(l int, clear bool) []int {
	w := intPool.Get().([]int)
	return useInts(w, l, clear)
}

// PutInts returns w to the pool, subject to the same aliasing rule as PutFloats.
func PutInts(w []int) {
	if cap(w) >= pooledIntSize {
		intPool.Put(w[:cap(w)])
	}
}

func useFloats(w []float64, l int, clear bool) []float64 {
	if cap(w) < l {
		w = make([]float64, l)
		if clear {
			return w
		}
	}
	w = w[:l]
	if clear {
		for i := range w {
			w[i] = 0
		}
	}
	return w
}

func useInts(w []int, l int, clear bool) []int {
	if cap(w) < l {
		w = make([]int, l)
		if clear {
			return w
		}
	}
	w = w[:l]
	if clear {
		for i := range w {
			w[i] = 0
		}
	}
	return w
}
