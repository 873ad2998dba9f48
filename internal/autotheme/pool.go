package autotheme

import "math/bits"

// indexSet is a set of palette indices still available to a stage. It is a
// value type: removing an index returns a new set and leaves the receiver
// untouched, so each stage's input pool is explicit.
type indexSet uint32

// maxPaletteSize is the largest palette an indexSet can describe.
const maxPaletteSize = 32

// firstN returns the set {0, ..., n-1}.
func firstN(n int) indexSet {
	if n <= 0 {
		return 0
	}
	if n >= maxPaletteSize {
		return ^indexSet(0)
	}
	return indexSet(1)<<n - 1
}

func (s indexSet) has(i int) bool {
	return i >= 0 && i < maxPaletteSize && s&(1<<i) != 0
}

func (s indexSet) without(i int) indexSet {
	if i < 0 || i >= maxPaletteSize {
		return s
	}
	return s &^ (1 << i)
}

func (s indexSet) len() int {
	return bits.OnesCount32(uint32(s))
}

// indices lists members in ascending order.
func (s indexSet) indices() []int {
	out := make([]int, 0, s.len())
	for v := uint32(s); v != 0; v &= v - 1 {
		out = append(out, bits.TrailingZeros32(v))
	}
	return out
}
