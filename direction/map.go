package direction

import "math/bits"

const wordBits = 64

// Map is the per-element feasibility bitmap (cmap): bit i set means
// direction i is currently feasible. Bits only ever go from 1 to 0 within
// a pruning scope (spec.md S3); a Delta captures exactly which bits were
// cleared so a caller can Restore them later without recomputing
// anything. The zero Map is not valid; use NewMap.
type Map struct {
	words []uint64
	size  int
}

// NewMap returns a Map of the given size with every bit set.
func NewMap(size int) Map {
	m := Map{words: make([]uint64, (size+wordBits-1)/wordBits), size: size}
	for i := range m.words {
		m.words[i] = ^uint64(0)
	}
	m.maskTail()
	return m
}

// maskTail zeroes any bits beyond size in the last word.
func (m *Map) maskTail() {
	if m.size == 0 {
		return
	}
	rem := m.size % wordBits
	if rem == 0 {
		return
	}
	last := len(m.words) - 1
	m.words[last] &= (uint64(1) << uint(rem)) - 1
}

// Len returns the number of directions this map covers.
func (m Map) Len() int { return m.size }

// Test reports whether direction i is feasible.
func (m Map) Test(i int) bool {
	return m.words[i/wordBits]&(uint64(1)<<uint(i%wordBits)) != 0
}

// Count returns the number of feasible (set) directions.
func (m Map) Count() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Empty reports whether no direction is feasible -- the feasibility
// predicate of spec.md S4.1.
func (m Map) Empty() bool { return m.Count() == 0 }

// Indices returns the set bit indices in ascending order.
func (m Map) Indices() []int {
	out := make([]int, 0, m.Count())
	for w, word := range m.words {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			out = append(out, w*wordBits+b)
			word &= word - 1
		}
	}
	return out
}

// Clone returns an independent copy of m.
func (m Map) Clone() Map {
	cp := Map{words: make([]uint64, len(m.words)), size: m.size}
	copy(cp.words, m.words)
	return cp
}

// Clear clears bit i (1 -> 0). Clearing an already-clear bit is a no-op.
func (m *Map) Clear(i int) {
	m.words[i/wordBits] &^= uint64(1) << uint(i%wordBits)
}

// Delta is the set of bits a pruning operation cleared: exactly what
// Restore needs to undo it, per spec.md S4.2's suppose/restore protocol.
type Delta struct {
	words []uint64
	size  int
}

// Diff returns the Delta of bits set in before but clear in m (i.e. the
// bits m cleared relative to before). before and m must share size.
func (m Map) Diff(before Map) Delta {
	d := Delta{words: make([]uint64, len(m.words)), size: m.size}
	for i := range m.words {
		d.words[i] = before.words[i] &^ m.words[i]
	}
	return d
}

// Empty reports whether the delta cleared no bits.
func (d Delta) Empty() bool {
	for _, w := range d.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Restore ORs d's bits back into m, undoing exactly the clears that
// produced d. This is the only way a bit returns from 0 to 1.
func (m *Map) Restore(d Delta) {
	for i := range m.words {
		m.words[i] |= d.words[i]
	}
}
