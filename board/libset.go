package board

import "math/bits"

// libset is a fixed-size bitset over all points, used to hold a block's
// liberties. It lives inline in Position (an array of T of these) so
// cloning a Position is a bulk array copy with no pointer chasing.
type libset struct {
	words [words]uint64
}

func (s *libset) add(p Point) bool {
	w, b := uint(p)/64, uint(p)%64
	mask := uint64(1) << b
	had := s.words[w]&mask != 0
	s.words[w] |= mask
	return !had
}

func (s *libset) remove(p Point) bool {
	w, b := uint(p)/64, uint(p)%64
	mask := uint64(1) << b
	had := s.words[w]&mask != 0
	s.words[w] &^= mask
	return had
}

func (s *libset) has(p Point) bool {
	w, b := uint(p)/64, uint(p)%64
	return s.words[w]&(uint64(1)<<b) != 0
}

func (s *libset) clear() {
	for i := range s.words {
		s.words[i] = 0
	}
}

func (s *libset) count() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// mergeFrom adds every liberty of other into s.
func (s *libset) mergeFrom(other *libset) {
	for i := range s.words {
		s.words[i] |= other.words[i]
	}
}

// first returns an arbitrary member, used when exactly one liberty is known
// to exist (atari) and its identity is needed.
func (s *libset) first() (Point, bool) {
	for w, word := range s.words {
		if word != 0 {
			return Point(w*64 + bits.TrailingZeros64(word)), true
		}
	}
	return 0, false
}

// points appends every liberty to dst and returns the extended slice.
func (s *libset) points(dst []Point) []Point {
	for w, word := range s.words {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			dst = append(dst, Point(w*64+b))
			word &^= 1 << uint(b)
		}
	}
	return dst
}
