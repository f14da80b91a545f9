package board

import "github.com/climengine/weiqi/errs"

// Position is the full mutable game state: stones, blocks (tracked via a
// union-find over points, keyed by the block's smallest member point),
// liberties, ko, move history, and captures. It is a plain aggregate of
// fixed-size arrays so that cloning is a bulk value copy — Clone, Playout
// and ladder reading all rely on this being cheap.
type Position struct {
	cells [T]Color
	env4  [T]uint8
	env4d [T]uint8

	parent     [T]Point  // union-find parent; parent[p]==p at a block root
	liberties  [T]libset // meaningful only at block roots
	stones     [T]int    // block size; meaningful only at block roots
	blockColor [T]Color  // block colour; meaningful only at block roots

	ko     Point
	n      int
	last   Point
	last2  Point
	toMove Color
	komi   float64
	caps   [4]int // indexed by Color; only Black/White entries are used

	// Scratch space reused across calls to avoid per-move/per-playout
	// allocation. Always left zeroed/false between calls.
	removeBuf      [T]Point
	scratchVisited [T]bool
	scratchRegion  [T]bool
}

// EmptyPosition returns a fresh board: border filled with Border, every
// on-board point Empty, Black to move, move count zero.
func EmptyPosition(komi float64) *Position {
	pos := &Position{
		ko:     PASS,
		last:   PASS,
		last2:  PASS,
		toMove: Black,
		komi:   komi,
	}
	for i := 0; i < T; i++ {
		p := Point(i)
		pos.parent[p] = p
		if IsOnBoard(p) {
			pos.cells[p] = Empty
		} else {
			pos.cells[p] = Border
		}
	}
	for _, p := range allPoints {
		pos.refreshEnv(p)
	}
	return pos
}

// Clone returns an independent copy. Cheap: Position holds no pointers or
// slices with shared backing arrays.
func (pos *Position) Clone() *Position {
	c := *pos
	return &c
}

// ToMove returns the colour to play next.
func (pos *Position) ToMove() Color { return pos.toMove }

// MoveCount returns the number of moves (including passes) played from the
// empty board.
func (pos *Position) MoveCount() int { return pos.n }

// Last and Last2 return the most recent two move points (PASS if a pass or
// if the game hasn't started).
func (pos *Position) Last() Point  { return pos.last }
func (pos *Position) Last2() Point { return pos.last2 }

// Ko returns the current ko point, or PASS if there is none.
func (pos *Position) Ko() Point { return pos.ko }

// Komi returns white's scoring compensation.
func (pos *Position) Komi() float64 { return pos.komi }

// Captures returns the number of opponent stones colour has captured so far.
func (pos *Position) Captures(colour Color) int { return pos.caps[colour] }

// At returns the colour occupying p (Empty/Black/White/Border).
func (pos *Position) At(p Point) Color { return pos.cells[p] }

// Env4 and Env4d return the packed 2-bit-per-neighbour orthogonal and
// diagonal neighbourhood encodings around p, used by pattern matching.
func (pos *Position) Env4(p Point) uint8  { return pos.env4[p] }
func (pos *Position) Env4d(p Point) uint8 { return pos.env4d[p] }

// PlayMove attempts to play ToMove() at p. On success it mutates pos and
// returns nil. On failure pos is left unchanged and the error is an
// *errs.IllegalMove.
func (pos *Position) PlayMove(p Point) error {
	if p == PASS {
		pos.PassMove()
		return nil
	}
	working := *pos
	if err := working.applyMove(p); err != nil {
		return err
	}
	*pos = working
	return nil
}

// PassMove advances the game with a pass. Never fails.
func (pos *Position) PassMove() {
	pos.n++
	pos.last2 = pos.last
	pos.last = PASS
	pos.ko = PASS
	pos.toMove = pos.toMove.Opponent()
}

// IsLegal reports whether p is a legal move for ToMove() without mutating
// pos.
func (pos *Position) IsLegal(p Point) bool {
	if p == PASS {
		return true
	}
	working := *pos
	return working.applyMove(p) == nil
}

func (pos *Position) applyMove(p Point) error {
	if pos.cells[p] != Empty {
		return errs.NewIllegalMove(errs.Occupied)
	}
	if p == pos.ko {
		return errs.NewIllegalMove(errs.Ko)
	}
	mover := pos.toMove
	opp := mover.Opponent()
	if pos.isEye(p, mover) {
		return errs.NewIllegalMove(errs.Eye)
	}

	pos.cells[p] = mover
	pos.parent[p] = p
	pos.stones[p] = 1
	pos.blockColor[p] = mover
	pos.liberties[p].clear()
	for _, nb := range Neighbors4(p) {
		if pos.cells[nb] == Empty {
			pos.liberties[p].add(nb)
		}
	}

	var oppRoots [4]Point
	oppCount := 0
	mergedRoot := p
	for _, nb := range Neighbors4(p) {
		switch pos.cells[nb] {
		case mover:
			nbRoot := pos.find(nb)
			if nbRoot != pos.find(mergedRoot) {
				mergedRoot = pos.union(mergedRoot, nbRoot)
			}
		case opp:
			r := pos.find(nb)
			dup := false
			for i := 0; i < oppCount; i++ {
				if oppRoots[i] == r {
					dup = true
					break
				}
			}
			if !dup {
				oppRoots[oppCount] = r
				oppCount++
			}
		}
	}
	mergedRoot = pos.find(mergedRoot)
	pos.liberties[mergedRoot].remove(p)

	captured := 0
	capturedPoint := PASS
	for i := 0; i < oppCount; i++ {
		root := oppRoots[i]
		pos.liberties[root].remove(p)
		if pos.liberties[root].count() == 0 {
			n, sole := pos.removeBlock(root)
			captured += n
			if n == 1 {
				capturedPoint = sole
			}
		}
	}

	if captured == 0 {
		if pos.liberties[mergedRoot].count() == 0 {
			return errs.NewIllegalMove(errs.Suicide)
		}
		pos.ko = PASS
	} else {
		newKo := PASS
		if captured == 1 && pos.stones[mergedRoot] == 1 && pos.liberties[mergedRoot].count() == 1 {
			if lib, ok := pos.liberties[mergedRoot].first(); ok && lib == capturedPoint {
				newKo = capturedPoint
			}
		}
		pos.ko = newKo
	}

	pos.refreshEnv(p)
	for _, nb := range Neighbors4(p) {
		pos.refreshEnv(nb)
	}
	for _, dg := range Diagonals4(p) {
		pos.refreshEnv(dg)
	}

	pos.caps[mover] += captured
	pos.n++
	pos.last2 = pos.last
	pos.last = p
	pos.toMove = opp
	return nil
}

// find returns the root of p's block, compressing the path.
func (pos *Position) find(p Point) Point {
	root := p
	for pos.parent[root] != root {
		root = pos.parent[root]
	}
	for pos.parent[p] != root {
		next := pos.parent[p]
		pos.parent[p] = root
		p = next
	}
	return root
}

// union merges the blocks rooted at a and b, keeping the smaller point index
// as the new root (spec: a block is identified by its smallest point).
func (pos *Position) union(a, b Point) Point {
	ra, rb := pos.find(a), pos.find(b)
	if ra == rb {
		return ra
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	pos.parent[rb] = ra
	pos.liberties[ra].mergeFrom(&pos.liberties[rb])
	pos.stones[ra] += pos.stones[rb]
	return ra
}

// removeBlock clears every stone in the block rooted at root, crediting the
// freed points as liberties to any surviving neighbouring block. Returns the
// number of stones removed and, when exactly one was removed, that point
// (used by the ko rule).
func (pos *Position) removeBlock(root Point) (count int, sole Point) {
	members := pos.collectBlock(root, pos.removeBuf[:0])

	for _, pt := range members {
		for _, nb := range Neighbors4(pt) {
			c := pos.cells[nb]
			if c != Black && c != White {
				continue
			}
			nbRoot := pos.find(nb)
			if nbRoot != root {
				pos.liberties[nbRoot].add(pt)
			}
		}
	}

	for _, pt := range members {
		pos.cells[pt] = Empty
		pos.parent[pt] = pt
		pos.liberties[pt].clear()
		pos.stones[pt] = 0
		pos.blockColor[pt] = Empty
	}

	for _, pt := range members {
		pos.refreshEnv(pt)
		for _, nb := range Neighbors4(pt) {
			pos.refreshEnv(nb)
		}
		for _, dg := range Diagonals4(pt) {
			pos.refreshEnv(dg)
		}
	}

	sole = PASS
	if len(members) == 1 {
		sole = members[0]
	}
	return len(members), sole
}

// collectBlock flood-fills the same-colour chain starting at root using buf
// (typically pos.removeBuf[:0]) as scratch storage, returning every member.
func (pos *Position) collectBlock(root Point, buf []Point) []Point {
	buf = append(buf[:0], root)
	pos.scratchVisited[root] = true
	colour := pos.cells[root]
	for i := 0; i < len(buf); i++ {
		cur := buf[i]
		for _, nb := range Neighbors4(cur) {
			if pos.cells[nb] == colour && !pos.scratchVisited[nb] {
				pos.scratchVisited[nb] = true
				buf = append(buf, nb)
			}
		}
	}
	for _, pt := range buf {
		pos.scratchVisited[pt] = false
	}
	return buf
}

// isEye reports whether p is an "obvious eye" of mover: all 4 orthogonal
// neighbours are mover's stones or the border, and the diagonal neighbours
// contain at most one opposing stone (zero if p touches the border at all).
func (pos *Position) isEye(p Point, mover Color) bool {
	touchesBorder := false
	for _, nb := range Neighbors4(p) {
		c := pos.cells[nb]
		if c == Border {
			touchesBorder = true
			continue
		}
		if c != mover {
			return false
		}
	}
	allowed := 1
	if touchesBorder {
		allowed = 0
	}
	opp := mover.Opponent()
	oppDiag := 0
	for _, dg := range Diagonals4(p) {
		if pos.cells[dg] == opp {
			oppDiag++
		}
	}
	return oppDiag <= allowed
}

// refreshEnv recomputes env4/env4d for p from its neighbours' current
// colours. A no-op for border points, whose encodings are never read.
func (pos *Position) refreshEnv(p Point) {
	if !IsOnBoard(p) {
		return
	}
	var e4, e4d uint8
	for i, nb := range Neighbors4(p) {
		e4 |= uint8(pos.cells[nb]) << uint(2*i)
	}
	for i, dg := range Diagonals4(p) {
		e4d |= uint8(pos.cells[dg]) << uint(2*i)
	}
	pos.env4[p] = e4
	pos.env4d[p] = e4d
}

// Block identifies a group by its root (smallest member point) plus the
// colour and stone count cached at that root.
type Block struct {
	Root  Point
	Color Color
	Size  int
}

// BlockAt returns the block containing p. p must hold a stone.
func (pos *Position) BlockAt(p Point) Block {
	c := pos.cells[p]
	if c != Black && c != White {
		errs.Invariant("BlockAt(%v): point is not a stone (colour=%v)", p, c)
	}
	root := pos.find(p)
	return Block{Root: root, Color: pos.cells[root], Size: pos.stones[root]}
}

// LibertyCount returns the number of liberties of b.
func (pos *Position) LibertyCount(b Block) int { return pos.liberties[b.Root].count() }

// Liberties appends b's liberties to dst and returns the extended slice.
func (pos *Position) Liberties(b Block, dst []Point) []Point {
	return pos.liberties[b.Root].points(dst)
}

// NeighborBlocks returns the distinct stone blocks orthogonally adjacent to
// p (p itself need not be occupied).
func (pos *Position) NeighborBlocks(p Point) []Block {
	var roots [4]Point
	n := 0
	for _, nb := range Neighbors4(p) {
		c := pos.cells[nb]
		if c != Black && c != White {
			continue
		}
		r := pos.find(nb)
		dup := false
		for i := 0; i < n; i++ {
			if roots[i] == r {
				dup = true
				break
			}
		}
		if !dup {
			roots[n] = r
			n++
		}
	}
	out := make([]Block, n)
	for i := 0; i < n; i++ {
		out[i] = Block{Root: roots[i], Color: pos.cells[roots[i]], Size: pos.stones[roots[i]]}
	}
	return out
}

// Score returns the Chinese-area score (black area minus white area minus
// komi), as of the current position, assuming play has stopped. If ownerMap
// is non-nil it must have length T and is filled with the owning colour
// (Empty for dame) at every on-board point.
func (pos *Position) Score(ownerMap []Color) float64 {
	var blackArea, whiteArea int
	for _, p := range allPoints {
		if pos.scratchVisited[p] {
			continue
		}
		switch pos.cells[p] {
		case Black:
			blackArea++
			pos.scratchVisited[p] = true
			if ownerMap != nil {
				ownerMap[p] = Black
			}
		case White:
			whiteArea++
			pos.scratchVisited[p] = true
			if ownerMap != nil {
				ownerMap[p] = White
			}
		case Empty:
			region, owner := pos.floodRegion(p)
			for _, q := range region {
				pos.scratchVisited[q] = true
				if ownerMap != nil {
					ownerMap[q] = owner
				}
			}
			switch owner {
			case Black:
				blackArea += len(region)
			case White:
				whiteArea += len(region)
			}
		}
	}
	for _, p := range allPoints {
		pos.scratchVisited[p] = false
	}
	return float64(blackArea) - float64(whiteArea) - pos.komi
}

// floodRegion BFS-explores the empty region containing start, returning its
// points and the colour that uniquely borders it (Empty/dame if both colours
// or neither border it).
func (pos *Position) floodRegion(start Point) ([]Point, Color) {
	buf := append(pos.removeBuf[:0], start)
	pos.scratchRegion[start] = true
	sawBlack, sawWhite := false, false
	for i := 0; i < len(buf); i++ {
		cur := buf[i]
		for _, nb := range Neighbors4(cur) {
			switch pos.cells[nb] {
			case Empty:
				if !pos.scratchRegion[nb] {
					pos.scratchRegion[nb] = true
					buf = append(buf, nb)
				}
			case Black:
				sawBlack = true
			case White:
				sawWhite = true
			}
		}
	}
	for _, pt := range buf {
		pos.scratchRegion[pt] = false
	}
	owner := Empty
	switch {
	case sawBlack && !sawWhite:
		owner = Black
	case sawWhite && !sawBlack:
		owner = White
	}
	return buf, owner
}

// ViolatesSuperko reports whether playing p would recreate a position whose
// DJB-style hash already appears in history. This is a broader check than
// the simple-ko rule PlayMove enforces inline; callers that want positional
// superko (layered the same way a GTP-driving caller tracks move-history
// hashes alongside its board) opt in explicitly by tracking history and
// calling this.
func (pos *Position) ViolatesSuperko(p Point, history []uint64) bool {
	if p == PASS {
		return false
	}
	working := *pos
	if working.applyMove(p) != nil {
		return false
	}
	h := working.Hash()
	for _, old := range history {
		if old == h {
			return true
		}
	}
	return false
}

// Hash is a DJB-style hash of the board contents, fast enough to call once
// per move for superko history tracking; a cryptographic hash is
// unnecessary here.
func (pos *Position) Hash() uint64 {
	var k uint64 = 5381
	for _, p := range allPoints {
		k = ((k << 5) + k) + uint64(pos.cells[p])
	}
	return k
}
