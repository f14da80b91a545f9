package board

import "github.com/climengine/weiqi/errs"

// CheckInvariants validates spec invariants 1-3 against pos (invariant 4
// needs the caller's count of stone-placing moves; see
// CheckCaptureConservation), returning every
// violation found (not just the first) via errs.CheckResult. Intended for
// tests and debug builds; the hot path never calls this.
func CheckInvariants(pos *Position) *errs.CheckResult {
	var result errs.CheckResult
	placedStones := 0

	for _, p := range allPoints {
		c := pos.cells[p]
		if c != Black && c != White {
			continue
		}
		placedStones++

		// 1. every stone belongs to exactly one block of its colour.
		root := pos.find(p)
		if pos.blockColor[root] != c {
			result.Add("point %v: block root %v has colour %v, want %v", p, root, pos.blockColor[root], c)
		}

		// 2. a block's liberties are exactly its empty orthogonal neighbours,
		// and every block has at least one liberty.
		if pos.LibertyCount(pos.BlockAt(p)) == 0 {
			result.Add("point %v: block rooted at %v has zero liberties", p, root)
		}
		for _, nb := range Neighbors4(p) {
			if pos.cells[nb] == Empty && !pos.liberties[root].has(nb) {
				result.Add("point %v: empty neighbour %v missing from block %v's liberties", p, nb, root)
			}
		}

		// 3. env4 matches the neighbours' actual colours.
		var want uint8
		for i, nb := range Neighbors4(p) {
			want |= uint8(pos.cells[nb]) << uint(2*i)
		}
		if pos.env4[p] != want {
			result.Add("point %v: env4=%08b, want %08b", p, pos.env4[p], want)
		}
		var wantd uint8
		for i, dg := range Diagonals4(p) {
			wantd |= uint8(pos.cells[dg]) << uint(2*i)
		}
		if pos.env4d[p] != wantd {
			result.Add("point %v: env4d=%08b, want %08b", p, pos.env4d[p], wantd)
		}
	}

	// direct liberty-set check: every liberty must actually be empty and
	// orthogonally adjacent to a block member.
	for _, p := range allPoints {
		c := pos.cells[p]
		if c != Black && c != White {
			continue
		}
		if pos.find(p) != p {
			continue // only check once per block, at its root
		}
		b := pos.BlockAt(p)
		for _, lib := range pos.Liberties(b, nil) {
			if pos.cells[lib] != Empty {
				result.Add("block %v: liberty %v is not empty (colour=%v)", b.Root, lib, pos.cells[lib])
			}
			adjacent := false
			for _, nb := range Neighbors4(lib) {
				if c := pos.cells[nb]; (c == Black || c == White) && pos.find(nb) == p {
					adjacent = true
				}
			}
			if !adjacent {
				result.Add("block %v: liberty %v is not adjacent to the block", b.Root, lib)
			}
		}
	}

	// 4. sum(caps) + stones on board == moves that placed a stone. We don't
	// track "moves that placed a stone" directly, so this is checked by
	// callers that replay from an empty board and compare n against passes;
	// exposed here as a helper given the replay count.
	_ = placedStones

	return &result
}

// CheckCaptureConservation verifies invariant 4: the number of stones
// currently on the board plus all captures made equals the number of moves
// that placed a stone (movesPlaced, supplied by the caller since Position
// does not separately count passes vs. plays).
func CheckCaptureConservation(pos *Position, movesPlaced int) *errs.CheckResult {
	var result errs.CheckResult
	onBoard := 0
	for _, p := range allPoints {
		if pos.cells[p] == Black || pos.cells[p] == White {
			onBoard++
		}
	}
	total := pos.caps[Black] + pos.caps[White] + onBoard
	if total != movesPlaced {
		result.Add("caps(%d)+caps(%d)+onBoard(%d)=%d, want movesPlaced=%d",
			pos.caps[Black], pos.caps[White], onBoard, total, movesPlaced)
	}
	return &result
}
