// Package heuristic implements the static position evaluation used by the
// search driver at the horizon: per-axis line-shape scoring, the
// capture-balance term, and a center-distance term. It has no tactical
// short-circuit flags; fours and fives count only through the line-shape
// weights.
package heuristic

import "renju-engine/internal/board"

// shapeWeight scores a run of a given length and openness (number of open
// ends: 0, 1, or 2). Values are ordered so that a live four dominates
// everything below a forced win and a closed four outranks an open three,
// mirroring how a real Gomoku threat ladder ranks shapes.
var shapeWeight = map[int][3]int{
	2: {0, 10, 40},
	3: {0, 100, 1200},
	4: {0, 2000, 100000},
}

const fiveWeight = 1_000_000

// axisDirs are the four independent line directions, one per axis.
var axisDirs = [4]struct{ dr, dc int }{
	{0, 1}, {1, 0}, {1, 1}, {1, -1},
}

// LineScore sums the shape value of every maximal run of side s's stones on
// the board, scanning each of the four axes once.
func LineScore(pos *board.Position, s board.Side) int {
	total := 0
	stones := pos.Stones[s]
	for _, c := range stones.Cells() {
		for _, axis := range axisDirs {
			// Only score a run once, starting from its first stone.
			pr, pc := c.Row()-axis.dr, c.Col()-axis.dc
			if inBounds(pr, pc) && pos.Get(board.NewCell(pr, pc)) == stoneOf(s) {
				continue
			}
			length, openEnds := runInfo(pos, s, c, axis.dr, axis.dc)
			if length >= 5 {
				total += fiveWeight
				continue
			}
			if w, ok := shapeWeight[length]; ok {
				total += w[openEnds]
			}
		}
	}
	return total
}

// runInfo walks forward from start along (dr,dc) while cells hold s's
// stone, then reports the run length and how many of its two ends are open
// (empty and on-board).
func runInfo(pos *board.Position, s board.Side, start board.Cell, dr, dc int) (length, openEnds int) {
	own := stoneOf(s)
	r, c := start.Row(), start.Col()
	length = 0
	for inBounds(r, c) && pos.Get(board.NewCell(r, c)) == own {
		length++
		r += dr
		c += dc
	}
	if inBounds(r, c) && pos.Get(board.NewCell(r, c)) == board.Empty {
		openEnds++
	}
	br, bc := start.Row()-dr, start.Col()-dc
	if inBounds(br, bc) && pos.Get(board.NewCell(br, bc)) == board.Empty {
		openEnds++
	}
	return length, openEnds
}

func inBounds(r, c int) bool {
	return r >= 0 && r < board.Size && c >= 0 && c < board.Size
}

func stoneOf(s board.Side) board.StoneState {
	if s == board.Black {
		return board.BlackStone
	}
	return board.WhiteStone
}
