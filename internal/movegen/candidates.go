// Package movegen builds and orders the candidate move set the search
// driver recurses over: a radius-limited neighborhood of occupied cells
// plus any cell forced by a near-complete five-window, scored by the
// teacher's killer/history/countermove ordering machinery adapted to
// Gomoku's twelve-priority ordering key.
package movegen

import "renju-engine/internal/board"

// RootRadius and DeepRadius are the Chebyshev radii used for candidate
// generation near the root versus deep in the tree (spec's ρ(depth)).
const (
	RootRadius = 2
	DeepRadius = 1
)

// axisDirs are the four independent line directions used to scan
// five-cell windows.
var axisDirs = [4]struct{ dr, dc int }{
	{0, 1}, {1, 0}, {1, 1}, {1, -1},
}

// Radius returns the candidate-generation radius for a given remaining
// search depth: wider near the root, narrower deep in the tree.
func Radius(depth int) int {
	if depth >= 4 {
		return RootRadius
	}
	return DeepRadius
}

// Candidates returns the legal-shaped candidate set for either side: empties
// within Chebyshev radius of any stone, unioned with empties from any
// five-in-line window holding four stones of one color (a forced block or
// win) or three stones plus two empties with no opponent stone in the
// window (a forced extension). Legality (double-three, bounds) is not
// filtered here — that's internal/rules' job once a move is selected.
func Candidates(pos *board.Position, radius int) []board.Cell {
	near := board.NeighborsOfOccupied(pos.Occupied, radius, pos.Occupied.Not())
	forced := criticalWindowCells(pos)
	combined := near.Or(forced)
	return combined.Cells()
}

// criticalWindowCells scans every five-cell window on every axis and
// forces in the empties of any window that is one stone away from a five
// (four of one color, one empty) or that could become an open line with no
// opponent stone present (three of one color, two empties).
func criticalWindowCells(pos *board.Position) board.Bitboard {
	var forced board.Bitboard
	for _, axis := range axisDirs {
		for r := 0; r < board.Size; r++ {
			for c := 0; c < board.Size; c++ {
				endR, endC := r+axis.dr*4, c+axis.dc*4
				if endR < 0 || endR >= board.Size || endC < 0 || endC >= board.Size {
					continue
				}
				scanWindow(pos, r, c, axis.dr, axis.dc, &forced)
			}
		}
	}
	return forced
}

func scanWindow(pos *board.Position, r, c, dr, dc int, forced *board.Bitboard) {
	var blackCount, whiteCount int
	var empties []board.Cell
	for i := 0; i < 5; i++ {
		cell := board.NewCell(r+dr*i, c+dc*i)
		switch pos.Get(cell) {
		case board.BlackStone:
			blackCount++
		case board.WhiteStone:
			whiteCount++
		default:
			empties = append(empties, cell)
		}
	}
	forceIt := (blackCount == 4 && whiteCount == 0) ||
		(whiteCount == 4 && blackCount == 0) ||
		(blackCount == 3 && whiteCount == 0 && len(empties) == 2) ||
		(whiteCount == 3 && blackCount == 0 && len(empties) == 2)
	if !forceIt {
		return
	}
	for _, e := range empties {
		forced.Set(e)
	}
}
