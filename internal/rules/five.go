package rules

import "renju-engine/internal/board"

// breakableScanRadius is the Chebyshev radius around a five-run's stones
// scanned for an opponent capturing reply. A custody capture removes one
// contiguous pair starting adjacent to the placed stone, so any reply that
// could remove a run stone lies within two cells of it plus one cell of
// slack for the capturing stone itself (see DESIGN.md Open Question
// decisions).
const breakableScanRadius = 3

// HasFive reports whether side s has a run of at least five stones
// anywhere on the board.
func HasFive(pos *board.Position, s board.Side) bool {
	return board.HasRun(pos.Stones[s], 5)
}

// FiveRuns returns, for side s, every cell that participates in some run of
// at least five consecutive stones (deduplicated).
func FiveRuns(pos *board.Position, s board.Side) []board.Cell {
	starts := board.RunsOfAtLeast(pos.Stones[s], 5)
	seen := map[board.Cell]bool{}
	var cells []board.Cell
	for axis, startBB := range starts {
		for _, start := range startBB.Cells() {
			for _, c := range board.RunCells(pos.Stones[s], start, axis) {
				if !seen[c] {
					seen[c] = true
					cells = append(cells, c)
				}
			}
		}
	}
	return cells
}

// Breakable reports whether the opponent of s has a single capturing reply
// that removes at least one stone from one of s's five-runs, within
// breakableScanRadius cells of the run.
func Breakable(pos *board.Position, s board.Side) bool {
	runCells := FiveRuns(pos, s)
	if len(runCells) == 0 {
		return false
	}
	inRun := make(map[board.Cell]bool, len(runCells))
	for _, c := range runCells {
		inRun[c] = true
	}

	opp := s.Other()
	candidates := candidateEmptiesNear(pos, runCells, breakableScanRadius)
	for _, e := range candidates {
		captured := Captures(pos, opp, e)
		for _, cc := range captured {
			if inRun[cc] {
				return true
			}
		}
	}
	return false
}

// candidateEmptiesNear returns the deduplicated empty cells within
// Chebyshev distance radius of any cell in cells.
func candidateEmptiesNear(pos *board.Position, cells []board.Cell, radius int) []board.Cell {
	seen := map[board.Cell]bool{}
	var out []board.Cell
	for _, c := range cells {
		for dr := -radius; dr <= radius; dr++ {
			for dc := -radius; dc <= radius; dc++ {
				r, col := c.Row()+dr, c.Col()+dc
				if r < 0 || r >= board.Size || col < 0 || col >= board.Size {
					continue
				}
				e := board.NewCell(r, col)
				if seen[e] || !pos.IsEmpty(e) {
					continue
				}
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	return out
}
