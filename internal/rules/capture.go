// Package rules implements the Ninuki-renju capture rule, the double-three
// prohibition, five/overline detection, the breakable-five exception and
// winner adjudication — the legality and outcome logic that sits between
// the raw bitboard and the search driver.
package rules

import "renju-engine/internal/board"

// direction is a (dRow, dCol) compass step.
type direction struct {
	dr, dc int
}

// eightDirections lists all eight compass directions used by the capture
// rule (N, S, E, W and the four diagonals).
var eightDirections = [8]direction{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// cellAt returns the state of the cell reached by stepping n times from c
// in direction d, and whether that cell is on the board.
func cellAt(pos *board.Position, c board.Cell, d direction, n int) (board.StoneState, bool) {
	r, col := c.Row()+d.dr*n, c.Col()+d.dc*n
	if r < 0 || r >= board.Size || col < 0 || col >= board.Size {
		return board.Empty, false
	}
	return pos.Get(board.NewCell(r, col)), true
}

// Captures returns the cells captured by placing side s's stone at c on
// pos (which must not yet have the stone placed). The custody pattern is
// S, ¬S, ¬S, S along any of the eight directions: the two ¬S stones are
// captured. Multiple directions may fire simultaneously; all do.
func Captures(pos *board.Position, s board.Side, c board.Cell) []board.Cell {
	opp := s.Other()
	oppStone := stoneOf(opp)

	var captured []board.Cell
	for _, d := range eightDirections {
		st1, ok1 := cellAt(pos, c, d, 1)
		if !ok1 || st1 != oppStone {
			continue
		}
		st2, ok2 := cellAt(pos, c, d, 2)
		if !ok2 || st2 != oppStone {
			continue
		}
		st3, ok3 := cellAt(pos, c, d, 3)
		if !ok3 || st3 != stoneOf(s) {
			continue
		}
		captured = append(captured,
			board.NewCell(c.Row()+d.dr, c.Col()+d.dc),
			board.NewCell(c.Row()+2*d.dr, c.Col()+2*d.dc),
		)
	}
	return captured
}

// stoneOf maps a side to its StoneState.
func stoneOf(s board.Side) board.StoneState {
	if s == board.Black {
		return board.BlackStone
	}
	return board.WhiteStone
}
