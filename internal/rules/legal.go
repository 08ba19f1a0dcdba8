package rules

import "renju-engine/internal/board"

// IllegalReason tags why a move was rejected, surfaced to callers instead
// of a bare boolean so the protocol/game layers can report a precise cause.
type IllegalReason uint8

const (
	Legal IllegalReason = iota
	OutOfBounds
	Occupied
	DoubleThreeForbidden
	OpeningRuleViolated
	GameOver
)

// String names the reason.
func (r IllegalReason) String() string {
	switch r {
	case OutOfBounds:
		return "OutOfBounds"
	case Occupied:
		return "Occupied"
	case DoubleThreeForbidden:
		return "DoubleThreeForbidden"
	case OpeningRuleViolated:
		return "OpeningRuleViolated"
	case GameOver:
		return "GameOver"
	default:
		return "Legal"
	}
}

// Check validates whether s may place a stone at c on pos, without
// mutating pos. A double-three is forbidden unless the same placement also
// captures at least one pair.
func Check(pos *board.Position, s board.Side, c board.Cell) IllegalReason {
	if pos.Status.Terminal() {
		return GameOver
	}
	if !c.Valid() {
		return OutOfBounds
	}
	if !pos.IsEmpty(c) {
		return Occupied
	}

	captured := Captures(pos, s, c)
	if len(captured) > 0 {
		return Legal
	}

	// Double-three must be checked with the stone actually on the board,
	// since the free-three scan reads the line through c.
	pos.MakeMove(board.NewMove(c, s), nil)
	doubleThree := IsDoubleThree(pos, s, c)
	pos.UnmakeMove()

	if doubleThree {
		return DoubleThreeForbidden
	}
	return Legal
}

// Apply validates and, if legal, plays s's move at c on pos, returning the
// resulting game status and whether the move was applied.
func Apply(pos *board.Position, s board.Side, c board.Cell) (board.GameStatus, IllegalReason) {
	if reason := Check(pos, s, c); reason != Legal {
		return pos.Status, reason
	}
	captured := Captures(pos, s, c)
	pos.MakeMove(board.NewMove(c, s), captured)
	status := Adjudicate(pos, s)
	pos.Status = status
	return status, Legal
}

// LegalMoves returns every cell where s may currently place a stone.
func LegalMoves(pos *board.Position, s board.Side) []board.Cell {
	var moves []board.Cell
	for i := 0; i < board.NumCells; i++ {
		c := board.Cell(i)
		if Check(pos, s, c) == Legal {
			moves = append(moves, c)
		}
	}
	return moves
}
