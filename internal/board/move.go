package board

import "fmt"

// Move encodes a placement: which cell, and which side is placing there.
// bits 0-8: cell (0-360), bit 9: side (0=Black, 1=White).
type Move uint16

// NoMove represents an invalid or null move.
const NoMove Move = 0xFFFF

// NewMove creates a move placing a stone of side s on cell c.
func NewMove(c Cell, s Side) Move {
	return Move(uint16(c)&0x1FF) | Move(s)<<9
}

// Cell returns the target cell of the move.
func (m Move) Cell() Cell {
	return Cell(m & 0x1FF)
}

// Side returns the side placing the stone.
func (m Move) Side() Side {
	return Side((m >> 9) & 1)
}

// String renders the move as "<side> <row,col>".
func (m Move) String() string {
	if m == NoMove {
		return "none"
	}
	return fmt.Sprintf("%s %s", m.Side(), m.Cell())
}

// ParseMove parses the "row,col" cell notation for the given side.
func ParseMove(s string, side Side) (Move, error) {
	c, err := ParseCell(s)
	if err != nil {
		return NoMove, err
	}
	return NewMove(c, side), nil
}

// MoveList is a fixed-capacity move list sized for the largest plausible
// candidate set (the whole empty board), avoiding per-node allocation
// during search the way the teacher's MoveList avoids chess move slices.
type MoveList struct {
	moves [NumCells]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Set sets the move at index i.
func (ml *MoveList) Set(i int, m Move) {
	ml.moves[i] = m
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear empties the list without freeing its backing array.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains reports whether the list holds a move targeting the same cell.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i].Cell() == m.Cell() {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice sharing the list's backing array.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// UndoInfo captures everything MakeMove mutated so UnmakeMove can restore
// the position exactly, mirroring the teacher's UndoInfo but keyed on the
// cells a custody capture removed rather than a single captured chess piece.
type UndoInfo struct {
	Move          Move
	Captured      []Cell // opponent stones removed by this move's custody capture
	PrevHash      uint64
	PrevCapturesB int
	PrevCapturesW int
	PrevStatus    GameStatus
}
