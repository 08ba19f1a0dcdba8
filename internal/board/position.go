package board

import "fmt"

// GameStatus is the outcome recorded on a Position after MakeMove.
type GameStatus uint8

const (
	InProgress GameStatus = iota
	BlackWinByLine
	WhiteWinByLine
	BlackWinByCapture
	WhiteWinByCapture
	Draw
)

// String names the status.
func (g GameStatus) String() string {
	switch g {
	case BlackWinByLine:
		return "BlackWinByLine"
	case WhiteWinByLine:
		return "WhiteWinByLine"
	case BlackWinByCapture:
		return "BlackWinByCapture"
	case WhiteWinByCapture:
		return "WhiteWinByCapture"
	case Draw:
		return "Draw"
	default:
		return "InProgress"
	}
}

// Terminal reports whether the game has ended.
func (g GameStatus) Terminal() bool {
	return g != InProgress
}

// Winner returns the winning side, or NoSide if the status isn't a win.
func (g GameStatus) Winner() Side {
	switch g {
	case BlackWinByLine, BlackWinByCapture:
		return Black
	case WhiteWinByLine, WhiteWinByCapture:
		return White
	default:
		return NoSide
	}
}

// CaptureWinThreshold is the number of captured opponent stones needed to win
// by custody capture (10 stones, i.e. 5 pairs, per Ninuki-renju rules).
// Captures counts pairs, so callers compare it against CaptureWinThreshold/2.
const CaptureWinThreshold = 10

// Position is a complete Gomoku/Ninuki-renju board: two stone bitboards,
// capture counters, whose turn it is, the incremental Zobrist hash, and the
// move history needed to undo. Mirrors the teacher's Position, replacing
// piece-type bitboards with a single stone bitboard per side.
type Position struct {
	Stones   [2]Bitboard // [Black], [White]
	Occupied Bitboard    // Stones[Black] | Stones[White]

	ToMove Side

	Captures [2]int // custody-capture pair counts, indexed by capturing side

	Hash uint64

	Status GameStatus

	history []UndoInfo
}

// NewPosition creates an empty board with Black to move, as every Gomoku
// game begins.
func NewPosition() *Position {
	return &Position{ToMove: Black}
}

// Copy creates a deep copy of the position (history included, since undo
// must still work on the copy).
func (p *Position) Copy() *Position {
	newPos := *p
	newPos.history = append([]UndoInfo(nil), p.history...)
	return &newPos
}

// Get returns the occupancy state of a cell.
func (p *Position) Get(c Cell) StoneState {
	if p.Stones[Black].IsSet(c) {
		return BlackStone
	}
	if p.Stones[White].IsSet(c) {
		return WhiteStone
	}
	return Empty
}

// IsEmpty reports whether a cell has no stone.
func (p *Position) IsEmpty(c Cell) bool {
	return !p.Occupied.IsSet(c)
}

// Count returns the number of stones placed by side s.
func (p *Position) Count(s Side) int {
	return p.Stones[s].PopCount()
}

// place puts a stone of side s on cell c without touching the hash.
func (p *Position) place(s Side, c Cell) {
	p.Stones[s].Set(c)
	p.Occupied.Set(c)
}

// remove takes the stone of side s off cell c without touching the hash.
func (p *Position) remove(s Side, c Cell) {
	p.Stones[s].Clear(c)
	p.Occupied.Clear(c)
}

// MakeMove places m's stone, applies any custody capture, updates the
// incremental hash and capture counters, and records an UndoInfo so
// UnmakeMove can reverse it exactly. The caller is responsible for having
// verified the move is legal (see internal/rules); MakeMove itself does not
// re-check double-three or turn order.
func (p *Position) MakeMove(m Move, captured []Cell) {
	s := m.Side()
	c := m.Cell()

	undo := UndoInfo{
		Move:          m,
		Captured:      captured,
		PrevHash:      p.Hash,
		PrevCapturesB: p.Captures[Black],
		PrevCapturesW: p.Captures[White],
		PrevStatus:    p.Status,
	}

	p.place(s, c)
	p.Hash ^= ZobristStone(s, c)

	opp := s.Other()
	for _, cc := range captured {
		p.remove(opp, cc)
		p.Hash ^= ZobristStone(opp, cc)
	}
	if len(captured) > 0 {
		p.Captures[s] += len(captured) / 2
	}

	p.ToMove = opp
	p.Hash ^= ZobristSideToMove()

	p.history = append(p.history, undo)
}

// UnmakeMove reverses the most recent MakeMove call.
func (p *Position) UnmakeMove() {
	n := len(p.history)
	undo := p.history[n-1]
	p.history = p.history[:n-1]

	s := undo.Move.Side()
	c := undo.Move.Cell()
	opp := s.Other()

	p.remove(s, c)
	for _, cc := range undo.Captured {
		p.place(opp, cc)
	}

	p.Captures[Black] = undo.PrevCapturesB
	p.Captures[White] = undo.PrevCapturesW
	p.Hash = undo.PrevHash
	p.Status = undo.PrevStatus
	p.ToMove = s
}

// LastMove returns the most recently made move, or NoMove if history is
// empty.
func (p *Position) LastMove() Move {
	if len(p.history) == 0 {
		return NoMove
	}
	return p.history[len(p.history)-1].Move
}

// Ply returns the number of moves made so far.
func (p *Position) Ply() int {
	return len(p.history)
}

// String renders the board for debugging, '.' empty, 'x' black, 'o' white.
func (p *Position) String() string {
	s := "\n"
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch p.Get(NewCell(r, c)) {
			case BlackStone:
				s += "x "
			case WhiteStone:
				s += "o "
			default:
				s += ". "
			}
		}
		s += "\n"
	}
	s += fmt.Sprintf("\nTo move: %s  Captures B=%d W=%d  Status=%s\n",
		p.ToMove, p.Captures[Black], p.Captures[White], p.Status)
	return s
}
