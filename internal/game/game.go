// Package game implements the turn-sequencing state machine that sits on
// top of internal/rules: opening-rule predicates, phase transitions, and
// move/undo bookkeeping for Standard, Pro, Swap, and Swap2 openings.
package game

import (
	"renju-engine/internal/board"
	"renju-engine/internal/rules"
)

// Mode distinguishes a two-human game from one with an engine seat, which
// matters only for how a Swap/Swap2 color choice is interpreted.
type Mode uint8

const (
	PvP Mode = iota
	PvE
)

// Rule selects which opening predicate governs the first moves.
type Rule uint8

const (
	Standard Rule = iota
	Pro
	Swap
	Swap2
)

// String names the rule.
func (r Rule) String() string {
	switch r {
	case Pro:
		return "Pro"
	case Swap:
		return "Swap"
	case Swap2:
		return "Swap2"
	default:
		return "Standard"
	}
}

// Phase is one of the six states of the opening-rule state machine.
type Phase uint8

const (
	PhaseNormal Phase = iota
	PhaseOpeningPlace
	PhaseSwapChoice
	PhaseSwap2Choice
	PhaseSwap2Extra
	PhaseSwap2Final
)

// String names the phase.
func (p Phase) String() string {
	switch p {
	case PhaseOpeningPlace:
		return "OpeningPlace"
	case PhaseSwapChoice:
		return "SwapChoice"
	case PhaseSwap2Choice:
		return "Swap2Choice"
	case PhaseSwap2Extra:
		return "Swap2Extra"
	case PhaseSwap2Final:
		return "Swap2Final"
	default:
		return "Normal"
	}
}

// proOpeningCenterPly and proSecondMovePly are the move indices the Pro
// opening constrains: the first stone (ply 0) and Black's second stone
// (ply 2, since White moves at ply 1).
const (
	proOpeningCenterPly = 0
	proSecondMovePly    = 2
	proMinDistance      = 3

	openingStoneCount     = 3
	swap2ExtraStoneCount  = 5
)

// phaseSnapshot captures the fields MakeMove mutates beyond the position
// itself, so UndoMove can restore the phase machine in lockstep with
// board.Position's own undo stack.
type phaseSnapshot struct {
	phase         Phase
	engineSide    board.Side
	hasEngineSide bool
}

// Game sequences turns and opening rules around a board.Position.
type Game struct {
	pos   *board.Position
	mode  Mode
	rule  Rule
	phase Phase

	engineSide    board.Side
	hasEngineSide bool

	lastMove    board.Cell
	hasLastMove bool

	history []phaseSnapshot
}

// NewGame creates a game in the given mode under the given opening rule.
func NewGame(mode Mode, rule Rule) *Game {
	g := &Game{}
	g.Reset(mode, rule)
	return g
}

// Reset starts a fresh game, discarding all history.
func (g *Game) Reset(mode Mode, rule Rule) {
	g.pos = board.NewPosition()
	g.mode = mode
	g.rule = rule
	g.hasLastMove = false
	g.hasEngineSide = false
	g.history = g.history[:0]

	if rule == Swap || rule == Swap2 {
		g.phase = PhaseOpeningPlace
	} else {
		g.phase = PhaseNormal
	}
}

// MakeMove places the side-to-move's stone at (row, col), enforcing the
// legality predicate, the active opening-rule predicate, and the current
// phase, then applies captures, advances the turn, and re-checks the
// win/loss condition.
func (g *Game) MakeMove(row, col int) bool {
	if g.pos.Status.Terminal() {
		return false
	}
	if !g.acceptingPlacements() {
		return false
	}

	c := board.NewCell(row, col)
	if !c.Valid() {
		return false
	}

	side := g.pos.ToMove
	if !g.openingAllows(side, c) {
		return false
	}
	if rules.Check(g.pos, side, c) != rules.Legal {
		return false
	}

	captured := rules.Captures(g.pos, side, c)
	g.history = append(g.history, phaseSnapshot{
		phase:         g.phase,
		engineSide:    g.engineSide,
		hasEngineSide: g.hasEngineSide,
	})

	g.pos.MakeMove(board.NewMove(c, side), captured)
	g.pos.Status = rules.Adjudicate(g.pos, side)
	g.lastMove = c
	g.hasLastMove = true

	g.advancePhase()
	return true
}

// UndoMove pops the most recent move record, restoring the board, capture
// counters, turn, and phase to their state before that move.
func (g *Game) UndoMove() bool {
	if len(g.history) == 0 {
		return false
	}

	snap := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]

	g.pos.UnmakeMove()
	g.phase = snap.phase
	g.engineSide = snap.engineSide
	g.hasEngineSide = snap.hasEngineSide

	if g.pos.Ply() > 0 {
		g.lastMove = g.pos.LastMove().Cell()
		g.hasLastMove = true
	} else {
		g.hasLastMove = false
	}
	return true
}

// ChooseColor resolves a SwapChoice or Swap2Final decision: which side the
// choosing party will play for the remainder of the game. In PvE mode this
// pins which side the engine controls; in PvP it is a logical relabeling
// that does not move any stones (the Open Question decision for Swap2
// treats this as a pure color swap, not a player re-assignment).
func (g *Game) ChooseColor(side board.Side) bool {
	switch g.phase {
	case PhaseSwapChoice, PhaseSwap2Final:
		g.setEngineSide(side)
		g.phase = PhaseNormal
		return true
	default:
		return false
	}
}

// ChooseSwap2Option resolves the Swap2Choice decision: take Black (1), take
// White (2), or place two more stones before choosing (3).
func (g *Game) ChooseSwap2Option(option int) bool {
	if g.phase != PhaseSwap2Choice {
		return false
	}
	switch option {
	case 1:
		g.setEngineSide(board.White)
		g.phase = PhaseNormal
	case 2:
		g.setEngineSide(board.Black)
		g.phase = PhaseNormal
	case 3:
		g.phase = PhaseSwap2Extra
	default:
		return false
	}
	return true
}

func (g *Game) setEngineSide(side board.Side) {
	if g.mode != PvE {
		return
	}
	g.engineSide = side
	g.hasEngineSide = true
}

// acceptingPlacements reports whether MakeMove may place a stone in the
// current phase; the choice phases block placement until resolved.
func (g *Game) acceptingPlacements() bool {
	switch g.phase {
	case PhaseSwapChoice, PhaseSwap2Choice, PhaseSwap2Final:
		return false
	default:
		return true
	}
}

// openingAllows applies the Pro opening's center/distance predicate. Other
// rules impose no placement predicate beyond ordinary legality.
func (g *Game) openingAllows(side board.Side, c board.Cell) bool {
	if g.rule != Pro {
		return true
	}
	center := board.NewCell(board.Size/2, board.Size/2)
	switch g.pos.Ply() {
	case proOpeningCenterPly:
		return c == center
	case proSecondMovePly:
		return board.ChebyshevDistance(c, center) >= proMinDistance
	default:
		return true
	}
}

// advancePhase transitions the opening-rule state machine on placement
// count, the only transitions the design allows.
func (g *Game) advancePhase() {
	switch g.phase {
	case PhaseOpeningPlace:
		if g.pos.Ply() < openingStoneCount {
			return
		}
		if g.rule == Swap {
			g.phase = PhaseSwapChoice
		} else {
			g.phase = PhaseSwap2Choice
		}
	case PhaseSwap2Extra:
		if g.pos.Ply() >= swap2ExtraStoneCount {
			g.phase = PhaseSwap2Final
		}
	}
}

// GetValidMoves returns every cell where the side to move may currently
// place a stone, honoring the active opening-rule predicate and phase.
func (g *Game) GetValidMoves() []board.Cell {
	if g.pos.Status.Terminal() || !g.acceptingPlacements() {
		return nil
	}
	side := g.pos.ToMove
	var moves []board.Cell
	for i := 0; i < board.NumCells; i++ {
		c := board.Cell(i)
		if !g.pos.IsEmpty(c) {
			continue
		}
		if !g.openingAllows(side, c) {
			continue
		}
		if rules.Check(g.pos, side, c) == rules.Legal {
			moves = append(moves, c)
		}
	}
	return moves
}

// Info is the snapshot returned by GetGameInfo.
type Info struct {
	Turn          board.Side
	MoveCount     int
	CapturesBlack int
	CapturesWhite int
	Phase         Phase
	Winner        board.Side
	HasWinner     bool
	LastMove      board.Cell
	HasLastMove   bool
	PhaseMessage  string
}

// GetGameInfo reports the game's current turn, move count, captures,
// phase, winner (if any), and a human-readable phase message.
func (g *Game) GetGameInfo() Info {
	info := Info{
		Turn:          g.pos.ToMove,
		MoveCount:     g.pos.Ply(),
		CapturesBlack: g.pos.Captures[board.Black],
		CapturesWhite: g.pos.Captures[board.White],
		Phase:         g.phase,
		LastMove:      g.lastMove,
		HasLastMove:   g.hasLastMove,
		PhaseMessage:  g.phaseMessage(),
	}
	if g.pos.Status.Terminal() && g.pos.Status != board.Draw {
		info.Winner = g.pos.Status.Winner()
		info.HasWinner = true
	}
	return info
}

func (g *Game) phaseMessage() string {
	switch g.phase {
	case PhaseOpeningPlace:
		return "placing the opening stones"
	case PhaseSwapChoice:
		return "waiting for the second player to choose a color"
	case PhaseSwap2Choice:
		return "waiting for the second player to choose an option"
	case PhaseSwap2Extra:
		return "placing the two extra Swap2 stones"
	case PhaseSwap2Final:
		return "waiting for the first player to choose a color"
	default:
		return ""
	}
}

// Position exposes the underlying position, e.g. for the search driver.
func (g *Game) Position() *board.Position {
	return g.pos
}

// EngineSide reports which side the engine controls in PvE mode.
func (g *Game) EngineSide() (board.Side, bool) {
	return g.engineSide, g.hasEngineSide
}
