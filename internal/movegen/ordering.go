package movegen

import (
	"renju-engine/internal/board"
	"renju-engine/internal/rules"
)

// MaxPly bounds killer-move storage, mirroring the teacher's fixed-size
// per-ply tables.
const MaxPly = 64

// Priority bands, highest first, matching spec's twelve-entry ordering key.
// Values are spaced widely enough that a lower band can never outscore a
// higher one once combined with any within-band tiebreaker.
const (
	prioImmediateWin     = 12_000_000
	prioBlockOppFive     = 11_000_000
	prioOwnOpenFour      = 10_000_000
	prioBlockOppFour     = 9_000_000
	prioBlockOppBuildup  = 8_000_000
	prioWinningCapture   = 7_000_000
	prioTTMove           = 6_000_000
	prioPVMove           = 5_000_000
	prioKiller           = 4_000_000
	prioCountermove      = 3_000_000
)

// Orderer holds the move-ordering memory that persists across a search:
// killer moves per ply, a history table, and a countermove table. Adapted
// from internal/engine/ordering.go's MoveOrderer, collapsing its
// MVV-LVA/piece-indexed chess scoring down to Gomoku's side+cell indexing.
type Orderer struct {
	killers      [MaxPly][2]board.Move
	history      [2][board.NumCells]int
	counterMoves [2][board.NumCells]board.Move
}

// NewOrderer creates an empty move orderer.
func NewOrderer() *Orderer {
	return &Orderer{}
}

// UpdateKillers records m as a killer at ply, shifting the previous killer
// down if m isn't already the primary one.
func (o *Orderer) UpdateKillers(ply int, m board.Move) {
	if o.killers[ply][0].Cell() == m.Cell() {
		return
	}
	o.killers[ply][1] = o.killers[ply][0]
	o.killers[ply][0] = m
}

// UpdateHistory adds a depth-squared bonus to m's history score, halving
// the whole table if any entry would overflow a working ceiling.
func (o *Orderer) UpdateHistory(s board.Side, m board.Move, depth int) {
	bonus := depth * depth
	idx := int(m.Cell())
	o.history[s][idx] += bonus
	if o.history[s][idx] > 400_000 {
		for i := range o.history[s] {
			o.history[s][i] /= 2
		}
	}
}

// UpdateCountermove records m as the reply to prev.
func (o *Orderer) UpdateCountermove(s board.Side, prev, m board.Move) {
	if prev == board.NoMove {
		return
	}
	o.counterMoves[s][prev.Cell()] = m
}

// NewSearch clears per-search state (killers) while keeping history and
// countermoves, which persist for the life of the engine and are aged
// externally between moves.
func (o *Orderer) NewSearch() {
	for i := range o.killers {
		o.killers[i] = [2]board.Move{}
	}
}

// AgeHistory halves every history entry and drops anything that rounds to
// zero, matching spec's "ages history (halves and drops zeros)" between
// moves.
func (o *Orderer) AgeHistory() {
	for s := range o.history {
		for i := range o.history[s] {
			o.history[s][i] /= 2
		}
	}
}

// IsKiller reports whether m is one of the recorded killers at ply.
func (o *Orderer) IsKiller(ply int, m board.Move) bool {
	if ply < 0 || ply >= MaxPly {
		return false
	}
	return isKiller(o.killers[ply], m.Cell())
}

// scored pairs a move with its ordering key for sorting.
type scored struct {
	move  board.Cell
	score int
}

// Order scores and sorts candidates for side s to move at ply, given the
// position, the TT's best move (if any), the PV move from the previous
// iteration (if any), and the previous move (for countermove lookup). It
// returns at most limit moves, truncating the lowest-scored tail per
// spec's M_root/M_deep caps.
func (o *Orderer) Order(pos *board.Position, s board.Side, ply int, candidates []board.Cell, ttMove, pvMove, prevMove board.Move, limit int) []board.Cell {
	opp := s.Other()
	list := make([]scored, 0, len(candidates))

	for _, c := range candidates {
		list = append(list, scored{move: c, score: o.scoreMove(pos, s, opp, ply, c, ttMove, pvMove, prevMove)})
	}

	insertionSortDesc(list)

	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	out := make([]board.Cell, len(list))
	for i, sc := range list {
		out[i] = sc.move
	}
	return out
}

func (o *Orderer) scoreMove(pos *board.Position, s, opp board.Side, ply int, c board.Cell, ttMove, pvMove, prevMove board.Move) int {
	if ttMove != board.NoMove && ttMove.Cell() == c {
		return prioTTMove
	}
	if pvMove != board.NoMove && pvMove.Cell() == c {
		return prioPVMove
	}

	if createsImmediateWin(pos, s, c) {
		return prioImmediateWin
	}
	if createsImmediateWin(pos, opp, c) {
		return prioBlockOppFive
	}

	captured := rules.Captures(pos, s, c)
	if len(captured)/2+pos.Captures[s] >= board.CaptureWinThreshold/2 {
		return prioWinningCapture
	}

	ownThrees := rules.FreeThreeCount(simulate(pos, s, c), s, c)
	if ownThrees >= 1 {
		return prioOwnOpenFour
	}
	oppThrees := rules.FreeThreeCount(simulate(pos, opp, c), opp, c)
	if oppThrees >= 1 {
		return prioBlockOppFour
	}

	if isKiller(o.killers[ply], c) {
		return prioKiller
	}
	if prevMove != board.NoMove && o.counterMoves[s][prevMove.Cell()].Cell() == c {
		return prioCountermove
	}

	history := o.history[s][int(c)]
	residual := staticResidual(c)
	return history + residual
}

func simulate(pos *board.Position, s board.Side, c board.Cell) *board.Position {
	clone := pos.Copy()
	clone.MakeMove(board.NewMove(c, s), nil)
	return clone
}

func createsImmediateWin(pos *board.Position, s board.Side, c board.Cell) bool {
	if !pos.IsEmpty(c) {
		return false
	}
	captured := rules.Captures(pos, s, c)
	clone := pos.Copy()
	clone.MakeMove(board.NewMove(c, s), captured)
	status := rules.Adjudicate(clone, s)
	return status.Winner() == s
}

func isKiller(k [2]board.Move, c board.Cell) bool {
	return k[0].Cell() == c || k[1].Cell() == c
}

// staticResidual is priority 12: a small center bias by Chebyshev distance
// from the board's center. It gives no bonus for adjacency to stones.
func staticResidual(c board.Cell) int {
	center := board.NewCell(board.Size/2, board.Size/2)
	d := board.ChebyshevDistance(c, center)
	return (board.Size/2 - d) * 2
}

func insertionSortDesc(list []scored) {
	for i := 1; i < len(list); i++ {
		v := list[i]
		j := i - 1
		for j >= 0 && list[j].score < v.score {
			list[j+1] = list[j]
			j--
		}
		list[j+1] = v
	}
}
