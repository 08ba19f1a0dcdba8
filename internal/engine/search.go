package engine

import (
	"sync/atomic"

	"renju-engine/internal/board"
	"renju-engine/internal/heuristic"
	"renju-engine/internal/movegen"
	"renju-engine/internal/rules"
)

// Search constants, adapted from the teacher's Infinity/MateScore/MaxPly to
// a scale matching heuristic.Evaluate's magnitudes.
const (
	Infinity  = 1_000_000
	WinScore  = 900_000
	MateScore = WinScore
	MaxPly    = 128

	winTolerance = 1000

	// Move-ordering truncation caps, spec's M_root/M_deep.
	mRoot = 30
	mDeep = 15

	// Null-move pruning.
	nMin         = 3
	nullMoveR    = 2
	minStonesNMP = 5

	// Late-move reduction.
	lMin = 4
	lmrR = 1

	// Aspiration windows, off by default per spec.
	aMin             = 5
	aspirationWindow = 2000

	timeCheckInterval = 10_000
)

// PVTable stores the principal variation discovered at each ply.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

// Stats tallies the counters engine_debug_info exposes.
type Stats struct {
	Nodes         uint64
	AlphaCuts     uint64
	BetaCuts      uint64
	NullCuts      uint64
	LMRReductions uint64
	LMRResearches uint64
}

// Searcher performs iterative-deepening negamax alpha-beta search over a
// single position, grounded on the teacher's Searcher but rebuilt around
// internal/movegen's candidate generation and internal/rules' legality and
// terminal checks instead of full chess move generation.
type Searcher struct {
	pos     *board.Position
	tt      *TranspositionTable
	orderer *movegen.Orderer
	cache   *heuristic.Cache
	corr    *CorrectionHistory
	tm      *TimeManager

	useAspiration bool

	stats    Stats
	stopFlag atomic.Bool

	pv PVTable

	rootPVMove [MaxPly]board.Move // best move at each ply from the previous iteration
	prevMove   board.Move
}

// NewSearcher creates a searcher sharing the given transposition table,
// which persists across moves per spec's engine-lifetime shared resources.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{
		tt:      tt,
		orderer: movegen.NewOrderer(),
		cache:   heuristic.NewCache(8),
		corr:    NewCorrectionHistory(),
		tm:      NewTimeManager(),
	}
}

// Stop signals the in-flight search to abort at the next node boundary.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// Stats returns a copy of the counters accumulated by the last search.
func (s *Searcher) Stats() Stats {
	return s.stats
}

// newSearch resets per-search state (nodes, stop flag, killers) while
// keeping history, countermoves, the TT, and correction history, which live
// for the engine's lifetime and are aged between moves by the caller.
func (s *Searcher) newSearch() {
	s.stopFlag.Store(false)
	s.stats = Stats{}
	s.orderer.NewSearch()
	s.tt.NewSearch()
	s.prevMove = board.NoMove
	for i := range s.rootPVMove {
		s.rootPVMove[i] = board.NoMove
	}
}

// Result is the outcome of an iterative-deepening search.
type Result struct {
	Best      board.Move
	Score     int
	Depth     int
	Nodes     uint64
	PV        []board.Move
	Forced    bool
	TimedOut  bool
	ElapsedMs int64
}

// IterativeDeepening runs the forced-move prelude, then iterative deepening
// from depth 1 to maxDepth, stopping early on a near-certain win score or on
// running past the time budget, per spec's §4.6 search driver.
func (s *Searcher) IterativeDeepening(pos *board.Position, maxDepth, minDepth int, limits Limits) Result {
	s.pos = pos.Copy()
	side := s.pos.ToMove
	s.tm.Init(limits, s.pos.Ply())

	if m, ok := s.forcedMove(s.pos, side); ok {
		return Result{Best: m, Forced: true, Depth: 0, ElapsedMs: s.tm.Elapsed().Milliseconds()}
	}

	s.newSearch()

	best := Result{Best: board.NoMove}
	prevScore := 0
	stability := 0

	for depth := 1; depth <= maxDepth; depth++ {
		if depth > minDepth && s.tm.Elapsed() >= s.tm.OptimumTime()*80/100 {
			break
		}

		alpha, beta := -Infinity, Infinity
		useWindow := s.useAspiration && depth >= aMin
		if useWindow {
			alpha = prevScore - aspirationWindow
			beta = prevScore + aspirationWindow
		}

		var score int
		for {
			score = s.negamax(depth, 0, alpha, beta)
			if s.stopFlag.Load() {
				break
			}
			if useWindow && score <= alpha {
				alpha = -Infinity
				continue
			}
			if useWindow && score >= beta {
				beta = Infinity
				continue
			}
			break
		}

		if s.stopFlag.Load() {
			best.TimedOut = true
			break
		}

		bestMove := board.NoMove
		if s.pv.length[0] > 0 {
			bestMove = s.pv.moves[0][0]
		}

		if bestMove == best.Best && depth > 1 {
			stability++
		} else {
			stability = 0
		}
		s.tm.AdjustForStability(stability)

		best = Result{Best: bestMove, Score: score, Depth: depth, Nodes: s.stats.Nodes, PV: s.GetPV()}
		prevScore = score

		for i := 0; i < s.pv.length[0] && i < MaxPly; i++ {
			s.rootPVMove[i] = s.pv.moves[0][i]
		}

		if score >= WinScore-winTolerance || score <= -(WinScore-winTolerance) {
			break
		}
		if s.tm.ShouldStop() {
			break
		}
	}

	best.ElapsedMs = s.tm.Elapsed().Milliseconds()
	return best
}

// forcedMove implements spec's six-step forced-move prelude, evaluated
// before the first search iteration.
func (s *Searcher) forcedMove(pos *board.Position, side board.Side) (board.Move, bool) {
	opp := side.Other()
	empties := emptyCells(pos)

	// 1. Any placement that creates an unbreakable five.
	for _, c := range empties {
		if m, ok := tryWinningPlacement(pos, side, c); ok {
			return m, true
		}
	}

	// 2. Any placement that reaches the capture-win threshold.
	for _, c := range empties {
		captured := rules.Captures(pos, side, c)
		if len(captured)/2+pos.Captures[side] >= board.CaptureWinThreshold/2 {
			return board.NewMove(c, side), true
		}
	}

	// 3. If the opponent is one capture away from winning, block the
	// largest capture threat against our own stones.
	if pos.Captures[opp] >= board.CaptureWinThreshold/2-1 {
		if m, ok := blockLargestCaptureThreat(pos, side, empties); ok {
			return m, true
		}
	}

	// 4. Unique opponent immediate-five block; among several, prefer one
	// that also creates a free three of our own (a block that makes an open
	// four is not looked for).
	blocks := opponentFiveBlocks(pos, side, opp, empties)
	if len(blocks) == 1 {
		return board.NewMove(blocks[0], side), true
	}
	if len(blocks) > 1 {
		for _, c := range blocks {
			if rules.FreeThreeCount(simulatePlacement(pos, side, c), side, c) > 0 {
				return board.NewMove(c, side), true
			}
		}
		return board.NewMove(blocks[0], side), true
	}

	// 5. A legal placement that creates free threes on two or more axes
	// (legal only when it also captures). A placement that makes an open
	// four on a single axis is not selected here.
	for _, c := range empties {
		if rules.FreeThreeCount(simulatePlacement(pos, side, c), side, c) >= 2 &&
			rules.Check(pos, side, c) == rules.Legal {
			return board.NewMove(c, side), true
		}
	}

	// 6. Block opponent open-four, then closed-four. Opponent capture
	// threats against our stones are only handled by step 3.
	if m, ok := blockOpponentFour(pos, side, opp, empties, true); ok {
		return m, true
	}
	if m, ok := blockOpponentFour(pos, side, opp, empties, false); ok {
		return m, true
	}

	return board.NoMove, false
}

func emptyCells(pos *board.Position) []board.Cell {
	cells := make([]board.Cell, 0, board.NumCells)
	for c := board.Cell(0); c < board.NumCells; c++ {
		if pos.IsEmpty(c) {
			cells = append(cells, c)
		}
	}
	return cells
}

func simulatePlacement(pos *board.Position, s board.Side, c board.Cell) *board.Position {
	captured := rules.Captures(pos, s, c)
	clone := pos.Copy()
	clone.MakeMove(board.NewMove(c, s), captured)
	return clone
}

func tryWinningPlacement(pos *board.Position, s board.Side, c board.Cell) (board.Move, bool) {
	captured := rules.Captures(pos, s, c)
	clone := pos.Copy()
	clone.MakeMove(board.NewMove(c, s), captured)
	if rules.Adjudicate(clone, s).Winner() == s {
		return board.NewMove(c, s), true
	}
	return board.NoMove, false
}

func blockLargestCaptureThreat(pos *board.Position, side board.Side, empties []board.Cell) (board.Move, bool) {
	opp := side.Other()
	bestGain := -1
	var bestCell board.Cell
	found := false
	for _, c := range empties {
		before := len(rules.Captures(pos, opp, c))
		if before <= bestGain {
			continue
		}
		if rules.Check(pos, side, c) != rules.Legal {
			continue
		}
		bestGain = before
		bestCell = c
		found = true
	}
	if found && bestGain > 0 {
		return board.NewMove(bestCell, side), true
	}
	return board.NoMove, false
}

func opponentFiveBlocks(pos *board.Position, side, opp board.Side, empties []board.Cell) []board.Cell {
	var blocks []board.Cell
	for _, c := range empties {
		if _, ok := tryWinningPlacement(pos, opp, c); ok {
			if rules.Check(pos, side, c) == rules.Legal {
				blocks = append(blocks, c)
			}
		}
	}
	return blocks
}

func blockOpponentFour(pos *board.Position, side, opp board.Side, empties []board.Cell, openOnly bool) (board.Move, bool) {
	for _, oc := range empties {
		threes := rules.FreeThreeCount(simulatePlacement(pos, opp, oc), opp, oc)
		if openOnly && threes == 0 {
			continue
		}
		clone := simulatePlacement(pos, opp, oc)
		if !rules.HasFive(clone, opp) {
			continue
		}
		// Opponent playing oc would make a five; find our block among the
		// run's cells that is itself legal.
		for _, rc := range rules.FiveRuns(clone, opp) {
			if pos.IsEmpty(rc) && rules.Check(pos, side, rc) == rules.Legal {
				return board.NewMove(rc, side), true
			}
		}
	}
	return board.NoMove, false
}

// negamax implements alpha-beta search with null-move pruning, late-move
// reduction, and transposition-table probing/storing, grounded on the
// teacher's negamax but driven by internal/movegen candidates and
// internal/rules terminal/legality checks instead of full chess movegen.
func (s *Searcher) negamax(depth, ply int, alpha, beta int) int {
	if s.stats.Nodes%timeCheckInterval == 0 && s.stats.Nodes > 0 && s.tm.Elapsed() >= s.tm.MaximumTime()*95/100 {
		s.stopFlag.Store(true)
	}
	if s.stopFlag.Load() {
		return 0
	}

	s.stats.Nodes++
	s.pv.length[ply] = ply

	side := s.pos.ToMove
	if s.pos.Status.Terminal() {
		return terminalScore(s.pos.Status, side, ply)
	}

	ttMove := board.NoMove
	ttEntry, found := s.tt.Probe(s.pos.Hash)
	if found {
		ttMove = ttEntry.BestMove
		if int(ttEntry.Depth) >= depth {
			score := AdjustScoreFromTT(int(ttEntry.Score), ply)
			switch ttEntry.Flag {
			case TTExact:
				return score
			case TTLowerBound:
				if score > alpha {
					alpha = score
				}
			case TTUpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	}

	if depth <= 0 {
		return s.quiescence(side, ply)
	}

	opp := side.Other()
	oppHasThreat := hasLiveThreat(s.pos, opp)

	if depth >= nMin && !oppHasThreat && s.pos.Occupied.PopCount() >= minStonesNMP && ply > 0 {
		s.pos.ToMove = opp
		s.pos.Hash ^= board.ZobristSideToMove()
		score := -s.negamax(depth-1-nullMoveR, ply+1, -beta, -beta+1)
		s.pos.Hash ^= board.ZobristSideToMove()
		s.pos.ToMove = side
		if s.stopFlag.Load() {
			return 0
		}
		if score >= beta {
			s.stats.NullCuts++
			return beta
		}
	}

	radius := movegen.Radius(depth)
	candidates := movegen.Candidates(s.pos, radius)
	if len(candidates) == 0 {
		return s.evaluate(s.pos, side)
	}

	limit := mDeep
	if ply == 0 {
		limit = mRoot
	}
	ordered := s.orderer.Order(s.pos, side, ply, candidates, ttMove, s.rootPVMove[ply], s.prevMove, limit)

	bestScore := -Infinity
	bestMove := board.NoMove
	flag := TTUpperBound

	for i, c := range ordered {
		if rules.Check(s.pos, side, c) != rules.Legal {
			continue
		}
		captured := rules.Captures(s.pos, side, c)
		move := board.NewMove(c, side)

		s.pos.MakeMove(move, captured)
		s.pos.Status = rules.Adjudicate(s.pos, side)

		isCapture := len(captured) > 0
		isKiller := s.orderer.IsKiller(ply, move)

		savedPrev := s.prevMove
		s.prevMove = move

		var score int
		if i >= lMin && depth >= lMin && !isCapture && !isKiller && !oppHasThreat {
			s.stats.LMRReductions++
			score = -s.negamax(depth-1-lmrR, ply+1, -alpha-1, -alpha)
			if score > alpha {
				s.stats.LMRResearches++
				score = -s.negamax(depth-1, ply+1, -beta, -alpha)
			}
		} else {
			score = -s.negamax(depth-1, ply+1, -beta, -alpha)
		}

		s.prevMove = savedPrev
		s.pos.UnmakeMove()

		if s.stopFlag.Load() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = move

			if score > alpha {
				alpha = score
				flag = TTExact
				s.stats.AlphaCuts++

				s.pv.moves[ply][ply] = move
				for j := ply + 1; j < s.pv.length[ply+1]; j++ {
					s.pv.moves[ply][j] = s.pv.moves[ply+1][j]
				}
				s.pv.length[ply] = s.pv.length[ply+1]
			}
		}

		if score >= beta {
			s.stats.BetaCuts++
			s.tt.Store(s.pos.Hash, depth, AdjustScoreToTT(score, ply), TTLowerBound, bestMove)
			if !isCapture {
				s.orderer.UpdateKillers(ply, move)
				s.orderer.UpdateHistory(side, move, depth)
				s.orderer.UpdateCountermove(side, s.prevMove, move)
			}
			return score
		}
	}

	s.tt.Store(s.pos.Hash, depth, AdjustScoreToTT(bestScore, ply), flag, bestMove)
	return bestScore
}

// evaluate scores pos from side's perspective using the cached line-shape
// evaluator plus the correction history's learned adjustment.
func (s *Searcher) evaluate(pos *board.Position, side board.Side) int {
	raw := heuristic.EvaluateCached(pos, side, s.cache)
	return raw + s.corr.Get(pos)
}

// quiescence extends the horizon by one ply for the one tactical class a
// plain static evaluation would misjudge: a capture that either reaches the
// capture-win threshold outright, or breaks an opponent five that is
// currently standing only because it is still breakable. Everywhere else
// the static evaluation already captures the position well enough.
func (s *Searcher) quiescence(side board.Side, ply int) int {
	standPat := s.evaluate(s.pos, side)

	opp := side.Other()
	oppFive := rules.HasFive(s.pos, opp)
	nearCaptureWin := s.pos.Captures[side] >= board.CaptureWinThreshold/2-1
	if !oppFive && !nearCaptureWin {
		return standPat
	}

	var fiveRuns []board.Cell
	if oppFive {
		fiveRuns = rules.FiveRuns(s.pos, opp)
	}

	best := standPat
	for c := board.Cell(0); c < board.NumCells; c++ {
		if !s.pos.IsEmpty(c) {
			continue
		}
		captured := rules.Captures(s.pos, side, c)
		if len(captured) == 0 {
			continue
		}

		reachesWin := len(captured)/2+s.pos.Captures[side] >= board.CaptureWinThreshold/2
		breaksFive := false
		for _, cc := range captured {
			for _, fc := range fiveRuns {
				if cc == fc {
					breaksFive = true
				}
			}
		}
		if !reachesWin && !breaksFive {
			continue
		}
		if rules.Check(s.pos, side, c) != rules.Legal {
			continue
		}

		s.stats.Nodes++
		s.pos.MakeMove(board.NewMove(c, side), captured)
		s.pos.Status = rules.Adjudicate(s.pos, side)

		var score int
		if s.pos.Status.Terminal() {
			score = terminalScore(s.pos.Status, side, ply+1)
		} else {
			score = -s.evaluate(s.pos, opp)
		}

		s.pos.UnmakeMove()
		if score > best {
			best = score
		}
	}
	return best
}

// hasLiveThreat is the "opponent threat" gate for null-move pruning and
// late-move reduction per spec §4.6. It reports true when some single
// placement by side would create a free three, or when two or more empty
// cells would each leave side with a run of four or more without a five.
// That covers a closed four, an open three, or two closed threes already
// on the board, and also any shape one stone short of a free three.
func hasLiveThreat(pos *board.Position, side board.Side) bool {
	closedFours := 0
	for c := board.Cell(0); c < board.NumCells; c++ {
		if !pos.IsEmpty(c) {
			continue
		}
		if rules.FreeThreeCount(simulatePlacement(pos, side, c), side, c) > 0 {
			return true
		}
		if hasClosedFour(pos, side, c) {
			closedFours++
			if closedFours >= 2 {
				return true
			}
		}
	}
	return false
}

func hasClosedFour(pos *board.Position, side board.Side, c board.Cell) bool {
	clone := simulatePlacement(pos, side, c)
	return !rules.HasFive(clone, side) && fourWithOneOpenEnd(clone, side)
}

func fourWithOneOpenEnd(pos *board.Position, side board.Side) bool {
	runs := board.RunsOfAtLeast(pos.Stones[side], 4)
	for _, bb := range runs {
		if !bb.Empty() {
			return true
		}
	}
	return false
}

// terminalScore converts a terminal game status into a depth-adjusted score
// from perspective's point of view, shorter wins and longer losses ranked
// higher per spec's mate-distance encoding.
func terminalScore(status board.GameStatus, perspective board.Side, ply int) int {
	if status == board.Draw {
		return 0
	}
	winner := status.Winner()
	if winner == perspective {
		return WinScore - ply
	}
	return -(WinScore - ply)
}

// GetPV returns the principal variation discovered by the last search.
func (s *Searcher) GetPV() []board.Move {
	pv := make([]board.Move, s.pv.length[0])
	for i := 0; i < s.pv.length[0]; i++ {
		pv[i] = s.pv.moves[0][i]
	}
	return pv
}
