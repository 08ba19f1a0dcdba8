package engine

import (
	"time"

	"renju-engine/internal/board"
)

// SearchInfo is the payload behind engine_debug_info, collapsing the
// teacher's SearchInfo plus its pruning counters into one struct.
type SearchInfo struct {
	ThinkingTime time.Duration
	SearchDepth  int
	Nodes        uint64
	NPS          uint64
	BestMove     board.Move
	BestScore    int
	PV           []board.Move
	TopMoves     []board.Move

	AlphaCuts     uint64
	BetaCuts      uint64
	NullCuts      uint64
	LMRReductions uint64
	LMRResearches uint64

	TTHitRate float64
	TTFillPct int
}

// Difficulty is a named search-strength preset, adapted from the teacher's
// Easy/Medium/Hard ladder.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// DifficultySettings maps a difficulty to the depth/time budget engine_set_difficulty installs.
var DifficultySettings = map[Difficulty]struct {
	Depth      int
	TimeLimitS float64
}{
	Easy:   {Depth: 4, TimeLimitS: 0.5},
	Medium: {Depth: 8, TimeLimitS: 2},
	Hard:   {Depth: 20, TimeLimitS: 5},
}

// Engine is the top-level search API named in the external-interface
// contract: engine_new, engine_set_difficulty, engine_get_move,
// engine_suggest_move, engine_debug_info. Adapted from the teacher's Engine,
// dropping Lazy-SMP workers, book, tablebase, and NNUE (single-threaded
// fixed-depth search over a 19x19 custody-capture board has no legal-move
// database or neural evaluator to load) and keeping the transposition
// table, shared move-ordering state, and difficulty presets.
type Engine struct {
	tt       *TranspositionTable
	searcher *Searcher

	depth      int
	timeLimitS float64

	lastInfo SearchInfo

	OnInfo func(SearchInfo)
}

// NewEngine creates an engine with a transposition table sized in megabytes.
func NewEngine(ttSizeMB int) *Engine {
	tt := NewTranspositionTable(ttSizeMB)
	e := &Engine{
		tt:       tt,
		searcher: NewSearcher(tt),
	}
	e.SetDifficulty(Medium)
	return e
}

// SetDifficulty installs a depth/time-limit preset.
func (e *Engine) SetDifficulty(d Difficulty) {
	settings := DifficultySettings[d]
	e.depth = settings.Depth
	e.timeLimitS = settings.TimeLimitS
}

// SetLimits overrides the depth and per-move time budget directly.
func (e *Engine) SetLimits(depth int, timeLimitS float64) {
	e.depth = depth
	e.timeLimitS = timeLimitS
}

// GetMove searches pos to the engine's configured depth/time budget and
// returns the chosen move. It always returns a legal move when one exists;
// NoCell signals a saturated board with no legal move.
func (e *Engine) GetMove(pos *board.Position, timeLimitS float64) (board.Cell, bool) {
	return e.search(pos, timeLimitS, e.depth)
}

// SuggestMove runs the same search with a shorter default budget, matching
// engine_suggest_move's "same contract, shorter default budget".
func (e *Engine) SuggestMove(pos *board.Position, timeLimitS float64) (board.Cell, bool) {
	budget := timeLimitS
	if budget <= 0 {
		budget = e.timeLimitS / 2
	}
	return e.search(pos, budget, e.depth)
}

func (e *Engine) search(pos *board.Position, timeLimitS float64, maxDepth int) (board.Cell, bool) {
	if pos.Status.Terminal() {
		return board.NoCell, false
	}

	budget := timeLimitS
	if budget <= 0 {
		budget = e.timeLimitS
	}

	limits := Limits{TimeLimit: time.Duration(budget * float64(time.Second)), Depth: maxDepth}
	start := time.Now()
	result := e.searcher.IterativeDeepening(pos, maxDepth, minDepthFor(maxDepth), limits)
	elapsed := time.Since(start)

	if result.Best == board.NoMove {
		return board.NoCell, false
	}

	stats := e.searcher.Stats()
	nps := uint64(0)
	if elapsed > 0 {
		nps = uint64(float64(stats.Nodes) / elapsed.Seconds())
	}
	e.lastInfo = SearchInfo{
		ThinkingTime:  elapsed,
		SearchDepth:   result.Depth,
		Nodes:         stats.Nodes,
		NPS:           nps,
		BestMove:      result.Best,
		BestScore:     result.Score,
		PV:            result.PV,
		AlphaCuts:     stats.AlphaCuts,
		BetaCuts:      stats.BetaCuts,
		NullCuts:      stats.NullCuts,
		LMRReductions: stats.LMRReductions,
		LMRResearches: stats.LMRResearches,
		TTHitRate:     e.tt.HitRate(),
		TTFillPct:     e.tt.HashFull(),
	}
	if e.OnInfo != nil {
		e.OnInfo(e.lastInfo)
	}

	e.searcher.orderer.AgeHistory()

	return result.Best.Cell(), true
}

// minDepthFor is the hard floor guaranteeing at least one meaningful depth
// completes before the driver yields to time, per spec's min_depth.
func minDepthFor(maxDepth int) int {
	if maxDepth < 2 {
		return maxDepth
	}
	return 2
}

// DebugInfo returns the last search's full diagnostic payload.
func (e *Engine) DebugInfo() SearchInfo {
	return e.lastInfo
}

// Stop aborts an in-flight search at the next node boundary.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// Clear resets the transposition table and move-ordering memory.
func (e *Engine) Clear() {
	e.tt.Clear()
	e.searcher = NewSearcher(e.tt)
}
