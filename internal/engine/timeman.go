package engine

import "time"

// Limits describes a single move's search budget, adapted from the
// teacher's UCILimits: Gomoku has no increment, moves-to-go, or ponder
// concept, so this keeps only what spec.md §4.6's time control needs.
type Limits struct {
	TimeLimit time.Duration // hard wall-clock budget for this move
	Depth     int           // 0 = unlimited (bounded by MaxPly)
	Infinite  bool
}

// TimeManager allocates and tracks a search's time budget, adapted from
// internal/engine/timeman.go's TimeManager.
type TimeManager struct {
	optimumTime time.Duration
	maximumTime time.Duration
	startTime   time.Time
}

// NewTimeManager creates an empty time manager.
func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Init starts the clock and computes the optimum/maximum budget for ply
// (the current game ply, used to bias early moves toward using less time).
func (tm *TimeManager) Init(limits Limits, ply int) {
	tm.startTime = time.Now()

	if limits.Infinite {
		tm.optimumTime = time.Hour
		tm.maximumTime = time.Hour
		return
	}

	budget := limits.TimeLimit
	if budget <= 0 {
		budget = time.Second
	}

	tm.optimumTime = budget
	if ply < 8 {
		tm.optimumTime = budget * 85 / 100
	}
	tm.maximumTime = budget

	if tm.optimumTime < 10*time.Millisecond {
		tm.optimumTime = 10 * time.Millisecond
	}
	if tm.maximumTime < 50*time.Millisecond {
		tm.maximumTime = 50 * time.Millisecond
	}
}

// Elapsed returns the time elapsed since search started.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// OptimumTime returns the target time for this move.
func (tm *TimeManager) OptimumTime() time.Duration {
	return tm.optimumTime
}

// MaximumTime returns the hard cap for this move.
func (tm *TimeManager) MaximumTime() time.Duration {
	return tm.maximumTime
}

// ShouldStop reports whether the hard maximum has been reached.
func (tm *TimeManager) ShouldStop() bool {
	return tm.Elapsed() >= tm.maximumTime
}

// PastOptimum reports whether the soft optimum has been reached.
func (tm *TimeManager) PastOptimum() bool {
	return tm.Elapsed() >= tm.optimumTime
}

// AdjustForStability shrinks the optimum once the best move has held for
// several depths in a row, the supplemented soft early-exit from
// SPEC_FULL.md, grounded on the teacher's AdjustForStability.
func (tm *TimeManager) AdjustForStability(stability int) {
	switch {
	case stability >= 6:
		tm.optimumTime = tm.optimumTime * 40 / 100
	case stability >= 4:
		tm.optimumTime = tm.optimumTime * 60 / 100
	case stability >= 2:
		tm.optimumTime = tm.optimumTime * 80 / 100
	}
}

// AdjustForInstability grows the optimum (capped at the maximum) when the
// best move keeps flipping between iterations.
func (tm *TimeManager) AdjustForInstability(changes int) {
	switch {
	case changes >= 4:
		tm.optimumTime = tm.optimumTime * 200 / 100
	case changes >= 2:
		tm.optimumTime = tm.optimumTime * 150 / 100
	}
	if tm.optimumTime > tm.maximumTime {
		tm.optimumTime = tm.maximumTime
	}
}
