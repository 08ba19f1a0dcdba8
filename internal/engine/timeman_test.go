package engine

import (
	"testing"
	"time"
)

func TestInitInfiniteUsesHourBudgets(t *testing.T) {
	tm := NewTimeManager()
	tm.Init(Limits{Infinite: true}, 0)
	if tm.OptimumTime() != time.Hour || tm.MaximumTime() != time.Hour {
		t.Errorf("expected hour-long budgets for an infinite search, got optimum=%v maximum=%v",
			tm.OptimumTime(), tm.MaximumTime())
	}
}

func TestInitEarlyPlyShrinksOptimum(t *testing.T) {
	tm := NewTimeManager()
	tm.Init(Limits{TimeLimit: time.Second}, 0)
	if tm.MaximumTime() != time.Second {
		t.Errorf("expected maximum to equal the full budget, got %v", tm.MaximumTime())
	}
	want := time.Second * 85 / 100
	if tm.OptimumTime() != want {
		t.Errorf("expected optimum %v for an early ply, got %v", want, tm.OptimumTime())
	}
}

func TestInitLatePlyUsesFullOptimum(t *testing.T) {
	tm := NewTimeManager()
	tm.Init(Limits{TimeLimit: time.Second}, 20)
	if tm.OptimumTime() != time.Second {
		t.Errorf("expected optimum to equal the full budget past ply 8, got %v", tm.OptimumTime())
	}
}

func TestInitFloorsTinyBudgets(t *testing.T) {
	tm := NewTimeManager()
	tm.Init(Limits{TimeLimit: time.Millisecond}, 20)
	if tm.OptimumTime() < 10*time.Millisecond {
		t.Errorf("expected optimum to be floored at 10ms, got %v", tm.OptimumTime())
	}
	if tm.MaximumTime() < 50*time.Millisecond {
		t.Errorf("expected maximum to be floored at 50ms, got %v", tm.MaximumTime())
	}
}

func TestShouldStopAndPastOptimumReflectElapsedTime(t *testing.T) {
	tm := NewTimeManager()
	tm.Init(Limits{TimeLimit: 20 * time.Millisecond}, 20)
	if tm.ShouldStop() || tm.PastOptimum() {
		t.Error("expected neither flag to be set immediately after Init")
	}
	// The 20ms budget leaves the optimum at 20ms, but the maximum is floored
	// at 50ms, so sleep past both.
	time.Sleep(60 * time.Millisecond)
	if !tm.PastOptimum() {
		t.Error("expected PastOptimum to be true once the optimum elapses")
	}
	if !tm.ShouldStop() {
		t.Error("expected ShouldStop to be true once the maximum elapses")
	}
}

func TestAdjustForStabilityShrinksOptimum(t *testing.T) {
	tm := NewTimeManager()
	tm.Init(Limits{TimeLimit: time.Second}, 20)
	base := tm.OptimumTime()

	tm.AdjustForStability(6)
	if want := base * 40 / 100; tm.OptimumTime() != want {
		t.Errorf("expected stability>=6 to shrink optimum to %v, got %v", want, tm.OptimumTime())
	}
}

func TestAdjustForInstabilityGrowsOptimumCappedAtMaximum(t *testing.T) {
	tm := NewTimeManager()
	tm.Init(Limits{TimeLimit: time.Second}, 20)

	tm.AdjustForInstability(4)
	if tm.OptimumTime() != tm.MaximumTime() {
		t.Errorf("expected a 200%% growth from a full optimum to be capped at the maximum, got %v vs max %v",
			tm.OptimumTime(), tm.MaximumTime())
	}
}
