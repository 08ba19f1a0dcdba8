package engine

import (
	"testing"

	"renju-engine/internal/board"
)

func TestGetOnFreshTableReturnsZero(t *testing.T) {
	ch := NewCorrectionHistory()
	pos := board.NewPosition()
	if got := ch.Get(pos); got != 0 {
		t.Errorf("expected zero correction on a fresh table, got %d", got)
	}
}

func TestUpdateIgnoresShallowDepth(t *testing.T) {
	ch := NewCorrectionHistory()
	pos := board.NewPosition()
	ch.Update(pos, 1000, 0, 0)
	if got := ch.Get(pos); got != 0 {
		t.Errorf("expected depth < 1 to leave the table untouched, got %d", got)
	}
}

func TestUpdateMovesTowardPositiveError(t *testing.T) {
	ch := NewCorrectionHistory()
	pos := board.NewPosition()
	ch.Update(pos, 1000, 0, 8)
	got := ch.Get(pos)
	if got <= 0 {
		t.Errorf("expected a positive correction after the search found a higher score than static eval, got %d", got)
	}
}

func TestUpdateMovesTowardNegativeError(t *testing.T) {
	ch := NewCorrectionHistory()
	pos := board.NewPosition()
	ch.Update(pos, -1000, 0, 8)
	got := ch.Get(pos)
	if got >= 0 {
		t.Errorf("expected a negative correction after the search found a lower score than static eval, got %d", got)
	}
}

func TestUpdateConvergesTowardClampedBonus(t *testing.T) {
	ch := NewCorrectionHistory()
	pos := board.NewPosition()
	for i := 0; i < 500; i++ {
		ch.Update(pos, 100000, 0, 8)
	}
	// The integer step (256-old)/16 rounds to zero once old reaches 241, so
	// the entry settles 15 short of the clamped bonus.
	if got := ch.Get(pos); got != 241 {
		t.Errorf("expected repeated large-error updates to settle at 241 below the clamped bonus 256, got %d", got)
	}
}

func TestClearZeroesAllEntries(t *testing.T) {
	ch := NewCorrectionHistory()
	pos := board.NewPosition()
	ch.Update(pos, 1000, 0, 8)
	ch.Clear()
	if got := ch.Get(pos); got != 0 {
		t.Errorf("expected Clear to zero the correction table, got %d", got)
	}
}

func TestAgeHalvesEntries(t *testing.T) {
	ch := NewCorrectionHistory()
	pos := board.NewPosition()
	for i := 0; i < 500; i++ {
		ch.Update(pos, 100000, 0, 8)
	}
	before := ch.Get(pos)
	ch.Age()
	after := ch.Get(pos)
	if after != before/2 {
		t.Errorf("expected Age to halve the correction, got %d want %d", after, before/2)
	}
}
