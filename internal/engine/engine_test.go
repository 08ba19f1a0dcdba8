package engine

import (
	"testing"

	"renju-engine/internal/board"
	"renju-engine/internal/rules"
)

func TestGetMoveReturnsLegalMoveFromStartPosition(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(16)
	eng.SetDifficulty(Easy)

	c, ok := eng.GetMove(pos, 0.5)
	if !ok {
		t.Fatal("GetMove returned no move for the starting position")
	}
	if rules.Check(pos, pos.ToMove, c) != rules.Legal {
		t.Errorf("GetMove returned an illegal cell %s", c)
	}
}

func TestGetMoveOnTerminalPositionReturnsFalse(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(16)
	// Five in a row for Black along a row, with no capture pairs exposed.
	cells := []board.Cell{
		board.NewCell(9, 9), board.NewCell(9, 10),
		board.NewCell(9, 11), board.NewCell(9, 12),
	}
	for _, c := range cells {
		pos.MakeMove(board.NewMove(c, board.Black), nil)
		pos.MakeMove(board.NewMove(board.NewCell(0, c.Col()), board.White), nil)
	}
	pos.MakeMove(board.NewMove(board.NewCell(9, 13), board.Black), nil)
	pos.Status = rules.Adjudicate(pos, board.Black)
	if !pos.Status.Terminal() {
		t.Fatal("setup failed to reach a terminal position")
	}

	if _, ok := eng.GetMove(pos, 0.5); ok {
		t.Error("expected GetMove to return false for a terminal position")
	}
}

func TestSuggestMoveDoesNotMutatePosition(t *testing.T) {
	pos := board.NewPosition()
	pos.MakeMove(board.NewMove(board.NewCell(9, 9), board.Black), nil)
	before := pos.Ply()

	eng := NewEngine(16)
	eng.SetDifficulty(Easy)
	if _, ok := eng.SuggestMove(pos, 0.3); !ok {
		t.Fatal("SuggestMove returned no move")
	}
	if pos.Ply() != before {
		t.Errorf("SuggestMove mutated the position: ply %d -> %d", before, pos.Ply())
	}
}

func TestSetDifficultyChangesDepthAndTimeLimit(t *testing.T) {
	eng := NewEngine(16)
	eng.SetDifficulty(Hard)
	if eng.depth != DifficultySettings[Hard].Depth {
		t.Errorf("expected Hard depth %d, got %d", DifficultySettings[Hard].Depth, eng.depth)
	}
}

func TestDebugInfoPopulatedAfterSearch(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(16)
	eng.SetDifficulty(Easy)

	if _, ok := eng.GetMove(pos, 0.5); !ok {
		t.Fatal("GetMove returned no move")
	}
	info := eng.DebugInfo()
	if info.Nodes == 0 {
		t.Error("expected DebugInfo to report a nonzero node count")
	}
	if info.BestMove == board.NoMove {
		t.Error("expected DebugInfo to report a best move")
	}
}

func TestClearResetsTranspositionTable(t *testing.T) {
	eng := NewEngine(1)
	eng.tt.Store(0x1234, 4, 100, TTExact, board.NewMove(board.NewCell(9, 9), board.Black))
	if _, found := eng.tt.Probe(0x1234); !found {
		t.Fatal("expected the stored entry to be found before Clear")
	}
	eng.Clear()
	if _, found := eng.tt.Probe(0x1234); found {
		t.Error("expected Clear to empty the transposition table")
	}
}
