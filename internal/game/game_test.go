package game

import (
	"testing"

	"renju-engine/internal/board"
)

func TestStandardOpeningHasNoPredicate(t *testing.T) {
	g := NewGame(PvP, Standard)
	if !g.MakeMove(0, 0) {
		t.Fatalf("expected a corner move to be legal under Standard rules")
	}
}

func TestProOpeningFirstMoveMustBeCenter(t *testing.T) {
	g := NewGame(PvP, Pro)
	if g.MakeMove(0, 0) {
		t.Fatalf("expected off-center first move to be rejected under Pro rules")
	}
	center := board.Size / 2
	if !g.MakeMove(center, center) {
		t.Fatalf("expected center first move to be accepted under Pro rules")
	}
}

func TestProOpeningThirdMoveMustBeFarFromCenter(t *testing.T) {
	g := NewGame(PvP, Pro)
	center := board.Size / 2
	g.MakeMove(center, center)       // Black
	g.MakeMove(center+5, center+5)   // White, unconstrained
	if g.MakeMove(center+1, center) { // distance 1, too close
		t.Fatalf("expected move within distance 2 of center to be rejected")
	}
	if !g.MakeMove(center+3, center) { // distance 3, allowed
		t.Fatalf("expected move at distance >= 3 from center to be accepted")
	}
}

func TestSwapOpeningTransitionsToSwapChoice(t *testing.T) {
	g := NewGame(PvP, Swap)
	g.MakeMove(9, 9)
	g.MakeMove(9, 10)
	g.MakeMove(9, 11)
	if g.phase != PhaseSwapChoice {
		t.Fatalf("expected phase SwapChoice after 3 placements, got %v", g.phase)
	}
	if g.MakeMove(0, 0) {
		t.Fatalf("expected MakeMove to be rejected while awaiting a color choice")
	}
	if !g.ChooseColor(board.White) {
		t.Fatalf("expected ChooseColor to succeed during SwapChoice")
	}
	if g.phase != PhaseNormal {
		t.Fatalf("expected phase Normal after ChooseColor, got %v", g.phase)
	}
}

func TestSwap2OptionThreePlacesTwoMoreThenFinalChoice(t *testing.T) {
	g := NewGame(PvP, Swap2)
	g.MakeMove(9, 9)
	g.MakeMove(9, 10)
	g.MakeMove(9, 11)
	if g.phase != PhaseSwap2Choice {
		t.Fatalf("expected phase Swap2Choice after 3 placements, got %v", g.phase)
	}
	if !g.ChooseSwap2Option(3) {
		t.Fatalf("expected option 3 to be accepted during Swap2Choice")
	}
	if g.phase != PhaseSwap2Extra {
		t.Fatalf("expected phase Swap2Extra after option 3, got %v", g.phase)
	}
	if !g.MakeMove(0, 0) {
		t.Fatalf("expected the 4th placement to be accepted during Swap2Extra")
	}
	if !g.MakeMove(0, 1) {
		t.Fatalf("expected the 5th placement to be accepted during Swap2Extra")
	}
	if g.phase != PhaseSwap2Final {
		t.Fatalf("expected phase Swap2Final after 5 placements, got %v", g.phase)
	}
	if !g.ChooseColor(board.Black) {
		t.Fatalf("expected ChooseColor to succeed during Swap2Final")
	}
	if g.phase != PhaseNormal {
		t.Fatalf("expected phase Normal after the final choice, got %v", g.phase)
	}
}

func TestSwap2OptionOneOrTwoGoesDirectlyToNormal(t *testing.T) {
	g := NewGame(PvP, Swap2)
	g.MakeMove(9, 9)
	g.MakeMove(9, 10)
	g.MakeMove(9, 11)
	if !g.ChooseSwap2Option(1) {
		t.Fatalf("expected option 1 to be accepted during Swap2Choice")
	}
	if g.phase != PhaseNormal {
		t.Fatalf("expected phase Normal after option 1, got %v", g.phase)
	}
}

func TestMakeMoveThenUndoMoveRestoresState(t *testing.T) {
	g := NewGame(PvP, Standard)
	g.MakeMove(9, 9)
	before := g.GetGameInfo()
	g.MakeMove(9, 10)
	if !g.UndoMove() {
		t.Fatalf("expected UndoMove to succeed")
	}
	after := g.GetGameInfo()
	if after.MoveCount != before.MoveCount || after.Turn != before.Turn {
		t.Fatalf("expected UndoMove to restore move count and turn, got %+v want %+v", after, before)
	}
}

func TestGetValidMovesExcludesOccupiedAndRespectsPhase(t *testing.T) {
	g := NewGame(PvP, Swap)
	g.MakeMove(9, 9)
	g.MakeMove(9, 10)
	g.MakeMove(9, 11)
	if moves := g.GetValidMoves(); moves != nil {
		t.Fatalf("expected no valid moves while awaiting SwapChoice, got %d", len(moves))
	}
	g.ChooseColor(board.White)
	moves := g.GetValidMoves()
	occupied := board.NewCell(9, 9)
	for _, c := range moves {
		if c == occupied {
			t.Fatalf("expected occupied cell to be excluded from valid moves")
		}
	}
}
