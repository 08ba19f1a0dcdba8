package rules

import (
	"testing"

	"renju-engine/internal/board"
)

// Scenario 3: five-in-a-row win, unbreakable.
func TestUnbreakableFiveWins(t *testing.T) {
	pos := board.NewPosition()
	for _, c := range []int{5, 6, 7, 8, 9} {
		setStone(pos, board.Black, 5, c)
	}
	if !HasFive(pos, board.Black) {
		t.Fatalf("expected HasFive true")
	}
	if Breakable(pos, board.Black) {
		t.Fatalf("expected five to be unbreakable with no opponent stones nearby")
	}
	status := Adjudicate(pos, board.Black)
	if status != board.BlackWinByLine {
		t.Fatalf("Adjudicate = %v, want BlackWinByLine", status)
	}
}

// Scenario 4: breakable five denies the win.
func TestBreakableFiveDeniesWin(t *testing.T) {
	pos := board.NewPosition()
	for _, c := range []int{5, 6, 7, 8, 9} {
		setStone(pos, board.Black, 5, c)
	}
	setStone(pos, board.White, 4, 5)
	setStone(pos, board.Black, 6, 5)

	if !Breakable(pos, board.Black) {
		t.Fatalf("expected the five to be breakable via White's capturing reply at (7,5)")
	}
	status := Adjudicate(pos, board.Black)
	if status == board.BlackWinByLine {
		t.Fatalf("expected breakable five to not yet award the win")
	}
}

// Scenario 5: capture win threshold.
func TestCaptureWinThreshold(t *testing.T) {
	pos := board.NewPosition()
	pos.Captures[board.White] = 4 // 8 stones captured
	setStone(pos, board.Black, 5, 6)
	setStone(pos, board.Black, 5, 7)
	setStone(pos, board.White, 5, 5)

	c := board.NewCell(5, 8)
	captured := Captures(pos, board.White, c)
	if len(captured) != 2 {
		t.Fatalf("expected a capturing move, got %v", captured)
	}
	pos.MakeMove(board.NewMove(c, board.White), captured)
	status := Adjudicate(pos, board.White)
	if status != board.WhiteWinByCapture {
		t.Fatalf("Adjudicate = %v, want WhiteWinByCapture", status)
	}
}
