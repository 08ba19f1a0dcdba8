package engine

import (
	"testing"
	"time"

	"renju-engine/internal/board"
	"renju-engine/internal/rules"
)

func TestTerminalScoreDrawIsZero(t *testing.T) {
	if got := terminalScore(board.Draw, board.Black, 4); got != 0 {
		t.Errorf("expected a draw to score 0, got %d", got)
	}
}

func TestTerminalScorePrefersShorterWins(t *testing.T) {
	shallow := terminalScore(board.BlackWinByLine, board.Black, 2)
	deep := terminalScore(board.BlackWinByLine, board.Black, 8)
	if shallow <= deep {
		t.Errorf("expected a win at ply 2 to score higher than a win at ply 8, got %d vs %d", shallow, deep)
	}
}

func TestTerminalScoreLossIsNegative(t *testing.T) {
	if got := terminalScore(board.BlackWinByLine, board.White, 4); got >= 0 {
		t.Errorf("expected a loss to score negative, got %d", got)
	}
}

func TestIterativeDeepeningReturnsLegalMoveFromEmptyBoard(t *testing.T) {
	pos := board.NewPosition()
	s := NewSearcher(NewTranspositionTable(8))

	result := s.IterativeDeepening(pos, 4, 2, Limits{TimeLimit: 500 * time.Millisecond})
	if result.Best == board.NoMove {
		t.Fatal("expected a best move from the empty board")
	}
	if rules.Check(pos, pos.ToMove, result.Best.Cell()) != rules.Legal {
		t.Errorf("search returned an illegal move %s", result.Best.Cell())
	}
}

func TestIterativeDeepeningTakesImmediateWinWhenAvailable(t *testing.T) {
	pos := board.NewPosition()
	// Black has an open four ready to complete at (9,13); White has unrelated stones.
	blackRun := []board.Cell{
		board.NewCell(9, 9), board.NewCell(9, 10), board.NewCell(9, 11), board.NewCell(9, 12),
	}
	for i, c := range blackRun {
		pos.MakeMove(board.NewMove(c, board.Black), nil)
		pos.MakeMove(board.NewMove(board.NewCell(15, i), board.White), nil)
	}
	pos.ToMove = board.Black

	s := NewSearcher(NewTranspositionTable(8))
	result := s.IterativeDeepening(pos, 6, 2, Limits{TimeLimit: 500 * time.Millisecond})

	want := board.NewCell(9, 13)
	if result.Best.Cell() != want && result.Best.Cell() != board.NewCell(9, 8) {
		t.Errorf("expected the search to complete the open four at %s or %s, got %s",
			want, board.NewCell(9, 8), result.Best.Cell())
	}
	if !result.Forced {
		t.Error("expected the forced-move prelude to short-circuit an immediate win")
	}
}

func TestForcedMoveBlocksOpponentImmediateFive(t *testing.T) {
	pos := board.NewPosition()
	whiteRun := []board.Cell{
		board.NewCell(9, 9), board.NewCell(9, 10), board.NewCell(9, 11), board.NewCell(9, 12),
	}
	for i, c := range whiteRun {
		pos.MakeMove(board.NewMove(c, board.White), nil)
		if i < len(whiteRun)-1 {
			pos.MakeMove(board.NewMove(board.NewCell(15, i), board.Black), nil)
		}
	}
	pos.ToMove = board.Black

	s := NewSearcher(NewTranspositionTable(8))
	m, ok := s.forcedMove(pos, board.Black)
	if !ok {
		t.Fatal("expected a forced block of the opponent's open four")
	}
	if m.Cell() != board.NewCell(9, 13) && m.Cell() != board.NewCell(9, 8) {
		t.Errorf("expected the forced move to block the five at %s or %s, got %s",
			board.NewCell(9, 13), board.NewCell(9, 8), m.Cell())
	}
}

func TestGetPVMatchesIterativeDeepeningBestMove(t *testing.T) {
	pos := board.NewPosition()
	s := NewSearcher(NewTranspositionTable(8))

	result := s.IterativeDeepening(pos, 3, 2, Limits{TimeLimit: 500 * time.Millisecond})
	if result.Forced {
		t.Skip("forced-move prelude short-circuited before a PV was built")
	}
	pv := s.GetPV()
	if len(pv) == 0 || pv[0] != result.Best {
		t.Errorf("expected GetPV()[0] to match the search's best move, got %v vs %s", pv, result.Best)
	}
}

func TestQuiescenceReturnsStandPatWithNoDecisiveCapture(t *testing.T) {
	pos := board.NewPosition()
	pos.MakeMove(board.NewMove(board.NewCell(9, 9), board.Black), nil)

	s := NewSearcher(NewTranspositionTable(1))
	s.pos = pos

	want := s.evaluate(pos, board.White)
	if got := s.quiescence(board.White, 3); got != want {
		t.Errorf("expected quiescence to fall back to the static eval, got %d want %d", got, want)
	}
}

func TestQuiescenceFindsCaptureReachingWinThreshold(t *testing.T) {
	pos := board.NewPosition()
	pos.MakeMove(board.NewMove(board.NewCell(9, 5), board.Black), nil)
	pos.MakeMove(board.NewMove(board.NewCell(9, 6), board.White), nil)
	pos.MakeMove(board.NewMove(board.NewCell(9, 7), board.White), nil)
	pos.Captures[board.Black] = board.CaptureWinThreshold/2 - 1

	s := NewSearcher(NewTranspositionTable(1))
	s.pos = pos

	standPat := s.evaluate(pos, board.Black)
	got := s.quiescence(board.Black, 0)
	if got <= standPat {
		t.Errorf("expected the decisive capture at (9,8) to score above the static eval %d, got %d", standPat, got)
	}
	if got < WinScore-10 {
		t.Errorf("expected a capture-win score near WinScore, got %d", got)
	}
}

func TestNewSearchClearsStopFlagFromPriorSearch(t *testing.T) {
	pos := board.NewPosition()
	s := NewSearcher(NewTranspositionTable(8))
	s.Stop()

	result := s.IterativeDeepening(pos, 4, 2, Limits{TimeLimit: 500 * time.Millisecond})
	if result.Best == board.NoMove {
		t.Error("expected a fresh search to clear a stop flag left over from a prior call")
	}
}
