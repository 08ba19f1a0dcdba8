package rules

import "renju-engine/internal/board"

// Adjudicate determines the game status immediately after a move by side s
// on pos, per spec's winner-adjudication precedence: capture threshold
// first (the mover's own counter, then the opponent's already-reached
// threshold), then an unbroken five for the opponent, then an unbroken five
// for the mover. Returns InProgress if none apply.
func Adjudicate(pos *board.Position, s board.Side) board.GameStatus {
	opp := s.Other()

	if pos.Captures[s] >= board.CaptureWinThreshold/2 {
		return captureWinStatus(s)
	}
	if pos.Captures[opp] >= board.CaptureWinThreshold/2 {
		return captureWinStatus(opp)
	}
	if HasFive(pos, opp) {
		return lineWinStatus(opp)
	}
	if HasFive(pos, s) && !Breakable(pos, s) {
		return lineWinStatus(s)
	}
	return board.InProgress
}

func captureWinStatus(s board.Side) board.GameStatus {
	if s == board.Black {
		return board.BlackWinByCapture
	}
	return board.WhiteWinByCapture
}

func lineWinStatus(s board.Side) board.GameStatus {
	if s == board.Black {
		return board.BlackWinByLine
	}
	return board.WhiteWinByLine
}
