package heuristic

import "renju-engine/internal/board"

// captureWeight is the per-pair value of the capture-balance term.
const captureWeight = 150

// nearWinPairs is the pair count (4 pairs = 8 stones) at which the
// near-threshold bonus/danger kicks in, one pair short of the 5-pair win.
const nearWinPairs = 4

// nearWinBonus is applied symmetrically: a bonus when s is near the
// capture win threshold, an equal-magnitude danger penalty when the
// opponent is. See DESIGN.md's Open Question decision on bonus symmetry.
const nearWinBonus = 3000

// centerWeight scales the center-distance term; stones closer to the
// board's center are worth more since they participate in more potential
// lines.
const centerWeight = 4

// Evaluate returns a static score for pos from side s's perspective:
// positive favors s. Combines line-shape scoring, the capture-balance
// term and a center-distance term.
func Evaluate(pos *board.Position, s board.Side) int {
	opp := s.Other()

	score := LineScore(pos, s) - LineScore(pos, opp)
	score += captureTerm(pos, s, opp)
	score += centerTerm(pos, s) - centerTerm(pos, opp)
	return score
}

func captureTerm(pos *board.Position, s, opp board.Side) int {
	score := (pos.Captures[s] - pos.Captures[opp]) * captureWeight
	if pos.Captures[s] >= nearWinPairs {
		score += nearWinBonus
	}
	if pos.Captures[opp] >= nearWinPairs {
		score -= nearWinBonus
	}
	return score
}

func centerTerm(pos *board.Position, s board.Side) int {
	center := board.NewCell(board.Size/2, board.Size/2)
	total := 0
	for _, c := range pos.Stones[s].Cells() {
		d := board.ChebyshevDistance(c, center)
		total += (board.Size/2 - d) * centerWeight
	}
	return total
}
