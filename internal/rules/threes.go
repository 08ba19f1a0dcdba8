package rules

import "renju-engine/internal/board"

// lineState is a single cell's role when scanning a line for free-three
// patterns: own stone, blocked (opponent stone or off-board), or empty.
type lineState uint8

const (
	lsEmpty lineState = iota
	lsOwn
	lsBlocked
)

// fourAxes are the independent line directions checked for free threes:
// horizontal, vertical, and the two diagonals. Only one direction per axis
// is needed since a line is symmetric.
var fourAxes = [4]direction{
	{0, 1}, {1, 0}, {1, 1}, {1, -1},
}

// lineWindow is the half-width of the line scanned around the placed
// stone: wide enough that any empty cell whose filling would complete an
// open four is included (an open four needs up to 5 cells on either side
// of the already-three stones).
const lineWindow = 5

// scanLine extracts a 2*lineWindow+1 cell window centered on c along axis,
// from the point of view of side s (s's own stones are lsOwn, anything
// else — opponent stones or off-board — is lsBlocked).
func scanLine(pos *board.Position, s board.Side, c board.Cell, axis direction) [2*lineWindow + 1]lineState {
	var line [2*lineWindow + 1]lineState
	own := stoneOf(s)
	for i := -lineWindow; i <= lineWindow; i++ {
		r, col := c.Row()+axis.dr*i, c.Col()+axis.dc*i
		idx := i + lineWindow
		if r < 0 || r >= board.Size || col < 0 || col >= board.Size {
			line[idx] = lsBlocked
			continue
		}
		st := pos.Get(board.NewCell(r, col))
		switch {
		case st == board.Empty:
			line[idx] = lsEmpty
		case st == own:
			line[idx] = lsOwn
		default:
			line[idx] = lsBlocked
		}
	}
	return line
}

// isFreeThree reports whether line (already including the just-placed
// stone at the center index) contains a free three: some empty cell that,
// if filled by the same side, would create an open four (four consecutive
// own stones with an empty cell immediately beyond both ends).
func isFreeThree(line [2*lineWindow + 1]lineState) bool {
	n := len(line)
	for i := 0; i < n; i++ {
		if line[i] != lsEmpty {
			continue
		}
		sim := line
		sim[i] = lsOwn
		if hasOpenFourThrough(sim, i) {
			return true
		}
	}
	return false
}

// hasOpenFourThrough reports whether sim contains a run of exactly 4 own
// stones through index i with an empty cell immediately beyond both ends.
func hasOpenFourThrough(sim [2*lineWindow + 1]lineState, i int) bool {
	n := len(sim)
	for start := i - 3; start <= i; start++ {
		end := start + 3
		if start < 0 || end >= n {
			continue
		}
		allOwn := true
		for k := start; k <= end; k++ {
			if sim[k] != lsOwn {
				allOwn = false
				break
			}
		}
		if !allOwn {
			continue
		}
		if start-1 >= 0 && sim[start-1] == lsEmpty && end+1 < n && sim[end+1] == lsEmpty {
			return true
		}
	}
	return false
}

// FreeThreeCount returns how many of the four axes the placement of s's
// stone at c creates a free (open) three on. pos must already have the
// stone placed at c.
func FreeThreeCount(pos *board.Position, s board.Side, c board.Cell) int {
	count := 0
	for _, axis := range fourAxes {
		line := scanLine(pos, s, c, axis)
		if isFreeThree(line) {
			count++
		}
	}
	return count
}

// IsDoubleThree reports whether placing s's stone at c (already applied to
// pos) creates a free three on two or more axes.
func IsDoubleThree(pos *board.Position, s board.Side, c board.Cell) bool {
	return FreeThreeCount(pos, s, c) >= 2
}
