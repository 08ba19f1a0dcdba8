package board

// Side represents which player's stone occupies a cell, or whose turn it is.
type Side uint8

const (
	Black Side = iota
	White
	NoSide Side = 2
)

// Other returns the opposing side.
func (s Side) Other() Side {
	return s ^ 1
}

// String returns the side name.
func (s Side) String() string {
	switch s {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "None"
	}
}

// StoneState is the occupancy state of a single cell.
type StoneState uint8

const (
	Empty StoneState = iota
	BlackStone
	WhiteStone
)

// String returns the stone state name.
func (s StoneState) String() string {
	switch s {
	case BlackStone:
		return "Black"
	case WhiteStone:
		return "White"
	default:
		return "Empty"
	}
}
