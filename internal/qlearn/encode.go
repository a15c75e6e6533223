package qlearn

import (
	"github.com/vovakirdan/textdrive/internal/course"
)

const (
	LookAhead  = 3 // Rows examined above the player row
	ViewRadius = 2 // Columns examined on each side of the car

	viewWidth  = 2*ViewRadius + 1
	stateBits  = LookAhead * viewWidth
	StateCount = 1 << stateBits // 32768
)

// StateID identifies a perception window; valid ids are [0, StateCount).
type StateID int

// Valid reports whether s can index the table.
func (s StateID) Valid() bool {
	return s >= 0 && s < StateCount
}

// Grid is the read-only view of the course the encoder needs.
// *course.Simulator satisfies it.
type Grid interface {
	PlayerColumn() int
	Wall(row, col int) bool
}

// Encode packs the 3x5 window ahead of the car into a state id.
//
// Bit (r-1)*5 + (dx+2) is set when the cell r rows above the player row and
// dx columns from the car is a wall. Cells off the side of the course or above
// the window read as open. The nearest row therefore occupies the five least
// significant bits. Persisted tables are indexed by this layout.
func Encode(g Grid) StateID {
	var state StateID
	bit := 0
	col := g.PlayerColumn()

	for r := 1; r <= LookAhead; r++ {
		row := course.PlayerRow - r
		for dx := -ViewRadius; dx <= ViewRadius; dx++ {
			x := col + dx
			if row >= 0 && x >= 0 && x < course.Width && g.Wall(row, x) {
				state |= 1 << bit
			}
			bit++
		}
	}
	return state
}
