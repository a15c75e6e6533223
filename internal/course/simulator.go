// Package course simulates the scrolling lane-avoidance course: a fixed
// window of rows that slides toward the car one row per tick, with new rows
// produced by a bounded random walk over a table of wall patterns.
package course

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/textdrive/internal/core"
)

const (
	Width        = 9         // Cells per row
	Depth        = 15        // Rows in the visible window
	PlayerRow    = Depth - 2 // Row the car drives on
	Center       = Width / 2 // Starting column
	PatternCount = 12        // Entries in the pattern table
)

// Cell is a single course position.
type Cell uint8

const (
	Open Cell = iota
	Wall
)

// Row is one horizontal slice of the course.
type Row [Width]Cell

// String renders the row with '#' for walls and spaces for open cells.
func (r Row) String() string {
	var sb strings.Builder
	sb.Grow(Width)
	for _, c := range r {
		if c == Wall {
			sb.WriteByte('#')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// Simulator owns the course window and the car position.
// Row 0 is the top (farthest ahead); row Depth-1 is the bottom.
type Simulator struct {
	rows         [Depth]Row
	rng          core.Rand
	playerColumn int
	distance     int
	patternIndex int
	filled       int
	over         bool
}

// New creates a simulator in the reset state drawing from rng.
func New(rng core.Rand) *Simulator {
	s := &Simulator{rng: rng}
	s.Reset()
	return s
}

// Reset clears the course and puts the car back in the center lane.
func (s *Simulator) Reset() {
	s.rows = [Depth]Row{}
	s.playerColumn = Center
	s.distance = 0
	s.patternIndex = 0
	s.filled = 0
	s.over = false
}

// Advance scrolls the course one row toward the car and generates the new top row.
func (s *Simulator) Advance() {
	copy(s.rows[1:], s.rows[:Depth-1])

	change := s.rng.Intn(3) - 1
	s.patternIndex = (s.patternIndex + change + PatternCount) % PatternCount
	s.rows[0] = patternRows[s.patternIndex]

	if s.filled < Depth {
		s.filled++
	}
	s.distance++
}

// Move shifts the car one column left (-1) or right (+1).
// It reports whether the move was applied; moving into the edge is a no-op.
// Any other direction is a programming error and panics.
func (s *Simulator) Move(direction int) bool {
	if direction != -1 && direction != 1 {
		panic(fmt.Sprintf("course: invalid direction %d", direction))
	}
	next := s.playerColumn + direction
	if next < 0 || next >= Width {
		return false
	}
	s.playerColumn = next
	return true
}

// HasCollision reports whether the car sits on a wall. Until the window has
// filled down to the player row the car cannot collide.
func (s *Simulator) HasCollision() bool {
	return s.filled > PlayerRow && s.rows[PlayerRow][s.playerColumn] == Wall
}

// MarkOver sets the terminal flag. Only Reset clears it.
func (s *Simulator) MarkOver() {
	s.over = true
}

// Distance returns the number of rows scrolled since the last reset.
func (s *Simulator) Distance() int { return s.distance }

// PlayerColumn returns the car's column in [0, Width).
func (s *Simulator) PlayerColumn() int { return s.playerColumn }

// PatternIndex returns the index of the most recently generated pattern.
func (s *Simulator) PatternIndex() int { return s.patternIndex }

// Filled returns how many rows have been generated, saturating at Depth.
func (s *Simulator) Filled() int { return s.filled }

// IsOver reports whether the run has ended.
func (s *Simulator) IsOver() bool { return s.over }

// Cell returns the cell at (row, col), or Open when outside the window.
func (s *Simulator) Cell(row, col int) Cell {
	if row < 0 || row >= Depth || col < 0 || col >= Width {
		return Open
	}
	return s.rows[row][col]
}

// Wall reports whether (row, col) is a wall. Off-grid positions are not walls.
func (s *Simulator) Wall(row, col int) bool {
	return s.Cell(row, col) == Wall
}

// Rows returns a copy of the course window, top row first.
func (s *Simulator) Rows() []Row {
	rows := make([]Row, Depth)
	copy(rows, s.rows[:])
	return rows
}

// RowString renders a single row; see Row.String.
func (s *Simulator) RowString(row int) string {
	if row < 0 || row >= Depth {
		return strings.Repeat(" ", Width)
	}
	return s.rows[row].String()
}
