package course

import (
	"math/rand"
	"testing"
)

// fixedRand returns the same Intn result every call.
type fixedRand struct {
	n int
}

func (f fixedRand) Intn(n int) int {
	if f.n >= n {
		return n - 1
	}
	return f.n
}

func (f fixedRand) Float64() float64 { return 0 }

// straight keeps the pattern index where it is (change of 0).
var straight = fixedRand{n: 1}

func TestResetState(t *testing.T) {
	s := New(rand.New(rand.NewSource(1)))
	for i := 0; i < 20; i++ {
		s.Advance()
	}
	s.Move(1)
	s.MarkOver()

	s.Reset()

	if s.PlayerColumn() != Center {
		t.Errorf("PlayerColumn() = %d, expected %d", s.PlayerColumn(), Center)
	}
	if s.Distance() != 0 || s.PatternIndex() != 0 || s.Filled() != 0 {
		t.Errorf("Reset left distance=%d pattern=%d filled=%d", s.Distance(), s.PatternIndex(), s.Filled())
	}
	if s.IsOver() {
		t.Error("Reset should clear the over flag")
	}
	for row := 0; row < Depth; row++ {
		if got := s.RowString(row); got != "         " {
			t.Fatalf("row %d = %q, expected all open", row, got)
		}
	}
}

func TestMoveBoundaries(t *testing.T) {
	s := New(straight)

	for s.PlayerColumn() > 0 {
		if !s.Move(-1) {
			t.Fatalf("Move(-1) from column %d should apply", s.PlayerColumn())
		}
	}
	if s.Move(-1) {
		t.Error("Move(-1) at column 0 should not apply")
	}
	if s.PlayerColumn() != 0 {
		t.Errorf("PlayerColumn() = %d after blocked move, expected 0", s.PlayerColumn())
	}

	for s.PlayerColumn() < Width-1 {
		s.Move(1)
	}
	if s.Move(1) {
		t.Error("Move(+1) at column 8 should not apply")
	}
	if s.PlayerColumn() != Width-1 {
		t.Errorf("PlayerColumn() = %d after blocked move, expected %d", s.PlayerColumn(), Width-1)
	}
}

func TestMoveInvalidDirectionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Move(2) should panic")
		}
	}()
	New(straight).Move(2)
}

func TestAdvanceFillSaturates(t *testing.T) {
	s := New(rand.New(rand.NewSource(7)))

	for i := 1; i <= Depth; i++ {
		s.Advance()
		if s.Filled() != i {
			t.Fatalf("after %d advances Filled() = %d", i, s.Filled())
		}
	}

	for i := 0; i < 10; i++ {
		s.Advance()
	}
	if s.Filled() != Depth {
		t.Errorf("Filled() = %d, expected saturation at %d", s.Filled(), Depth)
	}
	if s.Distance() != Depth+10 {
		t.Errorf("Distance() = %d, expected %d", s.Distance(), Depth+10)
	}
}

func TestAdvanceShiftsRows(t *testing.T) {
	s := New(rand.New(rand.NewSource(3)))
	s.Advance()
	top := s.RowString(0)
	s.Advance()

	if got := s.RowString(1); got != top {
		t.Errorf("row 1 = %q, expected previous top %q", got, top)
	}
}

func TestPatternRandomWalk(t *testing.T) {
	s := New(rand.New(rand.NewSource(99)))
	prev := s.PatternIndex()

	for i := 0; i < 500; i++ {
		s.Advance()
		idx := s.PatternIndex()
		if idx < 0 || idx >= PatternCount {
			t.Fatalf("PatternIndex() = %d out of range", idx)
		}
		step := (idx - prev + PatternCount) % PatternCount
		if step != 0 && step != 1 && step != PatternCount-1 {
			t.Fatalf("pattern jumped from %d to %d", prev, idx)
		}
		if s.Rows()[0] != Pattern(idx) {
			t.Fatalf("top row does not match pattern %d", idx)
		}
		prev = idx
	}
}

func TestPatternWrapsBelowZero(t *testing.T) {
	s := New(fixedRand{n: 0}) // always -1
	s.Advance()

	if s.PatternIndex() != PatternCount-1 {
		t.Errorf("PatternIndex() = %d, expected wrap to %d", s.PatternIndex(), PatternCount-1)
	}
}

func TestCollisionGracePeriod(t *testing.T) {
	s := New(straight)

	// Force walls everywhere; the player row is not populated yet.
	for row := range s.rows {
		for col := range s.rows[row] {
			s.rows[row][col] = Wall
		}
	}
	for filled := 0; filled <= PlayerRow; filled++ {
		s.filled = filled
		if s.HasCollision() {
			t.Fatalf("HasCollision() = true with filled=%d", filled)
		}
	}

	s.filled = PlayerRow + 1
	if !s.HasCollision() {
		t.Error("HasCollision() = false once the player row is populated")
	}
}

func TestCollisionWithGeneratedCourse(t *testing.T) {
	s := New(straight)

	for i := 0; i < PlayerRow; i++ {
		s.Advance()
	}
	// Thirteen rows generated: the player row still holds start padding.
	s.playerColumn = 0
	if s.HasCollision() {
		t.Fatal("HasCollision() = true before the player row is generated")
	}

	s.Advance()
	// Pattern 0 is "###   ###": columns 0-2 and 6-8 are walls.
	if got := s.RowString(PlayerRow); got != "###   ###" {
		t.Fatalf("player row = %q, expected pattern 0", got)
	}

	for _, col := range []int{0, 2, 6, 8} {
		s.playerColumn = col
		if !s.HasCollision() {
			t.Errorf("column %d: expected collision", col)
		}
	}
	for _, col := range []int{3, 4, 5} {
		s.playerColumn = col
		if s.HasCollision() {
			t.Errorf("column %d: expected no collision", col)
		}
	}
}

func TestDeterminism(t *testing.T) {
	s1 := New(rand.New(rand.NewSource(12345)))
	s2 := New(rand.New(rand.NewSource(12345)))

	for i := 0; i < 200; i++ {
		s1.Advance()
		s2.Advance()
	}

	for row := 0; row < Depth; row++ {
		if s1.RowString(row) != s2.RowString(row) {
			t.Fatalf("row %d differs: %q vs %q", row, s1.RowString(row), s2.RowString(row))
		}
	}
}

func TestParseRow(t *testing.T) {
	row := ParseRow("#  #")
	if row[0] != Wall || row[1] != Open || row[3] != Wall {
		t.Errorf("ParseRow() = %v", row)
	}
	for i := 4; i < Width; i++ {
		if row[i] != Open {
			t.Errorf("padding cell %d = %v, expected Open", i, row[i])
		}
	}
}
