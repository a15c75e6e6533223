package course

// patterns are the hand-authored wall templates. Neighbouring entries differ
// by a one-cell shift, so a random walk over the index yields a corridor
// that is always drivable.
var patterns = [PatternCount]string{
	"###   ###",
	"####   ##",
	"#####   #",
	"######   ",
	"#####   #",
	"####   ##",
	"###   ###",
	"##   ####",
	"#   #####",
	"   ######",
	"#   #####",
	"##   ####",
}

// patternRows holds the templates decoded into cells.
var patternRows = func() [PatternCount]Row {
	var rows [PatternCount]Row
	for i, p := range patterns {
		rows[i] = ParseRow(p)
	}
	return rows
}()

// Pattern returns the decoded template at index i.
func Pattern(i int) Row {
	return patternRows[i]
}

// ParseRow decodes a template string; '#' is a wall and anything else is open.
// Strings shorter than Width are padded with open cells.
func ParseRow(s string) Row {
	var row Row
	for i := 0; i < Width && i < len(s); i++ {
		if s[i] == '#' {
			row[i] = Wall
		}
	}
	return row
}
