package drive

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/textdrive/internal/core"
	"github.com/vovakirdan/textdrive/internal/course"
)

// Visual characters for rendering
const (
	WallChar = '■'
	CarChar  = '▲'
)

// Layout of the playfield relative to its origin.
const (
	cellWidth   = 2 // Each course cell is drawn two columns wide
	gridWidth   = course.Width * cellWidth
	headerRow   = 0
	gridTop     = 2
	controlsRow = gridTop + course.Depth + 1
	noticeRow   = controlsRow + 1
)

// Origin returns the left column of the playfield on a screen of width w.
func Origin(w int) int {
	return core.Max(0, (w-gridWidth)/2)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	x0 := Origin(dst.Width())

	distance := fmt.Sprintf("Distance: %d  ", g.sim.Distance())
	dst.DrawTextColored(x0, headerRow, distance, core.ColorCyan)
	tagX := x0 + len(distance)
	if g.aiMode {
		dst.DrawTextColored(tagX, headerRow, "[AI MODE]", core.ColorGreen)
	} else {
		dst.DrawTextColored(tagX, headerRow, "[MANUAL]", core.ColorYellow)
	}

	g.drawCourse(dst, x0)

	if g.aiMode {
		dst.DrawTextColored(x0, controlsRow, "[M] Manual  [P] Pause  [R] Restart  [Q] Quit", core.ColorGray)
	} else {
		dst.DrawTextColored(x0, controlsRow, "[<-][->] Move  [M] AI  [P] Pause  [R] Restart  [Q] Quit", core.ColorGray)
	}
	if g.loadErr != nil && !g.aiMode {
		dst.DrawTextColored(x0, noticeRow, "AI unavailable: no trained table", core.ColorRed)
	}

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.sim.IsOver() {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Distance: %d  |  R restart  Q quit", g.sim.Distance()))
	}
}

// drawCourse renders the visible rows with the car on the player row.
func (g *Game) drawCourse(dst *core.Screen, x0 int) {
	player := g.sim.PlayerColumn()
	for row := 0; row < course.Depth; row++ {
		y := gridTop + row
		for col := 0; col < course.Width; col++ {
			x := x0 + col*cellWidth
			switch {
			case row == course.PlayerRow && col == player:
				dst.SetColored(x, y, CarChar, core.ColorBrightYellow)
			case g.sim.Wall(row, col):
				dst.SetColored(x, y, WallChar, core.ColorWhite)
			}
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleLen := utf8.RuneCountInString(title)
	subtitleLen := utf8.RuneCountInString(subtitle)

	boxW := core.Max(titleLen, subtitleLen) + 4
	boxH := 5
	boxX := core.Max(0, (w-boxW)/2)
	boxY := core.Max(0, (h-boxH)/2)

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawText(boxX+(boxW-titleLen)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-subtitleLen)/2, boxY+3, subtitle)
}
