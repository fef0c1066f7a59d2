package dino

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-dino/internal/core"
)

// drawHUD renders score, best score and lives.
func drawHUD(dst *core.Screen, s *Session, best int, speed float64) {
	w := dst.Width()

	score := s.ScoreText()
	if best > 0 {
		score = fmt.Sprintf("HI %s  %s", FormatScore(float64(best)), score)
	}
	dst.DrawTextRight(w-2, 0, score, core.ColorBrightWhite)

	lives := "GOD"
	if !s.GodMode {
		lives = strings.Repeat("♥", s.Lives)
	}
	dst.DrawTextColor(2, 0, lives, core.ColorRed)

	dst.DrawTextColor(2, 1, fmt.Sprintf("x%.2f", speed), core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := 4 + len(lines)
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawTextColor(titleX, boxY+1, title, core.ColorBrightRed)

	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawText(x, boxY+3+i, l)
	}
}
