package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSurfaceUnavailable is returned when a drawing surface cannot be created.
var ErrSurfaceUnavailable = errors.New("render surface unavailable")

// Cell is a single character position on the screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' ', Color: ColorDefault}

// Screen is a 2D character buffer for rendering game graphics.
// It decouples game rendering from the terminal, allowing games to draw
// using simple rune operations while the platform handles actual display.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
// Non-positive dimensions yield ErrSurfaceUnavailable.
func NewScreen(width, height int) (*Screen, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("core: %dx%d: %w", width, height, ErrSurfaceUnavailable)
	}
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear()
	return s, nil
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Size returns the screen dimensions.
func (s *Screen) Size() Size {
	return Size{W: s.width, H: s.height}
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	if width <= 0 || height <= 0 {
		return
	}

	oldCells := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	// Copy old content
	copyW := Min(oldW, width)
	copyH := Min(oldH, height)
	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
	}
}

// Clear fills the entire screen with spaces.
func (s *Screen) Clear() {
	s.Fill(' ')
}

// Fill fills the entire screen with the given rune.
func (s *Screen) Fill(r rune) {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: r}
		}
	}
}

// Set places a rune at the given position using the default color.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetCell(x, y, Cell{Rune: r})
}

// SetColor places a colored rune at the given position.
func (s *Screen) SetColor(x, y int, r rune, c Color) {
	s.SetCell(x, y, Cell{Rune: r, Color: c})
}

// SetCell places a cell at the given position.
func (s *Screen) SetCell(x, y int, c Cell) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = c
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return blankCell
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColor(x, y, text, ColorDefault)
}

// DrawTextColor writes colored text horizontally starting at (x, y).
func (s *Screen) DrawTextColor(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.SetColor(x+i, y, r, c)
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawText(x, y, text)
}

// DrawTextRight draws text so that it ends at column right (exclusive).
func (s *Screen) DrawTextRight(right, y int, text string, c Color) {
	s.DrawTextColor(right-len([]rune(text)), y, text, c)
}

// DrawRect fills a rectangular area with the given rune.
func (s *Screen) DrawRect(r Rect, fill rune) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.Set(x, y, fill)
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect) {
	// Corners
	s.Set(r.X, r.Y, '┌')
	s.Set(r.Right()-1, r.Y, '┐')
	s.Set(r.X, r.Bottom()-1, '└')
	s.Set(r.Right()-1, r.Bottom()-1, '┘')

	// Horizontal edges
	for x := r.X + 1; x < r.Right()-1; x++ {
		s.Set(x, r.Y, '─')
		s.Set(x, r.Bottom()-1, '─')
	}

	// Vertical edges
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.Set(r.X, y, '│')
		s.Set(r.Right()-1, y, '│')
	}
}

// DrawSprite blits a sprite with its top-left corner at (x, y).
// Transparent cells leave the destination untouched.
func (s *Screen) DrawSprite(sp *Sprite, x, y int) {
	s.DrawSpriteColor(sp, x, y, sp.Color)
}

// DrawSpriteColor blits a sprite using an overriding color.
func (s *Screen) DrawSpriteColor(sp *Sprite, x, y int, c Color) {
	if sp == nil {
		return
	}
	s.DrawSpriteRegion(sp, 0, sp.W, x, y, c)
}

// DrawSpriteRegion blits columns [srcX, srcX+w) of a sprite to (dstX, dstY).
func (s *Screen) DrawSpriteRegion(sp *Sprite, srcX, w, dstX, dstY int, c Color) {
	if sp == nil {
		return
	}
	srcX = Clamp(srcX, 0, sp.W)
	w = Min(w, sp.W-srcX)
	for dy := 0; dy < sp.H; dy++ {
		for dx := 0; dx < w; dx++ {
			if !sp.Opaque(srcX+dx, dy) {
				continue
			}
			s.SetColor(dstX+dx, dstY+dy, sp.At(srcX+dx, dy), c)
		}
	}
}

// String converts the screen buffer to a renderable string.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height) // Pre-allocate for efficiency

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns a copy of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
