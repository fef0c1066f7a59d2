package core

// Transparent is the rune treated as "no pixel" in sprite art.
const Transparent = ' '

// Sprite is an immutable block of rune art with a derived opacity mask.
// Every row has the same width; short rows are padded with transparency.
type Sprite struct {
	Name  string
	W, H  int
	Color Color
	cells [][]rune
	mask  [][]bool
}

// NewSprite builds a sprite from art lines.
func NewSprite(name string, color Color, lines ...string) *Sprite {
	sp := &Sprite{Name: name, Color: color, H: len(lines)}
	rows := make([][]rune, len(lines))
	for i, l := range lines {
		rows[i] = []rune(l)
		sp.W = Max(sp.W, len(rows[i]))
	}

	sp.cells = make([][]rune, sp.H)
	sp.mask = make([][]bool, sp.H)
	for y, row := range rows {
		sp.cells[y] = make([]rune, sp.W)
		sp.mask[y] = make([]bool, sp.W)
		for x := 0; x < sp.W; x++ {
			r := Transparent
			if x < len(row) {
				r = row[x]
			}
			sp.cells[y][x] = r
			sp.mask[y][x] = r != Transparent && r != 0
		}
	}
	return sp
}

// At returns the rune at sprite-local (x, y).
func (sp *Sprite) At(x, y int) rune {
	if x < 0 || y < 0 || x >= sp.W || y >= sp.H {
		return Transparent
	}
	return sp.cells[y][x]
}

// Opaque reports whether sprite-local (x, y) holds a visible pixel.
func (sp *Sprite) Opaque(x, y int) bool {
	if x < 0 || y < 0 || x >= sp.W || y >= sp.H {
		return false
	}
	return sp.mask[y][x]
}

// Coverage returns the number of opaque pixels.
func (sp *Sprite) Coverage() int {
	n := 0
	for _, row := range sp.mask {
		for _, m := range row {
			if m {
				n++
			}
		}
	}
	return n
}

// Bounds returns the sprite rectangle placed at pos.
func (sp *Sprite) Bounds(pos Vec2) Rect {
	x, y := pos.Floor()
	return NewRect(x, y, sp.W, sp.H)
}
