package core

// Collides reports whether two sprites placed at the given positions share
// at least one cell that is opaque in both. Bounding boxes are checked first;
// only their intersection is scanned.
func Collides(posA Vec2, a *Sprite, posB Vec2, b *Sprite) bool {
	if a == nil || b == nil {
		return false
	}

	ra := a.Bounds(posA)
	rb := b.Bounds(posB)
	if !ra.Intersects(rb) {
		return false
	}

	overlap := ra.Intersection(rb)
	for y := overlap.Y; y < overlap.Bottom(); y++ {
		for x := overlap.X; x < overlap.Right(); x++ {
			if a.Opaque(x-ra.X, y-ra.Y) && b.Opaque(x-rb.X, y-rb.Y) {
				return true
			}
		}
	}
	return false
}
