package vmath

// Rect is an axis-aligned box, Min inclusive, Max exclusive
type Rect struct {
	Min, Max Vec2
}

// RectFromCenter builds a box of the given half extents around c
func RectFromCenter(c Vec2, halfW, halfH float64) Rect {
	return Rect{
		Min: Vec2{c.X - halfW, c.Y - halfH},
		Max: Vec2{c.X + halfW, c.Y + halfH},
	}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Translate shifts the box by d
func (r Rect) Translate(d Vec2) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Contains checks if point is within box
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Overlaps is a strict AABB test; boxes that only touch do not overlap
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X &&
		r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Union returns the smallest box containing both
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Vec2{min(r.Min.X, o.Min.X), min(r.Min.Y, o.Min.Y)},
		Max: Vec2{max(r.Max.X, o.Max.X), max(r.Max.Y, o.Max.Y)},
	}
}

// ClampInto returns the translation that moves box r inside bounds
// Axes where r is larger than bounds are centred instead
func (r Rect) ClampInto(bounds Rect) Vec2 {
	var d Vec2
	d.X = Clamp(r.Min.X, bounds.Min.X, bounds.Max.X-r.Width()) - r.Min.X
	d.Y = Clamp(r.Min.Y, bounds.Min.Y, bounds.Max.Y-r.Height()) - r.Min.Y
	return d
}
