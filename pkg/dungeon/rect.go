package dungeon

// Rect - прямоугольник на карте: комната или отрезок коридора.
// Занимает тайлы [Pos.X, Pos.X+Size.X) x [Pos.Y, Pos.Y+Size.Y).
type Rect struct {
	Pos  Point `json:"pos"`
	Size Point `json:"size"`
}

// NewRect создает прямоугольник по позиции и размеру
func NewRect(pos, size Point) Rect {
	return Rect{Pos: pos, Size: size}
}

// Center возвращает центральный тайл прямоугольника
func (r Rect) Center() Point {
	return Point{X: r.Pos.X + r.Size.X/2, Y: r.Pos.Y + r.Size.Y/2}
}

// Intersects проверяет перекрытие двух прямоугольников.
// Касание краями пересечением не считается.
func (r Rect) Intersects(other Rect) bool {
	xOverlap := r.Pos.X+r.Size.X > other.Pos.X && other.Pos.X+other.Size.X > r.Pos.X
	yOverlap := r.Pos.Y+r.Size.Y > other.Pos.Y && other.Pos.Y+other.Size.Y > r.Pos.Y
	return xOverlap && yOverlap
}

// Contains сообщает, лежит ли тайл p внутри прямоугольника
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Pos.X && p.X < r.Pos.X+r.Size.X &&
		p.Y >= r.Pos.Y && p.Y < r.Pos.Y+r.Size.Y
}

// RandomPoint выбирает случайный тайл внутри прямоугольника.
// Порядок выборки: сначала x, потом y.
func (r Rect) RandomPoint(rng Random) Point {
	x := randSpan(rng, r.Pos.X, r.Pos.X+r.Size.X-1)
	y := randSpan(rng, r.Pos.Y, r.Pos.Y+r.Size.Y-1)
	return Point{X: x, Y: y}
}

// Each вызывает fn для каждого тайла прямоугольника
func (r Rect) Each(fn func(p Point)) {
	for x := 0; x < r.Size.X; x++ {
		for y := 0; y < r.Size.Y; y++ {
			fn(Point{X: r.Pos.X + x, Y: r.Pos.Y + y})
		}
	}
}
