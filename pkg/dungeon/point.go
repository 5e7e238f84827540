package dungeon

import "fmt"

// Point - целочисленная координата или размер (x, y).
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewPoint создает точку
func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add возвращает сумму двух точек (сдвиг)
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
