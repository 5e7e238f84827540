package dungeon

import "strconv"

// Tile - тип клетки карты.
// Сериализуется числом: 0 - пол, 1 - стена.
type Tile uint8

const (
	Floor Tile = iota
	Wall
)

// String совпадает с числовым представлением ("0" / "1")
func (t Tile) String() string {
	return strconv.Itoa(int(t))
}

// TileGrid - разреженная сетка тайлов.
// Отсутствие координаты означает пустоту (void), а не стену.
// Снаружи пакета сетка доступна только для чтения.
type TileGrid struct {
	tiles map[Point]Tile
}

func newTileGrid() TileGrid {
	return TileGrid{tiles: make(map[Point]Tile)}
}

// At возвращает тайл в точке и флаг его наличия
func (g TileGrid) At(p Point) (Tile, bool) {
	t, ok := g.tiles[p]
	return t, ok
}

// Len возвращает количество заданных тайлов
func (g TileGrid) Len() int {
	return len(g.tiles)
}

// Count считает тайлы заданного типа
func (g TileGrid) Count(kind Tile) int {
	n := 0
	for _, t := range g.tiles {
		if t == kind {
			n++
		}
	}
	return n
}

// Each обходит все тайлы. Порядок обхода не определен.
func (g TileGrid) Each(fn func(p Point, t Tile)) {
	for p, t := range g.tiles {
		fn(p, t)
	}
}

// Equal сравнивает две сетки поклеточно
func (g TileGrid) Equal(other TileGrid) bool {
	if len(g.tiles) != len(other.tiles) {
		return false
	}
	for p, t := range g.tiles {
		if o, ok := other.tiles[p]; !ok || o != t {
			return false
		}
	}
	return true
}

// Bounds возвращает максимальные X и Y среди заданных тайлов
func (g TileGrid) Bounds() Point {
	var b Point
	for p := range g.tiles {
		if p.X > b.X {
			b.X = p.X
		}
		if p.Y > b.Y {
			b.Y = p.Y
		}
	}
	return b
}

// GridFromTiles собирает сетку из готового набора тайлов
// (например, загруженного из хранилища).
func GridFromTiles(tiles map[Point]Tile) TileGrid {
	g := newTileGrid()
	for p, t := range tiles {
		g.tiles[p] = t
	}
	return g
}

func (g TileGrid) set(p Point, t Tile) {
	g.tiles[p] = t
}
