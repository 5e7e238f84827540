package dungeon

import "github.com/zyedidia/generic/mapset"

// orthogonal - смещения 4-связной окрестности, по ним ходят между клетками пола
var orthogonal = [4]Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// MapStats - сводка по сгенерированной карте
type MapStats struct {
	Floor     int  `json:"floor"`
	Wall      int  `json:"wall"`
	Rooms     int  `json:"rooms"`
	Corridors int  `json:"corridors"`
	Connected bool `json:"connected"`
}

// Reachable возвращает все клетки пола, достижимые из from
// по соседним (не диагональным) клеткам пола.
func Reachable(grid TileGrid, from Point) mapset.Set[Point] {
	visited := mapset.New[Point]()
	if t, ok := grid.At(from); !ok || t != Floor {
		return visited
	}

	queue := []Point{from}
	visited.Put(from)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range orthogonal {
			n := current.Add(d)
			if visited.Has(n) {
				continue
			}
			if t, ok := grid.At(n); ok && t == Floor {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return visited
}

// RoomsConnected проверяет, что из первой комнаты можно дойти до любой другой
func RoomsConnected(grid TileGrid, rooms []Rect) bool {
	if len(rooms) < 2 {
		return true
	}
	reached := Reachable(grid, rooms[0].Pos)
	for _, room := range rooms[1:] {
		if !reached.Has(room.Pos) {
			return false
		}
	}
	return true
}

// Summarize считает сводку по сетке и спискам прямоугольников
func Summarize(grid TileGrid, rooms, corridors []Rect) MapStats {
	return MapStats{
		Floor:     grid.Count(Floor),
		Wall:      grid.Count(Wall),
		Rooms:     len(rooms),
		Corridors: len(corridors),
		Connected: RoomsConnected(grid, rooms),
	}
}

// Stats считает сводку по карте
func (m *BSPMap) Stats() MapStats {
	return Summarize(m.tiles, m.rooms, m.corridors)
}
