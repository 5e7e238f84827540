package dungeon

import "github.com/zyedidia/generic/mapset"

// neighbours - смещения 8-связной окрестности
var neighbours = [8]Point{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// BSPMap - карта, сгенерированная двоичным разбиением пространства.
// После Build карта не меняется.
type BSPMap struct {
	size        Point
	tiles       TileGrid
	rooms       []Rect
	corridors   []Rect
	minRoomSize Point
	maxRoomSize Point
}

// Build проверяет параметры и генерирует карту.
// Ошибка возможна только на этапе валидации (*ConfigError).
func Build(size Point, rng Random, minRoomSize, maxRoomSize Point) (*BSPMap, error) {
	return New(Config{Size: size, MinRoomSize: minRoomSize, MaxRoomSize: maxRoomSize}, rng)
}

// New генерирует карту по готовому конфигу
func New(cfg Config, rng Random) (*BSPMap, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &BSPMap{
		size:        cfg.Size,
		tiles:       newTileGrid(),
		minRoomSize: cfg.MinRoomSize,
		maxRoomSize: cfg.MaxRoomSize,
	}
	m.placeRooms(rng)
	m.placeBorder()
	m.placeWalls()
	return m, nil
}

// Tiles возвращает сетку тайлов
func (m *BSPMap) Tiles() TileGrid { return m.tiles }

// Size возвращает размер карты
func (m *BSPMap) Size() Point { return m.size }

// Rooms возвращает комнаты (по одной на лист дерева) в порядке обхода
func (m *BSPMap) Rooms() []Rect { return m.rooms }

// Corridors возвращает отрезки коридоров в порядке обхода
func (m *BSPMap) Corridors() []Rect { return m.corridors }

func (m *BSPMap) MinRoomSize() Point { return m.minRoomSize }

func (m *BSPMap) MaxRoomSize() Point { return m.maxRoomSize }

// StartPos - центр первой комнаты, либо центр карты, если комнат нет
func (m *BSPMap) StartPos() Point {
	if len(m.rooms) > 0 {
		return m.rooms[0].Center()
	}
	return Point{X: m.size.X / 2, Y: m.size.Y / 2}
}

func (m *BSPMap) placeRooms(rng Random) {
	root := NewLeaf(Point{}, m.size)
	// 1. Дерево
	root.Generate(rng, m.minRoomSize, m.maxRoomSize)
	// 2. Комнаты в листьях и коридоры между соседями
	root.CreateRooms(rng, m.minRoomSize)
	// 3. Переносим все на сетку
	root.Walk(func(node *Leaf) {
		if node.IsLeaf() {
			if room, ok := node.Room(); ok {
				m.addRoom(room)
			}
		}
		for _, c := range node.Corridors() {
			m.addCorridor(c)
		}
	})
}

// addRoom заливает прямоугольник полом и запоминает его как комнату.
// Пол затирает все, что было в клетке раньше.
func (m *BSPMap) addRoom(room Rect) {
	m.stamp(room)
	m.rooms = append(m.rooms, room)
}

func (m *BSPMap) addCorridor(c Rect) {
	m.stamp(c)
	m.corridors = append(m.corridors, c)
}

func (m *BSPMap) stamp(r Rect) {
	r.Each(func(p Point) {
		m.tiles.set(p, Floor)
	})
}

// placeBorder ставит рамку из стен по x = 0, x = size.X, y = 0, y = size.Y.
// Рамка на один тайл шире карты, текстовый дамп печатает 0..=size.
// Пол, оказавшийся на краю, не затирается.
func (m *BSPMap) placeBorder() {
	for x := 0; x <= m.size.X; x++ {
		m.setWallIfEmpty(Point{X: x, Y: 0})
		m.setWallIfEmpty(Point{X: x, Y: m.size.Y})
	}
	for y := 0; y <= m.size.Y; y++ {
		m.setWallIfEmpty(Point{X: 0, Y: y})
		m.setWallIfEmpty(Point{X: m.size.X, Y: y})
	}
}

func (m *BSPMap) setWallIfEmpty(p Point) {
	if _, ok := m.tiles.At(p); !ok {
		m.tiles.set(p, Wall)
	}
}

// placeWalls обходит все поставленные тайлы (пол и рамку) и делает
// стеной каждого пустого соседа с неотрицательными координатами.
// Сначала собираем, потом пишем: новые стены в этом проходе соседей
// не порождают, и результат не зависит от порядка обхода map.
func (m *BSPMap) placeWalls() {
	pending := mapset.New[Point]()

	m.tiles.Each(func(p Point, _ Tile) {
		for _, d := range neighbours {
			n := p.Add(d)
			if n.X < 0 || n.Y < 0 {
				continue
			}
			if _, ok := m.tiles.At(n); !ok {
				pending.Put(n)
			}
		}
	})

	pending.Each(func(p Point) {
		m.tiles.set(p, Wall)
	})
}
