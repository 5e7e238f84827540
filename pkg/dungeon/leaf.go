package dungeon

// splitRatio - если одна сторона длиннее другой в 1.25 раза и больше,
// режем поперек длинной стороны, иначе направление выбирается монеткой.
const splitRatio = 1.25

// Leaf - узел BSP-дерева над прямоугольной областью карты.
//
// Узел либо лист (детей нет, может быть комната), либо внутренний
// (оба ребенка есть, комнаты нет). Дети создаются только парой.
type Leaf struct {
	// Pos - левый верхний угол области
	Pos Point
	// Size - размер области
	Size Point

	left  *Leaf
	right *Leaf

	room      *Rect
	corridors []Rect
}

// NewLeaf создает лист над областью
func NewLeaf(pos, size Point) *Leaf {
	return &Leaf{Pos: pos, Size: size}
}

// IsLeaf - true, если у узла нет детей
func (l *Leaf) IsLeaf() bool {
	return l.left == nil && l.right == nil
}

// Children возвращает левого и правого ребенка (nil для листа)
func (l *Leaf) Children() (*Leaf, *Leaf) {
	return l.left, l.right
}

// Corridors возвращает коридоры, привязанные к узлу
func (l *Leaf) Corridors() []Rect {
	return l.corridors
}

// Split делит узел на двух детей.
// Возвращает false и ничего не меняет, если узел уже разделен
// или любая из половин получилась бы меньше минимальной комнаты.
func (l *Leaf) Split(rng Random, minRoom, maxRoom Point) bool {
	if !l.IsLeaf() {
		return false
	}

	// 1. Направление разреза
	w, h := float64(l.Size.X), float64(l.Size.Y)
	var horizontal bool
	switch {
	case w/h >= splitRatio:
		horizontal = false
	case h/w >= splitRatio:
		horizontal = true
	default:
		horizontal = rng.Bool(0.5)
	}

	// 2. Допустимый диапазон смещения по выбранной оси
	extent, lo, hi := l.Size.X, minRoom.X, maxRoom.X
	if horizontal {
		extent, lo, hi = l.Size.Y, minRoom.Y, maxRoom.Y
	}
	// offset в [lo, extent-lo]: обе половины не меньше lo >= 1
	limit := extent - lo
	if lo <= 0 || limit <= lo {
		return false
	}
	offset := randSpan(rng, lo, min(hi, limit))

	// 3. Режем
	if horizontal {
		l.left = NewLeaf(l.Pos, Point{X: l.Size.X, Y: offset})
		l.right = NewLeaf(
			Point{X: l.Pos.X, Y: l.Pos.Y + offset},
			Point{X: l.Size.X, Y: l.Size.Y - offset},
		)
	} else {
		l.left = NewLeaf(l.Pos, Point{X: offset, Y: l.Size.Y})
		l.right = NewLeaf(
			Point{X: l.Pos.X + offset, Y: l.Pos.Y},
			Point{X: l.Size.X - offset, Y: l.Size.Y},
		)
	}
	return true
}

// Generate рекурсивно делит дерево, пока листы делятся.
// Глубина ограничена: каждый разрез строго уменьшает обе половины.
func (l *Leaf) Generate(rng Random, minRoom, maxRoom Point) {
	if !l.IsLeaf() {
		return
	}
	if l.Split(rng, minRoom, maxRoom) {
		l.left.Generate(rng, minRoom, maxRoom)
		l.right.Generate(rng, minRoom, maxRoom)
	}
}

// CreateRooms обходит дерево снизу вверх: в каждом листе появляется
// комната, а каждый внутренний узел соединяет коридором своих детей.
func (l *Leaf) CreateRooms(rng Random, minRoom Point) {
	if !l.IsLeaf() {
		l.left.CreateRooms(rng, minRoom)
		l.right.CreateRooms(rng, minRoom)
		l.connect(rng)
		return
	}

	width := randSpan(rng, minRoom.X, l.Size.X)
	height := randSpan(rng, minRoom.Y, l.Size.Y)
	x := randSpan(rng, 0, l.Size.X-width)
	y := randSpan(rng, 0, l.Size.Y-height)

	room := NewRect(
		Point{X: l.Pos.X + x, Y: l.Pos.Y + y},
		Point{X: width, Y: height},
	)
	l.room = &room
}

// Room возвращает представительную комнату поддерева:
// собственную для листа, иначе первую найденную слева.
func (l *Leaf) Room() (Rect, bool) {
	if l.IsLeaf() {
		if l.room == nil {
			return Rect{}, false
		}
		return *l.room, true
	}
	if room, ok := l.left.Room(); ok {
		return room, true
	}
	return l.right.Room()
}

// connect прокладывает Г-образный коридор между комнатами детей.
// Оба отрезка достаются левому ребенку.
func (l *Leaf) connect(rng Random) {
	leftRoom, ok := l.left.Room()
	if !ok {
		return
	}
	rightRoom, ok := l.right.Room()
	if !ok {
		return
	}

	from := leftRoom.RandomPoint(rng)
	to := rightRoom.RandomPoint(rng)
	l.left.corridors = append(l.left.corridors, corridor(from, to)...)
}

// corridor строит два отрезка шириной в тайл: вертикальный по x точки from
// и горизонтальный по строке точки to. Концы включаются, так что отрезки
// пересекаются в углу (from.X, to.Y).
func corridor(from, to Point) []Rect {
	top, bottom := min(from.Y, to.Y), max(from.Y, to.Y)
	start, end := min(from.X, to.X), max(from.X, to.X)

	vertical := NewRect(Point{X: from.X, Y: top}, Point{X: 1, Y: bottom - top + 1})
	horizontal := NewRect(Point{X: start, Y: to.Y}, Point{X: end - start + 1, Y: 1})
	return []Rect{vertical, horizontal}
}

// Walk обходит дерево в прямом порядке (узел, левое, правое) без рекурсии.
// Каждый узел посещается ровно один раз.
func (l *Leaf) Walk(fn func(node *Leaf)) {
	stack := []*Leaf{l}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		fn(node)

		// правого кладем первым, чтобы левый снялся раньше
		if node.right != nil {
			stack = append(stack, node.right)
		}
		if node.left != nil {
			stack = append(stack, node.left)
		}
	}
}

// depth возвращает глубину дерева (лист - 1)
func (l *Leaf) depth() int {
	if l.IsLeaf() {
		return 1
	}
	return 1 + max(l.left.depth(), l.right.depth())
}
