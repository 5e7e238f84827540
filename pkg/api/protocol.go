package api

// Типы сообщений сервера
const (
	TypeMap   = "MAP"
	TypeError = "ERROR"
)

// Значения тайлов в плотном представлении Rows
const (
	CellFloor = 0
	CellWall  = 1
	CellVoid  = -1
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse - корневой объект, который сервер отправляет клиенту
// по HTTP и по WebSocket.
type ServerResponse struct {
	// Type тип сообщения: "MAP" или "ERROR".
	Type string `json:"type"`

	// Error текст ошибки для Type == "ERROR".
	Error string `json:"error,omitempty"`

	// Map сгенерированная или загруженная карта.
	Map *MapView `json:"map,omitempty"`
}

// MapView - DTO карты.
type MapView struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Seed int64  `json:"seed"`

	// Grid размер карты. Рамка из стен лежит на x = w и y = h,
	// поэтому Rows содержит w+1 строк по h+1 значений.
	Grid GridMeta `json:"grid"`

	MinRoom SizeView `json:"minRoom"`
	MaxRoom SizeView `json:"maxRoom"`

	// Start - центр первой комнаты.
	Start PointView `json:"start"`

	Rooms     []RectView `json:"rooms"`
	Corridors []RectView `json:"corridors,omitempty"`

	// Rows плотная сетка: Rows[x][y] = 0 (пол), 1 (стена), -1 (пусто).
	Rows [][]int `json:"rows,omitempty"`

	Stats *StatsView `json:"stats,omitempty"`
}

// GridMeta содержит общие размеры карты
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

type SizeView struct {
	W int `json:"w"`
	H int `json:"h"`
}

type PointView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RectView - комната или отрезок коридора
type RectView struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// StatsView - сводка по карте
type StatsView struct {
	Floor     int  `json:"floor"`
	Wall      int  `json:"wall"`
	Rooms     int  `json:"rooms"`
	Corridors int  `json:"corridors"`
	Connected bool `json:"connected"`
}

// MapSummary - короткое описание карты для списков
type MapSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Seed      int64  `json:"seed"`
	Width     int    `json:"w"`
	Height    int    `json:"h"`
	Rooms     int    `json:"rooms"`
	CreatedAt int64  `json:"createdAt"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// MapRequest - запрос на генерацию карты.
// Нулевые поля заменяются значениями по умолчанию из конфига сервера.
type MapRequest struct {
	// Name если задан и Seed == 0, зерно выводится из имени.
	Name string `json:"name,omitempty"`
	Seed int64  `json:"seed,omitempty"`

	Width  int `json:"w,omitempty"`
	Height int `json:"h,omitempty"`

	MinRoom SizeView `json:"minRoom,omitempty"`
	MaxRoom SizeView `json:"maxRoom,omitempty"`

	// Dense просит вернуть плотную сетку Rows.
	Dense bool `json:"dense,omitempty"`

	// Save сохраняет карту в хранилище.
	Save bool `json:"save,omitempty"`
}
