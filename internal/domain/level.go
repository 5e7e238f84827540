package domain

import "mapgen-server/pkg/dungeon"

// LevelRecord - сгенерированная карта вместе с параметрами генерации.
// Это то, что хранится в кэше сервиса и в хранилище.
type LevelRecord struct {
	ID        string           `json:"id"`
	Name      string           `json:"name,omitempty"`
	Seed      int64            `json:"seed"`
	Config    dungeon.Config   `json:"config"`
	Rooms     []dungeon.Rect   `json:"rooms"`
	Corridors []dungeon.Rect   `json:"corridors"`
	Tiles     dungeon.TileGrid `json:"-"`
	CreatedAt int64            `json:"createdAt"` // Unix seconds
}

// NewLevelRecord снимает данные с готовой карты
func NewLevelRecord(id, name string, seed int64, m *dungeon.BSPMap, createdAt int64) *LevelRecord {
	return &LevelRecord{
		ID:   id,
		Name: name,
		Seed: seed,
		Config: dungeon.Config{
			Size:        m.Size(),
			MinRoomSize: m.MinRoomSize(),
			MaxRoomSize: m.MaxRoomSize(),
		},
		Rooms:     m.Rooms(),
		Corridors: m.Corridors(),
		Tiles:     m.Tiles(),
		CreatedAt: createdAt,
	}
}

// StartPos - центр первой комнаты
func (r *LevelRecord) StartPos() dungeon.Point {
	if len(r.Rooms) > 0 {
		return r.Rooms[0].Center()
	}
	return dungeon.Point{X: r.Config.Size.X / 2, Y: r.Config.Size.Y / 2}
}

// Stats пересчитывает сводку по тайлам записи
func (r *LevelRecord) Stats() dungeon.MapStats {
	return dungeon.Summarize(r.Tiles, r.Rooms, r.Corridors)
}
