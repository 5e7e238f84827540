package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"mapgen-server/internal/domain"
	"mapgen-server/pkg/api"
	"mapgen-server/pkg/dungeon"
	"os"
)

// LoadFile читает карту из файла
func LoadFile(path string) (*domain.LevelRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(bufio.NewReader(f))
}

func readBinary(r io.Reader) (*domain.LevelRecord, error) {
	// 1. Заголовок целиком
	var header MapFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if err := checkHeader(&header); err != nil {
		return nil, fmt.Errorf("corrupted header: %w", err)
	}

	strBuf := make([]byte, int(header.IDLen)+int(header.NameLen))
	if _, err := io.ReadFull(r, strBuf); err != nil {
		return nil, fmt.Errorf("failed to read id: %w", err)
	}

	rec := &domain.LevelRecord{
		ID:        string(strBuf[:header.IDLen]),
		Name:      string(strBuf[header.IDLen:]),
		Seed:      header.Seed,
		CreatedAt: header.CreatedAt,
		Config: dungeon.Config{
			Size:        dungeon.NewPoint(int(header.Width), int(header.Height)),
			MinRoomSize: dungeon.NewPoint(int(header.MinRoomW), int(header.MinRoomH)),
			MaxRoomSize: dungeon.NewPoint(int(header.MaxRoomW), int(header.MaxRoomH)),
		},
	}

	// 2. Комнаты и коридоры
	rooms := make([]RectRecord, header.RoomCount)
	if err := binary.Read(r, binary.LittleEndian, rooms); err != nil {
		return nil, fmt.Errorf("failed to read rooms: %w", err)
	}
	corridors := make([]RectRecord, header.CorridorCount)
	if err := binary.Read(r, binary.LittleEndian, corridors); err != nil {
		return nil, fmt.Errorf("failed to read corridors: %w", err)
	}
	rec.Rooms = fromRectRecords(rooms)
	rec.Corridors = fromRectRecords(corridors)

	// 3. Тайлы
	tiles := make([]TileRecord, header.TileCount)
	if err := binary.Read(r, binary.LittleEndian, tiles); err != nil {
		return nil, fmt.Errorf("failed to read tiles: %w", err)
	}
	grid := make(map[dungeon.Point]dungeon.Tile, len(tiles))
	for _, t := range tiles {
		if t.Kind > uint8(dungeon.Wall) {
			return nil, fmt.Errorf("unknown tile kind %d at (%d,%d)", t.Kind, t.X, t.Y)
		}
		if t.X < 0 || t.Y < 0 {
			return nil, fmt.Errorf("negative tile position (%d,%d)", t.X, t.Y)
		}
		grid[dungeon.NewPoint(int(t.X), int(t.Y))] = dungeon.Tile(t.Kind)
	}
	rec.Tiles = dungeon.GridFromTiles(grid)

	// стены доходят не дальше внешнего кольца рамки
	limit := rec.Config.Size.Add(dungeon.NewPoint(1, 1))
	if b := rec.Tiles.Bounds(); b.X > limit.X || b.Y > limit.Y {
		return nil, fmt.Errorf("tiles reach %v, beyond %v", b, limit)
	}

	return rec, nil
}

// checkHeader проверяет размеры и счетчики до того, как под них выделяется память
func checkHeader(h *MapFileHeader) error {
	if h.Width > api.MaxMapSide || h.Height > api.MaxMapSide {
		return fmt.Errorf("map size %dx%d exceeds %d", h.Width, h.Height, api.MaxMapSide)
	}
	cfg := dungeon.Config{
		Size:        dungeon.NewPoint(int(h.Width), int(h.Height)),
		MinRoomSize: dungeon.NewPoint(int(h.MinRoomW), int(h.MinRoomH)),
		MaxRoomSize: dungeon.NewPoint(int(h.MaxRoomW), int(h.MaxRoomH)),
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cells := int(h.Width) * int(h.Height)
	switch {
	case h.RoomCount < 0 || h.CorridorCount < 0 || h.TileCount < 0:
		return fmt.Errorf("negative counts")
	case int(h.RoomCount) > cells:
		return fmt.Errorf("%d rooms for %d cells", h.RoomCount, cells)
	case h.CorridorCount > 2*h.RoomCount:
		return fmt.Errorf("%d corridors for %d rooms", h.CorridorCount, h.RoomCount)
	case int(h.TileCount) > (int(h.Width)+2)*(int(h.Height)+2):
		return fmt.Errorf("%d tiles for a %dx%d map", h.TileCount, h.Width, h.Height)
	}
	return nil
}

func fromRectRecords(records []RectRecord) []dungeon.Rect {
	out := make([]dungeon.Rect, len(records))
	for i, r := range records {
		out[i] = dungeon.NewRect(
			dungeon.NewPoint(int(r.X), int(r.Y)),
			dungeon.NewPoint(int(r.W), int(r.H)),
		)
	}
	return out
}
