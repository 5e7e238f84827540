package storage

import (
	"bufio"
	"cmp"
	"encoding/binary"
	"fmt"
	"io"
	"mapgen-server/internal/domain"
	"mapgen-server/pkg/dungeon"
	"os"
	"slices"
)

const (
	MagicHeader string = `BSPM` // 4 байта
	Version1    uint32 = 1
	FileExt            = ".bspm"
)

// MapFileHeader - точное представление заголовка файла.
// binary.Write пишет его целиком: внутри только массивы и числа.
type MapFileHeader struct {
	Magic         [4]byte
	Version       uint32
	Seed          int64
	CreatedAt     int64
	Width         int32
	Height        int32
	MinRoomW      int32
	MinRoomH      int32
	MaxRoomW      int32
	MaxRoomH      int32
	RoomCount     int32
	CorridorCount int32
	TileCount     int32
	IDLen         uint8
	NameLen       uint8
	_             [2]byte
}

// RectRecord - комната или отрезок коридора
type RectRecord struct {
	X, Y, W, H int32
}

// TileRecord - один тайл
type TileRecord struct {
	X, Y int32
	Kind uint8
}

// SaveFile пишет карту в файл
func SaveFile(path string, rec *domain.LevelRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeBinary(w, rec); err != nil {
		return err
	}
	return w.Flush()
}

func writeBinary(w io.Writer, rec *domain.LevelRecord) error {
	if len(rec.ID) > 255 {
		return fmt.Errorf("id too long: %d", len(rec.ID))
	}
	if len(rec.Name) > 255 {
		return fmt.Errorf("name too long: %d", len(rec.Name))
	}

	cfg := rec.Config
	header := MapFileHeader{
		Version:       Version1,
		Seed:          rec.Seed,
		CreatedAt:     rec.CreatedAt,
		Width:         int32(cfg.Size.X),
		Height:        int32(cfg.Size.Y),
		MinRoomW:      int32(cfg.MinRoomSize.X),
		MinRoomH:      int32(cfg.MinRoomSize.Y),
		MaxRoomW:      int32(cfg.MaxRoomSize.X),
		MaxRoomH:      int32(cfg.MaxRoomSize.Y),
		RoomCount:     int32(len(rec.Rooms)),
		CorridorCount: int32(len(rec.Corridors)),
		TileCount:     int32(rec.Tiles.Len()),
		IDLen:         uint8(len(rec.ID)),
		NameLen:       uint8(len(rec.Name)),
	}
	copy(header.Magic[:], MagicHeader)

	// 1. Заголовок
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := io.WriteString(w, rec.ID); err != nil {
		return err
	}
	if _, err := io.WriteString(w, rec.Name); err != nil {
		return err
	}

	// 2. Комнаты и коридоры
	if err := binary.Write(w, binary.LittleEndian, toRectRecords(rec.Rooms)); err != nil {
		return fmt.Errorf("failed to write rooms: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, toRectRecords(rec.Corridors)); err != nil {
		return fmt.Errorf("failed to write corridors: %w", err)
	}

	// 3. Тайлы, отсортированные по координатам, чтобы одинаковые карты
	// давали одинаковые файлы
	tiles := make([]TileRecord, 0, rec.Tiles.Len())
	rec.Tiles.Each(func(p dungeon.Point, t dungeon.Tile) {
		tiles = append(tiles, TileRecord{X: int32(p.X), Y: int32(p.Y), Kind: uint8(t)})
	})
	slices.SortFunc(tiles, func(a, b TileRecord) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	if err := binary.Write(w, binary.LittleEndian, tiles); err != nil {
		return fmt.Errorf("failed to write tiles: %w", err)
	}

	return nil
}

func toRectRecords(rects []dungeon.Rect) []RectRecord {
	out := make([]RectRecord, len(rects))
	for i, r := range rects {
		out[i] = RectRecord{X: int32(r.Pos.X), Y: int32(r.Pos.Y), W: int32(r.Size.X), H: int32(r.Size.Y)}
	}
	return out
}
