package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"mapgen-server/internal/domain"
	"mapgen-server/pkg/dungeon"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore хранит карты в PostgreSQL, тайлы - в JSONB
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore подключается к базе и создает схему
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS levels (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		seed BIGINT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		min_room_w INTEGER NOT NULL,
		min_room_h INTEGER NOT NULL,
		max_room_w INTEGER NOT NULL,
		max_room_h INTEGER NOT NULL,
		rooms JSONB NOT NULL,
		corridors JSONB NOT NULL,
		tiles JSONB NOT NULL,
		created_at BIGINT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveLevel сохраняет карту (перезаписывает при совпадении ID)
func (s *PostgresStore) SaveLevel(rec *domain.LevelRecord) error {
	roomsJSON, err := json.Marshal(rec.Rooms)
	if err != nil {
		return fmt.Errorf("failed to marshal rooms: %w", err)
	}
	corridorsJSON, err := json.Marshal(rec.Corridors)
	if err != nil {
		return fmt.Errorf("failed to marshal corridors: %w", err)
	}
	tilesJSON, err := json.Marshal(encodeTiles(rec.Tiles))
	if err != nil {
		return fmt.Errorf("failed to marshal tiles: %w", err)
	}

	cfg := rec.Config
	query := `
	INSERT INTO levels (id, name, seed, width, height, min_room_w, min_room_h, max_room_w, max_room_h, rooms, corridors, tiles, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (id)
	DO UPDATE SET
		name = $2, seed = $3, width = $4, height = $5,
		min_room_w = $6, min_room_h = $7, max_room_w = $8, max_room_h = $9,
		rooms = $10, corridors = $11, tiles = $12, created_at = $13
	`
	_, err = s.db.Exec(query,
		rec.ID, rec.Name, rec.Seed, cfg.Size.X, cfg.Size.Y,
		cfg.MinRoomSize.X, cfg.MinRoomSize.Y, cfg.MaxRoomSize.X, cfg.MaxRoomSize.Y,
		string(roomsJSON), string(corridorsJSON), string(tilesJSON), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save level: %w", err)
	}
	return nil
}

// LoadLevel загружает карту по ID
func (s *PostgresStore) LoadLevel(id string) (*domain.LevelRecord, error) {
	query := `
	SELECT id, name, seed, width, height, min_room_w, min_room_h, max_room_w, max_room_h, rooms, corridors, tiles, created_at
	FROM levels WHERE id = $1
	`
	var (
		rec                                 domain.LevelRecord
		width, height                       int
		minW, minH, maxW, maxH              int
		roomsJSON, corridorsJSON, tilesJSON []byte
	)
	err := s.db.QueryRow(query, id).Scan(
		&rec.ID, &rec.Name, &rec.Seed, &width, &height,
		&minW, &minH, &maxW, &maxH,
		&roomsJSON, &corridorsJSON, &tilesJSON, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load level: %w", err)
	}

	rec.Config = dungeon.Config{
		Size:        dungeon.NewPoint(width, height),
		MinRoomSize: dungeon.NewPoint(minW, minH),
		MaxRoomSize: dungeon.NewPoint(maxW, maxH),
	}
	if err := rec.Config.Validate(); err != nil {
		return nil, fmt.Errorf("stored level %s: %w", id, err)
	}
	if err := json.Unmarshal(roomsJSON, &rec.Rooms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rooms: %w", err)
	}
	if err := json.Unmarshal(corridorsJSON, &rec.Corridors); err != nil {
		return nil, fmt.Errorf("failed to unmarshal corridors: %w", err)
	}
	var tiles [][3]int
	if err := json.Unmarshal(tilesJSON, &tiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tiles: %w", err)
	}
	if rec.Tiles, err = decodeTiles(tiles); err != nil {
		return nil, err
	}

	return &rec, nil
}

// Close закрывает соединение с базой
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// encodeTiles превращает сетку в список [x, y, kind]
func encodeTiles(grid dungeon.TileGrid) [][3]int {
	out := make([][3]int, 0, grid.Len())
	grid.Each(func(p dungeon.Point, t dungeon.Tile) {
		out = append(out, [3]int{p.X, p.Y, int(t)})
	})
	return out
}

func decodeTiles(entries [][3]int) (dungeon.TileGrid, error) {
	tiles := make(map[dungeon.Point]dungeon.Tile, len(entries))
	for _, e := range entries {
		if e[2] != int(dungeon.Floor) && e[2] != int(dungeon.Wall) {
			return dungeon.TileGrid{}, fmt.Errorf("unknown tile kind %d at (%d,%d)", e[2], e[0], e[1])
		}
		tiles[dungeon.NewPoint(e[0], e[1])] = dungeon.Tile(e[2])
	}
	return dungeon.GridFromTiles(tiles), nil
}
