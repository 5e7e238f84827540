package engine

import (
	"errors"
	"io"
	"mapgen-server/internal/infrastructure/storage"
	"mapgen-server/pkg/api"
	"mapgen-server/pkg/dungeon"
	"mapgen-server/pkg/logger"
	"testing"
)

func init() {
	logger.Log.SetOutput(io.Discard)
}

func testConfig() Config {
	cfg := NewConfig()
	cfg.Seed = 1000
	return cfg
}

func TestGenerate_Defaults(t *testing.T) {
	svc := NewService(testConfig(), nil)

	rec, err := svc.Generate(api.MapRequest{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if rec.Config.Size != dungeon.NewPoint(dungeon.DefaultWidth, dungeon.DefaultHeight) {
		t.Errorf("Expected default size, got %v", rec.Config.Size)
	}
	if rec.Seed != 1001 {
		t.Errorf("Expected seed 1001 (master + 1), got %d", rec.Seed)
	}
	if len(rec.Rooms) == 0 {
		t.Error("Expected at least one room")
	}
	if rec.ID == "" {
		t.Error("Expected non-empty ID")
	}
}

func TestResolveSeed(t *testing.T) {
	svc := NewService(testConfig(), nil)

	if got := svc.ResolveSeed(api.MapRequest{Seed: 7, Name: "ignored"}); got != 7 {
		t.Errorf("Explicit seed: got %d, want 7", got)
	}
	a := svc.ResolveSeed(api.MapRequest{Name: "crypt"})
	b := svc.ResolveSeed(api.MapRequest{Name: "crypt"})
	if a != b {
		t.Errorf("Named seed is not stable: %d vs %d", a, b)
	}
	first := svc.ResolveSeed(api.MapRequest{})
	second := svc.ResolveSeed(api.MapRequest{})
	if first != 1001 || second != 1002 {
		t.Errorf("Counter seeds: got %d, %d; want 1001, 1002", first, second)
	}
}

func TestMapConfig_Overrides(t *testing.T) {
	svc := NewService(testConfig(), nil)

	cfg := svc.MapConfig(api.MapRequest{
		Width:   60,
		MinRoom: api.SizeView{H: 5},
		MaxRoom: api.SizeView{W: 12},
	})

	want := dungeon.Config{
		Size:        dungeon.NewPoint(60, dungeon.DefaultHeight),
		MinRoomSize: dungeon.NewPoint(dungeon.DefaultMinRoom, 5),
		MaxRoomSize: dungeon.NewPoint(12, dungeon.DefaultMaxRoom),
	}
	if cfg != want {
		t.Errorf("MapConfig = %+v, want %+v", cfg, want)
	}
}

func TestGenerate_SameSeedSameMap(t *testing.T) {
	svc := NewService(testConfig(), nil)
	req := api.MapRequest{Seed: 42, Width: 50, Height: 30}

	a, err := svc.Generate(req)
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Generate(req)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Error("Each generation should get its own ID")
	}
	if !a.Tiles.Equal(b.Tiles) {
		t.Error("Same seed must produce the same tiles")
	}
}

func TestGenerate_Errors(t *testing.T) {
	svc := NewService(testConfig(), nil)

	tests := []struct {
		name string
		req  api.MapRequest
		want error
	}{
		{"negative width", api.MapRequest{Width: -1}, ErrBadRequest},
		{"too large", api.MapRequest{Width: api.MaxMapSide + 1}, ErrBadRequest},
		{"map too small", api.MapRequest{Width: 10, Height: 10}, dungeon.ErrInvalidConfig},
		{"room too large", api.MapRequest{MaxRoom: api.SizeView{W: 40}}, dungeon.ErrRoomTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("Generate() error = %v, want %v", err, tt.want)
			}
		})
	}

	if n := len(svc.List()); n != 0 {
		t.Errorf("Failed requests must not be cached, got %d entries", n)
	}
}

func TestGetAndList(t *testing.T) {
	svc := NewService(testConfig(), nil)

	first, _ := svc.Generate(api.MapRequest{Name: "one"})
	second, _ := svc.Generate(api.MapRequest{Name: "two"})

	got, err := svc.Get(first.ID)
	if err != nil || got != first {
		t.Fatalf("Get(%s) = %v, %v", first.ID, got, err)
	}

	list := svc.List()
	if len(list) != 2 {
		t.Fatalf("Expected 2 maps, got %d", len(list))
	}
	if list[0].ID != first.ID || list[1].ID != second.ID {
		t.Error("List should keep generation order")
	}
	if list[1].Name != "two" || list[1].Rooms != len(second.Rooms) {
		t.Errorf("Unexpected summary: %+v", list[1])
	}

	if _, err := svc.Get("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCacheEviction(t *testing.T) {
	cfg := testConfig()
	cfg.CacheSize = 2
	svc := NewService(cfg, nil)

	oldest, _ := svc.Generate(api.MapRequest{})
	svc.Generate(api.MapRequest{})
	svc.Generate(api.MapRequest{})

	if n := len(svc.List()); n != 2 {
		t.Errorf("Expected cache of 2, got %d", n)
	}
	if _, err := svc.Get(oldest.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Oldest map should be evicted, got %v", err)
	}
}

func TestGenerate_SaveAndReload(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	cfg.CacheSize = 1
	svc := NewService(cfg, store)

	saved, err := svc.Generate(api.MapRequest{Seed: 9, Save: true})
	if err != nil {
		t.Fatalf("Generate with save failed: %v", err)
	}
	// вытесняем из кэша, теперь карта читается с диска
	svc.Generate(api.MapRequest{})

	loaded, err := svc.Get(saved.ID)
	if err != nil {
		t.Fatalf("Get from store failed: %v", err)
	}
	if loaded == saved {
		t.Error("Expected a fresh copy from the store")
	}
	if !loaded.Tiles.Equal(saved.Tiles) || loaded.Seed != 9 {
		t.Error("Reloaded map differs from the saved one")
	}
}

func TestSave_WithoutStore(t *testing.T) {
	svc := NewService(testConfig(), nil)
	rec, _ := svc.Generate(api.MapRequest{})

	if err := svc.Save(rec.ID); err == nil {
		t.Error("Expected error without storage")
	}
	if err := svc.Save("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestBuildMapResponse(t *testing.T) {
	svc := NewService(testConfig(), nil)
	rec, err := svc.Generate(api.MapRequest{Seed: 3, Width: 20, Height: 22})
	if err != nil {
		t.Fatal(err)
	}

	resp := BuildMapResponse(rec, true)
	if resp.Type != api.TypeMap || resp.Map == nil {
		t.Fatalf("Unexpected response: %+v", resp)
	}
	view := resp.Map
	if view.Grid.Width != 20 || view.Grid.Height != 22 {
		t.Errorf("Grid = %+v", view.Grid)
	}
	if len(view.Rooms) != len(rec.Rooms) || len(view.Corridors) != len(rec.Corridors) {
		t.Error("Rooms/corridors count mismatch")
	}
	if len(view.Rows) != 21 || len(view.Rows[0]) != 23 {
		t.Fatalf("Expected 21x23 rows, got %dx%d", len(view.Rows), len(view.Rows[0]))
	}
	// дальний угол рамки пол не достает
	if view.Rows[20][22] != api.CellWall {
		t.Error("Far border corner must be a wall")
	}
	start := view.Start
	if view.Rows[start.X][start.Y] != api.CellFloor {
		t.Errorf("Start %+v is not floor", start)
	}
	if !view.Stats.Connected {
		t.Error("Expected connected map")
	}

	sparse := BuildMapResponse(rec, false)
	if sparse.Map.Rows != nil {
		t.Error("Rows should be omitted without dense")
	}
}

func TestErrorResponse(t *testing.T) {
	resp := ErrorResponse(errors.New("boom"))
	if resp.Type != api.TypeError || resp.Error != "boom" || resp.Map != nil {
		t.Errorf("Unexpected response: %+v", resp)
	}
}
