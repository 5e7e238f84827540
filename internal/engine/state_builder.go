package engine

import (
	"mapgen-server/internal/domain"
	"mapgen-server/pkg/api"
	"mapgen-server/pkg/dungeon"
)

// BuildMapResponse собирает DTO карты для клиента.
// dense добавляет плотную сетку Rows (w+1 x h+1 значений).
func BuildMapResponse(rec *domain.LevelRecord, dense bool) api.ServerResponse {
	size := rec.Config.Size
	stats := rec.Stats()
	start := rec.StartPos()

	view := &api.MapView{
		ID:        rec.ID,
		Name:      rec.Name,
		Seed:      rec.Seed,
		Grid:      api.GridMeta{Width: size.X, Height: size.Y},
		MinRoom:   api.SizeView{W: rec.Config.MinRoomSize.X, H: rec.Config.MinRoomSize.Y},
		MaxRoom:   api.SizeView{W: rec.Config.MaxRoomSize.X, H: rec.Config.MaxRoomSize.Y},
		Start:     api.PointView{X: start.X, Y: start.Y},
		Rooms:     rectViews(rec.Rooms),
		Corridors: rectViews(rec.Corridors),
		Stats: &api.StatsView{
			Floor:     stats.Floor,
			Wall:      stats.Wall,
			Rooms:     stats.Rooms,
			Corridors: stats.Corridors,
			Connected: stats.Connected,
		},
	}

	if dense {
		view.Rows = denseRows(rec.Tiles, size)
	}

	return api.ServerResponse{Type: api.TypeMap, Map: view}
}

// ErrorResponse заворачивает ошибку в сообщение для клиента
func ErrorResponse(err error) api.ServerResponse {
	return api.ServerResponse{Type: api.TypeError, Error: err.Error()}
}

// BuildSummary - короткая запись для списка карт
func BuildSummary(rec *domain.LevelRecord) api.MapSummary {
	return api.MapSummary{
		ID:        rec.ID,
		Name:      rec.Name,
		Seed:      rec.Seed,
		Width:     rec.Config.Size.X,
		Height:    rec.Config.Size.Y,
		Rooms:     len(rec.Rooms),
		CreatedAt: rec.CreatedAt,
	}
}

func rectViews(rects []dungeon.Rect) []api.RectView {
	out := make([]api.RectView, len(rects))
	for i, r := range rects {
		out[i] = api.RectView{X: r.Pos.X, Y: r.Pos.Y, W: r.Size.X, H: r.Size.Y}
	}
	return out
}

// denseRows раскладывает сетку так же, как текстовый дамп: Rows[x][y]
func denseRows(grid dungeon.TileGrid, size dungeon.Point) [][]int {
	rows := make([][]int, size.X+1)
	for x := range rows {
		row := make([]int, size.Y+1)
		for y := range row {
			t, ok := grid.At(dungeon.NewPoint(x, y))
			switch {
			case !ok:
				row[y] = api.CellVoid
			case t == dungeon.Wall:
				row[y] = api.CellWall
			default:
				row[y] = api.CellFloor
			}
		}
		rows[x] = row
	}
	return rows
}
