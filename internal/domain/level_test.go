package domain

import (
	"mapgen-server/pkg/dungeon"
	"testing"
)

func TestNewLevelRecord(t *testing.T) {
	m, err := dungeon.Build(dungeon.NewPoint(30, 24), dungeon.NewRandom(4), dungeon.NewPoint(3, 3), dungeon.NewPoint(9, 9))
	if err != nil {
		t.Fatal(err)
	}

	rec := NewLevelRecord("abc", "crypt", 4, m, 100)

	if rec.Config.Size != m.Size() || rec.Config.MinRoomSize != m.MinRoomSize() || rec.Config.MaxRoomSize != m.MaxRoomSize() {
		t.Errorf("Config not copied: %+v", rec.Config)
	}
	if rec.StartPos() != m.StartPos() {
		t.Errorf("StartPos = %v, want %v", rec.StartPos(), m.StartPos())
	}
	if rec.Stats() != m.Stats() {
		t.Errorf("Stats = %+v, want %+v", rec.Stats(), m.Stats())
	}
}

func TestStartPos_NoRooms(t *testing.T) {
	rec := &LevelRecord{Config: dungeon.Config{Size: dungeon.NewPoint(20, 30)}}
	if got := rec.StartPos(); got != dungeon.NewPoint(10, 15) {
		t.Errorf("StartPos = %v, want (10,15)", got)
	}
}
