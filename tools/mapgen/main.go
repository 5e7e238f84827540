package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"mapgen-server/internal/domain"
	"mapgen-server/internal/infrastructure/storage"
	"mapgen-server/pkg/dungeon"
	"mapgen-server/pkg/utils"
	"os"
	"time"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	var err error
	switch os.Args[1] {
	case "gen":
		err = runGen(os.Args[2:])
	case "show":
		if len(os.Args) < 3 {
			fmt.Println("Usage: mapgen show <file.bspm>")
			return
		}
		err = runShow(os.Args[2])
	case "stats":
		if len(os.Args) < 3 {
			fmt.Println("Usage: mapgen stats <file.bspm>")
			return
		}
		err = runStats(os.Args[2])
	default:
		printHelp()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runGen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	w := fs.Int("w", dungeon.DefaultWidth, "map width")
	h := fs.Int("h", dungeon.DefaultHeight, "map height")
	minRoom := fs.Int("min", dungeon.DefaultMinRoom, "min room side")
	maxRoom := fs.Int("max", dungeon.DefaultMaxRoom, "max room side")
	seed := fs.Int64("seed", 0, "seed (0 = from name or clock)")
	name := fs.String("name", "", "map name")
	out := fs.String("o", "", "write .bspm file instead of printing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := *seed
	switch {
	case s != 0:
	case *name != "":
		s = utils.StringToSeed(*name)
	default:
		s = time.Now().UnixNano()
	}

	m, err := dungeon.NewLevel(dungeon.NewRandom(s)).
		WithSize(*w, *h).
		WithRoomSize(dungeon.NewPoint(*minRoom, *minRoom), dungeon.NewPoint(*maxRoom, *maxRoom)).
		Build()
	if err != nil {
		return err
	}

	if *out == "" {
		fmt.Printf("seed %d\n", s)
		return m.WriteText(os.Stdout)
	}

	rec := domain.NewLevelRecord(utils.GenerateID(), *name, s, m, time.Now().Unix())
	if err := storage.SaveFile(*out, rec); err != nil {
		return err
	}
	fmt.Printf("saved %s (id %s, seed %d, %d rooms)\n", *out, rec.ID, s, len(rec.Rooms))
	return nil
}

func runShow(path string) error {
	rec, err := storage.LoadFile(path)
	if err != nil {
		return err
	}
	fmt.Printf("id %s seed %d size %v\n", rec.ID, rec.Seed, rec.Config.Size)
	return dungeon.WriteText(os.Stdout, rec.Tiles, rec.Config.Size)
}

func runStats(path string) error {
	rec, err := storage.LoadFile(path)
	if err != nil {
		return err
	}
	out := struct {
		*domain.LevelRecord
		Stats dungeon.MapStats `json:"stats"`
		Start dungeon.Point    `json:"start"`
	}{rec, rec.Stats(), rec.StartPos()}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printHelp() {
	fmt.Println(`mapgen - генерация и просмотр BSP карт
Commands:
  gen [-w 40 -h 25 -min 4 -max 10 -seed N -name S -o file.bspm]
                   - сгенерировать карту (печать или запись в файл)
  show <file>      - напечатать карту из .bspm файла
  stats <file>     - сводка по карте в JSON`)
}
