package engine

import (
	"mapgen-server/pkg/dungeon"
	"os"
	"time"
)

// Config хранит параметры запуска сервиса
type Config struct {
	// Seed - мастер-зерно. Запросы без зерна получают Seed + N,
	// где N - порядковый номер такого запроса.
	Seed int64

	// Параметры карты по умолчанию
	Width   int
	Height  int
	MinRoom dungeon.Point
	MaxRoom dungeon.Point

	Port        string
	DataDir     string
	DatabaseURL string

	// CacheSize - сколько последних карт держать в памяти
	CacheSize int
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:      time.Now().UnixNano(),
		Width:     dungeon.DefaultWidth,
		Height:    dungeon.DefaultHeight,
		MinRoom:   dungeon.NewPoint(dungeon.DefaultMinRoom, dungeon.DefaultMinRoom),
		MaxRoom:   dungeon.NewPoint(dungeon.DefaultMaxRoom, dungeon.DefaultMaxRoom),
		Port:      "8080",
		DataDir:   "maps",
		CacheSize: 64,
	}
}

// ApplyEnv переопределяет поля из переменных окружения MG_PORT и DATABASE_URL
func (c *Config) ApplyEnv() {
	if port := os.Getenv("MG_PORT"); port != "" {
		c.Port = port
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		c.DatabaseURL = dsn
	}
}
