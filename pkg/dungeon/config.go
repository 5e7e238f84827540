package dungeon

import (
	"errors"
	"fmt"
)

// MinMapSize - минимальный размер карты по каждой оси
const MinMapSize = 20

// Значения по умолчанию для fluent-билдера
const (
	DefaultWidth   = 40
	DefaultHeight  = 25
	DefaultMinRoom = 4
	DefaultMaxRoom = 10
)

// ErrInvalidConfig - общая категория ошибок конфигурации.
// Все ошибки Validate совместимы с errors.Is(err, ErrInvalidConfig).
var ErrInvalidConfig = errors.New("invalid map config")

// Конкретные нарушенные ограничения
var (
	ErrMapTooSmall  = errors.New("map is too small")
	ErrRoomBounds   = errors.New("min room size must be below max room size")
	ErrRoomTooLarge = errors.New("max room size must be below map size")
	ErrRoomTooSmall = errors.New("min room size must be positive")
)

// ConfigError описывает нарушенное ограничение конфигурации
type ConfigError struct {
	Field string
	Msg   string
	kind  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Is позволяет проверять ошибку и по общей категории, и по конкретному ограничению
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig || target == e.kind
}

func (e *ConfigError) Unwrap() error {
	return e.kind
}

// Config - параметры генерации карты
type Config struct {
	Size        Point `json:"size"`
	MinRoomSize Point `json:"minRoomSize"`
	MaxRoomSize Point `json:"maxRoomSize"`
}

// Validate проверяет ограничения по очереди и возвращает первое нарушенное.
func (c Config) Validate() error {
	if c.Size.X < MinMapSize || c.Size.Y < MinMapSize {
		return &ConfigError{
			Field: "size",
			Msg:   fmt.Sprintf("size %v must be at least (%d,%d)", c.Size, MinMapSize, MinMapSize),
			kind:  ErrMapTooSmall,
		}
	}
	if c.MinRoomSize.X <= 0 || c.MinRoomSize.Y <= 0 {
		return &ConfigError{
			Field: "min_room_size",
			Msg:   fmt.Sprintf("min room size %v must be positive on both axes", c.MinRoomSize),
			kind:  ErrRoomTooSmall,
		}
	}
	if c.MinRoomSize.X >= c.MaxRoomSize.X {
		return &ConfigError{
			Field: "min_room_size.x",
			Msg:   fmt.Sprintf("min room width %d must be below max room width %d", c.MinRoomSize.X, c.MaxRoomSize.X),
			kind:  ErrRoomBounds,
		}
	}
	if c.MinRoomSize.Y >= c.MaxRoomSize.Y {
		return &ConfigError{
			Field: "min_room_size.y",
			Msg:   fmt.Sprintf("min room height %d must be below max room height %d", c.MinRoomSize.Y, c.MaxRoomSize.Y),
			kind:  ErrRoomBounds,
		}
	}
	if c.MaxRoomSize.X >= c.Size.X {
		return &ConfigError{
			Field: "max_room_size.x",
			Msg:   fmt.Sprintf("max room width %d must be below map width %d", c.MaxRoomSize.X, c.Size.X),
			kind:  ErrRoomTooLarge,
		}
	}
	if c.MaxRoomSize.Y >= c.Size.Y {
		return &ConfigError{
			Field: "max_room_size.y",
			Msg:   fmt.Sprintf("max room height %d must be below map height %d", c.MaxRoomSize.Y, c.Size.Y),
			kind:  ErrRoomTooLarge,
		}
	}
	return nil
}
