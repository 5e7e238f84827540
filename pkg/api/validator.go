package api

import "errors"

// MaxMapSide - верхняя граница стороны карты, которую сервер согласен строить
const MaxMapSide = 512

// MaxNameLen - ограничение длины имени карты
const MaxNameLen = 64

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

// Validate проверяет только то, что касается сервера: отрицательные
// значения и размер. Геометрию (min < max < size) проверяет генератор.
func (r MapRequest) Validate() error {
	if r.Width < 0 || r.Height < 0 {
		return errors.New("map size cannot be negative")
	}
	if r.Width > MaxMapSide || r.Height > MaxMapSide {
		return errors.New("map size too large")
	}
	if r.MinRoom.W < 0 || r.MinRoom.H < 0 || r.MaxRoom.W < 0 || r.MaxRoom.H < 0 {
		return errors.New("room size cannot be negative")
	}
	if len(r.Name) > MaxNameLen {
		return errors.New("name too long")
	}
	return nil
}
