package dungeon

import "math/rand"

// Random - источник случайных чисел для генератора.
// Ядро не знает конкретный алгоритм, поэтому в тестах его можно
// подменить заранее записанной последовательностью.
type Random interface {
	// IntRange возвращает равномерно распределенное число из [lo, hi] (включительно).
	IntRange(lo, hi int) int
	// Bool возвращает true с вероятностью p.
	Bool(p float64) bool
}

// SeededRandom - Random поверх math/rand с фиксированным зерном.
// Одно и то же зерно всегда дает одну и ту же карту.
type SeededRandom struct {
	rng *rand.Rand
}

// NewRandom создает детерминированный источник из зерна
func NewRandom(seed int64) *SeededRandom {
	return &SeededRandom{rng: rand.New(rand.NewSource(seed))}
}

func (r *SeededRandom) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return r.rng.Intn(hi-lo+1) + lo
}

func (r *SeededRandom) Bool(p float64) bool {
	return r.rng.Float64() < p
}

// randSpan берет число из [lo, hi], но не тратит выборку,
// если диапазон схлопнулся. От этого зависит порядок выборок,
// а значит и воспроизводимость карты по зерну.
func randSpan(rng Random, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return rng.IntRange(lo, hi)
}
