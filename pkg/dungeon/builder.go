package dungeon

// LevelBuilder предоставляет fluent API для генерации карты
type LevelBuilder struct {
	rng Random
	cfg Config
}

// NewLevel создает builder с размерами по умолчанию
func NewLevel(rng Random) *LevelBuilder {
	return &LevelBuilder{
		rng: rng,
		cfg: Config{
			Size:        Point{X: DefaultWidth, Y: DefaultHeight},
			MinRoomSize: Point{X: DefaultMinRoom, Y: DefaultMinRoom},
			MaxRoomSize: Point{X: DefaultMaxRoom, Y: DefaultMaxRoom},
		},
	}
}

// WithSize устанавливает размер карты
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.cfg.Size = Point{X: width, Y: height}
	return b
}

// WithRoomSize устанавливает границы размера комнат
func (b *LevelBuilder) WithRoomSize(minSize, maxSize Point) *LevelBuilder {
	b.cfg.MinRoomSize = minSize
	b.cfg.MaxRoomSize = maxSize
	return b
}

// Config возвращает накопленный конфиг
func (b *LevelBuilder) Config() Config {
	return b.cfg
}

// Build генерирует карту
func (b *LevelBuilder) Build() (*BSPMap, error) {
	return New(b.cfg, b.rng)
}
