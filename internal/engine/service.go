package engine

import (
	"errors"
	"fmt"
	"mapgen-server/internal/domain"
	"mapgen-server/internal/infrastructure/storage"
	"mapgen-server/pkg/api"
	"mapgen-server/pkg/dungeon"
	"mapgen-server/pkg/logger"
	"mapgen-server/pkg/utils"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrBadRequest - запрос не прошел валидацию DTO
var ErrBadRequest = errors.New("bad request")

// MapService генерирует карты, держит последние в памяти
// и при необходимости сохраняет их в хранилище.
type MapService struct {
	cfg   Config
	store storage.Store // может быть nil

	mu      sync.RWMutex
	levels  map[string]*domain.LevelRecord
	order   []string // порядок добавления, для вытеснения старых
	counter int64

	now func() time.Time
}

// NewService создает сервис. store может быть nil - тогда карты живут только в кэше.
func NewService(cfg Config, store storage.Store) *MapService {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 1
	}
	return &MapService{
		cfg:    cfg,
		store:  store,
		levels: make(map[string]*domain.LevelRecord),
		now:    time.Now,
	}
}

// Config возвращает конфиг сервиса
func (s *MapService) Config() Config {
	return s.cfg
}

// ResolveSeed выбирает зерно для запроса: явное, из имени, или мастер-зерно + N
func (s *MapService) ResolveSeed(req api.MapRequest) int64 {
	switch {
	case req.Seed != 0:
		return req.Seed
	case req.Name != "":
		return utils.StringToSeed(req.Name)
	default:
		s.mu.Lock()
		s.counter++
		n := s.counter
		s.mu.Unlock()
		return s.cfg.Seed + n
	}
}

// MapConfig заполняет пустые поля запроса значениями по умолчанию
func (s *MapService) MapConfig(req api.MapRequest) dungeon.Config {
	cfg := dungeon.Config{
		Size:        dungeon.NewPoint(s.cfg.Width, s.cfg.Height),
		MinRoomSize: s.cfg.MinRoom,
		MaxRoomSize: s.cfg.MaxRoom,
	}
	if req.Width != 0 {
		cfg.Size.X = req.Width
	}
	if req.Height != 0 {
		cfg.Size.Y = req.Height
	}
	if req.MinRoom.W != 0 {
		cfg.MinRoomSize.X = req.MinRoom.W
	}
	if req.MinRoom.H != 0 {
		cfg.MinRoomSize.Y = req.MinRoom.H
	}
	if req.MaxRoom.W != 0 {
		cfg.MaxRoomSize.X = req.MaxRoom.W
	}
	if req.MaxRoom.H != 0 {
		cfg.MaxRoomSize.Y = req.MaxRoom.H
	}
	return cfg
}

// Generate строит карту по запросу.
// Ошибки: ErrBadRequest (DTO), dungeon.ErrInvalidConfig (геометрия),
// ошибка хранилища при req.Save.
func (s *MapService) Generate(req api.MapRequest) (*domain.LevelRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	seed := s.ResolveSeed(req)
	cfg := s.MapConfig(req)

	started := s.now()
	m, err := dungeon.New(cfg, dungeon.NewRandom(seed))
	if err != nil {
		return nil, err
	}

	rec := domain.NewLevelRecord(utils.GenerateID(), req.Name, seed, m, s.now().Unix())
	s.put(rec)

	logger.Log.WithFields(logrus.Fields{
		"id":    rec.ID,
		"seed":  seed,
		"size":  cfg.Size.String(),
		"rooms": len(rec.Rooms),
		"took":  s.now().Sub(started),
	}).Info("Map generated")

	if req.Save {
		if err := s.save(rec); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

// Get ищет карту в кэше, затем в хранилище
func (s *MapService) Get(id string) (*domain.LevelRecord, error) {
	s.mu.RLock()
	rec, ok := s.levels[id]
	s.mu.RUnlock()
	if ok {
		return rec, nil
	}

	if s.store == nil {
		return nil, storage.ErrNotFound
	}
	rec, err := s.store.LoadLevel(id)
	if err != nil {
		return nil, err
	}
	s.put(rec)
	return rec, nil
}

// Save сохраняет карту из кэша в хранилище
func (s *MapService) Save(id string) error {
	s.mu.RLock()
	rec, ok := s.levels[id]
	s.mu.RUnlock()
	if !ok {
		return storage.ErrNotFound
	}
	return s.save(rec)
}

func (s *MapService) save(rec *domain.LevelRecord) error {
	if s.store == nil {
		return errors.New("no storage configured")
	}
	if err := s.store.SaveLevel(rec); err != nil {
		logger.Log.WithError(err).WithField("id", rec.ID).Error("Failed to save map")
		return fmt.Errorf("save map %s: %w", rec.ID, err)
	}
	logger.Log.WithField("id", rec.ID).Debug("Map saved")
	return nil
}

// List возвращает карты из кэша в порядке генерации
func (s *MapService) List() []api.MapSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]api.MapSummary, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, BuildSummary(s.levels[id]))
	}
	return out
}

// put кладет карту в кэш, вытесняя самую старую при переполнении
func (s *MapService) put(rec *domain.LevelRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.levels[rec.ID]; ok {
		s.levels[rec.ID] = rec
		return
	}
	s.levels[rec.ID] = rec
	s.order = append(s.order, rec.ID)

	for len(s.order) > s.cfg.CacheSize {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.levels, oldest)
	}
}

// Close закрывает хранилище
func (s *MapService) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
