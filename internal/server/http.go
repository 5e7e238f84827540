package server

import (
	"context"
	"encoding/json"
	"errors"
	"mapgen-server/internal/engine"
	"mapgen-server/internal/infrastructure/storage"
	"mapgen-server/internal/version"
	"mapgen-server/pkg/api"
	"mapgen-server/pkg/dungeon"
	"mapgen-server/pkg/logger"
	"net/http"
	_ "net/http/pprof" // Profiling
	"strconv"
	"time"
)

type Server struct {
	Maps *engine.MapService
	Port string

	httpSrv *http.Server
}

func New(maps *engine.MapService, port string) *Server {
	s := &Server{
		Maps: maps,
		Port: port,
	}
	s.httpSrv = &http.Server{
		Addr:              ":" + port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler собирает все роуты сервера
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))
	mux.HandleFunc("/map", enableCORS(s.handleMap))
	mux.HandleFunc("/maps/{id}", enableCORS(s.handleStoredMap))

	debugHandler := NewDebugHandler(s.Maps)
	debugHandler.RegisterRoutes(mux)

	// pprof регистрируется в DefaultServeMux
	mux.Handle("/debug/pprof/", http.DefaultServeMux)

	return mux
}

// Run запускает HTTP сервер и блокируется до Shutdown
func (s *Server) Run() error {
	logger.Log.Infof("BSP map server running on :%s", s.Port)
	err := s.httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown останавливает сервер, дожидаясь активных запросов
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("X-Mapgen-Build", version.Short())

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("Upgrade error:", err)
		return
	}

	client := NewClient(s.Maps, conn)

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}

// /map?w=40&h=25&seed=1&minw=4&minh=4&maxw=10&maxh=10&format=json|text
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	req, err := parseMapRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := s.Maps.Generate(req)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := dungeon.WriteText(w, rec.Tiles, rec.Config.Size); err != nil {
			logger.Log.WithError(err).Debug("write text map failed")
		}
		return
	}

	writeJSON(w, engine.BuildMapResponse(rec, req.Dense))
}

// /maps/{id} - карта из кэша или хранилища
func (s *Server) handleStoredMap(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Maps.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := dungeon.WriteText(w, rec.Tiles, rec.Config.Size); err != nil {
			logger.Log.WithError(err).Debug("write text map failed")
		}
		return
	}

	writeJSON(w, engine.BuildMapResponse(rec, r.URL.Query().Get("dense") != ""))
}

func parseMapRequest(r *http.Request) (api.MapRequest, error) {
	q := r.URL.Query()
	req := api.MapRequest{
		Name:  q.Get("name"),
		Dense: q.Get("dense") != "",
		Save:  q.Get("save") != "",
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"w", &req.Width},
		{"h", &req.Height},
		{"minw", &req.MinRoom.W},
		{"minh", &req.MinRoom.H},
		{"maxw", &req.MaxRoom.W},
		{"maxh", &req.MaxRoom.H},
	}
	for _, p := range ints {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, errors.New("invalid " + p.key + ": " + v)
		}
		*p.dst = n
	}

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return req, errors.New("invalid seed: " + v)
		}
		req.Seed = seed
	}
	return req, nil
}

// statusFor переводит ошибку сервиса в HTTP-код
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrBadRequest), errors.Is(err, dungeon.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Log.WithError(err).Error("Request failed")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(engine.ErrorResponse(err))
}
