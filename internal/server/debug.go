package server

import (
	"encoding/json"
	"mapgen-server/internal/engine"
	"net/http"
)

// DebugHandler предоставляет доступ к внутреннему состоянию сервиса
type DebugHandler struct {
	Service *engine.MapService
}

func NewDebugHandler(s *engine.MapService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/maps", h.handleListMaps)
	mux.HandleFunc("/debug/config", h.handleConfig)
}

// /debug/maps - карты в кэше, от старых к новым
func (h *DebugHandler) handleListMaps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.List())
}

// /debug/config - параметры по умолчанию, с которыми работает сервис
func (h *DebugHandler) handleConfig(w http.ResponseWriter, r *http.Request) {
	cfg := h.Service.Config()
	cfg.DatabaseURL = "" // может содержать пароль

	writeJSON(w, cfg)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
