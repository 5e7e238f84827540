package server

import (
	"encoding/json"
	"io"
	"mapgen-server/internal/engine"
	"mapgen-server/internal/infrastructure/storage"
	"mapgen-server/internal/version"
	"mapgen-server/pkg/api"
	"mapgen-server/pkg/logger"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func init() {
	logger.Log.SetOutput(io.Discard)
}

func newTestServer(t *testing.T) (*httptest.Server, *engine.MapService) {
	t.Helper()

	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cfg := engine.NewConfig()
	cfg.Seed = 1
	svc := engine.NewService(cfg, store)

	ts := httptest.NewServer(New(svc, "0").Handler())
	t.Cleanup(ts.Close)
	return ts, svc
}

func getJSON(t *testing.T, url string, dst interface{}) int {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("health: %d %q", resp.StatusCode, body)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS header missing")
	}
	if got := resp.Header.Get("X-Mapgen-Build"); got != version.Short() {
		t.Errorf("X-Mapgen-Build = %q, want %q", got, version.Short())
	}
}

func TestMapJSON(t *testing.T) {
	ts, _ := newTestServer(t)

	var resp api.ServerResponse
	code := getJSON(t, ts.URL+"/map?w=30&h=20&seed=5&minw=3&minh=3&maxw=8&maxh=8&dense=1", &resp)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", code, resp.Error)
	}
	if resp.Type != api.TypeMap || resp.Map == nil {
		t.Fatalf("Unexpected response: %+v", resp)
	}
	m := resp.Map
	if m.Seed != 5 || m.Grid.Width != 30 || m.Grid.Height != 20 {
		t.Errorf("Unexpected map meta: seed=%d grid=%+v", m.Seed, m.Grid)
	}
	if m.MinRoom != (api.SizeView{W: 3, H: 3}) || m.MaxRoom != (api.SizeView{W: 8, H: 8}) {
		t.Errorf("Room bounds not applied: %+v %+v", m.MinRoom, m.MaxRoom)
	}
	if len(m.Rows) != 31 {
		t.Errorf("Expected 31 dense rows, got %d", len(m.Rows))
	}
}

func TestMapText(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/map?w=20&h=22&seed=1&format=text")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain") {
		t.Errorf("Unexpected content type %q", resp.Header.Get("Content-Type"))
	}
	lines := strings.Split(strings.TrimSuffix(string(body), "\n"), "\n")
	if len(lines) != 21 {
		t.Fatalf("Expected 21 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if len(line) != 23 {
			t.Errorf("Row %d has %d columns, want 23", i, len(line))
		}
		if strings.Trim(line, "01x") != "" {
			t.Errorf("Row %d has unexpected characters: %q", i, line)
		}
	}
}

func TestMapErrors(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name  string
		query string
		code  int
	}{
		{"not a number", "?w=abc", http.StatusBadRequest},
		{"bad seed", "?seed=1.5", http.StatusBadRequest},
		{"negative", "?w=-5", http.StatusBadRequest},
		{"too small", "?w=19&h=20", http.StatusBadRequest},
		{"min above max", "?minw=10&maxw=10", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp api.ServerResponse
			code := getJSON(t, ts.URL+"/map"+tt.query, &resp)
			if code != tt.code {
				t.Errorf("Expected %d, got %d", tt.code, code)
			}
			if resp.Type != api.TypeError || resp.Error == "" {
				t.Errorf("Expected error response, got %+v", resp)
			}
		})
	}
}

func TestStoredMap(t *testing.T) {
	ts, svc := newTestServer(t)

	rec, err := svc.Generate(api.MapRequest{Seed: 11, Save: true})
	if err != nil {
		t.Fatal(err)
	}

	var resp api.ServerResponse
	if code := getJSON(t, ts.URL+"/maps/"+rec.ID, &resp); code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if resp.Map.ID != rec.ID || resp.Map.Seed != 11 {
		t.Errorf("Unexpected map: %+v", resp.Map)
	}

	var missing api.ServerResponse
	if code := getJSON(t, ts.URL+"/maps/nope", &missing); code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", code)
	}
}

func TestDebugMaps(t *testing.T) {
	ts, svc := newTestServer(t)

	svc.Generate(api.MapRequest{Name: "first"})
	svc.Generate(api.MapRequest{Name: "second"})

	var list []api.MapSummary
	getJSON(t, ts.URL+"/debug/maps", &list)
	if len(list) != 2 || list[0].Name != "first" || list[1].Name != "second" {
		t.Errorf("Unexpected list: %+v", list)
	}
}

func TestWebSocket(t *testing.T) {
	ts, _ := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	// 1. Нормальный запрос
	if err := conn.WriteJSON(api.MapRequest{Seed: 3, Width: 24, Height: 24}); err != nil {
		t.Fatal(err)
	}
	var resp api.ServerResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Type != api.TypeMap || resp.Map.Seed != 3 || resp.Map.Grid.Width != 24 {
		t.Errorf("Unexpected map response: %+v", resp)
	}

	// 2. Невалидный запрос не рвет соединение
	if err := conn.WriteJSON(api.MapRequest{Width: 5, Height: 5}); err != nil {
		t.Fatal(err)
	}
	var errResp api.ServerResponse
	if err := conn.ReadJSON(&errResp); err != nil {
		t.Fatal(err)
	}
	if errResp.Type != api.TypeError {
		t.Errorf("Expected ERROR, got %+v", errResp)
	}

	// 3. И после ошибки сервер продолжает отвечать
	if err := conn.WriteJSON(api.MapRequest{Seed: 3, Width: 24, Height: 24}); err != nil {
		t.Fatal(err)
	}
	var again api.ServerResponse
	if err := conn.ReadJSON(&again); err != nil {
		t.Fatal(err)
	}
	if again.Map == nil || len(again.Map.Rooms) != len(resp.Map.Rooms) {
		t.Error("Same seed over WS should give the same rooms")
	}
}

func TestStoredMapText(t *testing.T) {
	ts, svc := newTestServer(t)

	rec, err := svc.Generate(api.MapRequest{Seed: 4, Width: 20, Height: 20})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(ts.URL + "/maps/" + rec.ID + "?format=text")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if lines := strings.Count(string(body), "\n"); lines != 21 {
		t.Errorf("Expected 21 rows, got %d", lines)
	}
}

func TestClientDeliver(t *testing.T) {
	c := &Client{
		Send: make(chan api.ServerResponse, 1),
		done: make(chan struct{}),
	}

	if !c.deliver(api.ServerResponse{Type: api.TypeMap}) {
		t.Fatal("Expected delivery while the writer is alive")
	}

	// Буфер полон, writePump завершился: deliver не должен зависнуть
	close(c.done)
	result := make(chan bool, 1)
	go func() { result <- c.deliver(api.ServerResponse{Type: api.TypeMap}) }()

	select {
	case ok := <-result:
		if ok {
			t.Error("Expected deliver to give up after the writer stopped")
		}
	case <-time.After(time.Second):
		t.Fatal("deliver blocked after the writer stopped")
	}
}
