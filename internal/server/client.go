package server

import (
	"mapgen-server/internal/engine"
	"mapgen-server/pkg/api"
	"mapgen-server/pkg/logger"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и MapService.
// Каждый MapRequest от клиента превращается в один ответ MAP или ERROR.
type Client struct {
	Maps *engine.MapService
	Conn *websocket.Conn
	Send chan api.ServerResponse

	// done закрывается, когда writePump завершился и Send больше никто не читает
	done chan struct{}
}

func NewClient(maps *engine.MapService, conn *websocket.Conn) *Client {
	return &Client{
		Maps: maps,
		Conn: conn,
		Send: make(chan api.ServerResponse, 16),
		done: make(chan struct{}),
	}
}

// readPump читает запросы от клиента
func (c *Client) readPump() {
	defer func() {
		// writePump увидит закрытый канал и отправит CloseMessage
		close(c.Send)
		logger.Log.WithField("remote", c.Conn.RemoteAddr().String()).Debug("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	for {
		var req api.MapRequest
		err := c.Conn.ReadJSON(&req)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			return
		}

		if !c.deliver(c.handle(req)) {
			return
		}
	}
}

// deliver передает ответ в writePump. false - писать уже некому.
func (c *Client) deliver(resp api.ServerResponse) bool {
	select {
	case c.Send <- resp:
		return true
	case <-c.done:
		return false
	}
}

func (c *Client) handle(req api.MapRequest) api.ServerResponse {
	rec, err := c.Maps.Generate(req)
	if err != nil {
		logger.Log.WithError(err).Debug("WS map request rejected")
		return engine.ErrorResponse(err)
	}
	return engine.BuildMapResponse(rec, req.Dense)
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
