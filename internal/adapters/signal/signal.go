package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"parley/internal/app"
	"parley/internal/config"
	"parley/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

// Controller owns the WS side of the signaling boundary. One instance
// serves all connections; per-connection state lives in wsConn.
type Controller struct {
	Registry *app.Registry
	Rooms    *app.Rooms
	Relay    *app.Relay
	Chat     *app.Chat

	cfg     *config.Config
	limiter *rateLimiter
}

func NewController(cfg *config.Config, reg *app.Registry, rooms *app.Rooms, relay *app.Relay, chat *app.Chat) *Controller {
	return &Controller{
		Registry: reg,
		Rooms:    rooms,
		Relay:    relay,
		Chat:     chat,
		cfg:      cfg,
		limiter:  newRateLimiter(cfg.RateLimit, cfg.RateInterval),
	}
}

type wsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}

	conn := &wsConn{
		conn: ws,
		send: make(chan core.Frame, ctl.cfg.SendBuffer),
	}
	connID := ctl.Registry.Register(conn)
	log.Info().Str("module", "signal").Str("conn", string(connID)).Msg("new WS connection")

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, connID, conn)
}
