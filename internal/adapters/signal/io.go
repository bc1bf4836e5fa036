package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"parley/internal/domain"
)

func (ctl *Controller) writePump(ctx context.Context, c *wsConn) {
	ping := time.NewTicker(ctl.cfg.PingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump ping error")
				return
			}
		}
	}
}

// readPump drains the socket and is the single place disconnects are
// handled: explicit leave and transport drop run the same cleanup.
func (ctl *Controller) readPump(ctx context.Context, cancel context.CancelFunc, connID domain.ConnID, c *wsConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("conn", string(connID)).Msg("readPump closing")
		ctl.Rooms.Leave(connID)
		ctl.Registry.Unregister(connID)
		ctl.limiter.Forget(connID)
		cancel()
		c.Close()
	}()

	c.conn.SetReadLimit(ctl.cfg.ReadLimit)
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("conn", string(connID)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "signal").Str("conn", string(connID)).Msg("readPump read error")
				return
			}
			if !ctl.limiter.Allow(connID) {
				log.Warn().Str("module", "signal").Str("conn", string(connID)).Msg("rate limit exceeded, closing")
				return
			}
			ctl.dispatch(connID, c, data)
		}
	}
}

// dispatch is the handler boundary: one bad event never takes down the
// read loop or touches other connections.
func (ctl *Controller) dispatch(connID domain.ConnID, c *wsConn, data []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Str("module", "signal").Str("conn", string(connID)).Msg("handler panic")
			ctl.sendError(c, &domain.Error{Code: domain.CodeInternalError, Message: "internal error"})
		}
	}()

	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		ctl.sendError(c, domain.ErrInvalidRequest("malformed message"))
		return
	}

	switch env.Type {
	case "join":
		ctl.handleJoin(connID, c, data)
	case "leave":
		ctl.handleLeave(connID, c)
	case "offer":
		ctl.handleRelay(connID, c, domain.SignalOffer, data)
	case "answer":
		ctl.handleRelay(connID, c, domain.SignalAnswer, data)
	case "candidate":
		ctl.handleRelay(connID, c, domain.SignalCandidate, data)
	case "chat":
		ctl.handleChat(connID, c, data)
	case "media":
		ctl.handleMedia(connID, c, data)
	case "whoami":
		ctl.handleWhoAmI(connID, c)
	case "ping":
		ctl.handlePing(c)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown signal")
		ctl.sendError(c, domain.ErrInvalidRequest("unknown message type"))
	}
}

func (ctl *Controller) sendJSON(c *wsConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}

func (ctl *Controller) sendError(c *wsConn, err error) {
	e := domain.AsError(err)
	resp := struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Type:    "error",
		Code:    e.Code,
		Message: e.Message,
	}
	ctl.sendJSON(c, resp)
}
