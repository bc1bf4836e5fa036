package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"parley/internal/domain"
)

func (ctl *Controller) handleChat(
	connID domain.ConnID,
	conn *wsConn,
	data []byte,
) {
	type chatPayload struct {
		Type string `json:"type"`
		Room string `json:"room"`
		Body string `json:"body"`
	}
	var p chatPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad chat payload")
		ctl.sendError(conn, domain.ErrInvalidRequest("bad chat payload"))
		return
	}

	// The broadcast includes the sender; no direct reply needed.
	if _, err := ctl.Chat.Send(connID, domain.RoomID(p.Room), p.Body); err != nil {
		ctl.sendError(conn, err)
	}
}

func (ctl *Controller) handleMedia(
	connID domain.ConnID,
	conn *wsConn,
	data []byte,
) {
	type mediaPayload struct {
		Type  string `json:"type"`
		Audio bool   `json:"audio"`
		Video bool   `json:"video"`
	}
	var p mediaPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad media payload")
		ctl.sendError(conn, domain.ErrInvalidRequest("bad media payload"))
		return
	}

	if err := ctl.Rooms.SetMediaState(connID, p.Audio, p.Video); err != nil {
		ctl.sendError(conn, err)
	}
}

func (ctl *Controller) handlePing(
	conn *wsConn,
) {
	resp := struct {
		Type string `json:"type"`
	}{
		Type: "pong",
	}
	ctl.sendJSON(conn, resp)
}
