package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"parley/internal/app"
	"parley/internal/domain"
)

func (ctl *Controller) handleJoin(
	connID domain.ConnID,
	conn *wsConn,
	data []byte,
) {
	type joinPayload struct {
		Type string `json:"type"`
		Room string `json:"room"`
		Name string `json:"name"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendError(conn, domain.ErrInvalidRequest("bad join payload"))
		return
	}

	res, err := ctl.Rooms.Join(connID, p.Room, p.Name)
	if err != nil {
		log.Info().Err(err).Str("module", "signal").Str("conn", string(connID)).Str("room", p.Room).Msg("join rejected")
		ctl.sendError(conn, err)
		return
	}

	resp := struct {
		Type     string           `json:"type"`
		Room     domain.RoomID    `json:"room"`
		Member   app.MemberInfo   `json:"member"`
		Members  []app.MemberInfo `json:"members"`
		Count    int              `json:"count"`
		Capacity int              `json:"capacity"`
	}{
		Type:     "room_state",
		Room:     res.Room,
		Member:   res.Member,
		Members:  res.Existing,
		Count:    res.Count,
		Capacity: res.Capacity,
	}
	ctl.sendJSON(conn, resp)
}

// handleLeave ends the membership but keeps the socket open; the party
// can join another room on the same connection.
func (ctl *Controller) handleLeave(
	connID domain.ConnID,
	conn *wsConn,
) {
	log.Info().Str("module", "signal").Str("conn", string(connID)).Msg("leave")
	ctl.Rooms.Leave(connID)
	ctl.sendJSON(conn, map[string]any{
		"type": "left",
	})
}

func (ctl *Controller) handleWhoAmI(
	connID domain.ConnID,
	conn *wsConn,
) {
	resp := struct {
		Type   string          `json:"type"`
		Member *app.MemberInfo `json:"member,omitempty"`
		Room   domain.RoomID   `json:"room,omitempty"`
	}{
		Type: "whoami",
	}
	if m, ok := ctl.Rooms.MemberOf(connID); ok {
		info := app.NewMemberInfo(m)
		resp.Member = &info
		resp.Room = m.RoomID
	}
	ctl.sendJSON(conn, resp)
}
