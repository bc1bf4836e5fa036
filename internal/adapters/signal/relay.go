package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"parley/internal/domain"
)

// handleRelay covers offer, answer and candidate: the payload stays an
// opaque blob end to end, only addressing is read here.
func (ctl *Controller) handleRelay(
	connID domain.ConnID,
	conn *wsConn,
	kind domain.SignalKind,
	data []byte,
) {
	var env domain.SignalEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("kind", string(kind)).Msg("bad relay payload")
		ctl.sendError(conn, domain.ErrInvalidRequest("bad relay payload"))
		return
	}
	env.Kind = kind

	if err := ctl.Relay.Forward(connID, env); err != nil {
		ctl.sendError(conn, err)
	}
}
