package app

import (
	"github.com/rs/zerolog/log"

	"parley/internal/domain"
)

// Relay forwards signaling envelopes between two members. It is
// deliberately protocol-blind: the payload is never parsed, only the
// addressing is resolved and the From field stamped.
type Relay struct {
	reg *Registry
}

func NewRelay(reg *Registry) *Relay {
	return &Relay{reg: reg}
}

// Forward delivers env to its target, overriding env.From with the
// sender's registry-known identity. Missing targets are an error for
// offers and answers (the sender is waiting) but a silent drop for
// candidates, which arrive in bursts and routinely race teardown.
func (r *Relay) Forward(connID domain.ConnID, env domain.SignalEnvelope) error {
	sender, ok := r.reg.Member(connID)
	if !ok {
		if env.Kind == domain.SignalCandidate {
			log.Debug().Str("module", "app.relay").Str("conn", string(connID)).Msg("candidate from non-member dropped")
			return nil
		}
		return domain.ErrNotInRoom
	}
	env.From = sender.ID

	if env.To == "" {
		if env.Kind == domain.SignalCandidate {
			log.Debug().Str("module", "app.relay").Str("from", string(sender.ID)).Msg("candidate without target dropped")
			return nil
		}
		return domain.ErrInvalidRequest("target member id is required")
	}
	target, ok := r.reg.MemberConn(env.To)
	if !ok {
		if env.Kind == domain.SignalCandidate {
			log.Debug().Str("module", "app.relay").Str("from", string(sender.ID)).Str("to", string(env.To)).Msg("candidate target gone, dropped")
			return nil
		}
		return domain.ErrUserNotFound
	}

	r.reg.Deliver(target, env)
	log.Debug().Str("module", "app.relay").Str("kind", string(env.Kind)).Str("from", string(env.From)).Str("to", string(env.To)).Msg("relayed")
	return nil
}
