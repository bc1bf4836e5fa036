package domain

import "encoding/json"

// SignalKind is the closed set of relayed message kinds.
type SignalKind string

const (
	SignalOffer     SignalKind = "offer"
	SignalAnswer    SignalKind = "answer"
	SignalCandidate SignalKind = "candidate"
)

// SignalEnvelope carries one signaling message between two members.
// Payload is opaque to the server: session descriptions and candidates
// are browser business, the relay only moves the bytes.
//
// From is stamped server-side from the sender's registered identity;
// a client-supplied value is never trusted.
type SignalEnvelope struct {
	Kind    SignalKind      `json:"type"`
	From    MemberID        `json:"from,omitempty"`
	To      MemberID        `json:"to"`
	Payload json.RawMessage `json:"payload"`
}
