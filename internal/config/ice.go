package config

import (
	"errors"
	"strings"

	"github.com/pion/webrtc/v4"
)

var errTurnCredentials = errors.New("turn_urls requires turn_username and turn_credential")

// ICEServers builds the server list advertised to clients at bootstrap.
// The relay itself never opens a peer connection; this is purely
// configuration handed to browsers so they can find a path.
func (c *Config) ICEServers() ([]webrtc.ICEServer, error) {
	var servers []webrtc.ICEServer

	stun := make([]string, 0, len(c.StunURLs))
	for _, u := range c.StunURLs {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if !strings.HasPrefix(u, "stun:") && !strings.HasPrefix(u, "stuns:") {
			return nil, errors.New("stun_urls entries must use the stun: or stuns: scheme")
		}
		stun = append(stun, u)
	}
	if len(stun) > 0 {
		servers = append(servers, webrtc.ICEServer{URLs: stun})
	}

	turn := make([]string, 0, len(c.TurnURLs))
	for _, u := range c.TurnURLs {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if !strings.HasPrefix(u, "turn:") && !strings.HasPrefix(u, "turns:") {
			return nil, errors.New("turn_urls entries must use the turn: or turns: scheme")
		}
		turn = append(turn, u)
	}
	if len(turn) > 0 {
		if c.TurnUsername == "" || c.TurnCredential == "" {
			return nil, errTurnCredentials
		}
		servers = append(servers, webrtc.ICEServer{
			URLs:       turn,
			Username:   c.TurnUsername,
			Credential: c.TurnCredential,
		})
	}

	if len(servers) == 0 {
		servers = append(servers, webrtc.ICEServer{URLs: []string{"stun:stun.l.google.com:19302"}})
	}
	return servers, nil
}
