package websocket

import (
	"encoding/json"

	"github.com/thureindev/twist-tac-toe/internal/entity"
)

// Message is the wire envelope: an action type plus an action-specific
// payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload covers every inbound action; each handler reads the
// fields it needs.
type RequestPayload struct {
	Token    string         `json:"token,omitempty"`
	MatchID  string         `json:"match_id,omitempty"`
	Property string         `json:"property,omitempty"`
	Args     map[string]any `json:"args,omitempty"`
	X        int            `json:"x"`
	Y        int            `json:"y"`
	Starting entity.Role    `json:"starting,omitempty"`
}

type ResponsePayload struct {
	Session *entity.Session      `json:"session,omitempty"`
	Match   *entity.Match        `json:"match,omitempty"`
	Token   string               `json:"token,omitempty"`
	Results []*entity.GameResult `json:"results,omitempty"`
	Leader  *entity.Role         `json:"leader,omitempty"`
	Error   string               `json:"error,omitempty"`
}
