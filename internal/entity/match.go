package entity

import "time"

// Match is the stored aggregate: a shareable ID, the sessions bound to
// it and the full game snapshot. Members[0] is the creator (X),
// Members[1] joins as O.
type Match struct {
	ID      string        `json:"id"`
	Members []string      `json:"members,omitempty"`
	Game    *GameSnapshot `json:"game"`
}

func (that *Match) IsFull() bool {
	return len(that.Members) >= 2
}

func (that *Match) HasMember(sessionID string) bool {
	for _, member := range that.Members {
		if member == sessionID {
			return true
		}
	}

	return false
}

// GameSnapshot is the serializable form of a game aggregate: everything
// the getters expose, as plain data. The game package produces and
// restores it; the repository layer only moves it around.
type GameSnapshot struct {
	Board       *Board    `json:"board"`
	Players     []*Player `json:"players"`
	Turn        Role      `json:"player_turn"`
	FirstTurn   Role      `json:"first_turn"`
	WinLength   int       `json:"win_length"`
	Winner      Role      `json:"winner,omitempty"`
	WinCells    []Cell    `json:"win_cells,omitempty"`
	GamesPlayed int       `json:"games_played"`
	State       string    `json:"state"`
}

// GameResult is one archived row per finished game.
type GameResult struct {
	ID          string
	MatchID     string
	Winner      Role
	ScoreX      float64
	ScoreO      float64
	GamesPlayed int
	FinishedAt  time.Time
}

// Session binds a connected client to a match and a role.
type Session struct {
	ID      string `json:"id"`
	MatchID string `json:"match_id,omitempty"`
	Role    Role   `json:"role,omitempty"`
}
