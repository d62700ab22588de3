package entity

// Player holds one side's identity, cumulative match score and the
// moves it made in the current game. Draws award half a point, so the
// score is a float.
type Player struct {
	Role        Role    `json:"role"`
	Score       float64 `json:"score"`
	MoveHistory []Cell  `json:"move_history,omitempty"`
}

func NewPlayer(role Role) *Player {
	return &Player{Role: role}
}

func (that *Player) RecordMove(x, y int) {
	that.MoveHistory = append(that.MoveHistory, Cell{X: x, Y: y})
}

func (that *Player) ResetMoveHistory() {
	that.MoveHistory = nil
}

func (that *Player) AddScore(amount float64) {
	that.Score += amount
}

func (that *Player) ResetScore() {
	that.Score = 0
}
