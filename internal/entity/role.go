package entity

// Role is the mark identity on the board. RoleNone doubles as the empty
// cell value and as the "nobody" answer for winner/leader queries.
type Role string

const (
	RoleNone Role = ""
	RoleX    Role = "X"
	RoleO    Role = "O"
)

const (
	StateReady     = "ready"
	StatePreparing = "preparing"
	StateOngoing   = "ongoing"
	StateFinished  = "finished"
)

// Cell is a board coordinate. X is the column, Y is the row.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (that Role) Opponent() Role {
	switch that {
	case RoleX:
		return RoleO
	case RoleO:
		return RoleX
	default:
		return RoleNone
	}
}
