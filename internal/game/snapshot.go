package game

import "github.com/thureindev/twist-tac-toe/internal/entity"

// Snapshot - flattens the aggregate into its serializable form. The
// board and players are handed over as-is; the caller persists the
// snapshot and does not keep mutating the game through it.
func (that *Game) Snapshot() *entity.GameSnapshot {
	return &entity.GameSnapshot{
		Board:       that.board,
		Players:     []*entity.Player{that.playerX, that.playerO},
		Turn:        that.currentTurn,
		FirstTurn:   that.firstTurn,
		WinLength:   that.winLength,
		Winner:      that.winner,
		WinCells:    that.winCells,
		GamesPlayed: that.totalGamesPlayed,
		State:       that.state,
	}
}

// Restore - rebuilds a game aggregate from a stored snapshot. The
// inverse of Snapshot for every field the getters expose.
func Restore(snapshot *entity.GameSnapshot) *Game {
	gameInstance := &Game{
		board:            snapshot.Board,
		playerX:          entity.NewPlayer(entity.RoleX),
		playerO:          entity.NewPlayer(entity.RoleO),
		currentTurn:      snapshot.Turn,
		firstTurn:        snapshot.FirstTurn,
		winLength:        snapshot.WinLength,
		winner:           snapshot.Winner,
		winCells:         snapshot.WinCells,
		totalGamesPlayed: snapshot.GamesPlayed,
		state:            snapshot.State,
	}

	for _, player := range snapshot.Players {
		switch player.Role {
		case entity.RoleX:
			gameInstance.playerX = player
		case entity.RoleO:
			gameInstance.playerO = player
		}
	}

	// a snapshot restored from JSON may carry a nil placement map
	if gameInstance.board.Placed == nil {
		gameInstance.board.Placed = make(map[entity.Role][]entity.Cell)
	}

	return gameInstance
}
