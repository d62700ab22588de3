package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thureindev/twist-tac-toe/internal/entity"
)

func newTestGame() *Game {
	return New(Settings{BoardWidth: 3, BoardHeight: 3, WinLength: 3})
}

func TestNew(t *testing.T) {
	t.Run("Readies the first game with X to move", func(t *testing.T) {
		// Given / When: a fresh game from default settings
		gameInstance := newTestGame()

		// Then: it sits in READY with X first and no history
		assert.Equal(t, entity.StateReady, gameInstance.State())
		assert.Equal(t, entity.RoleX, gameInstance.CurrentTurn())
		assert.Equal(t, entity.RoleX, gameInstance.FirstTurn())
		assert.Equal(t, entity.RoleNone, gameInstance.Winner())
		assert.Zero(t, gameInstance.TotalGamesPlayed())
	})

	t.Run("Clamps the win length to the smaller dimension", func(t *testing.T) {
		// Given / When: settings asking for a win length larger than the board
		gameInstance := New(Settings{BoardWidth: 3, BoardHeight: 4, WinLength: 9})

		// Then: the win length is clamped to 3
		assert.Equal(t, 3, gameInstance.WinLength())
	})
}

func TestGame_PlayerMakeMove(t *testing.T) {
	t.Run("Rejects moves outside ONGOING without mutation", func(t *testing.T) {
		// Given: a game still in READY
		gameInstance := newTestGame()

		// When: trying to move before the game starts
		ok := gameInstance.PlayerMakeMove(0, 0)

		// Then: the move fails and nothing changed
		assert.False(t, ok)
		assert.Equal(t, entity.RoleNone, gameInstance.Board().At(0, 0))
		assert.Empty(t, gameInstance.CurrentPlayer().MoveHistory)
	})

	t.Run("Rejects occupied cells without history mutation", func(t *testing.T) {
		// Given: an ongoing game with X at (0, 0)
		gameInstance := newTestGame()
		gameInstance.StartGame()
		require.True(t, gameInstance.PlayerMakeMove(0, 0))
		gameInstance.UpdateStateByLastMove(0, 0)

		// When: O plays the same cell
		ok := gameInstance.PlayerMakeMove(0, 0)

		// Then: the move fails and O's history stays empty
		assert.False(t, ok)
		assert.Empty(t, gameInstance.Player(entity.RoleO).MoveHistory)
	})

	t.Run("Records the move in the mover's history", func(t *testing.T) {
		// Given: an ongoing game
		gameInstance := newTestGame()
		gameInstance.StartGame()

		// When: X moves
		require.True(t, gameInstance.PlayerMakeMove(1, 1))

		// Then: the move is in X's history, visible through the owned player
		assert.Equal(t, []entity.Cell{{X: 1, Y: 1}}, gameInstance.Player(entity.RoleX).MoveHistory)
	})
}

// playTurn makes one move and resolves its outcome, the way the
// orchestrating caller does.
func playTurn(t *testing.T, gameInstance *Game, x, y int) {
	t.Helper()
	require.True(t, gameInstance.PlayerMakeMove(x, y))
	gameInstance.UpdateStateByLastMove(x, y)
}

func TestGame_WinScenario(t *testing.T) {
	t.Run("X wins with a column on a 3x3 board", func(t *testing.T) {
		// Given: an ongoing 3x3 game, win length 3
		gameInstance := newTestGame()
		gameInstance.StartGame()

		// When: X plays (0,0),(0,1),(0,2) with O elsewhere in between
		playTurn(t, gameInstance, 0, 0)
		playTurn(t, gameInstance, 1, 0)
		playTurn(t, gameInstance, 0, 1)
		playTurn(t, gameInstance, 1, 1)
		playTurn(t, gameInstance, 0, 2)

		// Then: X is the winner with the full column as the line
		assert.Equal(t, entity.RoleX, gameInstance.Winner())
		assert.Equal(t, []entity.Cell{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}, gameInstance.WinCells())
		assert.Equal(t, entity.StateFinished, gameInstance.State())
		assert.Equal(t, 1, gameInstance.TotalGamesPlayed())
		assert.InDelta(t, 1.0, gameInstance.Player(entity.RoleX).Score, 0.0001)
		assert.Zero(t, gameInstance.Player(entity.RoleO).Score)
	})
}

func TestGame_DrawScenario(t *testing.T) {
	t.Run("Full board with no line is a draw worth half a point each", func(t *testing.T) {
		// Given: an ongoing 3x3 game
		gameInstance := newTestGame()
		gameInstance.StartGame()

		// When: the board fills with no three-in-a-row
		//   X O X
		//   X O O
		//   O X X
		moves := []entity.Cell{
			{X: 0, Y: 0}, // X
			{X: 1, Y: 0}, // O
			{X: 2, Y: 0}, // X
			{X: 1, Y: 1}, // O
			{X: 0, Y: 1}, // X
			{X: 2, Y: 1}, // O
			{X: 1, Y: 2}, // X
			{X: 0, Y: 2}, // O
			{X: 2, Y: 2}, // X
		}
		for _, move := range moves {
			playTurn(t, gameInstance, move.X, move.Y)
		}

		// Then: nobody won and both players earned 0.5
		assert.Equal(t, entity.RoleNone, gameInstance.Winner())
		assert.Empty(t, gameInstance.WinCells())
		assert.Equal(t, entity.StateFinished, gameInstance.State())
		assert.Equal(t, 1, gameInstance.TotalGamesPlayed())
		assert.InDelta(t, 0.5, gameInstance.Player(entity.RoleX).Score, 0.0001)
		assert.InDelta(t, 0.5, gameInstance.Player(entity.RoleO).Score, 0.0001)
	})
}

func TestGame_UpdateStateByLastMove(t *testing.T) {
	t.Run("Passes the turn when the game continues", func(t *testing.T) {
		// Given: an ongoing game
		gameInstance := newTestGame()
		gameInstance.StartGame()

		// When: X makes a non-terminal move
		playTurn(t, gameInstance, 1, 1)

		// Then: it's O's turn and no game was counted
		assert.Equal(t, entity.RoleO, gameInstance.CurrentTurn())
		assert.Equal(t, entity.StateOngoing, gameInstance.State())
		assert.Zero(t, gameInstance.TotalGamesPlayed())
	})

	t.Run("Counts exactly one game per finish", func(t *testing.T) {
		// Given: a finished game
		gameInstance := newTestGame()
		gameInstance.StartGame()
		playTurn(t, gameInstance, 0, 0)
		playTurn(t, gameInstance, 1, 0)
		playTurn(t, gameInstance, 0, 1)
		playTurn(t, gameInstance, 1, 1)
		playTurn(t, gameInstance, 0, 2)
		require.Equal(t, 1, gameInstance.TotalGamesPlayed())

		// When: a second game finishes
		gameInstance.NextGame()
		gameInstance.StartGame()
		playTurn(t, gameInstance, 0, 0) // O first this game
		playTurn(t, gameInstance, 1, 0)
		playTurn(t, gameInstance, 0, 1)
		playTurn(t, gameInstance, 1, 1)
		playTurn(t, gameInstance, 0, 2)

		// Then: the counter is exactly 2
		assert.Equal(t, 2, gameInstance.TotalGamesPlayed())
	})
}

func TestGame_NextGame(t *testing.T) {
	t.Run("Alternates the first-turn player between games", func(t *testing.T) {
		// Given: a finished game where X moved first
		gameInstance := newTestGame()
		gameInstance.StartGame()
		playTurn(t, gameInstance, 0, 0)
		playTurn(t, gameInstance, 1, 0)
		playTurn(t, gameInstance, 0, 1)
		playTurn(t, gameInstance, 1, 1)
		playTurn(t, gameInstance, 0, 2)
		require.Equal(t, entity.StateFinished, gameInstance.State())
		previousFirst := gameInstance.FirstTurn()

		// When: advancing to the next game
		gameInstance.NextGame()

		// Then: READY, the other player moves first, and it is their turn
		assert.Equal(t, entity.StateReady, gameInstance.State())
		assert.NotEqual(t, previousFirst, gameInstance.FirstTurn())
		assert.Equal(t, gameInstance.FirstTurn(), gameInstance.CurrentTurn())
	})

	t.Run("Clears the previous winner and line data", func(t *testing.T) {
		// Given: a finished game with a winner
		gameInstance := newTestGame()
		gameInstance.StartGame()
		playTurn(t, gameInstance, 0, 0)
		playTurn(t, gameInstance, 1, 0)
		playTurn(t, gameInstance, 0, 1)
		playTurn(t, gameInstance, 1, 1)
		playTurn(t, gameInstance, 0, 2)
		require.Equal(t, entity.RoleX, gameInstance.Winner())

		// When: advancing to the next game
		gameInstance.NextGame()

		// Then: winner and line are cleared, scores survive
		assert.Equal(t, entity.RoleNone, gameInstance.Winner())
		assert.Empty(t, gameInstance.WinCells())
		assert.InDelta(t, 1.0, gameInstance.Player(entity.RoleX).Score, 0.0001)
	})
}

func TestGame_ReadyGameHistoryAsymmetry(t *testing.T) {
	t.Run("Clears only the first-turn player's move history", func(t *testing.T) {
		// Given: a finished game where both players have history
		gameInstance := newTestGame()
		gameInstance.StartGame()
		playTurn(t, gameInstance, 0, 0)
		playTurn(t, gameInstance, 1, 0)
		playTurn(t, gameInstance, 0, 1)
		playTurn(t, gameInstance, 1, 1)
		playTurn(t, gameInstance, 0, 2)
		require.NotEmpty(t, gameInstance.Player(entity.RoleX).MoveHistory)
		require.NotEmpty(t, gameInstance.Player(entity.RoleO).MoveHistory)

		// When: the next game readies with O moving first
		gameInstance.NextGame()
		require.Equal(t, entity.RoleO, gameInstance.FirstTurn())

		// Then: O's history is cleared, X keeps its previous game's moves
		assert.Empty(t, gameInstance.Player(entity.RoleO).MoveHistory)
		assert.NotEmpty(t, gameInstance.Player(entity.RoleX).MoveHistory)
	})
}

func TestGame_ResetMatch(t *testing.T) {
	t.Run("Zeroes scores and the game counter", func(t *testing.T) {
		// Given: a match with one completed game
		gameInstance := newTestGame()
		gameInstance.StartGame()
		playTurn(t, gameInstance, 0, 0)
		playTurn(t, gameInstance, 1, 0)
		playTurn(t, gameInstance, 0, 1)
		playTurn(t, gameInstance, 1, 1)
		playTurn(t, gameInstance, 0, 2)
		require.Equal(t, 1, gameInstance.TotalGamesPlayed())

		// When: resetting the match with O starting
		gameInstance.ResetMatch(entity.RoleO)

		// Then: a clean slate with O to move first
		assert.Zero(t, gameInstance.TotalGamesPlayed())
		assert.Zero(t, gameInstance.Player(entity.RoleX).Score)
		assert.Zero(t, gameInstance.Player(entity.RoleO).Score)
		assert.Equal(t, entity.RoleO, gameInstance.FirstTurn())
		assert.Equal(t, entity.RoleO, gameInstance.CurrentTurn())
		assert.Equal(t, entity.StateReady, gameInstance.State())
	})

	t.Run("Defaults to X when no starting player is given", func(t *testing.T) {
		// Given: a game whose first turn drifted to O
		gameInstance := newTestGame()
		gameInstance.SwapFirstTurn()
		require.Equal(t, entity.RoleO, gameInstance.FirstTurn())

		// When: resetting with RoleNone
		gameInstance.ResetMatch(entity.RoleNone)

		// Then: X starts
		assert.Equal(t, entity.RoleX, gameInstance.FirstTurn())
	})
}

func TestGame_SwapTurns(t *testing.T) {
	t.Run("Always alternates between the two owned players", func(t *testing.T) {
		// Given: a fresh game with X to move
		gameInstance := newTestGame()

		// When / Then: every swap flips to the other fixed player
		first := gameInstance.SwapTurns()
		assert.Same(t, gameInstance.Player(entity.RoleO), first)

		second := gameInstance.SwapTurns()
		assert.Same(t, gameInstance.Player(entity.RoleX), second)

		third := gameInstance.SwapTurns()
		assert.Same(t, gameInstance.Player(entity.RoleO), third)
	})

	t.Run("SwapFirstTurn alternates strictly as well", func(t *testing.T) {
		gameInstance := newTestGame()

		first := gameInstance.SwapFirstTurn()
		assert.Same(t, gameInstance.Player(entity.RoleO), first)

		second := gameInstance.SwapFirstTurn()
		assert.Same(t, gameInstance.Player(entity.RoleX), second)
	})
}

func TestGame_MatchLeadingPlayer(t *testing.T) {
	t.Run("Returns NONE at 0-0", func(t *testing.T) {
		gameInstance := newTestGame()

		assert.Equal(t, entity.RoleNone, gameInstance.MatchLeadingPlayer())
	})

	t.Run("Returns NONE on tied fractional scores", func(t *testing.T) {
		// Given: both players at 1.5
		gameInstance := newTestGame()
		gameInstance.Player(entity.RoleX).AddScore(1.5)
		gameInstance.Player(entity.RoleO).AddScore(1.5)

		assert.Equal(t, entity.RoleNone, gameInstance.MatchLeadingPlayer())
	})

	t.Run("Returns the strictly higher scorer", func(t *testing.T) {
		gameInstance := newTestGame()
		gameInstance.Player(entity.RoleO).AddScore(1)

		assert.Equal(t, entity.RoleO, gameInstance.MatchLeadingPlayer())
	})
}

func TestGame_CurrentPlayerAliasing(t *testing.T) {
	t.Run("Score mutations through the current player are visible via the role getter", func(t *testing.T) {
		// Given: an ongoing game with X to move
		gameInstance := newTestGame()
		gameInstance.StartGame()

		// When: awarding through the current-player reference
		gameInstance.CurrentPlayer().AddScore(2)

		// Then: the same instance is reachable by role
		assert.InDelta(t, 2.0, gameInstance.Player(entity.RoleX).Score, 0.0001)
		assert.Same(t, gameInstance.Player(entity.RoleX), gameInstance.CurrentPlayer())
	})
}

func TestGame_LimitedPiecesPlay(t *testing.T) {
	t.Run("FIFO play never fills the board", func(t *testing.T) {
		// Given: a 3x3 game capped at 3 pieces per player with FIFO
		gameInstance := New(Settings{
			BoardWidth: 3, BoardHeight: 3, WinLength: 3,
			LimitedPieces: true, NumPieces: 3, FifoOrder: true,
		})
		gameInstance.StartGame()

		// When: X plays a fourth mark after reaching the cap
		playTurn(t, gameInstance, 0, 0) // X
		playTurn(t, gameInstance, 1, 0) // O
		playTurn(t, gameInstance, 0, 1) // X
		playTurn(t, gameInstance, 1, 1) // O
		playTurn(t, gameInstance, 2, 2) // X (third piece)
		playTurn(t, gameInstance, 2, 1) // O (third piece, blocks column 1... row)
		playTurn(t, gameInstance, 2, 0) // X fourth: oldest (0,0) is freed

		// Then: X still has exactly three marks and (0, 0) is open again
		assert.Equal(t, entity.RoleNone, gameInstance.Board().At(0, 0))
		assert.Len(t, gameInstance.Board().Placed[entity.RoleX], 3)
		assert.Equal(t, entity.StateOngoing, gameInstance.State())
	})
}
