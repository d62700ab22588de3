package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayer_MoveHistory(t *testing.T) {
	t.Run("Records moves in order and clears them", func(t *testing.T) {
		// Given: a fresh player
		player := NewPlayer(RoleX)

		// When: recording two moves
		player.RecordMove(0, 0)
		player.RecordMove(1, 2)

		// Then: history holds both in order
		assert.Equal(t, []Cell{{X: 0, Y: 0}, {X: 1, Y: 2}}, player.MoveHistory)

		// When: resetting history
		player.ResetMoveHistory()

		// Then: history is empty
		assert.Empty(t, player.MoveHistory)
	})
}

func TestPlayer_Score(t *testing.T) {
	t.Run("Accumulates wins and half-point draws", func(t *testing.T) {
		// Given: a fresh player
		player := NewPlayer(RoleO)

		// When: a win and a draw are awarded
		player.AddScore(1)
		player.AddScore(0.5)

		// Then: the score accumulates
		assert.InDelta(t, 1.5, player.Score, 0.0001)

		// When: resetting the score
		player.ResetScore()

		// Then: back to zero
		assert.Zero(t, player.Score)
	})
}

func TestRole_Opponent(t *testing.T) {
	assert.Equal(t, RoleO, RoleX.Opponent())
	assert.Equal(t, RoleX, RoleO.Opponent())
	assert.Equal(t, RoleNone, RoleNone.Opponent())
}
