package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thureindev/twist-tac-toe/internal/entity"
	"github.com/thureindev/twist-tac-toe/testing/suite"
)

func TestResultRepository_SaveAndList(t *testing.T) {
	ctx, st := suite.NewSqlite(t)

	resultRepo := NewResultRepository(st.Connection)

	// Given: two archived games of one match and one of another
	finishedAt := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	first := &entity.GameResult{
		ID: "r1", MatchID: "m1", Winner: entity.RoleX,
		ScoreX: 1, ScoreO: 0, GamesPlayed: 1, FinishedAt: finishedAt,
	}
	second := &entity.GameResult{
		ID: "r2", MatchID: "m1", Winner: entity.RoleNone,
		ScoreX: 1.5, ScoreO: 0.5, GamesPlayed: 2, FinishedAt: finishedAt.Add(time.Minute),
	}
	other := &entity.GameResult{
		ID: "r3", MatchID: "m2", Winner: entity.RoleO,
		ScoreX: 0, ScoreO: 1, GamesPlayed: 1, FinishedAt: finishedAt,
	}

	// When: saving all three
	require.NoError(t, resultRepo.Save(ctx, first))
	require.NoError(t, resultRepo.Save(ctx, second))
	require.NoError(t, resultRepo.Save(ctx, other))

	// Then: listing by match returns only that match's rows, in game order
	results, err := resultRepo.ListByMatch(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "r1", results[0].ID)
	assert.Equal(t, entity.RoleX, results[0].Winner)
	assert.Equal(t, "r2", results[1].ID)
	assert.Equal(t, entity.RoleNone, results[1].Winner)
	assert.InDelta(t, 1.5, results[1].ScoreX, 0.0001)
	assert.InDelta(t, 0.5, results[1].ScoreO, 0.0001)
}

func TestResultRepository_ListByMatch_Empty(t *testing.T) {
	ctx, st := suite.NewSqlite(t)

	resultRepo := NewResultRepository(st.Connection)

	// When: listing a match with no archived games
	results, err := resultRepo.ListByMatch(ctx, "nothing")

	// Then: no error and no rows
	require.NoError(t, err)
	assert.Empty(t, results)
}
