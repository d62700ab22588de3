package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thureindev/twist-tac-toe/internal/entity"
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.GameResult) error
	ListByMatch(ctx context.Context, matchID string) ([]*entity.GameResult, error)
}

type resultRepository struct {
	conn *sql.DB
}

func NewResultRepository(conn *sql.DB) ResultRepository {
	return &resultRepository{
		conn: conn,
	}
}

func (that *resultRepository) Save(ctx context.Context, result *entity.GameResult) error {
	query := `INSERT INTO game_results (id, match_id, winner, score_x, score_o, games_played, finished_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		result.ID, result.MatchID, string(result.Winner),
		result.ScoreX, result.ScoreO, result.GamesPlayed, result.FinishedAt)
	if err != nil {
		return fmt.Errorf("can't save game result: %w", err)
	}

	return nil
}

func (that *resultRepository) ListByMatch(ctx context.Context, matchID string) ([]*entity.GameResult, error) {
	query := `SELECT id, match_id, winner, score_x, score_o, games_played, finished_at
			  FROM game_results WHERE match_id = ? ORDER BY games_played`

	rows, err := that.conn.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("can't list game results: %w", err)
	}
	defer rows.Close()

	var results []*entity.GameResult

	for rows.Next() {
		var result entity.GameResult
		var winner string

		err = rows.Scan(&result.ID, &result.MatchID, &winner,
			&result.ScoreX, &result.ScoreO, &result.GamesPlayed, &result.FinishedAt)
		if err != nil {
			return nil, fmt.Errorf("can't scan game result: %w", err)
		}

		result.Winner = entity.Role(winner)
		results = append(results, &result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate game results: %w", err)
	}

	return results, nil
}
