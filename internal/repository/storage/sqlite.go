package storage

import (
	"context"
	"database/sql"
	"fmt"

	// import the SQLite driver to register it with the database/sql package.
	_ "github.com/mattn/go-sqlite3"
)

type SqliteStorage struct {
	Connection *sql.DB
}

func NewSqliteStorage(path string) (*SqliteStorage, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.Ping(); err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &SqliteStorage{Connection: conn}, nil
}

func (that *SqliteStorage) Init(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS game_results (
		id TEXT PRIMARY KEY,
		match_id TEXT NOT NULL,
		winner TEXT NOT NULL,
		score_x REAL NOT NULL,
		score_o REAL NOT NULL,
		games_played INTEGER NOT NULL,
		finished_at TIMESTAMP NOT NULL
	)`

	_, err := that.Connection.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *SqliteStorage) Close() error {
	if err := that.Connection.Close(); err != nil {
		return fmt.Errorf("can't close database: %w", err)
	}

	return nil
}
