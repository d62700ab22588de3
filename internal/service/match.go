package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/thureindev/twist-tac-toe/internal/apperror"
	"github.com/thureindev/twist-tac-toe/internal/entity"
	"github.com/thureindev/twist-tac-toe/internal/game"
	"github.com/thureindev/twist-tac-toe/internal/pkg"
)

type MatchService interface {
	CreateMatch(ctx context.Context, creatorSessionID string) (*entity.Match, error)
	JoinMatch(ctx context.Context, id, sessionID string) (*entity.Match, entity.Role, error)
	GetMatch(ctx context.Context, id string) (*entity.Match, error)
	DeleteMatch(ctx context.Context, id string) error

	UpdateConfig(ctx context.Context, id string, cmd game.ConfigCommand) (*entity.Match, game.ConfigResult, error)
	StartGame(ctx context.Context, id string) (*entity.Match, error)
	MakeTurn(ctx context.Context, id string, role entity.Role, x, y int) (*entity.Match, error)
	NextGame(ctx context.Context, id string) (*entity.Match, error)
	ResetMatch(ctx context.Context, id string, startingPlayer entity.Role) (*entity.Match, error)

	ListResults(ctx context.Context, matchID string) ([]*entity.GameResult, error)
	MatchLeader(ctx context.Context, id string) (entity.Role, error)
}

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.GameResult) error
	ListByMatch(ctx context.Context, matchID string) ([]*entity.GameResult, error)
}

// matchService is the orchestrating caller around the rules engine:
// every mutation loads the snapshot, restores the aggregate, runs one
// operation and persists the new snapshot.
type matchService struct {
	logger     *slog.Logger
	matchRepo  matchRepo
	resultRepo resultRepo
	defaults   game.Settings
}

func NewMatchService(logger *slog.Logger, matchRepo matchRepo, resultRepo resultRepo, defaults game.Settings) MatchService {
	return &matchService{
		logger:     logger.With("component", "match-service"),
		matchRepo:  matchRepo,
		resultRepo: resultRepo,
		defaults:   defaults,
	}
}

// CreateMatch - creates a match from the configured defaults. An empty
// creator id leaves the match unowned; the first session to join takes
// the X seat.
func (that *matchService) CreateMatch(ctx context.Context, creatorSessionID string) (*entity.Match, error) {
	match := &entity.Match{
		ID:   pkg.GenerateMatchID(),
		Game: game.New(that.defaults).Snapshot(),
	}

	if creatorSessionID != "" {
		match.Members = []string{creatorSessionID}
	}

	if err := that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	return match, nil
}

func (that *matchService) JoinMatch(ctx context.Context, id, sessionID string) (*entity.Match, entity.Role, error) {
	match, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, entity.RoleNone, fmt.Errorf("failed to get match: %w", err)
	}

	// rejoining keeps the role the session already holds
	for i, member := range match.Members {
		if member == sessionID {
			if i == 0 {
				return match, entity.RoleX, nil
			}
			return match, entity.RoleO, nil
		}
	}

	if match.IsFull() {
		return nil, entity.RoleNone, fmt.Errorf("%w: match id %s", apperror.ErrMatchFull, id)
	}

	// the first seat is X; index 1 plays O
	role := entity.RoleO
	if len(match.Members) == 0 {
		role = entity.RoleX
	}

	match.Members = append(match.Members, sessionID)
	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, entity.RoleNone, fmt.Errorf("failed to update match: %w", err)
	}

	return match, role, nil
}

func (that *matchService) GetMatch(ctx context.Context, id string) (*entity.Match, error) {
	match, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

func (that *matchService) DeleteMatch(ctx context.Context, id string) error {
	if err := that.matchRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	return nil
}

func (that *matchService) UpdateConfig(ctx context.Context, id string, cmd game.ConfigCommand) (*entity.Match, game.ConfigResult, error) {
	match, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, game.ConfigResult{}, fmt.Errorf("failed to get match: %w", err)
	}

	gameInstance := game.Restore(match.Game)

	result := gameInstance.UpdateConfig(cmd)
	if !result.Applied() {
		return match, result, nil
	}

	match.Game = gameInstance.Snapshot()
	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, result, fmt.Errorf("failed to update match: %w", err)
	}

	return match, result, nil
}

func (that *matchService) StartGame(ctx context.Context, id string) (*entity.Match, error) {
	return that.mutate(ctx, id, func(gameInstance *game.Game) error {
		gameInstance.StartGame()
		return nil
	})
}

// MakeTurn runs one full turn: ownership check, placement, outcome
// resolution, persistence and — when the game just finished — archiving
// a result row.
func (that *matchService) MakeTurn(ctx context.Context, id string, role entity.Role, x, y int) (*entity.Match, error) {
	log := that.logger.With("method", "MakeTurn")

	match, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	gameInstance := game.Restore(match.Game)

	if !gameInstance.IsOngoing() {
		return nil, apperror.ErrGameNotOngoing
	}

	if gameInstance.CurrentTurn() != role {
		return nil, apperror.ErrNotYourTurn
	}

	if !gameInstance.PlayerMakeMove(x, y) {
		return nil, fmt.Errorf("%w: cell (%d, %d)", apperror.ErrMoveRejected, x, y)
	}

	gameInstance.UpdateStateByLastMove(x, y)

	match.Game = gameInstance.Snapshot()
	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	if gameInstance.IsFinished() {
		that.archiveResult(ctx, match.ID, gameInstance)
		log.Info("game finished", "match", match.ID, "winner", gameInstance.Winner())
	}

	return match, nil
}

func (that *matchService) NextGame(ctx context.Context, id string) (*entity.Match, error) {
	return that.mutate(ctx, id, func(gameInstance *game.Game) error {
		gameInstance.NextGame()
		return nil
	})
}

func (that *matchService) ResetMatch(ctx context.Context, id string, startingPlayer entity.Role) (*entity.Match, error) {
	return that.mutate(ctx, id, func(gameInstance *game.Game) error {
		gameInstance.ResetMatch(startingPlayer)
		return nil
	})
}

func (that *matchService) ListResults(ctx context.Context, matchID string) ([]*entity.GameResult, error) {
	results, err := that.resultRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return results, nil
}

func (that *matchService) MatchLeader(ctx context.Context, id string) (entity.Role, error) {
	match, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return entity.RoleNone, fmt.Errorf("failed to get match: %w", err)
	}

	return game.Restore(match.Game).MatchLeadingPlayer(), nil
}

// mutate - the load/restore/apply/persist cycle shared by the simple
// lifecycle operations.
func (that *matchService) mutate(ctx context.Context, id string, apply func(*game.Game) error) (*entity.Match, error) {
	match, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	gameInstance := game.Restore(match.Game)

	if err = apply(gameInstance); err != nil {
		return nil, err
	}

	match.Game = gameInstance.Snapshot()
	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	return match, nil
}

// archiveResult - best-effort; a failed archive never fails the turn.
func (that *matchService) archiveResult(ctx context.Context, matchID string, gameInstance *game.Game) {
	log := that.logger.With("method", "archiveResult")

	result := &entity.GameResult{
		ID:          uuid.NewString(),
		MatchID:     matchID,
		Winner:      gameInstance.Winner(),
		ScoreX:      gameInstance.Player(entity.RoleX).Score,
		ScoreO:      gameInstance.Player(entity.RoleO).Score,
		GamesPlayed: gameInstance.TotalGamesPlayed(),
		FinishedAt:  time.Now().UTC(),
	}

	if err := that.resultRepo.Save(ctx, result); err != nil {
		log.Error("failed to archive game result", "match", matchID, "error", err)
	}
}
