package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thureindev/twist-tac-toe/internal/apperror"
	"github.com/thureindev/twist-tac-toe/internal/entity"
	"github.com/thureindev/twist-tac-toe/internal/game"
)

type matchService interface {
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

type sessionService interface {
	GetOrCreate(ctx context.Context, id string) (*entity.Session, error)
	Update(ctx context.Context, session *entity.Session) error
}

type tokenService interface {
	GenerateToken(session *entity.Session) (string, error)
	ParseToken(tokenString string) (*entity.Session, error)
}

// MatchUseCase is the facade both transports talk to. It resolves a
// session to its match and role, then delegates to the services.
type MatchUseCase struct {
	logger *slog.Logger

	matchService   matchService
	sessionService sessionService
	tokenService   tokenService
}

func NewMatchUseCase(logger *slog.Logger, matches matchService, sessions sessionService, tokens tokenService) *MatchUseCase {
	return &MatchUseCase{
		logger: logger.With("component", "match-usecase"),

		matchService:   matches,
		sessionService: sessions,
		tokenService:   tokens,
	}
}

// Connect - resolves or creates the client's session. A valid rejoin
// token restores the match binding even when the session itself is new.
func (that *MatchUseCase) Connect(ctx context.Context, sessionID, token string) (*entity.Session, error) {
	session, err := that.sessionService.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	if token == "" || session.MatchID != "" {
		return session, nil
	}

	restored, err := that.tokenService.ParseToken(token)
	if err != nil {
		if errors.Is(err, apperror.ErrInvalidToken) {
			that.logger.Warn("ignoring invalid rejoin token", "session", session.ID)
			return session, nil
		}

		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	session.MatchID = restored.MatchID
	session.Role = restored.Role
	if err = that.sessionService.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}

// NewMatch - creates a match from the configured defaults and binds the
// session to it as X. Returns the match and a rejoin token.
func (that *MatchUseCase) NewMatch(ctx context.Context, session *entity.Session) (*entity.Match, string, error) {
	match, err := that.matchService.CreateMatch(ctx, session.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create match: %w", err)
	}

	token, err := that.bindSession(ctx, session, match.ID, entity.RoleX)
	if err != nil {
		return nil, "", err
	}

	return match, token, nil
}

// JoinMatch - binds the session to an existing match as O.
func (that *MatchUseCase) JoinMatch(ctx context.Context, session *entity.Session, matchID string) (*entity.Match, string, error) {
	match, role, err := that.matchService.JoinMatch(ctx, matchID, session.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to join match: %w", err)
	}

	token, err := that.bindSession(ctx, session, match.ID, role)
	if err != nil {
		return nil, "", err
	}

	return match, token, nil
}

func (that *MatchUseCase) MatchState(ctx context.Context, session *entity.Session) (*entity.Match, error) {
	if session.MatchID == "" {
		return nil, apperror.ErrNoActiveMatch
	}

	match, err := that.matchService.GetMatch(ctx, session.MatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

// Configure - decodes a property/args payload into a typed command and
// pushes it through the configuration gate. A gate rejection comes back
// as ErrConfigRejected carrying the outcome.
func (that *MatchUseCase) Configure(ctx context.Context, session *entity.Session, property string, args map[string]any) (*entity.Match, error) {
	if session.MatchID == "" {
		return nil, apperror.ErrNoActiveMatch
	}

	cmd, err := game.ParseConfigCommand(property, args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrConfigRejected, err)
	}

	match, result, err := that.matchService.UpdateConfig(ctx, session.MatchID, cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to update config: %w", err)
	}

	if !result.Applied() {
		return match, fmt.Errorf("%w: %s", apperror.ErrConfigRejected, result.Outcome)
	}

	return match, nil
}

func (that *MatchUseCase) Start(ctx context.Context, session *entity.Session) (*entity.Match, error) {
	if session.MatchID == "" {
		return nil, apperror.ErrNoActiveMatch
	}

	match, err := that.matchService.StartGame(ctx, session.MatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	return match, nil
}

func (that *MatchUseCase) MakeTurn(ctx context.Context, session *entity.Session, x, y int) (*entity.Match, error) {
	if session.MatchID == "" {
		return nil, apperror.ErrNoActiveMatch
	}

	match, err := that.matchService.MakeTurn(ctx, session.MatchID, session.Role, x, y)
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	return match, nil
}

func (that *MatchUseCase) Next(ctx context.Context, session *entity.Session) (*entity.Match, error) {
	if session.MatchID == "" {
		return nil, apperror.ErrNoActiveMatch
	}

	match, err := that.matchService.NextGame(ctx, session.MatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to advance to next game: %w", err)
	}

	return match, nil
}

func (that *MatchUseCase) Reset(ctx context.Context, session *entity.Session, startingPlayer entity.Role) (*entity.Match, error) {
	if session.MatchID == "" {
		return nil, apperror.ErrNoActiveMatch
	}

	match, err := that.matchService.ResetMatch(ctx, session.MatchID, startingPlayer)
	if err != nil {
		return nil, fmt.Errorf("failed to reset match: %w", err)
	}

	return match, nil
}

// Delete - removes the session's match and clears the binding. Only a
// session bound to the match can delete it.
func (that *MatchUseCase) Delete(ctx context.Context, session *entity.Session) (*entity.Session, error) {
	if session.MatchID == "" {
		return nil, apperror.ErrNoActiveMatch
	}

	if err := that.matchService.DeleteMatch(ctx, session.MatchID); err != nil {
		return nil, fmt.Errorf("failed to delete match: %w", err)
	}

	session.MatchID = ""
	session.Role = entity.RoleNone

	if err := that.sessionService.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}

func (that *MatchUseCase) Results(ctx context.Context, matchID string) ([]*entity.GameResult, error) {
	results, err := that.matchService.ListResults(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return results, nil
}

func (that *MatchUseCase) Leader(ctx context.Context, matchID string) (entity.Role, error) {
	leader, err := that.matchService.MatchLeader(ctx, matchID)
	if err != nil {
		return entity.RoleNone, fmt.Errorf("failed to get match leader: %w", err)
	}

	return leader, nil
}

func (that *MatchUseCase) bindSession(ctx context.Context, session *entity.Session, matchID string, role entity.Role) (string, error) {
	session.MatchID = matchID
	session.Role = role

	if err := that.sessionService.Update(ctx, session); err != nil {
		return "", fmt.Errorf("failed to update session: %w", err)
	}

	token, err := that.tokenService.GenerateToken(session)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}
