package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thureindev/twist-tac-toe/internal/entity"
	"github.com/thureindev/twist-tac-toe/internal/repository"
)

type uMatch interface {
	Results(ctx context.Context, matchID string) ([]*entity.GameResult, error)
	Leader(ctx context.Context, matchID string) (entity.Role, error)
}

type matchService interface {
	CreateMatch(ctx context.Context, creatorSessionID string) (*entity.Match, error)
	GetMatch(ctx context.Context, id string) (*entity.Match, error)
}

// Handlers serves the HTTP surface: creating a match from the
// configured defaults, plus read-only snapshots and archives for
// spectators and tooling. Play happens over WebSocket.
type Handlers struct {
	logger       *slog.Logger
	uMatch       uMatch
	matchService matchService
}

func NewHandlers(logger *slog.Logger, uMatch uMatch, matchService matchService) *Handlers {
	return &Handlers{
		logger:       logger.With("component", "rest"),
		uMatch:       uMatch,
		matchService: matchService,
	}
}

type createMatchRequest struct {
	SessionID string `json:"session_id"`
}

func (that *Handlers) Ping(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "pong")
}

// CreateMatch - creates a match from the configured defaults. The
// session id is optional; without one the match starts unowned and the
// first WebSocket joiner takes the X seat.
func (that *Handlers) CreateMatch(ctx echo.Context) error {
	var req createMatchRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.String(http.StatusBadRequest, "malformed request body")
	}

	match, err := that.matchService.CreateMatch(ctx.Request().Context(), req.SessionID)
	if err != nil {
		that.logger.Error("failed to create match", "error", err)
		return ctx.String(http.StatusInternalServerError, "Internal Server Error")
	}

	return ctx.JSON(http.StatusCreated, match)
}

func (that *Handlers) GetMatch(ctx echo.Context) error {
	match, err := that.matchService.GetMatch(ctx.Request().Context(), ctx.Param("id"))
	if errors.Is(err, repository.ErrMatchNotFound) {
		return ctx.String(http.StatusNotFound, "match not found")
	}

	if err != nil {
		that.logger.Error("failed to get match", "error", err)
		return ctx.String(http.StatusInternalServerError, "Internal Server Error")
	}

	return ctx.JSON(http.StatusOK, match)
}

func (that *Handlers) GetResults(ctx echo.Context) error {
	results, err := that.uMatch.Results(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		that.logger.Error("failed to list results", "error", err)
		return ctx.String(http.StatusInternalServerError, "Internal Server Error")
	}

	return ctx.JSON(http.StatusOK, results)
}

func (that *Handlers) GetLeader(ctx echo.Context) error {
	leader, err := that.uMatch.Leader(ctx.Request().Context(), ctx.Param("id"))
	if errors.Is(err, repository.ErrMatchNotFound) {
		return ctx.String(http.StatusNotFound, "match not found")
	}

	if err != nil {
		that.logger.Error("failed to get leader", "error", err)
		return ctx.String(http.StatusInternalServerError, "Internal Server Error")
	}

	return ctx.JSON(http.StatusOK, map[string]entity.Role{"leader": leader})
}
