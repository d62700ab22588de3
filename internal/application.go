package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thureindev/twist-tac-toe/internal/config"
	"github.com/thureindev/twist-tac-toe/internal/game"
	"github.com/thureindev/twist-tac-toe/internal/repository"
	"github.com/thureindev/twist-tac-toe/internal/repository/storage"
	"github.com/thureindev/twist-tac-toe/internal/service"
	"github.com/thureindev/twist-tac-toe/internal/usecase"
	"github.com/thureindev/twist-tac-toe/transport/rest"
	"github.com/thureindev/twist-tac-toe/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSqliteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	matchRepo := repository.NewMatchRepository(redisStorage.Connection)
	sessionRepo := repository.NewSessionRepository(redisStorage.Connection)
	resultRepo := repository.NewResultRepository(sqliteStorage.Connection)

	defaults := game.Settings{
		BoardWidth:    conf.Game.BoardWidth,
		BoardHeight:   conf.Game.BoardHeight,
		WinLength:     conf.Game.WinLength,
		LimitedPieces: conf.Game.LimitedPieces,
		NumPieces:     conf.Game.NumPieces,
		FifoOrder:     conf.Game.FifoOrder,
	}

	matchService := service.NewMatchService(logger, matchRepo, resultRepo, defaults)
	sessionService := service.NewSessionService(sessionRepo)
	tokenService := service.NewTokenService(conf.JWTSecretKey)
	matchUseCase := usecase.NewMatchUseCase(logger, matchService, sessionService, tokenService)

	restHandlers := rest.NewHandlers(logger, matchUseCase, matchService)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(conf.HTTPPort, restHandlers); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, matchUseCase)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
