package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thureindev/twist-tac-toe/internal/entity"
	"github.com/thureindev/twist-tac-toe/internal/pkg"
)

type uMatch interface {
	Connect(ctx context.Context, sessionID, token string) (*entity.Session, error)
	NewMatch(ctx context.Context, session *entity.Session) (*entity.Match, string, error)
	JoinMatch(ctx context.Context, session *entity.Session, matchID string) (*entity.Match, string, error)
	MatchState(ctx context.Context, session *entity.Session) (*entity.Match, error)
	Configure(ctx context.Context, session *entity.Session, property string, args map[string]any) (*entity.Match, error)
	Start(ctx context.Context, session *entity.Session) (*entity.Match, error)
	MakeTurn(ctx context.Context, session *entity.Session, x, y int) (*entity.Match, error)
	Next(ctx context.Context, session *entity.Session) (*entity.Match, error)
	Reset(ctx context.Context, session *entity.Session, startingPlayer entity.Role) (*entity.Match, error)
	Delete(ctx context.Context, session *entity.Session) (*entity.Session, error)
	Results(ctx context.Context, matchID string) ([]*entity.GameResult, error)
	Leader(ctx context.Context, matchID string) (entity.Role, error)
}

type handlerFunc func(ctx context.Context, conn *websocket.Conn, session *entity.Session, payload *RequestPayload) error

type Server struct {
	logger   *slog.Logger
	uMatch   uMatch
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, uMatch uMatch) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uMatch: uMatch,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers["match:new"] = server.handleNewMatch
	server.handlers["match:join"] = server.handleJoinMatch
	server.handlers["match:state"] = server.handleMatchState
	server.handlers["match:config"] = server.handleConfigure
	server.handlers["match:start"] = server.handleStart
	server.handlers["match:turn"] = server.handleTurn
	server.handlers["match:next"] = server.handleNext
	server.handlers["match:reset"] = server.handleReset
	server.handlers["match:delete"] = server.handleDelete
	server.handlers["match:results"] = server.handleResults
	server.handlers["match:leader"] = server.handleLeader

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection - upgrades the request and runs the message loop for
// one client.
func (that *Server) serveConnection(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveConnection")

	sessionID := that.sessionCookie(writer, req)

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("WebSocket connection established")

	if err = that.handleMessages(ctx, conn, sessionID); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client. The first action
// must be "connect"; everything else needs the resolved session.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, sessionID string) error {
	log := that.logger.With("method", "handleMessages")

	var session *entity.Session

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err) {
				return fmt.Errorf("client disconnected: %w", err)
			}

			log.Error("failed to read message", "error", err)
			return err
		}

		var payload RequestPayload
		if len(message.Payload) > 0 {
			if err := json.Unmarshal(message.Payload, &payload); err != nil {
				that.sendError(conn, message.Action, fmt.Errorf("malformed payload: %w", err))
				continue
			}
		}

		if message.Action == "connect" {
			connected, err := that.uMatch.Connect(ctx, sessionID, payload.Token)
			if err != nil {
				that.sendError(conn, message.Action, err)
				continue
			}

			session = connected
			if err = that.send(conn, "connect", ResponsePayload{Session: session}); err != nil {
				log.Error("failed to send connect response", "error", err)
			}
			continue
		}

		if session == nil {
			that.sendError(conn, message.Action, errors.New("not connected"))
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			that.sendError(conn, message.Action, fmt.Errorf("unknown action %q", message.Action))
			continue
		}

		if err := handler(ctx, conn, session, &payload); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			that.sendError(conn, message.Action, err)
		}
	}
}

// sessionCookie - reads or sets the client's session cookie.
func (that *Server) sessionCookie(writer http.ResponseWriter, req *http.Request) string {
	log := that.logger.With("method", "sessionCookie")

	cookie, err := req.Cookie("user_session")
	if err != nil {
		cookie = &http.Cookie{
			Name:    "user_session",
			Value:   pkg.GenerateNewSessionID(),
			Expires: time.Now().Add(24 * time.Hour),
			Path:    "/ws",
		}
		http.SetCookie(writer, cookie)
		log.Info("session cookie not found, new one created")
	}

	return cookie.Value
}

func (that *Server) send(conn *websocket.Conn, action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(conn *websocket.Conn, action string, sendErr error) {
	if err := that.send(conn, action, ResponsePayload{Error: sendErr.Error()}); err != nil {
		that.logger.Error("failed to send error response", "error", err)
	}
}
