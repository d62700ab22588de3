package websocket

import (
	"context"

	"github.com/gorilla/websocket"
	"github.com/thureindev/twist-tac-toe/internal/entity"
)

func (that *Server) handleNewMatch(ctx context.Context, conn *websocket.Conn, session *entity.Session, _ *RequestPayload) error {
	match, token, err := that.uMatch.NewMatch(ctx, session)
	if err != nil {
		return err
	}

	return that.send(conn, "match:new", ResponsePayload{Session: session, Match: match, Token: token})
}

func (that *Server) handleJoinMatch(ctx context.Context, conn *websocket.Conn, session *entity.Session, payload *RequestPayload) error {
	match, token, err := that.uMatch.JoinMatch(ctx, session, payload.MatchID)
	if err != nil {
		return err
	}

	return that.send(conn, "match:join", ResponsePayload{Session: session, Match: match, Token: token})
}

func (that *Server) handleMatchState(ctx context.Context, conn *websocket.Conn, session *entity.Session, _ *RequestPayload) error {
	match, err := that.uMatch.MatchState(ctx, session)
	if err != nil {
		return err
	}

	return that.send(conn, "match:state", ResponsePayload{Match: match})
}

func (that *Server) handleConfigure(ctx context.Context, conn *websocket.Conn, session *entity.Session, payload *RequestPayload) error {
	match, err := that.uMatch.Configure(ctx, session, payload.Property, payload.Args)
	if err != nil {
		return err
	}

	return that.send(conn, "match:config", ResponsePayload{Match: match})
}

func (that *Server) handleStart(ctx context.Context, conn *websocket.Conn, session *entity.Session, _ *RequestPayload) error {
	match, err := that.uMatch.Start(ctx, session)
	if err != nil {
		return err
	}

	return that.send(conn, "match:start", ResponsePayload{Match: match})
}

func (that *Server) handleTurn(ctx context.Context, conn *websocket.Conn, session *entity.Session, payload *RequestPayload) error {
	match, err := that.uMatch.MakeTurn(ctx, session, payload.X, payload.Y)
	if err != nil {
		return err
	}

	return that.send(conn, "match:turn", ResponsePayload{Match: match})
}

func (that *Server) handleNext(ctx context.Context, conn *websocket.Conn, session *entity.Session, _ *RequestPayload) error {
	match, err := that.uMatch.Next(ctx, session)
	if err != nil {
		return err
	}

	return that.send(conn, "match:next", ResponsePayload{Match: match})
}

func (that *Server) handleReset(ctx context.Context, conn *websocket.Conn, session *entity.Session, payload *RequestPayload) error {
	match, err := that.uMatch.Reset(ctx, session, payload.Starting)
	if err != nil {
		return err
	}

	return that.send(conn, "match:reset", ResponsePayload{Match: match})
}

func (that *Server) handleDelete(ctx context.Context, conn *websocket.Conn, session *entity.Session, _ *RequestPayload) error {
	unbound, err := that.uMatch.Delete(ctx, session)
	if err != nil {
		return err
	}

	return that.send(conn, "match:delete", ResponsePayload{Session: unbound})
}

func (that *Server) handleResults(ctx context.Context, conn *websocket.Conn, session *entity.Session, payload *RequestPayload) error {
	matchID := payload.MatchID
	if matchID == "" {
		matchID = session.MatchID
	}

	results, err := that.uMatch.Results(ctx, matchID)
	if err != nil {
		return err
	}

	return that.send(conn, "match:results", ResponsePayload{Results: results})
}

func (that *Server) handleLeader(ctx context.Context, conn *websocket.Conn, session *entity.Session, payload *RequestPayload) error {
	matchID := payload.MatchID
	if matchID == "" {
		matchID = session.MatchID
	}

	leader, err := that.uMatch.Leader(ctx, matchID)
	if err != nil {
		return err
	}

	return that.send(conn, "match:leader", ResponsePayload{Leader: &leader})
}
