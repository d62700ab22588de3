package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/thureindev/twist-tac-toe/internal/entity"
	"github.com/thureindev/twist-tac-toe/internal/pkg"
	"github.com/thureindev/twist-tac-toe/internal/repository"
)

type SessionService interface {
	GetOrCreate(ctx context.Context, id string) (*entity.Session, error)
	Update(ctx context.Context, session *entity.Session) error
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
}

type sessionService struct {
	sessionRepo sessionRepo
}

func NewSessionService(sessionRepo sessionRepo) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
	}
}

// GetOrCreate - returns the stored session for the given id, creating
// it when unknown. An unknown id is kept as the session key so the
// client's cookie keeps resolving to the same session on reconnect; a
// fresh id is generated only when the caller presents none.
func (that *sessionService) GetOrCreate(ctx context.Context, id string) (*entity.Session, error) {
	if id == "" {
		id = pkg.GenerateNewSessionID()
	} else {
		session, err := that.sessionRepo.GetByID(ctx, id)
		if err == nil {
			return session, nil
		}

		if !errors.Is(err, repository.ErrSessionNotFound) {
			return nil, fmt.Errorf("failed to get session: %w", err)
		}
	}

	session := &entity.Session{ID: id}
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

func (that *sessionService) Update(ctx context.Context, session *entity.Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}
