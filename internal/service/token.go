package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/thureindev/twist-tac-toe/internal/apperror"
	"github.com/thureindev/twist-tac-toe/internal/entity"
)

const tokenTTL = 24 * time.Hour

type TokenService interface {
	GenerateToken(session *entity.Session) (string, error)
	ParseToken(tokenString string) (*entity.Session, error)
}

type tokenService struct {
	secretKey string
}

func NewTokenService(secretKey string) TokenService {
	return &tokenService{
		secretKey: secretKey,
	}
}

// GenerateToken - signs a rejoin token carrying the session's match
// binding, so a reconnecting client can reclaim its seat.
func (that *tokenService) GenerateToken(session *entity.Session) (string, error) {
	claims := jwt.MapClaims{}
	claims["session_id"] = session.ID
	claims["match_id"] = session.MatchID
	claims["role"] = string(session.Role)
	claims["exp"] = time.Now().Add(tokenTTL).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(that.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (that *tokenService) ParseToken(tokenString string) (*entity.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", apperror.ErrInvalidToken, token.Header["alg"])
		}

		return []byte(that.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperror.ErrInvalidToken
	}

	sessionID, _ := claims["session_id"].(string)
	matchID, _ := claims["match_id"].(string)
	role, _ := claims["role"].(string)

	if sessionID == "" {
		return nil, apperror.ErrInvalidToken
	}

	return &entity.Session{
		ID:      sessionID,
		MatchID: matchID,
		Role:    entity.Role(role),
	}, nil
}
