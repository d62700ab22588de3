package apperror

import "errors"

var (
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrMoveRejected   = errors.New("move rejected")
	ErrGameNotOngoing = errors.New("game is not ongoing")
	ErrMatchFull      = errors.New("match already has two players")
	ErrNoActiveMatch  = errors.New("no active match")
	ErrConfigRejected = errors.New("config change rejected")
	ErrInvalidToken   = errors.New("invalid rejoin token")
)
