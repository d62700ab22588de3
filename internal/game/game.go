// Package game holds the rules engine: the match/game state machine,
// turn bookkeeping and the configuration gate. It owns its board and
// the two players exclusively; callers serialize access to one Game.
package game

import (
	"github.com/thureindev/twist-tac-toe/internal/entity"
	"github.com/thureindev/twist-tac-toe/internal/referee"
)

// Settings is the initial configuration a Game is constructed with.
type Settings struct {
	BoardWidth    int
	BoardHeight   int
	WinLength     int
	LimitedPieces bool
	NumPieces     int
	FifoOrder     bool
}

// Game is the aggregate root. currentTurn and firstTurn are role
// discriminants resolved against the two owned players, never copies,
// so score and history mutations stay visible through the getters.
type Game struct {
	board   *entity.Board
	playerX *entity.Player
	playerO *entity.Player

	currentTurn entity.Role
	firstTurn   entity.Role

	winLength int

	winner           entity.Role
	winCells         []entity.Cell
	totalGamesPlayed int

	state string
}

// New - builds a game from the given settings and readies the first
// game. The win length is clamped so it never exceeds either dimension.
func New(settings Settings) *Game {
	board := entity.NewBoard(settings.BoardWidth, settings.BoardHeight)
	board.LimitedPieces = settings.LimitedPieces
	board.NumPieces = settings.NumPieces
	board.FifoOrder = settings.FifoOrder

	winLength := settings.WinLength
	if minDim := min(settings.BoardWidth, settings.BoardHeight); winLength > minDim {
		winLength = minDim
	}

	gameInstance := &Game{
		board:     board,
		playerX:   entity.NewPlayer(entity.RoleX),
		playerO:   entity.NewPlayer(entity.RoleO),
		firstTurn: entity.RoleX,
		winLength: winLength,
	}

	gameInstance.ReadyGame()

	return gameInstance
}

// matchInProgress - true while a game is being played or at least one
// game of the current match has already been completed. It is the single
// predicate the configuration gate checks.
func (that *Game) matchInProgress() bool {
	return that.state == entity.StateOngoing || that.totalGamesPlayed > 0
}

// ResetMatch - begins a brand-new match: both scores to zero, the game
// counter to zero, the given player moving first. RoleNone picks X.
func (that *Game) ResetMatch(startingPlayer entity.Role) {
	if startingPlayer == entity.RoleNone {
		startingPlayer = entity.RoleX
	}

	that.playerX.ResetScore()
	that.playerO.ResetScore()
	that.firstTurn = startingPlayer
	that.totalGamesPlayed = 0

	that.ReadyGame()
}

// ReadyGame - prepares the next game. Only the first-turn player's move
// history is cleared here; the other player keeps its history until its
// own first move replaces it. That asymmetry is long-standing behavior
// and callers rely on the preserved history between games.
func (that *Game) ReadyGame() {
	that.state = entity.StatePreparing

	that.board.Reset()
	that.currentTurn = that.firstTurn
	that.winner = entity.RoleNone
	that.winCells = nil
	that.Player(that.firstTurn).ResetMoveHistory()

	that.state = entity.StateReady
}

// StartGame - moves READY into ONGOING. No other preconditions.
func (that *Game) StartGame() {
	that.state = entity.StateOngoing
}

// NextGame - alternates who moves first, then readies the board for the
// next game of the same match.
func (that *Game) NextGame() {
	that.SwapFirstTurn()
	that.ReadyGame()
}

// PlayerMakeMove - places the current player's mark at (x, y). Fails
// silently outside ONGOING or when the board rejects the placement.
func (that *Game) PlayerMakeMove(x, y int) bool {
	if that.state != entity.StateOngoing {
		return false
	}

	if !that.board.PlaceMark(x, y, that.currentTurn) {
		return false
	}

	that.CurrentPlayer().RecordMove(x, y)

	return true
}

// UpdateStateByLastMove - resolves the outcome of the move just played
// at (x, y): a win finishes the game for the mover, a full board with no
// line is a draw, anything else passes the turn.
func (that *Game) UpdateStateByLastMove(x, y int) {
	line, found := referee.FindWinningLine(that.board.Cells, that.currentTurn, x, y, that.winLength)
	if found {
		that.winner = that.currentTurn
		that.winCells = line
		that.CurrentPlayer().AddScore(1)
		that.totalGamesPlayed++
		that.state = entity.StateFinished

		return
	}

	if that.board.HasPlayableSquares() {
		that.SwapTurns()
		that.state = entity.StateOngoing

		return
	}

	// draw
	that.winner = entity.RoleNone
	that.playerX.AddScore(0.5)
	that.playerO.AddScore(0.5)
	that.totalGamesPlayed++
	that.state = entity.StateFinished
}

// SwapTurns - flips the current turn and returns the new current player.
func (that *Game) SwapTurns() *entity.Player {
	that.currentTurn = that.currentTurn.Opponent()

	return that.CurrentPlayer()
}

// SwapFirstTurn - flips who moves first in the next game.
func (that *Game) SwapFirstTurn() *entity.Player {
	that.firstTurn = that.firstTurn.Opponent()

	return that.Player(that.firstTurn)
}

// MatchLeadingPlayer - the role with the strictly higher score, RoleNone
// on any tie.
func (that *Game) MatchLeadingPlayer() entity.Role {
	switch {
	case that.playerX.Score > that.playerO.Score:
		return entity.RoleX
	case that.playerO.Score > that.playerX.Score:
		return entity.RoleO
	default:
		return entity.RoleNone
	}
}

func (that *Game) Board() *entity.Board {
	return that.board
}

// Player resolves a role to the owned player instance. RoleNone and
// unknown roles resolve to X; callers only pass X or O.
func (that *Game) Player(role entity.Role) *entity.Player {
	if role == entity.RoleO {
		return that.playerO
	}

	return that.playerX
}

func (that *Game) CurrentPlayer() *entity.Player {
	return that.Player(that.currentTurn)
}

func (that *Game) CurrentTurn() entity.Role {
	return that.currentTurn
}

func (that *Game) FirstTurn() entity.Role {
	return that.firstTurn
}

func (that *Game) Winner() entity.Role {
	return that.winner
}

func (that *Game) WinCells() []entity.Cell {
	return that.winCells
}

func (that *Game) TotalGamesPlayed() int {
	return that.totalGamesPlayed
}

func (that *Game) State() string {
	return that.state
}

func (that *Game) WinLength() int {
	return that.winLength
}

func (that *Game) IsLimitedPieces() bool {
	return that.board.LimitedPieces
}

func (that *Game) NumPieces() int {
	return that.board.NumPieces
}

func (that *Game) IsFifoOrder() bool {
	return that.board.FifoOrder
}

func (that *Game) IsOngoing() bool {
	return that.state == entity.StateOngoing
}

func (that *Game) IsFinished() bool {
	return that.state == entity.StateFinished
}
