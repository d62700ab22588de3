package game

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/thureindev/twist-tac-toe/internal/entity"
)

// Property selectors accepted on the wire.
const (
	PropertySize          = "size"
	PropertyWinLength     = "win_length"
	PropertyLimitedPieces = "is_limited_pieces"
	PropertyNumPieces     = "num_pieces"
	PropertyFifoOrder     = "is_fifo_order"
)

var ErrUnknownProperty = errors.New("unknown config property")

// ConfigOutcome tells a caller why a configuration command did or did
// not apply.
type ConfigOutcome string

const (
	ConfigApplied                 ConfigOutcome = "applied"
	ConfigRejectedMatchInProgress ConfigOutcome = "rejected_match_in_progress"
	ConfigRejectedInvalidValue    ConfigOutcome = "rejected_invalid_value"
	ConfigRejectedIllegalState    ConfigOutcome = "rejected_illegal_state"
	ConfigUnknownProperty         ConfigOutcome = "unknown_property"
)

type ConfigResult struct {
	Outcome ConfigOutcome `json:"outcome"`
}

// Applied preserves the boolean contract: true only when the command
// actually mutated the configuration.
func (that ConfigResult) Applied() bool {
	return that.Outcome == ConfigApplied
}

// ConfigCommand is one typed configuration mutation. The concrete
// variants below are the only implementations.
type ConfigCommand interface {
	isConfigCommand()
}

type SizeCommand struct {
	Width  int `mapstructure:"x" json:"x"`
	Height int `mapstructure:"y" json:"y"`
}

type WinLengthCommand struct {
	Length int `mapstructure:"len" json:"len"`
}

type LimitedPiecesCommand struct {
	Enabled bool `mapstructure:"enabled" json:"enabled"`
}

type NumPiecesCommand struct {
	Count int `mapstructure:"num" json:"num"`
}

type FifoOrderCommand struct {
	Enabled bool `mapstructure:"enabled" json:"enabled"`
}

func (SizeCommand) isConfigCommand()          {}
func (WinLengthCommand) isConfigCommand()     {}
func (LimitedPiecesCommand) isConfigCommand() {}
func (NumPiecesCommand) isConfigCommand()     {}
func (FifoOrderCommand) isConfigCommand()     {}

// ParseConfigCommand - decodes a property selector plus its argument bag
// into a typed command.
func ParseConfigCommand(property string, args map[string]any) (ConfigCommand, error) {
	decode := func(target any) error {
		if err := mapstructure.Decode(args, target); err != nil {
			return fmt.Errorf("failed to decode %q args: %w", property, err)
		}

		return nil
	}

	switch property {
	case PropertySize:
		var cmd SizeCommand
		return cmd, decode(&cmd)
	case PropertyWinLength:
		var cmd WinLengthCommand
		return cmd, decode(&cmd)
	case PropertyLimitedPieces:
		var cmd LimitedPiecesCommand
		return cmd, decode(&cmd)
	case PropertyNumPieces:
		var cmd NumPiecesCommand
		return cmd, decode(&cmd)
	case PropertyFifoOrder:
		var cmd FifoOrderCommand
		return cmd, decode(&cmd)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, property)
	}
}

// UpdateConfig - the configuration gate. Every configuration mutation
// goes through here; nothing applies while a match is in progress, and
// the cross-field rules (win length vs. board size, piece count vs.
// cell count) are enforced at this single boundary.
func (that *Game) UpdateConfig(cmd ConfigCommand) ConfigResult {
	if that.matchInProgress() {
		return ConfigResult{Outcome: ConfigRejectedMatchInProgress}
	}

	switch command := cmd.(type) {
	case SizeCommand:
		return that.applySize(command)
	case WinLengthCommand:
		return that.applyWinLength(command)
	case LimitedPiecesCommand:
		that.board.LimitedPieces = command.Enabled
		return ConfigResult{Outcome: ConfigApplied}
	case NumPiecesCommand:
		return that.applyNumPieces(command)
	case FifoOrderCommand:
		that.board.FifoOrder = command.Enabled
		return ConfigResult{Outcome: ConfigApplied}
	default:
		return ConfigResult{Outcome: ConfigUnknownProperty}
	}
}

// applySize - resizes the board, clamping the win length down to the
// smaller dimension when the new board could no longer fit it.
func (that *Game) applySize(cmd SizeCommand) ConfigResult {
	that.board.UpdateSize(cmd.Width, cmd.Height)

	if minDim := min(cmd.Width, cmd.Height); that.winLength > minDim {
		that.winLength = minDim
	}

	return ConfigResult{Outcome: ConfigApplied}
}

// applyWinLength - accepts the length when at least one dimension can
// hold it. Inclusive-or on purpose: a 4x6 board takes a win length of 5.
func (that *Game) applyWinLength(cmd WinLengthCommand) ConfigResult {
	width, height := that.board.Size()
	if width < cmd.Length && height < cmd.Length {
		return ConfigResult{Outcome: ConfigRejectedInvalidValue}
	}

	that.winLength = cmd.Length

	return ConfigResult{Outcome: ConfigApplied}
}

// applyNumPieces - accepts the cap when the board has enough cells to
// ever hold that many pieces per player.
func (that *Game) applyNumPieces(cmd NumPiecesCommand) ConfigResult {
	width, height := that.board.Size()
	if width*height < cmd.Count {
		return ConfigResult{Outcome: ConfigRejectedInvalidValue}
	}

	return that.setNumPieces(cmd.Count)
}

// setNumPieces refuses while a game is ongoing even if a caller reaches
// it outside the gate.
func (that *Game) setNumPieces(count int) ConfigResult {
	if that.state == entity.StateOngoing {
		return ConfigResult{Outcome: ConfigRejectedIllegalState}
	}

	that.board.NumPieces = count

	return ConfigResult{Outcome: ConfigApplied}
}
