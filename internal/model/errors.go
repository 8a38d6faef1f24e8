package model

import "errors"

// Common errors used across the application
var (
	// Configuration errors (fatal at startup)
	ErrUnknownPieceType = errors.New("unknown piece type")
	ErrUnknownCardID    = errors.New("unknown card id")

	// Board errors
	ErrInvalidPosition = errors.New("invalid board position")
	ErrSquareOccupied  = errors.New("square is already occupied")
	ErrNoPieceAtOrigin = errors.New("no piece at origin square")

	// Move errors
	ErrIllegalMove             = errors.New("illegal move for this piece")
	ErrNotYourTurn             = errors.New("not this player's turn")
	ErrCannotMoveOpponentPiece = errors.New("cannot move an opponent's piece")

	// Card errors
	ErrHandFull           = errors.New("hand is full")
	ErrInvalidHandIndex   = errors.New("hand index out of range")
	ErrInsufficientSteam  = errors.New("insufficient steam")
	ErrInvalidTarget      = errors.New("invalid target for card")
	ErrInvalidPlacement   = errors.New("invalid placement square")
	ErrNoValidTargets     = errors.New("no valid targets for card")
	ErrCardCannotBePlayed = errors.New("card cannot be played now")
	ErrDeckInvalid        = errors.New("deck fails play validation")
	ErrDeckEmpty          = errors.New("deck is empty")

	// Game errors
	ErrGameStateInvalid = errors.New("action not valid in current game state")
	ErrGameOver         = errors.New("game is already over")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrDeckNotFound = errors.New("no saved deck for user")
)

// PlayErrorCode is the closed set of card-play rejection codes reported on
// the wire.
type PlayErrorCode uint8

const (
	PlayErrorNone PlayErrorCode = iota
	PlayErrorInsufficientSteam
	PlayErrorInvalidHandIndex
	PlayErrorCardNotFound
	PlayErrorNoValidTargets
	PlayErrorInvalidTarget
	PlayErrorInvalidPlacement
	PlayErrorGameStateInvalid
	PlayErrorCardCannotBePlayed
	PlayErrorUnknownCardType
)

// String returns the code's wire-stable name.
func (c PlayErrorCode) String() string {
	switch c {
	case PlayErrorNone:
		return "none"
	case PlayErrorInsufficientSteam:
		return "insufficient_steam"
	case PlayErrorInvalidHandIndex:
		return "invalid_hand_index"
	case PlayErrorCardNotFound:
		return "card_not_found"
	case PlayErrorNoValidTargets:
		return "no_valid_targets"
	case PlayErrorInvalidTarget:
		return "invalid_target"
	case PlayErrorInvalidPlacement:
		return "invalid_placement"
	case PlayErrorGameStateInvalid:
		return "game_state_invalid"
	case PlayErrorCardCannotBePlayed:
		return "card_cannot_be_played"
	case PlayErrorUnknownCardType:
		return "unknown_card_type"
	default:
		return "unknown"
	}
}

// PlayResult is the outcome of a card-play execution.
type PlayResult struct {
	Success bool
	Code    PlayErrorCode
	Message string
}

// PlayOK is the successful play result.
func PlayOK() PlayResult {
	return PlayResult{Success: true, Code: PlayErrorNone}
}

// PlayFailure builds a failed play result with the given code and message.
func PlayFailure(code PlayErrorCode, message string) PlayResult {
	return PlayResult{Success: false, Code: code, Message: message}
}
