package domain

import "errors"

var (
	// ErrInvalidConfig is returned when a session configuration cannot start a game.
	ErrInvalidConfig = errors.New("invalid session config")
	// ErrUnknownDifficulty is returned by question sources that have no table for a difficulty.
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	// ErrSessionNotFound is returned when a game session is not (or no longer) live.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrInvalidQuestion indicates a question record violates the bank invariants.
	ErrInvalidQuestion = errors.New("invalid question")
)
