package domain

import (
	"fmt"
	"strings"
)

// Difficulty selects which question table a session draws from.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Normal Difficulty = "Normal"
	Hard   Difficulty = "Hard"
)

// Difficulties lists the known levels in menu order.
var Difficulties = []Difficulty{Easy, Normal, Hard}

var difficultyAliases = map[string]Difficulty{
	"easy":    Easy,
	"facil":   Easy,
	"fácil":   Easy,
	"normal":  Normal,
	"medium":  Normal,
	"hard":    Hard,
	"dificil": Hard,
	"difícil": Hard,
}

// ParseDifficulty maps user input onto a known level. Unrecognized input is
// returned verbatim; the bank answers it with zero questions.
func ParseDifficulty(raw string) Difficulty {
	key := strings.ToLower(strings.TrimSpace(raw))
	if d, ok := difficultyAliases[key]; ok {
		return d
	}
	return Difficulty(strings.TrimSpace(raw))
}

// Known reports whether d is one of the built-in levels.
func (d Difficulty) Known() bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

// Question is an immutable multiple-choice record.
type Question struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Validate checks that the question has options and exactly one of them is the correct answer.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidQuestion)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: %q has %d options", ErrInvalidQuestion, q.Text, len(q.Options))
	}
	matches := 0
	seen := make(map[string]struct{}, len(q.Options))
	for _, option := range q.Options {
		if _, dup := seen[option]; dup {
			return fmt.Errorf("%w: %q repeats option %q", ErrInvalidQuestion, q.Text, option)
		}
		seen[option] = struct{}{}
		if option == q.CorrectAnswer {
			matches++
		}
	}
	if matches != 1 {
		return fmt.Errorf("%w: %q correct answer %q not among options", ErrInvalidQuestion, q.Text, q.CorrectAnswer)
	}
	return nil
}

// SessionConfig is read once at session start and never changes afterwards.
type SessionConfig struct {
	Difficulty      Difficulty `json:"difficulty" yaml:"difficulty"`
	RoundCount      int        `json:"rounds" yaml:"rounds"`
	SecondsPerRound int        `json:"secondsPerRound" yaml:"secondsPerRound"`
}

// Validate rejects configurations that would produce no rounds or a zero-length countdown.
func (c SessionConfig) Validate() error {
	if c.RoundCount < 1 {
		return fmt.Errorf("%w: round count must be at least 1, got %d", ErrInvalidConfig, c.RoundCount)
	}
	if c.SecondsPerRound < 1 {
		return fmt.Errorf("%w: seconds per round must be at least 1, got %d", ErrInvalidConfig, c.SecondsPerRound)
	}
	return nil
}

// RoundSnapshot is the read-only view handed to presenters on every tick and round transition.
type RoundSnapshot struct {
	SessionID        string   `json:"sessionId"`
	RoundNumber      int      `json:"roundNumber"`
	TotalRounds      int      `json:"totalRounds"`
	QuestionText     string   `json:"questionText"`
	Options          []string `json:"options"`
	SecondsRemaining int      `json:"secondsRemaining"`
	SecondsPerRound  int      `json:"secondsPerRound"`
	CurrentScore     int      `json:"currentScore"`
}

// SessionStatus tells the navigation layer how a session ended.
type SessionStatus string

const (
	StatusCompleted SessionStatus = "completed"
	StatusAbandoned SessionStatus = "abandoned"
)

// SessionResult is the session end signal.
type SessionResult struct {
	SessionID    string        `json:"sessionId"`
	FinalScore   int           `json:"finalScore"`
	RoundsPlayed int           `json:"roundsPlayed"`
	TotalRounds  int           `json:"totalRounds"`
	Status       SessionStatus `json:"status"`
}
