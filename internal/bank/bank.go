// Package bank holds the static question tables and the sampling policy used
// to pick a session's questions.
package bank

import (
	"context"
	"errors"
	"math/rand"

	"trivia-quiz/internal/domain"
)

// Source supplies the full question list for a difficulty (static tables, caches, a database).
type Source interface {
	Questions(ctx context.Context, difficulty domain.Difficulty) ([]domain.Question, error)
}

// ShuffleFunc has the signature of rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

// Builtin returns a copy of the static table for difficulty, or nil if there is none.
func Builtin(difficulty domain.Difficulty) []domain.Question {
	questions, ok := builtin[difficulty]
	if !ok {
		return nil
	}
	out := make([]domain.Question, len(questions))
	copy(out, questions)
	return out
}

// SelectQuestions returns up to count distinct questions from the static table for
// difficulty, in random order. Unknown difficulties yield an empty slice.
func SelectQuestions(difficulty domain.Difficulty, count int) []domain.Question {
	return Sample(builtin[difficulty], count, rand.Shuffle)
}

// Sample shuffles a copy of questions and keeps the first min(count, len) of them.
// The input slice is never reordered.
func Sample(questions []domain.Question, count int, shuffle ShuffleFunc) []domain.Question {
	if count <= 0 || len(questions) == 0 {
		return []domain.Question{}
	}
	pool := make([]domain.Question, len(questions))
	copy(pool, questions)
	shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if count > len(pool) {
		count = len(pool)
	}
	return pool[:count]
}

// StaticSource serves the built-in tables.
type StaticSource struct{}

func NewStaticSource() StaticSource {
	return StaticSource{}
}

func (StaticSource) Questions(_ context.Context, difficulty domain.Difficulty) ([]domain.Question, error) {
	questions := Builtin(difficulty)
	if questions == nil {
		return nil, domain.ErrUnknownDifficulty
	}
	return questions, nil
}

// Bank applies the sampling policy on top of any Source.
type Bank struct {
	source  Source
	shuffle ShuffleFunc
}

// New returns a Bank over source. A nil source means the built-in tables.
func New(source Source) *Bank {
	if source == nil {
		source = NewStaticSource()
	}
	return &Bank{source: source, shuffle: rand.Shuffle}
}

// NewWithShuffle is for tests that need a deterministic order.
func NewWithShuffle(source Source, shuffle ShuffleFunc) *Bank {
	b := New(source)
	b.shuffle = shuffle
	return b
}

// Select samples count questions without replacement. A difficulty the source
// does not know is not an error: it yields zero questions.
func (b *Bank) Select(ctx context.Context, difficulty domain.Difficulty, count int) ([]domain.Question, error) {
	questions, err := b.source.Questions(ctx, difficulty)
	if errors.Is(err, domain.ErrUnknownDifficulty) {
		return []domain.Question{}, nil
	}
	if err != nil {
		return nil, err
	}
	return Sample(questions, count, b.shuffle), nil
}
