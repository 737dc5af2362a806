package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jackc/pgx/v4/pgxpool"

	"trivia-quiz/internal/domain"
)

// QuestionLoader reads a difficulty's question table from Postgres.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

// Questions returns the rows for difficulty in position order. Rows that break
// the question invariants are skipped; a difficulty with no rows is unknown.
func (l *QuestionLoader) Questions(ctx context.Context, difficulty domain.Difficulty) ([]domain.Question, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT text, options, correct_answer FROM questions WHERE difficulty=$1 ORDER BY position`,
		string(difficulty))
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var loaded []domain.Question
	for rows.Next() {
		var (
			question domain.Question
			options  []byte
		)
		if err := rows.Scan(&question.Text, &options, &question.CorrectAnswer); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(options, &question.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options: %w", err)
		}
		loaded = append(loaded, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return validQuestions(difficulty, loaded)
}

// validQuestions drops malformed rows. No rows at all means the difficulty is
// unknown; rows that were all rejected mean the table is corrupt.
func validQuestions(difficulty domain.Difficulty, loaded []domain.Question) ([]domain.Question, error) {
	if len(loaded) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDifficulty, difficulty)
	}
	questions := make([]domain.Question, 0, len(loaded))
	var lastErr error
	for _, question := range loaded {
		if err := question.Validate(); err != nil {
			log.Printf("skipping %s question: %v", difficulty, err)
			lastErr = err
			continue
		}
		questions = append(questions, question)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("all %d %s questions rejected: %w", len(loaded), difficulty, lastErr)
	}
	return questions, nil
}
