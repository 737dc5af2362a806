package migrations

import (
	"context"

	"github.com/uptrace/bun"

	"trivia-quiz/internal/bank"
	"trivia-quiz/internal/domain"
)

// QuestionRow is the bun model of the questions table.
type QuestionRow struct {
	bun.BaseModel `bun:"table:questions"`

	Difficulty    string   `bun:"difficulty,pk"`
	Position      int      `bun:"position,pk"`
	Text          string   `bun:"text,notnull"`
	Options       []string `bun:"options,type:jsonb,notnull"`
	CorrectAnswer string   `bun:"correct_answer,notnull"`
}

// BuiltinRows lays the static tables out as rows, positions starting at 1.
func BuiltinRows() []QuestionRow {
	var rows []QuestionRow
	for _, difficulty := range domain.Difficulties {
		for i, question := range bank.Builtin(difficulty) {
			rows = append(rows, QuestionRow{
				Difficulty:    string(difficulty),
				Position:      i + 1,
				Text:          question.Text,
				Options:       question.Options,
				CorrectAnswer: question.CorrectAnswer,
			})
		}
	}
	return rows
}

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			rows := BuiltinRows()
			_, err := db.NewInsert().
				Model(&rows).
				On("CONFLICT (difficulty, position) DO NOTHING").
				Exec(ctx)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.NewDelete().
				Model((*QuestionRow)(nil)).
				Where("difficulty IN (?)", bun.In(domain.Difficulties)).
				Exec(ctx)
			return err
		},
	)
}
