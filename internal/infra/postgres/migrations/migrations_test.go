package migrations

import (
	"testing"

	"trivia-quiz/internal/domain"
)

func TestMigrationsRegistered(t *testing.T) {
	sorted := Migrations.Sorted()
	if len(sorted) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(sorted))
	}
	if sorted[0].Name != "2024112201" || sorted[1].Name != "2024112202" {
		t.Fatalf("unexpected migration order: %s, %s", sorted[0].Name, sorted[1].Name)
	}
}

func TestBuiltinRowsCoverEveryDifficulty(t *testing.T) {
	rows := BuiltinRows()
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.Difficulty]++
		if row.Position < 1 {
			t.Fatalf("row %+v has non-positive position", row)
		}
		question := domain.Question{Text: row.Text, Options: row.Options, CorrectAnswer: row.CorrectAnswer}
		if err := question.Validate(); err != nil {
			t.Fatalf("seed row invalid: %v", err)
		}
	}
	for _, difficulty := range domain.Difficulties {
		if counts[string(difficulty)] != 15 {
			t.Fatalf("expected 15 %s rows, got %d", difficulty, counts[string(difficulty)])
		}
	}
}
