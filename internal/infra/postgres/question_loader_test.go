package postgres

import (
	"errors"
	"testing"

	"trivia-quiz/internal/domain"
)

func TestValidQuestionsSkipsMalformedRows(t *testing.T) {
	loaded := []domain.Question{
		{Text: "2 + 2?", Options: []string{"3", "4"}, CorrectAnswer: "4"},
		{Text: "Broken?", Options: []string{"only one"}, CorrectAnswer: "missing"},
	}

	questions, err := validQuestions(domain.Easy, loaded)
	if err != nil {
		t.Fatalf("valid questions: %v", err)
	}
	if len(questions) != 1 || questions[0].Text != "2 + 2?" {
		t.Fatalf("expected the valid row only, got %+v", questions)
	}
}

func TestValidQuestionsNoRowsIsUnknownDifficulty(t *testing.T) {
	_, err := validQuestions("Legendary", nil)
	if !errors.Is(err, domain.ErrUnknownDifficulty) {
		t.Fatalf("expected ErrUnknownDifficulty, got %v", err)
	}
}

func TestValidQuestionsAllRejectedIsNotUnknown(t *testing.T) {
	loaded := []domain.Question{
		{Text: "", Options: []string{"a", "b"}, CorrectAnswer: "a"},
		{Text: "x", Options: []string{"a", "b"}, CorrectAnswer: "c"},
	}

	_, err := validQuestions(domain.Hard, loaded)
	if !errors.Is(err, domain.ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
	if errors.Is(err, domain.ErrUnknownDifficulty) {
		t.Fatalf("a corrupt table must not look like an unknown difficulty")
	}
}
