package memory

import (
	"context"
	"io"
	"log"
	"testing"

	"trivia-quiz/internal/bank"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/engine"
)

func startSession(t *testing.T, id string) *engine.Session {
	t.Helper()
	eng := engine.New(bank.New(nil),
		engine.WithLogger(log.New(io.Discard, "", 0)),
		engine.WithIDGenerator(func() string { return id }),
	)
	session, err := eng.Start(context.Background(), domain.SessionConfig{
		Difficulty: domain.Easy, RoundCount: 1, SecondsPerRound: 30,
	})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	t.Cleanup(session.Abort)
	return session
}

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()
	session := startSession(t, "game-1")

	store.Put(session)
	got, ok := store.Get("game-1")
	if !ok || got != session {
		t.Fatalf("expected session present")
	}
	if n := len(store.All()); n != 1 {
		t.Fatalf("expected 1 live session, got %d", n)
	}

	store.Delete("game-1")
	if _, ok := store.Get("game-1"); ok {
		t.Fatalf("expected session removed")
	}
	if n := len(store.All()); n != 0 {
		t.Fatalf("expected no live sessions, got %d", n)
	}
}
