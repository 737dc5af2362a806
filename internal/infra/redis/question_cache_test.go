package redis

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"trivia-quiz/internal/bank"
	"trivia-quiz/internal/domain"
)

func TestQuestionCacheCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	source := &countingSource{Source: bank.NewStaticSource()}
	cache := NewQuestionCache(newClient(mr), source, time.Minute)

	questions, err := cache.Questions(context.Background(), domain.Normal)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(questions) != 15 {
		t.Fatalf("expected 15 questions, got %d", len(questions))
	}
	if source.calls.Load() != 1 {
		t.Fatalf("expected source called once, got %d", source.calls.Load())
	}
	if !mr.Exists("trivia:bank:Normal") {
		t.Fatalf("expected cached bank key")
	}
	if ttl := mr.TTL("trivia:bank:Normal"); ttl < time.Minute || ttl > 66*time.Second {
		t.Fatalf("expected ttl within jitter bounds, got %v", ttl)
	}

	// Second call should hit cache, source not incremented.
	cached, err := cache.Questions(context.Background(), domain.Normal)
	if err != nil {
		t.Fatalf("cached questions: %v", err)
	}
	if source.calls.Load() != 1 {
		t.Fatalf("expected cache hit, source calls=%d", source.calls.Load())
	}
	if cached[0].Text != questions[0].Text || cached[0].CorrectAnswer != questions[0].CorrectAnswer {
		t.Fatalf("cached question differs: %+v vs %+v", cached[0], questions[0])
	}
}

func TestQuestionCacheReloadsAfterExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	source := &countingSource{Source: bank.NewStaticSource()}
	cache := NewQuestionCache(newClient(mr), source, time.Minute)

	if _, err := cache.Questions(context.Background(), domain.Easy); err != nil {
		t.Fatalf("questions: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if _, err := cache.Questions(context.Background(), domain.Easy); err != nil {
		t.Fatalf("questions after expiry: %v", err)
	}
	if source.calls.Load() != 2 {
		t.Fatalf("expected reload after expiry, source calls=%d", source.calls.Load())
	}
}

func TestQuestionCacheIgnoresCorruptEntry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	if err := mr.Set("trivia:bank:Hard", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	source := &countingSource{Source: bank.NewStaticSource()}
	cache := NewQuestionCache(newClient(mr), source, time.Minute)

	questions, err := cache.Questions(context.Background(), domain.Hard)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(questions) != 15 || source.calls.Load() != 1 {
		t.Fatalf("expected fallback to source, got %d questions and %d calls", len(questions), source.calls.Load())
	}
}

func TestQuestionCachePassesUnknownDifficulty(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	cache := NewQuestionCache(newClient(mr), bank.NewStaticSource(), time.Minute)

	_, err = cache.Questions(context.Background(), "Legendary")
	if !errors.Is(err, domain.ErrUnknownDifficulty) {
		t.Fatalf("expected ErrUnknownDifficulty, got %v", err)
	}
	if mr.Exists("trivia:bank:Legendary") {
		t.Fatalf("unknown difficulty must not be cached")
	}

	if err := cache.Invalidate(context.Background(), domain.Easy); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
}

type countingSource struct {
	bank.Source
	calls atomic.Int32
}

func (s *countingSource) Questions(ctx context.Context, difficulty domain.Difficulty) ([]domain.Question, error) {
	s.calls.Add(1)
	return s.Source.Questions(ctx, difficulty)
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
