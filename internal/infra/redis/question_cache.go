package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"trivia-quiz/internal/bank"
	"trivia-quiz/internal/domain"
)

// QuestionCache caches each difficulty's question list in Redis and falls back
// to a source on cache miss.
// Questions are stored as: SET trivia:bank:{difficulty} <json array>
type QuestionCache struct {
	client *redis.Client
	source bank.Source
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuestionCache(client *redis.Client, source bank.Source, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuestionCache) Questions(ctx context.Context, difficulty domain.Difficulty) ([]domain.Question, error) {
	if questions, ok := c.cached(ctx, difficulty); ok {
		return questions, nil
	}

	result, err, _ := c.sf.Do(string(difficulty), func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if questions, ok := c.cached(ctx, difficulty); ok {
			return questions, nil
		}

		questions, err := c.source.Questions(ctx, difficulty)
		if err != nil {
			return nil, err
		}

		payload, err := json.Marshal(questions)
		if err != nil {
			return nil, fmt.Errorf("encode %s questions: %w", difficulty, err)
		}
		if err := c.client.Set(ctx, c.key(difficulty), payload, c.ttlWithJitter()).Err(); err != nil {
			log.Printf("cache %s questions: %v", difficulty, err)
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	questions := result.([]domain.Question)
	out := make([]domain.Question, len(questions))
	copy(out, questions)
	return out, nil
}

// Invalidate drops the cached list so the next read goes to the source.
func (c *QuestionCache) Invalidate(ctx context.Context, difficulty domain.Difficulty) error {
	return c.client.Del(ctx, c.key(difficulty)).Err()
}

func (c *QuestionCache) cached(ctx context.Context, difficulty domain.Difficulty) ([]domain.Question, bool) {
	payload, err := c.client.Get(ctx, c.key(difficulty)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("read cached %s questions: %v", difficulty, err)
		}
		return nil, false
	}
	var questions []domain.Question
	if err := json.Unmarshal(payload, &questions); err != nil {
		log.Printf("decode cached %s questions: %v", difficulty, err)
		return nil, false
	}
	return questions, true
}

func (c *QuestionCache) key(difficulty domain.Difficulty) string {
	return "trivia:bank:" + string(difficulty)
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
