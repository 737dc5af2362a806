package memory

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"trivia-quiz/internal/bank"
	"trivia-quiz/internal/domain"
)

// QuestionCache keeps each difficulty's question list for a TTL so that a
// database-backed source is hit once per expiry, not once per game.
type QuestionCache struct {
	source bank.Source
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu    sync.RWMutex
	rnd   *rand.Rand
	cache map[domain.Difficulty]cachedQuestions
}

type cachedQuestions struct {
	questions []domain.Question
	unknown   bool
	expiresAt time.Time
}

func NewQuestionCache(source bank.Source, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[domain.Difficulty]cachedQuestions),
	}
}

// NewQuestionCacheWithClock is for tests that need to move time forward.
func NewQuestionCacheWithClock(source bank.Source, ttl time.Duration, now func() time.Time) *QuestionCache {
	c := NewQuestionCache(source, ttl)
	c.clock = now
	return c
}

// Questions serves difficulty from the cache, loading it on a miss. An
// unknown difficulty is remembered for the TTL too, so unrecognized input does
// not reach the source on every game. Other errors are never cached.
func (c *QuestionCache) Questions(ctx context.Context, difficulty domain.Difficulty) ([]domain.Question, error) {
	if questions, ok, err := c.lookup(difficulty); ok {
		return questions, err
	}

	result, err, _ := c.sf.Do(string(difficulty), func() (interface{}, error) {
		if questions, ok, err := c.lookup(difficulty); ok {
			return questions, err
		}

		questions, err := c.source.Questions(ctx, difficulty)
		unknown := errors.Is(err, domain.ErrUnknownDifficulty)
		if err != nil && !unknown {
			return nil, err
		}

		c.mu.Lock()
		c.cache[difficulty] = cachedQuestions{
			questions: questions,
			unknown:   unknown,
			expiresAt: c.clock().Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return questions, err
	})
	if err != nil {
		return nil, err
	}
	return copyQuestions(result.([]domain.Question)), nil
}

func (c *QuestionCache) lookup(difficulty domain.Difficulty) ([]domain.Question, bool, error) {
	now := c.clock()
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[difficulty]
	if !ok || !entry.expiresAt.After(now) {
		return nil, false, nil
	}
	if entry.unknown {
		return nil, true, domain.ErrUnknownDifficulty
	}
	return copyQuestions(entry.questions), true, nil
}

// ttlWithJitter adds up to 10% to the TTL to spread expirations.
func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

func copyQuestions(questions []domain.Question) []domain.Question {
	out := make([]domain.Question, len(questions))
	copy(out, questions)
	return out
}
