package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/bank"
	"trivia-quiz/internal/config"
	"trivia-quiz/internal/engine"
	"trivia-quiz/internal/infra/memory"
	pgloader "trivia-quiz/internal/infra/postgres"
	infraredis "trivia-quiz/internal/infra/redis"
)

// backend is the game service plus whatever connections it needs closed.
type backend struct {
	service *app.GameService
	closers []func()
}

func (b *backend) Close() {
	if b.service != nil {
		b.service.Shutdown()
	}
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// newBackend picks the question source and session store from cfg: the
// built-in tables unless Postgres is configured, cached in Redis when Redis is
// configured and in process memory otherwise.
func newBackend(ctx context.Context, cfg config.Config) (*backend, error) {
	b := &backend{}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		b.closers = append(b.closers, func() { _ = redisClient.Close() })
	}

	var source bank.Source = bank.NewStaticSource()
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		b.closers = append(b.closers, pool.Close)
		source = pgloader.NewQuestionLoader(pool)
	}

	bankTTL := config.TTLDuration(cfg.Bank.TTL, 10*time.Minute)
	if redisClient != nil {
		source = infraredis.NewQuestionCache(redisClient, source, bankTTL)
	} else if cfg.Postgres.URL != "" {
		source = memory.NewQuestionCache(source, bankTTL)
	}

	var store app.SessionRepository
	if redisClient != nil {
		store = infraredis.NewSessionStore(redisClient, config.TTLDuration(cfg.Redis.TTL, 30*time.Minute))
	} else {
		store = memory.NewSessionStore()
	}

	eng := engine.New(bank.New(source),
		engine.WithTickInterval(config.TTLDuration(cfg.Game.TickInterval, time.Second)),
		engine.WithLogger(log.Default()),
	)
	b.service = app.NewGameService(eng, store)
	return b, nil
}
