package integration

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/bank"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/engine"
	pgloader "trivia-quiz/internal/infra/postgres"
	pgmigrations "trivia-quiz/internal/infra/postgres/migrations"
	infraredis "trivia-quiz/internal/infra/redis"
)

func TestGameEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	migrateAndSeed(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	loader := pgloader.NewQuestionLoader(pool)

	questions, err := loader.Questions(ctx, domain.Hard)
	if err != nil {
		t.Fatalf("load questions: %v", err)
	}
	if len(questions) != 15 || questions[0].Text != bank.Builtin(domain.Hard)[0].Text {
		t.Fatalf("expected the seeded hard table, got %d questions", len(questions))
	}
	if _, err := loader.Questions(ctx, "Legendary"); err == nil {
		t.Fatalf("expected unknown difficulty error")
	}

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	cache := infraredis.NewQuestionCache(redisClient, loader, 5*time.Minute)
	sessionStore := infraredis.NewSessionStore(redisClient, 5*time.Minute)

	identity := func(int, func(i, j int)) {}
	eng := engine.New(bank.NewWithShuffle(cache, identity),
		engine.WithLogger(log.New(io.Discard, "", 0)),
		engine.WithTickInterval(time.Hour),
	)
	service := app.NewGameService(eng, sessionStore)

	session, err := service.StartGame(ctx, domain.SessionConfig{
		Difficulty: domain.Hard, RoundCount: 2, SecondsPerRound: 10,
	})
	if err != nil {
		t.Fatalf("start game: %v", err)
	}
	if n, err := redisClient.Exists(ctx, "trivia:session:"+session.ID(), "trivia:bank:Hard").Result(); err != nil || n != 2 {
		t.Fatalf("expected session and bank keys in redis, got %d (%v)", n, err)
	}

	for round := 1; round <= 2; round++ {
		snap := <-session.Snapshots()
		if snap.RoundNumber != round {
			t.Fatalf("expected round %d, got %d", round, snap.RoundNumber)
		}
		if err := service.SubmitAnswer(session.ID(), round, questions[round-1].CorrectAnswer); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	select {
	case result := <-session.Done():
		if result.FinalScore != 2 || result.Status != domain.StatusCompleted {
			t.Fatalf("unexpected result %+v", result)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("session did not end")
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "trivia", "POSTGRES_PASSWORD": "triviapass", "POSTGRES_DB": "triviadb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://trivia:triviapass@%s:%s/triviadb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func migrateAndSeed(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// A malformed row is skipped by the loader rather than failing the table.
	if _, err := db.ExecContext(ctx,
		`INSERT INTO questions (difficulty, position, text, options, correct_answer) VALUES (?, ?, ?, ?::jsonb, ?)`,
		string(domain.Hard), 99, "Broken?", `["only one"]`, "missing"); err != nil {
		t.Fatalf("insert broken row: %v", err)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
