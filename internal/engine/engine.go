// Package engine runs timed trivia sessions. Each session is owned by a single
// goroutine that serializes the round countdown and user answers, so a round
// resolves exactly once no matter how the two race.
package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"trivia-quiz/internal/domain"
)

const (
	defaultTickInterval   = time.Second
	defaultSnapshotBuffer = 16
	answerQueueSize       = 4
)

// QuestionSelector samples the questions of a new session.
type QuestionSelector interface {
	Select(ctx context.Context, difficulty domain.Difficulty, count int) ([]domain.Question, error)
}

// Option customizes an Engine.
type Option func(*Engine)

// WithTickInterval sets how long one countdown second lasts.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// WithTicker replaces the ticker factory, mainly for tests.
func WithTicker(f TickerFunc) Option {
	return func(e *Engine) {
		if f != nil {
			e.newTicker = f
		}
	}
}

// WithSnapshotBuffer sets how many snapshots are kept for a slow presenter
// before the oldest are dropped.
func WithSnapshotBuffer(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.buffer = n
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithIDGenerator(f func() string) Option {
	return func(e *Engine) {
		if f != nil {
			e.newID = f
		}
	}
}

// Engine starts sessions. It holds no per-session state and is safe for concurrent use.
type Engine struct {
	questions QuestionSelector
	interval  time.Duration
	newTicker TickerFunc
	buffer    int
	logger    *log.Logger
	newID     func() string
}

func New(questions QuestionSelector, opts ...Option) *Engine {
	e := &Engine{
		questions: questions,
		interval:  defaultTickInterval,
		newTicker: newTimeTicker,
		buffer:    defaultSnapshotBuffer,
		logger:    log.Default(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start validates cfg, samples the questions and launches the session loop.
// The session is torn down when ctx is cancelled or Abort is called.
func (e *Engine) Start(ctx context.Context, cfg domain.SessionConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	questions, err := e.questions.Select(ctx, cfg.Difficulty, cfg.RoundCount)
	if err != nil {
		return nil, fmt.Errorf("select questions: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	s := &Session{
		id:        e.newID(),
		cfg:       cfg,
		state:     NewRoundState(questions, cfg.SecondsPerRound),
		interval:  e.interval,
		newTicker: e.newTicker,
		logger:    e.logger,
		answers:   make(chan answer, answerQueueSize),
		snapshots: make(chan domain.RoundSnapshot, e.buffer),
		done:      make(chan domain.SessionResult, 1),
		finished:  make(chan struct{}),
		cancel:    cancel,
	}
	s.logger.Printf("session %s started: difficulty=%s rounds=%d/%d seconds=%d",
		s.id, cfg.Difficulty, len(questions), cfg.RoundCount, cfg.SecondsPerRound)

	go s.run(runCtx)
	return s, nil
}

type answer struct {
	round  int
	option string
}

// Session is one live game. Its state is only touched by the run goroutine;
// the exported methods communicate with it through channels.
type Session struct {
	id        string
	cfg       domain.SessionConfig
	state     *RoundState
	interval  time.Duration
	newTicker TickerFunc
	logger    *log.Logger

	answers   chan answer
	snapshots chan domain.RoundSnapshot
	done      chan domain.SessionResult
	finished  chan struct{}
	cancel    context.CancelFunc
}

func (s *Session) ID() string                   { return s.id }
func (s *Session) Config() domain.SessionConfig { return s.cfg }

// Snapshots streams the round view on every round entry and every tick. It is
// closed when the session ends.
func (s *Session) Snapshots() <-chan domain.RoundSnapshot { return s.snapshots }

// Done delivers the session end signal exactly once, then closes.
func (s *Session) Done() <-chan domain.SessionResult { return s.done }

// Finished is closed as soon as the session loop has exited.
func (s *Session) Finished() <-chan struct{} { return s.finished }

// Submit answers whatever round is active when the engine dequeues it.
func (s *Session) Submit(option string) {
	s.SubmitRound(0, option)
}

// SubmitRound answers a specific round; the answer is dropped if that round is
// no longer active. Round 0 means the active round. It never blocks once the
// session has ended.
func (s *Session) SubmitRound(round int, option string) {
	select {
	case s.answers <- answer{round: round, option: option}:
	case <-s.finished:
	}
}

// Abort tears the session down and waits for the loop to exit. The round in
// progress is never scored.
func (s *Session) Abort() {
	s.cancel()
	<-s.finished
}

func (s *Session) run(ctx context.Context) {
	status := domain.StatusCompleted
	defer func() { s.finish(status) }()

	if s.state.Phase() == PhaseSessionEnded {
		s.logger.Printf("session %s: no questions for difficulty %q", s.id, s.cfg.Difficulty)
		return
	}

	for {
		if !s.playRound(ctx) {
			status = domain.StatusAbandoned
			return
		}
		if !s.state.Advance() {
			return
		}
	}
}

// playRound runs the countdown of the active round until it resolves (true)
// or the session is torn down (false). The ticker lives exactly as long as the
// round, so a tick from an earlier round can never be observed.
func (s *Session) playRound(ctx context.Context) bool {
	ticker := s.newTicker(s.interval)
	defer ticker.Stop()

	s.discardPendingAnswers()
	round := s.state.RoundNumber()
	s.emit()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C():
			resolved := s.state.Tick()
			s.emit()
			if resolved {
				s.logger.Printf("session %s: round %d timed out", s.id, round)
				return true
			}
		case a := <-s.answers:
			if a.round != 0 && a.round != round {
				continue
			}
			if s.state.Answer(a.option) {
				s.logger.Printf("session %s: round %d answered %s", s.id, round, s.state.LastResolution())
				return true
			}
		}
	}
}

// discardPendingAnswers drops answers queued while the previous round was resolving.
func (s *Session) discardPendingAnswers() {
	for {
		select {
		case <-s.answers:
		default:
			return
		}
	}
}

func (s *Session) emit() {
	snap := s.state.Snapshot(s.id)
	select {
	case s.snapshots <- snap:
	default:
		// The presenter is behind; keep the newest view.
		select {
		case <-s.snapshots:
		default:
		}
		s.snapshots <- snap
	}
}

func (s *Session) finish(status domain.SessionStatus) {
	result := domain.SessionResult{
		SessionID:    s.id,
		FinalScore:   s.state.Score(),
		RoundsPlayed: s.state.RoundsPlayed(),
		TotalRounds:  s.state.TotalRounds(),
		Status:       status,
	}
	s.logger.Printf("session %s %s: score=%d rounds=%d/%d",
		s.id, status, result.FinalScore, result.RoundsPlayed, result.TotalRounds)

	close(s.finished)
	s.done <- result
	close(s.done)
	close(s.snapshots)
	s.cancel()
}
