package app

import (
	"context"
	"fmt"
	"log"

	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/engine"
)

// SessionRepository abstracts where live game sessions are tracked (in-memory, Redis, etc).
type SessionRepository interface {
	Put(session *engine.Session)
	Get(sessionID string) (*engine.Session, bool)
	Delete(sessionID string)
	All() []*engine.Session
}

// SessionStarter launches game sessions; *engine.Engine implements it.
type SessionStarter interface {
	Start(ctx context.Context, cfg domain.SessionConfig) (*engine.Session, error)
}

// GameService contains the game use cases shared by the terminal and websocket front-ends.
type GameService struct {
	engine   SessionStarter
	sessions SessionRepository
}

func NewGameService(starter SessionStarter, store SessionRepository) *GameService {
	return &GameService{engine: starter, sessions: store}
}

// StartGame starts a session and tracks it until it finishes. Cancelling ctx
// abandons the session.
func (s *GameService) StartGame(ctx context.Context, cfg domain.SessionConfig) (*engine.Session, error) {
	session, err := s.engine.Start(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("start game: %w", err)
	}

	s.sessions.Put(session)
	go func() {
		<-session.Finished()
		s.sessions.Delete(session.ID())
	}()
	return session, nil
}

// SubmitAnswer forwards an answer for round (0 for the active round) to a live session.
func (s *GameService) SubmitAnswer(sessionID string, round int, option string) error {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.SubmitRound(round, option)
	return nil
}

// Abandon tears a live session down; its in-progress round is not scored.
func (s *GameService) Abandon(sessionID string) error {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.Abort()
	s.sessions.Delete(sessionID)
	return nil
}

// Active reports how many sessions are live.
func (s *GameService) Active() int {
	return len(s.sessions.All())
}

// Shutdown abandons every live session.
func (s *GameService) Shutdown() {
	sessions := s.sessions.All()
	for _, session := range sessions {
		session.Abort()
		s.sessions.Delete(session.ID())
	}
	if len(sessions) > 0 {
		log.Printf("abandoned %d live sessions", len(sessions))
	}
}
