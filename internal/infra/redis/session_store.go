package redis

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"trivia-quiz/internal/engine"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Sessions are goroutines owned by this process, so the handles stay in a
//     local map.
//   - Redis only carries a liveness marker per game (trivia:session:{id}),
//     which lets operators count running games across instances.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*engine.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*engine.Session),
	}
}

func (s *SessionStore) Put(session *engine.Session) {
	s.mu.Lock()
	s.sessions[session.ID()] = session
	s.mu.Unlock()

	cfg := session.Config()
	// best-effort liveness marker
	err := s.client.HSet(context.Background(), s.key(session.ID()),
		"difficulty", string(cfg.Difficulty),
		"rounds", cfg.RoundCount,
		"secondsPerRound", cfg.SecondsPerRound,
	).Err()
	if err == nil && s.ttl > 0 {
		err = s.client.Expire(context.Background(), s.key(session.ID()), s.ttl).Err()
	}
	if err != nil {
		log.Printf("session %s: liveness marker: %v", session.ID(), err)
	}
}

func (s *SessionStore) Get(sessionID string) (*engine.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	_ = s.client.Del(context.Background(), s.key(sessionID)).Err()
}

func (s *SessionStore) All() []*engine.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*engine.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	return out
}

func (s *SessionStore) key(sessionID string) string {
	return "trivia:session:" + sessionID
}
