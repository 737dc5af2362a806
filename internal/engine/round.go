package engine

import "trivia-quiz/internal/domain"

// Phase is the state of a session's state machine.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseRoundActive
	PhaseRoundResolved
	PhaseSessionEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseRoundActive:
		return "round_active"
	case PhaseRoundResolved:
		return "round_resolved"
	case PhaseSessionEnded:
		return "session_ended"
	default:
		return "unknown"
	}
}

// Resolution records how the last round ended.
type Resolution int

const (
	Unresolved Resolution = iota
	ResolvedCorrect
	ResolvedIncorrect
	ResolvedTimeout
)

func (r Resolution) String() string {
	switch r {
	case ResolvedCorrect:
		return "correct"
	case ResolvedIncorrect:
		return "incorrect"
	case ResolvedTimeout:
		return "timeout"
	default:
		return "unresolved"
	}
}

// RoundState is the mutable state of one session. It has no locks: exactly one
// goroutine (the session loop) may call its methods.
type RoundState struct {
	questions       []domain.Question
	secondsPerRound int

	index      int
	remaining  int
	answered   bool
	score      int
	phase      Phase
	resolution Resolution
}

// NewRoundState enters the first round, or ends the session at once when
// there are no questions.
func NewRoundState(questions []domain.Question, secondsPerRound int) *RoundState {
	s := &RoundState{
		questions:       questions,
		secondsPerRound: secondsPerRound,
		phase:           PhaseInitializing,
	}
	if len(questions) == 0 {
		s.phase = PhaseSessionEnded
		return s
	}
	s.enterRound(0)
	return s
}

func (s *RoundState) enterRound(index int) {
	s.index = index
	s.remaining = s.secondsPerRound
	s.answered = false
	s.resolution = Unresolved
	s.phase = PhaseRoundActive
}

// Tick consumes one second of the active round. It reports true when the tick
// timed the round out.
func (s *RoundState) Tick() bool {
	if s.phase != PhaseRoundActive || s.answered {
		return false
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining > 0 {
		return false
	}
	s.resolution = ResolvedTimeout
	s.phase = PhaseRoundResolved
	return true
}

// Answer applies the user's choice. It reports true when the answer resolved
// the round; answers to a round that already ended are ignored.
func (s *RoundState) Answer(option string) bool {
	if s.phase != PhaseRoundActive || s.answered {
		return false
	}
	s.answered = true
	if option == s.questions[s.index].CorrectAnswer {
		s.score++
		s.resolution = ResolvedCorrect
	} else {
		s.resolution = ResolvedIncorrect
	}
	s.phase = PhaseRoundResolved
	return true
}

// Advance leaves a resolved round. It reports true if another round started
// and false if the session ended.
func (s *RoundState) Advance() bool {
	if s.phase != PhaseRoundResolved {
		return s.phase == PhaseRoundActive
	}
	if s.index+1 < len(s.questions) {
		s.enterRound(s.index + 1)
		return true
	}
	s.index = len(s.questions)
	s.phase = PhaseSessionEnded
	return false
}

func (s *RoundState) Phase() Phase               { return s.phase }
func (s *RoundState) Score() int                 { return s.score }
func (s *RoundState) Answered() bool             { return s.answered }
func (s *RoundState) SecondsRemaining() int      { return s.remaining }
func (s *RoundState) TotalRounds() int           { return len(s.questions) }
func (s *RoundState) LastResolution() Resolution { return s.resolution }

// RoundNumber is 1-based; it is 0 once the session has ended.
func (s *RoundState) RoundNumber() int {
	if s.index >= len(s.questions) {
		return 0
	}
	return s.index + 1
}

// RoundsPlayed counts rounds that reached a resolution.
func (s *RoundState) RoundsPlayed() int {
	switch s.phase {
	case PhaseRoundResolved:
		return s.index + 1
	case PhaseSessionEnded:
		return len(s.questions)
	default:
		return s.index
	}
}

// Snapshot copies the presenter-facing view of the current round.
func (s *RoundState) Snapshot(sessionID string) domain.RoundSnapshot {
	snap := domain.RoundSnapshot{
		SessionID:        sessionID,
		RoundNumber:      s.RoundNumber(),
		TotalRounds:      len(s.questions),
		SecondsRemaining: s.remaining,
		SecondsPerRound:  s.secondsPerRound,
		CurrentScore:     s.score,
	}
	if s.index < len(s.questions) {
		question := s.questions[s.index]
		snap.QuestionText = question.Text
		snap.Options = append([]string(nil), question.Options...)
	}
	return snap
}
