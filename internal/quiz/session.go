package quiz

import (
	"time"
)

const DefaultTimeLimit = 30

type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

type Event int

const (
	EventNone Event = iota
	EventStarted
	EventTicked
	EventAdvanced
	EventTimedOut
	EventCompleted
	EventReset
)

// Transition describes what a single operation did to a session. Question,
// Correct and TimedOut are set only for answer-like events.
type Transition struct {
	Event    Event
	Question Question
	Correct  bool
	TimedOut bool
}

// Session is an immutable snapshot of one playthrough. Every operation
// returns a new Session and leaves the receiver untouched.
type Session struct {
	questions QuestionSet
	timeLimit int
	now       func() time.Time

	state       State
	playerName  string
	sessionID   string
	index       int
	score       int
	timeLeft    int
	buffer      string
	completedAt time.Time
}

// NewSession returns a NotStarted session over questions. A non-positive
// timeLimit falls back to DefaultTimeLimit and a nil clock to time.Now.
func NewSession(questions QuestionSet, timeLimit int, now func() time.Time) Session {
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	if now == nil {
		now = time.Now
	}
	return Session{
		questions: questions,
		timeLimit: timeLimit,
		now:       now,
	}
}

func (s Session) State() State { return s.state }
func (s Session) PlayerName() string { return s.playerName }
func (s Session) SessionID() string { return s.sessionID }
func (s Session) Index() int { return s.index }
func (s Session) Score() int { return s.score }
func (s Session) TimeLeft() int { return s.timeLeft }
func (s Session) TimeLimit() int { return s.timeLimit }
func (s Session) Buffer() string { return s.buffer }
func (s Session) Questions() QuestionSet { return s.questions }

// Current returns the question being asked. ok is false outside InProgress.
func (s Session) Current() (Question, bool) {
	if s.state != StateInProgress {
		return Question{}, false
	}
	return s.questions.At(s.index)
}

// Start begins a fresh playthrough. A blank name, or a session that is not
// NotStarted, leaves the session as it is.
func (s Session) Start(playerName, sessionID string) (Session, Transition) {
	name := NormalizePlayerName(playerName)
	if s.state != StateNotStarted || name == "" || s.questions.Len() == 0 {
		return s, Transition{Event: EventNone}
	}

	next := s.cleared()
	next.state = StateInProgress
	next.playerName = name
	next.sessionID = sessionID
	next.timeLeft = s.timeLimit
	return next, Transition{Event: EventStarted}
}

// Submit scores response against the current question.
func (s Session) Submit(response string) (Session, Transition) {
	question, ok := s.Current()
	if !ok {
		return s, Transition{Event: EventNone}
	}
	return s.answer(question, question.IsCorrect(response), false)
}

// Type replaces the pending free-form answer.
func (s Session) Type(text string) Session {
	if s.state != StateInProgress {
		return s
	}
	s.buffer = text
	return s
}

// SubmitBuffer submits whatever has been typed so far.
func (s Session) SubmitBuffer() (Session, Transition) {
	return s.Submit(s.buffer)
}

// Tick consumes one time unit. When the countdown runs out the current
// question counts as wrong, whatever has been typed.
func (s Session) Tick() (Session, Transition) {
	question, ok := s.Current()
	if !ok {
		return s, Transition{Event: EventNone}
	}

	next := s
	next.timeLeft--
	if next.timeLeft > 0 {
		return next, Transition{Event: EventTicked}
	}
	return next.answer(question, false, true)
}

// Reset abandons the session. Nothing already persisted is affected.
func (s Session) Reset() (Session, Transition) {
	return s.cleared(), Transition{Event: EventReset}
}

// Attempt builds the record for a completed session.
func (s Session) Attempt() (Attempt, bool) {
	if s.state != StateCompleted {
		return Attempt{}, false
	}
	return Attempt{
		SessionID:      s.sessionID,
		PlayerName:     s.playerName,
		Date:           s.completedAt,
		Score:          s.score,
		TotalQuestions: s.questions.Len(),
	}, true
}

func (s Session) answer(question Question, correct, timedOut bool) (Session, Transition) {
	next := s
	next.buffer = ""
	if correct {
		next.score++
	}

	transition := Transition{
		Question: question,
		Correct:  correct,
		TimedOut: timedOut,
	}

	if next.index >= next.questions.Len()-1 {
		next.state = StateCompleted
		next.timeLeft = 0
		next.completedAt = next.now().UTC()
		transition.Event = EventCompleted
		return next, transition
	}

	next.index++
	next.timeLeft = next.timeLimit
	transition.Event = EventAdvanced
	if timedOut {
		transition.Event = EventTimedOut
	}
	return next, transition
}

func (s Session) cleared() Session {
	return Session{
		questions: s.questions,
		timeLimit: s.timeLimit,
		now:       s.now,
	}
}
