package quiz

import (
	"context"
	"errors"
)

var (
	ErrInvalidAttempt     = errors.New("invalid attempt")
	ErrDuplicateAttempt   = errors.New("attempt already recorded for session")
	ErrInvalidQuestionSet = errors.New("invalid question set")
)

// AttemptRecorder persists completed sessions.
type AttemptRecorder interface {
	Append(ctx context.Context, attempt Attempt) (int64, error)
}

// AttemptLister reads persisted attempts. ListAll makes no ordering promise.
type AttemptLister interface {
	ListAll(ctx context.Context) ([]Attempt, error)
	ListByPlayer(ctx context.Context, playerName string) ([]Attempt, error)
}

type AttemptRepository interface {
	AttemptRecorder
	AttemptLister
}
