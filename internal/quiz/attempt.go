package quiz

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

// Attempt is the persisted summary of one completed session.
type Attempt struct {
	ID             int64     `json:"id"`
	SessionID      string    `json:"session_id" validate:"required,uuid4"`
	PlayerName     string    `json:"player_name" validate:"required"`
	Date           time.Time `json:"date" validate:"required"`
	Score          int       `json:"score" validate:"min=0,ltefield=TotalQuestions"`
	TotalQuestions int       `json:"total_questions" validate:"gt=0"`
}

var validate = validator.New()

// Validate checks the attempt invariants before it is written.
func (a Attempt) Validate() error {
	// required accepts a whitespace-only name.
	if strings.TrimSpace(a.PlayerName) == "" {
		return fmt.Errorf("%w: player name is required", ErrInvalidAttempt)
	}
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAttempt, err)
	}
	return nil
}

// NormalizePlayerName folds a typed name into the form stored and indexed.
func NormalizePlayerName(name string) string {
	return strings.TrimSpace(norm.NFC.String(name))
}
