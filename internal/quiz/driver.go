package quiz

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInputClosed = errors.New("answer input closed")

// Driver owns the current session and is the only place a completed session
// is handed to the recorder. It is not safe for concurrent use; Run
// serializes answers and ticks onto the calling goroutine.
type Driver struct {
	session  Session
	recorder AttemptRecorder
	newID    func() string
}

func NewDriver(session Session, recorder AttemptRecorder) *Driver {
	return &Driver{
		session:  session,
		recorder: recorder,
		newID:    uuid.NewString,
	}
}

func (d *Driver) Session() Session {
	return d.session
}

func (d *Driver) Start(ctx context.Context, playerName string) Transition {
	next, transition := d.session.Start(playerName, d.newID())
	return d.apply(ctx, next, transition)
}

func (d *Driver) Submit(ctx context.Context, response string) Transition {
	next, transition := d.session.Submit(response)
	return d.apply(ctx, next, transition)
}

func (d *Driver) Type(text string) {
	d.session = d.session.Type(text)
}

func (d *Driver) SubmitBuffer(ctx context.Context) Transition {
	next, transition := d.session.SubmitBuffer()
	return d.apply(ctx, next, transition)
}

func (d *Driver) Tick(ctx context.Context) Transition {
	next, transition := d.session.Tick()
	return d.apply(ctx, next, transition)
}

func (d *Driver) Reset() {
	d.session, _ = d.session.Reset()
}

// Run feeds answers and ticks into the session until it leaves InProgress.
// Ticks arriving after the session ended are never observed. Blank answer
// lines are skipped without a transition. onTransition may be nil.
func (d *Driver) Run(ctx context.Context, answers <-chan string, ticks <-chan time.Time, onTransition func(Transition)) error {
	for d.session.State() == StateInProgress {
		var transition Transition
		select {
		case <-ctx.Done():
			return ctx.Err()
		case response, ok := <-answers:
			if !ok {
				return ErrInputClosed
			}
			if strings.TrimSpace(response) == "" {
				// Blank input is not a submission.
				continue
			}
			d.Type(response)
			transition = d.SubmitBuffer(ctx)
		case <-ticks:
			transition = d.Tick(ctx)
		}

		if onTransition != nil {
			onTransition(transition)
		}
	}
	return nil
}

func (d *Driver) apply(ctx context.Context, next Session, transition Transition) Transition {
	d.session = next
	if transition.Event == EventCompleted {
		d.complete(ctx, next)
	}
	return transition
}

// complete is the terminal-transition hook. A completed session cannot
// complete again, so this runs at most once per session.
func (d *Driver) complete(ctx context.Context, completed Session) {
	attempt, ok := completed.Attempt()
	if !ok || d.recorder == nil {
		return
	}

	if _, err := d.recorder.Append(ctx, attempt); err != nil {
		log.Printf("failed to save quiz attempt for %q: %v", attempt.PlayerName, err)
		return
	}
	log.Printf("quiz attempt saved: player=%q score=%d/%d", attempt.PlayerName, attempt.Score, attempt.TotalQuestions)
}
