package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"quiz-history/internal/quiz"
)

type memoryStore struct {
	attempts []quiz.Attempt
	listErr  error
}

func (m *memoryStore) Append(_ context.Context, attempt quiz.Attempt) (int64, error) {
	attempt.ID = int64(len(m.attempts) + 1)
	m.attempts = append(m.attempts, attempt)
	return attempt.ID, nil
}

func (m *memoryStore) ListAll(_ context.Context) ([]quiz.Attempt, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]quiz.Attempt(nil), m.attempts...), nil
}

func (m *memoryStore) ListByPlayer(ctx context.Context, playerName string) ([]quiz.Attempt, error) {
	all, err := m.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]quiz.Attempt, 0)
	for _, attempt := range all {
		if attempt.PlayerName == playerName {
			filtered = append(filtered, attempt)
		}
	}
	return filtered, nil
}

func twoQuestions(t *testing.T) quiz.QuestionSet {
	t.Helper()

	set, err := quiz.NewQuestionSet([]quiz.Question{
		{
			ID:     1,
			Kind:   quiz.KindMultipleChoice,
			Prompt: "Which chemical symbol stands for Gold?",
			Options: []quiz.Option{
				{Letter: "A", Text: "Au"},
				{Letter: "B", Text: "Ag"},
			},
			CorrectAnswer: 0,
		},
		{ID: 2, Kind: quiz.KindInteger, Prompt: "What is the value of 12 + 28?", CorrectAnswer: 40},
	})
	if err != nil {
		t.Fatalf("NewQuestionSet failed: %v", err)
	}
	return set
}

type fakeCountdown struct {
	ticks    chan time.Time
	restarts int
	stopped  int
}

func (f *fakeCountdown) C() <-chan time.Time { return f.ticks }
func (f *fakeCountdown) Restart() { f.restarts++ }
func (f *fakeCountdown) Stop() { f.stopped++ }

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write refused")
}

func newTestApp(t *testing.T, store *memoryStore, in io.Reader, ticks chan time.Time) (*App, *bytes.Buffer, *fakeCountdown) {
	t.Helper()

	out := &bytes.Buffer{}
	ctx := context.Background()
	timer := &fakeCountdown{ticks: ticks}
	app := &App{
		out:   out,
		lines: readLines(ctx, in),
		countdown: func() countdown {
			return timer
		},
		driver: quiz.NewDriver(quiz.NewSession(twoQuestions(t), 30, func() time.Time {
			return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
		}), store),
		history: quiz.NewHistoryService(store),
	}
	return app, out, timer
}

func TestAppPlaysSessionAndRecordsAttempt(t *testing.T) {
	store := &memoryStore{}
	input := strings.Join([]string{
		"",      // blank name is refused
		"Alice", // start
		"a",     // correct
		"",      // blank numeric answer is not a submission
		"40",    // correct, completes
		"q",
	}, "\n") + "\n"

	app, out, timer := newTestApp(t, store, strings.NewReader(input), make(chan time.Time))
	if err := app.loop(context.Background()); err != nil {
		t.Fatalf("loop failed: %v", err)
	}

	// One advance between two questions; completion needs no new countdown.
	if timer.restarts != 1 || timer.stopped != 1 {
		t.Fatalf("expected one restart and one stop, got restarts=%d stopped=%d", timer.restarts, timer.stopped)
	}
	if len(store.attempts) != 1 {
		t.Fatalf("expected one stored attempt, got %d", len(store.attempts))
	}
	attempt := store.attempts[0]
	if attempt.PlayerName != "Alice" || attempt.Score != 2 || attempt.TotalQuestions != 2 {
		t.Fatalf("unexpected attempt: %+v", attempt)
	}

	text := out.String()
	for _, want := range []string{
		"Questions: 2 (1 MCQ + 1 Integer)",
		"A name is required to start.",
		"Question 1 of 2",
		"Correct!",
		"Outstanding!",
		"Final score: 2/2 (100%)",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func TestAppTimeoutRecordsZeroScore(t *testing.T) {
	store := &memoryStore{}
	ticks := make(chan time.Time)
	reader, writer := io.Pipe()
	app, out, timer := newTestApp(t, store, reader, ticks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Every send blocks until the app takes it, so the name arrives before
	// the ticks and "q" only after the last question timed out.
	go func() {
		defer writer.Close()
		if _, err := io.WriteString(writer, "Bob\n"); err != nil {
			return
		}
		for i := 0; i < 2*30; i++ {
			select {
			case ticks <- time.Time{}:
			case <-ctx.Done():
				return
			}
		}
		_, _ = io.WriteString(writer, "q\n")
	}()

	if err := app.loop(ctx); err != nil {
		t.Fatalf("loop failed: %v", err)
	}

	if len(store.attempts) != 1 || store.attempts[0].Score != 0 {
		t.Fatalf("expected one zero-score attempt, got %+v", store.attempts)
	}
	if timer.restarts != 1 {
		t.Fatalf("timed-out question must restart the countdown, got %d restarts", timer.restarts)
	}
	if !strings.Contains(out.String(), "Time's up! Correct answer was A. Au") {
		t.Fatalf("timeout feedback missing:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Keep Practicing!") {
		t.Fatalf("result message missing:\n%s", out.String())
	}
}

func TestAppInputClosedMidSessionDoesNotPersist(t *testing.T) {
	store := &memoryStore{}
	app, _, _ := newTestApp(t, store, strings.NewReader("Alice\nA\n"), make(chan time.Time))

	if err := app.loop(context.Background()); err != nil {
		t.Fatalf("closed input should end quietly, got %v", err)
	}
	if len(store.attempts) != 0 {
		t.Fatalf("partial session persisted: %+v", store.attempts)
	}
}

func TestAppHistoryFromStartScreen(t *testing.T) {
	store := &memoryStore{
		attempts: []quiz.Attempt{
			{ID: 1, PlayerName: "alice", Date: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), Score: 9, TotalQuestions: 10},
		},
	}
	app, out, _ := newTestApp(t, store, strings.NewReader("h\nq\n"), make(chan time.Time))

	if err := app.loop(context.Background()); err != nil {
		t.Fatalf("loop failed: %v", err)
	}
	if !strings.Contains(out.String(), "A alice") || !strings.Contains(out.String(), "9/10") || !strings.Contains(out.String(), "90.0% (outstanding)") {
		t.Fatalf("history table missing entry:\n%s", out.String())
	}
}

func TestRunHistoryEmptyAndFailing(t *testing.T) {
	out := &bytes.Buffer{}
	if err := RunHistory(context.Background(), &memoryStore{}, "", out); err != nil {
		t.Fatalf("RunHistory failed: %v", err)
	}
	if !strings.Contains(out.String(), "No Quiz History Yet") {
		t.Fatalf("expected empty-history message:\n%s", out.String())
	}

	out.Reset()
	failing := &memoryStore{listErr: errors.New("blocked")}
	if err := RunHistory(context.Background(), failing, "", out); err != nil {
		t.Fatalf("read failure must not surface, got %v", err)
	}
	if !strings.Contains(out.String(), "No Quiz History Yet") {
		t.Fatalf("read failure must render as empty history:\n%s", out.String())
	}
}

func TestRunHistoryReturnsWriteError(t *testing.T) {
	store := &memoryStore{
		attempts: []quiz.Attempt{
			{ID: 1, PlayerName: "Alice", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Score: 5, TotalQuestions: 10},
		},
	}
	if err := RunHistory(context.Background(), store, "", failingWriter{}); err == nil {
		t.Fatalf("expected write error from a populated history")
	}
	if err := RunHistory(context.Background(), &memoryStore{}, "", failingWriter{}); err == nil {
		t.Fatalf("expected write error from an empty history")
	}
}

func TestTickerCountdownRestartGivesFullPeriod(t *testing.T) {
	const every = 40 * time.Millisecond
	timer := newTickerCountdown(every)
	defer timer.Stop()

	// Let one tick land unread, as when an answer arrives just after it fired.
	time.Sleep(every + every/2)

	restarted := time.Now()
	timer.Restart()
	<-timer.C()

	if elapsed := time.Since(restarted); elapsed < every*9/10 {
		t.Fatalf("next tick came %s after restart, want about %s", elapsed, every)
	}
}

func TestRunHistoryFiltersPlayerNewestFirst(t *testing.T) {
	store := &memoryStore{
		attempts: []quiz.Attempt{
			{ID: 1, PlayerName: "Alice", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Score: 5, TotalQuestions: 10},
			{ID: 2, PlayerName: "Bob", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Score: 6, TotalQuestions: 10},
			{ID: 3, PlayerName: "Alice", Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Score: 8, TotalQuestions: 10},
		},
	}

	out := &bytes.Buffer{}
	if err := RunHistory(context.Background(), store, "Alice", out); err != nil {
		t.Fatalf("RunHistory failed: %v", err)
	}

	text := out.String()
	if strings.Contains(text, "Bob") {
		t.Fatalf("filter leaked other players:\n%s", text)
	}
	newest := strings.Index(text, "8/10")
	oldest := strings.Index(text, "5/10")
	if newest < 0 || oldest < 0 || newest > oldest {
		t.Fatalf("expected newest attempt first:\n%s", text)
	}
}
