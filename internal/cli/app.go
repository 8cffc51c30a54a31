package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"quiz-history/internal/quiz"
)

type Options struct {
	Questions quiz.QuestionSet
	TimeLimit int
	Tick      time.Duration
	Now       func() time.Time
}

type App struct {
	out       io.Writer
	lines     <-chan string
	countdown func() countdown
	driver    *quiz.Driver
	history   *quiz.HistoryService
}

// countdown paces the per-question timer. Restart puts the next tick a full
// period away, as if the ticker had just been created.
type countdown interface {
	C() <-chan time.Time
	Restart()
	Stop()
}

type tickerCountdown struct {
	ticker *time.Ticker
	every  time.Duration
}

func newTickerCountdown(every time.Duration) *tickerCountdown {
	return &tickerCountdown{ticker: time.NewTicker(every), every: every}
}

func (c *tickerCountdown) C() <-chan time.Time {
	return c.ticker.C
}

func (c *tickerCountdown) Restart() {
	c.ticker.Reset(c.every)
	// A tick buffered before the reset belongs to the previous question.
	select {
	case <-c.ticker.C:
	default:
	}
}

func (c *tickerCountdown) Stop() {
	c.ticker.Stop()
}

// Run plays quiz sessions on the terminal until the player quits or input
// ends. Only completed sessions reach the store.
func Run(ctx context.Context, opts Options, store quiz.AttemptRepository, in io.Reader, out io.Writer) error {
	if opts.Tick <= 0 {
		opts.Tick = time.Second
	}
	tick := opts.Tick

	app := &App{
		out:   out,
		lines: readLines(ctx, in),
		countdown: func() countdown {
			return newTickerCountdown(tick)
		},
		driver:  quiz.NewDriver(quiz.NewSession(opts.Questions, opts.TimeLimit, opts.Now), store),
		history: quiz.NewHistoryService(store),
	}
	return app.loop(ctx)
}

// RunHistory prints the attempt history once. Store read failures render as
// an empty history; only a failed write to out is returned.
func RunHistory(ctx context.Context, store quiz.AttemptLister, player string, out io.Writer) error {
	return printHistory(out, quiz.NewHistoryService(store).List(ctx, player))
}

func (a *App) loop(ctx context.Context) error {
	for {
		started, err := a.startScreen(ctx)
		if err != nil || !started {
			return ignoreClosed(err)
		}

		if err := a.play(ctx); err != nil {
			return ignoreClosed(err)
		}

		again, err := a.resultsScreen(ctx)
		if err != nil || !again {
			return ignoreClosed(err)
		}
		a.driver.Reset()
	}
}

func (a *App) startScreen(ctx context.Context) (bool, error) {
	session := a.driver.Session()
	mcq, integer := session.Questions().Counts()

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Quiz Challenge")
	fmt.Fprintln(a.out, "Ready to test your knowledge?")
	fmt.Fprintf(a.out, "Questions: %d (%d MCQ + %d Integer)\n", session.Questions().Len(), mcq, integer)
	fmt.Fprintf(a.out, "Time per question: %d seconds\n", session.TimeLimit())

	for {
		fmt.Fprint(a.out, "\nEnter your name to begin (h = history, q = quit): ")
		line, err := a.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "q":
			return false, nil
		case "h":
			if err := printHistory(a.out, a.history.List(ctx, "")); err != nil {
				return false, err
			}
			continue
		}

		if transition := a.driver.Start(ctx, line); transition.Event == quiz.EventStarted {
			return true, nil
		}
		fmt.Fprintln(a.out, "A name is required to start.")
	}
}

func (a *App) play(ctx context.Context) error {
	timer := a.countdown()
	// The ticker never outlives the session it was created for.
	defer timer.Stop()

	a.printQuestion()
	return a.driver.Run(ctx, a.lines, timer.C(), func(transition quiz.Transition) {
		session := a.driver.Session()
		switch transition.Event {
		case quiz.EventTicked:
			if left := session.TimeLeft(); left == 10 || left <= 5 {
				fmt.Fprintf(a.out, "\n[%ds left] ", left)
			}
		case quiz.EventAdvanced, quiz.EventTimedOut:
			// Each question gets the whole limit, whatever the ticker phase was.
			timer.Restart()
			printFeedback(a.out, transition)
			a.printQuestion()
		case quiz.EventCompleted:
			printFeedback(a.out, transition)
		}
	})
}

func (a *App) resultsScreen(ctx context.Context) (bool, error) {
	session := a.driver.Session()
	attempt, ok := session.Attempt()
	if !ok {
		return false, nil
	}

	percentage := quiz.Percentage(attempt.Score, attempt.TotalQuestions)
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, quiz.ResultMessage(quiz.TierFor(percentage)))
	fmt.Fprintf(a.out, "Great effort, %s!\n", attempt.PlayerName)
	fmt.Fprintf(a.out, "Final score: %d/%d (%.0f%%)\n", attempt.Score, attempt.TotalQuestions, percentage)

	for {
		fmt.Fprint(a.out, "\n[r] try again, [h] history, [q] quit: ")
		line, err := a.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "r":
			return true, nil
		case "h":
			if err := printHistory(a.out, a.history.List(ctx, "")); err != nil {
				return false, err
			}
		case "q":
			return false, nil
		}
	}
}

func (a *App) printQuestion() {
	session := a.driver.Session()
	question, ok := session.Current()
	if !ok {
		return
	}

	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Player: %s  Score: %d\n", session.PlayerName(), session.Score())
	fmt.Fprintf(a.out, "Question %d of %d  Time left: %ds\n", session.Index()+1, session.Questions().Len(), session.TimeLeft())
	printQuestion(a.out, question)
}

func (a *App) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-a.lines:
		if !ok {
			return "", quiz.ErrInputClosed
		}
		return line, nil
	}
}

func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

func ignoreClosed(err error) error {
	if errors.Is(err, quiz.ErrInputClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
