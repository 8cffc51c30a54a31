package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"quiz-history/internal/quiz"
)

const historyDateLayout = "Jan 2, 2006, 03:04 PM"

func printQuestion(out io.Writer, question quiz.Question) {
	fmt.Fprintln(out)
	if question.Kind == quiz.KindMultipleChoice {
		fmt.Fprintln(out, "Multiple Choice")
	} else {
		fmt.Fprintln(out, "Numerical Answer")
	}
	fmt.Fprintf(out, "%s\n\n", question.Prompt)
	for _, option := range question.Options {
		fmt.Fprintf(out, "%s. %s\n", option.Letter, option.Text)
	}
	if question.Kind == quiz.KindMultipleChoice {
		fmt.Fprint(out, "\nYour answer (letter): ")
	} else {
		fmt.Fprint(out, "\nYour answer (number): ")
	}
}

func printFeedback(out io.Writer, transition quiz.Transition) {
	fmt.Fprintln(out)
	switch {
	case transition.TimedOut:
		fmt.Fprintf(out, "Time's up! Correct answer was %s\n", transition.Question.CorrectText())
	case transition.Correct:
		fmt.Fprintln(out, "Correct!")
	default:
		fmt.Fprintf(out, "Wrong. Correct answer was %s\n", transition.Question.CorrectText())
	}
}

func printHistory(out io.Writer, entries []quiz.HistoryEntry) error {
	if _, err := fmt.Fprintln(out, "\nQuiz History"); err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, "No Quiz History Yet\nTake your first quiz to start tracking your progress!")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Player\tDate & Time\tScore\tPerformance\t")
	for _, entry := range entries {
		fmt.Fprintf(
			tw,
			"%s %s\t%s\t%d/%d\t%.1f%% (%s)\t\n",
			quiz.Initial(entry.PlayerName),
			entry.PlayerName,
			entry.Date.Local().Format(historyDateLayout),
			entry.Score,
			entry.TotalQuestions,
			entry.Percentage,
			entry.Tier,
		)
	}
	return tw.Flush()
}
