package quiz

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind string

const (
	KindMultipleChoice Kind = "mcq"
	KindInteger        Kind = "integer"
)

type Option struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// Question is one entry of the compiled-in question set. CorrectAnswer is an
// option index for multiple-choice questions and a literal value otherwise.
type Question struct {
	ID            int      `json:"id"`
	Kind          Kind     `json:"kind"`
	Prompt        string   `json:"prompt"`
	Options       []Option `json:"options,omitempty"`
	CorrectAnswer int      `json:"correct_answer"`
}

// QuestionSet is an ordered, read-only list of questions.
type QuestionSet struct {
	questions []Question
}

func NewQuestionSet(questions []Question) (QuestionSet, error) {
	if len(questions) == 0 {
		return QuestionSet{}, fmt.Errorf("%w: no questions", ErrInvalidQuestionSet)
	}

	seen := make(map[int]struct{}, len(questions))
	owned := make([]Question, 0, len(questions))
	for _, question := range questions {
		if _, ok := seen[question.ID]; ok {
			return QuestionSet{}, fmt.Errorf("%w: duplicate question id %d", ErrInvalidQuestionSet, question.ID)
		}
		seen[question.ID] = struct{}{}

		switch question.Kind {
		case KindMultipleChoice:
			if len(question.Options) == 0 {
				return QuestionSet{}, fmt.Errorf("%w: question %d has no options", ErrInvalidQuestionSet, question.ID)
			}
			if question.CorrectAnswer < 0 || question.CorrectAnswer >= len(question.Options) {
				return QuestionSet{}, fmt.Errorf("%w: question %d correct index out of range", ErrInvalidQuestionSet, question.ID)
			}
		case KindInteger:
			if len(question.Options) != 0 {
				return QuestionSet{}, fmt.Errorf("%w: integer question %d has options", ErrInvalidQuestionSet, question.ID)
			}
		default:
			return QuestionSet{}, fmt.Errorf("%w: question %d has unknown kind %q", ErrInvalidQuestionSet, question.ID, question.Kind)
		}

		question.Options = append([]Option(nil), question.Options...)
		owned = append(owned, question)
	}

	return QuestionSet{questions: owned}, nil
}

func (s QuestionSet) Len() int {
	return len(s.questions)
}

func (s QuestionSet) At(index int) (Question, bool) {
	if index < 0 || index >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[index], true
}

// Counts returns the number of multiple-choice and integer questions.
func (s QuestionSet) Counts() (mcq, integer int) {
	for _, question := range s.questions {
		if question.Kind == KindMultipleChoice {
			mcq++
		} else {
			integer++
		}
	}
	return mcq, integer
}

// IsCorrect reports whether response answers the question. It never fails:
// anything that cannot be interpreted is simply wrong.
func (q Question) IsCorrect(response string) bool {
	switch q.Kind {
	case KindMultipleChoice:
		index, ok := q.optionIndex(response)
		return ok && index == q.CorrectAnswer
	case KindInteger:
		value, err := strconv.Atoi(strings.TrimSpace(response))
		if err != nil {
			return false
		}
		return value == q.CorrectAnswer
	default:
		return false
	}
}

// CorrectText renders the expected answer for display.
func (q Question) CorrectText() string {
	if q.Kind == KindInteger {
		return strconv.Itoa(q.CorrectAnswer)
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return ""
	}
	option := q.Options[q.CorrectAnswer]
	return option.Letter + ". " + option.Text
}

// optionIndex accepts a single letter (case-insensitive) or a 1-based number.
func (q Question) optionIndex(response string) (int, bool) {
	trimmed := strings.TrimSpace(response)
	if number, err := strconv.Atoi(trimmed); err == nil {
		if number < 1 || number > len(q.Options) {
			return -1, false
		}
		return number - 1, true
	}

	letter := NormalizeLetter(trimmed)
	if letter == "" {
		return -1, false
	}
	index := int(letter[0] - 'A')
	if index < 0 || index >= len(q.Options) {
		return -1, false
	}
	return index, true
}

func NormalizeLetter(answer string) string {
	letter := strings.ToUpper(strings.TrimSpace(answer))
	if len(letter) != 1 {
		return ""
	}
	return letter
}

func lettered(texts ...string) []Option {
	options := make([]Option, len(texts))
	for idx, text := range texts {
		options[idx] = Option{
			Letter: string(rune('A' + idx)),
			Text:   text,
		}
	}
	return options
}

// DefaultQuestions is the question set shipped with the game.
func DefaultQuestions() QuestionSet {
	set, err := NewQuestionSet([]Question{
		{ID: 1, Kind: KindMultipleChoice, Prompt: "Which planet is closest to the Sun?", Options: lettered("Venus", "Mercury", "Earth", "Mars"), CorrectAnswer: 1},
		{ID: 2, Kind: KindMultipleChoice, Prompt: "Which data structure organizes items in a First-In, First-Out (FIFO) manner?", Options: lettered("Stack", "Queue", "Tree", "Graph"), CorrectAnswer: 1},
		{ID: 3, Kind: KindMultipleChoice, Prompt: "Which of the following is primarily used for structuring web pages?", Options: lettered("Python", "Java", "HTML", "C++"), CorrectAnswer: 2},
		{ID: 4, Kind: KindMultipleChoice, Prompt: "Which chemical symbol stands for Gold?", Options: lettered("Au", "Gd", "Ag", "Pt"), CorrectAnswer: 0},
		{ID: 5, Kind: KindMultipleChoice, Prompt: "Which of these processes is not typically involved in refining petroleum?", Options: lettered("Fractional distillation", "Cracking", "Polymerization", "Filtration"), CorrectAnswer: 3},
		{ID: 6, Kind: KindInteger, Prompt: "What is the value of 12 + 28?", CorrectAnswer: 40},
		{ID: 7, Kind: KindInteger, Prompt: "How many states are there in the United States?", CorrectAnswer: 50},
		{ID: 8, Kind: KindInteger, Prompt: "In which year was the Declaration of Independence signed?", CorrectAnswer: 1776},
		{ID: 9, Kind: KindInteger, Prompt: "What is the value of pi rounded to the nearest integer?", CorrectAnswer: 3},
		{ID: 10, Kind: KindInteger, Prompt: "If a car travels at 60 mph for 2 hours, how many miles does it travel?", CorrectAnswer: 120},
	})
	if err != nil {
		panic(err)
	}
	return set
}
