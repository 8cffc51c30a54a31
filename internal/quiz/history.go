package quiz

import (
	"context"
	"log"
	"sort"
	"strings"
)

type Tier string

const (
	TierOutstanding    Tier = "outstanding"
	TierWellDone       Tier = "well_done"
	TierKeepPracticing Tier = "keep_practicing"
)

// HistoryEntry is an attempt decorated for display.
type HistoryEntry struct {
	Attempt
	Percentage float64 `json:"percentage"`
	Tier       Tier    `json:"tier"`
}

type HistoryService struct {
	attempts AttemptLister
}

func NewHistoryService(attempts AttemptLister) *HistoryService {
	return &HistoryService{attempts: attempts}
}

// List returns past attempts, most recent first. An empty player lists
// everyone. Read failures are logged and yield an empty history.
func (s *HistoryService) List(ctx context.Context, player string) []HistoryEntry {
	var (
		attempts []Attempt
		err      error
	)
	player = NormalizePlayerName(player)
	if player == "" {
		attempts, err = s.attempts.ListAll(ctx)
	} else {
		attempts, err = s.attempts.ListByPlayer(ctx, player)
	}
	if err != nil {
		log.Printf("failed to load quiz attempts: %v", err)
		return []HistoryEntry{}
	}

	SortByDateDesc(attempts)

	entries := make([]HistoryEntry, 0, len(attempts))
	for _, attempt := range attempts {
		percentage := Percentage(attempt.Score, attempt.TotalQuestions)
		entries = append(entries, HistoryEntry{
			Attempt:    attempt,
			Percentage: percentage,
			Tier:       TierFor(percentage),
		})
	}
	return entries
}

func SortByDateDesc(attempts []Attempt) {
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].Date.After(attempts[j].Date)
	})
}

func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(score) / float64(total)
}

func TierFor(percentage float64) Tier {
	switch {
	case percentage >= 80:
		return TierOutstanding
	case percentage >= 60:
		return TierWellDone
	default:
		return TierKeepPracticing
	}
}

// ResultMessage is the headline shown on the results screen.
func ResultMessage(tier Tier) string {
	switch tier {
	case TierOutstanding:
		return "Outstanding!"
	case TierWellDone:
		return "Well Done!"
	default:
		return "Keep Practicing!"
	}
}

// Initial is the avatar letter shown next to a player's name.
func Initial(playerName string) string {
	for _, r := range strings.TrimSpace(playerName) {
		return strings.ToUpper(string(r))
	}
	return "?"
}
