// Package policy derives study statistics and status transitions from a
// state snapshot and the syllabus catalog. Everything here is pure.
package policy

import (
	"math"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
)

// Counts is the number of catalog topics in each status.
type Counts struct {
	Mastered int
	InReview int
	Pending  int
}

// Total returns the number of counted topics.
func (c Counts) Total() int {
	return c.Mastered + c.InReview + c.Pending
}

// CategoryStat is the rollup of one syllabus category.
type CategoryStat struct {
	Category  entities.Category
	Total     int // topics in the category
	Completed int // mastered topics in the category
}

// Summary bundles everything the dashboard shows.
type Summary struct {
	Total      int
	Counts     Counts
	Completion float64 // mastered / total, in [0,1]
	Percentage int     // completion rounded to a whole percent
	Categories []CategoryStat
}

// CountsOf counts catalog topics by effective status. Progress records for
// topics that are not in the catalog are ignored, so the three counts always
// add up to len(topics).
func CountsOf(state entities.AppState, topics []entities.Topic) Counts {
	var c Counts
	for _, t := range topics {
		switch state.Effective(t.ID).Status {
		case entities.StatusMastered:
			c.Mastered++
		case entities.StatusInReview:
			c.InReview++
		case entities.StatusPending:
		}
	}

	c.Pending = len(topics) - c.Mastered - c.InReview
	return c
}

// CompletionRatio returns mastered / total, or 0 for an empty catalog.
func CompletionRatio(state entities.AppState, topics []entities.Topic) float64 {
	if len(topics) == 0 {
		return 0
	}
	return float64(CountsOf(state, topics).Mastered) / float64(len(topics))
}

// CategoryRollup returns one entry per category present in the catalog, in
// order of first appearance.
func CategoryRollup(state entities.AppState, topics []entities.Topic) []CategoryStat {
	index := make(map[entities.Category]int)
	var out []CategoryStat

	for _, t := range topics {
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryStat{Category: t.Category})
		}

		out[i].Total++
		if state.Effective(t.ID).Status == entities.StatusMastered {
			out[i].Completed++
		}
	}

	return out
}

// Summarize computes the dashboard view.
func Summarize(state entities.AppState, topics []entities.Topic) Summary {
	ratio := CompletionRatio(state, topics)
	return Summary{
		Total:      len(topics),
		Counts:     CountsOf(state, topics),
		Completion: ratio,
		Percentage: int(math.Round(ratio * 100)),
		Categories: CategoryRollup(state, topics),
	}
}

// ToggleStudied returns the status the "mark as studied" action moves a topic to.
func ToggleStudied(current entities.Status) entities.Status {
	switch current {
	case entities.StatusMastered:
		return entities.StatusPending
	case entities.StatusPending, entities.StatusInReview:
		return entities.StatusMastered
	default:
		return entities.StatusMastered
	}
}

// PromoteOnRecall reports whether a remembered flashcard should move its
// topic to InReview. Mastered topics are never downgraded.
func PromoteOnRecall(current entities.Status) bool {
	switch current {
	case entities.StatusMastered:
		return false
	case entities.StatusPending, entities.StatusInReview:
		return true
	default:
		return false
	}
}

// FirstPending returns the first catalog topic that has not been started.
func FirstPending(state entities.AppState, topics []entities.Topic) (entities.Topic, bool) {
	for _, t := range topics {
		if state.Effective(t.ID).Status == entities.StatusPending {
			return t, true
		}
	}
	return entities.Topic{}, false
}
