// Package flashcard builds review cards from the syllabus and drives a
// linear review session over them.
package flashcard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
)

const (
	ellipsis          = "..."
	placeholderAnswer = "Contenido pendiente de estudio. Revisa el tema completo."
)

// BuildOptions controls which catalog topics become cards.
type BuildOptions struct {
	FeaturedTopicID int // topic whose authored subtopics become one card each
	GenericLimit    int // number of further topics that get a generic card
	AnswerPreview   int // answer length in runes before the ellipsis
}

// DefaultBuildOptions mirrors the syllabus layout: topic 1 is fully authored.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		FeaturedTopicID: 1,
		GenericLimit:    5,
		AnswerPreview:   150,
	}
}

// Build derives the candidate cards from the catalog. The result only
// depends on the catalog and the options; shuffling happens in the session.
func Build(topics []entities.Topic, opts BuildOptions) []entities.Flashcard {
	var cards []entities.Flashcard

	for _, t := range topics {
		if t.ID != opts.FeaturedTopicID {
			continue
		}
		for _, sub := range t.Subtopics {
			cards = append(cards, entities.Flashcard{
				ID:       sub.ID,
				Question: fmt.Sprintf("¿Qué abarca el apartado: %s?", sub.Title),
				Answer:   Preview(sub.Content, opts.AnswerPreview),
				TopicID:  t.ID,
			})
		}
		break
	}

	added := 0
	for _, t := range topics {
		if added >= opts.GenericLimit {
			break
		}
		if t.ID == opts.FeaturedTopicID {
			continue
		}

		cards = append(cards, entities.Flashcard{
			ID:       "t" + strconv.Itoa(t.ID),
			Question: fmt.Sprintf("Resume el objetivo principal de: %s", t.Title),
			Answer:   placeholderAnswer,
			TopicID:  t.ID,
		})
		added++
	}

	return cards
}

// Preview returns the first n runes of the trimmed content followed by an
// ellipsis. Empty content yields the placeholder answer so a card is never blank.
func Preview(content string, n int) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return placeholderAnswer
	}

	runes := []rune(content)
	if n > 0 && len(runes) > n {
		runes = runes[:n]
	}

	return string(runes) + ellipsis
}
