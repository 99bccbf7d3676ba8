package flashcard

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
)

func testCatalog() []entities.Topic {
	topics := []entities.Topic{
		{
			ID:    1,
			Title: "La Constitución Española de 1978",
			Subtopics: []entities.Subtopic{
				{ID: "1.1", Title: "Estructura", Content: "  La Constitución se divide en un Título Preliminar y diez títulos.  "},
				{ID: "1.2", Title: "Derechos", Content: strings.Repeat("á", 200)},
				{ID: "1.3", Title: "Vacío", Content: "   "},
			},
		},
	}
	for i := 2; i <= 10; i++ {
		topics = append(topics, entities.Topic{ID: i, Title: "Tema genérico"})
	}
	return topics
}

func TestBuild(t *testing.T) {
	cards := Build(testCatalog(), DefaultBuildOptions())

	if len(cards) != 3+5 {
		t.Fatalf("len(cards) = %d, want 8", len(cards))
	}

	first := cards[0]
	if first.ID != "1.1" || first.TopicID != 1 {
		t.Errorf("first card = %+v", first)
	}
	if first.Question != "¿Qué abarca el apartado: Estructura?" {
		t.Errorf("Question = %q", first.Question)
	}
	if first.Answer != "La Constitución se divide en un Título Preliminar y diez títulos...." {
		t.Errorf("Answer = %q", first.Answer)
	}

	if cards[2].Answer != placeholderAnswer {
		t.Errorf("blank subtopic answer = %q, want placeholder", cards[2].Answer)
	}

	generic := cards[3]
	if generic.ID != "t2" || generic.TopicID != 2 {
		t.Errorf("generic card = %+v", generic)
	}
	if generic.Question != "Resume el objetivo principal de: Tema genérico" {
		t.Errorf("generic Question = %q", generic.Question)
	}
	if cards[len(cards)-1].ID != "t6" {
		t.Errorf("last card = %q, want t6", cards[len(cards)-1].ID)
	}

	seen := make(map[string]bool)
	for _, c := range cards {
		if seen[c.ID] {
			t.Errorf("duplicate card id %q", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestBuildWithoutFeaturedTopic(t *testing.T) {
	topics := testCatalog()[1:4]
	cards := Build(topics, DefaultBuildOptions())
	if len(cards) != 3 {
		t.Fatalf("len(cards) = %d, want 3", len(cards))
	}
	for _, c := range cards {
		if !strings.HasPrefix(c.ID, "t") {
			t.Errorf("unexpected card %q", c.ID)
		}
	}

	if got := Build(nil, DefaultBuildOptions()); len(got) != 0 {
		t.Errorf("Build(nil) = %d cards, want 0", len(got))
	}
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("ñ", 200)
	got := Preview(long, 150)
	if utf8.RuneCountInString(got) != 153 {
		t.Errorf("rune count = %d, want 153", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Preview should end with ellipsis: %q", got)
	}

	if got := Preview("corto", 150); got != "corto..." {
		t.Errorf("Preview(short) = %q", got)
	}
	if got := Preview("", 150); got != placeholderAnswer {
		t.Errorf("Preview(empty) = %q", got)
	}
}
