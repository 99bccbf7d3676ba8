package export

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{
			name:  "fits on one line",
			text:  "uno dos tres",
			width: 20,
			want:  []string{"uno dos tres"},
		},
		{
			name:  "breaks on spaces",
			text:  "uno dos tres cuatro",
			width: 8,
			want:  []string{"uno dos", "tres", "cuatro"},
		},
		{
			name:  "keeps paragraph breaks",
			text:  "primero\n\nsegundo",
			width: 20,
			want:  []string{"primero", "", "segundo"},
		},
		{
			name:  "cuts long words",
			text:  "abcdefghij",
			width: 4,
			want:  []string{"abcd", "efgh", "ij"},
		},
		{
			name:  "counts runes not bytes",
			text:  "órgano público",
			width: 6,
			want:  []string{"órgano", "público"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText("## Título\n\n**negrita** y *cursiva*")
	want := " Título\n\nnegrita y cursiva"
	if got != want {
		t.Errorf("PlainText = %q, want %q", got, want)
	}
}

func TestLayoutTopicSinglePage(t *testing.T) {
	topic := entities.Topic{
		ID:    1,
		Title: "La Constitución",
		Subtopics: []entities.Subtopic{
			{ID: "1.1", Title: "Estructura", Content: "**Título** preliminar"},
		},
	}

	pages := LayoutTopic(topic, DefaultLayoutOptions())
	if len(pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(pages))
	}

	lines := pages[0].Lines
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0].Kind != KindTitle || lines[0].Text != "La Constitución" || lines[0].Y != 10 {
		t.Errorf("title line = %+v", lines[0])
	}
	if lines[1].Kind != KindHeading || lines[1].Text != "1.1 Estructura" || lines[1].Y != 20 {
		t.Errorf("heading line = %+v", lines[1])
	}
	if lines[2].Kind != KindBody || lines[2].Text != "Título preliminar" || lines[2].Y != 27 {
		t.Errorf("body line = %+v", lines[2])
	}
}

func TestLayoutTopicPaginates(t *testing.T) {
	opts := DefaultLayoutOptions()
	opts.WrapWidth = 10

	words := make([]string, 200)
	for i := range words {
		words[i] = "palabra"
	}
	topic := entities.Topic{
		ID:    2,
		Title: "Largo",
		Subtopics: []entities.Subtopic{
			{ID: "2.1", Title: "Texto", Content: strings.Join(words, " ")},
		},
	}

	pages := LayoutTopic(topic, opts)
	if len(pages) < 2 {
		t.Fatalf("pages = %d, want at least 2", len(pages))
	}

	for i, p := range pages {
		if p.Number != i+1 {
			t.Errorf("page %d numbered %d", i, p.Number)
		}
		for _, l := range p.Lines {
			if l.Y > opts.PageHeight {
				t.Errorf("page %d line %q at y=%v past page height", p.Number, l.Text, l.Y)
			}
			if utf8.RuneCountInString(l.Text) > opts.WrapWidth && l.Kind == KindBody {
				t.Errorf("body line %q wider than %d", l.Text, opts.WrapWidth)
			}
		}
	}
	if first := pages[1].Lines[0]; first.Y != opts.TopMargin {
		t.Errorf("second page starts at y=%v, want %v", first.Y, opts.TopMargin)
	}
}
