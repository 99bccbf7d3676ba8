// Package export turns topics and progress into printable documents.
package export

import (
	"strings"
	"unicode/utf8"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
)

// LineKind tells the writer how to style a laid-out line.
type LineKind int

const (
	KindTitle LineKind = iota
	KindHeading
	KindBody
)

// Line is one printed line with its vertical position on the page.
type Line struct {
	Kind LineKind
	Text string
	Y    float64
}

// Page is a printed page.
type Page struct {
	Number int
	Lines  []Line
}

// LayoutOptions are the page geometry, in the same units as the cursor.
type LayoutOptions struct {
	PageHeight  float64 // a new page starts when the cursor would pass this
	TitleY      float64 // position of the document title on the first page
	TopMargin   float64 // cursor position at the top of every page
	HeadingStep float64 // cursor advance after a subtopic heading
	LineStep    float64 // cursor advance per body line
	BlockGap    float64 // extra space after each subtopic body
	WrapWidth   int     // body wrap width in characters
}

func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		PageHeight:  270,
		TitleY:      10,
		TopMargin:   20,
		HeadingStep: 7,
		LineStep:    5,
		BlockGap:    10,
		WrapWidth:   90,
	}
}

type layout struct {
	opts  LayoutOptions
	pages []Page
	y     float64
}

func (l *layout) place(kind LineKind, text string, step float64) {
	page := &l.pages[len(l.pages)-1]
	if l.y+step > l.opts.PageHeight && len(page.Lines) > 0 {
		l.pages = append(l.pages, Page{Number: len(l.pages) + 1})
		page = &l.pages[len(l.pages)-1]
		l.y = l.opts.TopMargin
	}

	page.Lines = append(page.Lines, Line{Kind: kind, Text: text, Y: l.y})
	l.y += step
}

// LayoutTopic paginates a topic: its title, then for every subtopic a
// heading followed by the wrapped body with markdown markers removed.
func LayoutTopic(topic entities.Topic, opts LayoutOptions) []Page {
	l := &layout{
		opts:  opts,
		pages: []Page{{Number: 1}},
		y:     opts.TitleY,
	}

	l.place(KindTitle, topic.Title, 0)
	l.y = opts.TopMargin

	for _, sub := range topic.Subtopics {
		l.place(KindHeading, sub.ID+" "+sub.Title, opts.HeadingStep)
		for _, line := range Wrap(PlainText(sub.Content), opts.WrapWidth) {
			l.place(KindBody, line, opts.LineStep)
		}
		l.y += opts.BlockGap
	}

	return l.pages
}

// PlainText removes markdown heading and emphasis markers.
func PlainText(markdown string) string {
	return strings.NewReplacer("#", "", "*", "").Replace(markdown)
}

// Wrap splits text into lines of at most width characters, breaking on
// spaces. Paragraph breaks are kept as empty lines; a single word longer
// than width is cut.
func Wrap(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(strings.TrimSpace(text), "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			out = append(out, "")
			continue
		}

		var line strings.Builder
		for _, word := range strings.Fields(para) {
			for width > 0 && utf8.RuneCountInString(word) > width {
				if line.Len() > 0 {
					out = append(out, line.String())
					line.Reset()
				}
				r := []rune(word)
				out = append(out, string(r[:width]))
				word = string(r[width:])
			}

			if line.Len() > 0 && width > 0 &&
				utf8.RuneCountInString(line.String())+1+utf8.RuneCountInString(word) > width {
				out = append(out, line.String())
				line.Reset()
			}
			if line.Len() > 0 {
				line.WriteByte(' ')
			}
			line.WriteString(word)
		}
		if line.Len() > 0 {
			out = append(out, line.String())
		}
	}
	return out
}
