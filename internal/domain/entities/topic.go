// Package entities contains domain entities used across the application.
package entities

// Category groups syllabus topics.
type Category string

const (
	CategoryLegal  Category = "Marco Legal"
	CategorySERMAS Category = "Organización SERMAS"
	CategoryIT     Category = "Informática y Ofimática"
	CategoryOther  Category = "Otros"
)

// Short returns the first word of the category label, used in narrow views.
func (c Category) Short() string {
	for i, r := range c {
		if r == ' ' {
			return string(c[:i])
		}
	}
	return string(c)
}

// Topic is one unit of the official syllabus.
type Topic struct {
	ID        int        `json:"id"`        // stable topic number (1..31)
	Title     string     `json:"title"`     // topic title
	Category  Category   `json:"category"`  // syllabus block the topic belongs to
	Subtopics []Subtopic `json:"subtopics"` // ordered content blocks, may be empty
}

// Subtopic is a titled markdown block inside a topic.
type Subtopic struct {
	ID      string `json:"id"`      // e.g. "1.2"
	Title   string `json:"title"`   // block title
	Content string `json:"content"` // markdown body
}

// Authored reports whether the topic carries real content.
func (t Topic) Authored() bool {
	return len(t.Subtopics) > 0
}
