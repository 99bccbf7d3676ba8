package entities

// Face is the visible side of a flashcard.
type Face int

const (
	FaceQuestion Face = iota
	FaceAnswer
)

func (f Face) String() string {
	if f == FaceAnswer {
		return "answer"
	}
	return "question"
}

// Flashcard is a question/answer pair derived from the catalog for one review session.
type Flashcard struct {
	ID       string // unique within a session: subtopic id or "t<topic id>"
	Question string // front side
	Answer   string // back side
	TopicID  int    // topic the card was derived from
}
