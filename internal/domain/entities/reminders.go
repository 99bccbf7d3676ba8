package entities

// ReminderPayload is used to build a daily study reminder message
// that includes the next topic to study and related statistics.
type ReminderPayload struct {
	NextTopic *Topic // first pending topic in catalog order, nil when none is left
	Stats     ReminderStats
}

// ReminderStats contains progress statistics
// that help in forming the reminder message.
type ReminderStats struct {
	Total      int     // number of topics in the syllabus
	Mastered   int     // number of mastered topics
	InReview   int     // number of topics in review
	Pending    int     // number of topics not started
	Completion float64 // mastered / total
}
