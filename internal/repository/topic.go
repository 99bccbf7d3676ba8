package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
)

var (
	ErrTopicNotFound = errors.New("topic not found")
	ErrEmptyCatalog  = errors.New("catalog has no topics")
)

// TopicRepository provides read-only access to the syllabus.
// This implementation keeps the whole catalog in memory.
type TopicRepository struct {
	topics []entities.Topic
	byID   map[int]int
}

// NewTopicRepository loads the syllabus from a JSON file.
func NewTopicRepository(path string) (*TopicRepository, error) {
	topics, err := loadTopics(path)
	if err != nil {
		return nil, err
	}

	return NewTopicRepositoryFromTopics(topics)
}

// NewTopicRepositoryFromTopics builds a repository over an in-memory catalog.
func NewTopicRepositoryFromTopics(topics []entities.Topic) (*TopicRepository, error) {
	if len(topics) == 0 {
		return nil, ErrEmptyCatalog
	}

	byID := make(map[int]int, len(topics))
	for i, t := range topics {
		if _, dup := byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate topic id %d", t.ID)
		}
		byID[t.ID] = i
	}

	return &TopicRepository{
		topics: topics,
		byID:   byID,
	}, nil
}

// GetAll returns the catalog in syllabus order. The slice must not be modified.
func (r *TopicRepository) GetAll() []entities.Topic {
	return r.topics
}

// Total returns the number of topics in the catalog.
func (r *TopicRepository) Total() int {
	return len(r.topics)
}

// GetByID returns the topic with the given id as stored in the catalog.
func (r *TopicRepository) GetByID(id int) (entities.Topic, error) {
	i, ok := r.byID[id]
	if !ok {
		return entities.Topic{}, fmt.Errorf("get topic %d: %w", id, ErrTopicNotFound)
	}
	return r.topics[i], nil
}

// GetContent returns the topic ready for reading. Topics without authored
// content get placeholder subtopics pointing to the official syllabus.
func (r *TopicRepository) GetContent(id int) (entities.Topic, error) {
	t, err := r.GetByID(id)
	if err != nil {
		return entities.Topic{}, err
	}

	if t.Authored() {
		return t, nil
	}

	t.Subtopics = []entities.Subtopic{
		{
			ID:      fmt.Sprintf("%d.1", t.ID),
			Title:   "Introducción y Conceptos Básicos",
			Content: "Contenido pendiente de digitalización. Consulte el temario oficial en PDF.",
		},
		{
			ID:      fmt.Sprintf("%d.2", t.ID),
			Title:   "Marco Normativo",
			Content: "Referencias legales y normativa aplicable a este tema.",
		},
		{
			ID:      fmt.Sprintf("%d.3", t.ID),
			Title:   "Aplicación Práctica",
			Content: "Ejemplos de aplicación en el entorno del SERMAS.",
		},
	}
	return t, nil
}

// Categories returns the categories present in the catalog, in order of first appearance.
func (r *TopicRepository) Categories() []entities.Category {
	seen := make(map[entities.Category]bool)
	var out []entities.Category
	for _, t := range r.topics {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}

func loadTopics(path string) ([]entities.Topic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Topics []entities.Topic `json:"topics"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal topics JSON: %w", err)
	}

	return wrapper.Topics, nil
}
