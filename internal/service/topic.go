package service

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
	"github.com/aliskhannn/sermas-study-bot/internal/domain/policy"
)

type TopicRepository interface {
	GetAll() []entities.Topic
	GetByID(id int) (entities.Topic, error)
	GetContent(id int) (entities.Topic, error)
	Categories() []entities.Category
}

// ProgressTracker is the part of the progress store topic views need.
type ProgressTracker interface {
	Get(topicID int) entities.ProgressRecord
	SetStatus(ctx context.Context, topicID int, status entities.Status) (entities.ProgressRecord, error)
	Snapshot() entities.AppState
}

// TopicWithProgress pairs a catalog topic with its effective progress.
type TopicWithProgress struct {
	Topic    entities.Topic
	Progress entities.ProgressRecord
}

type TopicService struct {
	repository TopicRepository
	progress   ProgressTracker
}

func NewTopicService(repository TopicRepository, progress ProgressTracker) *TopicService {
	return &TopicService{
		repository: repository,
		progress:   progress,
	}
}

func (s *TopicService) Categories() []entities.Category {
	return s.repository.Categories()
}

// GetContent returns the readable topic together with its progress.
func (s *TopicService) GetContent(id int) (TopicWithProgress, error) {
	t, err := s.repository.GetContent(id)
	if err != nil {
		return TopicWithProgress{}, err
	}
	return TopicWithProgress{Topic: t, Progress: s.progress.Get(id)}, nil
}

// Search filters the catalog by a free-text query and an optional category.
// The query matches a case-folded title substring or a substring of the
// topic number. An empty category matches every topic.
func (s *TopicService) Search(query string, category entities.Category) []TopicWithProgress {
	fold := cases.Fold()
	query = fold.String(strings.TrimSpace(query))
	snapshot := s.progress.Snapshot()

	var out []TopicWithProgress
	for _, t := range s.repository.GetAll() {
		if category != "" && t.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(fold.String(t.Title), query) &&
			!strings.Contains(strconv.Itoa(t.ID), query) {
			continue
		}
		out = append(out, TopicWithProgress{Topic: t, Progress: snapshot.Effective(t.ID)})
	}

	return out
}

// ToggleStudied flips a topic between Mastered and Pending.
func (s *TopicService) ToggleStudied(ctx context.Context, id int) (entities.ProgressRecord, error) {
	if _, err := s.repository.GetByID(id); err != nil {
		return entities.ProgressRecord{}, err
	}

	next := policy.ToggleStudied(s.progress.Get(id).Status)
	return s.progress.SetStatus(ctx, id, next)
}

// Summary returns the dashboard statistics.
func (s *TopicService) Summary() policy.Summary {
	return policy.Summarize(s.progress.Snapshot(), s.repository.GetAll())
}
