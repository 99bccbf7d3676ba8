package service

import (
	"context"
	"errors"
	"sync"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
	"github.com/aliskhannn/sermas-study-bot/internal/infra/sqlite/repository"
	topicrepo "github.com/aliskhannn/sermas-study-bot/internal/repository"
	"github.com/aliskhannn/sermas-study-bot/internal/theme"
)

var errDiskFull = errors.New("disk full")

type fakeStateRepo struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
	putErr error
	puts   int
}

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{data: make(map[string][]byte)}
}

func (r *fakeStateRepo) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.getErr != nil {
		return nil, r.getErr
	}
	v, ok := r.data[key]
	if !ok {
		return nil, repository.ErrStateNotFound
	}
	return v, nil
}

func (r *fakeStateRepo) Put(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.putErr != nil {
		return r.putErr
	}
	r.puts++
	r.data[key] = append([]byte(nil), value...)
	return nil
}

type fakeTheme struct {
	applied []bool
}

func (f *fakeTheme) Apply(dark bool) {
	f.applied = append(f.applied, dark)
}

func (f *fakeTheme) Current() theme.Theme {
	if len(f.applied) == 0 {
		return theme.Light
	}
	return theme.FromDarkMode(f.applied[len(f.applied)-1])
}

func testTopics() []entities.Topic {
	return []entities.Topic{
		{
			ID:       1,
			Title:    "La Constitución Española de 1978",
			Category: entities.CategoryLegal,
			Subtopics: []entities.Subtopic{
				{ID: "1.1", Title: "Estructura", Content: "## Estructura\n\nTítulo Preliminar y **diez** títulos."},
				{ID: "1.2", Title: "Derechos fundamentales", Content: "Artículos 14 a 29."},
			},
		},
		{ID: 2, Title: "El Estatuto de Autonomía de la Comunidad de Madrid", Category: entities.CategoryLegal},
		{ID: 3, Title: "Organización del SERMAS", Category: entities.CategorySERMAS},
		{ID: 4, Title: "Sistemas operativos", Category: entities.CategoryIT},
		{ID: 12, Title: "Redes de área local", Category: entities.CategoryIT},
	}
}

func testTopicRepo() *topicrepo.TopicRepository {
	r, err := topicrepo.NewTopicRepositoryFromTopics(testTopics())
	if err != nil {
		panic(err)
	}
	return r
}
