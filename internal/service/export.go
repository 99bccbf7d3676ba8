package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/policy"
	"github.com/aliskhannn/sermas-study-bot/internal/export"
	"github.com/aliskhannn/sermas-study-bot/internal/theme"
)

// Document is an exported file ready to hand to the user.
type Document struct {
	Name string
	Data []byte
}

// ExportService produces downloadable documents. It only reads state.
type ExportService struct {
	topics TopicRepository
	state  StateReader
	theme  ThemeReader
	layout export.LayoutOptions
	logger *zap.Logger
}

func NewExportService(
	topics TopicRepository,
	state StateReader,
	theme ThemeReader,
	layout export.LayoutOptions,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		topics: topics,
		state:  state,
		theme:  theme,
		layout: layout,
		logger: logger,
	}
}

func (s *ExportService) style() export.Style {
	return export.Style{
		Dark:     s.theme.Current() == theme.Dark,
		TextSize: s.state.Snapshot().TextSize,
	}
}

// Topic exports a topic's content as a paginated workbook.
func (s *ExportService) Topic(id int) (Document, error) {
	t, err := s.topics.GetContent(id)
	if err != nil {
		return Document{}, err
	}

	pages := export.LayoutTopic(t, s.layout)
	data, err := export.WriteTopicWorkbook(t.ID, pages, s.style())
	if err != nil {
		return Document{}, fmt.Errorf("export topic %d: %w", id, err)
	}

	s.logger.Info("topic exported",
		zap.Int("topic_id", id),
		zap.Int("pages", len(pages)),
		zap.Int("bytes", len(data)),
	)

	return Document{
		Name: fmt.Sprintf("Tema_%d_OPE_SERMAS.xlsx", t.ID),
		Data: data,
	}, nil
}

// ProgressReport exports the dashboard and per-topic progress.
func (s *ExportService) ProgressReport() (Document, error) {
	state := s.state.Snapshot()
	topics := s.topics.GetAll()

	rows := make([]export.TopicRow, 0, len(topics))
	for _, t := range topics {
		rows = append(rows, export.TopicRow{Topic: t, Progress: state.Effective(t.ID)})
	}

	data, err := export.WriteProgressReport(policy.Summarize(state, topics), rows, s.style())
	if err != nil {
		return Document{}, fmt.Errorf("export progress report: %w", err)
	}

	return Document{
		Name: "Progreso_OPE_SERMAS.xlsx",
		Data: data,
	}, nil
}
