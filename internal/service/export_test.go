package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
	"github.com/aliskhannn/sermas-study-bot/internal/export"
	"github.com/aliskhannn/sermas-study-bot/internal/repository"
)

func newTestExportService() (*ExportService, *ProgressStore) {
	th := &fakeTheme{}
	store := newTestStore(newFakeStateRepo(), th)
	return NewExportService(testTopicRepo(), store, th, export.DefaultLayoutOptions(), zap.NewNop()), store
}

func TestExportTopic(t *testing.T) {
	svc, _ := newTestExportService()

	doc, err := svc.Topic(1)
	if err != nil {
		t.Fatalf("Topic: %v", err)
	}
	if doc.Name != "Tema_1_OPE_SERMAS.xlsx" {
		t.Errorf("Name = %q", doc.Name)
	}

	f, err := excelize.OpenReader(bytes.NewReader(doc.Data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(export.TopicSheetName(1))
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) == 0 || rows[0][0] != "La Constitución Española de 1978" {
		t.Errorf("first row = %v", rows)
	}
}

func TestExportTopicNotFound(t *testing.T) {
	svc, _ := newTestExportService()
	if _, err := svc.Topic(99); !errors.Is(err, repository.ErrTopicNotFound) {
		t.Errorf("error = %v, want ErrTopicNotFound", err)
	}
}

func TestExportProgressReport(t *testing.T) {
	svc, store := newTestExportService()
	_, _ = store.SetStatus(context.Background(), 3, entities.StatusMastered)

	doc, err := svc.ProgressReport()
	if err != nil {
		t.Fatalf("ProgressReport: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(doc.Data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(export.TopicsSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// Header plus one row per topic.
	if len(rows) != 6 {
		t.Fatalf("rows = %d, want 6", len(rows))
	}
	if rows[3][3] != "Estudiado" {
		t.Errorf("topic 3 status = %q, want Estudiado", rows[3][3])
	}
}
