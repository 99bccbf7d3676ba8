package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/aliskhannn/sermas-study-bot/internal/domain/entities"
	"github.com/aliskhannn/sermas-study-bot/internal/domain/policy"
)

const (
	defaultSheet = "Sheet1"
	baseFontSize = 11.0
)

// Style carries the display preferences documents are rendered with.
type Style struct {
	Dark     bool
	TextSize int // percent of the base font size
}

func (s Style) fontSize(factor float64) float64 {
	size := s.TextSize
	if size <= 0 {
		size = entities.DefaultTextSize
	}
	return baseFontSize * factor * float64(size) / 100
}

func (s Style) colors() (font, fill string) {
	if s.Dark {
		return "F1F5F9", "1E293B"
	}
	return "1F2937", ""
}

type styles struct {
	title, heading, body int
}

func newStyles(f *excelize.File, s Style) (styles, error) {
	fontColor, fillColor := s.colors()

	build := func(bold bool, factor float64) (int, error) {
		st := &excelize.Style{
			Font: &excelize.Font{
				Bold:   bold,
				Size:   s.fontSize(factor),
				Color:  fontColor,
				Family: "Helvetica",
			},
			Alignment: &excelize.Alignment{Vertical: "top"},
		}
		if fillColor != "" {
			st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fillColor}}
		}
		return f.NewStyle(st)
	}

	var (
		out styles
		err error
	)
	if out.title, err = build(true, 16.0/12.0); err != nil {
		return styles{}, fmt.Errorf("title style: %w", err)
	}
	if out.heading, err = build(true, 1); err != nil {
		return styles{}, fmt.Errorf("heading style: %w", err)
	}
	if out.body, err = build(false, 1); err != nil {
		return styles{}, fmt.Errorf("body style: %w", err)
	}
	return out, nil
}

// TopicSheetName is the worksheet a topic document is written to.
func TopicSheetName(topicID int) string {
	return fmt.Sprintf("Tema %d", topicID)
}

// WriteTopicWorkbook renders laid-out pages into an xlsx workbook, one row
// per line, with a page break in front of every page but the first.
func WriteTopicWorkbook(topicID int, pages []Page, style Style) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := TopicSheetName(topicID)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", "A", 100); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	st, err := newStyles(f, style)
	if err != nil {
		return nil, err
	}

	row := 1
	for _, page := range pages {
		if page.Number > 1 && len(page.Lines) > 0 {
			if err := f.InsertPageBreak(sheet, cellName(1, row)); err != nil {
				return nil, fmt.Errorf("page break before page %d: %w", page.Number, err)
			}
		}

		for _, line := range page.Lines {
			cell := cellName(1, row)
			if err := f.SetCellValue(sheet, cell, line.Text); err != nil {
				return nil, fmt.Errorf("write %s: %w", cell, err)
			}

			styleID := st.body
			switch line.Kind {
			case KindTitle:
				styleID = st.title
			case KindHeading:
				styleID = st.heading
			case KindBody:
			}
			if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
				return nil, fmt.Errorf("style %s: %w", cell, err)
			}
			row++
		}
	}

	return writeBytes(f)
}

// TopicRow is one line of the per-topic sheet of the progress report.
type TopicRow struct {
	Topic    entities.Topic
	Progress entities.ProgressRecord
}

// Report sheet names.
const (
	SummarySheet = "Resumen"
	TopicsSheet  = "Temas"
)

// WriteProgressReport renders the dashboard and the per-topic progress
// into an xlsx workbook.
func WriteProgressReport(summary policy.Summary, rows []TopicRow, style Style) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(defaultSheet, SummarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(TopicsSheet); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}

	st, err := newStyles(f, style)
	if err != nil {
		return nil, err
	}

	summaryRows := [][]any{
		{"Panel de Progreso"},
		{"Temas Totales", summary.Total},
		{"Estudiados", summary.Counts.Mastered},
		{"En Revisión", summary.Counts.InReview},
		{"Pendientes", summary.Counts.Pending},
		{"Completado (%)", summary.Percentage},
		{},
		{"Categoría", "Total", "Completados"},
	}
	for _, c := range summary.Categories {
		summaryRows = append(summaryRows, []any{string(c.Category), c.Total, c.Completed})
	}
	if err := writeRows(f, SummarySheet, summaryRows, st.body); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "A1", st.title); err != nil {
		return nil, fmt.Errorf("style title: %w", err)
	}
	if err := f.SetCellStyle(SummarySheet, "A8", "C8", st.heading); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	topicRows := [][]any{{"Tema", "Título", "Categoría", "Estado", "Repasos", "Último estudio"}}
	for _, r := range rows {
		last := ""
		if r.Progress.LastStudied != nil {
			last = r.Progress.LastStudied.Format("2006-01-02 15:04")
		}
		topicRows = append(topicRows, []any{
			r.Topic.ID,
			r.Topic.Title,
			string(r.Topic.Category),
			StatusLabel(r.Progress.Status),
			r.Progress.TimesReviewed,
			last,
		})
	}
	if err := writeRows(f, TopicsSheet, topicRows, st.body); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(TopicsSheet, "A1", "F1", st.heading); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(TopicsSheet, "B", "B", 60); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	return writeBytes(f)
}

// StatusLabel is the Spanish label of a status as shown to the user.
func StatusLabel(s entities.Status) string {
	switch s {
	case entities.StatusMastered:
		return "Estudiado"
	case entities.StatusInReview:
		return "En Repaso"
	case entities.StatusPending:
		return "Pendiente"
	default:
		return s.String()
	}
}

func writeRows(f *excelize.File, sheet string, rows [][]any, styleID int) error {
	for i, values := range rows {
		if len(values) == 0 {
			continue
		}
		start := cellName(1, i+1)
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, start, err)
		}
		end := cellName(len(values), i+1)
		if err := f.SetCellStyle(sheet, start, end, styleID); err != nil {
			return fmt.Errorf("style %s!%s: %w", sheet, start, err)
		}
	}
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func writeBytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
