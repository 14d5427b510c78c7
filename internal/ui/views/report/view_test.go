package report_test

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"bikeshare/internal/modules/tripstats/dto"
	"bikeshare/internal/ui/views/report"
)

func analysis(rows int) dto.AnalysisOutput {
	out := dto.AnalysisOutput{City: "chicago", Month: "all", Day: "all", Columns: []string{"Start Station"}}
	for i := 0; i < rows; i++ {
		out.Rows = append(out.Rows, []string{"Station " + string(rune('A'+i))})
	}
	out.TotalRows, out.MatchedRows = rows, rows
	return out
}

func TestReportPagesRawRows(t *testing.T) {
	t.Parallel()
	m := report.New(5)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.SetResult(analysis(7), nil)

	if !m.NextRaw() || m.Shown() != 5 {
		t.Fatalf("first page should show 5 rows, got %d", m.Shown())
	}
	if !m.NextRaw() || m.Shown() != 7 {
		t.Fatalf("second page should show 7 rows, got %d", m.Shown())
	}
	if m.NextRaw() {
		t.Fatalf("no page left after all rows are shown")
	}
	m.ResetRaw()
	if m.Shown() != 0 {
		t.Fatalf("reset should hide raw rows")
	}
}

func TestReportKeepsPreviousResultOnError(t *testing.T) {
	t.Parallel()
	m := report.New(5)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.SetResult(analysis(2), nil)
	m.SetResult(dto.AnalysisOutput{}, errors.New("month \"july\" rejected"))

	out, ok := m.Result()
	if !ok || out.City != "chicago" {
		t.Fatalf("previous result should survive an error")
	}
	if !strings.Contains(m.View(), "july") {
		t.Fatalf("error should be visible")
	}
}
