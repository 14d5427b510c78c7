package app

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"bikeshare/internal/modules/tripstats/dto"
	"bikeshare/internal/ui/components"
	"bikeshare/internal/ui/views/picker"
)

type fakePort struct {
	calls []dto.AnalyzeInput
}

func (p *fakePort) Selectors(context.Context) (dto.SelectorsOutput, error) {
	return dto.SelectorsOutput{
		Cities: []dto.CityOutput{{Name: "chicago"}, {Name: "new york city"}, {Name: "washington"}},
		Months: []string{"all", "january", "february"},
		Days:   []string{"all", "monday"},
	}, nil
}

func (p *fakePort) Analyze(_ context.Context, city, month, day string) (dto.AnalysisOutput, error) {
	p.calls = append(p.calls, dto.AnalyzeInput{City: city, Month: month, Day: day})
	if month == "july" {
		return dto.AnalysisOutput{}, errors.New("value outside allowed domain: month \"july\"")
	}
	out := dto.AnalysisOutput{City: city, Month: month, Day: day, Columns: []string{"Start Station"}}
	for i := 0; i < 7; i++ {
		out.Rows = append(out.Rows, []string{"S"})
	}
	out.MatchedRows, out.TotalRows = 7, 10
	return out, nil
}

// drive feeds msg to the model and runs the resulting command chain until it
// yields a message the test does not follow.
func drive(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	for msg != nil {
		next, cmd := m.Update(msg)
		m = next.(Model)
		msg = nil
		if cmd == nil {
			break
		}
		switch out := cmd().(type) {
		case selectorsLoadedMsg, analysisDoneMsg, picker.PickedMsg, components.PaletteSubmitMsg:
			msg = out
		case tea.BatchMsg:
			for _, c := range out {
				if c == nil {
					continue
				}
				if done, ok := c().(analysisDoneMsg); ok {
					msg = done
				}
			}
		}
	}
	return m
}

func started(t *testing.T, port *fakePort) Model {
	t.Helper()
	m := NewModel(port, 5)
	m = drive(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return drive(t, m, m.Init()())
}

func TestWizardRunsAnalysis(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := started(t, port)
	if m.stage != stageCity {
		t.Fatalf("expected city stage, got %d", m.stage)
	}

	m = drive(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.city != "new york city" || m.stage != stageMonth {
		t.Fatalf("city not picked: %q stage=%d", m.city, m.stage)
	}
	m = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.stage != stageReport || m.running {
		t.Fatalf("expected finished report, stage=%d running=%v", m.stage, m.running)
	}
	if len(port.calls) != 1 || port.calls[0] != (dto.AnalyzeInput{City: "new york city", Month: "all", Day: "all"}) {
		t.Fatalf("unexpected analyze calls: %+v", port.calls)
	}

	m = drive(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = drive(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if m.report.Shown() != 7 {
		t.Fatalf("expected all 7 raw rows shown, got %d", m.report.Shown())
	}

	m = drive(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if m.stage != stageCity || m.city != "" {
		t.Fatalf("restart should return to the city step")
	}
}

func TestPaletteChangesSelection(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := started(t, port)

	m = drive(t, m, components.PaletteSubmitMsg{Input: "city washington"})
	if m.stage != stageMonth {
		t.Fatalf("missing month should open the month step, got %d", m.stage)
	}
	m = drive(t, m, components.PaletteSubmitMsg{Input: "month February"})
	m = drive(t, m, components.PaletteSubmitMsg{Input: "day monday"})
	if len(port.calls) != 1 || port.calls[0].Month != "february" {
		t.Fatalf("unexpected calls: %+v", port.calls)
	}

	m = drive(t, m, components.PaletteSubmitMsg{Input: "month july"})
	if len(port.calls) != 2 || m.status != "analysis failed" {
		t.Fatalf("invalid month should be reported: %q", m.status)
	}
	if out, ok := m.report.Result(); !ok || out.Month != "february" {
		t.Fatalf("previous report should stay visible")
	}

	m = drive(t, m, components.PaletteSubmitMsg{Input: "raw"})
	if m.report.Shown() != 5 {
		t.Fatalf("raw should reveal one page, got %d", m.report.Shown())
	}
	m = drive(t, m, components.PaletteSubmitMsg{Input: "raw:reset"})
	if m.report.Shown() != 0 {
		t.Fatalf("raw:reset should hide rows")
	}
	m = drive(t, m, components.PaletteSubmitMsg{Input: "bogus"})
	if m.status != "unknown command: bogus" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

// pendingAnalysis runs the command returned when an analysis starts and
// returns its result without feeding it back to the model.
func pendingAnalysis(t *testing.T, cmd tea.Cmd) analysisDoneMsg {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected an analysis command")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected a batch command")
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if done, ok := c().(analysisDoneMsg); ok {
			return done
		}
	}
	t.Fatalf("no analysis in batch")
	return analysisDoneMsg{}
}

func TestRestartDropsResultOfRunningAnalysis(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := started(t, port)
	m = drive(t, m, components.PaletteSubmitMsg{Input: "city washington"})
	m = drive(t, m, components.PaletteSubmitMsg{Input: "month january"})

	next, cmd := m.Update(components.PaletteSubmitMsg{Input: "day monday"})
	m = next.(Model)
	if !m.running || m.stage != stageReport {
		t.Fatalf("analysis should be running, stage=%d running=%v", m.stage, m.running)
	}
	stale := pendingAnalysis(t, cmd)

	m = drive(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if m.running || m.stage != stageCity {
		t.Fatalf("restart should stop the analysis, stage=%d running=%v", m.stage, m.running)
	}

	next, _ = m.Update(stale)
	m = next.(Model)
	if m.stage != stageCity || m.status != "restarted" {
		t.Fatalf("late result must not change the session, stage=%d status=%q", m.stage, m.status)
	}
	if _, ok := m.report.Result(); ok {
		t.Fatalf("late result must not reach the report")
	}
}

func TestNewerAnalysisWinsOverEarlierResult(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := started(t, port)
	m = drive(t, m, components.PaletteSubmitMsg{Input: "city chicago"})
	m = drive(t, m, components.PaletteSubmitMsg{Input: "month january"})

	next, cmd := m.Update(components.PaletteSubmitMsg{Input: "day all"})
	m = next.(Model)
	first := pendingAnalysis(t, cmd)

	next, cmd = m.Update(components.PaletteSubmitMsg{Input: "month february"})
	m = next.(Model)
	second := pendingAnalysis(t, cmd)

	next, _ = m.Update(first)
	m = next.(Model)
	if !m.running {
		t.Fatalf("earlier result must not end the newer analysis")
	}
	next, _ = m.Update(second)
	m = next.(Model)
	if m.running || m.status != "7 of 10 trips" {
		t.Fatalf("newer result should be applied, running=%v status=%q", m.running, m.status)
	}
	if out, ok := m.report.Result(); !ok || out.Month != "february" {
		t.Fatalf("report should show the newer analysis: %+v", out)
	}
}
