package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/finchat/internal/finance"
	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/tui/components"
)

func newTestApp() App {
	a := NewApp(finance.NewService(finance.Options{Seed: 7}), Options{})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return m.(App)
}

func send(a App, msg tea.Msg) App {
	m, _ := a.Update(msg)
	return m.(App)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestParsePage(t *testing.T) {
	tests := map[string]Page{
		"home":      PageHome,
		"NLU":       PageNLU,
		" qa ":      PageQA,
		"budget":    PageBudget,
		"insights":  PageInsights,
		"dashboard": PageHome,
		"":          PageHome,
	}
	for in, want := range tests {
		if got := ParsePage(in); got != want {
			t.Errorf("ParsePage(%q) = %v, want %v", in, got, want)
		}
	}
	if Page(42).String() != "home" {
		t.Errorf("unknown page String = %q, want home", Page(42).String())
	}
}

func TestPageKeysMatchEnum(t *testing.T) {
	for i, tab := range components.Pages {
		if got := ParsePage(Page(i).String()); got != Page(i) {
			t.Errorf("%s: page %d does not round-trip", tab.Name, i)
		}
	}
	if len(components.Pages) != int(pageCount) {
		t.Fatalf("page bar has %d entries, want %d", len(components.Pages), pageCount)
	}
}

func TestKeyNavigation(t *testing.T) {
	a := newTestApp()
	if a.Page() != PageHome {
		t.Fatalf("start page = %v, want home", a.Page())
	}

	a = send(a, key("b"))
	if a.Page() != PageBudget {
		t.Fatalf("after b: page = %v, want budget", a.Page())
	}
	if !a.budget.editing() {
		t.Fatal("first visit should open the budget form")
	}

	// esc closes the form, a second esc goes home
	a = send(a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.budget.editing() || a.Page() != PageBudget {
		t.Fatalf("esc while editing: editing=%v page=%v", a.budget.editing(), a.Page())
	}
	a = send(a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.Page() != PageHome {
		t.Fatalf("esc: page = %v, want home", a.Page())
	}

	a = send(a, tea.KeyMsg{Type: tea.KeyLeft})
	if a.Page() != PageInsights {
		t.Errorf("left from home = %v, want insights", a.Page())
	}
	a = send(a, tea.KeyMsg{Type: tea.KeyEsc}) // close insights form
	a = send(a, tea.KeyMsg{Type: tea.KeyRight})
	if a.Page() != PageHome {
		t.Errorf("right from insights = %v, want home", a.Page())
	}
}

func TestRevisitReopensEmptyPage(t *testing.T) {
	a := newTestApp()
	a = send(a, key("n"))
	a = send(a, tea.KeyMsg{Type: tea.KeyEsc})
	a = send(a, key("h"))
	a = send(a, key("n"))
	if !a.nlu.editing() {
		t.Error("a page without a result should reopen its form")
	}

	a = send(a, tea.KeyMsg{Type: tea.KeyEsc})
	a = send(a, analyzeCmd(a.advisor, "hello")())
	a = send(a, key("h"))
	a = send(a, key("n"))
	if a.nlu.editing() {
		t.Error("a page with a result should show it, not the form")
	}
}

func TestLoadingGatesSubmission(t *testing.T) {
	a := newTestApp()
	a.page = PageBudget
	a.budget.loading = true

	a2, cmd := a.submit()
	if cmd != nil {
		t.Error("submit while loading should not start another request")
	}
	if _, cmd := a2.startEdit(); cmd != nil || a2.budget.editing() {
		t.Error("edit while loading should be ignored")
	}
}

func TestSubmitStartsLoading(t *testing.T) {
	a := newTestApp()
	a.page = PageQA
	a, cmd := a.submit()
	if cmd == nil {
		t.Fatal("submit should return a command")
	}
	if !a.qa.loading {
		t.Error("submit should set loading")
	}
	if !a.anyLoading() {
		t.Error("anyLoading should report the pending request")
	}
}

func TestBudgetResultRenders(t *testing.T) {
	a := newTestApp()
	a = send(a, key("b"))
	a = send(a, tea.KeyMsg{Type: tea.KeyEsc})

	data, err := a.budget.data()
	if err != nil {
		t.Fatalf("default budget input: %v", err)
	}
	a.budget.loading = true
	a = send(a, budgetCmd(a.advisor, data)())

	if a.budget.loading {
		t.Error("result should clear loading")
	}
	if !a.budget.hasResult {
		t.Fatal("result not stored")
	}
	if got := a.budget.result.Figures.TotalExpenses; got != 2400 {
		t.Errorf("TotalExpenses = %v, want 2400", got)
	}

	view := a.View()
	for _, want := range []string{"Budget Analysis Results", "Professional Budget Analysis", "Monthly Income"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestInsightsResultRenders(t *testing.T) {
	a := newTestApp()
	a.page = PageInsights
	data, err := a.insights.data()
	if err != nil {
		t.Fatalf("default insights input: %v", err)
	}
	if len(data.Goals) != 2 {
		t.Fatalf("got %d default goals, want 2", len(data.Goals))
	}
	a = send(a, insightsCmd(a.advisor, data)())

	view := a.View()
	for _, want := range []string{"Comprehensive Spending Analysis", "Emergency Fund", "Spending vs Income"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestNLUResultRenders(t *testing.T) {
	a := newTestApp()
	a.page = PageNLU
	a = send(a, analyzeCmd(a.advisor, "I save $100 every month")())

	if len(a.nlu.result.Keywords) != 3 {
		t.Fatalf("got %d keywords, want 3", len(a.nlu.result.Keywords))
	}
	view := a.View()
	for _, want := range []string{"Sentiment Analysis", "Key Topics", "MONEY"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

type failingAdvisor struct{ finance.Advisor }

func (failingAdvisor) GenerateAdvice(context.Context, string, model.Persona) (string, error) {
	return "", errors.New("upstream unavailable")
}

func TestFailureShowsNotice(t *testing.T) {
	a := NewApp(failingAdvisor{}, Options{Start: PageQA})
	a = send(a, tea.WindowSizeMsg{Width: 120, Height: 40})
	a = send(a, tea.KeyMsg{Type: tea.KeyEsc})
	a.qa.loading = true

	a = send(a, adviceCmd(a.advisor, "q", model.PersonaStudent)())
	if a.qa.loading {
		t.Error("failure should clear loading")
	}
	if a.qa.hasResult {
		t.Error("failure should not store a result")
	}
	if a.qa.notice != "upstream unavailable" {
		t.Errorf("notice = %q", a.qa.notice)
	}
	if !strings.Contains(a.View(), "upstream unavailable") {
		t.Error("notice not shown in the status bar")
	}

	// opening the form clears the notice
	a = send(a, key("e"))
	if a.qa.notice != "" {
		t.Errorf("notice after edit = %q, want empty", a.qa.notice)
	}
}

func TestStartPageOpensForm(t *testing.T) {
	a := NewApp(finance.NewService(finance.Options{}), Options{Start: PageInsights})
	if a.Page() != PageInsights || !a.insights.editing() {
		t.Errorf("page=%v editing=%v, want insights with form open", a.Page(), a.insights.editing())
	}
}

func TestPageAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Pages {
		a := App{page: Page(active)}
		pos := components.BrandWidth()
		for i, tab := range components.Pages {
			w := components.TabVisualWidth(tab, i == active)
			x := pos + w/2
			if got := a.pageAtX(x); got != Page(i) {
				t.Fatalf("active=%d x=%d -> page=%d, want %d", active, x, got, i)
			}
			pos += w + 1
		}
		if got := a.pageAtX(0); got != -1 {
			t.Errorf("x=0 is the brand, got page %d", got)
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := send(NewApp(finance.NewService(finance.Options{}), Options{}), tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(a.View(), "Terminal too narrow") {
		t.Error("narrow terminal should show a warning")
	}
}

func TestHelpToggle(t *testing.T) {
	a := newTestApp()
	a = send(a, key("?"))
	if !a.showHelp || !strings.Contains(a.View(), "Keyboard Shortcuts") {
		t.Fatal("? should show help")
	}
	a = send(a, key("b"))
	if a.showHelp || a.Page() != PageHome {
		t.Error("any key should only close help")
	}
}
