// Package tui provides the interactive Bubble Tea shell for finchat.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/finchat/internal/config"
	"github.com/theirongolddev/finchat/internal/finance"
	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/tui/components"
	"github.com/theirongolddev/finchat/internal/tui/theme"
)

// Page identifies one screen of the shell.
type Page int

const (
	PageHome Page = iota
	PageNLU
	PageQA
	PageBudget
	PageInsights
	pageCount
)

var pageNames = [...]string{"home", "nlu", "qa", "budget", "insights"}

func (p Page) String() string {
	if p < 0 || p >= pageCount {
		return pageNames[PageHome]
	}
	return pageNames[p]
}

// ParsePage maps a page name to a Page. Unknown names select PageHome.
func ParsePage(name string) Page {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range pageNames {
		if n == name {
			return Page(i)
		}
	}
	return PageHome
}

// Options configures a new App.
type Options struct {
	// Start is the page shown first.
	Start    Page
	Persona  model.Persona
	Currency string
	// Source names the advisor in the status bar: "local" or an API address.
	Source string
	// Setup runs the first-run wizard before the pages.
	Setup bool
}

// App is the root Bubble Tea model.
type App struct {
	advisor finance.Advisor
	opts    Options

	// UI state
	width    int
	height   int
	page     Page
	showHelp bool

	// Per-page state. Pointers so huh field bindings survive model copies.
	nlu      *nluPage
	qa       *qaPage
	budget   *budgetPage
	insights *insightsPage

	spinner spinner.Model

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
)

// NewApp creates the TUI model. advisor serves every page.
func NewApp(advisor finance.Advisor, opts Options) App {
	if opts.Source == "" {
		opts.Source = "local"
	}
	if opts.Currency == "" {
		opts.Currency = "$"
	}
	if opts.Persona == "" {
		opts.Persona = model.PersonaProfessional
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		advisor:  advisor,
		opts:     opts,
		nlu:      newNLUPage(),
		qa:       newQAPage(opts.Persona),
		budget:   newBudgetPage(opts.Persona, opts.Currency),
		insights: newInsightsPage(opts.Persona),
		spinner:  sp,
	}
	if opts.Setup {
		a.setupVals = NewSetupValues(loadConfigOrDefault())
		a.setupForm = NewSetupForm(a.setupVals)
	}
	a, _ = a.goTo(opts.Start)
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	if st := a.state(a.page); st != nil && st.editing() {
		cmds = append(cmds, st.input.Init())
	}
	return tea.Batch(cmds...)
}

// Page returns the current page.
func (a App) Page() Page { return a.page }

// goTo switches page and opens the input form when the page has nothing
// to show yet.
func (a App) goTo(p Page) (App, tea.Cmd) {
	if p < 0 || p >= pageCount {
		p = PageHome
	}
	a.page = p
	st := a.state(p)
	if st == nil || st.editing() || st.loading || st.hasResult {
		return a, nil
	}
	return a.startEdit()
}

// state returns the shared state of a page, nil for home.
func (a App) state(p Page) *pageState {
	switch p {
	case PageNLU:
		return &a.nlu.pageState
	case PageQA:
		return &a.qa.pageState
	case PageBudget:
		return &a.budget.pageState
	case PageInsights:
		return &a.insights.pageState
	}
	return nil
}

func (a App) startEdit() (App, tea.Cmd) {
	st := a.state(a.page)
	if st == nil || st.loading {
		return a, nil
	}
	var form *huh.Form
	switch a.page {
	case PageNLU:
		form = a.nlu.form()
	case PageQA:
		form = a.qa.form()
	case PageBudget:
		form = a.budget.form()
	case PageInsights:
		form = a.insights.form()
	}
	st.input = form.WithShowHelp(true).WithWidth(a.formWidth())
	st.notice = ""
	return a, st.input.Init()
}

// submit starts the computation for the current page.
func (a App) submit() (App, tea.Cmd) {
	st := a.state(a.page)
	if st == nil || st.loading {
		return a, nil
	}
	var cmd tea.Cmd
	switch a.page {
	case PageNLU:
		cmd = analyzeCmd(a.advisor, a.nlu.text)
	case PageQA:
		cmd = adviceCmd(a.advisor, a.qa.question, model.Persona(a.qa.persona))
	case PageBudget:
		data, err := a.budget.data()
		if err != nil {
			st.fail(a.page, err)
			return a, nil
		}
		cmd = budgetCmd(a.advisor, data)
	case PageInsights:
		data, err := a.insights.data()
		if err != nil {
			st.fail(a.page, err)
			return a, nil
		}
		cmd = insightsCmd(a.advisor, data)
	}
	st.loading = true
	st.notice = ""
	return a, tea.Batch(cmd, a.spinner.Tick)
}

func (a App) anyLoading() bool {
	for p := PageNLU; p < pageCount; p++ {
		if a.state(p).loading {
			return true
		}
	}
	return false
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if st := a.state(a.page); st != nil && st.editing() {
			st.input = st.input.WithWidth(a.formWidth())
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.setupForm != nil || a.editingCurrent() {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if p := a.pageAtX(msg.X); p >= 0 {
				return a.goTo(p)
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case NLUResultMsg:
		st := &a.nlu.pageState
		st.loading = false
		if msg.Err != nil {
			st.fail(PageNLU, msg.Err)
			return a, nil
		}
		a.nlu.result = msg.Analysis
		st.hasResult = true
		return a, nil

	case AdviceResultMsg:
		st := &a.qa.pageState
		st.loading = false
		if msg.Err != nil {
			st.fail(PageQA, msg.Err)
			return a, nil
		}
		a.qa.answer = msg.Text
		a.qa.asked = msg.Question
		st.hasResult = true
		return a, nil

	case BudgetResultMsg:
		st := &a.budget.pageState
		st.loading = false
		if msg.Err != nil {
			st.fail(PageBudget, msg.Err)
			return a, nil
		}
		a.budget.result = msg.Summary
		st.hasResult = true
		return a, nil

	case InsightsResultMsg:
		st := &a.insights.pageState
		st.loading = false
		if msg.Err != nil {
			st.fail(PageInsights, msg.Err)
			return a, nil
		}
		a.insights.result = msg.Report
		st.hasResult = true
		return a, nil

	case spinner.TickMsg:
		if a.anyLoading() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages (cursor blinks, etc.) to the active form.
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.editingCurrent() {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) editingCurrent() bool {
	st := a.state(a.page)
	return st != nil && st.editing()
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global: quit
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// First-run setup wizard intercepts all keys
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Page forms get every key except esc, which closes the form.
	if a.editingCurrent() {
		if key == "esc" {
			a.state(a.page).input = nil
			return a, nil
		}
		return a.updateForm(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "e", "enter":
		return a.startEdit()
	case "esc":
		return a.goTo(PageHome)
	case "left":
		return a.goTo((a.page - 1 + pageCount) % pageCount)
	case "right", "tab":
		return a.goTo((a.page + 1) % pageCount)
	}

	if len(msg.Runes) == 1 {
		for i, tab := range components.Pages {
			if tab.Key == msg.Runes[0] {
				return a.goTo(Page(i))
			}
		}
	}
	return a, nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	st := a.state(a.page)
	form, cmd := st.input.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		st.input = f
	}

	switch st.input.State {
	case huh.StateCompleted:
		st.input = nil
		return a.submit()
	case huh.StateAborted:
		st.input = nil
		return a, nil
	}
	return a, cmd
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		cfg := loadConfigOrDefault()
		a.setupVals.Apply(&cfg)
		if err := config.Save(cfg); err != nil {
			logFailure("setup", err)
		}
		theme.SetActive(cfg.Appearance.Theme)
		a.opts.Persona = model.ParsePersona(cfg.General.Persona)
		a.qa.persona = string(a.opts.Persona)
		a.budget.persona = string(a.opts.Persona)
		a.insights.persona = string(a.opts.Persona)
		a.budget.currency = cfg.General.Currency
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

// loadConfigOrDefault loads config, returning defaults on error.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) formWidth() int {
	return max(a.contentWidth()-6, 20)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  finchat needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	section := func(b *strings.Builder, name string, binds []struct{ key, desc string }) {
		b.WriteString(sectionStyle.Render(name))
		b.WriteString("\n")
		for _, bind := range binds {
			fmt.Fprintf(b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	section(&b, "Navigation", []struct{ key, desc string }{
		{"h n a b i", "Jump to page"},
		{"← →", "Previous / Next page"},
		{"Esc", "Back to home"},
	})
	b.WriteString("\n")
	section(&b, "Actions", []struct{ key, desc string }{
		{"e", "Edit the page input"},
		{"Enter", "Next field / Submit"},
		{"Esc", "Close the form"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	})
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderPageBar(int(a.page), w)

	status := components.Status{
		Persona: string(a.opts.Persona),
		Source:  a.opts.Source,
		Loading: a.anyLoading(),
	}
	if st := a.state(a.page); st != nil {
		status.Notice = st.notice
	}
	statusBar := components.RenderStatusBar(w, status)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.page {
	case PageNLU:
		content = a.renderNLUPage(cw)
	case PageQA:
		content = a.renderQAPage(cw)
	case PageBudget:
		content = a.renderBudgetPage(cw)
	case PageInsights:
		content = a.renderInsightsPage(cw)
	default:
		content = a.renderHomePage(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// pageAtX returns the page whose tab covers column x, or -1.
func (a App) pageAtX(x int) Page {
	pos := components.BrandWidth()
	for i, tab := range components.Pages {
		tabW := components.TabVisualWidth(tab, Page(i) == a.page)
		if x >= pos && x < pos+tabW {
			return Page(i)
		}
		pos += tabW + 1 // separator
	}
	return -1
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
