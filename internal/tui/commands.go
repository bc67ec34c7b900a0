package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"

	"github.com/theirongolddev/finchat/internal/cli"
	"github.com/theirongolddev/finchat/internal/finance"
	"github.com/theirongolddev/finchat/internal/model"
)

const (
	requestTimeout = 30 * time.Second
	noticeLen      = 70
)

// NLUResultMsg is sent when a text analysis completes.
type NLUResultMsg struct {
	Analysis model.NLUAnalysis
	Err      error
}

// AdviceResultMsg is sent when a Q&A answer arrives.
type AdviceResultMsg struct {
	Question string
	Text     string
	Err      error
}

// BudgetResultMsg is sent when a budget summary completes.
type BudgetResultMsg struct {
	Summary finance.BudgetSummary
	Err     error
}

// InsightsResultMsg is sent when a spending insights report completes.
type InsightsResultMsg struct {
	Report finance.InsightReport
	Err    error
}

// pageState is what every input page tracks besides its own values.
type pageState struct {
	input     *huh.Form
	loading   bool
	hasResult bool
	notice    string
}

func (s *pageState) editing() bool { return s.input != nil }

// fail logs err and keeps a one-line notice for the status bar.
// The previous result, if any, stays on screen.
func (s *pageState) fail(p Page, err error) {
	logFailure(p.String(), err)
	s.notice = cli.Truncate(cli.FirstLine(err.Error()), noticeLen)
}

func logFailure(page string, err error) {
	log.Error().Err(err).Str("page", page).Msg("request failed")
}

func analyzeCmd(adv finance.Advisor, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		a, err := adv.AnalyzeText(ctx, text)
		return NLUResultMsg{Analysis: a, Err: err}
	}
}

func adviceCmd(adv finance.Advisor, question string, persona model.Persona) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		text, err := adv.GenerateAdvice(ctx, question, persona)
		return AdviceResultMsg{Question: question, Text: text, Err: err}
	}
}

func budgetCmd(adv finance.Advisor, data model.BudgetData) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		sum, err := adv.SummarizeBudget(ctx, data)
		return BudgetResultMsg{Summary: sum, Err: err}
	}
}

func insightsCmd(adv finance.Advisor, data model.SpendingData) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		ins, err := adv.GenerateInsights(ctx, data)
		return InsightsResultMsg{Report: ins, Err: err}
	}
}
