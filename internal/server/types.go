package server

import (
	"github.com/theirongolddev/finchat/internal/finance"
	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/store"
)

// StatusSuccess is the status field of every successful operation response.
const StatusSuccess = "success"

// NLURequest is the body of POST /api/v1/nlu.
type NLURequest struct {
	Text string `json:"text"`
}

// NLUResponse echoes the text next to its analysis.
type NLUResponse struct {
	Status   string            `json:"status"`
	Analysis model.NLUAnalysis `json:"analysis"`
	Text     string            `json:"text"`
}

// GenerateRequest is the body of POST /api/v1/generate.
type GenerateRequest struct {
	Question string `json:"question"`
	Persona  string `json:"persona"`
}

// GenerateResponse carries the advice and the prompt built for it.
type GenerateResponse struct {
	Status      string            `json:"status"`
	Response    string            `json:"response"`
	Persona     string            `json:"persona"`
	NLUAnalysis model.NLUAnalysis `json:"nlu_analysis"`
	Prompt      string            `json:"prompt"`
}

// Summary is a budget summary with its rendered text.
type Summary struct {
	Response string `json:"response"`
	finance.BudgetSummary
}

// BudgetResponse is returned by POST /api/v1/budget-summary.
type BudgetResponse struct {
	Status   string  `json:"status"`
	Summary  Summary `json:"summary"`
	UserType string  `json:"user_type"`
	Prompt   string  `json:"prompt"`
}

// Insights is a spending insights report with its rendered text.
type Insights struct {
	Response string `json:"response"`
	finance.InsightReport
}

// InsightsResponse is returned by POST /api/v1/spending-insights.
type InsightsResponse struct {
	Status   string   `json:"status"`
	Insights Insights `json:"insights"`
	UserType string   `json:"user_type"`
	Prompt   string   `json:"prompt"`
}

// HealthResponse is returned by GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// RootResponse is returned by GET /.
type RootResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Version string `json:"version"`
	V1      string `json:"v1"`
}

// HistoryResponse is returned by GET /api/v1/history.
type HistoryResponse struct {
	Status  string        `json:"status"`
	Entries []store.Entry `json:"entries"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
