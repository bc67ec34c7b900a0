package finance

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/theirongolddev/finchat/internal/model"
)

// Advisor is the boundary the pages, CLI and HTTP API call through.
type Advisor interface {
	AnalyzeText(ctx context.Context, text string) (model.NLUAnalysis, error)
	GenerateAdvice(ctx context.Context, question string, persona model.Persona) (string, error)
	SummarizeBudget(ctx context.Context, data model.BudgetData) (BudgetSummary, error)
	GenerateInsights(ctx context.Context, data model.SpendingData) (InsightReport, error)
}

// Operation names one advisor call. Used for latency and history records.
type Operation string

const (
	OpNLU      Operation = "nlu"
	OpAdvice   Operation = "advice"
	OpBudget   Operation = "budget"
	OpInsights Operation = "insights"
)

// Operations lists every operation in display order.
var Operations = []Operation{OpNLU, OpAdvice, OpBudget, OpInsights}

// Latency is the simulated processing delay per operation at scale 1.
var Latency = map[Operation]time.Duration{
	OpNLU:      800 * time.Millisecond,
	OpAdvice:   1200 * time.Millisecond,
	OpBudget:   1000 * time.Millisecond,
	OpInsights: 1100 * time.Millisecond,
}

// Recorder persists generated outputs. Errors are logged and never fail
// the call that produced the output.
type Recorder interface {
	Record(ctx context.Context, op string, persona string, input any, output string) error
}

// Options configures a Service.
type Options struct {
	// LatencyScale multiplies Latency. Zero disables the delay.
	LatencyScale float64
	// Seed fixes the NLU random source. Zero seeds randomly.
	Seed     uint64
	Recorder Recorder
}

// Service runs the finance operations in process.
type Service struct {
	scale    float64
	recorder Recorder

	mu  sync.Mutex
	rng *rand.Rand
}

var _ Advisor = (*Service)(nil)

// NewService creates a service from opts.
func NewService(opts Options) *Service {
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Service{
		scale:    opts.LatencyScale,
		recorder: opts.Recorder,
		rng:      rand.New(rand.NewPCG(seed, seed)),
	}
}

// AnalyzeText runs the placeholder NLU analysis.
func (s *Service) AnalyzeText(ctx context.Context, text string) (model.NLUAnalysis, error) {
	if err := s.wait(ctx, OpNLU); err != nil {
		return model.NLUAnalysis{}, err
	}
	s.mu.Lock()
	a := AnalyzeText(text, s.rng)
	s.mu.Unlock()

	out, err := json.Marshal(a)
	if err != nil {
		log.Warn().Err(err).Str("op", string(OpNLU)).Msg("encoding analysis")
	}
	s.record(ctx, OpNLU, "", text, string(out))
	return a, nil
}

// GenerateAdvice answers a question with the matching advice template.
func (s *Service) GenerateAdvice(ctx context.Context, question string, persona model.Persona) (string, error) {
	if err := s.wait(ctx, OpAdvice); err != nil {
		return "", err
	}
	out := GenerateAdvice(question, persona)
	s.record(ctx, OpAdvice, string(persona), question, out)
	return out, nil
}

// SummarizeBudget renders a budget summary.
func (s *Service) SummarizeBudget(ctx context.Context, data model.BudgetData) (BudgetSummary, error) {
	if err := s.wait(ctx, OpBudget); err != nil {
		return BudgetSummary{}, err
	}
	sum := SummarizeBudget(data)
	s.record(ctx, OpBudget, string(sum.Persona), data, sum.Text())
	return sum, nil
}

// GenerateInsights renders a spending insights report.
func (s *Service) GenerateInsights(ctx context.Context, data model.SpendingData) (InsightReport, error) {
	if err := s.wait(ctx, OpInsights); err != nil {
		return InsightReport{}, err
	}
	ins := GenerateInsights(data)
	s.record(ctx, OpInsights, string(ins.Persona), data, ins.Text())
	return ins, nil
}

func (s *Service) wait(ctx context.Context, op Operation) error {
	d := time.Duration(float64(Latency[op]) * s.scale)
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Service) record(ctx context.Context, op Operation, persona string, input any, output string) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, string(op), persona, input, output); err != nil {
		log.Warn().Err(err).Str("op", string(op)).Msg("recording history")
	}
}
