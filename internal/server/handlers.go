package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/theirongolddev/finchat/internal/finance"
	"github.com/theirongolddev/finchat/internal/model"
	"github.com/theirongolddev/finchat/internal/prompt"
	"github.com/theirongolddev/finchat/internal/store"
)

const (
	defaultPersona      = "general"
	defaultHistoryLimit = 20
	maxHistoryLimit     = 500
)

func fail(c *gin.Context, status int, msg string, err error) {
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(msg)
	}
	if err != nil {
		msg += ": " + err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func (s *Server) getRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Message: ServiceName,
		Status:  "running",
		Version: Version,
		V1:      "/api/v1",
	})
}

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: ServiceName,
		Version: Version,
	})
}

func (s *Server) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.status())
}

func (s *Server) postNLU(c *gin.Context) {
	var req NLURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	a, err := s.advisor.AnalyzeText(c.Request.Context(), req.Text)
	if err != nil {
		fail(c, http.StatusInternalServerError, "NLU analysis failed", err)
		return
	}
	s.publish(string(finance.OpNLU), "", string(a.Sentiment.Document.Label))
	c.JSON(http.StatusOK, NLUResponse{Status: StatusSuccess, Analysis: a, Text: req.Text})
}

func (s *Server) postGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	persona := orDefault(req.Persona, defaultPersona)
	ctx := c.Request.Context()

	a, err := s.advisor.AnalyzeText(ctx, req.Question)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Response generation failed", err)
		return
	}
	out, err := s.advisor.GenerateAdvice(ctx, req.Question, model.ParsePersona(persona))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Response generation failed", err)
		return
	}

	s.publish(string(finance.OpAdvice), persona, out)
	c.JSON(http.StatusOK, GenerateResponse{
		Status:      StatusSuccess,
		Response:    out,
		Persona:     persona,
		NLUAnalysis: a,
		Prompt:      prompt.WithNLU(req.Question, persona, a),
	})
}

func (s *Server) postBudgetSummary(c *gin.Context) {
	var data model.BudgetData
	if err := c.ShouldBindJSON(&data); err != nil {
		fail(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	data.Currency = orDefault(data.Currency, "$")

	sum, err := s.advisor.SummarizeBudget(c.Request.Context(), data)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Budget summary generation failed", err)
		return
	}

	text := sum.Text()
	s.publish(string(finance.OpBudget), string(sum.Persona), text)
	c.JSON(http.StatusOK, BudgetResponse{
		Status:   StatusSuccess,
		Summary:  Summary{Response: text, BudgetSummary: sum},
		UserType: orDefault(string(data.UserType), defaultPersona),
		Prompt:   prompt.Budget(data),
	})
}

func (s *Server) postSpendingInsights(c *gin.Context) {
	var data model.SpendingData
	if err := c.ShouldBindJSON(&data); err != nil {
		fail(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	ins, err := s.advisor.GenerateInsights(c.Request.Context(), data)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Spending analysis failed", err)
		return
	}

	text := ins.Text()
	s.publish(string(finance.OpInsights), string(ins.Persona), text)
	c.JSON(http.StatusOK, InsightsResponse{
		Status:   StatusSuccess,
		Insights: Insights{Response: text, InsightReport: ins},
		UserType: orDefault(string(data.UserType), defaultPersona),
		Prompt:   prompt.Insights(data),
	})
}

func (s *Server) getHistory(c *gin.Context) {
	if s.history == nil {
		fail(c, http.StatusNotFound, "history is disabled", nil)
		return
	}

	limit := defaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			fail(c, http.StatusBadRequest, "limit must be a positive integer", nil)
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	entries, err := s.history.Recent(c.Request.Context(), limit, c.Query("kind"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "reading history failed", err)
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	c.JSON(http.StatusOK, HistoryResponse{Status: StatusSuccess, Entries: entries})
}

func (s *Server) getHistoryEntry(c *gin.Context) {
	if s.history == nil {
		fail(c, http.StatusNotFound, "history is disabled", nil)
		return
	}

	e, err := s.history.Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, store.ErrNotFound):
		fail(c, http.StatusNotFound, "no history entry with that id", nil)
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, "reading history failed", err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Server) getEvents(c *gin.Context) {
	c.JSON(http.StatusOK, s.recentEvents())
}

// getStream sends every new event as a server-sent event until the client
// goes away.
func (s *Server) getStream(c *gin.Context) {
	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.SSEvent("hello", Event{Type: "hello", Timestamp: time.Now().UTC()})
	c.Writer.Flush()

	c.Stream(func(io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev := <-ch:
			c.SSEvent(ev.Type, ev)
			return true
		}
	})
}
