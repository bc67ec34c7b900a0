// Package server exposes the advisor operations over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/theirongolddev/finchat/internal/finance"
	"github.com/theirongolddev/finchat/internal/store"
)

// Version is reported by the root and health endpoints.
var Version = "1.0.0"

// ServiceName is reported by the health endpoint.
const ServiceName = "Personal Finance Chatbot API"

// Config controls the server runtime behavior.
type Config struct {
	Addr         string
	CORSOrigins  []string
	EventsBuffer int
}

// HistoryReader is the read side of the report history.
type HistoryReader interface {
	Recent(ctx context.Context, limit int, kind string) ([]store.Entry, error)
	Get(ctx context.Context, id string) (store.Entry, error)
}

// Status is served at /api/v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	Version         string    `json:"version"`
	History         bool      `json:"history"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Server routes HTTP requests to an Advisor.
type Server struct {
	cfg     Config
	advisor finance.Advisor
	history HistoryReader
	engine  *gin.Engine

	mu          sync.RWMutex
	startedAt   time.Time
	nextEventID int64
	events      []Event
	nextSubID   int
	subs        map[int]chan Event
}

// New returns a server for advisor. history may be nil, which disables the
// history endpoints.
func New(cfg Config, advisor finance.Advisor, history HistoryReader) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8000"
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}

	s := &Server{
		cfg:       cfg,
		advisor:   advisor,
		history:   history,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
	s.engine = s.router()
	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.ForwardedByClientIP = false
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.WarnLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
			return l.With().Str("request-id", requestid.Get(c)).Logger()
		})))

	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.cfg.CORSOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	gin.DebugPrintRouteFunc = func(string, string, string, int) {}
	_ = r.SetTrustedProxies(nil)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
	})

	r.GET("/", s.getRoot)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", s.getHealth)
		v1.GET("/status", s.getStatus)
		v1.POST("/nlu", s.postNLU)
		v1.POST("/generate", s.postGenerate)
		v1.POST("/budget-summary", s.postBudgetSummary)
		v1.POST("/spending-insights", s.postSpendingInsights)
		v1.GET("/history", s.getHistory)
		v1.GET("/history/:id", s.getHistoryEntry)
		v1.GET("/events", s.getEvents)
		v1.GET("/stream", s.getStream)
	}

	return r
}

// Run serves HTTP on cfg.Addr until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Info().Str("addr", s.cfg.Addr).Msg("api server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("api http server: %w", err)
	}
}

func (s *Server) status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		StartedAt:       s.startedAt,
		Version:         Version,
		History:         s.history != nil,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}
