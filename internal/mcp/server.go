package mcp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/bondwatch/internal/evallog"
	"github.com/ppiankov/bondwatch/internal/history"
)

// Config holds MCP server configuration. Log and history are optional;
// when configured, every evaluate_response call is recorded there.
type Config struct {
	LogPath     string
	HistoryPath string
}

// sessionStats tallies tool calls served over one stdio session.
type sessionStats struct {
	Evaluations int
	ByRisk      map[string]int
	RuleLists   int
}

// Server wraps the MCP SDK server with response evaluation tools.
type Server struct {
	mcpServer *mcpsdk.Server
	evalLog   *evallog.Log
	store     *history.Store

	mu    sync.Mutex
	stats sessionStats
}

// New creates an MCP server with evaluation tools registered.
func New(cfg Config) (*Server, error) {
	s := &Server{}

	if cfg.LogPath != "" {
		l, err := evallog.Open(cfg.LogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open evaluation log: %w", err)
		}
		s.evalLog = l
	}

	if cfg.HistoryPath != "" {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open history store: %w", err)
		}
		s.store = store
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "bondwatch",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the evaluation log and history store if configured.
func (s *Server) Close() error {
	var errs []error
	if s.evalLog != nil {
		errs = append(errs, s.evalLog.Close())
	}
	if s.store != nil {
		errs = append(errs, s.store.Close())
	}
	return errors.Join(errs...)
}

// SessionSummary exports the session counters for the shutdown report.
func (s *Server) SessionSummary() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	byRisk := make(map[string]int, len(s.stats.ByRisk))
	for k, v := range s.stats.ByRisk {
		byRisk[k] = v
	}
	return map[string]any{
		"evaluations": s.stats.Evaluations,
		"by_risk":     byRisk,
		"rule_lists":  s.stats.RuleLists,
	}
}

func (s *Server) countEvaluation(risk string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats.ByRisk == nil {
		s.stats.ByRisk = make(map[string]int)
	}
	s.stats.Evaluations++
	s.stats.ByRisk[risk]++
}

func (s *Server) countRuleList() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.RuleLists++
}

// registerTools adds all bondwatch tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name: "evaluate_response",
		Description: "Evaluate an LLM response for parasocial-risk language. " +
			"Returns category scores, disclosure layer, overall risk, and the matched patterns.",
	}, s.handleEvaluate)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name: "list_rules",
		Description: "List the detection rules: category, pattern, severity, " +
			"disclosure layer, intimacy dimension, and citation.",
	}, s.handleListRules)
}
