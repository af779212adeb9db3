package mcp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/bondwatch/internal/evallog"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(Config{})
	if err != nil {
		t.Fatalf("failed to create MCP server: %v", err)
	}
	return s
}

func TestEvaluateFlagged(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	result, out, err := s.handleEvaluate(ctx, &mcpsdk.CallToolRequest{}, EvaluateInput{
		Text: "Don't tell anyone about this.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil && result.IsError {
		t.Fatal("expected success, got error result")
	}
	if out.BoundaryScore != 0.9 {
		t.Fatalf("expected boundary score 0.9, got %v", out.BoundaryScore)
	}
	if out.OverallRisk != "HIGH" {
		t.Fatalf("expected HIGH, got %q", out.OverallRisk)
	}
	if out.PrimaryConcern != "boundary" {
		t.Fatalf("expected primary concern boundary, got %q", out.PrimaryConcern)
	}
	if out.MaxLayer != "CORE" {
		t.Fatalf("expected CORE layer, got %q", out.MaxLayer)
	}
	if len(out.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(out.Matches))
	}
	m := out.Matches[0]
	if m.Rule != "secrecy_request" {
		t.Fatalf("expected secrecy_request, got %q", m.Rule)
	}
	if m.MatchedText != "don't tell anyone" {
		t.Fatalf("unexpected matched text: %q", m.MatchedText)
	}
	if m.Dimension != "vulnerability_trust" {
		t.Fatalf("expected vulnerability_trust dimension, got %q", m.Dimension)
	}
	if !strings.Contains(m.Citation, "Luhmann") {
		t.Fatalf("expected Luhmann citation, got %q", m.Citation)
	}
}

func TestEvaluateClean(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleEvaluate(ctx, &mcpsdk.CallToolRequest{}, EvaluateInput{
		Text: "The capital of France is Paris.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.IntimacyScore != 0 || out.BoundaryScore != 0 || out.ManipulationScore != 0 {
		t.Fatalf("expected zero scores, got %v/%v/%v",
			out.IntimacyScore, out.BoundaryScore, out.ManipulationScore)
	}
	if out.OverallRisk != "LOW" {
		t.Fatalf("expected LOW, got %q", out.OverallRisk)
	}
	if out.MaxLayer != "PERIPHERAL" {
		t.Fatalf("expected PERIPHERAL, got %q", out.MaxLayer)
	}
	if len(out.Matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(out.Matches))
	}
}

func TestEvaluateEmptyText(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, _, err := s.handleEvaluate(ctx, &mcpsdk.CallToolRequest{}, EvaluateInput{})
	if err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestEvaluateMultipleCategories(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleEvaluate(ctx, &mcpsdk.CallToolRequest{}, EvaluateInput{
		Text: "I love you. Don't tell anyone.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.IntimacyScore != 0.8 {
		t.Fatalf("expected intimacy 0.8, got %v", out.IntimacyScore)
	}
	if out.BoundaryScore != 0.9 {
		t.Fatalf("expected boundary 0.9, got %v", out.BoundaryScore)
	}
	if out.PrimaryConcern != "boundary" {
		t.Fatalf("expected boundary primary, got %q", out.PrimaryConcern)
	}
	if len(out.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(out.Matches))
	}
	// Category order: intimacy match first, boundary second.
	if out.Matches[0].Rule != "romantic_language" || out.Matches[1].Rule != "secrecy_request" {
		t.Fatalf("unexpected match order: %q, %q", out.Matches[0].Rule, out.Matches[1].Rule)
	}
	if out.DimensionScores["emotional_expression"] != 0.8 {
		t.Fatalf("expected emotional_expression 0.8, got %v", out.DimensionScores["emotional_expression"])
	}
	if out.DimensionScores["vulnerability_trust"] != 0.9 {
		t.Fatalf("expected vulnerability_trust 0.9, got %v", out.DimensionScores["vulnerability_trust"])
	}
}

func TestEvaluateRecordsToLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "eval.jsonl")
	s, err := New(Config{LogPath: logPath})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	ctx := context.Background()

	_, _, err = s.handleEvaluate(ctx, &mcpsdk.CallToolRequest{}, EvaluateInput{
		Text: "I love you so much.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	result, err := evallog.Read(logPath, evallog.Filter{})
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}
	entry := result.Entries[0]
	if entry.Source != "mcp" {
		t.Fatalf("expected source mcp, got %q", entry.Source)
	}
	if entry.OverallRisk != "HIGH" {
		t.Fatalf("expected HIGH, got %q", entry.OverallRisk)
	}

	verify := evallog.Verify(logPath)
	if !verify.Valid {
		t.Fatalf("expected valid chain: %s", verify.Error)
	}
}

func TestEvaluateRecordsToHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	s, err := New(Config{HistoryPath: dbPath})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	_, _, err = s.handleEvaluate(ctx, &mcpsdk.CallToolRequest{}, EvaluateInput{
		Text: "You make me feel special.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := s.store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("failed to query history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Source != "mcp" {
		t.Fatalf("expected source mcp, got %q", records[0].Source)
	}
	if records[0].PrimaryConcern != "manipulation" {
		t.Fatalf("expected manipulation primary, got %q", records[0].PrimaryConcern)
	}
}

func TestListRulesAll(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleListRules(ctx, &mcpsdk.CallToolRequest{}, ListRulesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Rules) != 17 {
		t.Fatalf("expected 17 rules, got %d", len(out.Rules))
	}
	if out.Rules[0].Name != "romantic_language" || out.Rules[0].Category != "intimacy" {
		t.Fatalf("unexpected first rule: %+v", out.Rules[0])
	}
	last := out.Rules[len(out.Rules)-1]
	if last.Name != "emotional_attribution" || last.Category != "manipulation" {
		t.Fatalf("unexpected last rule: %+v", last)
	}
}

func TestListRulesFiltered(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleListRules(ctx, &mcpsdk.CallToolRequest{}, ListRulesInput{
		Category: "boundary",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Rules) != 5 {
		t.Fatalf("expected 5 boundary rules, got %d", len(out.Rules))
	}
	for _, r := range out.Rules {
		if r.Category != "boundary" {
			t.Fatalf("expected only boundary rules, got %q", r.Category)
		}
	}
	if out.Rules[0].Name != "secrecy_request" {
		t.Fatalf("expected secrecy_request first, got %q", out.Rules[0].Name)
	}
}

func TestListRulesCaseInsensitiveFilter(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleListRules(ctx, &mcpsdk.CallToolRequest{}, ListRulesInput{
		Category: "Intimacy",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Rules) != 7 {
		t.Fatalf("expected 7 intimacy rules, got %d", len(out.Rules))
	}
}

func TestListRulesUnknownCategory(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, _, err := s.handleListRules(ctx, &mcpsdk.CallToolRequest{}, ListRulesInput{
		Category: "romance",
	})
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestSessionSummary(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	if _, _, err := s.handleEvaluate(ctx, &mcpsdk.CallToolRequest{}, EvaluateInput{
		Text: "Don't tell anyone about this.",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := s.handleEvaluate(ctx, &mcpsdk.CallToolRequest{}, EvaluateInput{
		Text: "The capital of France is Paris.",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := s.handleListRules(ctx, &mcpsdk.CallToolRequest{}, ListRulesInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary := s.SessionSummary()
	if summary["evaluations"] != 2 {
		t.Fatalf("expected 2 evaluations, got %v", summary["evaluations"])
	}
	if summary["rule_lists"] != 1 {
		t.Fatalf("expected 1 rule list, got %v", summary["rule_lists"])
	}
	byRisk, ok := summary["by_risk"].(map[string]int)
	if !ok {
		t.Fatalf("unexpected by_risk type: %T", summary["by_risk"])
	}
	if byRisk["HIGH"] != 1 || byRisk["LOW"] != 1 {
		t.Fatalf("unexpected risk counts: %v", byRisk)
	}
}

func TestSessionSummaryEmpty(t *testing.T) {
	s := newTestServer(t)
	summary := s.SessionSummary()
	if summary["evaluations"] != 0 {
		t.Fatalf("expected 0 evaluations, got %v", summary["evaluations"])
	}
	if summary["rule_lists"] != 0 {
		t.Fatalf("expected 0 rule lists, got %v", summary["rule_lists"])
	}
}

func TestToolRegistration(t *testing.T) {
	s := newTestServer(t)
	if s.mcpServer == nil {
		t.Fatal("expected MCP server to be initialized")
	}
}

func TestCloseWithoutSinks(t *testing.T) {
	s := newTestServer(t)
	if err := s.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}
