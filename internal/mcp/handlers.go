package mcp

import (
	"context"
	"fmt"
	"os"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/bondwatch/internal/evallog"
	"github.com/ppiankov/bondwatch/internal/evaluate"
	"github.com/ppiankov/bondwatch/internal/taxonomy"
)

// --- Input/Output types ---

// EvaluateInput defines parameters for the evaluate_response tool.
type EvaluateInput struct {
	Text string `json:"text" jsonschema:"LLM response text to evaluate"`
}

// MatchItem describes a single fired detection rule.
type MatchItem struct {
	Category    string  `json:"category"`
	Rule        string  `json:"rule"`
	Dimension   string  `json:"dimension,omitempty"`
	Layer       string  `json:"layer"`
	Severity    float64 `json:"severity"`
	MatchedText string  `json:"matched_text"`
	Explanation string  `json:"explanation"`
	Citation    string  `json:"citation"`
}

// EvaluateOutput contains the safety report for one response.
type EvaluateOutput struct {
	IntimacyScore     float64            `json:"intimacy_score"`
	BoundaryScore     float64            `json:"boundary_score"`
	ManipulationScore float64            `json:"manipulation_score"`
	DimensionScores   map[string]float64 `json:"dimension_scores,omitempty"`
	MaxLayer          string             `json:"max_layer"`
	OverallRisk       string             `json:"overall_risk"`
	PrimaryConcern    string             `json:"primary_concern"`
	Matches           []MatchItem        `json:"matches"`
}

// ListRulesInput defines parameters for the list_rules tool.
type ListRulesInput struct {
	Category string `json:"category,omitempty" jsonschema:"optional category filter (intimacy/boundary/manipulation)"`
}

// RuleItem describes one detection rule.
type RuleItem struct {
	Category  string  `json:"category"`
	Name      string  `json:"name"`
	Pattern   string  `json:"pattern"`
	Severity  float64 `json:"severity"`
	Layer     string  `json:"layer"`
	Dimension string  `json:"dimension,omitempty"`
	Citation  string  `json:"citation"`
}

// ListRulesOutput lists the rule set in declaration order.
type ListRulesOutput struct {
	Rules []RuleItem `json:"rules"`
}

// --- Handlers ---

func (s *Server) handleEvaluate(ctx context.Context, req *mcpsdk.CallToolRequest, input EvaluateInput) (*mcpsdk.CallToolResult, EvaluateOutput, error) {
	if input.Text == "" {
		return nil, EvaluateOutput{}, fmt.Errorf("text is required")
	}

	report := evaluate.Evaluate(input.Text)

	out := EvaluateOutput{
		IntimacyScore:     report.IntimacyScore,
		BoundaryScore:     report.BoundaryScore,
		ManipulationScore: report.ManipulationScore,
		MaxLayer:          report.MaxLayer.String(),
		OverallRisk:       report.OverallRisk().String(),
		PrimaryConcern:    string(report.PrimaryConcern()),
		Matches:           make([]MatchItem, 0, len(report.Matches)),
	}
	if len(report.DimensionScores) > 0 {
		out.DimensionScores = make(map[string]float64, len(report.DimensionScores))
		for dim, score := range report.DimensionScores {
			out.DimensionScores[string(dim)] = score
		}
	}
	for _, m := range report.Matches {
		out.Matches = append(out.Matches, MatchItem{
			Category:    string(m.Category),
			Rule:        m.Rule,
			Dimension:   string(m.Dimension),
			Layer:       m.Layer.String(),
			Severity:    m.Severity,
			MatchedText: m.MatchedText,
			Explanation: m.Explanation,
			Citation:    m.Citation,
		})
	}

	s.countEvaluation(out.OverallRisk)
	s.record(ctx, input.Text, report)

	return nil, out, nil
}

func (s *Server) handleListRules(ctx context.Context, req *mcpsdk.CallToolRequest, input ListRulesInput) (*mcpsdk.CallToolResult, ListRulesOutput, error) {
	var categories []taxonomy.Category
	if input.Category != "" {
		cat := taxonomy.Category(strings.ToLower(input.Category))
		switch cat {
		case taxonomy.Intimacy, taxonomy.Boundary, taxonomy.Manipulation:
			categories = []taxonomy.Category{cat}
		default:
			return nil, ListRulesOutput{}, fmt.Errorf("unknown category %q", input.Category)
		}
	} else {
		categories = taxonomy.Categories()
	}

	out := ListRulesOutput{}
	for _, cat := range categories {
		for _, r := range taxonomy.Rules(cat) {
			item := RuleItem{
				Category: string(cat),
				Name:     r.Name,
				Pattern:  r.Pattern,
				Severity: r.Severity,
				Layer:    r.Layer.String(),
				Citation: r.Citation,
			}
			if r.Dimension != "" {
				item.Dimension = string(r.Dimension)
			}
			out.Rules = append(out.Rules, item)
		}
	}

	s.countRuleList()
	return nil, out, nil
}

// --- Helpers ---

// record appends the evaluation to the configured sinks. Failures go to
// stderr rather than failing the tool call: the report has already been
// computed and belongs to the caller.
func (s *Server) record(ctx context.Context, text string, report *evaluate.SafetyReport) {
	if s.evalLog != nil {
		if err := s.evalLog.Record(evallog.NewEntry("mcp", text, report)); err != nil {
			fmt.Fprintf(os.Stderr, "mcp: record evaluation: %v\n", err)
		}
	}
	if s.store != nil {
		if _, err := s.store.Insert(ctx, "mcp", text, report); err != nil {
			fmt.Fprintf(os.Stderr, "mcp: record history: %v\n", err)
		}
	}
}
