package evallog

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/ppiankov/bondwatch/internal/evaluate"
)

// Entry is one line in the hash-chained JSONL evaluation log.
// It stores only a digest of the evaluated text, never the text itself,
// so logs can be retained and shipped without leaking conversation content.
// All fields are scalars or []string (no map[string]any) to guarantee
// deterministic json.Marshal field order for reproducible hashing.
type Entry struct {
	ID                string   `json:"id"`
	Timestamp         string   `json:"ts"`
	Source            string   `json:"source"`
	TextSHA256        string   `json:"text_sha256"`
	TextLen           int      `json:"text_len"`
	IntimacyScore     float64  `json:"intimacy_score"`
	BoundaryScore     float64  `json:"boundary_score"`
	ManipulationScore float64  `json:"manipulation_score"`
	MaxLayer          string   `json:"max_layer"`
	OverallRisk       string   `json:"overall_risk"`
	PrimaryConcern    string   `json:"primary_concern"`
	MatchCount        int      `json:"match_count"`
	RuleIDs           []string `json:"rule_ids"`
	PrevHash          string   `json:"prev_hash"`
}

// NewEntry flattens an evaluation outcome into a log entry.
// Source names the surface that requested the evaluation ("cli", "watch",
// "mcp", "sdk"). Timestamp and PrevHash are filled in by Log.Record.
func NewEntry(source, text string, report *evaluate.SafetyReport) Entry {
	ruleIDs := make([]string, 0, len(report.Matches))
	for _, m := range report.Matches {
		ruleIDs = append(ruleIDs, string(m.Category)+"/"+m.Rule)
	}

	return Entry{
		ID:                uuid.NewString(),
		Source:            source,
		TextSHA256:        HashText(text),
		TextLen:           len(text),
		IntimacyScore:     report.IntimacyScore,
		BoundaryScore:     report.BoundaryScore,
		ManipulationScore: report.ManipulationScore,
		MaxLayer:          report.MaxLayer.String(),
		OverallRisk:       report.OverallRisk().String(),
		PrimaryConcern:    string(report.PrimaryConcern()),
		MatchCount:        len(report.Matches),
		RuleIDs:           ruleIDs,
	}
}

// HashText returns "sha256:<hex>" of the evaluated text.
func HashText(text string) string {
	h := sha256.Sum256([]byte(text))
	return "sha256:" + hex.EncodeToString(h[:])
}
