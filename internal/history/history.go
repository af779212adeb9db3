package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ppiankov/bondwatch/internal/evallog"
	"github.com/ppiankov/bondwatch/internal/evaluate"
)

const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
	id                 TEXT PRIMARY KEY,
	created_at         TEXT NOT NULL,
	source             TEXT NOT NULL,
	text_sha256        TEXT NOT NULL,
	text_len           INTEGER NOT NULL,
	intimacy_score     REAL NOT NULL,
	boundary_score     REAL NOT NULL,
	manipulation_score REAL NOT NULL,
	max_layer          TEXT NOT NULL,
	overall_risk       TEXT NOT NULL,
	primary_concern    TEXT NOT NULL,
	match_count        INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS rule_hits (
	evaluation_id TEXT NOT NULL REFERENCES evaluations(id),
	category      TEXT NOT NULL,
	rule          TEXT NOT NULL,
	layer         TEXT NOT NULL,
	severity      REAL NOT NULL,
	matched_text  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_evaluations_created ON evaluations(created_at);
CREATE INDEX IF NOT EXISTS idx_rule_hits_eval ON rule_hits(evaluation_id);
`

// Record is one persisted evaluation row. Like the evaluation log, it holds
// a digest of the evaluated text rather than the text itself; only the short
// matched fragments live in rule_hits.
type Record struct {
	ID                string  `json:"id"`
	CreatedAt         string  `json:"created_at"`
	Source            string  `json:"source"`
	TextSHA256        string  `json:"text_sha256"`
	TextLen           int     `json:"text_len"`
	IntimacyScore     float64 `json:"intimacy_score"`
	BoundaryScore     float64 `json:"boundary_score"`
	ManipulationScore float64 `json:"manipulation_score"`
	MaxLayer          string  `json:"max_layer"`
	OverallRisk       string  `json:"overall_risk"`
	PrimaryConcern    string  `json:"primary_concern"`
	MatchCount        int     `json:"match_count"`
}

// Hit is one rule firing within a persisted evaluation.
type Hit struct {
	Category    string  `json:"category"`
	Rule        string  `json:"rule"`
	Layer       string  `json:"layer"`
	Severity    float64 `json:"severity"`
	MatchedText string  `json:"matched_text"`
}

// RuleCount is a rule with its firing count, for the stats leaderboard.
type RuleCount struct {
	Category string `json:"category"`
	Rule     string `json:"rule"`
	Count    int    `json:"count"`
}

// Stats summarizes the whole history table.
type Stats struct {
	Total           int            `json:"total"`
	ByRisk          map[string]int `json:"by_risk"`
	AvgIntimacy     float64        `json:"avg_intimacy"`
	AvgBoundary     float64        `json:"avg_boundary"`
	AvgManipulation float64        `json:"avg_manipulation"`
	TopRules        []RuleCount    `json:"top_rules"`
}

// Store persists evaluation outcomes in a local sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("history: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: ensure schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DefaultPath returns the default history database location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "bondwatch-history.db")
	}
	return filepath.Join(home, ".bondwatch", "history.db")
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores one evaluation outcome with its rule hits and returns the
// new record's ID. The text is digested with the same sha256 format the
// evaluation log uses, so log and history rows can be joined by digest.
func (s *Store) Insert(ctx context.Context, source, text string, report *evaluate.SafetyReport) (string, error) {
	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(evallog.TimestampFormat)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("history: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO evaluations (
			id, created_at, source, text_sha256, text_len,
			intimacy_score, boundary_score, manipulation_score,
			max_layer, overall_risk, primary_concern, match_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, createdAt, source, evallog.HashText(text), len(text),
		report.IntimacyScore, report.BoundaryScore, report.ManipulationScore,
		report.MaxLayer.String(), report.OverallRisk().String(),
		string(report.PrimaryConcern()), len(report.Matches))
	if err != nil {
		return "", fmt.Errorf("history: insert evaluation: %w", err)
	}

	for _, m := range report.Matches {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO rule_hits (evaluation_id, category, rule, layer, severity, matched_text)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, string(m.Category), m.Rule, m.Layer.String(), m.Severity, m.MatchedText)
		if err != nil {
			return "", fmt.Errorf("history: insert rule hit: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("history: commit: %w", err)
	}
	return id, nil
}

// Recent returns the newest records, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, source, text_sha256, text_len,
		       intimacy_score, boundary_score, manipulation_score,
		       max_layer, overall_risk, primary_concern, match_count
		FROM evaluations
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query recent: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Source, &r.TextSHA256, &r.TextLen,
			&r.IntimacyScore, &r.BoundaryScore, &r.ManipulationScore,
			&r.MaxLayer, &r.OverallRisk, &r.PrimaryConcern, &r.MatchCount); err != nil {
			return nil, fmt.Errorf("history: scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Hits returns the rule hits for one evaluation, in insert order.
func (s *Store) Hits(ctx context.Context, evaluationID string) ([]Hit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, rule, layer, severity, matched_text
		FROM rule_hits
		WHERE evaluation_id = ?
		ORDER BY rowid`, evaluationID)
	if err != nil {
		return nil, fmt.Errorf("history: query hits: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.Category, &h.Rule, &h.Layer, &h.Severity, &h.MatchedText); err != nil {
			return nil, fmt.Errorf("history: scan hit: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Stats aggregates the whole history: totals per risk, average category
// scores, and the five most frequently firing rules.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByRisk: map[string]int{}}

	var avgI, avgB, avgM sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), AVG(intimacy_score), AVG(boundary_score), AVG(manipulation_score)
		FROM evaluations`).Scan(&stats.Total, &avgI, &avgB, &avgM)
	if err != nil {
		return nil, fmt.Errorf("history: aggregate: %w", err)
	}
	stats.AvgIntimacy = avgI.Float64
	stats.AvgBoundary = avgB.Float64
	stats.AvgManipulation = avgM.Float64

	rows, err := s.db.QueryContext(ctx, `
		SELECT overall_risk, COUNT(*) FROM evaluations GROUP BY overall_risk`)
	if err != nil {
		return nil, fmt.Errorf("history: risk counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var risk string
		var n int
		if err := rows.Scan(&risk, &n); err != nil {
			return nil, fmt.Errorf("history: scan risk count: %w", err)
		}
		stats.ByRisk[risk] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ruleRows, err := s.db.QueryContext(ctx, `
		SELECT category, rule, COUNT(*) AS n
		FROM rule_hits
		GROUP BY category, rule
		ORDER BY n DESC, category, rule
		LIMIT 5`)
	if err != nil {
		return nil, fmt.Errorf("history: top rules: %w", err)
	}
	defer ruleRows.Close()
	for ruleRows.Next() {
		var rc RuleCount
		if err := ruleRows.Scan(&rc.Category, &rc.Rule, &rc.Count); err != nil {
			return nil, fmt.Errorf("history: scan rule count: %w", err)
		}
		stats.TopRules = append(stats.TopRules, rc)
	}
	return stats, ruleRows.Err()
}
