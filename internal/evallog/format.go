package evallog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const separator = "──────────────────────────────────────────────────────────────────"

// FormatTimeline renders a ReadResult as a human-readable text timeline.
func FormatTimeline(result *ReadResult) string {
	if len(result.Entries) == 0 {
		return "No entries found.\n"
	}

	var b strings.Builder

	// Header
	first := formatDateTime(result.Summary.FirstTimestamp)
	last := formatTimeOnly(result.Summary.LastTimestamp)
	b.WriteString(fmt.Sprintf("Evaluations: %d | %s–%s UTC\n", result.Summary.Total, first, last))
	b.WriteString(separator + "\n")

	// Entries
	for _, e := range result.Entries {
		ts := formatTimeOnly(e.Timestamp)
		risk := e.OverallRisk
		primary := e.PrimaryConcern
		digest := shortDigest(e.TextSHA256)

		matches := "clean"
		if e.MatchCount > 0 {
			matches = fmt.Sprintf("%d match", e.MatchCount)
			if e.MatchCount > 1 {
				matches += "es"
			}
		}

		b.WriteString(fmt.Sprintf("%-10s %-7s %-13s %-10s %-15s [%s]\n",
			ts, risk, primary, matches, digest, e.Source))
	}

	// Footer
	b.WriteString(separator + "\n")
	b.WriteString(formatSummary(result.Summary))

	return b.String()
}

// FormatJSON renders a ReadResult as indented JSON.
func FormatJSON(result *ReadResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal log entries: %w", err)
	}
	return string(data), nil
}

func formatDateTime(ts string) string {
	t, err := time.Parse(TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatTimeOnly(ts string) string {
	t, err := time.Parse(TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04:05")
}

func formatSummary(s Summary) string {
	parts := []string{}
	if s.HighCount > 0 {
		parts = append(parts, fmt.Sprintf("%d high", s.HighCount))
	}
	if s.MediumCount > 0 {
		parts = append(parts, fmt.Sprintf("%d medium", s.MediumCount))
	}
	if s.LowCount > 0 {
		parts = append(parts, fmt.Sprintf("%d low", s.LowCount))
	}
	if len(parts) == 0 {
		parts = append(parts, "none")
	}

	return fmt.Sprintf("Summary: %s | flagged %d/%d\n",
		strings.Join(parts, ", "), s.FlaggedCount, s.Total)
}

// shortDigest trims "sha256:<hex>" to a 12-char prefix for display.
func shortDigest(digest string) string {
	hexPart := strings.TrimPrefix(digest, "sha256:")
	if len(hexPart) > 12 {
		hexPart = hexPart[:12]
	}
	return hexPart
}
