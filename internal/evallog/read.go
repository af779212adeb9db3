package evallog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Filter holds criteria for reading evaluation entries back.
type Filter struct {
	Risk   string // "HIGH", "MEDIUM", "LOW"; empty = all
	Source string // "cli", "watch", "mcp", "sdk"; empty = all
	Limit  int    // keep only the most recent N entries; 0 = all
}

// Summary holds aggregate counts for a set of log entries.
type Summary struct {
	Total          int    `json:"total"`
	HighCount      int    `json:"high_count"`
	MediumCount    int    `json:"medium_count"`
	LowCount       int    `json:"low_count"`
	FlaggedCount   int    `json:"flagged_count"`
	FirstTimestamp string `json:"first_timestamp"`
	LastTimestamp  string `json:"last_timestamp"`
}

// ReadResult holds filtered entries and their summary.
type ReadResult struct {
	Entries []Entry `json:"entries"`
	Summary Summary `json:"summary"`
}

// Read loads the evaluation log and returns entries matching the filter,
// oldest first. Malformed lines are skipped; chain integrity is Verify's
// job, not Read's.
func Read(path string, filter Filter) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open evaluation log: %w", err)
	}
	defer f.Close()

	result := &ReadResult{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue // skip malformed lines
		}

		if filter.Risk != "" && entry.OverallRisk != filter.Risk {
			continue
		}
		if filter.Source != "" && entry.Source != filter.Source {
			continue
		}

		result.Entries = append(result.Entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read evaluation log: %w", err)
	}

	if filter.Limit > 0 && len(result.Entries) > filter.Limit {
		result.Entries = result.Entries[len(result.Entries)-filter.Limit:]
	}

	for _, entry := range result.Entries {
		updateSummary(&result.Summary, entry)
	}

	return result, nil
}

func updateSummary(s *Summary, entry Entry) {
	s.Total++

	switch entry.OverallRisk {
	case "HIGH":
		s.HighCount++
	case "MEDIUM":
		s.MediumCount++
	case "LOW":
		s.LowCount++
	}

	if entry.MatchCount > 0 {
		s.FlaggedCount++
	}

	if s.FirstTimestamp == "" {
		s.FirstTimestamp = entry.Timestamp
	}
	s.LastTimestamp = entry.Timestamp
}
