package inbox

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/bondwatch/internal/evallog"
	"github.com/ppiankov/bondwatch/internal/evaluate"
	"github.com/ppiankov/bondwatch/internal/history"
)

// maxResponseSize caps how large a dropped response file may be.
// Anything larger moves to failed/ unread.
const maxResponseSize = 1 << 20 // 1 MiB

// Config holds runtime configuration for response processing.
// Log and Store are optional; when set, every processed file is also
// recorded there under source "watch".
type Config struct {
	Dirs  DirConfig
	Log   *evallog.Log
	Store *history.Store
}

// Processor evaluates dropped response files and writes report files.
type Processor struct {
	cfg Config
}

// NewProcessor creates a processor with the given configuration.
func NewProcessor(cfg Config) *Processor {
	return &Processor{cfg: cfg}
}

// Process handles a single response file:
// read → evaluate → write <name>.report.json to the outbox → remove input.
// Oversized or undecodable files move to failed/ with a .error note.
func (p *Processor) Process(ctx context.Context, path string) error {
	// Structural symlink defense: reject symlinks before reading, so an
	// inbox entry cannot alias arbitrary files on the filesystem.
	fi, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("stat response file: %w", err)
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("rejected symlink: %s", filepath.Base(path))
	}
	if fi.Size() > maxResponseSize {
		return p.fail(path, fmt.Sprintf("file too large: %d bytes (max %d)", fi.Size(), maxResponseSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read response file: %w", err)
	}
	text := string(data)

	report := evaluate.Evaluate(text)

	if err := p.writeReport(path, report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if p.cfg.Log != nil {
		if err := p.cfg.Log.Record(evallog.NewEntry("watch", text, report)); err != nil {
			fmt.Fprintf(os.Stderr, "watch: log %s: %v\n", filepath.Base(path), err)
		}
	}
	if p.cfg.Store != nil {
		if _, err := p.cfg.Store.Insert(ctx, "watch", text, report); err != nil {
			fmt.Fprintf(os.Stderr, "watch: history %s: %v\n", filepath.Base(path), err)
		}
	}

	return os.Remove(path)
}

// fail moves an unprocessable file to failed/ alongside a .error note.
func (p *Processor) fail(path, reason string) error {
	name := filepath.Base(path)
	if err := moveFile(path, filepath.Join(p.cfg.Dirs.FailedDir(), name)); err != nil {
		return fmt.Errorf("move to failed: %w", err)
	}
	note := filepath.Join(p.cfg.Dirs.FailedDir(), name+".error")
	if err := os.WriteFile(note, []byte(reason+"\n"), 0600); err != nil {
		return fmt.Errorf("write error note: %w", err)
	}
	fmt.Fprintf(os.Stderr, "watch: failed %s: %s\n", name, reason)
	return nil
}

// writeReport writes the report to the outbox directory atomically.
func (p *Processor) writeReport(inputPath string, report *evaluate.SafetyReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	filename := reportName(inputPath)
	tmpPath := filepath.Join(p.cfg.Dirs.Outbox, filename+".tmp")
	finalPath := filepath.Join(p.cfg.Dirs.Outbox, filename)

	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	return os.Rename(tmpPath, finalPath)
}

// reportName maps "reply.txt" to "reply.report.json".
func reportName(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".report.json"
}
