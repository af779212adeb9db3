package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/bondwatch/internal/evallog"
	"github.com/ppiankov/bondwatch/internal/evaluate"
	"github.com/ppiankov/bondwatch/internal/history"
	"github.com/ppiankov/bondwatch/internal/render"
)

var (
	analyzeFile   string
	analyzeFormat string
	analyzeLog    string
	analyzeDB     string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "Read response text from a file")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", "Output format (text|json)")
	analyzeCmd.Flags().StringVar(&analyzeLog, "log", "", "Append the outcome to a hash-chained evaluation log")
	analyzeCmd.Flags().StringVar(&analyzeDB, "db", "", "Record the outcome in a history database")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Evaluate one LLM response for parasocial-risk language",
	Long: "Evaluates response text against the detection taxonomy and prints a safety\n" +
		"report. Text comes from the argument, --file, or stdin (pass \"-\" or no argument).\n\n" +
		"Exit code mirrors the risk level: 0 LOW, 1 MEDIUM, 2 HIGH.\n" +
		"Use in CI to gate response corpora on parasocial safety.",
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := analyzeInput(args, analyzeFile, os.Stdin)
	if err != nil {
		return err
	}

	report := evaluate.Evaluate(text)

	switch analyzeFormat {
	case "json":
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		render.New(os.Stdout).Report(text, report, 0)
	}

	if analyzeLog != "" {
		if err := appendOutcome(analyzeLog, text, report); err != nil {
			return err
		}
	}
	if analyzeDB != "" {
		if err := recordOutcome(analyzeDB, text, report); err != nil {
			return err
		}
	}

	if risk := report.OverallRisk(); risk != evaluate.RiskLow {
		os.Exit(int(risk))
	}
	return nil
}

// analyzeInput resolves the response text: --file wins, then a literal
// argument, then stdin.
func analyzeInput(args []string, file string, stdin io.Reader) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func appendOutcome(path, text string, report *evaluate.SafetyReport) error {
	log, err := evallog.Open(path)
	if err != nil {
		return fmt.Errorf("open evaluation log: %w", err)
	}
	defer log.Close()
	return log.Record(evallog.NewEntry("cli", text, report))
}

func recordOutcome(path, text string, report *evaluate.SafetyReport) error {
	store, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()
	_, err = store.Insert(context.Background(), "cli", text, report)
	return err
}
