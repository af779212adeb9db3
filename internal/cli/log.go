package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/bondwatch/internal/evallog"
)

var (
	logShowRisk   string
	logShowSource string
	logShowLimit  int
	logShowFormat string
)

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logVerifyCmd)
	logCmd.AddCommand(logShowCmd)
	logShowCmd.Flags().StringVar(&logShowRisk, "risk", "", "Filter by risk level (LOW|MEDIUM|HIGH)")
	logShowCmd.Flags().StringVar(&logShowSource, "source", "", "Filter by source (cli|watch|mcp)")
	logShowCmd.Flags().IntVarP(&logShowLimit, "limit", "n", 0, "Show only the N most recent entries")
	logShowCmd.Flags().StringVarP(&logShowFormat, "format", "f", "text", "Output format (text|json)")
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Evaluation log operations",
	Long:  "Commands for verifying and inspecting the hash-chained evaluation log.",
}

var logVerifyCmd = &cobra.Command{
	Use:   "verify <path>",
	Short: "Verify hash chain integrity of an evaluation log",
	Long: "Walks the JSONL evaluation log and validates that every entry's prev_hash\n" +
		"matches the SHA-256 of the previous line. Exits 0 if valid, 1 if tampered.",
	Args: cobra.ExactArgs(1),
	RunE: runLogVerify,
}

var logShowCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Show recent evaluation outcomes",
	Long:  "Reads the JSONL evaluation log and prints a timeline of outcomes.\nFilter by risk level or source, and cap with --limit.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogShow,
}

func runLogVerify(cmd *cobra.Command, args []string) error {
	result := evallog.Verify(args[0])
	if result.Valid {
		fmt.Printf("OK: %d entries verified\n", result.Lines)
		return nil
	}
	fmt.Fprintf(os.Stderr, "FAILED at line %d: %s\n", result.ErrorLine, result.Error)
	os.Exit(1)
	return nil
}

func runLogShow(cmd *cobra.Command, args []string) error {
	filter := evallog.Filter{
		Risk:   strings.ToUpper(logShowRisk),
		Source: logShowSource,
		Limit:  logShowLimit,
	}

	result, err := evallog.Read(args[0], filter)
	if err != nil {
		return err
	}

	switch logShowFormat {
	case "json":
		out, err := evallog.FormatJSON(result)
		if err != nil {
			return err
		}
		fmt.Println(out)
	default:
		fmt.Print(evallog.FormatTimeline(result))
	}
	return nil
}
