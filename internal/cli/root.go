package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bondwatch",
	Short: "Parasocial-language safety evaluator for LLM responses",
	Long: "Scans LLM response text for intimacy escalation, boundary erosion, and emotional\n" +
		"manipulation patterns. Explainable by construction: every score traces back to a\n" +
		"matched pattern with its severity, disclosure layer, and literature citation.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
