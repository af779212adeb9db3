package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// Overridden via -ldflags on release builds.
var (
	version = "0.1.0"
	commit  = "none"
	date    = "unknown"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := map[string]string{
			"name":    "bondwatch",
			"version": version,
			"commit":  commit,
			"date":    date,
		}
		out, _ := json.MarshalIndent(info, "", "  ")
		fmt.Println(string(out))
	},
}
