package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/bondwatch/internal/taxonomy"
)

var (
	rulesCategory string
	rulesFormat   string
)

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().StringVar(&rulesCategory, "category", "", "Filter by category (intimacy|boundary|manipulation)")
	rulesCmd.Flags().StringVarP(&rulesFormat, "format", "f", "text", "Output format (text|json)")
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the detection taxonomy",
	Long: "Prints every detection rule with its pattern, severity, disclosure layer,\n" +
		"intimacy dimension, and citation, in evaluation order.",
	RunE: runRules,
}

type categoryRules struct {
	Category string          `json:"category"`
	Rules    []taxonomy.Rule `json:"rules"`
}

func runRules(cmd *cobra.Command, args []string) error {
	categories := taxonomy.Categories()
	if rulesCategory != "" {
		cat := taxonomy.Category(strings.ToLower(rulesCategory))
		if taxonomy.Rules(cat) == nil {
			return fmt.Errorf("unknown category %q", rulesCategory)
		}
		categories = []taxonomy.Category{cat}
	}

	if rulesFormat == "json" {
		out := make([]categoryRules, 0, len(categories))
		for _, cat := range categories {
			out = append(out, categoryRules{
				Category: string(cat),
				Rules:    taxonomy.Rules(cat),
			})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	for _, cat := range categories {
		rules := taxonomy.Rules(cat)
		fmt.Printf("%s (%d rules)\n", strings.ToUpper(string(cat)), len(rules))
		for _, r := range rules {
			fmt.Printf("  %-22s %.2f  %-12s %-20s %s\n",
				r.Name, r.Severity, r.Layer, r.Dimension, r.Pattern)
			fmt.Printf("  %-22s ref: %s\n", "", r.Citation)
		}
		fmt.Println()
	}
	return nil
}
