package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	bondmcp "github.com/ppiankov/bondwatch/internal/mcp"
)

var (
	mcpLog string
	mcpDB  string
)

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpLog, "log", "", "Append evaluations to a hash-chained evaluation log")
	mcpCmd.Flags().StringVar(&mcpDB, "db", "", "Record evaluations in a history database")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for agent integration",
	Long: "Runs bondwatch as an MCP (Model Context Protocol) server over stdio.\n" +
		"Exposes tools: evaluate_response, list_rules.",
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg := bondmcp.Config{
		LogPath:     mcpLog,
		HistoryPath: mcpDB,
	}

	srv, err := bondmcp.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	fmt.Fprintln(os.Stderr, "bondwatch MCP server running on stdio")
	if mcpLog != "" {
		fmt.Fprintf(os.Stderr, "Evaluation log: %s\n", mcpLog)
	}
	if mcpDB != "" {
		fmt.Fprintf(os.Stderr, "History store: %s\n", mcpDB)
	}
	fmt.Fprintln(os.Stderr)

	err = srv.Run(ctx)

	// Print session summary on exit
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Session summary:")
	summary, _ := json.MarshalIndent(srv.SessionSummary(), "", "  ")
	fmt.Fprintln(os.Stderr, string(summary))

	return err
}
