package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/bondwatch/internal/evallog"
	"github.com/ppiankov/bondwatch/internal/history"
	"github.com/ppiankov/bondwatch/internal/inbox"
)

var (
	watchInbox    string
	watchOutbox   string
	watchLog      string
	watchDB       string
	watchPoll     bool
	watchInterval time.Duration
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchInbox, "inbox", "", "Directory to watch for response transcripts (env BONDWATCH_INBOX)")
	watchCmd.Flags().StringVar(&watchOutbox, "outbox", "", "Directory for report output (env BONDWATCH_OUTBOX)")
	watchCmd.Flags().StringVar(&watchLog, "log", "", "Append outcomes to a hash-chained evaluation log (env BONDWATCH_LOG)")
	watchCmd.Flags().StringVar(&watchDB, "db", "", "Record outcomes in a history database (env BONDWATCH_DB)")
	watchCmd.Flags().BoolVar(&watchPoll, "poll", false, "Poll the inbox instead of using filesystem notifications")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 5*time.Second, "Poll interval when --poll is set")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a drop directory and evaluate incoming responses",
	Long: "Watches --inbox for *.txt response transcripts. Each file is evaluated and\n" +
		"a <name>.report.json lands in --outbox; rejected files move to <outbox>/failed.\n" +
		"Drop files atomically: write to *.tmp, then rename.\n" +
		"Unset path flags fall back to BONDWATCH_INBOX, BONDWATCH_OUTBOX,\n" +
		"BONDWATCH_LOG and BONDWATCH_DB.",
	RunE: runWatch,
}

// watchPathsFromEnv fills unset path flags from the environment. Explicit
// flags always win.
func watchPathsFromEnv() {
	if watchInbox == "" {
		watchInbox = os.Getenv("BONDWATCH_INBOX")
	}
	if watchOutbox == "" {
		watchOutbox = os.Getenv("BONDWATCH_OUTBOX")
	}
	if watchLog == "" {
		watchLog = os.Getenv("BONDWATCH_LOG")
	}
	if watchDB == "" {
		watchDB = os.Getenv("BONDWATCH_DB")
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	watchPathsFromEnv()
	if watchInbox == "" || watchOutbox == "" {
		return fmt.Errorf("inbox and outbox are required (--inbox/--outbox or BONDWATCH_INBOX/BONDWATCH_OUTBOX)")
	}

	cfg := inbox.Config{
		Dirs: inbox.DirConfig{Inbox: watchInbox, Outbox: watchOutbox},
	}

	if watchLog != "" {
		log, err := evallog.Open(watchLog)
		if err != nil {
			return fmt.Errorf("open evaluation log: %w", err)
		}
		defer log.Close()
		cfg.Log = log
	}
	if watchDB != "" {
		store, err := history.Open(watchDB)
		if err != nil {
			return fmt.Errorf("open history store: %w", err)
		}
		defer store.Close()
		cfg.Store = store
	}

	runner, err := inbox.New(cfg, watchPoll, watchInterval)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down watcher...")
		cancel()
	}()

	fmt.Fprintf(os.Stderr, "bondwatch watching %s\n", watchInbox)
	fmt.Fprintf(os.Stderr, "Reports land in %s\n", watchOutbox)
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to stop")
	fmt.Fprintln(os.Stderr)

	return runner.Run(ctx)
}
