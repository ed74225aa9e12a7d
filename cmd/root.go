package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"annwatch/internal/board"
	"annwatch/internal/config"
	"annwatch/internal/notify"
	"annwatch/internal/store"
	"annwatch/internal/watcher"
)

var (
	configPath string
	quiet      bool

	once       bool
	loop       bool
	miningOnly bool
	count      int
	jsonOut    bool
	outputPath string
)

var rootCmd = &cobra.Command{
	Use:   "annwatch",
	Short: "Watch the BitcoinTalk altcoin announcements board for new posts",
	Long: `annwatch fetches the BitcoinTalk Announcements (Altcoins) board listing,
flags mining-related announcements, and pushes a Discord webhook alert for
every topic it has not seen before.

Without --once or --loop it performs a dry fetch and prints the latest
topics without touching state or sending notifications.`,
	RunE: runRoot,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default ~/.config/annwatch/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")

	rootCmd.Flags().BoolVar(&once, "once", false, "Run one fetch-dedup-notify cycle and persist state")
	rootCmd.Flags().BoolVar(&loop, "loop", false, "Repeat the cycle on the configured interval")
	rootCmd.Flags().BoolVar(&miningOnly, "mining", false, "Only show mining-related posts")
	rootCmd.Flags().IntVar(&count, "count", 10, "Number of posts to show")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "Print posts as JSON")
	rootCmd.Flags().StringVar(&outputPath, "output", "", "Write output to a file instead of stdout")
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if once || loop {
		return runWatch(cfg)
	}

	return runSnapshot(cfg)
}

func runWatch(cfg *config.Config) error {
	logger := newLogger(quiet)
	defer logger.Sync()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening state database: %w", err)
	}
	defer st.Close()

	client := board.NewClient(cfg.BoardURL, cfg.UserAgent, cfg.RequestTimeout())

	var notifier watcher.Notifier
	if cfg.WebhookURL != "" {
		notifier = notify.New(cfg.WebhookURL)
	}

	w := watcher.New(st, cfg, client, notifier, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if loop {
		return w.Loop(ctx)
	}

	result, err := w.RunOnce(ctx)
	if err != nil {
		return err
	}

	if !quiet {
		if result.Baseline {
			fmt.Printf("First run: recorded %d posts as baseline, no notifications sent\n", result.NewPosts)
		} else {
			fmt.Printf("Found %d posts (%d new, %d notifications sent)\n",
				result.PostsFound, result.NewPosts, result.NotificationsSent)
		}
	}

	return nil
}

func newLogger(quiet bool) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if quiet {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
