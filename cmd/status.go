package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"annwatch/internal/config"
	"annwatch/internal/store"
)

var statusLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show last run info and recently notified posts",
	Long:  `Display information about the last watch run and the most recently notified topics.`,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().IntVar(&statusLimit, "limit", 10, "Number of recent posts to show")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening state database: %w", err)
	}
	defer st.Close()

	lastRun, err := st.GetLastRun()
	if err != nil {
		return fmt.Errorf("getting last run: %w", err)
	}

	fmt.Println("=== Last Run ===")
	if lastRun == nil {
		fmt.Println("No runs recorded yet.")
	} else {
		ago := time.Since(lastRun.RunAt).Round(time.Second)
		fmt.Printf("Time:          %s (%s ago)\n", lastRun.RunAt.Format(time.RFC3339), ago)
		fmt.Printf("Posts found:   %d\n", lastRun.PostsFound)
		fmt.Printf("New posts:     %d\n", lastRun.NewPosts)
		fmt.Printf("Notifications: %d\n", lastRun.NotificationsSent)
		if lastRun.DurationMs.Valid {
			fmt.Printf("Duration:      %dms\n", lastRun.DurationMs.Int64)
		}
		if lastRun.ErrorMessage.Valid && lastRun.ErrorMessage.String != "" {
			fmt.Printf("Error:         %s\n", lastRun.ErrorMessage.String)
		}
	}

	fmt.Println()

	records, err := st.RecentNotified(statusLimit)
	if err != nil {
		return fmt.Errorf("getting notified posts: %w", err)
	}

	fmt.Println("=== Recently Notified ===")
	if len(records) == 0 {
		fmt.Println("No notifications sent yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOPIC\tTITLE\tAUTHOR\tMINING\tNOTIFIED")

	for _, rec := range records {
		title := truncate(rec.Title, 50)
		miningMark := ""
		if rec.IsMining {
			miningMark = "yes"
		}
		notified := ""
		if rec.NotifiedAt.Valid {
			notified = formatDuration(time.Since(rec.NotifiedAt.Time)) + " ago"
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			rec.TopicID, title, rec.Author, miningMark, notified)
	}

	w.Flush()

	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func formatDuration(d time.Duration) string {
	switch hours := int(d.Hours()); {
	case hours >= 24:
		return fmt.Sprintf("%dd", hours/24)
	case hours >= 1:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
}
