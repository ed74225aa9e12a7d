package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"annwatch/internal/board"
	"annwatch/internal/config"
	"annwatch/internal/mining"
)

// snapshot is the JSON envelope for the dry fetch+display mode.
type snapshot struct {
	ScrapedAt  time.Time    `json:"scraped_at"`
	Board      string       `json:"board"`
	BoardURL   string       `json:"board_url"`
	Sort       string       `json:"sort"`
	Count      int          `json:"count"`
	MiningOnly bool         `json:"mining_only"`
	Posts      []board.Post `json:"posts"`
}

// runSnapshot fetches and displays the latest topics without writing
// state or sending notifications.
func runSnapshot(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := board.NewClient(cfg.BoardURL, cfg.UserAgent, cfg.RequestTimeout())

	html, err := client.Fetch(ctx)
	if err != nil {
		return err
	}

	posts, err := board.Parse(html)
	if err != nil {
		return err
	}

	for i := range posts {
		posts[i].IsMining = mining.IsMining(posts[i].Title)
	}

	if miningOnly {
		filtered := posts[:0]
		for _, p := range posts {
			if p.IsMining {
				filtered = append(filtered, p)
			}
		}
		posts = filtered
	}

	posts = board.Top(posts, count)

	if jsonOut || outputPath != "" {
		return writeJSON(cfg, posts)
	}

	printPosts(posts)
	return nil
}

func writeJSON(cfg *config.Config, posts []board.Post) error {
	result := snapshot{
		ScrapedAt:  time.Now().UTC(),
		Board:      "Announcements (Altcoins)",
		BoardURL:   cfg.BoardURL,
		Sort:       "newest_first",
		Count:      len(posts),
		MiningOnly: miningOnly,
		Posts:      posts,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding posts: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		if !quiet {
			fmt.Printf("Saved %d posts to %s\n", len(posts), outputPath)
		}
		return nil
	}

	fmt.Println(string(data))
	return nil
}

func printPosts(posts []board.Post) {
	fmt.Printf("Latest %d posts, newest first", len(posts))
	if miningOnly {
		fmt.Print(" (mining only)")
	}
	fmt.Println()

	for i, p := range posts {
		tag := ""
		if p.IsMining {
			tag = " [mining]"
		}
		fmt.Printf("\n[%2d] %s%s\n", i+1, p.Title, tag)
		fmt.Printf("     author: %s  |  topic: %d\n", p.Author, p.TopicID)
		fmt.Printf("     %s\n", p.URL)
	}
}
