package notify

import (
	"fmt"
	"strings"
	"time"

	"annwatch/internal/board"
)

// Message is the human-readable alert for one new post.
type Message struct {
	Post board.Post
}

// NewPostMessage builds the alert for a freshly discovered post.
func NewPostMessage(p board.Post) Message {
	return Message{Post: p}
}

// Render formats the Discord message body. Angle brackets around the URL
// suppress Discord's link preview.
func (m Message) Render() string {
	p := m.Post

	miningTag := ""
	if p.IsMining {
		miningTag = " ⛏️"
	}

	foundAt := "N/A"
	if !p.FoundAt.IsZero() {
		foundAt = p.FoundAt.Format(time.RFC3339)
	}

	author := p.Author
	if author == "" {
		author = "N/A"
	}

	var b strings.Builder
	b.WriteString("\n\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "🆕 **New Post**%s\n\n", miningTag)
	fmt.Fprintf(&b, "> 📌 **%s**\n", p.Title)
	b.WriteString("> \n")
	fmt.Fprintf(&b, "> 👤 Author: **%s**\n", author)
	fmt.Fprintf(&b, "> 🕐 Found: %s\n", foundAt)
	fmt.Fprintf(&b, "> 🔗 <%s>\n\n", p.URL)
	return b.String()
}
