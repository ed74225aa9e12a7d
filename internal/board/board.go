// Package board fetches and parses a BitcoinTalk board listing page.
package board

import "time"

// Post is a single topic row parsed from the board listing. Sticky topics
// and board-rule threads never make it out of the parser, so Post carries
// no sticky flag.
type Post struct {
	TopicID  int64     `json:"topic_id"`
	MsgID    int64     `json:"msg_id"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Author   string    `json:"author,omitempty"`
	IsMining bool      `json:"is_mining"`
	FoundAt  time.Time `json:"found_at,omitempty"`
}
