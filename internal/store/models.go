package store

import (
	"database/sql"
	"time"
)

// Record is a post as persisted, plus delivery state. NotifiedAt is null
// for posts recorded as baseline on a first run.
type Record struct {
	TopicID    int64
	MsgID      int64
	Title      string
	URL        string
	Author     string
	IsMining   bool
	FoundAt    time.Time
	NotifiedAt sql.NullTime
}

type RunLog struct {
	ID                int64
	RunAt             time.Time
	PostsFound        int
	NewPosts          int
	NotificationsSent int
	ErrorMessage      sql.NullString
	DurationMs        sql.NullInt64
}
