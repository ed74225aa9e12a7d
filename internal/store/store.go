// Package store persists seen posts and run history in sqlite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"annwatch/internal/board"
	"annwatch/internal/dedup"
)

type Store struct {
	conn *sql.DB
	path string
}

func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}

	s := &Store{
		conn: conn,
		path: path,
	}

	if err := InitSchema(s); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// SeenIDs loads the set of topic ids already recorded, whether notified
// or captured as a first-run baseline.
func (s *Store) SeenIDs() (dedup.Set, error) {
	rows, err := s.conn.Query(`SELECT topic_id FROM posts`)
	if err != nil {
		return nil, fmt.Errorf("loading seen topics: %w", err)
	}
	defer rows.Close()

	seen := dedup.NewSet()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning seen topic: %w", err)
		}
		seen.Add(id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating seen topics: %w", err)
	}

	return seen, nil
}

// RecordNotified appends a post whose notification was delivered. Existing
// rows are left untouched so ids are never rewritten or removed.
func (s *Store) RecordNotified(p board.Post, notifiedAt time.Time) error {
	return s.insertPost(p, notifiedAt, sql.NullString{String: notifiedAt.Format(time.RFC3339), Valid: true})
}

// RecordBaseline appends posts without a delivery timestamp. Used on a
// first run when the watcher records the current listing instead of
// notifying for it.
func (s *Store) RecordBaseline(posts []board.Post, foundAt time.Time) error {
	for _, p := range posts {
		if err := s.insertPost(p, foundAt, sql.NullString{}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) insertPost(p board.Post, foundAt time.Time, notifiedAt sql.NullString) error {
	_, err := s.conn.Exec(`
		INSERT INTO posts (topic_id, msg_id, title, url, author, is_mining, found_at, notified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(topic_id) DO NOTHING`,
		p.TopicID, p.MsgID, p.Title, p.URL, p.Author, boolToInt(p.IsMining),
		foundAt.Format(time.RFC3339), notifiedAt,
	)
	if err != nil {
		return fmt.Errorf("recording topic %d: %w", p.TopicID, err)
	}
	return nil
}

// RecentNotified returns the most recently notified posts, newest first.
func (s *Store) RecentNotified(limit int) ([]*Record, error) {
	rows, err := s.conn.Query(`
		SELECT topic_id, msg_id, title, url, author, is_mining, found_at, notified_at
		FROM posts WHERE notified_at IS NOT NULL
		ORDER BY notified_at DESC, topic_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying notified posts: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning post row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating post rows: %w", err)
	}

	return records, nil
}

type scanFunc func(dest ...any) error

func scanRecord(scan scanFunc) (*Record, error) {
	var rec Record
	var foundAt string
	var notifiedAt sql.NullString
	var isMining int

	err := scan(
		&rec.TopicID, &rec.MsgID, &rec.Title, &rec.URL, &rec.Author,
		&isMining, &foundAt, &notifiedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.FoundAt, _ = time.Parse(time.RFC3339, foundAt)
	rec.IsMining = isMining == 1

	if notifiedAt.Valid {
		t, _ := time.Parse(time.RFC3339, notifiedAt.String)
		rec.NotifiedAt = sql.NullTime{Time: t, Valid: true}
	}

	return &rec, nil
}

func (s *Store) LogRun(postsFound, newPosts, notificationsSent int, errMsg string, durationMs int64) error {
	var errMsgVal sql.NullString
	if errMsg != "" {
		errMsgVal = sql.NullString{String: errMsg, Valid: true}
	}

	_, err := s.conn.Exec(`
		INSERT INTO run_log (run_at, posts_found, new_posts, notifications_sent, error_message, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().Format(time.RFC3339), postsFound, newPosts, notificationsSent, errMsgVal, durationMs)
	if err != nil {
		return fmt.Errorf("logging run: %w", err)
	}
	return nil
}

func (s *Store) GetLastRun() (*RunLog, error) {
	row := s.conn.QueryRow(`
		SELECT id, run_at, posts_found, new_posts, notifications_sent, error_message, duration_ms
		FROM run_log ORDER BY id DESC LIMIT 1`)

	var log RunLog
	var runAt string

	err := row.Scan(
		&log.ID, &runAt, &log.PostsFound, &log.NewPosts,
		&log.NotificationsSent, &log.ErrorMessage, &log.DurationMs,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run log: %w", err)
	}

	log.RunAt, _ = time.Parse(time.RFC3339, runAt)
	return &log, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
