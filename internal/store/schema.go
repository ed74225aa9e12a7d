package store

const Schema = `
CREATE TABLE IF NOT EXISTS posts (
    topic_id INTEGER PRIMARY KEY,
    msg_id INTEGER NOT NULL,
    title TEXT NOT NULL,
    url TEXT NOT NULL,
    author TEXT NOT NULL DEFAULT '',
    is_mining INTEGER NOT NULL DEFAULT 0,
    found_at TEXT NOT NULL,
    notified_at TEXT
);

CREATE TABLE IF NOT EXISTS run_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_at TEXT NOT NULL,
    posts_found INTEGER NOT NULL,
    new_posts INTEGER NOT NULL,
    notifications_sent INTEGER NOT NULL,
    error_message TEXT,
    duration_ms INTEGER
);
`

func InitSchema(s *Store) error {
	_, err := s.conn.Exec(Schema)
	if err != nil {
		return err
	}
	return nil
}
