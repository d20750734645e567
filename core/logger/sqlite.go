package logger

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL DEFAULT '',
	timestamp_micros INTEGER NOT NULL,
	event_type TEXT NOT NULL,
	entry TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id);
`

// SQLiteLog stores log entries in a SQLite database.
type SQLiteLog struct {
	db *sqlx.DB
}

// OpenSQLiteLog opens or creates the database at path.
func OpenSQLiteLog(path string) (*SQLiteLog, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open event database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteLog{db: db}, nil
}

// Close releases the database.
func (s *SQLiteLog) Close() error {
	return s.db.Close()
}

// Logger returns a Logger that inserts entries into the database.
func (s *SQLiteLog) Logger() *Logger {
	return &Logger{Record: s.insert}
}

func (s *SQLiteLog) insert(le *LogEntry) error {
	entry, err := json.Marshal(le)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO events (session_id, timestamp_micros, event_type, entry) VALUES (?, ?, ?, ?)`,
		le.SessionID, le.TimestampMicros, eventType(le), string(entry),
	)
	return err
}

// ReadAll calls handler for every stored entry in insertion order.
func (s *SQLiteLog) ReadAll(handler func(le *LogEntry)) error {
	var rows []struct {
		Entry string `db:"entry"`
	}
	if err := s.db.Select(&rows, `SELECT entry FROM events ORDER BY id`); err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}

	for _, row := range rows {
		var le LogEntry
		if err := json.Unmarshal([]byte(row.Entry), &le); err != nil {
			return err
		}
		handler(&le)
	}
	return nil
}

// CountByType returns the number of stored entries per event type.
func (s *SQLiteLog) CountByType() (map[string]int, error) {
	var rows []struct {
		EventType string `db:"event_type"`
		Count     int    `db:"count"`
	}
	if err := s.db.Select(&rows, `SELECT event_type, COUNT(*) AS count FROM events GROUP BY event_type`); err != nil {
		return nil, err
	}

	out := make(map[string]int)
	for _, row := range rows {
		out[row.EventType] = row.Count
	}
	return out, nil
}

func eventType(le *LogEntry) string {
	switch le.GetLogType().(type) {
	case *SessionStart:
		return "session_start"
	case *SessionEnd:
		return "session_end"
	case *RunCommand:
		return "run_command"
	case *CommandExit:
		return "command_exit"
	case *Builtin:
		return "builtin"
	case *CommandError:
		return "command_error"
	case *JobDone:
		return "job_done"
	default:
		return "unknown"
	}
}
