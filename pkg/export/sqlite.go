package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/session"
)

// SQLiteExporter exports a Session's profiles to a SQLite database
// optimized for client-side querying (e.g. sql.js in a static deployment),
// supplementing JSON export for profiles too large to hold entirely in a
// browser's memory at once.
type SQLiteExporter struct {
	Session *session.Session
}

// NewSQLiteExporter returns an exporter over sess.
func NewSQLiteExporter(sess *session.Session) *SQLiteExporter {
	return &SQLiteExporter{Session: sess}
}

// Export writes a fresh SQLite database to dbPath, overwriting any
// existing file.
func (e *SQLiteExporter) Export(dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := createSchema(db); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	for _, entry := range e.Session.Entries() {
		if err := e.insertProfile(db, entry); err != nil {
			return fmt.Errorf("insert profile %q: %w", entry.Label, err)
		}
	}
	return nil
}

func createSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE profiles (
	handle INTEGER PRIMARY KEY,
	label TEXT,
	format TEXT,
	start_time_us INTEGER,
	end_time_us INTEGER,
	offset_us INTEGER
);
CREATE TABLE threads (
	profile_handle INTEGER,
	thread_id INTEGER,
	name TEXT,
	max_depth INTEGER
);
CREATE TABLE spans (
	profile_handle INTEGER,
	frame_id INTEGER,
	parent_id INTEGER,
	thread_id INTEGER,
	name TEXT,
	category TEXT,
	depth INTEGER,
	start_us INTEGER,
	end_us INTEGER,
	self_us INTEGER
);
CREATE TABLE counters (
	profile_handle INTEGER,
	name TEXT,
	unit TEXT,
	timestamp_us INTEGER,
	value REAL
);
CREATE TABLE markers (
	profile_handle INTEGER,
	timestamp_us INTEGER,
	name TEXT,
	category TEXT
);
CREATE INDEX idx_spans_profile ON spans(profile_handle);
CREATE INDEX idx_spans_thread ON spans(profile_handle, thread_id);
`
	_, err := db.Exec(schema)
	return err
}

func (e *SQLiteExporter) insertProfile(db *sql.DB, entry *session.Entry) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	p := entry.Profile
	if _, err := tx.Exec(`INSERT INTO profiles (handle, label, format, start_time_us, end_time_us, offset_us) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Handle, entry.Label, string(p.Format), p.StartTimeUs, p.EndTimeUs, entry.OffsetUs); err != nil {
		return err
	}

	for _, th := range p.Threads {
		if _, err := tx.Exec(`INSERT INTO threads (profile_handle, thread_id, name, max_depth) VALUES (?, ?, ?, ?)`,
			entry.Handle, th.ID, th.Name, th.MaxDepth); err != nil {
			return err
		}
	}

	stmt, err := tx.Prepare(`INSERT INTO spans (profile_handle, frame_id, parent_id, thread_id, name, category, depth, start_us, end_us, self_us) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i := range p.Arena {
		s := &p.Arena[i]
		category := ""
		if s.Category >= 0 {
			category = p.Name(s.Category)
		}
		if _, err := stmt.Exec(entry.Handle, s.FrameID, s.Parent, s.ThreadID, p.Name(s.Name), category, s.Depth, s.StartUs, s.EndUs, s.SelfUs); err != nil {
			return err
		}
	}

	if err := e.insertCounters(tx, entry.Handle, p); err != nil {
		return err
	}
	if err := e.insertMarkers(tx, entry.Handle, p); err != nil {
		return err
	}

	return tx.Commit()
}

func (e *SQLiteExporter) insertCounters(tx *sql.Tx, handle session.Handle, p *model.Profile) error {
	stmt, err := tx.Prepare(`INSERT INTO counters (profile_handle, name, unit, timestamp_us, value) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, c := range p.Counters {
		for _, sample := range c.Samples {
			if _, err := stmt.Exec(handle, c.Name, c.Unit, sample.TimestampUs, sample.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *SQLiteExporter) insertMarkers(tx *sql.Tx, handle session.Handle, p *model.Profile) error {
	stmt, err := tx.Prepare(`INSERT INTO markers (profile_handle, timestamp_us, name, category) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, m := range p.Markers {
		if _, err := stmt.Exec(handle, m.TimestampUs, m.Name, m.Category); err != nil {
			return err
		}
	}
	return nil
}
