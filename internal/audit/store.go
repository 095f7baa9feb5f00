// Package audit keeps a local history of every command document sent to
// the engine, so an operator can reconstruct what changed the ruleset
// and when.
package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nftjctl/nftjctl/internal/clock"
	"github.com/nftjctl/nftjctl/internal/ruleset"
)

// Entry is one recorded engine interaction.
type Entry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Session   string    `json:"session"`
	Op        string    `json:"op"`
	Document  string    `json:"document,omitempty"`
	Rules     int       `json:"rules"`
	Err       string    `json:"error,omitempty"`
}

// Store provides persistent storage for audit entries. Every store
// instance gets its own session id, so entries from one process run can
// be queried together.
type Store struct {
	mu            sync.RWMutex
	db            *sql.DB
	clk           clock.Clock
	session       string
	retentionDays int
}

// NewStore opens (creating if needed) the audit database at dbPath.
// A retention of zero or less means the 90 day default.
func NewStore(dbPath string, retentionDays int, clk clock.Clock) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create audit dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS audit_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp DATETIME NOT NULL,
			session TEXT NOT NULL,
			op TEXT NOT NULL,
			document TEXT,
			rules INTEGER DEFAULT 0,
			error TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_audit_timestamp ON audit_entries(timestamp);
		CREATE INDEX IF NOT EXISTS idx_audit_session ON audit_entries(session);
		CREATE INDEX IF NOT EXISTS idx_audit_op ON audit_entries(op);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create audit table: %w", err)
	}

	if retentionDays <= 0 {
		retentionDays = 90
	}
	if clk == nil {
		clk = &clock.RealClock{}
	}

	return &Store{
		db:            db,
		clk:           clk,
		session:       uuid.NewString(),
		retentionDays: retentionDays,
	}, nil
}

// Session returns this store's session id.
func (s *Store) Session() string {
	return s.session
}

// Record persists one engine interaction. The document is stored as its
// JSON wire form; submitErr, when non-nil, is recorded alongside it.
func (s *Store) Record(op string, doc *ruleset.Document, submitErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var docJSON string
	var rules int
	if doc != nil {
		payload, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode audit document: %w", err)
		}
		docJSON = string(payload)
		rules = len(doc.Rules())
	}

	var errText string
	if submitErr != nil {
		errText = submitErr.Error()
	}

	_, err := s.db.Exec(`
		INSERT INTO audit_entries (timestamp, session, op, document, rules, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.clk.Now().UTC(), s.session, op, docJSON, rules, errText)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Query returns entries in the time window, newest first. Empty op or
// session match everything; limit 0 means no limit.
func (s *Store) Query(start, end time.Time, op, session string, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, timestamp, session, op, document, rules, error
		FROM audit_entries WHERE timestamp >= ? AND timestamp <= ?`
	args := []any{start, end}

	if op != "" {
		query += " AND op = ?"
		args = append(args, op)
	}
	if session != "" {
		query += " AND session = ?"
		args = append(args, session)
	}

	query += " ORDER BY timestamp DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var document, errText sql.NullString

		err := rows.Scan(&e.ID, &e.Timestamp, &e.Session, &e.Op, &document, &e.Rules, &errText)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}

		if document.Valid {
			e.Document = document.String
		}
		if errText.Valid {
			e.Err = errText.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune removes entries older than the retention period and returns how
// many were deleted.
func (s *Store) Prune() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.clk.Now().UTC().AddDate(0, 0, -s.retentionDays)
	result, err := s.db.Exec("DELETE FROM audit_entries WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune audit entries: %w", err)
	}
	return result.RowsAffected()
}

// Count returns the total number of entries in the store.
func (s *Store) Count() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM audit_entries").Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
